package domain

// Product is a catalog record owned by the backend. The client never
// mutates one; it only copies fields into cart lines.
type Product struct {
	ID       string  `json:"_id"`
	Title    string  `json:"title"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	Image    string  `json:"image,omitempty"`
}

// CartLine is one product-quantity pairing held in the cart. Price and
// title are captured at add time and never re-fetched.
type CartLine struct {
	ProductID string  `json:"product_id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Qty       int     `json:"qty"`
}

// Subtotal is the line's contribution to the cart total.
func (l CartLine) Subtotal() float64 {
	return l.Price * float64(l.Qty)
}

// Inquiry is a contact form submission.
type Inquiry struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}
