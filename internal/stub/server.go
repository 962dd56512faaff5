// Package stub is an in-memory development backend implementing the
// storefront API contract. It exists so the client has something real to run
// and integration-test against; the production backend is owned elsewhere.
package stub

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/pranesta/storefront/internal/domain"
)

type orderStatus string

const (
	statusCreated       orderStatus = "created"
	statusPaymentFailed orderStatus = "payment_failed"
	statusPaid          orderStatus = "paid"
)

type order struct {
	ID            string
	Items         []domain.CartLine
	CustomerName  string
	CustomerEmail string
	Reference     string
	Status        orderStatus
}

// Server holds the backend's in-memory state behind one mutex.
type Server struct {
	mu        sync.RWMutex
	products  []domain.Product
	orders    map[string]*order
	inquiries []domain.Inquiry
}

func NewServer() *Server {
	return &Server{
		products: seedCatalog(),
		orders:   make(map[string]*order),
	}
}

func seedCatalog() []domain.Product {
	return []domain.Product{
		{ID: uuid.NewString(), Title: "Sterling Silver Ring", Category: "silver", Price: 499, Image: "/img/silver-ring.jpg"},
		{ID: uuid.NewString(), Title: "Silver Anklet Pair", Category: "silver", Price: 899, Image: "/img/silver-anklet.jpg"},
		{ID: uuid.NewString(), Title: "Silver Pendant Chain", Category: "silver", Price: 1299},
		{ID: uuid.NewString(), Title: "Oxidised Jhumka Earrings", Category: "oxidised", Price: 349, Image: "/img/oxi-jhumka.jpg"},
		{ID: uuid.NewString(), Title: "Oxidised Choker Necklace", Category: "oxidised", Price: 1099},
		{ID: uuid.NewString(), Title: "Oxidised Bangle Set", Category: "oxidised", Price: 799},
	}
}

// Router builds the HTTP handler with the standard middleware stack.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/products", s.listProducts)
		r.Post("/orders", s.createOrder)
		r.Post("/payments/create-intent", s.createIntent)
		r.Post("/payments/confirm", s.confirmPayment)
		r.Post("/inquiries", s.createInquiry)
	})

	return r
}

func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Product, 0, len(s.products))
	for _, p := range s.products {
		if category == "" || category == "all" || p.Category == category {
			out = append(out, p)
		}
	}
	respondJSON(w, http.StatusOK, out)
}

type createOrderRequest struct {
	Items         []domain.CartLine `json:"items"`
	CustomerName  string            `json:"customer_name"`
	CustomerEmail string            `json:"customer_email"`
}

func (s *Server) createOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.Items) == 0 {
		respondDetail(w, http.StatusBadRequest, "Order must contain at least one item")
		return
	}

	o := &order{
		ID:            uuid.NewString(),
		Items:         req.Items,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		Status:        statusCreated,
	}

	s.mu.Lock()
	s.orders[o.ID] = o
	s.mu.Unlock()

	respondJSON(w, http.StatusCreated, map[string]string{"order_id": o.ID})
}

type intentRequest struct {
	OrderID string `json:"order_id"`
}

func (s *Server) createIntent(w http.ResponseWriter, r *http.Request) {
	var req intentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[req.OrderID]
	if !ok {
		respondDetail(w, http.StatusNotFound, "Order not found")
		return
	}

	o.Reference = "pi_" + uuid.NewString()
	respondJSON(w, http.StatusOK, map[string]string{"reference": o.Reference})
}

type confirmRequest struct {
	OrderID   string `json:"order_id"`
	Success   bool   `json:"success"`
	Reference string `json:"reference"`
}

func (s *Server) confirmPayment(w http.ResponseWriter, r *http.Request) {
	var req confirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[req.OrderID]
	if !ok {
		respondDetail(w, http.StatusNotFound, "Order not found")
		return
	}
	if o.Reference == "" || o.Reference != req.Reference {
		respondDetail(w, http.StatusBadRequest, "Unknown payment reference")
		return
	}

	if !req.Success {
		o.Status = statusPaymentFailed
		respondDetail(w, http.StatusPaymentRequired, "Payment was declined")
		return
	}

	o.Status = statusPaid
	respondJSON(w, http.StatusOK, map[string]string{
		"order_id": o.ID,
		"status":   string(o.Status),
	})
}

func (s *Server) createInquiry(w http.ResponseWriter, r *http.Request) {
	var inq domain.Inquiry
	if err := json.NewDecoder(r.Body).Decode(&inq); err != nil {
		respondDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	s.mu.Lock()
	s.inquiries = append(s.inquiries, inq)
	s.mu.Unlock()

	respondJSON(w, http.StatusCreated, map[string]bool{"ok": true})
}

// Inquiries returns a copy of everything posted to /api/inquiries.
func (s *Server) Inquiries() []domain.Inquiry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Inquiry, len(s.inquiries))
	copy(out, s.inquiries)
	return out
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondDetail(w http.ResponseWriter, status int, detail string) {
	respondJSON(w, status, map[string]string{"detail": detail})
}
