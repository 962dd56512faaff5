// Package checkout sequences the three backend calls behind the checkout
// button: create order, create payment intent, confirm payment. Each call's
// request body depends on the prior response, so the sequence is strictly
// serial and aborts on the first failure.
package checkout

import (
	"context"
	"errors"
	"fmt"

	"github.com/pranesta/storefront/internal/api"
	"github.com/pranesta/storefront/internal/cart"
)

// Placeholder identity submitted with every order. A real deployment would
// source this from an authenticated session.
const (
	guestName  = "Guest"
	guestEmail = "guest@example.com"
)

// User-facing outcome messages. Backend detail messages take precedence over
// the per-step fallbacks.
const (
	SuccessMessage      = "Payment successful! Order confirmed."
	orderFallback       = "Failed to create order"
	intentFallback      = "Failed to start payment"
	confirmFallback     = "Payment confirmation failed"
	initiatedMessageFmt = "Payment initiated. Reference: %s"
)

// Backend is the slice of the API client the orchestrator depends on.
type Backend interface {
	CreateOrder(ctx context.Context, order api.OrderRequest) (string, error)
	CreatePaymentIntent(ctx context.Context, orderID string) (string, error)
	ConfirmPayment(ctx context.Context, orderID, reference string, success bool) error
}

// Orchestrator drives a checkout for the session's cart and reduces the
// outcome to the shared status slot.
type Orchestrator struct {
	backend Backend
	cart    *cart.Store
	notify  func(string)
}

func NewOrchestrator(backend Backend, store *cart.Store, notify func(string)) *Orchestrator {
	return &Orchestrator{backend: backend, cart: store, notify: notify}
}

// Checkout runs the full sequence. An empty cart is a no-op: no network
// calls, no state change. On any step failure the cart keeps its lines so
// the user can retry; only full success clears it.
func (o *Orchestrator) Checkout(ctx context.Context) {
	lines := o.cart.Lines()
	if len(lines) == 0 {
		return
	}

	o.notify("")

	orderID, err := o.backend.CreateOrder(ctx, api.OrderRequest{
		Items:         lines,
		CustomerName:  guestName,
		CustomerEmail: guestEmail,
	})
	if err != nil {
		o.notify(failureMessage(err, orderFallback))
		return
	}

	reference, err := o.backend.CreatePaymentIntent(ctx, orderID)
	if err != nil {
		o.notify(failureMessage(err, intentFallback))
		return
	}

	// Interim notice so the user sees progress before confirmation lands.
	o.notify(fmt.Sprintf(initiatedMessageFmt, reference))

	// No real gateway round trip exists; confirmation is simulated as
	// immediately successful.
	if err := o.backend.ConfirmPayment(ctx, orderID, reference, true); err != nil {
		o.notify(failureMessage(err, confirmFallback))
		return
	}

	o.notify(SuccessMessage)
	o.cart.Clear()
}

// failureMessage surfaces the backend's detail verbatim when present;
// transport failures and detail-less rejections get the step's fixed
// fallback.
func failureMessage(err error, fallback string) string {
	var backendErr *api.BackendError
	if errors.As(err, &backendErr) && backendErr.Detail != "" {
		return backendErr.Detail
	}
	return fallback
}
