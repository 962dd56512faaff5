// Package session owns the storefront's per-session state: the shared
// status slot, the cart, the catalog fetcher, the checkout orchestrator,
// the inquiry form and the view router. One Session is built at startup and
// passed by reference to the front-end; nothing here is a package global.
package session

import (
	"context"
	"sync"

	"github.com/pranesta/storefront/internal/cart"
	"github.com/pranesta/storefront/internal/catalog"
	"github.com/pranesta/storefront/internal/checkout"
	"github.com/pranesta/storefront/internal/inquiry"
	"github.com/pranesta/storefront/internal/view"
)

// ReceivedMessage lands in the shared status slot when the inquiry form
// reports a successful submission.
const ReceivedMessage = "We have received your message."

// Backend is everything the session needs from the API client.
type Backend interface {
	catalog.Source
	checkout.Backend
	inquiry.Poster
}

// Session is the owned state container for one storefront session.
type Session struct {
	Cart     *cart.Store
	Catalog  *catalog.Fetcher
	Checkout *checkout.Orchestrator
	Inquiry  *inquiry.Form
	Views    *view.Router

	mu       sync.Mutex
	status   string
	category string
}

// New wires a session around the backend client. The cart starts empty, the
// view starts at home and the category selection starts at "all".
func New(backend Backend) *Session {
	s := &Session{
		Cart:     cart.NewStore(),
		Views:    view.NewRouter(),
		category: "all",
	}
	s.Catalog = catalog.NewFetcher(backend, s.SetStatus)
	s.Checkout = checkout.NewOrchestrator(backend, s.Cart, s.SetStatus)
	s.Inquiry = inquiry.NewForm(backend, func() { s.SetStatus(ReceivedMessage) })
	return s
}

// SetStatus overwrites the single transient status slot. There is no queue
// and no history; the most recent outcome wins.
func (s *Session) SetStatus(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = msg
}

func (s *Session) Status() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *Session) Category() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.category
}

// SelectCategory records the active category and reloads the catalog, the
// reactive recomputation the category buttons trigger.
func (s *Session) SelectCategory(ctx context.Context, category string) {
	s.mu.Lock()
	s.category = category
	s.mu.Unlock()

	s.Catalog.Load(ctx, category)
}

// Shop is the navbar shortcut: select a collection and jump to the catalog
// view.
func (s *Session) Shop(ctx context.Context, category string) {
	s.Views.Set(view.Catalog)
	s.SelectCategory(ctx, category)
}
