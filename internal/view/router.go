package view

import "sync"

// View names the top-level panel currently shown.
type View string

const (
	Home    View = "home"
	Catalog View = "catalog"
	Contact View = "contact"
	Cart    View = "cart"
)

// Known reports whether v belongs to the closed view set.
func Known(v View) bool {
	switch v {
	case Home, Catalog, Contact, Cart:
		return true
	}
	return false
}

// Router holds the single current-view value. Switching is a synchronous
// assignment with no history stack and no guard conditions; any view is
// reachable from any other.
type Router struct {
	mu      sync.Mutex
	current View
}

func NewRouter() *Router {
	return &Router{current: Home}
}

func (r *Router) Set(v View) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.current = v
}

func (r *Router) Current() View {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}
