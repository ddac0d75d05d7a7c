package server

import (
	"net/http"
)

// Middleware wraps an [http.Handler] with additional behavior.
type Middleware func(http.Handler) http.Handler

// Handler is an [http.Handler] that knows which path patterns it serves.
type Handler interface {
	http.Handler
	Routes() []string // Routes returns the path patterns this handler serves
}

// Router is a small [http.ServeMux]-based router with middleware support.
type Router struct {
	mux         *http.ServeMux
	middlewares []Middleware
}

// NewRouter creates an empty [Router].
func NewRouter() *Router {
	return &Router{mux: http.NewServeMux()}
}

// Use appends [Middleware] to the stack, applied in the order added.
func (r *Router) Use(middleware ...Middleware) {
	r.middlewares = append(r.middlewares, middleware...)
}

// Handler registers handler for every route it reports.
func (r *Router) Handler(handler Handler) {
	wrapped := r.apply(handler)
	for _, route := range handler.Routes() {
		r.mux.Handle(route, wrapped)
	}
}

// ServeHTTP implements [http.Handler] for the entire router.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// apply wraps a handler with all registered middleware, last added wrapping
// first.
func (r *Router) apply(handler http.Handler) http.Handler {
	wrapped := handler
	for i := len(r.middlewares) - 1; i >= 0; i-- {
		wrapped = r.middlewares[i](wrapped)
	}
	return wrapped
}
