package cmd

// Middleware wraps a handler (e.g. logging, metrics). It only sees
// invocations whose checks passed and whose arguments bound.
type Middleware func(HandlerFunc) HandlerFunc

// Chain applies middlewares around h; the first in the list is the outermost.
func Chain(h HandlerFunc, mws ...Middleware) HandlerFunc {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}
