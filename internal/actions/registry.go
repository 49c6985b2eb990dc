package actions

import "elapse/internal/logger"

// HandlerRegistry maps action types to their handlers.
type HandlerRegistry struct {
	handlers map[ActionType]Handler
}

// NewHandlerRegistry creates an empty registry.
func NewHandlerRegistry() *HandlerRegistry {
	return &HandlerRegistry{handlers: make(map[ActionType]Handler)}
}

// Register adds a handler, replacing any previous one for the same type.
func (r *HandlerRegistry) Register(h Handler) {
	if h == nil {
		return
	}
	r.handlers[h.Type()] = h
}

// Get returns the handler for the given action type.
func (r *HandlerRegistry) Get(t ActionType) (Handler, bool) {
	h, ok := r.handlers[t]
	return h, ok
}

// RegisterDefaultHandlers registers all built-in action handlers.
func (r *HandlerRegistry) RegisterDefaultHandlers() {
	r.Register(&startHandler{})
	r.Register(&endHandler{})
	r.Register(&currencyHandler{})
	r.Register(&calculationHandler{})
	r.Register(&variablesHandler{})
	r.Register(&refreshHandler{})
	logger.Debugf("actions: registered %d handlers", len(r.handlers))
}
