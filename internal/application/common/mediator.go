package common

import (
	"context"
	"fmt"
	"reflect"
)

// Request is a command or query dispatched through the mediator.
type Request interface{}

// Response is whatever the handler of a request returns.
type Response interface{}

// RequestHandler handles exactly one request type; the type switch inside
// Handle rejects anything else.
type RequestHandler interface {
	Handle(ctx context.Context, request Request) (Response, error)
}

// Mediator routes each request to the handler registered for its concrete
// type. All registration happens during CLI wiring before the first Send, so
// the handler map is never written concurrently.
type Mediator struct {
	handlers map[reflect.Type]RequestHandler
}

func NewMediator() *Mediator {
	return &Mediator{handlers: make(map[reflect.Type]RequestHandler)}
}

// RegisterHandler binds handler to the request type T.
func RegisterHandler[T Request](m *Mediator, handler RequestHandler) error {
	if handler == nil {
		return fmt.Errorf("handler cannot be nil")
	}
	var zero T
	requestType := reflect.TypeOf(zero)
	if _, exists := m.handlers[requestType]; exists {
		return fmt.Errorf("handler already registered for type %s", requestType)
	}
	m.handlers[requestType] = handler
	return nil
}

// Send dispatches a request to its registered handler.
func (m *Mediator) Send(ctx context.Context, request Request) (Response, error) {
	if request == nil {
		return nil, fmt.Errorf("request cannot be nil")
	}
	handler, ok := m.handlers[reflect.TypeOf(request)]
	if !ok {
		return nil, fmt.Errorf("no handler registered for type %s", reflect.TypeOf(request))
	}
	return handler.Handle(ctx, request)
}
