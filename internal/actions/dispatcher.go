// Package actions dispatches host-triggered flow actions onto a single
// actor goroutine. Every envelope runs to completion before the next is
// picked up, so the settings document and token registry see strictly
// sequential access without locks.
package actions

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/google/uuid"

	"elapse/internal/engine"
	"elapse/internal/logger"
	"elapse/internal/settings"
	"elapse/internal/token"
)

// Handler processes one action type.
type Handler interface {
	// Type returns the action type this handler processes.
	Type() ActionType

	// Handle runs the action. traceID is the envelope ID, for logging.
	Handle(ctx context.Context, d *Deps, payload json.RawMessage, traceID string) error
}

// Deps is the state shared by all handlers. It is only ever touched
// from the dispatcher goroutine.
type Deps struct {
	Engine *engine.Engine
	Tokens *token.Registry
	Store  *settings.Store

	// Locale is the BCP 47 identifier used for currency formatting.
	Locale string
	// DefaultCurrency backs the SET_CURRENCY action when the flow
	// omits an ISO code.
	DefaultCurrency string
}

// Dispatcher is the actor owning all plugin state mutation.
type Dispatcher struct {
	deps     *Deps
	registry *HandlerRegistry

	msgCh  chan Envelope
	stopCh chan struct{}
	wg     sync.WaitGroup
}

// NewDispatcher builds a dispatcher with the default handlers.
func NewDispatcher(deps *Deps) *Dispatcher {
	registry := NewHandlerRegistry()
	registry.RegisterDefaultHandlers()
	return &Dispatcher{
		deps:     deps,
		registry: registry,
		msgCh:    make(chan Envelope, 16),
		stopCh:   make(chan struct{}),
	}
}

// Start launches the actor loop.
func (d *Dispatcher) Start() {
	d.wg.Add(1)
	go d.runLoop()
}

// Stop shuts the loop down and waits for the in-flight action.
func (d *Dispatcher) Stop() {
	close(d.stopCh)
	d.wg.Wait()
}

// Send queues an envelope without waiting for the result.
func (d *Dispatcher) Send(evt Envelope) error {
	if evt.ID == "" {
		evt.ID = uuid.NewString()
	}
	if evt.CreatedAt.IsZero() {
		evt.CreatedAt = time.Now()
	}
	select {
	case d.msgCh <- evt:
		return nil
	case <-d.stopCh:
		return fmt.Errorf("dispatcher is stopped")
	}
}

// SendSync queues an envelope and waits for the handler result. This is
// the entry point flow-card invocations go through: the host reports
// the returned error to the end user.
func (d *Dispatcher) SendSync(ctx context.Context, evt Envelope) error {
	if evt.ReplyCh == nil {
		evt.ReplyCh = make(chan error, 1)
	}
	if err := d.Send(evt); err != nil {
		return err
	}
	select {
	case err := <-evt.ReplyCh:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-d.stopCh:
		return fmt.Errorf("dispatcher stopped during sync call")
	}
}

// Invoke marshals payload and runs the action synchronously.
func (d *Dispatcher) Invoke(ctx context.Context, t ActionType, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding %s payload: %w", t, err)
	}
	return d.SendSync(ctx, Envelope{Type: t, Payload: raw})
}

func (d *Dispatcher) runLoop() {
	defer d.wg.Done()
	logger.Infof("action dispatcher started")
	for {
		select {
		case evt := <-d.msgCh:
			d.handleAction(evt)
		case <-d.stopCh:
			logger.Infof("action dispatcher stopping")
			return
		}
	}
}

// handleAction runs one envelope to completion. Panics are contained so
// one bad handler cannot take down the actor, and the reply channel is
// always answered to unblock synchronous callers.
func (d *Dispatcher) handleAction(evt Envelope) {
	var err error
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			logger.Errorf("dispatcher panic handling %s: %v", evt.Type, r)
			debug.PrintStack()
			err = fmt.Errorf("panic: %v", r)
		}
		if evt.ReplyCh != nil {
			evt.ReplyCh <- err
			close(evt.ReplyCh)
		}
		if dur := time.Since(start); dur > 100*time.Millisecond {
			logger.Warnf("slow action %s took %v", evt.Type, dur)
		}
	}()

	handler, ok := d.registry.Get(evt.Type)
	if !ok {
		err = fmt.Errorf("no handler registered for action type %s", evt.Type)
		logger.Warnf("%v", err)
		return
	}

	err = handler.Handle(context.Background(), d.deps, evt.Payload, evt.ID)
	if err != nil {
		logger.Errorf("action %s failed: %v", evt.Type, err)
	}
}
