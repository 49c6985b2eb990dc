package token

import (
	"context"
	"fmt"
	"strings"

	"elapse/internal/host"
	"elapse/internal/logger"
)

// Registry owns the live token handles, keyed by derived identifier.
// It guarantees at most one registration per identifier and is only
// ever touched from the dispatcher goroutine, so it carries no lock.
type Registry struct {
	api       host.TokenAPI
	translate func(string) string
	handles   map[string]host.TokenHandle
}

// NewRegistry wires the registry to the host token API and the
// translator used to build localized titles.
func NewRegistry(api host.TokenAPI, translate func(string) string) *Registry {
	if translate == nil {
		translate = func(key string) string { return key }
	}
	return &Registry{
		api:       api,
		translate: translate,
		handles:   make(map[string]host.TokenHandle),
	}
}

// Title builds the display title for a variable's kind-token:
// the tracked name followed by the localized kind suffix.
func (r *Registry) Title(name string, kind Kind) string {
	return strings.TrimSpace(name) + " " + r.translate(kind.SuffixKey())
}

// ID derives the host token identifier for a variable's kind-token.
func (r *Registry) ID(name string, kind Kind) string {
	return FormatID(r.Title(name, kind))
}

// Create registers the kind-token for name unless one already exists,
// then writes initial unconditionally. The unconditional write matches
// the host contract: a freshly ensured token always reflects the value
// the caller handed in, even when the handle was reused.
func (r *Registry) Create(ctx context.Context, name string, kind Kind, initial any) error {
	handle, err := r.ensure(ctx, name, kind)
	if err != nil {
		return err
	}
	if err := handle.SetValue(ctx, initial); err != nil {
		return fmt.Errorf("token %s: set value failed: %w", handle.ID(), err)
	}
	return nil
}

// Ensure registers the kind-token when missing and leaves the current
// value alone when the token already exists.
func (r *Registry) Ensure(ctx context.Context, name string, kind Kind) error {
	_, err := r.ensure(ctx, name, kind)
	return err
}

// Set publishes value on the kind-token, creating it first if needed.
func (r *Registry) Set(ctx context.Context, name string, kind Kind, value any) error {
	return r.Create(ctx, name, kind, value)
}

// Remove unregisters the kind-token and drops the handle.
// Removing a token that was never created is not an error.
func (r *Registry) Remove(ctx context.Context, name string, kind Kind) error {
	id := r.ID(name, kind)
	handle, ok := r.handles[id]
	if !ok {
		return nil
	}
	if err := handle.Unregister(ctx); err != nil {
		return fmt.Errorf("token %s: unregister failed: %w", id, err)
	}
	delete(r.handles, id)
	logger.Debugf("token removed: %s", id)
	return nil
}

// Has reports whether a handle is registered for the variable's kind-token.
func (r *Registry) Has(name string, kind Kind) bool {
	_, ok := r.handles[r.ID(name, kind)]
	return ok
}

// Len returns the number of live handles.
func (r *Registry) Len() int {
	return len(r.handles)
}

func (r *Registry) ensure(ctx context.Context, name string, kind Kind) (host.TokenHandle, error) {
	title := r.Title(name, kind)
	id := FormatID(title)
	if handle, ok := r.handles[id]; ok {
		return handle, nil
	}
	handle, err := r.api.CreateToken(ctx, id, host.TokenSpec{
		Type:  kind.ValueType(),
		Title: title,
	})
	if err != nil {
		return nil, fmt.Errorf("token %s: create failed: %w", id, err)
	}
	r.handles[id] = handle
	logger.Debugf("token created: %s (%s)", id, kind.ValueType())
	return handle, nil
}
