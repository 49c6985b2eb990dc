// Package hosttest provides an in-memory host implementation for tests.
// It records every token create/set/unregister and settings write so
// reconciliation behavior can be asserted call by call.
package hosttest

import (
	"context"
	"fmt"
	"sync"

	"elapse/internal/host"
)

// FakeToken is a registered token held by a FakeHost.
type FakeToken struct {
	TokenID  string
	Spec     host.TokenSpec
	Value    any
	SetCalls int

	owner *FakeHost
}

func (t *FakeToken) ID() string { return t.TokenID }

func (t *FakeToken) SetValue(_ context.Context, value any) error {
	t.owner.mu.Lock()
	defer t.owner.mu.Unlock()
	if t.owner.FailSetValue {
		return fmt.Errorf("set value rejected")
	}
	t.Value = value
	t.SetCalls++
	return nil
}

func (t *FakeToken) Unregister(context.Context) error {
	t.owner.mu.Lock()
	defer t.owner.mu.Unlock()
	delete(t.owner.tokens, t.TokenID)
	t.owner.Unregistered = append(t.owner.Unregistered, t.TokenID)
	return nil
}

// FakeHost implements host.Host backed by plain maps.
type FakeHost struct {
	mu       sync.Mutex
	settings map[string][]byte
	tokens   map[string]*FakeToken

	// Translations overrides Translate lookups; unset keys echo back.
	Translations map[string]string

	CreateCalls  int
	SetCalls     int
	Unregistered []string

	// Failure switches.
	FailSetSetting bool
	FailCreate     bool
	FailSetValue   bool
}

// New returns an empty fake host.
func New() *FakeHost {
	return &FakeHost{
		settings: make(map[string][]byte),
		tokens:   make(map[string]*FakeToken),
	}
}

func (h *FakeHost) CreateToken(_ context.Context, id string, spec host.TokenSpec) (host.TokenHandle, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.FailCreate {
		return nil, fmt.Errorf("create rejected")
	}
	if _, exists := h.tokens[id]; exists {
		return nil, fmt.Errorf("token %q already registered", id)
	}
	t := &FakeToken{TokenID: id, Spec: spec, owner: h}
	h.tokens[id] = t
	h.CreateCalls++
	return t, nil
}

func (h *FakeHost) GetSetting(_ context.Context, key string) ([]byte, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	v, ok := h.settings[key]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (h *FakeHost) SetSetting(_ context.Context, key string, value []byte) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.FailSetSetting {
		return fmt.Errorf("settings write rejected")
	}
	stored := make([]byte, len(value))
	copy(stored, value)
	h.settings[key] = stored
	h.SetCalls++
	return nil
}

func (h *FakeHost) Translate(key string) string {
	if v, ok := h.Translations[key]; ok {
		return v
	}
	return key
}

func (h *FakeHost) Identity() host.Identity {
	return host.Identity{AppID: "elapse.test", Version: "0.0.0", Locale: "en"}
}

// Token returns the registered token for id, if any.
func (h *FakeHost) Token(id string) (*FakeToken, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	t, ok := h.tokens[id]
	return t, ok
}

// TokenCount returns the number of currently registered tokens.
func (h *FakeHost) TokenCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.tokens)
}
