// Package host defines the capability surface the plugin consumes from
// the automation runtime: a persistent key/value settings store, dynamic
// token registration and localized string lookup. Production code runs
// against the SQLite-backed implementation in gormhost; tests substitute
// the in-memory fake in hosttest.
package host

import "context"

// TokenSpec describes a token at registration time.
type TokenSpec struct {
	// Type is the host-side value type, "string" or "number".
	Type string
	// Title is the human-readable label shown in the flow editor.
	Title string
}

// TokenHandle is a live registration. The token registry is the only
// holder of a handle; Unregister transfers destruction to the host and
// the local reference must be dropped afterwards.
type TokenHandle interface {
	ID() string
	SetValue(ctx context.Context, value any) error
	Unregister(ctx context.Context) error
}

// TokenAPI registers dynamic output tokens with the host.
type TokenAPI interface {
	CreateToken(ctx context.Context, id string, spec TokenSpec) (TokenHandle, error)
}

// SettingsAPI is the host's opaque key/value settings store.
// Get returns nil (not an error) when the key has never been written.
type SettingsAPI interface {
	GetSetting(ctx context.Context, key string) ([]byte, error)
	SetSetting(ctx context.Context, key string, value []byte) error
}

// Translator resolves a message key to a localized string.
// Unknown keys resolve to the key itself.
type Translator interface {
	Translate(key string) string
}

// Identity carries the host-provided app metadata used for startup logging.
type Identity struct {
	AppID   string
	Version string
	Locale  string
}

// Host is the full capability set handed to the plugin at startup.
type Host interface {
	TokenAPI
	SettingsAPI
	Translator
	Identity() Identity
}
