// Package settings owns the persisted settings document and keeps the
// dynamic token set reconciled with the tracked variable list.
package settings

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"

	"elapse/internal/host"
	"elapse/internal/logger"
	"elapse/internal/token"
)

// DefaultKey is the namespaced settings key used when none is configured.
const DefaultKey = "elapse.settings"

// StoreConfig tunes store behavior.
type StoreConfig struct {
	// Key is the host store key the document persists under.
	Key string
	// ResetOnSync reproduces the legacy reconciliation behavior of
	// blanking every tracked token's value on each variables update.
	// Off by default: surviving tokens keep their values and only
	// missing tokens are created.
	ResetOnSync bool
}

// Store holds the live document and coordinates persistence with token
// reconciliation. Owned by the dispatcher goroutine; no locking.
type Store struct {
	api         host.SettingsAPI
	tokens      *token.Registry
	key         string
	resetOnSync bool
	doc         *Document
}

// NewStore builds a store around the host settings API and the token
// registry used for reconciliation.
func NewStore(api host.SettingsAPI, tokens *token.Registry, cfg StoreConfig) *Store {
	key := cfg.Key
	if key == "" {
		key = DefaultKey
	}
	return &Store{
		api:         api,
		tokens:      tokens,
		key:         key,
		resetOnSync: cfg.ResetOnSync,
		doc:         NewDocument(),
	}
}

// Load reads the persisted document, or initializes an empty one when
// the key was never written. Documents from a newer schema version are
// refused rather than silently reinterpreted.
func (s *Store) Load(ctx context.Context) error {
	raw, err := s.api.GetSetting(ctx, s.key)
	if err != nil {
		return fmt.Errorf("settings: reading %q: %w", s.key, err)
	}
	if len(raw) == 0 {
		s.doc = NewDocument()
		logger.Infof("settings: no stored document under %q, starting empty", s.key)
		return nil
	}
	if v := gjson.GetBytes(raw, "version"); v.Exists() && v.Int() > CurrentVersion {
		return fmt.Errorf("settings: stored document version %d is newer than supported %d", v.Int(), CurrentVersion)
	}
	doc := NewDocument()
	if err := json.Unmarshal(raw, doc); err != nil {
		return fmt.Errorf("settings: parsing stored document: %w", err)
	}
	doc.normalize()
	s.doc = doc
	logger.Infof("settings: loaded %d variables, %d running comparisons, %d totals",
		len(doc.Variables), len(doc.Comparisons), len(doc.Totals))
	return nil
}

// Document returns the live document. Callers must Clone before
// building a replacement.
func (s *Store) Document() *Document {
	return s.doc
}

// Update replaces the whole document. The write is persisted first and
// the in-memory copy only swapped on success, so a PersistenceError
// leaves the previous state intact. When syncTokens is set, the token
// set is reconciled against the variable list change.
func (s *Store) Update(ctx context.Context, doc *Document, syncTokens bool) error {
	if doc == nil {
		return fmt.Errorf("settings: nil document")
	}
	doc.Version = CurrentVersion
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("settings: encoding document: %w", err)
	}
	if err := s.api.SetSetting(ctx, s.key, raw); err != nil {
		return &PersistenceError{Key: s.key, Err: err}
	}
	old := s.doc
	s.doc = doc
	if !syncTokens {
		return nil
	}
	return s.SyncTokens(ctx, doc.Variables, old.Variables)
}

// SyncTokens reconciles the live token set with a variable list change:
// every name in newNames gets its four kind-tokens, every name dropped
// from oldNames loses them. Names present in both lists keep their
// tokens (and, unless ResetOnSync is set, their values).
func (s *Store) SyncTokens(ctx context.Context, newNames, oldNames []string) error {
	for _, name := range newNames {
		for _, kind := range token.Kinds() {
			var err error
			if s.resetOnSync {
				err = s.tokens.Create(ctx, name, kind, nil)
			} else {
				err = s.tokens.Ensure(ctx, name, kind)
			}
			if err != nil {
				return fmt.Errorf("settings: syncing tokens for %q: %w", name, err)
			}
		}
	}
	for _, name := range removedNames(newNames, oldNames) {
		for _, kind := range token.Kinds() {
			if err := s.tokens.Remove(ctx, name, kind); err != nil {
				return fmt.Errorf("settings: removing tokens for %q: %w", name, err)
			}
		}
		logger.Infof("settings: variable %q removed, tokens unregistered", name)
	}
	return nil
}

// removedNames computes oldNames minus newNames.
func removedNames(newNames, oldNames []string) []string {
	current := make(map[string]struct{}, len(newNames))
	for _, n := range newNames {
		current[n] = struct{}{}
	}
	var removed []string
	for _, n := range oldNames {
		if _, ok := current[n]; !ok {
			removed = append(removed, n)
		}
	}
	return removed
}
