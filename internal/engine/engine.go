// Package engine implements the comparison timer lifecycle: Start
// records a timestamped baseline, End turns it into a persisted total
// and publishes the derived duration and delta tokens.
package engine

import (
	"context"
	"time"

	"elapse/internal/calc"
	"elapse/internal/logger"
	"elapse/internal/settings"
	"elapse/internal/token"
)

// Engine runs start/end bookkeeping on top of the settings store.
// Like the store it is owned by the dispatcher goroutine.
type Engine struct {
	store     *settings.Store
	tokens    *token.Registry
	translate func(string) string

	// now is swappable for deterministic tests.
	now func() time.Time
}

// New builds an engine. translate resolves the duration unit labels.
func New(store *settings.Store, tokens *token.Registry, translate func(string) string) *Engine {
	return &Engine{
		store:     store,
		tokens:    tokens,
		translate: translate,
		now:       time.Now,
	}
}

// Start records a new comparison for name, stamped now. Starting a name
// that is already running silently discards the previous comparison:
// restart semantics, so a flow can re-arm a timer without ending it.
func (e *Engine) Start(ctx context.Context, name string, baseline *float64) error {
	started := e.now()
	doc := e.store.Document().Clone()
	doc.ReplaceComparison(settings.Comparison{
		Name:      name,
		StartedAt: &started,
		Baseline:  baseline,
	})
	if err := e.store.Update(ctx, doc, false); err != nil {
		return err
	}
	logger.Infof("comparison started: %s", name)
	return nil
}

// End consumes the running comparison for name. The existence check
// happens before any computation so a missing comparison fails
// atomically with NotFound and mutates nothing. On success the total
// replaces any previous one for the name, the document is persisted,
// and the duration token is updated (plus the comparison token when a
// delta could be computed).
func (e *Engine) End(ctx context.Context, name string, final *float64) (settings.Total, error) {
	doc := e.store.Document().Clone()
	cmp, ok := doc.Comparison(name)
	if !ok || cmp.StartedAt == nil {
		return settings.Total{}, &NotFoundError{Name: name}
	}

	elapsed := e.now().Sub(*cmp.StartedAt)
	if elapsed < 0 {
		elapsed = -elapsed
	}
	ms := elapsed.Milliseconds()
	total := settings.Total{
		Name:         name,
		DurationMS:   &ms,
		DurationText: FormatDuration(ms, e.translate),
	}
	if final != nil && cmp.Baseline != nil {
		delta := calc.Round2(*final - *cmp.Baseline)
		total.Comparison = &delta
	}

	doc.RemoveComparison(name)
	doc.ReplaceTotal(total)
	if err := e.store.Update(ctx, doc, false); err != nil {
		return settings.Total{}, err
	}

	if err := e.tokens.Set(ctx, name, token.KindDuration, total.DurationText); err != nil {
		return settings.Total{}, err
	}
	if total.Comparison != nil {
		if err := e.tokens.Set(ctx, name, token.KindComparison, *total.Comparison); err != nil {
			return settings.Total{}, err
		}
	}
	logger.Infof("comparison ended: %s (%s)", name, total.DurationText)
	return total, nil
}

// RefreshDurations re-renders the duration token of every running
// comparison against the current clock. Driven by the refresh ticker;
// touches tokens only, never the persisted document.
func (e *Engine) RefreshDurations(ctx context.Context) error {
	now := e.now()
	for _, cmp := range e.store.Document().Comparisons {
		if cmp.StartedAt == nil {
			continue
		}
		elapsed := now.Sub(*cmp.StartedAt)
		if elapsed < 0 {
			elapsed = -elapsed
		}
		text := FormatDuration(elapsed.Milliseconds(), e.translate)
		if err := e.tokens.Set(ctx, cmp.Name, token.KindDuration, text); err != nil {
			return err
		}
	}
	return nil
}

// SetNow overrides the clock. Test hook.
func (e *Engine) SetNow(now func() time.Time) {
	if now != nil {
		e.now = now
	}
}
