package settings

import (
	"strings"
	"time"
)

// CurrentVersion is the settings document schema version written on
// every persist. Documents from a newer schema are refused at load.
const CurrentVersion = 1

// Comparison is a running timer: the moment it started and the optional
// numeric baseline the end value will be compared against.
type Comparison struct {
	Name      string     `json:"token"`
	StartedAt *time.Time `json:"date"`
	Baseline  *float64   `json:"comparison"`
}

// Total is the outcome of a finished comparison.
type Total struct {
	Name         string   `json:"token"`
	DurationMS   *int64   `json:"duration"`
	DurationText string   `json:"duration_text,omitempty"`
	Comparison   *float64 `json:"comparison"`
}

// Document is the single persisted settings blob. It is replaced
// wholesale on every write, never mutated in place in the store.
type Document struct {
	Version     int          `json:"version"`
	Variables   []string     `json:"variables"`
	Comparisons []Comparison `json:"comparisons"`
	Totals      []Total      `json:"totals"`
}

// NewDocument returns an empty document at the current schema version.
func NewDocument() *Document {
	return &Document{
		Version:     CurrentVersion,
		Variables:   []string{},
		Comparisons: []Comparison{},
		Totals:      []Total{},
	}
}

// Clone deep-copies the document so callers can build a replacement
// without touching the store's live copy.
func (d *Document) Clone() *Document {
	if d == nil {
		return NewDocument()
	}
	out := &Document{
		Version:     d.Version,
		Variables:   append([]string(nil), d.Variables...),
		Comparisons: append([]Comparison(nil), d.Comparisons...),
		Totals:      append([]Total(nil), d.Totals...),
	}
	return out
}

// Comparison returns the entry for name, if any.
func (d *Document) Comparison(name string) (Comparison, bool) {
	for _, c := range d.Comparisons {
		if c.Name == name {
			return c, true
		}
	}
	return Comparison{}, false
}

// Total returns the entry for name, if any.
func (d *Document) Total(name string) (Total, bool) {
	for _, t := range d.Totals {
		if t.Name == name {
			return t, true
		}
	}
	return Total{}, false
}

// ReplaceComparison drops any existing entry for the same name and
// appends the new one. Keeps the at-most-one-per-name invariant.
func (d *Document) ReplaceComparison(c Comparison) {
	d.RemoveComparison(c.Name)
	d.Comparisons = append(d.Comparisons, c)
}

// RemoveComparison deletes the entry for name when present.
func (d *Document) RemoveComparison(name string) {
	kept := d.Comparisons[:0]
	for _, c := range d.Comparisons {
		if c.Name != name {
			kept = append(kept, c)
		}
	}
	d.Comparisons = kept
}

// ReplaceTotal drops any existing entry for the same name and appends
// the new one.
func (d *Document) ReplaceTotal(t Total) {
	kept := d.Totals[:0]
	for _, existing := range d.Totals {
		if existing.Name != t.Name {
			kept = append(kept, existing)
		}
	}
	d.Totals = append(kept, t)
}

// normalize repairs a freshly loaded document: nil slices become empty,
// variable names are trimmed and deduplicated, and the per-name
// uniqueness invariant on comparisons/totals is restored keeping the
// last occurrence.
func (d *Document) normalize() {
	if d.Version == 0 {
		d.Version = CurrentVersion
	}
	vars := make([]string, 0, len(d.Variables))
	seen := make(map[string]struct{}, len(d.Variables))
	for _, v := range d.Variables {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		vars = append(vars, v)
	}
	d.Variables = vars

	comparisons := make([]Comparison, 0, len(d.Comparisons))
	for _, c := range d.Comparisons {
		replaced := false
		for i := range comparisons {
			if comparisons[i].Name == c.Name {
				comparisons[i] = c
				replaced = true
				break
			}
		}
		if !replaced {
			comparisons = append(comparisons, c)
		}
	}
	d.Comparisons = comparisons

	totals := make([]Total, 0, len(d.Totals))
	for _, t := range d.Totals {
		replaced := false
		for i := range totals {
			if totals[i].Name == t.Name {
				totals[i] = t
				replaced = true
				break
			}
		}
		if !replaced {
			totals = append(totals, t)
		}
	}
	d.Totals = totals
}
