package settings_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"elapse/internal/host/hosttest"
	"elapse/internal/settings"
	"elapse/internal/token"
)

func newStore(t *testing.T, cfg settings.StoreConfig) (*settings.Store, *hosttest.FakeHost) {
	t.Helper()
	h := hosttest.New()
	reg := token.NewRegistry(h, h.Translate)
	return settings.NewStore(h, reg, cfg), h
}

func TestStoreLoadEmpty(t *testing.T) {
	s, _ := newStore(t, settings.StoreConfig{})
	require.NoError(t, s.Load(context.Background()))

	doc := s.Document()
	assert.Empty(t, doc.Variables)
	assert.Empty(t, doc.Comparisons)
	assert.Empty(t, doc.Totals)
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	h := hosttest.New()
	reg := token.NewRegistry(h, h.Translate)
	s := settings.NewStore(h, reg, settings.StoreConfig{})
	require.NoError(t, s.Load(ctx))

	started := time.Date(2026, 8, 23, 10, 0, 0, 0, time.UTC)
	baseline := 1234.5
	ms := int64(90_000)
	delta := 2.5

	doc := s.Document().Clone()
	doc.Variables = []string{"Fridge", "Heating"}
	doc.ReplaceComparison(settings.Comparison{Name: "Fridge", StartedAt: &started, Baseline: &baseline})
	doc.ReplaceTotal(settings.Total{Name: "Heating", DurationMS: &ms, DurationText: "1 minute 30 seconds", Comparison: &delta})
	require.NoError(t, s.Update(ctx, doc, false))

	reloaded := settings.NewStore(h, token.NewRegistry(h, h.Translate), settings.StoreConfig{})
	require.NoError(t, reloaded.Load(ctx))

	got := reloaded.Document()
	assert.Equal(t, []string{"Fridge", "Heating"}, got.Variables)

	cmp, ok := got.Comparison("Fridge")
	require.True(t, ok)
	require.NotNil(t, cmp.StartedAt)
	assert.True(t, cmp.StartedAt.Equal(started))
	require.NotNil(t, cmp.Baseline)
	assert.Equal(t, baseline, *cmp.Baseline)

	total, ok := got.Total("Heating")
	require.True(t, ok)
	require.NotNil(t, total.DurationMS)
	assert.Equal(t, ms, *total.DurationMS)
	assert.Equal(t, "1 minute 30 seconds", total.DurationText)
	require.NotNil(t, total.Comparison)
	assert.Equal(t, delta, *total.Comparison)
}

func TestStoreLoadRefusesNewerVersion(t *testing.T) {
	ctx := context.Background()
	h := hosttest.New()
	require.NoError(t, h.SetSetting(ctx, settings.DefaultKey, []byte(`{"version":99,"variables":[]}`)))

	s := settings.NewStore(h, token.NewRegistry(h, h.Translate), settings.StoreConfig{})
	err := s.Load(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "newer")
}

func TestStoreUpdatePersistenceFailure(t *testing.T) {
	ctx := context.Background()
	s, h := newStore(t, settings.StoreConfig{})
	require.NoError(t, s.Load(ctx))

	doc := s.Document().Clone()
	doc.Variables = []string{"Fridge"}
	require.NoError(t, s.Update(ctx, doc, true))

	h.FailSetSetting = true
	broken := s.Document().Clone()
	broken.Variables = []string{"Fridge", "Heating"}
	err := s.Update(ctx, broken, true)
	require.Error(t, err)
	assert.True(t, settings.IsPersistenceFailure(err))

	// The failed write must not leak into the live document or tokens.
	assert.Equal(t, []string{"Fridge"}, s.Document().Variables)
	assert.Equal(t, 4, h.TokenCount())
}

func TestSyncTokensCreatesFourPerName(t *testing.T) {
	ctx := context.Background()
	s, h := newStore(t, settings.StoreConfig{})

	require.NoError(t, s.SyncTokens(ctx, []string{"Fridge", "Heating"}, nil))
	assert.Equal(t, 8, h.TokenCount())
	assert.Equal(t, 8, h.CreateCalls)

	for _, kind := range token.Kinds() {
		tok, ok := h.Token(token.FormatID("Fridge " + kind.SuffixKey()))
		require.True(t, ok, "missing %s token", kind)
		assert.Nil(t, tok.Value)
	}
}

func TestSyncTokensNonLatinNames(t *testing.T) {
	ctx := context.Background()
	s, h := newStore(t, settings.StoreConfig{})

	require.NoError(t, s.SyncTokens(ctx, []string{"温度", "湿度"}, nil))
	assert.Equal(t, 8, h.TokenCount(), "each name owns its own four tokens")

	require.NoError(t, s.SyncTokens(ctx, []string{"湿度"}, []string{"温度", "湿度"}))
	assert.Equal(t, 4, h.TokenCount())
	for _, kind := range token.Kinds() {
		_, ok := h.Token(token.FormatID("湿度 " + kind.SuffixKey()))
		assert.True(t, ok, "surviving name must keep its %s token", kind)
	}
}

func TestSyncTokensIdempotent(t *testing.T) {
	ctx := context.Background()
	s, h := newStore(t, settings.StoreConfig{})

	require.NoError(t, s.SyncTokens(ctx, []string{"Fridge"}, nil))
	require.NoError(t, s.SyncTokens(ctx, []string{"Fridge"}, []string{"Fridge"}))

	assert.Equal(t, 4, h.CreateCalls, "surviving names must not be re-registered")
	assert.Empty(t, h.Unregistered)
}

func TestSyncTokensRemovesDroppedNames(t *testing.T) {
	ctx := context.Background()
	s, h := newStore(t, settings.StoreConfig{})

	require.NoError(t, s.SyncTokens(ctx, []string{"Fridge", "Heating"}, nil))
	require.NoError(t, s.SyncTokens(ctx, []string{"Fridge"}, []string{"Fridge", "Heating"}))

	assert.Equal(t, 4, h.TokenCount())
	assert.Len(t, h.Unregistered, 4)
	for _, kind := range token.Kinds() {
		_, ok := h.Token(token.FormatID("Heating " + kind.SuffixKey()))
		assert.False(t, ok, "%s token should be gone", kind)
	}
}

func TestSyncTokensKeepsSurvivorValues(t *testing.T) {
	ctx := context.Background()
	h := hosttest.New()
	reg := token.NewRegistry(h, h.Translate)
	s := settings.NewStore(h, reg, settings.StoreConfig{})

	require.NoError(t, s.SyncTokens(ctx, []string{"Fridge"}, nil))
	require.NoError(t, reg.Set(ctx, "Fridge", token.KindDuration, "5 minutes"))

	require.NoError(t, s.SyncTokens(ctx, []string{"Fridge", "Heating"}, []string{"Fridge"}))

	tok, ok := h.Token(token.FormatID("Fridge duration_suffix"))
	require.True(t, ok)
	assert.Equal(t, "5 minutes", tok.Value)
}

func TestSyncTokensResetOnSync(t *testing.T) {
	ctx := context.Background()
	h := hosttest.New()
	reg := token.NewRegistry(h, h.Translate)
	s := settings.NewStore(h, reg, settings.StoreConfig{ResetOnSync: true})

	require.NoError(t, s.SyncTokens(ctx, []string{"Fridge"}, nil))
	require.NoError(t, reg.Set(ctx, "Fridge", token.KindDuration, "5 minutes"))

	require.NoError(t, s.SyncTokens(ctx, []string{"Fridge"}, []string{"Fridge"}))

	tok, ok := h.Token(token.FormatID("Fridge duration_suffix"))
	require.True(t, ok)
	assert.Nil(t, tok.Value, "legacy mode blanks surviving tokens")
}

func TestDocumentNormalizeOnLoad(t *testing.T) {
	ctx := context.Background()
	h := hosttest.New()
	raw := `{"version":1,"variables":[" Fridge ","Fridge","","Heating"],` +
		`"comparisons":[{"token":"Fridge","date":null,"comparison":null},{"token":"Fridge","date":null,"comparison":2}],` +
		`"totals":[]}`
	require.NoError(t, h.SetSetting(ctx, settings.DefaultKey, []byte(raw)))

	s := settings.NewStore(h, token.NewRegistry(h, h.Translate), settings.StoreConfig{})
	require.NoError(t, s.Load(ctx))

	doc := s.Document()
	assert.Equal(t, []string{"Fridge", "Heating"}, doc.Variables)
	require.Len(t, doc.Comparisons, 1, "duplicate comparisons collapse to the last one")
	require.NotNil(t, doc.Comparisons[0].Baseline)
	assert.Equal(t, 2.0, *doc.Comparisons[0].Baseline)
}
