package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatID(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"Power Meter duration", "power-meter-duration"},
		{"  Washing   Machine  ", "washing-machine"},
		{"Heating (living room)", "heating-living-room"},
		{"UPPER", "upper"},
		{"already-formatted", "already-formatted"},
		{"café duration", "café-duration"},
		{"温度 duration", "温度-duration"},
		{"Ölheizung (Keller)", "ölheizung-keller"},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatID(tc.title), "title %q", tc.title)
	}
}

func TestFormatIDDeterministic(t *testing.T) {
	assert.Equal(t, FormatID("Fridge duration"), FormatID("Fridge duration"))
	assert.NotEqual(t, FormatID("Fridge duration"), FormatID("Fridge currency"))
}

func TestFormatIDNonLatinNamesStayDistinct(t *testing.T) {
	assert.NotEqual(t, FormatID("温度 duration"), FormatID("湿度 duration"))
	assert.NotEqual(t, FormatID("θερμοκρασία duration"), FormatID("υγρασία duration"))
}

func TestKind(t *testing.T) {
	assert.Len(t, Kinds(), 4)
	assert.Equal(t, "duration_suffix", KindDuration.SuffixKey())
	assert.Equal(t, "string", KindDuration.ValueType())
	assert.Equal(t, "string", KindCurrency.ValueType())
	assert.Equal(t, "number", KindComparison.ValueType())
	assert.Equal(t, "number", KindCalculation.ValueType())
}
