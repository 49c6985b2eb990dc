package token

// Kind is one of the four derived tokens kept per tracked variable.
type Kind string

const (
	KindDuration    Kind = "duration"
	KindCurrency    Kind = "currency"
	KindComparison  Kind = "comparison"
	KindCalculation Kind = "calculation"
)

// Kinds lists every kind in creation order.
func Kinds() []Kind {
	return []Kind{KindDuration, KindCurrency, KindComparison, KindCalculation}
}

// SuffixKey is the translation key for the localized title suffix.
func (k Kind) SuffixKey() string {
	return string(k) + "_suffix"
}

// ValueType is the host-side token type: textual tokens for formatted
// output, numeric tokens for values flows can compare against.
func (k Kind) ValueType() string {
	switch k {
	case KindComparison, KindCalculation:
		return "number"
	default:
		return "string"
	}
}
