// Package currency renders numbers as localized currency text for the
// currency token.
package currency

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// UnknownCurrencyError reports an ISO 4217 code the formatter does not
// recognize. Explicit failure instead of a silent locale fallback.
type UnknownCurrencyError struct {
	Code string
}

func (e *UnknownCurrencyError) Error() string {
	return fmt.Sprintf("UNKNOWN_CURRENCY: %q is not a known ISO 4217 code", e.Code)
}

// IsUnknownCurrency reports whether err is an UnknownCurrencyError.
func IsUnknownCurrency(err error) bool {
	var ue *UnknownCurrencyError
	return errors.As(err, &ue)
}

// Format renders amount as currency text for the given ISO code and
// BCP 47 locale, e.g. Format(12.5, "USD", "en-US") == "$ 12.50".
// An unparseable locale falls back to English; an unknown code fails.
func Format(amount float64, code, locale string) (string, error) {
	unit, err := currency.ParseISO(strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return "", &UnknownCurrencyError{Code: code}
	}
	tag, err := language.Parse(strings.TrimSpace(locale))
	if err != nil {
		tag = language.English
	}
	p := message.NewPrinter(tag)
	return p.Sprint(currency.NarrowSymbol(unit.Amount(amount))), nil
}
