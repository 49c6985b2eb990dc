package actions

import (
	"encoding/json"
	"time"
)

// ActionType names a flow-card action the host can invoke.
type ActionType string

const (
	// ActStartComparison arms (or re-arms) a named comparison timer.
	ActStartComparison ActionType = "START_COMPARISON"
	// ActEndComparison consumes a running comparison into a total.
	ActEndComparison ActionType = "END_COMPARISON"
	// ActSetCurrency publishes a currency-formatted number token.
	ActSetCurrency ActionType = "SET_CURRENCY"
	// ActCalculation publishes the result of a named calculation.
	ActCalculation ActionType = "CALCULATION"
	// ActSetVariables replaces the tracked variable list and
	// reconciles the token set.
	ActSetVariables ActionType = "SET_VARIABLES"
	// ActRefreshDurations re-renders duration tokens of running
	// comparisons. Submitted by the refresh ticker.
	ActRefreshDurations ActionType = "REFRESH_DURATIONS"
)

// StartPayload arms a comparison. Baseline is the optional numeric
// value the end value will be diffed against; hosts deliver it as a
// number or numeric string depending on flow authoring.
type StartPayload struct {
	Name     string `json:"name"`
	Baseline any    `json:"comparison,omitempty"`
}

// EndPayload finishes a comparison with an optional final value.
type EndPayload struct {
	Name  string `json:"name"`
	Value any    `json:"comparison,omitempty"`
}

// CurrencyPayload formats Amount as Code currency text.
type CurrencyPayload struct {
	Name   string `json:"name"`
	Amount any    `json:"number"`
	Code   string `json:"currency,omitempty"`
}

// CalculationPayload applies Operation to the two operands.
type CalculationPayload struct {
	Name      string `json:"name"`
	Operation string `json:"calculation"`
	A         any    `json:"number1"`
	B         any    `json:"number2"`
}

// VariablesPayload carries the full replacement variable list.
type VariablesPayload struct {
	Names []string `json:"names"`
}

// Envelope is the message the dispatcher actor consumes.
type Envelope struct {
	ID        string
	Type      ActionType
	Payload   json.RawMessage
	CreatedAt time.Time

	// ReplyCh, when set, receives the processing result exactly once.
	ReplyCh chan error `json:"-"`
}
