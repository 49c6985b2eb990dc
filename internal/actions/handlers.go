package actions

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"elapse/internal/calc"
	"elapse/internal/currency"
	"elapse/internal/logger"
	"elapse/internal/pkg/convert"
	"elapse/internal/token"
)

type startHandler struct{}

func (*startHandler) Type() ActionType { return ActStartComparison }

func (*startHandler) Handle(ctx context.Context, d *Deps, payload json.RawMessage, traceID string) error {
	var p StartPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return fmt.Errorf("invalid payload for %s: %w", ActStartComparison, err)
	}
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return fmt.Errorf("%s missing name", ActStartComparison)
	}
	return d.Engine.Start(ctx, name, convert.ToFloat64Ptr(p.Baseline))
}

type endHandler struct{}

func (*endHandler) Type() ActionType { return ActEndComparison }

func (*endHandler) Handle(ctx context.Context, d *Deps, payload json.RawMessage, traceID string) error {
	var p EndPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return fmt.Errorf("invalid payload for %s: %w", ActEndComparison, err)
	}
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return fmt.Errorf("%s missing name", ActEndComparison)
	}
	_, err := d.Engine.End(ctx, name, convert.ToFloat64Ptr(p.Value))
	return err
}

type currencyHandler struct{}

func (*currencyHandler) Type() ActionType { return ActSetCurrency }

func (*currencyHandler) Handle(ctx context.Context, d *Deps, payload json.RawMessage, traceID string) error {
	var p CurrencyPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return fmt.Errorf("invalid payload for %s: %w", ActSetCurrency, err)
	}
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return fmt.Errorf("%s missing name", ActSetCurrency)
	}
	amount, ok := convert.ToFloat64(p.Amount)
	if !ok {
		return fmt.Errorf("%s: number is not numeric", ActSetCurrency)
	}
	code := strings.TrimSpace(p.Code)
	if code == "" {
		code = d.DefaultCurrency
	}
	text, err := currency.Format(amount, code, d.Locale)
	if err != nil {
		return err
	}
	return d.Tokens.Set(ctx, name, token.KindCurrency, text)
}

type calculationHandler struct{}

func (*calculationHandler) Type() ActionType { return ActCalculation }

func (*calculationHandler) Handle(ctx context.Context, d *Deps, payload json.RawMessage, traceID string) error {
	var p CalculationPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return fmt.Errorf("invalid payload for %s: %w", ActCalculation, err)
	}
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return fmt.Errorf("%s missing name", ActCalculation)
	}
	op, err := calc.Parse(p.Operation)
	if err != nil {
		return err
	}
	a, ok := convert.ToFloat64(p.A)
	if !ok {
		return fmt.Errorf("%s: number1 is not numeric", ActCalculation)
	}
	b, ok := convert.ToFloat64(p.B)
	if !ok {
		return fmt.Errorf("%s: number2 is not numeric", ActCalculation)
	}
	result, err := calc.Apply(op, a, b)
	if err != nil {
		return err
	}
	return d.Tokens.Set(ctx, name, token.KindCalculation, calc.Round2(result))
}

type variablesHandler struct{}

func (*variablesHandler) Type() ActionType { return ActSetVariables }

func (*variablesHandler) Handle(ctx context.Context, d *Deps, payload json.RawMessage, traceID string) error {
	var p VariablesPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return fmt.Errorf("invalid payload for %s: %w", ActSetVariables, err)
	}
	names := make([]string, 0, len(p.Names))
	seen := make(map[string]struct{}, len(p.Names))
	for _, n := range p.Names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		names = append(names, n)
	}
	doc := d.Store.Document().Clone()
	doc.Variables = names
	logger.Infof("variables updated: %d tracked", len(names))
	return d.Store.Update(ctx, doc, true)
}

type refreshHandler struct{}

func (*refreshHandler) Type() ActionType { return ActRefreshDurations }

func (*refreshHandler) Handle(ctx context.Context, d *Deps, payload json.RawMessage, traceID string) error {
	return d.Engine.RefreshDurations(ctx)
}
