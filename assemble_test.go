package btcfg

import (
	"errors"
	"reflect"
	"testing"
)

func TestAssembleAppliesExchangeDefaults(t *testing.T) {
	content := `
exchange:
  open_cost: 0.01
  tiers: [1, 2]
strategy: twap
`
	path := writeConfig(t, t.TempDir(), "config.yaml", content)

	got, err := Assemble(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	exchange, ok := got["exchange"].(map[string]any)
	if !ok {
		t.Fatalf("expected exchange mapping, got %T", got["exchange"])
	}
	wantExchange := map[string]any{
		"open_cost":       0.01,
		"close_cost":      0.0015,
		"min_cost":        5.0,
		"trade_unit":      100.0,
		"cash_limit":      nil,
		"generate_report": false,
		"tiers":           Tuple{1, 2},
	}
	if !reflect.DeepEqual(wantExchange, exchange) {
		t.Errorf("exchange mismatch:\nwant: %#v\n got: %#v", wantExchange, exchange)
	}
}

func TestAssembleAppliesTopLevelDefaults(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "config.yaml", "exchange: {}\nconcurrency: 4\n")

	got, err := Assemble(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got["concurrency"] != 4 {
		t.Errorf("expected explicit concurrency to win, got %v", got["concurrency"])
	}
	if got["multiplier"] != 1.0 {
		t.Errorf("expected default multiplier, got %v", got["multiplier"])
	}
	if got["output_dir"] != "outputs/" {
		t.Errorf("expected default output_dir, got %v", got["output_dir"])
	}
	if value, ok := got["debug_single_stock"]; !ok || value != nil {
		t.Errorf("expected debug_single_stock default nil, got %v", value)
	}
	if value, ok := got["debug_single_day"]; !ok || value != nil {
		t.Errorf("expected debug_single_day default nil, got %v", value)
	}
}

func TestAssembleFreezesNestedSequences(t *testing.T) {
	content := `
exchange:
  limits:
    per_day: [100, 200]
`
	path := writeConfig(t, t.TempDir(), "config.yaml", content)

	got, err := Assemble(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	exchange := got["exchange"].(map[string]any)
	limits, ok := exchange["limits"].(map[string]any)
	if !ok {
		t.Fatalf("expected limits mapping, got %T", exchange["limits"])
	}
	if _, ok := limits["per_day"].(Tuple); !ok {
		t.Errorf("expected nested list frozen into Tuple, got %T", limits["per_day"])
	}
}

func TestAssembleMissingExchange(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "config.yaml", "strategy: twap\n")

	_, err := Assemble(path)
	var missing *MissingKeyError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingKeyError, got %T: %v", err, err)
	}
	if missing.Key != "exchange" {
		t.Errorf("expected missing key exchange, got %q", missing.Key)
	}
}

func TestAssembleExchangeMustBeMapping(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "config.yaml", "exchange: 5\n")

	if _, err := Assemble(path); err == nil {
		t.Fatal("expected error for non-mapping exchange section")
	}
}

func TestAssembleExchangeInheritedFromBase(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "base.yaml", "exchange:\n  open_cost: 0.02\n")
	child := writeConfig(t, dir, "child.yaml", "_base_: base.yaml\nmultiplier: 2.0\n")

	got, err := Assemble(child)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	exchange := got["exchange"].(map[string]any)
	if exchange["open_cost"] != 0.02 {
		t.Errorf("expected inherited open_cost, got %v", exchange["open_cost"])
	}
	if got["multiplier"] != 2.0 {
		t.Errorf("expected explicit multiplier, got %v", got["multiplier"])
	}
}
