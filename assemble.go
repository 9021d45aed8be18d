package btcfg

import "fmt"

// Tuple is a fixed-size sequence produced when exchange-section lists are
// frozen during assembly. Callers must treat it as immutable.
type Tuple []any

func exchangeDefaults() map[string]any {
	return map[string]any{
		"open_cost":       0.0005,
		"close_cost":      0.0015,
		"min_cost":        5.0,
		"trade_unit":      100.0,
		"cash_limit":      nil,
		"generate_report": false,
	}
}

func backtestDefaults() map[string]any {
	return map[string]any{
		"debug_single_stock": nil,
		"debug_single_day":   nil,
		"concurrency":        -1,
		"multiplier":         1.0,
		"output_dir":         "outputs/",
	}
}

// Assemble loads the configuration at path and finalizes it for the backtest
// engine: the required `exchange` section is merged onto the exchange cost
// defaults with its list values frozen into tuples, then the whole mapping is
// merged onto the top-level backtest defaults. When a schema is configured the
// assembled mapping is validated before being returned.
func (l *Loader) Assemble(path string) (map[string]any, error) {
	config, err := l.Load(path)
	if err != nil {
		return nil, err
	}

	section, ok := config["exchange"]
	if !ok {
		return nil, &MissingKeyError{Key: "exchange"}
	}
	exchange, ok := section.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("btcfg: config key %q must be a mapping, got %T", "exchange", section)
	}

	config["exchange"] = freezeSequences(Merge(exchange, exchangeDefaults()))
	config = Merge(config, backtestDefaults())

	if l.cfg.schema != nil {
		if err := validateSchema(l.cfg.schema, config); err != nil {
			return nil, err
		}
	}
	return config, nil
}

// freezeSequences converts list values into tuples, recursing into nested
// mappings first. List elements themselves are kept as-is.
func freezeSequences(config map[string]any) map[string]any {
	out := make(map[string]any, len(config))
	for key, value := range config {
		switch v := value.(type) {
		case []any:
			out[key] = append(Tuple(nil), v...)
		case map[string]any:
			out[key] = freezeSequences(v)
		default:
			out[key] = value
		}
	}
	return out
}
