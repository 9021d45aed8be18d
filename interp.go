package btcfg

import (
	"regexp"
	"strings"
)

var interpPattern = regexp.MustCompile(`^\$\{(.+)\}$`)

// WithInterpolation enables `${...}` expression interpolation on loaded
// configurations. A string value consisting solely of a placeholder is
// replaced by the evaluated result, which may be of any type. Expressions see
// the top-level configuration snapshot by key, the whole mapping as `config`,
// and any registered host functions the evaluator was built with.
func WithInterpolation(evaluator Evaluator) Option {
	return func(cfg *loaderConfig) {
		cfg.interpolator = evaluator
	}
}

func (l *Loader) interpolateConfig(config map[string]any) (map[string]any, error) {
	ctx := EvalContext{Snapshot: config}
	resolved, err := l.interpolateValue(config, ctx)
	if err != nil {
		return nil, err
	}
	return resolved.(map[string]any), nil
}

func (l *Loader) interpolateValue(value any, ctx EvalContext) (any, error) {
	switch v := value.(type) {
	case string:
		match := interpPattern.FindStringSubmatch(v)
		if match == nil {
			return v, nil
		}
		return l.cfg.interpolator.Evaluate(ctx, strings.TrimSpace(match[1]))
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			resolved, err := l.interpolateValue(item, ctx)
			if err != nil {
				return nil, err
			}
			out[key] = resolved
		}
		return out, nil
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			resolved, err := l.interpolateValue(item, ctx)
			if err != nil {
				return nil, err
			}
			out[i] = resolved
		}
		return out, nil
	case Tuple:
		out := make(Tuple, len(v))
		for i, item := range v {
			resolved, err := l.interpolateValue(item, ctx)
			if err != nil {
				return nil, err
			}
			out[i] = resolved
		}
		return out, nil
	default:
		return value, nil
	}
}
