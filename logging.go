package btcfg

import "time"

// LoadEvent describes a single file load attempt for logging.
type LoadEvent struct {
	ID       string
	Path     string
	Format   string
	Bases    []string
	Duration time.Duration
	Err      error
}

// LoadLogger records loader events.
type LoadLogger interface {
	LogLoad(LoadEvent)
}

// LoadLoggerFunc adapts a function to LoadLogger.
type LoadLoggerFunc func(LoadEvent)

// LogLoad implements LoadLogger.
func (f LoadLoggerFunc) LogLoad(event LoadEvent) {
	if f != nil {
		f(event)
	}
}

type noopLoadLogger struct{}

func (noopLoadLogger) LogLoad(LoadEvent) {}

// WithLoadLogger attaches a load logger to the Loader.
func WithLoadLogger(logger LoadLogger) Option {
	return func(cfg *loaderConfig) {
		if logger == nil {
			cfg.logger = noopLoadLogger{}
			return
		}
		cfg.logger = logger
	}
}
