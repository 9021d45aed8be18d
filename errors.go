package btcfg

import (
	"errors"
	"fmt"
	"strings"
)

// NotFoundError reports a configuration path that does not refer to an
// existing regular file.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("btcfg: config file %q does not exist", e.Path)
}

// UnsupportedFormatError reports a file extension outside the recognized set.
type UnsupportedFormatError struct {
	Path string
	Ext  string
}

func (e *UnsupportedFormatError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("btcfg: unsupported config format %q for %q (supported: .js, .json, .yaml, .yml, .hcl)", e.Ext, e.Path)
}

// CycleError reports a `_base_` inheritance chain that revisits a file.
type CycleError struct {
	Chain []string
}

func (e *CycleError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("btcfg: base config cycle: %s", strings.Join(e.Chain, " -> "))
}

// MissingKeyError reports a required configuration section that is absent.
type MissingKeyError struct {
	Key string
}

func (e *MissingKeyError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("btcfg: required config key %q is missing", e.Key)
}

// wrapLoadError attaches format and path context to parse or execution
// failures. Typed loader errors pass through untouched so callers can match
// them with errors.As.
func wrapLoadError(format, path string, err error) error {
	if err == nil {
		return nil
	}

	var (
		notFound    *NotFoundError
		unsupported *UnsupportedFormatError
		cycle       *CycleError
	)
	if errors.As(err, &notFound) || errors.As(err, &unsupported) || errors.As(err, &cycle) {
		return err
	}

	if strings.HasPrefix(err.Error(), "btcfg:") {
		return err
	}
	return fmt.Errorf("btcfg: %s config %q: %w", format, path, err)
}
