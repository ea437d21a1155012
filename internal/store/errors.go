package store

import (
	"errors"
	"strings"
)

// ConfigError reports a dataset that cannot be served. Period and Platform
// identify where the problem is; either may be empty when not applicable.
type ConfigError struct {
	Period   string
	Platform string
	Field    string
	Reason   string
}

func (e *ConfigError) Error() string {
	var parts []string
	if e.Period != "" {
		parts = append(parts, "period="+e.Period)
	}
	if e.Platform != "" {
		parts = append(parts, "platform="+e.Platform)
	}
	if e.Field != "" {
		parts = append(parts, "field="+e.Field)
	}
	msg := "dataset config"
	if len(parts) > 0 {
		msg += " [" + strings.Join(parts, " ") + "]"
	}
	return msg + ": " + e.Reason
}

// ConfigErrors unpacks every *ConfigError from a (possibly joined) error.
func ConfigErrors(err error) []*ConfigError {
	var out []*ConfigError
	var walk func(error)
	walk = func(e error) {
		if e == nil {
			return
		}
		if ce, ok := e.(*ConfigError); ok {
			out = append(out, ce)
			return
		}
		if j, ok := e.(interface{ Unwrap() []error }); ok {
			for _, inner := range j.Unwrap() {
				walk(inner)
			}
			return
		}
		walk(errors.Unwrap(e))
	}
	walk(err)
	return out
}
