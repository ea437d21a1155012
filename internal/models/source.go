package models

import (
	"errors"
	"fmt"
	"strings"
)

// Source names one of the platform lists a dataset carries. There is no
// next-period actual, so it has no Source.
type Source string

const (
	CurrentActual    Source = "current-actual"
	CurrentProjected Source = "current-projected"
	NextProjected    Source = "next-projected"
)

var ErrUnknownSource = errors.New("unknown source")

func Sources() []Source {
	return []Source{CurrentActual, CurrentProjected, NextProjected}
}

func ParseSource(s string) (Source, error) {
	switch src := Source(strings.ToLower(strings.TrimSpace(s))); src {
	case CurrentActual, CurrentProjected, NextProjected:
		return src, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSource, s)
}
