package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/AngelCh415/bcm-report/internal/store"
	"github.com/AngelCh415/bcm-report/internal/utils"
)

// Loader turns a dataset reference into a Dataset. Remote fetches are
// retried on transport errors and temporary statuses; validation errors
// never are.
type Loader struct {
	c       HTTPClient
	backoff utils.Backoff
	log     *slog.Logger
}

func NewLoader(c HTTPClient, b utils.Backoff, log *slog.Logger) *Loader {
	if log == nil {
		log = slog.Default()
	}
	return &Loader{c: c, backoff: b, log: log}
}

func IsRemote(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

// Load reads ref. An empty ref yields the embedded default report.
func (l *Loader) Load(ctx context.Context, ref string) (*store.Dataset, error) {
	if !IsRemote(ref) {
		return store.Load(ref)
	}
	var doc []byte
	err := l.backoff.Do(ctx, retryable, func(attempt int) error {
		b, err := getBytes(ctx, l.c, ref)
		if err != nil {
			l.log.Warn("dataset fetch failed", slog.String("url", ref), slog.Int("attempt", attempt+1), slog.String("err", err.Error()))
			return err
		}
		doc = b
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("fetching dataset: %w", err)
	}
	l.log.Debug("dataset fetched", slog.String("url", ref), slog.Int("bytes", len(doc)))
	return store.Parse(doc)
}

func retryable(err error) bool {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Temporary()
	}
	return !errors.Is(err, context.Canceled)
}
