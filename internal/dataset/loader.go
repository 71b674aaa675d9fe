package dataset

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/JonMunkholm/popdash/internal/logging"
)

// LoaderConfig configures a Loader.
type LoaderConfig struct {
	URL      string
	Timeout  time.Duration // zero disables the per-fetch timeout
	MaxBytes int64         // zero disables the size cap
}

// Loader fetches and parses the population CSV.
type Loader struct {
	cfg    LoaderConfig
	client *http.Client
}

// NewLoader creates a Loader. An empty URL falls back to DefaultURL.
func NewLoader(cfg LoaderConfig) *Loader {
	if cfg.URL == "" {
		cfg.URL = DefaultURL
	}
	return &Loader{
		cfg:    cfg,
		client: &http.Client{},
	}
}

// WithClient replaces the HTTP client, e.g. one with a decompressing transport.
func (l *Loader) WithClient(c *http.Client) *Loader {
	l.client = c
	return l
}

// URL returns the resource the loader fetches.
func (l *Loader) URL() string {
	return l.cfg.URL
}

// Load performs one GET and parses the body. There is no retry.
func (l *Loader) Load(ctx context.Context) (*Snapshot, error) {
	if l.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.cfg.Timeout)
		defer cancel()
	}

	logger := logging.WithFields(ctx, "url", l.cfg.URL)
	start := time.Now()
	logger.Info("dataset fetch started")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.cfg.URL, nil)
	if err != nil {
		return nil, &FetchError{URL: l.cfg.URL, Err: err}
	}
	req.Header.Set("Accept", "text/csv, text/plain;q=0.9, */*;q=0.1")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: l.cfg.URL, Err: err}
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			logger.Warn("failed to close response body", "error", cerr)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain a little so the connection can be reused.
		_, _ = io.CopyN(io.Discard, resp.Body, 4096)
		return nil, &FetchError{
			URL:        l.cfg.URL,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("status %s", resp.Status),
		}
	}

	body := newLimitReader(resp.Body, l.cfg.MaxBytes)
	snap, err := Parse(body, l.cfg.URL)
	if body.exceeded {
		return nil, &ParseError{Err: body.err()}
	}
	if err != nil {
		return nil, err
	}

	logger.Info("dataset loaded",
		"snapshot_id", snap.ID.String(),
		"rows", snap.Len(),
		"countries", len(snap.catalog),
		"bytes", body.BytesRead,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return snap, nil
}

// Fetcher produces a snapshot. *Loader satisfies it.
type Fetcher interface {
	Load(ctx context.Context) (*Snapshot, error)
}

// Source loads the dataset at most once and shares the outcome.
// The first call to Snapshot performs the fetch; concurrent callers block
// until it completes and then observe the same snapshot or error.
type Source struct {
	fetcher Fetcher
	start   sync.Once
	done    chan struct{}
	snap    *Snapshot
	err     error
}

// NewSource creates a Source around fetcher.
func NewSource(fetcher Fetcher) *Source {
	return &Source{
		fetcher: fetcher,
		done:    make(chan struct{}),
	}
}

// Preload starts the fetch in the background without waiting.
func (s *Source) Preload(ctx context.Context) {
	go func() {
		if _, err := s.Snapshot(ctx); err != nil {
			logging.LogError(logging.FromContext(ctx), "dataset preload failed", err)
		}
	}()
}

// Snapshot returns the loaded dataset, fetching it on first use.
// The fetch runs detached from the caller's cancellation so that an
// abandoned request cannot poison the shared result.
func (s *Source) Snapshot(ctx context.Context) (*Snapshot, error) {
	s.start.Do(func() {
		go s.load(context.WithoutCancel(ctx))
	})

	select {
	case <-s.done:
		return s.snap, s.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Ready reports whether the load has finished, and its error if any.
func (s *Source) Ready() (bool, error) {
	select {
	case <-s.done:
		return true, s.err
	default:
		return false, nil
	}
}

func (s *Source) load(ctx context.Context) {
	defer close(s.done)
	s.snap, s.err = s.fetcher.Load(ctx)
}
