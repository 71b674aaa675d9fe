package dataset

import (
	"compress/gzip"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/gzhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_Load(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "text/csv")
		_, _ = w.Write([]byte(sampleCSV))
	}))
	defer server.Close()

	snap, err := NewLoader(LoaderConfig{URL: server.URL, Timeout: 5 * time.Second}).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, snap.Len())
	assert.Equal(t, server.URL, snap.Source)
	assert.NotEqual(t, uuid.Nil, snap.ID)
}

func TestLoader_WithClient(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(sampleCSV))
	}))
	defer server.Close()

	// the default client does not trust the test certificate
	_, err := NewLoader(LoaderConfig{URL: server.URL}).Load(context.Background())
	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Zero(t, fetchErr.StatusCode)

	snap, err := NewLoader(LoaderConfig{URL: server.URL}).WithClient(server.Client()).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, snap.Len())
}

func TestLoader_CompressedTransport(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.Header.Get("Accept-Encoding"), "gzip")
		w.Header().Set("Content-Encoding", "gzip")
		gz := gzip.NewWriter(w)
		_, _ = gz.Write([]byte(sampleCSV))
		_ = gz.Close()
	}))
	defer server.Close()

	client := &http.Client{Transport: gzhttp.Transport(http.DefaultTransport)}
	snap, err := NewLoader(LoaderConfig{URL: server.URL}).WithClient(client).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, snap.Len())
}

func TestLoader_Non2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer server.Close()

	snap, err := NewLoader(LoaderConfig{URL: server.URL}).Load(context.Background())
	require.Error(t, err)
	assert.Nil(t, snap)
	assert.True(t, errors.Is(err, ErrFetch))

	var ferr *FetchError
	require.True(t, errors.As(err, &ferr))
	assert.Equal(t, http.StatusInternalServerError, ferr.StatusCode)
	assert.Contains(t, ferr.Error(), "unexpected status 500")
}

func TestLoader_NetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := NewLoader(LoaderConfig{URL: url}).Load(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFetch))
}

func TestLoader_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>not a csv</html>\n"))
	}))
	defer server.Close()

	_, err := NewLoader(LoaderConfig{URL: server.URL}).Load(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrParse))
}

func TestLoader_MaxBytes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(sampleCSV))
	}))
	defer server.Close()

	_, err := NewLoader(LoaderConfig{URL: server.URL, MaxBytes: 20}).Load(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrParse))
	assert.True(t, errors.Is(err, errTooLarge))
}

func TestNewLoader_DefaultURL(t *testing.T) {
	assert.Equal(t, DefaultURL, NewLoader(LoaderConfig{}).URL())
}

type countingFetcher struct {
	calls atomic.Int32
	delay time.Duration
	err   error
}

func (f *countingFetcher) Load(ctx context.Context) (*Snapshot, error) {
	f.calls.Add(1)
	time.Sleep(f.delay)
	if f.err != nil {
		return nil, f.err
	}
	return Parse(strings.NewReader(sampleCSV), "fake")
}

func TestSource_LoadsOnce(t *testing.T) {
	fetcher := &countingFetcher{delay: 20 * time.Millisecond}
	src := NewSource(fetcher)

	ready, _ := src.Ready()
	assert.False(t, ready)

	var wg sync.WaitGroup
	snaps := make([]*Snapshot, 8)
	for i := range snaps {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s, err := src.Snapshot(context.Background())
			assert.NoError(t, err)
			snaps[i] = s
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), fetcher.calls.Load())
	for _, s := range snaps {
		assert.Same(t, snaps[0], s, "every caller sees the same snapshot")
	}

	ready, err := src.Ready()
	assert.True(t, ready)
	assert.NoError(t, err)
}

func TestSource_ErrorIsSticky(t *testing.T) {
	fetcher := &countingFetcher{err: &FetchError{URL: "x", Err: errors.New("down")}}
	src := NewSource(fetcher)

	_, err1 := src.Snapshot(context.Background())
	_, err2 := src.Snapshot(context.Background())

	assert.True(t, errors.Is(err1, ErrFetch))
	assert.Equal(t, err1, err2)
	assert.Equal(t, int32(1), fetcher.calls.Load(), "no retry")
}

func TestSource_CallerCancellation(t *testing.T) {
	fetcher := &countingFetcher{delay: 100 * time.Millisecond}
	src := NewSource(fetcher)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := src.Snapshot(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	snap, err := src.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, snap.Len())
}
