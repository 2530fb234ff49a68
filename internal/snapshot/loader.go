package snapshot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"
)

// ErrTransportFailure reports that every configured source failed. The UI
// surfaces it as the Error state; a later manual refresh fully recovers.
var ErrTransportFailure = errors.New("all snapshot sources failed")

// Source is one place a snapshot document can come from.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]byte, error)
}

// Loader walks its sources in priority order and returns the first payload
// that fetches successfully. It does not normalize.
type Loader struct {
	sources []Source
	log     zerolog.Logger
}

func NewLoader(log zerolog.Logger, sources ...Source) *Loader {
	return &Loader{sources: sources, log: log.With().Str("component", "snapshot-loader").Logger()}
}

// Load returns the raw payload and the name of the source that served it.
func (l *Loader) Load(ctx context.Context) ([]byte, string, error) {
	var lastErr error
	for _, src := range l.sources {
		data, err := src.Fetch(ctx)
		if err != nil {
			l.log.Warn().Str("source", src.Name()).Err(err).Msg("snapshot source failed")
			lastErr = err
			continue
		}
		return data, src.Name(), nil
	}
	if lastErr != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrTransportFailure, lastErr)
	}
	return nil, "", ErrTransportFailure
}

// HTTPSource fetches the published snapshot over HTTP. Each request carries
// a cache-busting timestamp query parameter so CDN copies never go stale.
type HTTPSource struct {
	url    string
	client *http.Client
}

func NewHTTPSource(url string, timeout time.Duration) *HTTPSource {
	return &HTTPSource{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

func (s *HTTPSource) Name() string { return "remote" }

func (s *HTTPSource) Fetch(ctx context.Context) ([]byte, error) {
	url := s.url + "?t=" + strconv.FormatInt(time.Now().UnixMilli(), 10)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// FileSource reads a snapshot from disk (the local copy and the test
// fixture tiers of the fallback chain).
type FileSource struct {
	name string
	path string
}

func NewFileSource(name, path string) *FileSource {
	return &FileSource{name: name, path: path}
}

func (s *FileSource) Name() string { return s.name }

func (s *FileSource) Fetch(context.Context) ([]byte, error) {
	if s.path == "" {
		return nil, errors.New("no path configured")
	}
	return os.ReadFile(s.path)
}

// FuncSource adapts a closure into a Source. The service layer uses it to
// splice the Redis last-good copy into the fallback chain.
type FuncSource struct {
	name  string
	fetch func(ctx context.Context) ([]byte, error)
}

func NewFuncSource(name string, fetch func(ctx context.Context) ([]byte, error)) *FuncSource {
	return &FuncSource{name: name, fetch: fetch}
}

func (s *FuncSource) Name() string { return s.name }

func (s *FuncSource) Fetch(ctx context.Context) ([]byte, error) {
	return s.fetch(ctx)
}
