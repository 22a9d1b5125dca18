package manifest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/time/rate"

	"github.com/dbeckwith/rust-latest/pkg/logger"
)

// ErrNotPublished is returned when no manifest exists at the requested URL.
// For date-stamped lookups this is an expected outcome, not a failure.
var ErrNotPublished = errors.New("manifest not published")

const (
	fetchTimeout = 30 * time.Second

	// Pacing for walks across many date-stamped URLs against the static
	// distribution host.
	maxRequestsPerSecond = 4
	maxBurstSize         = 2
)

// Fetcher retrieves and decodes channel manifests over HTTP. Fetches are
// strictly sequential; the limiter only paces them.
type Fetcher struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *logger.Logger
}

func NewFetcher() *Fetcher {
	return &Fetcher{
		httpClient: &http.Client{
			Timeout: fetchTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(maxRequestsPerSecond), maxBurstSize),
		logger:  logger.NewLogger("fetcher"),
	}
}

// Fetch issues a single GET for the given URL and decodes the body as a
// channel manifest. A 404 response yields ErrNotPublished; every other
// non-200 status, network failure, or decode failure is a hard error.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*Manifest, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	f.logger.WithFields(logger.Fields{"url": url}).Debug("Fetching manifest")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for %s: %w", url, err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error making request to %s: %w", url, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		f.logger.WithFields(logger.Fields{"url": url}).Debug("Manifest not published")
		return nil, fmt.Errorf("%w at %s", ErrNotPublished, url)
	default:
		return nil, fmt.Errorf("error getting manifest from %s: status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error downloading manifest from %s: %w", url, err)
	}

	var m Manifest
	if err := toml.Unmarshal(body, &m); err != nil {
		return nil, fmt.Errorf("error reading manifest from %s: %w", url, err)
	}

	f.logger.WithFields(logger.Fields{
		"url":      url,
		"date":     m.Date.String(),
		"packages": len(m.Packages),
	}).Debug("Fetched manifest")

	return &m, nil
}
