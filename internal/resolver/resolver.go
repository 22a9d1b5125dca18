// Package resolver implements the viable-manifest search: walking a release
// channel's manifests backward from the latest published date until one passes
// the availability filter, and deriving a toolchain name from the winner.
package resolver

import (
	"context"
	"errors"
	"fmt"

	"github.com/dbeckwith/rust-latest/internal/manifest"
	"github.com/dbeckwith/rust-latest/pkg/logger"
)

// ErrNoViableBuild is returned when no manifest within the search window
// passes the availability filter. It signals a legitimate negative result, not
// a defect.
var ErrNoViableBuild = errors.New("no viable build found")

// Options configures a single resolve run. All values are validated by the
// caller before they reach the resolver.
type Options struct {
	Channel         string
	Profile         string
	MaxAge          int
	IgnoredPackages []string
	Targets         []string
}

// Fetcher retrieves the manifest published at a URL, or reports
// manifest.ErrNotPublished when none exists there.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*manifest.Manifest, error)
}

// Resolver finds the most recent manifest of a channel in which every
// in-scope package is available on every in-scope target.
type Resolver struct {
	baseURL string
	fetcher Fetcher
	logger  *logger.Logger
}

func New(baseURL string, fetcher Fetcher) *Resolver {
	return &Resolver{
		baseURL: baseURL,
		fetcher: fetcher,
		logger:  logger.NewLogger("resolver"),
	}
}

// Resolve walks candidate dates newest-first, starting from the channel's
// latest manifest and going back at most opts.MaxAge days, and returns the
// first manifest that passes the availability filter.
//
// Dates with no published manifest are skipped; any other fetch failure
// aborts the search. The walk is strictly sequential and stops at the first
// viable manifest, so no older dates are fetched once one is found.
func (r *Resolver) Resolve(ctx context.Context, opts Options) (*manifest.Manifest, error) {
	latest, err := r.fetcher.Fetch(ctx, r.latestURL(opts.Channel))
	if err != nil {
		if errors.Is(err, manifest.ErrNotPublished) {
			return nil, fmt.Errorf("no manifest found for release channel %s", opts.Channel)
		}
		return nil, err
	}

	packages, ok := latest.Profiles[opts.Profile]
	if !ok {
		return nil, fmt.Errorf("channel %s has no profile named %s", opts.Channel, opts.Profile)
	}

	r.logger.WithFields(logger.Fields{
		"channel":  opts.Channel,
		"profile":  opts.Profile,
		"anchor":   latest.Date.String(),
		"max_age":  opts.MaxAge,
		"packages": len(packages),
		"targets":  len(opts.Targets),
	}).Info("Searching for viable manifest")

	for age := 0; age < opts.MaxAge; age++ {
		date := latest.Date.AddDays(-age)

		var m *manifest.Manifest
		if age == 0 {
			// The latest manifest doubles as the anchor candidate, so
			// its date-stamped URL is never requested.
			m = latest
		} else {
			m, err = r.fetcher.Fetch(ctx, r.datedURL(date, opts.Channel))
			if errors.Is(err, manifest.ErrNotPublished) {
				r.logger.WithFields(logger.Fields{"date": date.String()}).Debug("No manifest for date, continuing")
				continue
			}
			if err != nil {
				return nil, err
			}
		}

		if Viable(m, packages, opts.IgnoredPackages, opts.Targets) {
			r.logger.WithFields(logger.Fields{
				"date": m.Date.String(),
				"age":  age,
			}).Info("Found viable manifest")
			return m, nil
		}

		r.logger.WithFields(logger.Fields{"date": m.Date.String()}).Debug("Manifest not viable")
	}

	return nil, fmt.Errorf("no viable %s build found within %d days: %w", opts.Channel, opts.MaxAge, ErrNoViableBuild)
}

func (r *Resolver) latestURL(channel string) string {
	return fmt.Sprintf("%s/channel-rust-%s.toml", r.baseURL, channel)
}

func (r *Resolver) datedURL(date manifest.Date, channel string) string {
	return fmt.Sprintf("%s/%s/channel-rust-%s.toml", r.baseURL, date, channel)
}
