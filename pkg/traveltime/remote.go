package traveltime

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"

	"github.com/jordi-domingo/webdc3/pkg/contracts"
)

// RemoteConfig configures a Remote table. Zero values take the defaults
// noted per field.
type RemoteConfig struct {
	// BaseURL of the travel-time service; the client queries
	// {BaseURL}/arrivals. Required.
	BaseURL string

	RequestsPerSecond float64       // default 10
	Burst             int           // default 20
	RetryCount        int           // default 3
	RetryWait         time.Duration // default 2s
	Timeout           time.Duration // default 10s
}

// Remote computes arrivals through an HTTP travel-time service. Requests
// are rate limited and retried; responses are validated against the
// ascending-order contract before being handed to callers, so a
// misbehaving service surfaces as a computation failure instead of
// silently corrupting window anchors.
type Remote struct {
	client  *resty.Client
	limiter *rate.Limiter
	url     string
}

// NewRemote builds a Remote table from cfg.
func NewRemote(cfg RemoteConfig) *Remote {
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = 10
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 20
	}
	if cfg.RetryCount <= 0 {
		cfg.RetryCount = 3
	}
	if cfg.RetryWait <= 0 {
		cfg.RetryWait = 2 * time.Second
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	client := resty.New().
		SetRetryCount(cfg.RetryCount).
		SetRetryWaitTime(cfg.RetryWait).
		SetTimeout(cfg.Timeout)

	return &Remote{
		client:  client,
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
		url:     strings.TrimRight(cfg.BaseURL, "/") + "/arrivals",
	}
}

// Arrivals implements Table.
func (r *Remote) Arrivals(ctx context.Context, origin contracts.Origin, site contracts.Site) ([]contracts.PhaseArrival, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("travel-time rate limit: %w", err)
	}

	var arrivals []contracts.PhaseArrival
	resp, err := r.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"lat":     formatFloat(origin.Latitude),
			"lon":     formatFloat(origin.Longitude),
			"depth":   formatFloat(origin.DepthKm),
			"stalat":  formatFloat(site.Latitude),
			"stalon":  formatFloat(site.Longitude),
			"staelev": formatFloat(site.Elevation),
		}).
		SetResult(&arrivals).
		Get(r.url)
	if err != nil {
		return nil, fmt.Errorf("travel-time request: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("travel-time service: status %d: %s", resp.StatusCode(), resp.String())
	}

	if err := ensureAscending(arrivals); err != nil {
		return nil, err
	}
	return arrivals, nil
}

func ensureAscending(arrivals []contracts.PhaseArrival) error {
	for i := 1; i < len(arrivals); i++ {
		if arrivals[i].Time < arrivals[i-1].Time {
			return fmt.Errorf("travel-time service: arrivals out of order at %q (%.3fs after %.3fs)",
				arrivals[i].Phase, arrivals[i].Time, arrivals[i-1].Time)
		}
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
