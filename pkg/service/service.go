// Package service is the library façade over the engine: it accepts raw
// request parameters, assigns a request ID, drives the window resolvers
// and reports telemetry. Transport layers (CLI, future HTTP) talk to
// this package only.
package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/jordi-domingo/webdc3/pkg/contracts"
	"github.com/jordi-domingo/webdc3/pkg/inventory"
	"github.com/jordi-domingo/webdc3/pkg/observability"
	"github.com/jordi-domingo/webdc3/pkg/request"
	"github.com/jordi-domingo/webdc3/pkg/traveltime"
	"github.com/jordi-domingo/webdc3/pkg/window"
)

// Config assembles a Service.
type Config struct {
	// Resolver is passed through to the window resolver.
	Resolver window.Config
	// Observability may be nil; a disabled provider is used then.
	Observability *observability.Provider
}

// Service orchestrates request parsing and window resolution.
type Service struct {
	cache    inventory.Cache
	resolver *window.Resolver
	obs      *observability.Provider
	logger   *slog.Logger
}

// New builds a Service over the given collaborators.
func New(cache inventory.Cache, table traveltime.Table, cfg Config) *Service {
	obs := cfg.Observability
	if obs == nil {
		obs = mustDisabledProvider()
	}
	return &Service{
		cache:    cache,
		resolver: window.NewResolver(cache, table, cfg.Resolver),
		obs:      obs,
		logger:   slog.Default().With("component", "service"),
	}
}

func mustDisabledProvider() *observability.Provider {
	p, err := observability.New(context.Background(), &observability.Config{Enabled: false})
	if err != nil {
		// Unreachable: a disabled provider performs no I/O.
		panic(err)
	}
	return p
}

// Resolve serves one window request from raw parameters. Fatal errors
// (malformed input, line limit, backend failure) return alone, with no
// partial results.
func (s *Service) Resolve(ctx context.Context, params request.Parameters) ([]contracts.TimeWindow, error) {
	requestID := uuid.New().String()
	logger := s.logger.With("request_id", requestID)

	ctx, done := s.obs.TrackOperation(ctx, "webdc3.resolve",
		attribute.String("request.id", requestID))

	req, err := request.Parse(params)
	if err != nil {
		logger.Warn("rejected request", "error", err)
		done(err)
		return nil, err
	}

	var windows []contracts.TimeWindow
	switch req.Mode {
	case request.ModeExplicit:
		logger.Info("resolving explicit window request",
			"streams", len(req.Streams), "start", req.Start, "end", req.End)
		windows, err = s.resolver.ResolveExplicit(ctx, req.Start, req.End, req.Streams)
	case request.ModeEventRelative:
		logger.Info("resolving event-relative window request",
			"streams", len(req.Streams), "events", len(req.Events),
			"startphase", req.Policy.StartPhase, "endphase", req.Policy.EndPhase)
		windows, err = s.resolver.ResolveEvents(ctx, req.Events, req.Streams, req.Policy)
	}
	done(err)

	if err != nil {
		logger.Warn("request failed", "error", err)
		return nil, err
	}

	s.obs.RecordWindows(ctx, len(windows))
	logger.Info("request resolved", "windows", len(windows))
	return windows, nil
}

// List exposes the inventory's wildcard listing for catalog queries.
func (s *Service) List(ctx context.Context, start, end time.Time, pattern contracts.ChannelKey) ([]inventory.StreamEpoch, error) {
	ctx, done := s.obs.TrackOperation(ctx, "webdc3.list")
	epochs, err := s.cache.List(ctx, start, end, pattern)
	done(err)
	return epochs, err
}

// Phases lists the anchor phases callers may request.
func (s *Service) Phases() []inventory.Phase { return inventory.Phases() }

// NetworkTypes lists the selectable network filters.
func (s *Service) NetworkTypes() []inventory.NetworkType { return inventory.NetworkTypes() }

// SensorTypes lists the selectable instrument classes.
func (s *Service) SensorTypes() []inventory.SensorType { return inventory.SensorTypes() }
