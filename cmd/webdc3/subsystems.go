package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"

	"github.com/redis/go-redis/v9"

	"github.com/jordi-domingo/webdc3/pkg/config"
	"github.com/jordi-domingo/webdc3/pkg/inventory"
	"github.com/jordi-domingo/webdc3/pkg/traveltime"
)

// buildCache assembles the inventory backend from configuration. The
// returned cleanup closes whatever the backend opened.
func buildCache(cfg *config.Config) (inventory.Cache, func(), error) {
	var (
		cache   inventory.Cache
		cleanup = func() {}
	)

	switch cfg.Inventory.Backend {
	case "memory", "":
		mem := inventory.NewMemory()
		if cfg.Inventory.Path != "" {
			epochs, err := loadEpochsFile(cfg.Inventory.Path)
			if err != nil {
				return nil, nil, err
			}
			mem.Add(epochs...)
		}
		cache = mem

	case "sqlite":
		db, err := sql.Open("sqlite", cfg.Inventory.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite inventory: %w", err)
		}
		s, err := inventory.NewSQLite(db)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		cache = s
		cleanup = func() { _ = db.Close() }

	case "postgres":
		db, err := sql.Open("postgres", cfg.Inventory.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("open postgres inventory: %w", err)
		}
		cache = inventory.NewPostgres(db)
		cleanup = func() { _ = db.Close() }

	default:
		return nil, nil, fmt.Errorf("unknown inventory backend %q", cfg.Inventory.Backend)
	}

	if cfg.Inventory.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.Inventory.RedisAddr})
		inner := cleanup
		cache = inventory.NewRedisCache(cache, client, cfg.Inventory.RedisTTL.Std())
		cleanup = func() {
			_ = client.Close()
			inner()
		}
	}

	return cache, cleanup, nil
}

// buildTable assembles the travel-time table, always wrapped in the
// (origin, site) memo.
func buildTable(cfg *config.Config) (traveltime.Table, error) {
	var table traveltime.Table
	switch cfg.TravelTime.Backend {
	case "model", "":
		table = traveltime.NewModel1D()
	case "remote":
		if cfg.TravelTime.RemoteURL == "" {
			return nil, fmt.Errorf("remote travel-time backend needs a URL")
		}
		table = traveltime.NewRemote(traveltime.RemoteConfig{
			BaseURL:           cfg.TravelTime.RemoteURL,
			RequestsPerSecond: cfg.TravelTime.RequestsPerSecond,
		})
	default:
		return nil, fmt.Errorf("unknown travel-time backend %q", cfg.TravelTime.Backend)
	}
	return traveltime.NewMemo(table, cfg.TravelTime.MemoSize), nil
}

// loadEpochsFile reads a JSON array of stream epochs, the interchange
// format for memory-backed deployments and tests.
func loadEpochsFile(path string) ([]inventory.StreamEpoch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load inventory %q: %w", path, err)
	}
	var epochs []inventory.StreamEpoch
	if err := json.Unmarshal(data, &epochs); err != nil {
		return nil, fmt.Errorf("parse inventory %q: %w", path, err)
	}
	return epochs, nil
}

// loadConfig reads the optional YAML file, falling back to env-only.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load(), nil
	}
	return config.LoadFile(path)
}
