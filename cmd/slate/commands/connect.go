package commands

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/dyluth/slate/internal/config"
	"github.com/dyluth/slate/internal/printer"
	"github.com/dyluth/slate/pkg/edgeconfig"
	"github.com/dyluth/slate/pkg/kv"
	"github.com/redis/go-redis/v9"
)

// loadConfig reads slate.yml, reporting problems through the printer.
func loadConfig() (*config.SlateConfig, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, printer.Error(
				"configuration not found",
				fmt.Sprintf("No configuration file at %s.", configPath),
				[]string{
					"Create one in the current directory:\n  slate init",
					"Point at an existing file:\n  slate --config path/to/slate.yml",
				},
			)
		}
		return nil, printer.ErrorWithContext(
			"invalid configuration",
			err.Error(),
			map[string]string{"Config": configPath},
			nil,
		)
	}
	return cfg, nil
}

// connect opens the persistence gateway for cfg and checks Redis is reachable.
func connect(ctx context.Context, cfg *config.SlateConfig, opts ...kv.Option) (*kv.Gateway, error) {
	redisOpts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		return nil, printer.ErrorWithContext(
			"invalid Redis URL",
			err.Error(),
			map[string]string{"redis.url": cfg.Redis.URL},
			[]string{"Use the form redis://[:password@]host:port[/db]"},
		)
	}

	gw, err := kv.NewGateway(redisOpts, cfg.Instance, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create gateway: %w", err)
	}

	if err := gw.Ping(ctx); err != nil {
		gw.Close()
		return nil, printer.ErrorWithContext(
			"Redis connection failed",
			fmt.Sprintf("Could not connect to Redis at %s", redisOpts.Addr),
			map[string]string{"Instance": cfg.Instance},
			[]string{
				"Start Redis locally:\n  docker run -p 6379:6379 redis:7",
				"Or point redis.url (or REDIS_URL) at a running server",
			},
		)
	}

	return gw, nil
}

// newConfigClient builds the config / feature-flag client selected by cfg:
// the remote API when an id is set, else the item file, else the inline items.
// A relative item file is resolved against the directory of slate.yml.
func newConfigClient(cfg *config.SlateConfig) (*edgeconfig.Client, error) {
	ec := cfg.EdgeConfig

	if ec.Remote() {
		src, err := edgeconfig.NewHTTPSource(ec.BaseURL, ec.ID, ec.Token)
		if err != nil {
			return nil, fmt.Errorf("failed to create edge config source: %w", err)
		}
		return edgeconfig.NewClient(src), nil
	}

	if ec.File != "" {
		path := ec.File
		if !filepath.IsAbs(path) {
			path = filepath.Join(filepath.Dir(configPath), path)
		}
		src, err := edgeconfig.LoadStaticSource(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load edge config items: %w", err)
		}
		return edgeconfig.NewClient(src), nil
	}

	src, err := edgeconfig.NewStaticSource(ec.Static)
	if err != nil {
		return nil, fmt.Errorf("failed to load edge config items: %w", err)
	}
	return edgeconfig.NewClient(src), nil
}
