package main

import (
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vango-dev/hx/internal/config"
	"github.com/vango-dev/hx/internal/demo"
	"github.com/vango-dev/hx/pkg/host"
	"github.com/vango-dev/hx/pkg/hx"
)

// env is everything a command needs to mount the demo.
type env struct {
	cfg      *config.Config
	logger   *slog.Logger
	registry *prometheus.Registry
	app      *demo.App
}

// setup loads the config and applies it process-wide.
func setup(dir string, failAt int) (*env, error) {
	cfg, err := config.LoadOrDefault(dir)
	if err != nil {
		return nil, err
	}

	logger := cfg.Log.NewLogger(os.Stderr)
	slog.SetDefault(logger)
	hx.SetConfig(hx.Config{
		FrameInterval: cfg.Render.FrameInterval.D(),
		Logger:        logger,
	})

	return &env{
		cfg:      cfg,
		logger:   logger,
		registry: prometheus.NewRegistry(),
		app: demo.New(demo.Options{
			Title:            cfg.Demo.Title,
			ThrottleInterval: cfg.Demo.ThrottleInterval.D(),
			FailAt:           failAt,
		}),
	}, nil
}

// root builds a host root with the configured logger and metrics.
func (rt *env) root(opts ...host.Option) *host.Root {
	base := []host.Option{
		host.WithLogger(rt.logger),
		host.WithMaxPasses(rt.cfg.Render.MaxPasses),
	}
	if rt.cfg.Metrics.Enabled {
		base = append(base, host.WithMetrics(host.NewMetrics(
			host.WithRegistry(rt.registry),
			host.WithNamespace(rt.cfg.Metrics.Namespace),
		)))
	}
	return host.NewRoot(append(base, opts...)...)
}
