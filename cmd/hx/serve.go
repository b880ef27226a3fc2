package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vango-dev/hx/internal/demo"
	"github.com/vango-dev/hx/internal/errors"
)

func serveCmd(configDir *string) *cobra.Command {
	var (
		port   int
		host   string
		failAt int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the demo over HTTP",
		Long: `Serve the demo with live updates.

The page connects over a websocket; every commit is pushed to the
browser and clicks are dispatched back to the component handlers.

Routes:
  /          the demo page
  /ws        live updates
  /metrics   Prometheus metrics (when enabled)
  /healthz   liveness

Examples:
  hx serve
  hx serve --port 8080`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup(*configDir, failAt)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				rt.cfg.Server.Port = port
			}
			if cmd.Flags().Changed("host") {
				rt.cfg.Server.Host = host
			}
			if err := serve(cmd.Context(), rt); err != nil {
				return errors.FromError(err, "E061")
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (overrides config)")
	cmd.Flags().StringVar(&host, "host", "", "Host to bind to (overrides config)")
	cmd.Flags().IntVar(&failAt, "fail-at", 0, "Tick at which the demo widget fails (0 never)")

	return cmd
}

func serve(ctx context.Context, rt *env) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := demo.ServerOptions{
		Title:  rt.cfg.Demo.Title,
		Pretty: rt.cfg.Render.Pretty,
		Logger: rt.logger,
	}
	if rt.cfg.Metrics.Enabled {
		opts.MetricsPath = rt.cfg.Metrics.Path
		opts.Gatherer = rt.registry
	}
	s, err := demo.NewServer(rt.app, rt.root(), opts)
	if err != nil {
		return err
	}
	defer s.Close()

	httpServer := &http.Server{
		Addr:              rt.cfg.Address(),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 2)
	go func() {
		errCh <- s.Run(ctx, rt.cfg.Demo.TickInterval.D())
	}()
	go func() {
		rt.logger.Info("server starting", "address", httpServer.Addr)
		info("Serving on http://%s", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		if err != nil {
			_ = httpServer.Close()
			return err
		}
	case <-ctx.Done():
	}

	rt.logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}
