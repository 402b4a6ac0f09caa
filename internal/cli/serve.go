package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/dishes/internal/httpserver"
	"github.com/mesh-intelligence/dishes/internal/menu"
	"github.com/mesh-intelligence/dishes/internal/metrics"
	"github.com/mesh-intelligence/dishes/pkg/types"
)

const shutdownTimeout = 10 * time.Second

func (a *app) newServeCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the menu over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr == "" {
				addr = a.cfg.GetString(cfgKeyListenAddr)
			}
			return a.runServe(cmd.Context(), addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default: listen_addr from config, \":5000\")")
	return cmd
}

func (a *app) runServe(ctx context.Context, addr string) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	svc, st, err := a.openMenu(ctx, menu.WithMetrics(metrics.NewMenuMetrics(reg)), menu.WithLogger(slog.Default()))
	if err != nil {
		return err
	}
	defer func() {
		if err := st.Close(); err != nil {
			slog.Error("Failed to close store", "error", err)
		}
	}()

	srv := newServer(addr, svc, st, reg)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		if err != nil {
			return sysErr(err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("Shutting down", "dishes", svc.Count())
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return sysErr(err)
	}
	if err := <-errCh; err != nil {
		return sysErr(fmt.Errorf("server stopped: %w", err))
	}
	return nil
}

// newServer wires svc into an HTTP server. Stores that can be pinged back
// the readiness probe.
func newServer(addr string, svc *menu.Service, st types.Store, reg *prometheus.Registry) *httpserver.Server {
	opts := []httpserver.Option{httpserver.WithRegistry(reg)}
	if p, ok := st.(types.Pinger); ok {
		opts = append(opts, httpserver.WithHealthChecks(httpserver.HealthCheck{Name: "store", Check: p.Ping}))
	}
	return httpserver.NewServer(addr, svc, opts...)
}
