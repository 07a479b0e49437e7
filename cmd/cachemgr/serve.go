package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/ashpect/cachemgr/pkg/logging"
	"github.com/ashpect/cachemgr/pkg/metrics"
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "serve settings, cache stats and metrics over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		var metricsHandler http.Handler
		if a.cfg.Metrics.Enabled {
			reg := prometheus.NewRegistry()
			reg.MustRegister(
				metrics.NewCollector(a.cfg.Metrics.Namespace, a.cache),
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)
			metricsHandler = metrics.Handler(reg)
		}

		server := &http.Server{
			Addr:              a.cfg.ListenAddr,
			Handler:           logging.Middleware(a.logger.Named("http"), newMux(a.cache, a.settings, metricsHandler, a.logger)),
			ReadHeaderTimeout: 5 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			a.logger.Info("listening", "addr", a.cfg.ListenAddr, "settings", a.settings.Path())
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
			a.logger.Info("received shutdown signal")
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
