package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/sistema-nutricional-hospitalar/snh/internal/infra/logger"
	"github.com/sistema-nutricional-hospitalar/snh/internal/infra/metrics"
)

func metricsCmd(flags *rootFlags) *cobra.Command {
	var workspace string
	var listen string

	c := &cobra.Command{
		Use:   "metrics",
		Short: "Print diet metrics in the Prometheus text format, or serve them",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := loadWorkspace(workspace, flags.debug)
			if err != nil {
				return err
			}
			defer ws.close()

			rec := ws.recorder
			if rec == nil {
				rec = metrics.NewRecorder()
			}
			if err := rec.WatchStore(ws.repo, logger.Component("metrics")); err != nil {
				return err
			}

			if listen == "" {
				return rec.WriteText(cmd.OutOrStdout())
			}
			return serveMetrics(cmd.Context(), listen, rec.Handler(), cmd)
		},
	}

	addWorkspaceFlag(c, &workspace)
	c.Flags().StringVar(&listen, "listen", "", "Serve /metrics on this address (e.g. :9102) until interrupted")
	return c
}

func serveMetrics(parent context.Context, addr string, h http.Handler, cmd *cobra.Command) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mux := http.NewServeMux()
	mux.Handle("/metrics", h)
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	log := logger.Component("metrics")
	log.Info("metrics.serve", "addr", addr)
	fmt.Fprintf(cmd.OutOrStdout(), "serving metrics on %s/metrics\n", addr)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	log.Info("metrics.shutdown")
	return srv.Shutdown(shutdownCtx)
}
