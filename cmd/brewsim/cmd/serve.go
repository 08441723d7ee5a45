package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/spf13/cobra"

	"brewchain/cmd/brewsim/sim"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a scenario, then serve the resulting state over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, newViper())
			if err != nil {
				return err
			}
			logger, err := newLogger(cmd.ErrOrStderr(), cfg)
			if err != nil {
				return err
			}
			rep, host, err := runScenario(cfg, logger)
			if err != nil {
				return err
			}

			handler := handlers.CompressHandler(NewRouter(host, rep))
			handler = handlers.CombinedLoggingHandler(cmd.ErrOrStderr(), handler)
			srv := &http.Server{
				Addr:              cfg.Listen,
				Handler:           handlers.RecoveryHandler()(handler),
				ReadHeaderTimeout: 5 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			go func() {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = srv.Shutdown(shutdownCtx)
			}()

			logger.Info("serving brewery state", "listen", cfg.Listen, "height", host.Height())
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}

	addCommonFlags(cmd.Flags())
	cmd.Flags().String(flagListen, "127.0.0.1:1318", "listen address")
	return cmd
}

// NewRouter serves the brewery query routes from the host's committed state
// plus the run report under /report.
func NewRouter(host *sim.Host, rep sim.Report) *mux.Router {
	r := mux.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			host.Lock()
			defer host.Unlock()
			next.ServeHTTP(w, req)
		})
	})
	host.Module.RegisterRESTRoutes(r, func(*http.Request) (context.Context, error) {
		return host.QueryContext(), nil
	})
	r.HandleFunc("/report", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(rep)
	}).Methods(http.MethodGet)
	return r
}
