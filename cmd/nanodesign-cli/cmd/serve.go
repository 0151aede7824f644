package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"nanodesign/internal/adapters/cadnano"
	"nanodesign/internal/adapters/csvseq"
	httpadapter "nanodesign/internal/adapters/http"
	"nanodesign/internal/adapters/topology"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve design conversion over HTTP",
	Long: `Serve the conversion pipeline over HTTP.

Routes:
  GET  /health     liveness
  GET  /sequences  scaffold sequence library
  POST /convert    caDNAno design body, ?format=&modify=&sequence=&staples=
  GET  /metrics    Prometheus metrics`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		handler := httpadapter.New(library, cfg.Params, log,
			topology.NewWriter(false),
			cadnano.NewWriter(),
			csvseq.NewWriter(),
		).Routes()

		srv := &http.Server{
			Addr:              cfg.HTTP.Addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			log.Info("listening", "addr", srv.Addr)
			errCh <- srv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("server failed: %w", err)
			}
			return nil
		case <-ctx.Done():
		}

		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default :8080)")
	cobra.CheckErr(v.BindPFlag("http.addr", serveCmd.Flags().Lookup("addr")))
	rootCmd.AddCommand(serveCmd)
}
