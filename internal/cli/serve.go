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

	"github.com/flowcanvas/flowcanvas/internal/api"
)

const shutdownTimeout = 10 * time.Second

// serveCommand creates the serve command, which runs the canvas HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		catalog string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the canvas HTTP API",
		Long: `Serve starts an HTTP server exposing the canvas core: node-type
listing, layout computation, json export, and viewport fitting. The
server shuts down gracefully on SIGINT or SIGTERM.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := c.loadRegistry(catalog)
			if err != nil {
				return err
			}
			runner, err := c.newRunner(noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			server := &http.Server{
				Addr:              addr,
				Handler:           api.NewServer(runner, reg, c.Logger).Router(),
				ReadHeaderTimeout: 5 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				c.Logger.Infof("Listening on %s", addr)
				errCh <- server.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}

			c.Logger.Info("Shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("shutdown: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "address to listen on")
	cmd.Flags().StringVar(&catalog, "catalog", "", "extra node-type catalog file (TOML)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "skip the layout cache")

	return cmd
}
