package commands

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nursejordan/i-notarize-online.com/internal/otel"
	"github.com/nursejordan/i-notarize-online.com/internal/server"
)

// serve: run the API on a local HTTP listener.
func serveCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the API over HTTP until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			shutdown, err := otel.Setup(ctx, "notaryctl", env.OTelEndpoint)
			if err != nil {
				return err
			}
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					log.Printf("otel shutdown: %v", err)
				}
			}()

			// Seeding failures leave the health route usable.
			if err := appCtx.Start(ctx); err != nil {
				log.Printf("startup: %v", err)
			}

			if addr == "" {
				addr = env.HTTPAddr
			}
			srv, err := server.New(addr, appCtx.Handler.Handle)
			if err != nil {
				return err
			}
			return srv.ListenAndServe(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (env HTTP_ADDR)")
	return cmd
}
