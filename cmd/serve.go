package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/polygon-api/internal/dataset"
	"github.com/sells-group/polygon-api/internal/index"
	"github.com/sells-group/polygon-api/internal/server"
)

var (
	serveFile string
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Load the boundary dataset and serve point queries",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		source := serveFile
		if source == "" {
			source = cfg.Dataset.Path
		}

		// Build phase: synchronous, no traffic until the index exists.
		// Any failure here aborts startup.
		ds, err := dataset.Load(ctx, source, cfg.Dataset.TempDir)
		if err != nil {
			return err
		}

		ix := index.Build(ds.Entries)
		zap.L().Info("spatial index built", zap.Int("polygons", ix.Len()))

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: server.New(cfg.Server, ix),
		}

		g, gCtx := errgroup.WithContext(ctx)

		g.Go(func() error {
			zap.L().Info("starting server", zap.Int("port", port))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return eris.Wrap(err, "server listen")
			}
			return nil
		})

		g.Go(func() error {
			<-gCtx.Done()
			zap.L().Info("shutting down server")
			return srv.Shutdown(context.Background())
		})

		return g.Wait()
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveFile, "file", "", "boundary dataset path or URL (default from config)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
