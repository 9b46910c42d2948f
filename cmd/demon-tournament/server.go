package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/hyukkyo/demon-tournament/internal/constants"
	"github.com/hyukkyo/demon-tournament/internal/logging"
	"github.com/hyukkyo/demon-tournament/internal/service"

	"golang.org/x/sync/errgroup"
)

const shutdownGrace = 10 * time.Second

// serve runs the HTTP server and the timeout scanner until ctx is
// cancelled or one of them fails.
func serve(ctx context.Context, srv *http.Server, ctl *service.Controller, scanInterval time.Duration, workerID string) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logging.Info("Server started", logging.Fields{constants.LogFieldAddr: srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		return ctl.RunTimeoutScanner(ctx, scanInterval, workerID)
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		logging.Info("Server shutting down", nil)
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
