package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/nodesim/internal/ctxlog"
	"github.com/specialistvlad/nodesim/internal/publisher"
	"github.com/specialistvlad/nodesim/internal/scheduler"
)

// Run loads the node file, starts the simulation and blocks until ctx is
// cancelled. It returns an error only when the simulation cannot start.
// Run must be called at most once.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	result := a.LoadNodes(ctx)
	if err := result.Registry.Validate(ctx); err != nil {
		return fmt.Errorf("invalid simulation registry: %w", err)
	}

	if a.config.NATSURL != "" {
		conn, closeConn, err := a.connector(ctx, a.config.NATSURL, a.logger)
		if err != nil {
			return fmt.Errorf("failed to start change publisher: %w", err)
		}
		defer func() {
			if err := closeConn(); err != nil {
				a.logger.Error("Failed to close NATS connection.", "error", err)
			}
		}()
		pub := publisher.New(conn, a.config.NATSSubject, a.logger)
		detach := pub.Attach(a.space)
		defer detach()

		a.mu.Lock()
		a.publisher = pub
		a.mu.Unlock()
		a.logger.Info("Mirroring value changes to NATS.", "url", a.config.NATSURL, "subject_prefix", pub.Prefix())
	}

	sched := scheduler.New(result.Registry, a.timers, a.space)
	if err := sched.Start(ctx); err != nil {
		return fmt.Errorf("failed to start simulation: %w", err)
	}
	defer sched.Stop()

	a.mu.Lock()
	a.scheduler = sched
	a.mu.Unlock()

	a.healthCheckServer()
	defer func() {
		if err := a.closeHealthCheckServer(); err != nil {
			a.logger.Error("Failed to close health check server.", "error", err)
		}
	}()

	a.startOnce.Do(func() { close(a.started) })
	a.logger.Info("Simulation running.", "nodes", len(result.Nodes), "simulated", result.Registry.Len())

	<-ctx.Done()
	a.logger.Info("Shutting down.")
	return nil
}
