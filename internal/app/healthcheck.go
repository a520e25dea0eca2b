package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/specialistvlad/nodesim/internal/addressspace"
	"github.com/specialistvlad/nodesim/internal/publisher"
	"github.com/specialistvlad/nodesim/internal/scheduler"
)

// nodesResponse is the body of the /nodes diagnostics endpoint.
type nodesResponse struct {
	Scheduler scheduler.Stats                 `json:"scheduler"`
	Publisher *publisher.Stats                `json:"publisher,omitempty"`
	Nodes     []addressspace.VariableSnapshot `json:"nodes"`
}

// healthHandler reports liveness.
func (a *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	a.logger.Debug("Health check endpoint hit.", "remote_addr", r.RemoteAddr, "path", r.URL.Path)
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}

// nodesHandler serves a snapshot of every variable with its current value.
func (a *App) nodesHandler(w http.ResponseWriter, r *http.Request) {
	a.logger.Debug("Nodes endpoint hit.", "remote_addr", r.RemoteAddr)

	resp := nodesResponse{
		Scheduler: a.Stats(),
		Nodes:     a.space.Snapshot(),
	}
	a.mu.Lock()
	if a.publisher != nil {
		st := a.publisher.Stats()
		resp.Publisher = &st
	}
	a.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		a.logger.Error("Failed to encode nodes response.", "error", err)
	}
}

func (a *App) diagnosticsHandler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", a.healthHandler)
	mux.HandleFunc("GET /nodes", a.nodesHandler)
	return mux
}

// healthCheckServer initializes and runs the health check HTTP server.
func (a *App) healthCheckServer() {
	a.logger.Debug("Configuring health check server.")
	if a.config.HealthcheckPort <= 0 {
		a.logger.Debug("Health check server not started: disabled.")
		return
	}

	addr := fmt.Sprintf(":%d", a.config.HealthcheckPort)
	srv := &http.Server{
		Addr:              addr,
		Handler:           a.diagnosticsHandler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	a.mu.Lock()
	a.httpServer = srv
	a.mu.Unlock()

	go func() {
		a.logger.Info("Health check server starting.", "address", fmt.Sprintf("http://localhost%s/health", addr))
		// ListenAndServe returns ErrServerClosed on graceful shutdown.
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("Health check server failed unexpectedly.", "error", err)
		}
	}()
}

func (a *App) closeHealthCheckServer() error {
	a.mu.Lock()
	srv := a.httpServer
	a.httpServer = nil
	a.mu.Unlock()

	if srv == nil {
		a.logger.Debug("Health check server was not running.")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	a.logger.Info("Shutting down health check server.")
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("health check server shutdown failed: %w", err)
	}
	a.logger.Debug("Health check server shut down gracefully.")
	return nil
}
