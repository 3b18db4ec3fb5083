package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/anon-aadhaar/anon-aadhaar-noir/internal/circuitinput"
	"github.com/anon-aadhaar/anon-aadhaar-noir/internal/circuitinput/handler"
	"github.com/anon-aadhaar/anon-aadhaar-noir/internal/circuitinput/metrics"
	"github.com/anon-aadhaar/anon-aadhaar-noir/internal/platform/config"
	"github.com/anon-aadhaar/anon-aadhaar-noir/internal/platform/httpserver"
	"github.com/anon-aadhaar/anon-aadhaar-noir/internal/platform/logger"
	"github.com/anon-aadhaar/anon-aadhaar-noir/internal/prover/nargo"
	"github.com/anon-aadhaar/anon-aadhaar-noir/pkg/platform/httputil"
	"github.com/anon-aadhaar/anon-aadhaar-noir/pkg/platform/middleware/requestid"
	"github.com/anon-aadhaar/anon-aadhaar-noir/pkg/platform/middleware/requesttime"
)

// main wires configuration, the pipeline service and the HTTP router, then
// serves until interrupted.
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		logger.New(false).Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Debug)

	svc, err := buildService(cfg, log)
	if err != nil {
		log.Error("failed to build circuit input service", "error", err)
		os.Exit(1)
	}

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(requestid.Middleware)
	r.Use(requesttime.Middleware)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())
	handler.New(svc, log).Register(r)

	srv := httpserver.New(cfg.Addr, r)

	log.Info("starting circuit input server",
		"addr", cfg.Addr,
		"padded_length", cfg.Circuit.PaddedLength,
		"padding_mode", cfg.Circuit.PaddingMode,
		"prover", cfg.ProverDir != "",
	)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

func buildService(cfg config.Config, log *slog.Logger) (*circuitinput.Service, error) {
	source, err := cfg.CertificateSource()
	if err != nil {
		return nil, err
	}

	opts := []circuitinput.Option{
		circuitinput.WithLogger(log),
		circuitinput.WithMetrics(metrics.New()),
		circuitinput.WithDebug(cfg.Debug),
	}
	if cfg.ProverDir != "" {
		opts = append(opts, circuitinput.WithProver(
			nargo.New(cfg.ProverDir, cfg.ProverCircuit, nargo.WithLogger(log)),
		))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return circuitinput.New(ctx, cfg.Circuit, source, opts...)
}
