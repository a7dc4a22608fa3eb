package main

import (
	"embed"
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sfdata-tools/rentmap/internal/aggregate"
	"github.com/sfdata-tools/rentmap/internal/config"
	"github.com/sfdata-tools/rentmap/internal/dataset"
	"github.com/sfdata-tools/rentmap/internal/mapview"
	"github.com/sfdata-tools/rentmap/internal/model"
	"github.com/sfdata-tools/rentmap/internal/resolve"
)

//go:embed static/index.html
var staticFS embed.FS

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the rental map HTTP server",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		store, err := dataset.Open(ctx, cfg.Store.Driver, cfg.Store.DatabaseURL)
		if err != nil {
			return err
		}
		defer store.Close()

		// The snapshot is immutable for the process lifetime; every request
		// resolves against it without locking.
		snap, err := dataset.LoadSnapshot(ctx, store)
		if err != nil {
			return err
		}
		if snap.Len() == 0 {
			zap.L().Warn("serve: dataset is empty, run `rentmap import` first")
		}

		router := newRouter(snap, cfg)

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: router,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server",
			zap.Int("port", port),
			zap.Int("records", snap.Len()),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

// newRouter builds the chi router: the embedded UI, the lookup/map API, and
// a health probe.
func newRouter(snap *dataset.Snapshot, cfg *config.Config) chi.Router {
	resolver := resolve.New(cfg.Resolver.DefaultQuery, cfg.Resolver.SimilarityThreshold)
	presenter := mapview.Presenter{DefaultQuery: cfg.Resolver.DefaultQuery}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AllowedMethods: []string{"GET"},
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		page, err := staticFS.ReadFile("static/index.html")
		if err != nil {
			http.Error(w, "page unavailable", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(page)
	})

	limiter := rate.NewLimiter(rate.Limit(cfg.Server.RatePerSecond), cfg.Server.RateBurst)
	r.Route("/api", func(api chi.Router) {
		api.Use(rateLimit(limiter))

		api.Get("/map", func(w http.ResponseWriter, r *http.Request) {
			query := r.URL.Query().Get("q")
			reqID := uuid.New().String()

			block, err := resolver.Resolve(snap.Records(), query)
			var summary *model.BlockSummary
			if err == nil {
				s := aggregate.Summarize(block)
				summary = &s
			}
			payload, status := presenter.Present(summary, err)

			if err != nil {
				zap.L().Info("map: resolution failed",
					zap.String("request_id", reqID),
					zap.String("query", query),
					zap.String("status", status),
				)
			} else {
				zap.L().Info("map: resolved",
					zap.String("request_id", reqID),
					zap.String("query", query),
					zap.String("block", summary.BlockAddress),
				)
			}

			writeJSON(w, http.StatusOK, map[string]any{
				"payload": payload,
				"status":  status,
			})
		})

		api.Get("/lookup", func(w http.ResponseWriter, r *http.Request) {
			query := r.URL.Query().Get("q")

			block, err := resolver.Resolve(snap.Records(), query)
			if err != nil {
				writeJSON(w, http.StatusNotFound, map[string]string{"error": eris.Cause(err).Error()})
				return
			}
			writeJSON(w, http.StatusOK, aggregate.Summarize(block))
		})
	})

	return r
}

// rateLimit rejects requests above the configured token-bucket rate.
func rateLimit(limiter *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				writeJSON(w, http.StatusTooManyRequests, map[string]string{"error": "rate limit exceeded"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
