package core

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	c "overlayapi/internal/cache"
	apierrors "overlayapi/internal/errors"
	h "overlayapi/internal/helpers"
	m "overlayapi/internal/middlewares"
	"overlayapi/internal/models"
	"overlayapi/internal/services"
	"overlayapi/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

const shutdownTimeout = 15 * time.Second

// NewRouter builds the HTTP surface. cache may be nil.
func NewRouter(config models.Configuration, recordStore store.IRecordStore, cache c.ICache) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Timeout(time.Duration(config.App.RequestTimeout) * time.Second))
	r.Use(middleware.RealIP)
	r.Use(m.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   config.App.AllowedOrigins,
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Retry-After", "X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		h.RespondWithError(w, http.StatusNotFound, apierrors.ErrNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		h.RespondWithError(w, http.StatusMethodNotAllowed, apierrors.ErrMethodNotAllowed)
	})

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		h.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(apiRouter chi.Router) {
		apiRouter.Group(func(public chi.Router) {
			if cache != nil && config.App.RateLimit > 0 {
				public.Use(m.RateLimit(cache, config.App.RateLimit))
			}

			public.Mount("/dashboard", services.DashboardService{Store: recordStore}.Routes())
			public.Mount("/records", services.RecordService{Store: recordStore}.Routes())
		})

		apiRouter.Mount("/admin", services.AdminService{
			Store:  recordStore,
			Secret: config.App.AdminSecret,
		}.Routes())
	})

	return r
}

// StartHTTPServer serves until SIGINT or SIGTERM, then drains in-flight requests.
func StartHTTPServer(config models.Configuration, recordStore store.IRecordStore, cache c.ICache) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", config.App.Port),
		Handler:           instrument(NewRouter(config, recordStore, cache), config.Tracing),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		zap.L().Info("App started", zap.Int("port", config.App.Port), zap.String("store", config.Store.Type))
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			zap.L().Fatal("Failed to start app", zap.Error(err))
		}
	case <-ctx.Done():
		zap.L().Info("Shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zap.L().Error("Failed to shut down HTTP server", zap.Error(err))
	}
	if err := recordStore.Close(shutdownCtx); err != nil {
		zap.L().Error("Failed to close record store", zap.Error(err))
	}
	if cache != nil {
		if err := cache.Close(); err != nil {
			zap.L().Error("Failed to close cache", zap.Error(err))
		}
	}
}
