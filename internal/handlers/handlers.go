package handlers

import (
	"TripKeeper/internal/config"
	"TripKeeper/internal/middleware"
	"TripKeeper/internal/seed"
	"TripKeeper/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type Handler struct {
	Router chi.Router
}

// NewHandler разводящий для хендлеров локального API. gatherer может быть nil,
// тогда /metrics не публикуется.
func NewHandler(
	s *store.Store,
	seeder *seed.Seeder,
	logger *zap.SugaredLogger,
	config *config.Config,
	gatherer prometheus.Gatherer,
) *Handler {
	r := chi.NewRouter()

	r.Use(middleware.WithGzip)
	r.Use(middleware.WithLogging)

	// Handlers
	tripHandler := NewTripHandler(s, logger)
	cardHandler := NewCardHandler(s, logger)
	resvHandler := NewReservationHandler(s, logger)
	sessionHandler := NewSessionHandler(s, logger)
	mediaHandler := NewMediaHandler(s, logger, config)
	systemHandler := NewSystemHandler(s, seeder, logger)

	r.Route("/api/trips", func(r chi.Router) {
		r.Get("/", tripHandler.List)
		r.Post("/", tripHandler.Create)
		r.Get("/{id}", tripHandler.Get)
		r.Put("/{id}", tripHandler.Update)
		r.Delete("/{id}", tripHandler.Delete)

		r.Get("/{id}/cards", cardHandler.ListForTrip)
		r.Post("/{id}/cards", cardHandler.Create)
		r.Get("/{id}/reservations", resvHandler.ListForTrip)
		r.Post("/{id}/reservations", resvHandler.Create)
	})

	r.Put("/api/cards/{id}", cardHandler.Update)
	r.Delete("/api/cards/{id}", cardHandler.Delete)
	r.Put("/api/reservations/{id}", resvHandler.Update)
	r.Delete("/api/reservations/{id}", resvHandler.Delete)

	r.Get("/api/session", sessionHandler.Get)
	r.Put("/api/session", sessionHandler.Set)
	r.Delete("/api/session", sessionHandler.Clear)

	r.Post("/api/media", mediaHandler.Upload)
	r.Get("/api/media/{id}", mediaHandler.Raw)
	r.Get("/api/media/{id}/image", mediaHandler.Image)

	r.Get("/api/health", systemHandler.Health)
	r.Post("/api/seed", systemHandler.Seed)
	r.Get("/api/events", systemHandler.Events)

	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	return &Handler{Router: r}
}
