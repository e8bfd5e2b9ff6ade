package api

import (
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	slogchi "github.com/samber/slog-chi"
)

type Config struct {
	Port    int           `yaml:"port"`
	Timeout time.Duration `yaml:"timeout"`
}

type API struct {
	logger *slog.Logger

	loader Loader

	cfg *Config
}

func NewAPI(cfg *Config, logger *slog.Logger, loader Loader) *API {
	return &API{
		cfg: cfg,

		logger: logger,

		loader: loader,
	}
}

func (api *API) NewRouter() *chi.Mux {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(slogchi.New(api.logger))

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	router.Use(middleware.StripSlashes)

	router.Use(middleware.Recoverer)

	router.Handle("/metrics", promhttp.Handler())

	router.Get("/api/datasets", api.datasets)
	router.Post("/api/datasets/{dataset}/download", api.download)
	router.Get("/api/datasets/{dataset}/annotations", api.annotations)

	return router
}
