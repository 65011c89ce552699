// Package http реализует маршрутизацию HTTP-слоя сервиса учётных записей.
//
// Пакет отвечает за:
//   - регистрацию HTTP-маршрутов и настройку роутера (chi);
//   - логирование и метрики выполнения HTTP-запросов;
//   - проверку JWT access-токенов на защищённых маршрутах.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/IvanChernomyrdin/go-user-accounts/internal/server/api"
	"github.com/IvanChernomyrdin/go-user-accounts/internal/server/config"
	"github.com/IvanChernomyrdin/go-user-accounts/internal/server/middleware"
)

// Options — что включать в роутер помимо API.
type Options struct {
	MaxBodyBytes   int64
	MetricsEnabled bool
	MetricsPath    string
	PprofEnabled   bool
	PprofPrefix    string

	CORSOrigins     []string // пусто — любой origin
	CORSCredentials bool
	HSTS            bool // только для HTTPS
}

// OptionsFromConfig берёт настройки роутера из конфига сервера.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		MaxBodyBytes:   cfg.Server.MaxBodyBytes,
		MetricsEnabled: cfg.Observability.Metrics.Enabled,
		MetricsPath:    cfg.Observability.Metrics.Path,
		PprofEnabled:   cfg.Observability.Pprof.Enabled,
		PprofPrefix:    cfg.Observability.Pprof.PathPrefix,

		CORSOrigins:     cfg.Server.CORS.AllowedOrigins,
		CORSCredentials: cfg.Server.CORS.AllowCredentials,
		HSTS:            cfg.TLS.Enabled,
	}
}

func corsOptions(opts Options) cors.Options {
	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: opts.CORSCredentials,
		MaxAge:           300,
	}
}

// NewRouter создаёт и настраивает HTTP-роутер сервера.
//
// Роутер использует chi.Router и регистрирует:
//   - публичные эндпоинты: логин, регистрация, health, swagger, метрики, pprof;
//   - middleware request id, recover, CORS, защитных заголовков, лимита тела,
//     логирования и метрик;
//   - группу защищённых JWT эндпоинтов пользователей.
func NewRouter(h *api.Handler, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(corsOptions(opts)))
	r.Use(middleware.SecurityHeaders(opts.HSTS))
	if opts.MaxBodyBytes > 0 {
		r.Use(chimw.RequestSize(opts.MaxBodyBytes))
	}
	// логирование и метрики всех запросов
	r.Use(middleware.LoggerMiddleware(h.Log))
	r.Use(middleware.MetricsMiddleware())

	// добавляем swagger
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	if opts.MetricsEnabled {
		path := opts.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.Method(http.MethodGet, path, promhttp.Handler())
	}
	if opts.PprofEnabled {
		prefix := opts.PprofPrefix
		if prefix == "" {
			prefix = "/debug"
		}
		r.Mount(prefix, chimw.Profiler())
	}

	// Публичные пути
	r.Get("/health", h.Health)
	r.Get("/health/ready", h.Ready)
	r.Post("/login", h.Login)

	// проверка access токена
	auth := h.Verifier.AuthMiddleware()

	r.With(auth).Get("/me", h.Me)
	r.Route("/users", func(r chi.Router) {
		r.Post("/", h.CreateUser) // регистрация без токена

		// защищены пути
		r.Group(func(r chi.Router) {
			r.Use(auth)
			r.Get("/", h.ListUsers)
			r.Get("/{id}", h.GetUser)
			r.Put("/{id}", h.UpdateUser)
			r.Delete("/{id}", h.DeleteUser)
		})
	})

	return r
}
