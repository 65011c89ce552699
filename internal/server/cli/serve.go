package cli

import (
	"context"
	"crypto/tls"
	"errors"
	"net/http"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/IvanChernomyrdin/go-user-accounts/internal/server/api"
	"github.com/IvanChernomyrdin/go-user-accounts/internal/server/config"
	"github.com/IvanChernomyrdin/go-user-accounts/internal/server/middleware"
	httpserver "github.com/IvanChernomyrdin/go-user-accounts/internal/server/net/http"
	"github.com/IvanChernomyrdin/go-user-accounts/internal/server/repository"
	"github.com/IvanChernomyrdin/go-user-accounts/internal/server/service"
	"github.com/IvanChernomyrdin/go-user-accounts/internal/shared/logger"
)

// NewServeCmd создаёт команду запуска сервера.
func NewServeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Запустить HTTP(S)-сервер",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadConfig()
			if err != nil {
				return err
			}
			return Serve(cmd.Context(), cfg)
		},
	}
}

// NewServices собирает репозитории и сервисы поверх открытой базы.
func NewServices(cfg *config.Config) (*service.Services, error) {
	db := config.GetDB()
	reader := repository.NewUsersReadRepository(db)

	return service.NewServices(service.Repositories{
		Reader: reader,
		Writer: repository.NewUsersWriteRepository(db),
		Health: reader,
	}, cfg)
}

// NewHTTPServer создаёт http.Server с таймаутами и лимитами из конфига.
func NewHTTPServer(cfg *config.Config, handler http.Handler) *http.Server {
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		MaxHeaderBytes:    cfg.Server.MaxHeaderBytes,
	}
	if cfg.TLS.Enabled {
		srv.TLSConfig = TLSConfig(cfg.TLS)
	}
	return srv
}

// TLSConfig — минимальная версия TLS 1.2, "1.3" поднимает её до 1.3.
func TLSConfig(cfg config.TLSConfig) *tls.Config {
	minVersion := uint16(tls.VersionTLS12)
	if cfg.MinVersion == "1.3" {
		minVersion = tls.VersionTLS13
	}
	return &tls.Config{MinVersion: minVersion}
}

// Serve поднимает базу, миграции, сервисы и HTTP-сервер и ждёт отмены ctx.
//
// После отмены ctx сервер завершается gracefully с таймаутом shutdown_timeout,
// база закрывается.
func Serve(ctx context.Context, cfg *config.Config) error {
	httpLogger := NewLogger(cfg)
	defer httpLogger.Sync()
	sugar := httpLogger.Sugar()

	// подключаем базу данных и применяем миграции
	if err := config.Init(ctx, cfg.DB, cfg.Migrations, httpLogger); err != nil {
		return err
	}
	defer func() {
		if err := config.Close(); err != nil {
			sugar.Warnf("close db: %v", err)
		}
	}()

	svc, err := NewServices(cfg)
	if err != nil {
		return err
	}

	verifier := middleware.NewJWTVerifier(service.JWTConfig(cfg))
	handler := api.NewHandler(svc, httpLogger, verifier)
	router := httpserver.NewRouter(handler, httpserver.OptionsFromConfig(cfg))

	server := NewHTTPServer(cfg, router)
	return run(ctx, server, cfg, httpLogger)
}

// run запускает сервер и graceful shutdown в одной errgroup.
func run(ctx context.Context, server *http.Server, cfg *config.Config, httpLogger *logger.HTTPLogger) error {
	sugar := httpLogger.Sugar()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		if cfg.TLS.Enabled {
			sugar.Infof("server started on https://%s", server.Addr)
			err = server.ListenAndServeTLS(cfg.TLS.CertFile, cfg.TLS.KeyFile)
		} else {
			sugar.Infof("server started on http://%s", server.Addr)
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// graceful shutdown с таймаутом из конфига
	g.Go(func() error {
		<-ctx.Done()
		sugar.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		sugar.Errorf("server stopped with error: %v", err)
		return err
	}
	sugar.Info("server gracefully stopped")
	return nil
}
