// Package cli реализует командный интерфейс серверного приложения.
//
// Команды:
//   - serve: запуск HTTP(S)-сервера;
//   - migrate up|down: ручной прогон миграций;
//   - user create: создание пользователя в обход HTTP (первичная настройка);
//   - version: версия и дата сборки.
//
// Точка входа пакета — функция Execute.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/go-user-accounts/internal/server/config"
	"github.com/IvanChernomyrdin/go-user-accounts/internal/shared/logger"
)

// DefaultConfigPath — путь к конфигу сервера по умолчанию.
const DefaultConfigPath = "./configs/server.yaml"

// App — общее состояние команд сервера.
type App struct {
	// ConfigPath — путь к YAML-конфигу.
	ConfigPath string
	// EnvFile — .env файл, подгружаемый перед чтением конфига (если есть).
	EnvFile string
}

// LoadConfig подгружает .env и читает конфиг сервера.
// Отсутствие .env не ошибка: переменные могут прийти из окружения.
func (a *App) LoadConfig() (*config.Config, error) {
	if a.EnvFile != "" {
		_ = godotenv.Load(a.EnvFile)
	}
	return config.Load(a.ConfigPath)
}

// NewLogger создаёт zap-логгер по секции log конфига.
func NewLogger(cfg *config.Config) *logger.HTTPLogger {
	return logger.New(logger.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
		Stdout: cfg.Log.Stdout,
	})
}

// NewRootCmd создаёт root-команду сервера.
func NewRootCmd(buildVersion, buildDate string) *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:   "users-server",
		Short: "Сервер учётных записей пользователей",
		Long: `Сервер учётных записей пользователей.

Примеры:
  users-server serve --config ./configs/server.yaml
  users-server migrate up
  users-server user create --name Admin --email admin@example.com --password StrongPass123
`,
		SilenceUsage: true,
	}

	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)

	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", DefaultConfigPath, "path to server config (yaml)")
	cmd.PersistentFlags().StringVar(&app.EnvFile, "env-file", ".env", "dotenv file loaded before the config")

	cmd.AddCommand(NewServeCmd(app))
	cmd.AddCommand(NewMigrateCmd(app))
	cmd.AddCommand(NewUserCmd(app))
	cmd.AddCommand(NewVersionCmd(buildVersion, buildDate))

	return cmd
}

// Execute запускает CLI сервера. SIGINT/SIGTERM/SIGQUIT отменяют контекст команды.
func Execute(buildVersion, buildDate string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	if err := NewRootCmd(buildVersion, buildDate).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
