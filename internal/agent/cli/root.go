// Package cli реализует командный интерфейс клиента сервиса учётных записей (usersctl).
//
// Пакет отвечает за:
//   - определение root-команды и набора подкоманд;
//   - разбор аргументов и флагов командной строки;
//   - загрузку локальных учётных данных (access-токен) из конфигурационного файла;
//   - выполнение команд и вывод результата пользователю.
//
// Точка входа пакета — функция Execute.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/go-user-accounts/internal/agent/api"
	"github.com/IvanChernomyrdin/go-user-accounts/internal/agent/config"
)

// DefaultServerURL — адрес сервера по умолчанию.
const DefaultServerURL = "http://127.0.0.1:3000"

// App содержит состояние CLI-приложения, разделяемое между командами.
type App struct {
	// ServerURL — базовый URL сервера (например, "http://127.0.0.1:3000").
	ServerURL string
	// Insecure отключает проверку TLS-сертификата сервера.
	Insecure bool

	// CredsPath — путь к файлу с сохранёнными учётными данными.
	CredsPath string
	// Creds — загруженные учётные данные.
	// Может быть nil, если загрузка не выполнялась или завершилась ошибкой.
	Creds *config.Credentials
}

// client создаёт API-клиент под текущие настройки.
func (a *App) client() *api.Client {
	var opts []api.Option
	if a.Insecure {
		opts = append(opts, api.WithInsecureTLS())
	}
	return NewAPIClient(a.ServerURL, opts...)
}

// token возвращает сохранённый access-токен.
func (a *App) token() (string, error) {
	return a.Creds.Token()
}

// NewRootCmd создаёт root-команду CLI и регистрирует подкоманды.
//
// buildVersion и buildDate используются командой version.
// В PersistentPreRunE определяется путь к файлу учётных данных и загружается токен.
// Если --server не задан явно, используется сервер из последнего логина.
func NewRootCmd(buildVersion, buildDate string) *cobra.Command {
	app := &App{ServerURL: DefaultServerURL}

	cmd := &cobra.Command{
		Use:   "usersctl",
		Short: "usersctl — клиент сервиса учётных записей",
		Long: `usersctl — клиент сервиса учётных записей.

Команды:
  register  Регистрация нового пользователя
  login     Логин (получить access-токен)
  logout    Удалить сохранённый токен
  me        Данные из текущего токена
  users     Список, просмотр, изменение и удаление пользователей
  version   Версия и дата сборки

Примеры:

Регистрация:
  usersctl register --name Ann --email ann@example.com --password StrongPass123

Логин:
  usersctl login --email ann@example.com --password StrongPass123
  (сохраняет access-токен в ~/.usersctl/credentials.json)

Список с фильтром:
  usersctl users list --filter 'name[ilike]=%ann%' --filter 'createdAt[gte]=2024-01-01'
`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if app.CredsPath == "" {
				p, err := config.DefaultPath()
				if err != nil {
					return err
				}
				app.CredsPath = p
			}

			creds, err := config.Load(app.CredsPath)
			if err != nil {
				return err
			}
			app.Creds = creds

			if !cmd.Flags().Changed("server") && creds.ServerURL != "" {
				app.ServerURL = creds.ServerURL
			}
			return nil
		},
	}

	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)

	cmd.PersistentFlags().StringVar(&app.ServerURL, "server", DefaultServerURL, "server base URL")
	cmd.PersistentFlags().BoolVar(&app.Insecure, "insecure", false, "skip TLS certificate verification (dev only)")
	cmd.PersistentFlags().StringVar(&app.CredsPath, "credentials", "", "credentials file (default ~/.usersctl/credentials.json)")

	cmd.AddCommand(NewRegisterCmd(app))
	cmd.AddCommand(NewLoginCmd(app))
	cmd.AddCommand(NewLogoutCmd(app))
	cmd.AddCommand(NewMeCmd(app))
	cmd.AddCommand(NewUsersCmd(app))
	cmd.AddCommand(NewVersionCmd(buildVersion, buildDate))

	return cmd
}

// Execute запускает обработку CLI-команд.
//
// При ошибке сообщение выводится в stderr, процесс завершается с кодом 1.
func Execute(buildVersion, buildDate string) {
	if err := NewRootCmd(buildVersion, buildDate).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
