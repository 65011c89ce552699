package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/go-user-accounts/internal/agent/config"
)

// NewLoginCmd создаёт CLI-команду входа пользователя.
//
// Команда получает access-токен и сохраняет его вместе с адресом сервера
// в локальный конфигурационный файл. При ошибке логина файл не трогается.
//
// Пример использования:
//
//	usersctl login --email ann@example.com --password StrongPass123
func NewLoginCmd(app *App) *cobra.Command {
	var (
		email string
		pw    passwordFlags
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Логин пользователя (получить access-токен)",
		Long: `Логин пользователя.

Пример:
  usersctl login --email ann@example.com --password StrongPass123
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := pw.resolve(cmd)
			if err != nil {
				return err
			}

			resp, err := app.client().Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}

			app.Creds = &config.Credentials{
				ServerURL:   app.ServerURL,
				AccessToken: resp.Token,
				UserID:      resp.User.ID,
				Email:       resp.User.Email,
			}
			if err := config.Save(app.CredsPath, app.Creds); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "login ok (token saved)")
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email for login")
	pw.bind(cmd, "password for login")
	cmd.MarkFlagRequired("email")

	return cmd
}

// NewLogoutCmd создаёт CLI-команду, удаляющую сохранённый токен.
func NewLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Удалить сохранённый access-токен",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Remove(app.CredsPath); err != nil {
				return err
			}
			app.Creds = &config.Credentials{}
			fmt.Fprintln(cmd.OutOrStdout(), "logged out")
			return nil
		},
	}
}
