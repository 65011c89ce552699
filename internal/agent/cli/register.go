package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewRegisterCmd создаёт CLI-команду регистрации нового пользователя.
//
// Флаги --name и --email обязательны. Пароль берётся из --password,
// из stdin (--password-stdin) или спрашивается в терминале.
//
// Пример использования:
//
//	usersctl register --name Ann --email ann@example.com --password StrongPass123
func NewRegisterCmd(app *App) *cobra.Command {
	var (
		name, email string
		pw          passwordFlags
	)

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Регистрация нового пользователя",
		Long: `Регистрация нового пользователя на сервере.

Пример:
  usersctl register --name Ann --email ann@example.com --password StrongPass123
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := pw.resolve(cmd)
			if err != nil {
				return err
			}

			u, err := app.client().Register(cmd.Context(), name, email, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "registration successful, id=%s\n", u.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "email for registration")
	pw.bind(cmd, "password for registration")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("email")

	return cmd
}
