package cli

import (
	"github.com/spf13/cobra"
)

// NewMeCmd создаёт CLI-команду, показывающую id и email из текущего токена.
//
// Пример использования:
//
//	usersctl me
func NewMeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Проверить токен и показать текущего пользователя",
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := app.token()
			if err != nil {
				return err
			}

			resp, err := app.client().Me(cmd.Context(), token)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}
}
