package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/go-user-accounts/internal/server/config"
	serr "github.com/IvanChernomyrdin/go-user-accounts/internal/shared/errors"
)

// NewUserCmd создаёт группу административных команд над пользователями.
func NewUserCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Административные операции с пользователями",
	}
	cmd.AddCommand(newUserCreateCmd(app))
	return cmd
}

// newUserCreateCmd создаёт пользователя напрямую через сервисный слой.
// Правила те же, что у POST /users: уникальный email, пароль только хэшем.
func newUserCreateCmd(app *App) *cobra.Command {
	var name, email, password string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Создать пользователя в обход HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// те же проверки, что у POST /users, до похода в конфиг и базу
			name = strings.TrimSpace(name)
			if name == "" || strings.TrimSpace(email) == "" || password == "" {
				return fmt.Errorf("name, email and password must not be empty: %w", serr.ErrInvalidInput)
			}

			cfg, err := app.LoadConfig()
			if err != nil {
				return err
			}

			httpLogger := NewLogger(cfg)
			defer httpLogger.Sync()

			ctx := cmd.Context()
			if err := config.Init(ctx, cfg.DB, cfg.Migrations, httpLogger); err != nil {
				return err
			}
			defer config.Close()

			svc, err := NewServices(cfg)
			if err != nil {
				return err
			}

			u, err := svc.Users.CreateUser(ctx, name, email, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "user created: id=%s email=%s\n", u.ID, u.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "unique email")
	cmd.Flags().StringVar(&password, "password", "", "password")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")

	return cmd
}
