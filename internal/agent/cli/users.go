package cli

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/go-user-accounts/internal/shared/models"
	"github.com/IvanChernomyrdin/go-user-accounts/internal/shared/utils"
)

// ErrNothingToUpdate — в users update не передано ни одного поля.
var ErrNothingToUpdate = errors.New("nothing to update: set --name, --email or --password")

// NewUsersCmd создаёт группу команд для работы с пользователями.
//
// Все подкоманды требуют выполненного login.
func NewUsersCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Список, просмотр, изменение и удаление пользователей",
	}

	cmd.AddCommand(newUsersListCmd(app))
	cmd.AddCommand(newUsersGetCmd(app))
	cmd.AddCommand(newUsersUpdateCmd(app))
	cmd.AddCommand(newUsersDeleteCmd(app))

	return cmd
}

// ParseFilterFlags превращает ["name[ilike]=%a%", "email=x"] в query-параметры.
// Разделитель — первый "=", ключ не может быть пустым.
func ParseFilterFlags(filters []string) (url.Values, error) {
	q := url.Values{}
	for _, f := range filters {
		key, value, ok := strings.Cut(f, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("invalid filter %q: want field[op]=value", f)
		}
		q.Add(strings.TrimSpace(key), value)
	}
	return q, nil
}

func newUsersListCmd(app *App) *cobra.Command {
	var (
		filters   []string
		relations string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Список пользователей под фильтр",
		Long: `Список пользователей.

Фильтр задаётся повторяемым флагом --filter в виде field[op]=value.
Поля: id, name, email, createdAt, updatedAt.
Операторы: eq, not, lt, lte, gt, gte, between, in, like, ilike.

Пример:
  usersctl users list --filter 'name[ilike]=%ann%' --filter 'createdAt[between]=2024-01-01,2024-12-31'
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := app.token()
			if err != nil {
				return err
			}

			q, err := ParseFilterFlags(filters)
			if err != nil {
				return err
			}
			if relations != "" {
				q.Set("relations", relations)
			}

			users, err := app.client().ListUsers(cmd.Context(), q, token)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), users)
		},
	}

	cmd.Flags().StringArrayVar(&filters, "filter", nil, "filter predicate field[op]=value (repeatable)")
	cmd.Flags().StringVar(&relations, "relations", "", "comma separated relations")

	return cmd
}

func newUsersGetCmd(app *App) *cobra.Command {
	var relations string

	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Показать пользователя по id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := app.token()
			if err != nil {
				return err
			}

			u, err := app.client().GetUser(cmd.Context(), args[0], relations, token)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), u)
		},
	}

	cmd.Flags().StringVar(&relations, "relations", "", "comma separated relations")

	return cmd
}

func newUsersUpdateCmd(app *App) *cobra.Command {
	var (
		name, email string
		pw          passwordFlags
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Изменить имя, email или пароль пользователя",
		Long: `Частичное обновление: меняются только переданные флаги.

Пример:
  usersctl users update 5f0c... --name Bob
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := app.token()
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			req := models.UpdateUserRequest{
				Name:  utils.PtrIfSet(name, flags.Changed("name")),
				Email: utils.PtrIfSet(email, flags.Changed("email")),
			}
			if flags.Changed("password") || pw.fromStdin {
				password, err := pw.resolve(cmd)
				if err != nil {
					return err
				}
				req.Password = &password
			}
			if req.Name == nil && req.Email == nil && req.Password == nil {
				return ErrNothingToUpdate
			}

			u, err := app.client().UpdateUser(cmd.Context(), args[0], req, token)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), u)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new display name")
	cmd.Flags().StringVar(&email, "email", "", "new email")
	pw.bind(cmd, "new password")

	return cmd
}

func newUsersDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Удалить пользователя",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := app.token()
			if err != nil {
				return err
			}

			resp, err := app.client().DeleteUser(cmd.Context(), args[0], token)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}
}
