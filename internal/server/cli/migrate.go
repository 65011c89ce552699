package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/go-user-accounts/internal/server/config"
)

// NewMigrateCmd создаёт команду ручного прогона миграций.
//
// Пример использования:
//
//	users-server migrate up
//	users-server migrate down
func NewMigrateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:       "migrate <up|down>",
		Short:     "Применить или откатить миграции базы",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{string(config.MigrateUp), string(config.MigrateDown)},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadConfig()
			if err != nil {
				return err
			}

			db, err := config.Open(cmd.Context(), cfg.DB)
			if err != nil {
				return err
			}
			defer db.Close()

			dir := config.MigrateDirection(args[0])
			if err := config.Migrate(db, cfg.Migrations.Path, dir); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "migrations %s: ok\n", dir)
			return nil
		},
	}
}
