package cli

import (
	"fxadmin-service/internal/bootstrap"
	"fxadmin-service/internal/infrastructure/logx"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, cleanup, err := bootstrap.InitMigrator(cmd.Context())
		if err != nil {
			return err
		}
		defer cleanup()
		logx.L().Info("migrations applied")
		return nil
	},
}
