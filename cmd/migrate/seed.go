package main

import (
	"fmt"

	"github.com/redonshkr/gov-content-hub/internal/domain"
	"github.com/redonshkr/gov-content-hub/internal/repository"
	"github.com/redonshkr/gov-content-hub/internal/service"
	"github.com/spf13/cobra"
)

var seedAdminCmd = &cobra.Command{
	Use:   "seed-admin EMAIL",
	Short: "Grant ADMIN to a user, creating the user if needed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, closeDB, err := openSchema()
		if err != nil {
			return err
		}
		defer closeDB()

		actors := service.NewActorService(repository.NewStore(db))
		user, err := actors.GrantRole(cmd.Context(), args[0], domain.RoleAdmin)
		if err != nil {
			return fmt.Errorf("seed admin: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Granted ADMIN to %s (id=%s, roles=%v)\n", user.Email, user.ID, user.Roles)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedAdminCmd)
}
