// AngelaMos | 2026
// seed.go

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/carterperez-dev/apartment-api/internal/core"
	"github.com/carterperez-dev/apartment-api/internal/user"
)

func seedCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create the bootstrap manager account",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}

			db, err := core.NewDatabase(cmd.Context(), cfg.Database)
			if err != nil {
				return err
			}
			defer db.Close() //nolint:errcheck // process exits next

			svc := user.NewService(user.NewRepository(db.DB))
			u, created, err := svc.Seed(cmd.Context(), user.SeedUserRequest{
				Email:    cfg.Seed.Email,
				Username: cfg.Seed.Username,
				Password: cfg.Seed.Password,
				Role:     cfg.Seed.Role,
			})
			if err != nil {
				return err
			}

			if created {
				fmt.Fprintf(cmd.OutOrStdout(), "created %s user %s (id %d)\n",
					u.Role, u.Email, u.ID)
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "user %s already exists (id %d)\n",
				u.Email, u.ID)
			return nil
		},
	}
}
