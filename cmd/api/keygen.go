// AngelaMos | 2026
// keygen.go

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/carterperez-dev/apartment-api/internal/auth"
)

func keygenCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "keygen",
		Short: "Generate the ES256 signing key pair",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}

			if err := auth.GenerateKeyPair(
				cfg.JWT.PrivateKeyPath,
				cfg.JWT.PublicKeyPath,
			); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s and %s\n",
				cfg.JWT.PrivateKeyPath, cfg.JWT.PublicKeyPath)
			return nil
		},
	}
}
