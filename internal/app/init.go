package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nordskill/medialib/internal/config"
)

func newInitCmd() *cobra.Command {
	var (
		flagBaseURL  string
		flagTokenEnv string
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the medialib config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := &config.Config{}
			if cfg != nil {
				*c = *cfg
			}
			if flagBaseURL != "" {
				c.API.BaseURL = flagBaseURL
			}
			if c.API.BaseURL == "" {
				c.API.BaseURL = "http://localhost:3000"
			}
			if flagTokenEnv != "" {
				c.API.TokenEnv = flagTokenEnv
			}
			if c.API.TokenEnv == "" {
				c.API.TokenEnv = "MEDIALIB_TOKEN"
			}
			if c.Upload.Concurrency == 0 {
				c.Upload.Concurrency = 4
			}

			if err := config.Save(c); err != nil {
				return fmt.Errorf("writing config: %w", err)
			}
			ok("config written to %s", config.DefaultPath())
			fmt.Printf("Set your API token: export %s=...\n", c.API.TokenEnv)
			return nil
		},
	}

	cmd.Flags().StringVar(&flagBaseURL, "base-url", "", "Asset server base URL")
	cmd.Flags().StringVar(&flagTokenEnv, "token-env", "", "Environment variable holding the API token")
	return cmd
}
