package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quillmail/ewsbox/internal/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration file and required environment variables",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		if err := config.ValidateEnv(); err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), config.Summary(cfg))
		return nil
	},
}

func init() {
	validateCmd.Flags().String("config", "", "Path to YAML config file (or set EWSBOX_CONFIG)")
}
