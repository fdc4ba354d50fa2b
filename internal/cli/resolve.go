package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quillmail/ewsbox/pkg/models/folder"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <folder-type>",
	Short: "Resolve the default folder for a well-known type",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, ok := folder.ParseWellKnownType(args[0])
		if !ok {
			return fmt.Errorf("unknown folder type %q", args[0])
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		acct, err := newAccount(cmd, cfg, newLogger())
		if err != nil {
			return err
		}

		resolved, err := acct.DefaultFolder(t)
		if err != nil {
			return err
		}

		encoded, err := json.MarshalIndent(resolved, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(encoded))
		return nil
	},
}

func init() {
	resolveCmd.Flags().String("config", "", "Path to YAML config file (or set EWSBOX_CONFIG)")
}
