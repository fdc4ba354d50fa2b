package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quillmail/ewsbox/pkg/base"
	"github.com/quillmail/ewsbox/pkg/utils"
)

var foldersCmd = &cobra.Command{
	Use:   "folders",
	Short: "Discover and classify the mailbox folder tree",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		acct, err := newAccount(cmd, cfg, newLogger())
		if err != nil {
			return err
		}

		directory, err := acct.Folders()
		if err != nil {
			return err
		}

		encoded, err := json.MarshalIndent(directory, "", "  ")
		if err != nil {
			return err
		}

		fileMgr := utils.OSFileManager{}
		if err := fileMgr.WriteFile(base.FolderListFile, encoded, 0644); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Classified %d folders into %s\n", directory.Len(), base.FolderListFile)
		return nil
	},
}

func init() {
	foldersCmd.Flags().String("config", "", "Path to YAML config file (or set EWSBOX_CONFIG)")
}
