package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quillmail/ewsbox/pkg/base"
)

var purgeCmd = &cobra.Command{
	Use:   "purge <ids-file>",
	Short: "Bulk-delete items listed in a file, one 'id changekey' pair per line",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		ids, err := readItemIDs(args[0])
		if err != nil {
			return err
		}

		dryRun, err := cmd.Flags().GetBool("dry-run")
		if err != nil {
			return err
		}
		if dryRun {
			fmt.Fprintf(cmd.OutOrStdout(), "Dry run: would delete %d items\n", len(ids))
			return nil
		}

		deleteType, err := cmd.Flags().GetString("delete-type")
		if err != nil {
			return err
		}

		acct, err := newAccount(cmd, cfg, newLogger())
		if err != nil {
			return err
		}

		opts := base.DefaultDeleteOptions()
		opts.DeleteType = base.DeleteType(deleteType)

		results, err := acct.BulkDelete(ids, opts)
		if err != nil {
			return err
		}

		deleted := 0
		for _, result := range results {
			if result.OK {
				deleted++
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Failed to delete %s: %s\n", result.ID.ID, result.Message)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d of %d items\n", deleted, len(ids))
		return nil
	},
}

func init() {
	purgeCmd.Flags().String("config", "", "Path to YAML config file (or set EWSBOX_CONFIG)")
	purgeCmd.Flags().Bool("dry-run", false, "Report what would be deleted without making changes")
	purgeCmd.Flags().String("delete-type", string(base.HardDelete), "HardDelete, SoftDelete or MoveToDeletedItems")
}

func readItemIDs(path string) ([]base.ItemID, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close() //nolint:errcheck

	var ids []base.ItemID
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		id, changeKey, _ := strings.Cut(line, " ")
		ids = append(ids, base.ItemID{ID: id, ChangeKey: changeKey})
	}
	return ids, scanner.Err()
}
