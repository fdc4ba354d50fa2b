package cli

import (
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/spf13/cobra"

	"github.com/quillmail/ewsbox/internal/config"
	"github.com/quillmail/ewsbox/pkg/utils"
)

var archiveCmd = &cobra.Command{
	Use:   "archive <ids-file>",
	Short: "Export items listed in a file and persist them to the archive bucket",
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

		s3Env, err := config.S3EnvFromEnv()
		if err != nil {
			return err
		}

		logger := newLogger()
		acct, err := newAccount(cmd, cfg, logger)
		if err != nil {
			return err
		}

		items, err := acct.Export(ids)
		if err != nil {
			return utils.WrapError(err)
		}

		sess, err := session.NewSession(&aws.Config{
			Endpoint:         aws.String(s3Env.Endpoint),
			Region:           aws.String(s3Env.Region),
			Credentials:      credentials.NewStaticCredentials(s3Env.Key, s3Env.Secret, ""),
			S3ForcePathStyle: aws.Bool(true),
		})
		if err != nil {
			return utils.WrapError(err)
		}

		archiver := utils.Archiver{
			Bucket: s3Env.Bucket,
			Prefix: cfg.Archive.Prefix,
			S3:     s3.New(sess),
			Logger: logger,
		}

		keys, err := archiver.Archive(cmd.Context(), acct.Address, items)
		if err != nil {
			return utils.WrapError(err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Archived %d items to s3://%s\n", len(keys), s3Env.Bucket)
		return nil
	},
}

func init() {
	archiveCmd.Flags().String("config", "", "Path to YAML config file (or set EWSBOX_CONFIG)")
}
