package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/quillmail/ewsbox/internal/config"
	"github.com/quillmail/ewsbox/internal/ewsclient"
	"github.com/quillmail/ewsbox/pkg/base"
	"github.com/quillmail/ewsbox/pkg/models/account"
)

const configEnvVar = "EWSBOX_CONFIG"
const defaultEnvFile = ".env"

var rootCmd = &cobra.Command{
	Use:   "ewsbox",
	Short: "ewsbox resolves and manages a mailbox's well-known folders",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(foldersCmd)
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(purgeCmd)
	rootCmd.AddCommand(archiveCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(validateCmd)
}

func resolveConfigPath(cmd *cobra.Command) (string, error) {
	cfgPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(cfgPath) == "" {
		cfgPath = os.Getenv(configEnvVar)
	}
	if strings.TrimSpace(cfgPath) == "" {
		return "", errors.New("config path is required via --config or EWSBOX_CONFIG")
	}
	return cfgPath, nil
}

func loadEnvFile() error {
	if _, err := os.Stat(defaultEnvFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return godotenv.Load(defaultEnvFile)
}

// loadConfig resolves, loads and validates the YAML config.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfgPath, err := resolveConfigPath(cmd)
	if err != nil {
		return config.Config{}, err
	}

	if err := loadEnvFile(); err != nil {
		return config.Config{}, err
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return config.Config{}, err
	}

	if err := config.Validate(cfg); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// newAccount wires a connected service client into an account facade.
func newAccount(cmd *cobra.Command, cfg config.Config, logger *slog.Logger) (*account.Account, error) {
	serviceEnv, err := config.ServiceEnvFromEnv()
	if err != nil {
		return nil, err
	}

	client := &ewsclient.Client{
		Endpoint:           serviceEnv.Endpoint,
		Username:           serviceEnv.User,
		Password:           serviceEnv.Pass,
		InsecureSkipVerify: cfg.Account.InsecureSkipVerify,
	}
	if err := client.Connect(); err != nil {
		return nil, err
	}

	opts := []account.AccountOption{
		account.WithIdentity(cfg.Account.Address, cfg.Account.Fullname),
		account.WithService(client),
		account.WithCredentials(account.Credentials{Username: serviceEnv.User, Password: serviceEnv.Pass}),
		account.WithLogger(logger),
		account.WithCtx(cmd.Context()),
	}
	if cfg.Account.Locale != "" {
		opts = append(opts, account.WithLocale(cfg.Account.Locale))
	}
	if cfg.Account.AccessType != "" {
		opts = append(opts, account.WithAccessType(base.AccessType(cfg.Account.AccessType)))
	}

	return account.NewAccount(opts...)
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, nil))
}
