package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	envEndpoint   = "EWSBOX_EWS_ENDPOINT"
	envUser       = "EWSBOX_EWS_USER"
	envPass       = "EWSBOX_EWS_PASS"
	envS3Endpoint = "EWSBOX_S3_ENDPOINT"
	envS3Region   = "EWSBOX_S3_REGION"
	envS3Bucket   = "EWSBOX_S3_BUCKET"
	envS3Key      = "EWSBOX_S3_KEY"
	envS3Secret   = "EWSBOX_S3_SECRET"
	envWebhookURL = "EWSBOX_WEBHOOK_URL"
)

// Config holds non-secret configuration loaded from YAML.
type Config struct {
	Account Account `yaml:"account"`
	Archive Archive `yaml:"archive"`
	Watch   Watch   `yaml:"watch"`
}

// Account identifies the mailbox to operate on.
type Account struct {
	Address            string `yaml:"address"`
	Fullname           string `yaml:"fullname"`
	Locale             string `yaml:"locale"`
	AccessType         string `yaml:"access_type"`
	InsecureSkipVerify bool   `yaml:"insecure_skip_verify"`
}

// Archive configures where exported items are persisted.
type Archive struct {
	Prefix string `yaml:"prefix"`
}

// Watch configures the subscription event loop.
type Watch struct {
	Events       []string `yaml:"events"`
	PollInterval string   `yaml:"poll_interval"`
}

// ServiceEnv holds the service connection details from environment variables.
type ServiceEnv struct {
	Endpoint string
	User     string
	Pass     string
}

// Load reads configuration from a YAML file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate performs basic validation on non-secret config.
func Validate(cfg Config) error {
	if strings.TrimSpace(cfg.Account.Address) == "" {
		return errors.New("config must define account.address")
	}
	if !strings.Contains(cfg.Account.Address, "@") {
		return fmt.Errorf("account.address %q is not an email address", cfg.Account.Address)
	}
	switch cfg.Account.AccessType {
	case "", "delegate", "impersonation":
	default:
		return fmt.Errorf("account.access_type %q must be delegate or impersonation", cfg.Account.AccessType)
	}
	return nil
}

// ValidateEnv ensures required environment variables are set.
func ValidateEnv() error {
	missing := []string{}
	for _, name := range requiredEnvVars() {
		if strings.TrimSpace(os.Getenv(name)) == "" {
			missing = append(missing, name)
		}
	}

	if len(missing) == 0 {
		return nil
	}

	return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
}

// ServiceEnvFromEnv loads service connection details and validates required
// entries.
func ServiceEnvFromEnv() (ServiceEnv, error) {
	missing := []string{}

	endpoint := strings.TrimSpace(os.Getenv(envEndpoint))
	if endpoint == "" {
		missing = append(missing, envEndpoint)
	}

	user := strings.TrimSpace(os.Getenv(envUser))
	if user == "" {
		missing = append(missing, envUser)
	}

	pass := strings.TrimSpace(os.Getenv(envPass))
	if pass == "" {
		missing = append(missing, envPass)
	}

	if len(missing) > 0 {
		return ServiceEnv{}, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	return ServiceEnv{
		Endpoint: endpoint,
		User:     user,
		Pass:     pass,
	}, nil
}

// S3Env holds the archive bucket details from environment variables.
type S3Env struct {
	Endpoint string
	Region   string
	Bucket   string
	Key      string
	Secret   string
}

// S3EnvFromEnv loads archive bucket details and validates required entries.
func S3EnvFromEnv() (S3Env, error) {
	missing := []string{}
	values := map[string]string{}
	for _, name := range []string{envS3Endpoint, envS3Region, envS3Bucket, envS3Key, envS3Secret} {
		value := strings.TrimSpace(os.Getenv(name))
		if value == "" {
			missing = append(missing, name)
		}
		values[name] = value
	}

	if len(missing) > 0 {
		return S3Env{}, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	return S3Env{
		Endpoint: values[envS3Endpoint],
		Region:   values[envS3Region],
		Bucket:   values[envS3Bucket],
		Key:      values[envS3Key],
		Secret:   values[envS3Secret],
	}, nil
}

// Summary returns a concise config summary for validation runs.
func Summary(cfg Config) string {
	reportingStatus := "disabled"
	if ReportingEnabled() {
		reportingStatus = "enabled"
	}
	return fmt.Sprintf(
		"Config summary\n"+
			"- account: %s\n"+
			"- locale: %s\n"+
			"- reporting webhook: %s\n"+
			"- archive prefix: %s",
		cfg.Account.Address,
		defaultIfEmpty(cfg.Account.Locale, "(default)"),
		reportingStatus,
		defaultIfEmpty(cfg.Archive.Prefix, "(not set)"),
	)
}

// ReportingEnabled returns true when a webhook URL is configured via env var.
func ReportingEnabled() bool {
	return strings.TrimSpace(os.Getenv(envWebhookURL)) != ""
}

// WebhookURL returns the configured webhook URL, empty when reporting is
// disabled.
func WebhookURL() string {
	return strings.TrimSpace(os.Getenv(envWebhookURL))
}

func requiredEnvVars() []string {
	return []string{
		envEndpoint,
		envUser,
		envPass,
		envS3Endpoint,
		envS3Region,
		envS3Bucket,
		envS3Key,
		envS3Secret,
	}
}

func defaultIfEmpty(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
