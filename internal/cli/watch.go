package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/quillmail/ewsbox/internal/announcer"
	"github.com/quillmail/ewsbox/internal/config"
	"github.com/quillmail/ewsbox/internal/eventrunner"
	"github.com/quillmail/ewsbox/pkg/base"
	"github.com/quillmail/ewsbox/pkg/models/subscription"
)

const defaultPollInterval = 30 * time.Second

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the inbox for mailbox events via a pull subscription",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		interval := defaultPollInterval
		if cfg.Watch.PollInterval != "" {
			interval, err = time.ParseDuration(cfg.Watch.PollInterval)
			if err != nil {
				return fmt.Errorf("invalid watch.poll_interval: %w", err)
			}
		}

		var events []base.EventType
		for _, name := range cfg.Watch.Events {
			events = append(events, base.EventType(name))
		}
		if len(events) == 0 {
			events = []base.EventType{base.NewMailEvent}
		}

		logger := newLogger()
		acct, err := newAccount(cmd, cfg, logger)
		if err != nil {
			return err
		}

		inbox, err := acct.Inbox()
		if err != nil {
			return err
		}

		sub, err := subscription.NewSubscription(
			subscription.WithService(acct.Service()),
			subscription.WithFolder(inbox),
			subscription.WithEvents(events...),
			subscription.WithLogger(logger),
			subscription.WithCtx(cmd.Context()),
		)
		if err != nil {
			return err
		}
		defer func() {
			if err := sub.Unsubscribe(); err != nil {
				logger.Error("Failed to unsubscribe", "error", err)
			}
		}()

		fmt.Fprintf(cmd.OutOrStdout(), "watching %s (subscription %s)\n", inbox.DisplayName, sub.ID())

		deps := eventrunner.Deps{
			Ctx:    cmd.Context(),
			Source: sub,
			Events: events,
			Log:    logger,
		}
		if config.ReportingEnabled() {
			reporter := announcer.New(announcer.WithWebhookURL(config.WebhookURL()))
			deps.Announce = func(event base.Event) {
				if err := reporter.Do(event); err != nil {
					logger.Error("Failed to announce event", "error", err)
				}
			}
		}

		return eventrunner.Run(deps, interval)
	},
}

func init() {
	watchCmd.Flags().String("config", "", "Path to YAML config file (or set EWSBOX_CONFIG)")
}
