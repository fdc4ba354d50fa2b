// Package announcer posts mailbox event notifications to a reporting webhook.
package announcer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/quillmail/ewsbox/pkg/base"
)

const webhookAnnouncePath = "/announcements"

type Option func(*webhookAnnouncer)

type Service interface {
	Do(event base.Event) error
}

func WithWebhookURL(webhookURL string) Option {
	return func(wa *webhookAnnouncer) {
		wa.baseURL = strings.TrimSpace(webhookURL)
	}
}

// WithHTTPClient overrides the default client, mainly for tests.
func WithHTTPClient(client *http.Client) Option {
	return func(wa *webhookAnnouncer) {
		wa.client = client
	}
}

type webhookAnnouncer struct {
	baseURL string
	client  *http.Client
}

func New(opts ...Option) *webhookAnnouncer {
	announcer := &webhookAnnouncer{}
	for _, opt := range opts {
		opt(announcer)
	}
	if announcer.client == nil {
		announcer.client = &http.Client{Timeout: 10 * time.Second}
	}
	return announcer
}

// Do posts one event to the webhook. A missing URL disables reporting rather
// than failing.
func (wa *webhookAnnouncer) Do(event base.Event) error {
	if wa.baseURL == "" {
		return nil
	}
	baseURL := strings.TrimRight(wa.baseURL, "/")
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	req, err := http.NewRequest("POST", baseURL+webhookAnnouncePath, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := wa.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("reporting webhook returned status %s", resp.Status)
	}
	return nil
}
