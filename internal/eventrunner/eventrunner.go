// Package eventrunner polls a pull subscription and announces matching
// mailbox events.
package eventrunner

import (
	"context"
	"log/slog"
	"time"

	"github.com/quillmail/ewsbox/pkg/base"
)

// EventSource yields pending events, advancing its watermark on each call.
type EventSource interface {
	GetEvents() ([]base.Event, error)
}

type Deps struct {
	Ctx      context.Context
	Source   EventSource
	Events   []base.EventType
	Log      *slog.Logger
	Announce func(base.Event)
}

// ProcessEvents filters one batch of events against the configured types and
// announces every match.
func ProcessEvents(deps Deps, events []base.Event) int {
	matched := 0
	for _, event := range events {
		if !wanted(deps.Events, event.Type) {
			deps.Log.Debug("skipping event", "type", event.Type)
			continue
		}
		matched++
		deps.Log.Info("event", "type", event.Type, "item", event.ItemID.ID, "folder", event.FolderID)
		if deps.Announce != nil {
			deps.Announce(event)
		}
	}
	return matched
}

// Run polls the source at the given interval until the context is done.
func Run(deps Deps, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-deps.Ctx.Done():
			return deps.Ctx.Err()
		case <-ticker.C:
		}

		events, err := deps.Source.GetEvents()
		if err != nil {
			return err
		}
		deps.Log.Debug("fetched events", "events", len(events))
		ProcessEvents(deps, events)
	}
}

func wanted(filter []base.EventType, t base.EventType) bool {
	if len(filter) == 0 {
		return true
	}
	for _, f := range filter {
		if f == t {
			return true
		}
	}
	return false
}
