package eventrunner_test

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/quillmail/ewsbox/internal/eventrunner"
	"github.com/quillmail/ewsbox/pkg/base"
	"github.com/quillmail/ewsbox/pkg/mock"
)

type stubSource struct {
	batches [][]base.Event
	err     error
	calls   int
}

func (s *stubSource) GetEvents() ([]base.Event, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	if len(s.batches) == 0 {
		return nil, nil
	}
	batch := s.batches[0]
	s.batches = s.batches[1:]
	return batch, nil
}

func TestProcessEvents(t *testing.T) {
	events := []base.Event{
		{Type: base.NewMailEvent, ItemID: base.ItemID{ID: "item-1"}},
		{Type: base.DeletedEvent, ItemID: base.ItemID{ID: "item-2"}},
		{Type: base.NewMailEvent, ItemID: base.ItemID{ID: "item-3"}},
	}

	var announced []base.Event
	deps := eventrunner.Deps{
		Ctx:      context.Background(),
		Events:   []base.EventType{base.NewMailEvent},
		Log:      mock.SetupLogger(t),
		Announce: func(e base.Event) { announced = append(announced, e) },
	}

	matched := eventrunner.ProcessEvents(deps, events)
	assert.Equal(t, 2, matched)
	assert.Equal(t, []base.Event{events[0], events[2]}, announced)
}

func TestProcessEventsEmptyFilterMatchesAll(t *testing.T) {
	events := []base.Event{
		{Type: base.NewMailEvent},
		{Type: base.MovedEvent},
	}

	deps := eventrunner.Deps{
		Ctx: context.Background(),
		Log: mock.SetupLogger(t),
	}

	assert.Equal(t, 2, eventrunner.ProcessEvents(deps, events))
}

func TestRunStopsWhenContextDone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	source := &stubSource{batches: [][]base.Event{
		{{Type: base.NewMailEvent, ItemID: base.ItemID{ID: "item-1"}}},
	}}

	var announced int
	deps := eventrunner.Deps{
		Ctx:    ctx,
		Source: source,
		Log:    mock.SetupLogger(t),
		Announce: func(base.Event) {
			announced++
			cancel()
		},
	}

	err := eventrunner.Run(deps, time.Millisecond)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, announced)
}

func TestRunReturnsSourceError(t *testing.T) {
	sourceErr := errors.New("subscription expired")
	deps := eventrunner.Deps{
		Ctx:    context.Background(),
		Source: &stubSource{err: sourceErr},
		Log:    mock.SetupLogger(t),
	}

	err := eventrunner.Run(deps, time.Millisecond)
	assert.Equal(t, sourceErr, err)
}
