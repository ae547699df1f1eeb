package metrics

import (
	"context"

	"github.com/kepran/PickemBot_Go/internal/event"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to every outbound event type
func (e *EventMetricsCollector) Register(bus event.Bus) {
	eventTypes := []event.Type{
		event.PredictionRecorded,
		event.PredictionCleared,
		event.ResultSettled,
		event.ResultCleared,
		event.BonusRecorded,
		event.BonusFinalized,
		event.StandingsUpdated,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}
}

// HandleEvent counts the event and bumps the matching business counter
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch evt.Type {
	case event.ResultSettled:
		MatchesSettled.Inc()
	case event.BonusFinalized:
		BonusFinalized.Inc()
	}

	return nil
}
