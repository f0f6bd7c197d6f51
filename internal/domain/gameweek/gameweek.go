// Package gameweek classifies the competition's current temporal phase.
package gameweek

import "github.com/nosata/ligalive/internal/domain/model"

// Status is the temporal phase of the tracked gameweek.
type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusLive       Status = "live"
	StatusFinished   Status = "finished"
)

// State is the resolved phase of the competition.
//
// DisplayEventID is the gameweek whose figures should be shown as the
// "latest completed" data when the tracked one has no figures of its own yet.
type State struct {
	EventID        int    `json:"event_id"`
	Status         Status `json:"status"`
	DisplayEventID int    `json:"display_event_id"`
}

// Resolve classifies the ordered event list into a State.
//
// The event flagged current drives the result: finished means the round is
// over, otherwise it is live. When no event is current yet (pre-season, or a
// snapshot taken between rounds) the state falls back to NotStarted with the
// highest-id finished event as the display round, defaulting to event 1.
func Resolve(events []model.GameweekEvent) State {
	var current *model.GameweekEvent
	for i := range events {
		if events[i].IsCurrent {
			current = &events[i]
			break
		}
	}

	if current == nil {
		return State{EventID: 1, Status: StatusNotStarted, DisplayEventID: lastFinished(events)}
	}

	if current.Finished {
		return State{EventID: current.ID, Status: StatusFinished, DisplayEventID: current.ID}
	}

	return State{EventID: current.ID, Status: StatusLive, DisplayEventID: current.ID}
}

// lastFinished returns the highest-id finished event, or 1 if none finished.
func lastFinished(events []model.GameweekEvent) int {
	last := 1
	for _, ev := range events {
		if ev.Finished && ev.ID > last {
			last = ev.ID
		}
	}
	return last
}
