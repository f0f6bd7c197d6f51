package gameweek_test

import (
	"testing"

	"github.com/nosata/ligalive/internal/domain/gameweek"
	"github.com/nosata/ligalive/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestResolve(t *testing.T) {
	Convey("Given a season's event list", t, func() {
		Convey("When one event is current and not finished", func() {
			events := []model.GameweekEvent{
				{ID: 1, Finished: true},
				{ID: 2, Finished: true},
				{ID: 3, IsCurrent: true},
			}

			state := gameweek.Resolve(events)

			Convey("Then the state is live on that event", func() {
				So(state.EventID, ShouldEqual, 3)
				So(state.Status, ShouldEqual, gameweek.StatusLive)
				So(state.DisplayEventID, ShouldEqual, 3)
			})
		})

		Convey("When the current event is finished", func() {
			events := []model.GameweekEvent{
				{ID: 1, Finished: true},
				{ID: 2, IsCurrent: true, Finished: true},
			}

			state := gameweek.Resolve(events)

			Convey("Then the state is finished on that event", func() {
				So(state.EventID, ShouldEqual, 2)
				So(state.Status, ShouldEqual, gameweek.StatusFinished)
				So(state.DisplayEventID, ShouldEqual, 2)
			})
		})

		Convey("When no event is current", func() {
			events := []model.GameweekEvent{
				{ID: 1, Finished: true},
				{ID: 2, Finished: true},
				{ID: 3},
			}

			state := gameweek.Resolve(events)

			Convey("Then it falls back to not started, displaying the last finished round", func() {
				So(state.EventID, ShouldEqual, 1)
				So(state.Status, ShouldEqual, gameweek.StatusNotStarted)
				So(state.DisplayEventID, ShouldEqual, 2)
			})
		})

		Convey("When the event list is empty", func() {
			state := gameweek.Resolve(nil)

			Convey("Then everything defaults to event 1", func() {
				So(state.EventID, ShouldEqual, 1)
				So(state.Status, ShouldEqual, gameweek.StatusNotStarted)
				So(state.DisplayEventID, ShouldEqual, 1)
			})
		})

		Convey("When resolving the same snapshot twice", func() {
			events := []model.GameweekEvent{{ID: 4, IsCurrent: true}}

			Convey("Then the result is identical", func() {
				So(gameweek.Resolve(events), ShouldResemble, gameweek.Resolve(events))
			})
		})
	})
}
