package bonus_test

import (
	"testing"

	"github.com/nosata/ligalive/internal/domain/bonus"
	"github.com/nosata/ligalive/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func liveFixture(pairs ...model.StatPair) model.Fixture {
	return model.Fixture{
		ID:      1,
		Started: true,
		Stats:   []model.StatLine{{Identifier: "bps", Home: pairs}},
	}
}

func TestProvisional(t *testing.T) {
	Convey("Given live fixtures with BPS leaderboards", t, func() {
		Convey("When there is a clear 1-2-3 order", func() {
			fx := liveFixture(
				model.StatPair{PlayerID: 1, Value: 38},
				model.StatPair{PlayerID: 2, Value: 30},
				model.StatPair{PlayerID: 3, Value: 22},
				model.StatPair{PlayerID: 4, Value: 10},
			)

			awards := bonus.Provisional([]model.Fixture{fx})

			Convey("Then 3, 2, 1 go to the top three", func() {
				So(awards, ShouldResemble, map[int]int{1: 3, 2: 2, 3: 1})
			})
		})

		Convey("When three players tie for first", func() {
			fx := liveFixture(
				model.StatPair{PlayerID: 1, Value: 30},
				model.StatPair{PlayerID: 2, Value: 30},
				model.StatPair{PlayerID: 3, Value: 30},
				model.StatPair{PlayerID: 4, Value: 25},
			)

			awards := bonus.Provisional([]model.Fixture{fx})

			Convey("Then all three get 3 and nobody else scores bonus", func() {
				So(awards, ShouldResemble, map[int]int{1: 3, 2: 3, 3: 3})
			})
		})

		Convey("When two players tie for first", func() {
			fx := liveFixture(
				model.StatPair{PlayerID: 1, Value: 28},
				model.StatPair{PlayerID: 2, Value: 28},
				model.StatPair{PlayerID: 3, Value: 20},
				model.StatPair{PlayerID: 4, Value: 18},
			)

			awards := bonus.Provisional([]model.Fixture{fx})

			Convey("Then both get 3 and the next best gets 1", func() {
				So(awards, ShouldResemble, map[int]int{1: 3, 2: 3, 3: 1})
			})

			Convey("And the fixture hands out exactly 3+3+1", func() {
				total := 0
				for _, v := range awards {
					total += v
				}
				So(total, ShouldEqual, 7)
			})
		})

		Convey("When two players tie for first with no one behind them", func() {
			fx := liveFixture(
				model.StatPair{PlayerID: 1, Value: 28},
				model.StatPair{PlayerID: 2, Value: 28},
			)

			awards := bonus.Provisional([]model.Fixture{fx})

			Convey("Then only the two 3s are granted", func() {
				So(awards, ShouldResemble, map[int]int{1: 3, 2: 3})
			})
		})

		Convey("When two players tie for second", func() {
			fx := liveFixture(
				model.StatPair{PlayerID: 1, Value: 38},
				model.StatPair{PlayerID: 2, Value: 25},
				model.StatPair{PlayerID: 3, Value: 25},
				model.StatPair{PlayerID: 4, Value: 20},
			)

			awards := bonus.Provisional([]model.Fixture{fx})

			Convey("Then both tied players get 2 and third place is never awarded", func() {
				So(awards, ShouldResemble, map[int]int{1: 3, 2: 2, 3: 2})
			})
		})

		Convey("When players tie for third", func() {
			fx := liveFixture(
				model.StatPair{PlayerID: 1, Value: 38},
				model.StatPair{PlayerID: 2, Value: 30},
				model.StatPair{PlayerID: 3, Value: 25},
				model.StatPair{PlayerID: 4, Value: 25},
			)

			awards := bonus.Provisional([]model.Fixture{fx})

			Convey("Then every tied player gets 1", func() {
				So(awards, ShouldResemble, map[int]int{1: 3, 2: 2, 3: 1, 4: 1})
			})
		})

		Convey("When scores are zero or negative", func() {
			fx := liveFixture(
				model.StatPair{PlayerID: 1, Value: 12},
				model.StatPair{PlayerID: 2, Value: 0},
				model.StatPair{PlayerID: 3, Value: -4},
			)

			awards := bonus.Provisional([]model.Fixture{fx})

			Convey("Then they never earn bonus", func() {
				So(awards, ShouldResemble, map[int]int{1: 3})
			})
		})

		Convey("When the leaderboard spans both sides", func() {
			fx := model.Fixture{
				ID:      2,
				Started: true,
				Stats: []model.StatLine{{
					Identifier: "bps",
					Home:       []model.StatPair{{PlayerID: 9, Value: 20}},
					Away:       []model.StatPair{{PlayerID: 5, Value: 31}, {PlayerID: 6, Value: 24}},
				}},
			}

			awards := bonus.Provisional([]model.Fixture{fx})

			Convey("Then home and away players rank together", func() {
				So(awards, ShouldResemble, map[int]int{5: 3, 6: 2, 9: 1})
			})
		})

		Convey("When two players tie for first and the tie-break matters", func() {
			// Away-listed player has the lower id; the third-place point must
			// go to a deterministic member of the next group.
			fx := model.Fixture{
				ID:      3,
				Started: true,
				Stats: []model.StatLine{{
					Identifier: "bps",
					Home:       []model.StatPair{{PlayerID: 8, Value: 28}, {PlayerID: 7, Value: 20}},
					Away:       []model.StatPair{{PlayerID: 2, Value: 28}, {PlayerID: 4, Value: 20}},
				}},
			}

			first := bonus.Provisional([]model.Fixture{fx})
			second := bonus.Provisional([]model.Fixture{fx})

			Convey("Then the lower player id wins the remaining award, reproducibly", func() {
				So(first, ShouldResemble, map[int]int{2: 3, 8: 3, 4: 1})
				So(second, ShouldResemble, first)
			})
		})

		Convey("When fixtures are settled or not started", func() {
			settled := model.Fixture{
				ID: 4, Started: true, Finished: true,
				Stats: []model.StatLine{{Identifier: "bps", Home: []model.StatPair{{PlayerID: 1, Value: 40}}}},
			}
			provisionallyDone := model.Fixture{
				ID: 5, Started: true, FinishedProvisional: true, MinutesElapsed: 90,
				Stats: []model.StatLine{{Identifier: "bps", Home: []model.StatPair{{PlayerID: 2, Value: 40}}}},
			}
			notStarted := model.Fixture{
				ID:    6,
				Stats: []model.StatLine{{Identifier: "bps", Home: []model.StatPair{{PlayerID: 3, Value: 40}}}},
			}

			awards := bonus.Provisional([]model.Fixture{settled, provisionallyDone, notStarted})

			Convey("Then no provisional bonus is computed for them", func() {
				So(awards, ShouldBeEmpty)
			})
		})

		Convey("When a provisionally finished fixture is still short of 90 minutes", func() {
			fx := model.Fixture{
				ID: 7, Started: true, FinishedProvisional: true, MinutesElapsed: 85,
				Stats: []model.StatLine{{Identifier: "bps", Home: []model.StatPair{{PlayerID: 1, Value: 40}}}},
			}

			awards := bonus.Provisional([]model.Fixture{fx})

			Convey("Then it still counts as live", func() {
				So(awards, ShouldResemble, map[int]int{1: 3})
			})
		})
	})
}
