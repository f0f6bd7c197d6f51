package lineup_test

import (
	"testing"

	"github.com/nosata/ligalive/internal/domain/lineup"
	"github.com/nosata/ligalive/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

// pickSquad builds a 15-pick selection where player id n sits in slot n, with
// the given position per player.
func pickSquad(positions map[int]model.Position) model.EntrySelection {
	sel := model.EntrySelection{EntryID: 1, Gameweek: 5}
	for slot := 1; slot <= model.SquadSlots; slot++ {
		mult := 1
		if slot > model.StartingSlots {
			mult = 0
		}
		sel.Picks = append(sel.Picks, model.Pick{PlayerID: slot, Slot: slot, Multiplier: mult})
	}
	return sel
}

// fourAtTheBack: 1 GK / 4 DEF / 3 MID / 3 FWD, bench GK-DEF-MID-FWD.
func fourAtTheBack() map[int]model.Position {
	return map[int]model.Position{
		1: model.Goalkeeper,
		2: model.Defender, 3: model.Defender, 4: model.Defender, 5: model.Defender,
		6: model.Midfielder, 7: model.Midfielder, 8: model.Midfielder,
		9: model.Forward, 10: model.Forward, 11: model.Forward,
		12: model.Goalkeeper, 13: model.Defender, 14: model.Midfielder, 15: model.Forward,
	}
}

// threeAtTheBack: 1 GK / 3 DEF / 4 MID / 3 FWD, with the only bench defender
// at low priority. Losing a starting defender leaves no slack.
func threeAtTheBack() map[int]model.Position {
	return map[int]model.Position{
		1: model.Goalkeeper,
		2: model.Defender, 3: model.Defender, 4: model.Defender,
		5: model.Midfielder, 6: model.Midfielder, 7: model.Midfielder, 8: model.Midfielder,
		9: model.Forward, 10: model.Forward, 11: model.Forward,
		12: model.Goalkeeper, 13: model.Midfielder, 14: model.Defender, 15: model.Forward,
	}
}

// played marks every squad player as having minutes in a settled fixture,
// except the given ids which recorded zero minutes.
func played(zeroMinutes ...int) (map[int]int, map[int]bool) {
	minutes := make(map[int]int)
	settled := make(map[int]bool)
	for id := 1; id <= model.SquadSlots; id++ {
		minutes[id] = 90
		settled[id] = true
	}
	for _, id := range zeroMinutes {
		minutes[id] = 0
	}
	return minutes, settled
}

func formationOf(xi []model.Pick, positions map[int]model.Position) map[model.Position]int {
	counts := make(map[model.Position]int)
	for _, p := range xi {
		counts[positions[p.PlayerID]]++
	}
	return counts
}

func assertFormationValid(xi []model.Pick, positions map[int]model.Position) {
	counts := formationOf(xi, positions)
	So(counts[model.Goalkeeper], ShouldBeGreaterThanOrEqualTo, 1)
	So(counts[model.Defender], ShouldBeGreaterThanOrEqualTo, 3)
	So(counts[model.Midfielder], ShouldBeGreaterThanOrEqualTo, 2)
	So(counts[model.Forward], ShouldBeGreaterThanOrEqualTo, 1)
}

func TestApply(t *testing.T) {
	Convey("Given a squad with four at the back", t, func() {
		positions := fourAtTheBack()
		sel := pickSquad(positions)

		Convey("When every starter played", func() {
			minutes, settled := played()

			res := lineup.Apply(sel, minutes, settled, positions)

			Convey("Then no substitution is made", func() {
				So(res.Substitutions, ShouldBeEmpty)
				So(len(res.StartingXI), ShouldEqual, 11)
				So(res.StartingXI[0].PlayerID, ShouldEqual, 1)
			})
		})

		Convey("When a midfielder sat out a settled fixture", func() {
			minutes, settled := played(6)

			res := lineup.Apply(sel, minutes, settled, positions)

			Convey("Then the highest-priority eligible bench player comes in", func() {
				// Formation minimums are the only constraint, so the slot-12
				// keeper qualifies while three midfielders remain covered.
				So(res.Substitutions, ShouldResemble, []model.Substitution{{Out: 6, In: 12}})
			})

			Convey("And the swap exchanges slots", func() {
				So(res.StartingXI[5].PlayerID, ShouldEqual, 12)
				So(res.StartingXI[5].Slot, ShouldEqual, 6)
				So(res.Bench[0].PlayerID, ShouldEqual, 6)
				So(res.Bench[0].Slot, ShouldEqual, 12)
			})

			Convey("And the formation still satisfies the minimums", func() {
				assertFormationValid(res.StartingXI, positions)
			})
		})

		Convey("When the goalkeeper sat out", func() {
			minutes, settled := played(1)

			res := lineup.Apply(sel, minutes, settled, positions)

			Convey("Then the bench goalkeeper comes in", func() {
				So(res.Substitutions, ShouldResemble, []model.Substitution{{Out: 1, In: 12}})
				assertFormationValid(res.StartingXI, positions)
			})
		})

		Convey("When the starter's fixture is not settled", func() {
			minutes, settled := played(6)
			settled[6] = false

			res := lineup.Apply(sel, minutes, settled, positions)

			Convey("Then they are not substituted yet", func() {
				So(res.Substitutions, ShouldBeEmpty)
			})
		})

		Convey("When multiple starters sat out", func() {
			minutes, settled := played(6, 9)

			res := lineup.Apply(sel, minutes, settled, positions)

			Convey("Then bench priority applies and swapped-out starters never return", func() {
				// Player 6 takes bench slot 12 after the first swap but must
				// not be picked as the substitute for player 9.
				So(res.Substitutions, ShouldResemble, []model.Substitution{
					{Out: 6, In: 12},
					{Out: 9, In: 13},
				})
				assertFormationValid(res.StartingXI, positions)
			})
		})
	})

	Convey("Given a squad with only three defenders starting", t, func() {
		positions := threeAtTheBack()
		sel := pickSquad(positions)

		Convey("When a starting defender sat out", func() {
			minutes, settled := played(2)

			res := lineup.Apply(sel, minutes, settled, positions)

			Convey("Then higher-priority bench players are skipped for the formation", func() {
				// The keeper and midfielder at slots 12-13 would drop the XI
				// below three defenders; the slot-14 defender qualifies.
				So(res.Substitutions, ShouldResemble, []model.Substitution{{Out: 2, In: 14}})
				assertFormationValid(res.StartingXI, positions)
			})
		})

		Convey("When a defender sat out and no bench defender exists", func() {
			noDefCover := threeAtTheBack()
			noDefCover[14] = model.Midfielder
			sel := pickSquad(noDefCover)
			minutes, settled := played(2)

			res := lineup.Apply(sel, minutes, settled, noDefCover)

			Convey("Then the starter stays even at zero points", func() {
				So(res.Substitutions, ShouldBeEmpty)
				So(res.StartingXI[1].PlayerID, ShouldEqual, 2)
			})
		})
	})
}

func TestResultSelection(t *testing.T) {
	Convey("Given an applied substitution", t, func() {
		positions := fourAtTheBack()
		sel := pickSquad(positions)
		minutes, settled := played(6)

		res := lineup.Apply(sel, minutes, settled, positions)
		corrected := res.Selection(sel)

		Convey("Then the incoming substitute scores and the outgoing starter does not", func() {
			var in, out model.Pick
			for _, p := range corrected.Picks {
				switch p.PlayerID {
				case 12:
					in = p
				case 6:
					out = p
				}
			}
			So(in.Multiplier, ShouldEqual, 1)
			So(in.Slot, ShouldEqual, 6)
			So(out.Multiplier, ShouldEqual, 0)
			So(out.Slot, ShouldEqual, 12)
		})

		Convey("And the corrected selection keeps its squad size and order", func() {
			So(len(corrected.Picks), ShouldEqual, model.SquadSlots)
			for i, p := range corrected.Picks {
				So(p.Slot, ShouldEqual, i+1)
			}
		})
	})
}
