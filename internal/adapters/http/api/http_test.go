package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/nosata/ligalive/internal/adapters/http/api"
	"github.com/nosata/ligalive/internal/domain/gameweek"
	"github.com/nosata/ligalive/internal/domain/types"
)

// stubDeps implements api.Dependencies with canned data.
type stubDeps struct {
	state      gameweek.State
	board      types.Scoreboard
	league     types.League
	entries    map[int]types.EntryDetail
	notReady   bool
	serviceErr error
}

func (s *stubDeps) Status(ctx context.Context) (gameweek.State, error) {
	if s.notReady {
		return gameweek.State{}, api.ErrNotReady
	}
	return s.state, s.serviceErr
}

func (s *stubDeps) Scoreboard(ctx context.Context) (types.Scoreboard, error) {
	if s.notReady {
		return types.Scoreboard{}, api.ErrNotReady
	}
	return s.board, s.serviceErr
}

func (s *stubDeps) League(ctx context.Context) (types.League, error) {
	if s.notReady {
		return types.League{}, api.ErrNotReady
	}
	return s.league, s.serviceErr
}

func (s *stubDeps) Entry(ctx context.Context, entryID int) (types.EntryDetail, error) {
	if s.notReady {
		return types.EntryDetail{}, api.ErrNotReady
	}
	d, ok := s.entries[entryID]
	if !ok {
		return types.EntryDetail{}, api.ErrUnknownEntry
	}
	return d, nil
}

type stubStats struct{}

func (stubStats) GetStats() map[string]interface{} {
	return map[string]interface{}{"refreshes": 3}
}

func newTestRouter(deps *stubDeps) *mux.Router {
	router := mux.NewRouter()
	api.NewServer(deps, stubStats{}).Register(router)
	return router
}

func TestStatusEndpoint(t *testing.T) {
	Convey("Given a server with a resolved gameweek", t, func() {
		deps := &stubDeps{state: gameweek.State{EventID: 12, Status: gameweek.StatusLive, DisplayEventID: 12}}
		router := newTestRouter(deps)

		Convey("When GET /api/v1/status", func() {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/status", nil))

			Convey("Then the state is returned as JSON", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(rec.Header().Get("Content-Type"), ShouldContainSubstring, "application/json")

				var got gameweek.State
				So(json.Unmarshal(rec.Body.Bytes(), &got), ShouldBeNil)
				So(got.EventID, ShouldEqual, 12)
				So(got.Status, ShouldEqual, gameweek.StatusLive)
			})
		})

		Convey("When no refresh has completed yet", func() {
			deps.notReady = true
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/status", nil))

			Convey("Then 503 is returned", func() {
				So(rec.Code, ShouldEqual, http.StatusServiceUnavailable)
			})
		})
	})
}

func TestScoreboardEndpoint(t *testing.T) {
	Convey("Given a server with a published scoreboard", t, func() {
		deps := &stubDeps{board: types.Scoreboard{
			Event:        12,
			DisplayEvent: 12,
			Status:       gameweek.StatusLive,
			RosterA:      types.RosterView{Name: "North", SeasonTotal: 640, Wins: 7},
			RosterB:      types.RosterView{Name: "South", SeasonTotal: 612, Wins: 4},
			GeneratedAt:  time.Date(2026, 1, 10, 15, 0, 0, 0, time.UTC),
		}}
		router := newTestRouter(deps)

		Convey("When GET /api/v1/scoreboard", func() {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/scoreboard", nil))

			Convey("Then both rosters are returned", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)

				var got types.Scoreboard
				So(json.Unmarshal(rec.Body.Bytes(), &got), ShouldBeNil)
				So(got.RosterA.Name, ShouldEqual, "North")
				So(got.RosterB.Wins, ShouldEqual, 4)
			})
		})

		Convey("When using a non-GET method", func() {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/scoreboard", nil))

			Convey("Then the route does not match", func() {
				So(rec.Code, ShouldEqual, http.StatusMethodNotAllowed)
			})
		})
	})
}

func TestLeagueEndpoint(t *testing.T) {
	Convey("Given a server with an enriched league table", t, func() {
		deps := &stubDeps{league: types.League{
			Name: "Office League",
			Entries: []types.LeagueEntry{
				{EntryID: 42, EntryName: "Team A", ManagerName: "Alex", SeasonTotal: 310, LivePoints: 55},
			},
		}}
		router := newTestRouter(deps)

		Convey("When GET /api/v1/league", func() {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/league", nil))

			Convey("Then the table is returned", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)

				var got types.League
				So(json.Unmarshal(rec.Body.Bytes(), &got), ShouldBeNil)
				So(got.Entries, ShouldHaveLength, 1)
				So(got.Entries[0].LivePoints, ShouldEqual, 55)
			})
		})
	})
}

func TestEntryEndpoint(t *testing.T) {
	Convey("Given a server with one known entry", t, func() {
		deps := &stubDeps{entries: map[int]types.EntryDetail{
			42: {EntryID: 42, Name: "Team A", Gameweek: 12, TotalPoints: 61},
		}}
		router := newTestRouter(deps)

		Convey("When GET /api/v1/entries/42", func() {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/entries/42", nil))

			Convey("Then the detail view is returned", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)

				var got types.EntryDetail
				So(json.Unmarshal(rec.Body.Bytes(), &got), ShouldBeNil)
				So(got.TotalPoints, ShouldEqual, 61)
			})
		})

		Convey("When the entry is unknown", func() {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/entries/999", nil))

			Convey("Then 404 is returned", func() {
				So(rec.Code, ShouldEqual, http.StatusNotFound)
			})
		})

		Convey("When the id is not numeric", func() {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/entries/abc", nil))

			Convey("Then the route does not match", func() {
				So(rec.Code, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestStatsEndpoint(t *testing.T) {
	Convey("Given a server with a stats provider", t, func() {
		router := newTestRouter(&stubDeps{})

		Convey("When GET /stats", func() {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stats", nil))

			Convey("Then provider stats are returned", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)

				var got map[string]any
				So(json.Unmarshal(rec.Body.Bytes(), &got), ShouldBeNil)
				So(got["refreshes"], ShouldEqual, float64(3))
			})
		})
	})
}

func TestHealthEndpoint(t *testing.T) {
	Convey("Given a server", t, func() {
		router := newTestRouter(&stubDeps{})

		Convey("When GET /healthz", func() {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

			Convey("Then the metrics registry is served", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
			})
		})
	})
}
