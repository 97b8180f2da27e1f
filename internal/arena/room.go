package arena

import (
	"github.com/google/uuid"
	"github.com/puravnayak/TypeClash/internal/rating"
	"github.com/puravnayak/TypeClash/pkg/types"
	"go.uber.org/zap"
)

// room is one active two-player race. It lives in a.rooms from pairing
// until settlement. A room whose players never both finish is never torn
// down; there is deliberately no timeout (see DESIGN.md).
type room struct {
	id       string
	a, b     *conn
	text     string
	progress map[string]float64          // conn id -> last reported percent
	reports  map[string]completionReport // conn id -> final stats
}

type completionReport struct {
	wpm      float64
	accuracy float64
	progress float64
}

// score is the composite used only to pick a winner; it is never persisted.
func score(r completionReport) float64 {
	return r.progress + 0.5*r.wpm + 0.1*r.accuracy
}

// wordCountFor maps the stronger player's rating to race length.
func wordCountFor(maxRating int) int {
	switch {
	case maxRating < 1200:
		return 10
	case maxRating < 1400:
		return 15
	case maxRating < 1600:
		return 20
	case maxRating < 1900:
		return 25
	case maxRating < 2100:
		return 30
	case maxRating < 2300:
		return 35
	case maxRating < 2400:
		return 40
	case maxRating < 2600:
		return 45
	default:
		return 50
	}
}

func clampPercent(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

func (r *room) member(connID string) bool {
	return r.a.id == connID || r.b.id == connID
}

func (r *room) other(connID string) *conn {
	if r.a.id == connID {
		return r.b
	}
	return r.a
}

// openRoom creates a room for two just-dequeued players and announces it.
func (a *Arena) openRoom(c1, c2 *conn) {
	maxRating := c1.player.Rating
	if c2.player.Rating > maxRating {
		maxRating = c2.player.Rating
	}
	r := &room{
		id:       "room-" + uuid.NewString(),
		a:        c1,
		b:        c2,
		text:     a.textgen.Generate(wordCountFor(maxRating)),
		progress: make(map[string]float64),
		reports:  make(map[string]completionReport),
	}
	a.rooms[r.id] = r

	msg := types.ServerMessage{
		Type: types.EvtMatchFound,
		Room: r.id,
		Text: r.text,
		Players: []types.PlayerInfo{
			{ID: c1.player.ID, Name: c1.player.Name, Rating: c1.player.Rating},
			{ID: c2.player.ID, Name: c2.player.Name, Rating: c2.player.Rating},
		},
	}
	a.send(c1, msg)
	a.send(c2, msg)
	a.log.Info("match found",
		zap.String("room", r.id),
		zap.String("player_a", c1.player.ID),
		zap.String("player_b", c2.player.ID),
		zap.Int("words", wordCountFor(maxRating)))
}

// handleProgress overwrites the reporter's last-known progress and relays
// it to the other player only. Last write wins; there is no monotonicity
// check on out-of-order reports.
func (a *Arena) handleProgress(m Progress) {
	r := a.rooms[m.RoomID]
	if r == nil || !r.member(m.ConnID) {
		return
	}
	p := clampPercent(m.Percent)
	r.progress[m.ConnID] = p
	a.send(r.other(m.ConnID), types.ServerMessage{Type: types.EvtOpponentProgress, Progress: p})
}

// handleFinished records a completion report. The second report for a room
// triggers settlement exactly once, after which the room is gone and any
// further finished events for its id fall through the nil check below.
func (a *Arena) handleFinished(m Finished) {
	r := a.rooms[m.RoomID]
	if r == nil {
		a.log.Debug("finished for unknown room", zap.String("room", m.RoomID), zap.String("conn", m.ConnID))
		return
	}
	if !r.member(m.ConnID) {
		return
	}
	if _, dup := r.reports[m.ConnID]; dup {
		return
	}
	r.reports[m.ConnID] = completionReport{
		wpm:      m.WPM,
		accuracy: m.Accuracy,
		progress: clampPercent(m.Percent),
	}
	if len(r.reports) < 2 {
		return
	}
	if a.settle(r) {
		delete(a.rooms, r.id)
	}
}

// settle turns the two completion reports into rating updates, persistence
// calls and a game-result broadcast. Runs on the arena goroutine: a slow
// store write delays later events rather than racing them. Returns false
// when an integrity error aborts settlement before any mutation.
func (a *Arena) settle(r *room) bool {
	repA := r.reports[r.a.id]
	repB := r.reports[r.b.id]

	scoreA, scoreB := score(repA), score(repB)
	var winner *conn
	switch {
	case scoreA > scoreB:
		winner = r.a
	case scoreB > scoreA:
		winner = r.b
	}

	// re-read authoritative ratings; a miss means auth and queue state have
	// drifted apart, and nothing may be mutated or broadcast
	oldA, errA := a.store.LoadRating(a.ctx, r.a.player.ID)
	oldB, errB := a.store.LoadRating(a.ctx, r.b.player.ID)
	if errA != nil || errB != nil {
		a.log.Error("settlement aborted, player record missing",
			zap.String("room", r.id),
			zap.NamedError("player_a", errA),
			zap.NamedError("player_b", errB))
		return false
	}

	outcomeA := rating.Draw
	switch winner {
	case r.a:
		outcomeA = rating.Win
	case r.b:
		outcomeA = rating.Loss
	}
	// both updates use the opponent's pre-match rating
	newA := rating.Calculate(oldA, oldB, outcomeA, rating.DefaultK)
	newB := rating.Calculate(oldB, oldA, 1-outcomeA, rating.DefaultK)

	resultA, resultB := resultPair(winner, r)

	// durability is best-effort: a failed write is logged, never retried,
	// and never blocks the result from reaching the players
	if err := a.store.SaveMatchOutcome(a.ctx, r.a.player.ID, oldA, newA,
		StatsDelta{Result: resultA, WPM: repA.wpm, Accuracy: repA.accuracy},
		HistoryEntry{Opponent: r.b.player.Name, UserWPM: repA.wpm, OpponentWPM: repB.wpm, RatingChange: newA - oldA, Result: resultA},
	); err != nil {
		a.log.Error("persist outcome failed", zap.String("room", r.id), zap.String("player", r.a.player.ID), zap.Error(err))
	}
	if err := a.store.SaveMatchOutcome(a.ctx, r.b.player.ID, oldB, newB,
		StatsDelta{Result: resultB, WPM: repB.wpm, Accuracy: repB.accuracy},
		HistoryEntry{Opponent: r.a.player.Name, UserWPM: repB.wpm, OpponentWPM: repA.wpm, RatingChange: newB - oldB, Result: resultB},
	); err != nil {
		a.log.Error("persist outcome failed", zap.String("room", r.id), zap.String("player", r.b.player.ID), zap.Error(err))
	}

	// keep the bound identities current so a rematch queues at the new tier
	r.a.player.Rating = newA
	r.b.player.Rating = newB

	var winnerID *string
	if winner != nil {
		id := winner.player.ID
		winnerID = &id
	}
	msg := types.ServerMessage{
		Type: types.EvtGameResult,
		Room: r.id,
		Results: map[string]types.PlayerResult{
			r.a.player.ID: {WPM: repA.wpm, Accuracy: repA.accuracy, Progress: repA.progress},
			r.b.player.ID: {WPM: repB.wpm, Accuracy: repB.accuracy, Progress: repB.progress},
		},
		Winner: winnerID,
		Players: []types.PlayerInfo{
			{ID: r.a.player.ID, Name: r.a.player.Name, Rating: newA},
			{ID: r.b.player.ID, Name: r.b.player.Name, Rating: newB},
		},
		RatingChanges: map[string]types.RatingChange{
			r.a.player.ID: {Before: oldA, After: newA},
			r.b.player.ID: {Before: oldB, After: newB},
		},
	}
	a.send(r.a, msg)
	a.send(r.b, msg)

	a.log.Info("match settled",
		zap.String("room", r.id),
		zap.String("player_a", r.a.player.ID),
		zap.String("player_b", r.b.player.ID),
		zap.Stringp("winner", winnerID),
		zap.Int("delta_a", newA-oldA),
		zap.Int("delta_b", newB-oldB))
	return true
}

func resultPair(winner *conn, r *room) (string, string) {
	switch winner {
	case r.a:
		return "win", "loss"
	case r.b:
		return "loss", "win"
	default:
		return "draw", "draw"
	}
}
