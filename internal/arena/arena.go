// Package arena owns all matchmaking and match-lifecycle state: the waiting
// queue, the active rooms and the settlement step. A single goroutine owns
// the state and consumes typed messages from an inbox channel, so queue
// mutations, pairing sweeps and settlements never race and need no locks.
package arena

import (
	"context"
	"time"

	"github.com/puravnayak/TypeClash/pkg/types"
	"go.uber.org/zap"
)

// Player is a connection-scoped identity resolved by the external directory.
type Player struct {
	ID     string
	Name   string
	Rating int
}

// StatsDelta is the per-player cumulative-stats update handed to the store
// at settlement.
type StatsDelta struct {
	Result   string // "win" | "loss" | "draw"
	WPM      float64
	Accuracy float64
}

// HistoryEntry is one bounded match-history record.
type HistoryEntry struct {
	Opponent     string
	UserWPM      float64
	OpponentWPM  float64
	RatingChange int
	Result       string
}

// Store is the persistence collaborator consulted at settlement. Ratings
// are re-read here, not taken from the bound identity, so the arena never
// settles against a stale snapshot.
type Store interface {
	LoadRating(ctx context.Context, playerID string) (int, error)
	SaveMatchOutcome(ctx context.Context, playerID string, ratingBefore, ratingAfter int, delta StatsDelta, entry HistoryEntry) error
}

// TextGenerator produces the race text for a new room.
type TextGenerator interface {
	Generate(wordCount int) string
}

// Monitor receives suspicious-behavior reports. It is outside the match
// lifecycle; the arena only forwards.
type Monitor interface {
	Flag(roomID, playerID, reason string)
}

type Msg interface{ isArenaMsg() }

// Attach registers a connection and the outbox it wants events on.
type Attach struct {
	ConnID string
	Outbox chan types.ServerMessage
}

// Detach is sent by the transport when the connection goes away. It removes
// the connection from the queue; an active room is left to leak (see the
// package notes on abandoned matches).
type Detach struct{ ConnID string }

// Bind attaches an authenticated identity to a connection. The directory
// lookup happens in the transport goroutine, never on the arena loop.
type Bind struct {
	ConnID string
	Player Player
}

type Ready struct{ ConnID string }

type CancelReady struct{ ConnID string }

type Progress struct {
	ConnID  string
	RoomID  string
	Percent float64
}

type Finished struct {
	ConnID   string
	RoomID   string
	WPM      float64
	Accuracy float64
	Percent  float64
}

type Suspicious struct {
	ConnID string
	RoomID string
	Reason string
}

// Sweep triggers one pairing pass. Sent by the internal ticker; tests send
// it directly.
type Sweep struct{}

// GetView reflects internal state without data races. Test-only.
type GetView struct{ Reply chan View }

type Shutdown struct{}

func (Attach) isArenaMsg()      {}
func (Detach) isArenaMsg()      {}
func (Bind) isArenaMsg()        {}
func (Ready) isArenaMsg()       {}
func (CancelReady) isArenaMsg() {}
func (Progress) isArenaMsg()    {}
func (Finished) isArenaMsg()    {}
func (Suspicious) isArenaMsg()  {}
func (Sweep) isArenaMsg()       {}
func (GetView) isArenaMsg()     {}
func (Shutdown) isArenaMsg()    {}

type View struct {
	NumConns int
	Queue    []string // conn ids in queue order
	RoomIDs  []string
	NumBound int
}

// Config holds the pairing-policy knobs.
type Config struct {
	SweepInterval time.Duration // default 2s
	WaitThreshold time.Duration // default 10s
}

type conn struct {
	id     string
	outbox chan types.ServerMessage
	player *Player // nil until Bind
}

type Arena struct {
	inbox   chan Msg
	conns   map[string]*conn
	queue   []queueEntry
	rooms   map[string]*room
	store   Store
	textgen TextGenerator
	monitor Monitor
	log     *zap.Logger
	cfg     Config
	now     func() time.Time
	ctx     context.Context
	cancel  context.CancelFunc
}

// New starts the arena loop and its sweep ticker. monitor may be nil, in
// which case reports are only logged.
func New(parent context.Context, store Store, textgen TextGenerator, monitor Monitor, log *zap.Logger, cfg Config) *Arena {
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = 2 * time.Second
	}
	if cfg.WaitThreshold <= 0 {
		cfg.WaitThreshold = 10 * time.Second
	}
	a := newArena(parent, store, textgen, monitor, log, cfg)
	go a.loop()
	go a.tick()
	return a
}

// newArena builds the state without starting goroutines; unit tests drive
// the handlers synchronously on top of it.
func newArena(parent context.Context, store Store, textgen TextGenerator, monitor Monitor, log *zap.Logger, cfg Config) *Arena {
	ctx, cancel := context.WithCancel(parent)
	return &Arena{
		inbox:   make(chan Msg, 64),
		conns:   make(map[string]*conn),
		rooms:   make(map[string]*room),
		store:   store,
		textgen: textgen,
		monitor: monitor,
		log:     log,
		cfg:     cfg,
		now:     time.Now,
		ctx:     ctx,
		cancel:  cancel,
	}
}

func (a *Arena) Inbox() chan<- Msg { return a.inbox }

func (a *Arena) tick() {
	t := time.NewTicker(a.cfg.SweepInterval)
	defer t.Stop()
	for {
		select {
		case <-a.ctx.Done():
			return
		case <-t.C:
			select {
			case a.inbox <- Sweep{}:
			case <-a.ctx.Done():
				return
			}
		}
	}
}

func (a *Arena) loop() {
	for {
		select {
		case <-a.ctx.Done():
			a.shutdown()
			return

		case m := <-a.inbox:
			switch msg := m.(type) {
			case Attach:
				a.conns[msg.ConnID] = &conn{id: msg.ConnID, outbox: msg.Outbox}

			case Detach:
				if c := a.conns[msg.ConnID]; c != nil {
					a.removeFromQueue(msg.ConnID)
					delete(a.conns, msg.ConnID)
					close(c.outbox)
				}

			case Bind:
				if c := a.conns[msg.ConnID]; c != nil {
					p := msg.Player
					c.player = &p
				}

			case Ready:
				if c := a.conns[msg.ConnID]; c != nil {
					a.enqueue(c)
				}

			case CancelReady:
				if a.removeFromQueue(msg.ConnID) {
					if c := a.conns[msg.ConnID]; c != nil {
						a.send(c, types.ServerMessage{Type: types.EvtCancelled, Message: "Cancelled matchmaking."})
					}
				}

			case Progress:
				a.handleProgress(msg)

			case Finished:
				a.handleFinished(msg)

			case Suspicious:
				a.handleSuspicious(msg)

			case Sweep:
				a.sweep()

			case GetView:
				msg.Reply <- a.view()

			case Shutdown:
				a.shutdown()
				return
			}
		}
	}
}

func (a *Arena) view() View {
	v := View{
		NumConns: len(a.conns),
		RoomIDs:  make([]string, 0, len(a.rooms)),
	}
	for _, e := range a.queue {
		v.Queue = append(v.Queue, e.c.id)
	}
	for id := range a.rooms {
		v.RoomIDs = append(v.RoomIDs, id)
	}
	for _, c := range a.conns {
		if c.player != nil {
			v.NumBound++
		}
	}
	return v
}

func (a *Arena) handleSuspicious(m Suspicious) {
	c := a.conns[m.ConnID]
	if c == nil || c.player == nil {
		return
	}
	if _, ok := a.rooms[m.RoomID]; !ok {
		return
	}
	a.log.Warn("suspicious behavior reported",
		zap.String("room", m.RoomID),
		zap.String("player", c.player.ID),
		zap.String("reason", m.Reason))
	if a.monitor != nil {
		a.monitor.Flag(m.RoomID, c.player.ID, m.Reason)
	}
}

func (a *Arena) shutdown() {
	for id, c := range a.conns {
		close(c.outbox)
		delete(a.conns, id)
	}
	a.queue = nil
	clear(a.rooms)
	a.cancel()
}

// send delivers to a live connection. A slow client is dropped rather than
// allowed to stall the loop, same as a disconnect.
func (a *Arena) send(c *conn, msg types.ServerMessage) {
	if _, ok := a.conns[c.id]; !ok {
		return
	}
	select {
	case c.outbox <- msg:
	default:
		a.log.Warn("dropping slow client", zap.String("conn", c.id))
		a.removeFromQueue(c.id)
		delete(a.conns, c.id)
		close(c.outbox)
	}
}
