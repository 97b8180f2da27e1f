package arena

import (
	"time"

	"github.com/puravnayak/TypeClash/internal/tier"
	"github.com/puravnayak/TypeClash/pkg/types"
	"go.uber.org/zap"
)

type queueEntry struct {
	c        *conn
	joinedAt time.Time
	tier     int
}

// enqueue appends a waiting player. Unauthenticated connections and
// connections already in the queue are ignored without feedback; the client
// observes nothing happening.
func (a *Arena) enqueue(c *conn) {
	if c.player == nil {
		return
	}
	for _, e := range a.queue {
		if e.c.id == c.id {
			return
		}
	}
	idx, err := tier.Index(c.player.Rating)
	if err != nil {
		// ratings are clamped upstream; a negative one is an integrity bug
		a.log.Error("tier lookup failed",
			zap.String("player", c.player.ID),
			zap.Int("rating", c.player.Rating),
			zap.Error(err))
		return
	}
	a.queue = append(a.queue, queueEntry{c: c, joinedAt: a.now(), tier: idx})
	a.send(c, types.ServerMessage{Type: types.EvtWaiting, Message: "Searching for opponent..."})
	a.log.Info("player queued",
		zap.String("player", c.player.ID),
		zap.String("tier", tier.Bands[idx].Name),
		zap.Int("queue_size", len(a.queue)))
}

func (a *Arena) removeFromQueue(connID string) bool {
	for i, e := range a.queue {
		if e.c.id == connID {
			a.queue = append(a.queue[:i], a.queue[i+1:]...)
			return true
		}
	}
	return false
}

// sweep scans unordered pairs in queue order and commits the first eligible
// one: same or adjacent tier, or either side past the wait threshold. At
// most one pairing per sweep. This is deliberately not a best-pair matcher;
// a late entry can overtake an earlier one if it pairs first in scan order,
// which is the documented policy, not a bug to fix.
func (a *Arena) sweep() {
	now := a.now()
	for i := 0; i < len(a.queue); i++ {
		for j := i + 1; j < len(a.queue); j++ {
			p1, p2 := a.queue[i], a.queue[j]
			waited := now.Sub(p1.joinedAt) > a.cfg.WaitThreshold ||
				now.Sub(p2.joinedAt) > a.cfg.WaitThreshold
			if tier.Distance(p1.tier, p2.tier) <= 1 || waited {
				// remove j first so i's index stays valid
				a.queue = append(a.queue[:j], a.queue[j+1:]...)
				a.queue = append(a.queue[:i], a.queue[i+1:]...)
				a.openRoom(p1.c, p2.c)
				return
			}
		}
	}
}
