package arena

import (
	"context"
	"testing"
	"time"

	"github.com/puravnayak/TypeClash/internal/text"
	"github.com/puravnayak/TypeClash/pkg/types"
	"go.uber.org/zap"
)

// bench builds an arena without starting its goroutines so queue and sweep
// logic can be driven synchronously.
func bench(st Store) *Arena {
	return newArena(context.Background(), st, text.Generator{}, nil, zap.NewNop(), Config{
		SweepInterval: time.Hour,
		WaitThreshold: 10 * time.Second,
	})
}

func addConn(a *Arena, id string, rating int) *conn {
	c := &conn{
		id:     id,
		outbox: make(chan types.ServerMessage, 8),
		player: &Player{ID: "p-" + id, Name: id, Rating: rating},
	}
	a.conns[id] = c
	return c
}

func TestEnqueue_UnauthenticatedIsNoOp(t *testing.T) {
	a := bench(newFakeStore())
	c := &conn{id: "c1", outbox: make(chan types.ServerMessage, 8)}
	a.conns[c.id] = c

	a.enqueue(c)

	if len(a.queue) != 0 {
		t.Fatalf("expected empty queue, got %d", len(a.queue))
	}
	if len(c.outbox) != 0 {
		t.Fatalf("expected no feedback for unauthenticated ready")
	}
}

func TestEnqueue_DuplicateIsNoOp(t *testing.T) {
	a := bench(newFakeStore())
	c := addConn(a, "c1", 1150)

	a.enqueue(c)
	a.enqueue(c)

	if len(a.queue) != 1 {
		t.Fatalf("expected one queue entry, got %d", len(a.queue))
	}
}

func TestSweep_PairsSameTierImmediately(t *testing.T) {
	a := bench(newFakeStore())
	c1 := addConn(a, "c1", 1150)
	c2 := addConn(a, "c2", 1180)
	a.enqueue(c1)
	a.enqueue(c2)

	a.sweep()

	if len(a.queue) != 0 {
		t.Fatalf("queue should be empty after pairing, got %d", len(a.queue))
	}
	if len(a.rooms) != 1 {
		t.Fatalf("expected one room, got %d", len(a.rooms))
	}
}

func TestSweep_CommitsFirstEligiblePairInScanOrder(t *testing.T) {
	a := bench(newFakeStore())
	// c1 Newbie, c2 Expert, c3 Expert: (c1,c2) and (c1,c3) are too far
	// apart, so (c2,c3) pairs even though c1 queued first
	c1 := addConn(a, "c1", 1000)
	c2 := addConn(a, "c2", 1700)
	c3 := addConn(a, "c3", 1750)
	a.enqueue(c1)
	a.enqueue(c2)
	a.enqueue(c3)

	a.sweep()

	if len(a.queue) != 1 || a.queue[0].c.id != "c1" {
		t.Fatalf("expected only c1 left waiting, queue=%+v", a.queue)
	}
}

func TestSweep_AtMostOnePairingPerInvocation(t *testing.T) {
	a := bench(newFakeStore())
	for _, id := range []string{"c1", "c2", "c3", "c4"} {
		a.enqueue(addConn(a, id, 1150))
	}

	a.sweep()
	if len(a.queue) != 2 || len(a.rooms) != 1 {
		t.Fatalf("after first sweep: queue=%d rooms=%d, want 2/1", len(a.queue), len(a.rooms))
	}

	a.sweep()
	if len(a.queue) != 0 || len(a.rooms) != 2 {
		t.Fatalf("after second sweep: queue=%d rooms=%d, want 0/2", len(a.queue), len(a.rooms))
	}
}

func TestSweep_WaitThresholdOverridesTierGap(t *testing.T) {
	a := bench(newFakeStore())
	c1 := addConn(a, "c1", 1000) // Newbie
	c2 := addConn(a, "c2", 2400) // Grandmaster
	a.enqueue(c1)
	a.enqueue(c2)

	a.sweep()
	if len(a.rooms) != 0 {
		t.Fatalf("tier gap 6 should not pair before the wait threshold")
	}

	a.queue[0].joinedAt = a.now().Add(-11 * time.Second)
	a.sweep()
	if len(a.rooms) != 1 || len(a.queue) != 0 {
		t.Fatalf("expected pairing once one side waited past the threshold")
	}
}

func TestSweep_AdjacentTierIsEligible(t *testing.T) {
	a := bench(newFakeStore())
	c1 := addConn(a, "c1", 1150) // Newbie
	c2 := addConn(a, "c2", 1250) // Pupil
	a.enqueue(c1)
	a.enqueue(c2)

	a.sweep()
	if len(a.rooms) != 1 {
		t.Fatalf("tier distance 1 should pair immediately")
	}
}

func TestRemoveFromQueue(t *testing.T) {
	a := bench(newFakeStore())
	c1 := addConn(a, "c1", 1150)
	c2 := addConn(a, "c2", 1180)
	a.enqueue(c1)
	a.enqueue(c2)

	if !a.removeFromQueue("c1") {
		t.Fatalf("expected removal of queued entry")
	}
	if a.removeFromQueue("c1") {
		t.Fatalf("second removal should be a no-op")
	}
	if len(a.queue) != 1 || a.queue[0].c.id != "c2" {
		t.Fatalf("unexpected queue %+v", a.queue)
	}
}
