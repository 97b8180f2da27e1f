package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/puravnayak/TypeClash/internal/arena"
	"github.com/puravnayak/TypeClash/pkg/types"
	"go.uber.org/zap"
)

// IdentityDirectory resolves an authenticated player id to an identity.
// Lookups run on the connection goroutine so the arena loop never blocks
// on the backing store.
type IdentityDirectory interface {
	Resolve(ctx context.Context, playerID string) (arena.Player, error)
}

// Handler bridges one websocket connection to the arena: a writer goroutine
// drains the connection's outbox, and the reader loop translates the closed
// set of client events into arena messages. Malformed or unknown events are
// dropped here and never reach the arena.
func Handler(a *arena.Arena, dir IdentityDirectory, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			// In dev ONLY, you can loosen origin checks:
			// OriginPatterns: []string{"http://localhost:*", "http://127.0.0.1:*"},
		})
		if err != nil {
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")

		out := make(chan types.ServerMessage, 8)
		connID := uuid.NewString()

		a.Inbox() <- arena.Attach{ConnID: connID, Outbox: out}
		defer func() { a.Inbox() <- arena.Detach{ConnID: connID} }()

		// Writer goroutine; exits when the arena closes the outbox on detach.
		writeCtx, writeCancel := context.WithCancel(r.Context())
		defer writeCancel()
		go func() {
			for msg := range out {
				payload, _ := json.Marshal(msg)
				ctx, cancel := context.WithTimeout(writeCtx, 3*time.Second)
				_ = conn.Write(ctx, websocket.MessageText, payload)
				cancel()
			}
		}()

		// Reader loop
		for {
			_, data, err := conn.Read(r.Context())
			if err != nil {
				// Treat clean close/going-away as normal:
				switch websocket.CloseStatus(err) {
				case websocket.StatusNormalClosure, websocket.StatusGoingAway:
					return
				}
				// Otherwise, just exit (arena.Detach in defer):
				return
			}

			var cm types.ClientMessage
			if err := json.Unmarshal(data, &cm); err != nil {
				continue
			}

			switch cm.Type {
			case types.EvtAuth:
				player, err := dir.Resolve(r.Context(), cm.PlayerID)
				if err != nil {
					// unauthenticated connections simply stay unbound
					log.Debug("auth lookup failed", zap.String("player", cm.PlayerID), zap.Error(err))
					continue
				}
				a.Inbox() <- arena.Bind{ConnID: connID, Player: player}

			case types.EvtReady:
				a.Inbox() <- arena.Ready{ConnID: connID}

			case types.EvtCancelReady:
				a.Inbox() <- arena.CancelReady{ConnID: connID}

			case types.EvtProgress:
				a.Inbox() <- arena.Progress{ConnID: connID, RoomID: cm.Room, Percent: cm.Progress}

			case types.EvtFinished:
				a.Inbox() <- arena.Finished{
					ConnID:   connID,
					RoomID:   cm.Room,
					WPM:      cm.WPM,
					Accuracy: cm.Accuracy,
					Percent:  cm.Progress,
				}

			case types.EvtSuspicious:
				a.Inbox() <- arena.Suspicious{ConnID: connID, RoomID: cm.Room, Reason: cm.Reason}

			default:
				// unknown event type: drop
			}
		}
	}
}
