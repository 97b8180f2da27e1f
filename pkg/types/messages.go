package types

// Client -> server event names. Anything outside this set is dropped at the
// transport boundary.
const (
	EvtAuth        = "auth"
	EvtReady       = "ready"
	EvtCancelReady = "cancel-ready"
	EvtProgress    = "progress"
	EvtFinished    = "finished"
	EvtSuspicious  = "suspicious-behavior"
)

// Server -> client event names.
const (
	EvtWaiting          = "waiting"
	EvtCancelled        = "cancelled"
	EvtMatchFound       = "match-found"
	EvtOpponentProgress = "opponent-progress"
	EvtGameResult       = "game-result"
)

type ClientMessage struct {
	Type     string  `json:"type"`
	PlayerID string  `json:"playerId,omitempty"` // auth
	Room     string  `json:"room,omitempty"`
	Progress float64 `json:"progress,omitempty"`
	WPM      float64 `json:"wpm,omitempty"`      // finished
	Accuracy float64 `json:"accuracy,omitempty"` // finished
	Reason   string  `json:"reason,omitempty"`   // suspicious-behavior
}

type PlayerInfo struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Rating int    `json:"rating"`
}

// PlayerResult is one player's final line in a game-result payload.
type PlayerResult struct {
	WPM      float64 `json:"wpm"`
	Accuracy float64 `json:"accuracy"`
	Progress float64 `json:"progress"`
}

// RatingChange carries the pre/post settlement ratings for one player.
type RatingChange struct {
	Before int `json:"before"`
	After  int `json:"after"`
}

type ServerMessage struct {
	Type          string                  `json:"type"`
	Message       string                  `json:"message,omitempty"`  // waiting | cancelled
	Room          string                  `json:"room,omitempty"`     // match-found | game-result
	Text          string                  `json:"text,omitempty"`     // match-found
	Players       []PlayerInfo            `json:"players,omitempty"`  // match-found | game-result
	Progress      float64                 `json:"progress,omitempty"` // opponent-progress
	Results       map[string]PlayerResult `json:"results,omitempty"`  // game-result, keyed by player id
	Winner        *string                 `json:"winner,omitempty"`   // nil on a draw
	RatingChanges map[string]RatingChange `json:"ratingChanges,omitempty"`
}
