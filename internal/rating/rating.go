package rating

import "math"

// DefaultK is the K-factor used for ranked races.
const DefaultK = 32

// Outcome values for Calculate.
const (
	Win  = 1.0
	Loss = 0.0
	Draw = 0.5
)

// Calculate returns a player's new Elo rating after a single race against
// opponent. outcome is Win, Loss or Draw from the player's point of view.
// Both sides of a pairing must be computed from pre-match ratings; callers
// must not feed one side's updated rating into the other side's update.
func Calculate(playerRating, opponentRating int, outcome float64, k float64) int {
	expected := 1 / (1 + math.Pow(10, float64(opponentRating-playerRating)/400))
	return int(math.Round(float64(playerRating) + k*(outcome-expected)))
}
