package rating

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculate_DrawBetweenEqualsIsNoOp(t *testing.T) {
	for _, r := range []int{0, 800, 1200, 1500, 2400, 3000} {
		assert.Equal(t, r, Calculate(r, r, Draw, DefaultK), "rating %d", r)
	}
}

func TestCalculate_WinNeverDecreases_LossNeverIncreases(t *testing.T) {
	ratings := []int{100, 900, 1200, 1500, 1900, 2600}
	for _, a := range ratings {
		for _, b := range ratings {
			win := Calculate(a, b, Win, DefaultK)
			loss := Calculate(a, b, Loss, DefaultK)
			assert.GreaterOrEqual(t, win, a, "win %d vs %d", a, b)
			assert.LessOrEqual(t, loss, a, "loss %d vs %d", a, b)
		}
	}
}

func TestCalculate_UpsetPaysMore(t *testing.T) {
	// an underdog win moves the rating more than a favorite win
	underdog := Calculate(1200, 1600, Win, DefaultK) - 1200
	favorite := Calculate(1600, 1200, Win, DefaultK) - 1600
	assert.Greater(t, underdog, favorite)
}

func TestCalculate_SignsMatchOutcome(t *testing.T) {
	tests := []struct {
		name           string
		player, opp    int
		outcome        float64
		wantDeltaAbove bool // true: delta > 0
	}{
		{"win as underdog", 1150, 1180, Win, true},
		{"loss as favorite", 1180, 1150, Loss, false},
		{"draw as underdog gains", 1150, 1180, Draw, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			delta := Calculate(tt.player, tt.opp, tt.outcome, DefaultK) - tt.player
			if tt.wantDeltaAbove {
				assert.Positive(t, delta)
			} else {
				assert.Negative(t, delta)
			}
		})
	}
}

func TestCalculate_BothSidesUsePreMatchRatings(t *testing.T) {
	// deltas are not guaranteed symmetric, but must come from the same
	// pre-match snapshot on both sides
	oldA, oldB := 1150, 1180
	newA := Calculate(oldA, oldB, Win, DefaultK)
	newB := Calculate(oldB, oldA, Loss, DefaultK)
	assert.Greater(t, newA, oldA)
	assert.Less(t, newB, oldB)
}
