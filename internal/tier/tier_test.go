package tier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBands_ContiguousAndNonOverlapping(t *testing.T) {
	for i := 1; i < len(Bands); i++ {
		assert.Equal(t, Bands[i-1].Max+1, Bands[i].Min,
			"gap or overlap between %s and %s", Bands[i-1].Name, Bands[i].Name)
	}
}

func TestIndex_TotalForNonNegativeRatings(t *testing.T) {
	// every rating maps to exactly one band, including far above Grandmaster
	for r := 0; r <= 5000; r += 7 {
		i, err := Index(r)
		require.NoError(t, err, "rating %d", r)
		assert.True(t, r >= Bands[i].Min && r <= Bands[i].Max, "rating %d in %s", r, Bands[i].Name)
	}
}

func TestIndex_NegativeRatingFails(t *testing.T) {
	_, err := Index(-1)
	assert.ErrorIs(t, err, ErrNegativeRating)
}

func TestOf_KnownBands(t *testing.T) {
	tests := []struct {
		rating int
		want   string
	}{
		{0, "Newbie"},
		{1150, "Newbie"},
		{1199, "Newbie"},
		{1200, "Pupil"},
		{1400, "Specialist"},
		{1600, "Expert"},
		{1899, "Expert"},
		{1900, "Candidate Master"},
		{2100, "Master"},
		{2300, "Grandmaster"},
		{9999, "Grandmaster"},
	}
	for _, tt := range tests {
		b, err := Of(tt.rating)
		require.NoError(t, err)
		assert.Equal(t, tt.want, b.Name, "rating %d", tt.rating)
	}
}

func TestDistance(t *testing.T) {
	assert.Equal(t, 0, Distance(2, 2))
	assert.Equal(t, 3, Distance(1, 4))
	assert.Equal(t, 3, Distance(4, 1))
}
