package tier

import (
	"errors"
	"math"
)

var ErrNegativeRating = errors.New("negative rating")

// Band is a contiguous rating range used to bound matchmaking skill gap.
type Band struct {
	Name string
	Min  int
	Max  int // inclusive
}

// Bands is ordered by rating. Ranges are contiguous and non-overlapping;
// the top band is open-ended so every non-negative rating maps to a band.
var Bands = []Band{
	{Name: "Newbie", Min: 0, Max: 1199},
	{Name: "Pupil", Min: 1200, Max: 1399},
	{Name: "Specialist", Min: 1400, Max: 1599},
	{Name: "Expert", Min: 1600, Max: 1899},
	{Name: "Candidate Master", Min: 1900, Max: 2099},
	{Name: "Master", Min: 2100, Max: 2299},
	{Name: "Grandmaster", Min: 2300, Max: math.MaxInt},
}

// Index returns the position of the band containing rating. Ratings are
// clamped non-negative upstream, so a negative rating is an internal error.
func Index(rating int) (int, error) {
	if rating < 0 {
		return 0, ErrNegativeRating
	}
	for i, b := range Bands {
		if rating >= b.Min && rating <= b.Max {
			return i, nil
		}
	}
	// unreachable: the top band is open-ended
	return 0, ErrNegativeRating
}

// Of returns the band containing rating.
func Of(rating int) (Band, error) {
	i, err := Index(rating)
	if err != nil {
		return Band{}, err
	}
	return Bands[i], nil
}

// Distance is the absolute difference between two band indexes.
func Distance(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}
