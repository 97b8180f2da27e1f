package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIncrementalMean(t *testing.T) {
	tests := []struct {
		name   string
		oldAvg int
		n      int
		value  float64
		want   int
	}{
		{"first sample", 0, 1, 72, 72},
		{"second sample averages", 72, 2, 60, 66},
		{"rounds to nearest", 66, 3, 71, 68}, // (132+71)/3 = 67.67
		{"guards bad count", 50, 0, 99, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, incrementalMean(tt.oldAvg, tt.n, tt.value))
		})
	}
}

func TestIncrementalMean_MatchesFullMean(t *testing.T) {
	// feeding values one at a time stays within rounding error of the true mean
	values := []float64{80, 65, 90, 72, 55}
	avg := 0
	for i, v := range values {
		avg = incrementalMean(avg, i+1, v)
	}
	assert.InDelta(t, 72.4, float64(avg), 2)
}
