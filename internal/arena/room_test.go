package arena

import "testing"

func TestWordCountFor_Breakpoints(t *testing.T) {
	tests := []struct {
		rating int
		want   int
	}{
		{0, 10},
		{1180, 10},
		{1199, 10},
		{1200, 15},
		{1399, 15},
		{1400, 20},
		{1599, 20},
		{1600, 25},
		{1899, 25},
		{1900, 30},
		{2100, 35},
		{2300, 40},
		{2400, 45},
		{2600, 50},
		{3200, 50},
	}
	for _, tt := range tests {
		if got := wordCountFor(tt.rating); got != tt.want {
			t.Errorf("wordCountFor(%d) = %d, want %d", tt.rating, got, tt.want)
		}
	}
}

func TestScore_Composite(t *testing.T) {
	// progress + 0.5*wpm + 0.1*accuracy
	a := score(completionReport{wpm: 80, accuracy: 95, progress: 100})
	if a != 149.5 {
		t.Fatalf("score A = %v, want 149.5", a)
	}
	b := score(completionReport{wpm: 60, accuracy: 90, progress: 100})
	if b != 139 {
		t.Fatalf("score B = %v, want 139", b)
	}
	if a <= b {
		t.Fatalf("expected A to outscore B")
	}
}

func TestClampPercent(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{-5, 0},
		{0, 0},
		{42, 42},
		{100, 100},
		{150, 100},
	}
	for _, tt := range tests {
		if got := clampPercent(tt.in); got != tt.want {
			t.Errorf("clampPercent(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
