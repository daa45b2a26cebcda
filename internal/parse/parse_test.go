package parse

import "testing"

func TestDuration(t *testing.T) {
	tests := []struct {
		input string
		wantH int
		wantM int
		wantS int
	}{
		{"60s", 0, 0, 60},
		{"1m30s", 0, 1, 30},
		{"2h10s", 2, 0, 10},
		{"1m5s", 0, 1, 5},
		{"2h30m15s", 2, 30, 15},
		{"5m", 0, 5, 0},
		{"3h", 3, 0, 0},

		// Order doesn't matter; last occurrence of a unit wins.
		{"30s1m", 0, 1, 30},
		{"10s20s", 0, 0, 20},

		// Trailing digits without a unit letter are ignored.
		{"1m30", 0, 1, 0},
		{"45", 0, 0, 0},

		// Unrecognised characters are skipped.
		{"1h x 5s", 1, 0, 5},
		{"", 0, 0, 0},
		{"abc", 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			h, m, s := Duration(tt.input)
			if h != tt.wantH || m != tt.wantM || s != tt.wantS {
				t.Errorf("Duration(%q) = %d:%d:%d, want %d:%d:%d",
					tt.input, h, m, s, tt.wantH, tt.wantM, tt.wantS)
			}
		})
	}
}

func TestClock(t *testing.T) {
	tests := []struct {
		input string
		wantH int
		wantM int
		wantS int
	}{
		{"083000", 8, 30, 0},
		{"235959", 23, 59, 59},
		{"000000", 0, 0, 0},
		{"120001", 12, 0, 1},

		// Short input: missing positions read as zero.
		{"0830", 8, 30, 0},
		{"8", 80, 0, 0},
		{"", 0, 0, 0},

		// Non-digits read as zero, nothing is rejected.
		{"08x000", 8, 0, 0},
		{"banana", 0, 0, 0},

		// Extra characters past six digits are ignored.
		{"0830001", 8, 30, 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			h, m, s := Clock(tt.input)
			if h != tt.wantH || m != tt.wantM || s != tt.wantS {
				t.Errorf("Clock(%q) = %d:%d:%d, want %d:%d:%d",
					tt.input, h, m, s, tt.wantH, tt.wantM, tt.wantS)
			}
		})
	}
}
