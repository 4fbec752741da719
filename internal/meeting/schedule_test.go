package meeting

import (
	"testing"
	"time"
)

func TestSlotGrid(t *testing.T) {
	// Monday 2026-03-02, mid-morning.
	monday := time.Date(2026, 3, 2, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name        string
		now         time.Time
		horizonDays int
		wantCount   int
	}{
		{
			name:        "single weekday has a full business grid",
			now:         monday,
			horizonDays: 1,
			wantCount:   8,
		},
		{
			name:        "five weekdays",
			now:         monday,
			horizonDays: 5,
			wantCount:   40,
		},
		{
			name:        "weekend days are skipped",
			now:         monday,
			horizonDays: 7,
			wantCount:   40,
		},
		{
			name:        "saturday start contributes nothing until monday",
			now:         time.Date(2026, 3, 7, 9, 0, 0, 0, time.UTC), // Saturday
			horizonDays: 2,
			wantCount:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grid := slotGrid(tt.now, tt.horizonDays)
			if len(grid) != tt.wantCount {
				t.Fatalf("slotGrid returned %d slots, want %d", len(grid), tt.wantCount)
			}
			for _, s := range grid {
				if wd := s.Weekday(); wd == time.Saturday || wd == time.Sunday {
					t.Errorf("grid contains weekend slot %v", s)
				}
				if h := s.Hour(); h < businessOpenHour || h >= businessCloseHour {
					t.Errorf("grid contains out-of-hours slot %v", s)
				}
				if s.Minute() != 0 || s.Second() != 0 {
					t.Errorf("grid slot %v is not aligned to the hour", s)
				}
			}
		})
	}
}

func TestSlotGridChronological(t *testing.T) {
	now := time.Date(2026, 3, 2, 14, 0, 0, 0, time.UTC)
	grid := slotGrid(now, 14)

	for i := 1; i < len(grid); i++ {
		if !grid[i].After(grid[i-1]) {
			t.Fatalf("grid not strictly increasing at index %d: %v then %v", i, grid[i-1], grid[i])
		}
	}
}

func TestSlotGridStateless(t *testing.T) {
	now := time.Date(2026, 3, 2, 14, 0, 0, 0, time.UTC)

	a := slotGrid(now, 10)
	b := slotGrid(now, 10)
	if len(a) != len(b) {
		t.Fatalf("repeated calls disagree on length: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			t.Fatalf("repeated calls disagree at index %d: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestHorizonBounds(t *testing.T) {
	now := time.Date(2026, 3, 2, 15, 45, 12, 0, time.UTC)
	from, to := horizonBounds(now, 90)

	wantFrom := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	if !from.Equal(wantFrom) {
		t.Errorf("from = %v, want %v", from, wantFrom)
	}
	if want := wantFrom.AddDate(0, 0, 90); !to.Equal(want) {
		t.Errorf("to = %v, want %v", to, want)
	}
}
