package entity

import "testing"

func TestRecomputeSeatState(t *testing.T) {
	cases := []struct {
		name       string
		status     PostStatus
		active     int
		capacity   int
		wantStatus PostStatus
		wantFull   bool
	}{
		{"open stays open with free seats", PostStatusOpen, 2, 4, PostStatusOpen, false},
		{"open flips to full at capacity", PostStatusOpen, 4, 4, PostStatusFull, true},
		{"full flips back to open when a seat frees", PostStatusFull, 3, 4, PostStatusOpen, false},
		{"full stays full at capacity", PostStatusFull, 4, 4, PostStatusFull, true},
		{"in_progress keeps status, recomputes flag", PostStatusInProgress, 1, 4, PostStatusInProgress, false},
		{"in_progress at capacity keeps flag true", PostStatusInProgress, 4, 4, PostStatusInProgress, true},
		{"completed untouched", PostStatusCompleted, 4, 4, PostStatusCompleted, true},
		{"expired untouched", PostStatusExpired, 0, 4, PostStatusExpired, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, isFull := RecomputeSeatState(tc.status, tc.active, tc.capacity)
			if status != tc.wantStatus || isFull != tc.wantFull {
				t.Errorf("RecomputeSeatState(%s, %d, %d) = %s/%v, want %s/%v",
					tc.status, tc.active, tc.capacity, status, isFull, tc.wantStatus, tc.wantFull)
			}
		})
	}
}

func TestNextToggleStatus(t *testing.T) {
	cases := []struct {
		from   PostStatus
		want   PostStatus
		wantOK bool
	}{
		{PostStatusOpen, PostStatusInProgress, true},
		{PostStatusFull, PostStatusInProgress, true},
		{PostStatusInProgress, PostStatusCompleted, true},
		{PostStatusCompleted, PostStatusOpen, true},
		{PostStatusExpired, PostStatusExpired, false},
	}
	for _, tc := range cases {
		got, ok := NextToggleStatus(tc.from)
		if got != tc.want || ok != tc.wantOK {
			t.Errorf("NextToggleStatus(%s) = %s/%v, want %s/%v", tc.from, got, ok, tc.want, tc.wantOK)
		}
	}
}

func TestRecruiting(t *testing.T) {
	for status, want := range map[PostStatus]bool{
		PostStatusOpen:       true,
		PostStatusFull:       true,
		PostStatusInProgress: false,
		PostStatusCompleted:  false,
		PostStatusExpired:    false,
	} {
		p := GamePost{Status: status}
		if p.Recruiting() != want {
			t.Errorf("Recruiting() with %s = %v, want %v", status, !want, want)
		}
	}
}
