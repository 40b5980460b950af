package models

import "testing"

func TestNewPagination(t *testing.T) {
	cases := []struct {
		name                 string
		page, perPage, total int64
		wantPages            int64
		wantNext, wantPrev   bool
		wantStart, wantEnd   int64
	}{
		{"first of many", 1, 10, 95, 10, true, false, 1, 10},
		{"middle page", 5, 10, 95, 10, true, true, 41, 50},
		{"last partial page", 10, 10, 95, 10, false, true, 91, 95},
		{"no records", 1, 10, 0, 0, false, false, 1, 0},
		{"exact fit", 2, 10, 20, 2, false, true, 11, 20},
		{"page below one clamps", 0, 10, 30, 3, true, false, 1, 10},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := NewPagination(tc.page, tc.perPage, tc.total)
			if p.TotalPages != tc.wantPages {
				t.Errorf("TotalPages = %d, want %d", p.TotalPages, tc.wantPages)
			}
			if p.HasNext != tc.wantNext || p.HasPrevious != tc.wantPrev {
				t.Errorf("HasNext/HasPrevious = %v/%v, want %v/%v", p.HasNext, p.HasPrevious, tc.wantNext, tc.wantPrev)
			}
			if p.StartIndex != tc.wantStart || p.EndIndex != tc.wantEnd {
				t.Errorf("StartIndex/EndIndex = %d/%d, want %d/%d", p.StartIndex, p.EndIndex, tc.wantStart, tc.wantEnd)
			}
		})
	}
}

func TestEffectiveItemsPerPage(t *testing.T) {
	cases := []struct {
		name                              string
		limit, maxLimit, defLimit, hardCap int64
		want                              int64
	}{
		{"zero limit falls back to default", 0, 0, 10, 100, 10},
		{"limit within bounds passes through", 25, 0, 10, 100, 25},
		{"limit above hard cap is clamped", 500, 0, 10, 100, 100},
		{"client maxLimit tightens the cap", 50, 20, 10, 100, 20},
		{"client maxLimit cannot raise the cap", 500, 1000, 10, 100, 100},
		{"negative limit falls back to default", -5, 0, 10, 100, 10},
		{"zero config uses built-in defaults", 0, 0, 0, 0, 10},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := EffectiveItemsPerPage(tc.limit, tc.maxLimit, tc.defLimit, tc.hardCap)
			if got != tc.want {
				t.Errorf("EffectiveItemsPerPage(%d, %d, %d, %d) = %d, want %d",
					tc.limit, tc.maxLimit, tc.defLimit, tc.hardCap, got, tc.want)
			}
		})
	}
}
