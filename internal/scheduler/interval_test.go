package scheduler

import (
	"testing"
	"time"
)

func at(t *testing.T, hour, minute int) time.Time {
	t.Helper()
	return time.Date(2024, 3, 14, hour, minute, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name           string
		s1, e1, s2, e2 time.Time
		want           bool
	}{
		{
			name: "partial overlap",
			s1:   at(t, 9, 0), e1: at(t, 11, 0),
			s2: at(t, 10, 0), e2: at(t, 12, 0),
			want: true,
		},
		{
			name: "containment",
			s1:   at(t, 9, 0), e1: at(t, 17, 0),
			s2: at(t, 10, 0), e2: at(t, 11, 0),
			want: true,
		},
		{
			name: "identical intervals",
			s1:   at(t, 9, 0), e1: at(t, 10, 0),
			s2: at(t, 9, 0), e2: at(t, 10, 0),
			want: true,
		},
		{
			name: "touching boundaries do not conflict",
			s1:   at(t, 9, 0), e1: at(t, 10, 0),
			s2: at(t, 10, 0), e2: at(t, 11, 0),
			want: false,
		},
		{
			name: "disjoint",
			s1:   at(t, 9, 0), e1: at(t, 10, 0),
			s2: at(t, 14, 0), e2: at(t, 15, 0),
			want: false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Overlaps(tc.s1, tc.e1, tc.s2, tc.e2); got != tc.want {
				t.Fatalf("Overlaps(%v,%v,%v,%v) = %v, want %v", tc.s1, tc.e1, tc.s2, tc.e2, got, tc.want)
			}
			// Symmetry must hold for every pair.
			if got := Overlaps(tc.s2, tc.e2, tc.s1, tc.e1); got != tc.want {
				t.Fatalf("Overlaps is not symmetric for %s", tc.name)
			}
		})
	}
}

func TestIntervalOverlaps(t *testing.T) {
	t.Parallel()

	a := Interval{Start: at(t, 9, 0), End: at(t, 10, 30)}
	b := Interval{Start: at(t, 10, 0), End: at(t, 11, 0)}

	if !a.Overlaps(b) || !b.Overlaps(a) {
		t.Fatalf("expected %v and %v to overlap", a, b)
	}

	c := Interval{Start: at(t, 10, 30), End: at(t, 11, 0)}
	if a.Overlaps(c) {
		t.Fatalf("touching intervals %v and %v must not overlap", a, c)
	}
}
