package schedule

import (
	"testing"
	"time"
)

func at(hour, min int) time.Time {
	return time.Date(2025, time.March, 3, hour, min, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name string
		a    TimeInterval
		b    TimeInterval
		want bool
	}{
		{
			name: "disjoint",
			a:    NewInterval(at(9, 0), time.Hour),
			b:    NewInterval(at(11, 0), time.Hour),
			want: false,
		},
		{
			name: "touching endpoints do not overlap",
			a:    NewInterval(at(9, 0), time.Hour),
			b:    NewInterval(at(10, 0), time.Hour),
			want: false,
		},
		{
			name: "partial overlap",
			a:    NewInterval(at(9, 0), time.Hour),
			b:    NewInterval(at(9, 30), time.Hour),
			want: true,
		},
		{
			name: "containment",
			a:    NewInterval(at(9, 0), 2*time.Hour),
			b:    NewInterval(at(9, 30), 30*time.Minute),
			want: true,
		},
		{
			name: "identical",
			a:    NewInterval(at(9, 0), time.Hour),
			b:    NewInterval(at(9, 0), time.Hour),
			want: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Overlaps(tc.b); got != tc.want {
				t.Errorf("a.Overlaps(b) = %v, want %v", got, tc.want)
			}
			if got := tc.b.Overlaps(tc.a); got != tc.want {
				t.Errorf("overlap is not symmetric: b.Overlaps(a) = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestBuffered(t *testing.T) {
	t.Run("zero buffers change nothing", func(t *testing.T) {
		i := NewInterval(at(10, 0), time.Hour)
		if got := i.Buffered(0, 0); got != i {
			t.Errorf("Buffered(0,0) = %+v, want %+v", got, i)
		}
	})

	t.Run("padding extends both sides", func(t *testing.T) {
		i := NewInterval(at(10, 0), time.Hour)
		got := i.Buffered(5*time.Minute, 10*time.Minute)

		if want := at(9, 55); !got.Start.Equal(want) {
			t.Errorf("Start = %v, want %v", got.Start, want)
		}
		if want := at(11, 10); !got.End().Equal(want) {
			t.Errorf("End = %v, want %v", got.End(), want)
		}
	})

	t.Run("buffering does not change the original", func(t *testing.T) {
		i := NewInterval(at(10, 0), time.Hour)
		_ = i.Buffered(time.Hour, time.Hour)

		if !i.Start.Equal(at(10, 0)) || i.Duration != time.Hour {
			t.Errorf("original interval mutated: %+v", i)
		}
	})
}
