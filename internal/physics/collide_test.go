package physics

import (
	"math"
	"testing"
)

func TestOverlap(t *testing.T) {
	tests := []struct {
		name   string
		other  *Body
		hit    bool
		normal Vec
	}{
		{"circle apart", NewCircle(30, 0, 10, Options{}), false, Vec{}},
		{"circle touching", NewCircle(15, 0, 10, Options{}), true, V(-1, 0)},
		{"rect below", NewRectangle(0, 14, 40, 10, Options{}), true, V(0, -1)},
		{"rect far", NewRectangle(0, 100, 40, 10, Options{}), false, Vec{}},
		{"center inside rect", NewRectangle(0, 4, 100, 10, Options{}), true, V(0, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ball := NewCircle(0, 0, 10, Options{})
			p, ok := overlap(ball, tt.other)
			if ok != tt.hit {
				t.Fatalf("overlap = %v, want %v", ok, tt.hit)
			}
			if !ok {
				return
			}
			if math.Abs(p.normal.X-tt.normal.X) > 1e-9 || math.Abs(p.normal.Y-tt.normal.Y) > 1e-9 {
				t.Errorf("normal = %v, want %v", p.normal, tt.normal)
			}
			if p.depth <= 0 {
				t.Errorf("depth = %f, want > 0", p.depth)
			}
		})
	}
}

func TestContactTrackerStartEnd(t *testing.T) {
	a := &Body{ID: 1}
	b := &Body{ID: 2}
	c := &Body{ID: 3}
	tr := newContactTracker()

	tr.touch(b, a)
	tr.touch(a, c)
	started, ended := tr.flush()
	if len(started) != 2 || len(ended) != 0 {
		t.Fatalf("first flush: started=%d ended=%d", len(started), len(ended))
	}
	if started[0].A != a || started[0].B != b {
		t.Errorf("pairs should be ordered by ID, got %d-%d", started[0].A.ID, started[0].B.ID)
	}

	tr.touch(a, b)
	started, ended = tr.flush()
	if len(started) != 0 || len(ended) != 1 {
		t.Fatalf("second flush: started=%d ended=%d", len(started), len(ended))
	}
	if !ended[0].Involves(a, c) {
		t.Error("a-c contact should have ended")
	}
}
