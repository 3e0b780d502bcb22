package physics

// Pair is two bodies in contact. A is always the body with the lower ID.
type Pair struct {
	A, B *Body
}

// Involves reports whether the pair consists of exactly x and y, in any order.
func (p Pair) Involves(x, y *Body) bool {
	return (p.A == x && p.B == y) || (p.A == y && p.B == x)
}

type pairKey struct {
	a, b BodyID
}

func makePair(x, y *Body) (pairKey, Pair) {
	if y.ID < x.ID {
		x, y = y, x
	}
	return pairKey{x.ID, y.ID}, Pair{A: x, B: y}
}

// contactTracker remembers which pairs touched on the previous tick so a
// contact produces exactly one start and one end notification.
type contactTracker struct {
	active  map[pairKey]Pair
	current map[pairKey]Pair
}

func newContactTracker() *contactTracker {
	return &contactTracker{
		active:  make(map[pairKey]Pair),
		current: make(map[pairKey]Pair),
	}
}

// touch records that x and y overlap during the current tick.
func (t *contactTracker) touch(x, y *Body) {
	key, pair := makePair(x, y)
	t.current[key] = pair
}

// flush compares this tick's contacts with the previous tick's.
func (t *contactTracker) flush() (started, ended []Pair) {
	for key, pair := range t.current {
		if _, ok := t.active[key]; !ok {
			started = append(started, pair)
		}
	}
	for key, pair := range t.active {
		if _, ok := t.current[key]; !ok {
			ended = append(ended, pair)
		}
	}
	sortPairs(started)
	sortPairs(ended)

	t.active, t.current = t.current, t.active
	clear(t.current)
	return started, ended
}

// forget drops a body from the tracker without emitting an end event.
func (t *contactTracker) forget(id BodyID) {
	for key := range t.active {
		if key.a == id || key.b == id {
			delete(t.active, key)
		}
	}
	for key := range t.current {
		if key.a == id || key.b == id {
			delete(t.current, key)
		}
	}
}

func (t *contactTracker) reset() {
	clear(t.active)
	clear(t.current)
}

// sortPairs orders pairs by body IDs so notifications are deterministic.
func sortPairs(pairs []Pair) {
	for i := 1; i < len(pairs); i++ {
		for j := i; j > 0 && pairLess(pairs[j], pairs[j-1]); j-- {
			pairs[j], pairs[j-1] = pairs[j-1], pairs[j]
		}
	}
}

func pairLess(p, q Pair) bool {
	if p.A.ID != q.A.ID {
		return p.A.ID < q.A.ID
	}
	return p.B.ID < q.B.ID
}
