package particle

// Store owns the live particle set: a dense slice for cache-friendly
// iteration plus an id→slot index for O(1) lookup. Removal swaps the last
// particle into the freed slot, so iteration order is not stable across
// prunes.
type Store struct {
	items   []Particle
	index   map[ID]int
	nextID  ID
	limit   int
	dropped int
}

// NewStore creates a store that holds at most limit particles. A non-positive
// limit means unbounded.
func NewStore(limit int) *Store {
	return &Store{index: make(map[ID]int), limit: limit}
}

// SetLimit changes the capacity cap. Existing particles are kept even if the
// new cap is lower; further adds are refused until the set shrinks.
func (s *Store) SetLimit(limit int) { s.limit = limit }

// Add inserts p under a fresh id. When the store is full the particle is
// dropped and Add reports false.
func (s *Store) Add(p Particle) (ID, bool) {
	if s.limit > 0 && len(s.items) >= s.limit {
		s.dropped++
		return 0, false
	}
	s.nextID++
	p.ID = s.nextID
	s.index[p.ID] = len(s.items)
	s.items = append(s.items, p)
	return p.ID, true
}

// Get returns a pointer to the particle with the given id. The pointer is
// invalidated by the next Add, Prune or Clear.
func (s *Store) Get(id ID) (*Particle, bool) {
	i, ok := s.index[id]
	if !ok {
		return nil, false
	}
	return &s.items[i], true
}

// Len returns the number of live particles.
func (s *Store) Len() int { return len(s.items) }

// Dropped returns how many adds were refused because the store was full.
func (s *Store) Dropped() int { return s.dropped }

// All exposes the dense backing slice. Callers must not retain it across
// mutations.
func (s *Store) All() []Particle { return s.items }

// Each calls fn with a pointer to every live particle.
func (s *Store) Each(fn func(p *Particle)) {
	for i := range s.items {
		fn(&s.items[i])
	}
}

// Prune removes every particle for which keep returns false and reports how
// many were removed.
func (s *Store) Prune(keep func(p *Particle) bool) int {
	removed := 0
	for i := 0; i < len(s.items); {
		if keep(&s.items[i]) {
			i++
			continue
		}
		delete(s.index, s.items[i].ID)
		last := len(s.items) - 1
		if i != last {
			s.items[i] = s.items[last]
			s.index[s.items[i].ID] = i
		}
		s.items = s.items[:last]
		removed++
	}
	return removed
}

// Clear removes every particle. IDs keep increasing afterwards.
func (s *Store) Clear() {
	s.items = s.items[:0]
	clear(s.index)
}
