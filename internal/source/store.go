package source

import (
	"github.com/coreman2200/panelfx/internal/geometry"
	"github.com/coreman2200/panelfx/internal/rgb"
)

// Source is one transient light emitter.
type Source struct {
	Pos   geometry.Point
	Vel   geometry.Point
	Color rgb.RGB

	Age       float64
	Speed     float64
	Intensity float64
	Radius    float64
}

// Order selects how a Store keeps its sources, and therefore which one is
// evicted and in which order they are blended.
type Order int

const (
	// Insertion keeps arrival order; the oldest source is evicted.
	Insertion Order = iota
	// ByIntensity keeps ascending intensity; the dimmest source is evicted.
	// Equal intensities keep arrival order.
	ByIntensity
)

// Store is a bounded sequence of sources. Index 0 is always the next
// eviction candidate.
type Store struct {
	capacity int
	order    Order
	items    []Source
}

func NewStore(capacity int, order Order) *Store {
	if capacity < 1 {
		capacity = 1
	}
	return &Store{capacity: capacity, order: order, items: make([]Source, 0, capacity)}
}

func (s *Store) Len() int         { return len(s.items) }
func (s *Store) Cap() int         { return s.capacity }
func (s *Store) Full() bool       { return len(s.items) >= s.capacity }
func (s *Store) Order() Order     { return s.order }
func (s *Store) Reset()           { s.items = s.items[:0] }
func (s *Store) At(i int) *Source { return &s.items[i] }

// Sources returns the live sources in store order. The slice is only valid
// until the next mutation.
func (s *Store) Sources() []Source { return s.items }

// Push inserts src, first evicting index 0 when the store is full. It
// reports whether an eviction happened.
func (s *Store) Push(src Source) bool {
	evicted := false
	if s.Full() {
		s.remove(0)
		evicted = true
	}
	i := len(s.items)
	if s.order == ByIntensity {
		for ; i > 0; i-- {
			if src.Intensity >= s.items[i-1].Intensity {
				break
			}
		}
	}
	s.items = append(s.items, Source{})
	copy(s.items[i+1:], s.items[i:])
	s.items[i] = src
	return evicted
}

// RemoveIf drops every source matching fn, keeping the order of the rest,
// and returns how many were removed.
func (s *Store) RemoveIf(fn func(*Source) bool) int {
	kept := s.items[:0]
	for i := range s.items {
		if !fn(&s.items[i]) {
			kept = append(kept, s.items[i])
		}
	}
	n := len(s.items) - len(kept)
	s.items = kept
	return n
}

func (s *Store) remove(i int) {
	copy(s.items[i:], s.items[i+1:])
	s.items = s.items[:len(s.items)-1]
}
