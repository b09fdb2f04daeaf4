// Package state keeps the stroke history of a drawing surface: the ordered
// completed strokes plus at most one stroke still being drawn.
package state

import (
	"errors"
	"fmt"
	"iter"
	"time"
)

var (
	// ErrInvalidState marks an operation attempted in a state that forbids it.
	ErrInvalidState = errors.New("invalid state")

	// ErrStrokeInProgress is returned by Start while another stroke is open.
	ErrStrokeInProgress = fmt.Errorf("%w: stroke already in progress", ErrInvalidState)
)

// Store is the in-memory stroke collection. It is owned by one drawing
// surface and is not safe for concurrent use.
type Store struct {
	completed  []Stroke
	inProgress *Stroke
	now        Clock
	newID      IDSource
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces time.Now.
func WithClock(c Clock) Option {
	return func(s *Store) { s.now = c }
}

// WithIDSource replaces the uuid based id generator.
func WithIDSource(f IDSource) Option {
	return func(s *Store) { s.newID = f }
}

// NewStore returns an empty store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		now:   time.Now,
		newID: newStrokeID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start opens a new stroke holding the single point p. The pen settings are
// fixed for the stroke's lifetime. It fails with ErrStrokeInProgress if a
// stroke is already open; callers must Finish it first.
func (s *Store) Start(p Point, penSize float64, penColor string) (Stroke, error) {
	if s.inProgress != nil {
		return Stroke{}, ErrStrokeInProgress
	}
	if penSize <= 0 {
		return Stroke{}, fmt.Errorf("pen size %v: must be positive", penSize)
	}

	s.inProgress = &Stroke{
		ID:        s.newID(),
		Points:    []Point{p},
		PenSize:   penSize,
		PenColor:  penColor,
		StartedAt: s.now(),
	}
	return *s.inProgress, nil
}

// AddPoint appends p to the open stroke and returns it. Duplicate points are
// stored as given. ok is false when no stroke is open.
//
// The returned stroke shares its point slice with the store; callers must
// not modify it.
func (s *Store) AddPoint(p Point) (st Stroke, ok bool) {
	if s.inProgress == nil {
		return Stroke{}, false
	}
	s.inProgress.Points = append(s.inProgress.Points, p)
	return *s.inProgress, true
}

// Finish closes the open stroke, records its duration and appends it to the
// completed list. With nothing open it returns ok == false and does nothing,
// so calling it twice is harmless.
func (s *Store) Finish() (st Stroke, ok bool) {
	if s.inProgress == nil {
		return Stroke{}, false
	}

	done := *s.inProgress
	done.Duration = s.now().Sub(done.StartedAt)
	if done.Duration < 0 {
		done.Duration = 0
	}
	done.Finished = true

	s.completed = append(s.completed, done)
	s.inProgress = nil
	return done, true
}

// Clear drops every completed stroke and any open one.
func (s *Store) Clear() {
	s.completed = nil
	s.inProgress = nil
}

// InProgress returns a copy of the open stroke, if any.
func (s *Store) InProgress() (Stroke, bool) {
	if s.inProgress == nil {
		return Stroke{}, false
	}
	return s.inProgress.Clone(), true
}

// Drawing reports whether a stroke is open.
func (s *Store) Drawing() bool {
	return s.inProgress != nil
}

// Len returns the number of completed strokes.
func (s *Store) Len() int {
	return len(s.completed)
}

// Completed returns deep copies of the completed strokes in drawing order.
func (s *Store) Completed() []Stroke {
	out := make([]Stroke, len(s.completed))
	for i, st := range s.completed {
		out[i] = st.Clone()
	}
	return out
}

// All yields the completed strokes in order followed by the open stroke.
// The yielded values share memory with the store and must not be modified.
func (s *Store) All() iter.Seq[Stroke] {
	return func(yield func(Stroke) bool) {
		for _, st := range s.completed {
			if !yield(st) {
				return
			}
		}
		if s.inProgress != nil {
			yield(*s.inProgress)
		}
	}
}
