package sql

// Single is the result of a single-row lookup. It distinguishes "no row
// matched" from "a row matched" without resorting to pointers or
// sentinel errors at the lookup site; the zero Single reports no result.
type Single[E any] struct {
	value E
	found bool
}

// NewSingle returns a Single holding v.
func NewSingle[E any](v E) Single[E] {
	return Single[E]{value: v, found: true}
}

// Found reports whether a row matched.
func (s Single[E]) Found() bool { return s.found }

// Value returns the matched entity and whether one was found. When no
// row matched, the entity is the zero value of E.
func (s Single[E]) Value() (E, bool) {
	return s.value, s.found
}

// OrErr returns the matched entity, or ErrNotFound when no row matched.
func (s Single[E]) OrErr() (E, error) {
	if !s.found {
		return s.value, ErrNotFound
	}
	return s.value, nil
}
