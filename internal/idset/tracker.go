// Package idset detects duplicate leaf identifiers during a dump.
//
// Leaves are bucketed by their xxHash64 ([hash.ID]) first, with an exact
// string compare only on a hash match — this follows the teacher's
// collision tracker (internal/collision.Tracker in mebo, which guards
// against hash collisions between distinct metric names) repointed at
// vach's leaf identifiers instead of metric names. Unlike mebo's tracker,
// every id that shares a bucket must be retained individually: vach's
// consequence for a match is an outright dump rejection, so a bucket can
// never simply be overwritten by the latest occupant without silently
// losing track of an earlier, still-live id.
package idset

import (
	"fmt"

	"github.com/corewald/vach/errs"
	"github.com/corewald/vach/internal/hash"
)

// Tracker records every leaf identifier added to an in-progress dump and
// reports whether a given identifier has already been seen.
type Tracker struct {
	buckets map[uint64][]string
	n       int
}

// NewTracker returns an empty Tracker sized for n expected leaves.
func NewTracker(n int) *Tracker {
	return &Tracker{buckets: make(map[uint64][]string, n)}
}

// Add records id, returning errs.ErrDuplicateLeafID if it was already
// present. A hash match with a different stored string is not treated as
// a collision-induced false positive: all ids sharing a bucket are kept,
// and each is compared by exact string value, so a genuine xxHash
// collision between distinct ids never masks a later true duplicate.
func (t *Tracker) Add(id string) error {
	h := hash.ID(id)

	for _, existing := range t.buckets[h] {
		if existing == id {
			return fmt.Errorf("%w: %q", errs.ErrDuplicateLeafID, id)
		}
	}

	t.buckets[h] = append(t.buckets[h], id)
	t.n++

	return nil
}

// Has reports whether id has already been recorded.
func (t *Tracker) Has(id string) bool {
	for _, existing := range t.buckets[hash.ID(id)] {
		if existing == id {
			return true
		}
	}

	return false
}

// Reset clears every recorded identifier, retaining the underlying map's
// allocated capacity.
func (t *Tracker) Reset() {
	for k := range t.buckets {
		delete(t.buckets, k)
	}
	t.n = 0
}

// Len reports how many identifiers are currently recorded.
func (t *Tracker) Len() int {
	return t.n
}
