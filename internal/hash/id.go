// Package hash provides the fast, non-cryptographic hash used to bucket
// leaf identifiers before an exact comparison.
package hash

import "github.com/cespare/xxhash/v2"

// ID returns the 64-bit xxHash of a leaf identifier.
func ID(id string) uint64 {
	return xxhash.Sum64String(id)
}
