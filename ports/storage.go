// Package ports defines the interfaces (contracts) that storage adapters
// must implement. The matching engine depends only on these interfaces,
// never on concrete implementations.
package ports

// Storage holds the three collections a trained model lives in. Adapters
// decide where the collections live (process memory, an embedded database);
// the engine treats them uniformly.
//
// The engine performs no locking across the collections. Concurrent Merge
// calls from multiple callers may interleave, leaving the collections
// briefly mutually inconsistent; readers may observe any prefix of an
// in-flight training pass. Adapters must keep each individual collection
// internally consistent.
type Storage interface {
	// PrefixTokens maps each indexed prefix to the vocabulary tokens that
	// start with it.
	PrefixTokens() SetStore

	// TokenStrings maps each vocabulary token to the lowercased source
	// strings it was extracted from.
	TokenStrings() SetStore

	// TokenCounts maps each alphabetic vocabulary token to its occurrence
	// count across all training calls.
	TokenCounts() CountStore
}

// SetStore is one named collection mapping a key to a set of strings.
//
// A collection starts unpopulated. The first Merge, even with an empty
// batch, marks it populated; Clear unmarks it. Reads against an unpopulated
// collection return ErrTrainingRequired — distinct from reads of a missing
// key, which succeed with an empty result.
type SetStore interface {
	// All returns every key with its full member set.
	All() (map[string][]string, error)

	// Get returns the member set for key. ok is false when the key has no
	// entry; the collection being unpopulated is an error, not a miss.
	Get(key string) (values []string, ok bool, err error)

	// Merge unions the given sets into the collection. Existing members are
	// kept; the collection never shrinks under Merge.
	Merge(updates map[string][]string) error

	// Clear removes every entry and returns the collection to the
	// unpopulated state.
	Clear() error
}

// CountStore is one named collection mapping a key to an integer count.
// Population semantics match SetStore.
type CountStore interface {
	// All returns every key with its count.
	All() (map[string]int, error)

	// Get returns the count for key, or def when the key has no entry.
	Get(key string, def int) (int, error)

	// GetMany returns a count for every requested key, substituting def for
	// keys with no entry. The result always has one entry per requested key.
	GetMany(keys []string, def int) (map[string]int, error)

	// Merge adds the given counts into the collection. Counts accumulate
	// across merges; training is additive by design.
	Merge(updates map[string]int) error

	// Clear removes every entry and returns the collection to the
	// unpopulated state.
	Clear() error
}
