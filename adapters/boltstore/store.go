// Package boltstore implements ports.Storage using bbolt (embedded B+
// tree). Each collection gets its own top-level bucket, created by the
// first Merge and dropped wholesale by Clear, so bucket existence is the
// populated marker. Values are msgpack-encoded. Writes are transactional —
// a crash mid-write cannot corrupt previously committed data.
package boltstore

import (
	"fmt"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"github.com/slobdell/finisher/ports"
	"github.com/vmihailenco/msgpack/v5"
	bolt "go.etcd.io/bbolt"
)

// Bucket names, one per collection.
var (
	bucketPrefixTokens = []byte("prefix_tokens")
	bucketTokenStrings = []byte("token_strings")
	bucketTokenCounts  = []byte("token_counts")
)

// Store implements ports.Storage backed by bbolt.
type Store struct {
	db *bolt.DB
}

// NewStore opens (or creates) a bbolt database at the given path.
func NewStore(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("bbolt open: %w", err)
	}
	log.Debugf("opened bolt store at %s", path)
	return &Store{db: db}, nil
}

// Close closes the underlying bbolt database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) PrefixTokens() ports.SetStore {
	return &setBucket{db: s.db, name: bucketPrefixTokens}
}

func (s *Store) TokenStrings() ports.SetStore {
	return &setBucket{db: s.db, name: bucketTokenStrings}
}

func (s *Store) TokenCounts() ports.CountStore {
	return &countBucket{db: s.db, name: bucketTokenCounts}
}

// setBucket is a set-valued collection. Values are msgpack-encoded sorted
// string slices.
type setBucket struct {
	db   *bolt.DB
	name []byte
}

func (b *setBucket) All() (map[string][]string, error) {
	out := make(map[string][]string)
	err := b.db.View(func(tx *bolt.Tx) error {
		bk := tx.Bucket(b.name)
		if bk == nil {
			return ports.ErrTrainingRequired
		}
		return bk.ForEach(func(k, v []byte) error {
			var members []string
			if err := msgpack.Unmarshal(v, &members); err != nil {
				return fmt.Errorf("decode %s/%q: %w", b.name, k, err)
			}
			out[string(k)] = members
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (b *setBucket) Get(key string) ([]string, bool, error) {
	var members []string
	found := false
	err := b.db.View(func(tx *bolt.Tx) error {
		bk := tx.Bucket(b.name)
		if bk == nil {
			return ports.ErrTrainingRequired
		}
		v := bk.Get([]byte(key))
		if v == nil {
			return nil
		}
		found = true
		if err := msgpack.Unmarshal(v, &members); err != nil {
			return fmt.Errorf("decode %s/%q: %w", b.name, key, err)
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return members, found, nil
}

func (b *setBucket) Merge(updates map[string][]string) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		bk, err := tx.CreateBucketIfNotExists(b.name)
		if err != nil {
			return err
		}
		for key, values := range updates {
			members := make(map[string]struct{}, len(values))
			if v := bk.Get([]byte(key)); v != nil {
				var existing []string
				if err := msgpack.Unmarshal(v, &existing); err != nil {
					return fmt.Errorf("decode %s/%q: %w", b.name, key, err)
				}
				for _, m := range existing {
					members[m] = struct{}{}
				}
			}
			for _, m := range values {
				members[m] = struct{}{}
			}
			merged := make([]string, 0, len(members))
			for m := range members {
				merged = append(merged, m)
			}
			sort.Strings(merged)
			data, err := msgpack.Marshal(merged)
			if err != nil {
				return fmt.Errorf("encode %s/%q: %w", b.name, key, err)
			}
			if err := bk.Put([]byte(key), data); err != nil {
				return err
			}
		}
		return nil
	})
}

func (b *setBucket) Clear() error {
	return clearBucket(b.db, b.name)
}

// countBucket is a count-valued collection. Values are msgpack-encoded
// int64s.
type countBucket struct {
	db   *bolt.DB
	name []byte
}

func (b *countBucket) All() (map[string]int, error) {
	out := make(map[string]int)
	err := b.db.View(func(tx *bolt.Tx) error {
		bk := tx.Bucket(b.name)
		if bk == nil {
			return ports.ErrTrainingRequired
		}
		return bk.ForEach(func(k, v []byte) error {
			count, err := decodeCount(v)
			if err != nil {
				return fmt.Errorf("decode %s/%q: %w", b.name, k, err)
			}
			out[string(k)] = count
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (b *countBucket) Get(key string, def int) (int, error) {
	count := def
	err := b.db.View(func(tx *bolt.Tx) error {
		bk := tx.Bucket(b.name)
		if bk == nil {
			return ports.ErrTrainingRequired
		}
		v := bk.Get([]byte(key))
		if v == nil {
			return nil
		}
		decoded, err := decodeCount(v)
		if err != nil {
			return fmt.Errorf("decode %s/%q: %w", b.name, key, err)
		}
		count = decoded
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (b *countBucket) GetMany(keys []string, def int) (map[string]int, error) {
	out := make(map[string]int, len(keys))
	err := b.db.View(func(tx *bolt.Tx) error {
		bk := tx.Bucket(b.name)
		if bk == nil {
			return ports.ErrTrainingRequired
		}
		for _, key := range keys {
			v := bk.Get([]byte(key))
			if v == nil {
				out[key] = def
				continue
			}
			decoded, err := decodeCount(v)
			if err != nil {
				return fmt.Errorf("decode %s/%q: %w", b.name, key, err)
			}
			out[key] = decoded
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (b *countBucket) Merge(updates map[string]int) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		bk, err := tx.CreateBucketIfNotExists(b.name)
		if err != nil {
			return err
		}
		for key, count := range updates {
			total := count
			if v := bk.Get([]byte(key)); v != nil {
				existing, err := decodeCount(v)
				if err != nil {
					return fmt.Errorf("decode %s/%q: %w", b.name, key, err)
				}
				total += existing
			}
			data, err := msgpack.Marshal(int64(total))
			if err != nil {
				return fmt.Errorf("encode %s/%q: %w", b.name, key, err)
			}
			if err := bk.Put([]byte(key), data); err != nil {
				return err
			}
		}
		return nil
	})
}

func (b *countBucket) Clear() error {
	return clearBucket(b.db, b.name)
}

// clearBucket drops the collection's bucket, returning it to the
// unpopulated state. Idempotent: clearing an unpopulated collection is not
// an error.
func clearBucket(db *bolt.DB, name []byte) error {
	return db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(name); err == bolt.ErrBucketNotFound {
			return nil
		} else {
			return err
		}
	})
}

func decodeCount(v []byte) (int, error) {
	var count int64
	if err := msgpack.Unmarshal(v, &count); err != nil {
		return 0, err
	}
	return int(count), nil
}
