// Package memory implements ports.Storage with process-lifetime patricia
// tries. Collections live only as long as the process; Clear swaps in a
// fresh trie. Keys are tokens and prefixes, which makes a radix trie the
// natural backing shape, and the per-collection RWMutex serializes writes
// so multiple callers can share one store.
package memory

import (
	"sort"
	"sync"

	"github.com/slobdell/finisher/ports"
	"github.com/tchap/go-patricia/v2/patricia"
)

// Store implements ports.Storage in process memory.
type Store struct {
	prefixTokens *setTrie
	tokenStrings *setTrie
	tokenCounts  *countTrie
}

// NewStore creates an empty in-memory store. All collections start
// unpopulated.
func NewStore() *Store {
	return &Store{
		prefixTokens: &setTrie{trie: patricia.NewTrie()},
		tokenStrings: &setTrie{trie: patricia.NewTrie()},
		tokenCounts:  &countTrie{trie: patricia.NewTrie()},
	}
}

func (s *Store) PrefixTokens() ports.SetStore  { return s.prefixTokens }
func (s *Store) TokenStrings() ports.SetStore  { return s.tokenStrings }
func (s *Store) TokenCounts() ports.CountStore { return s.tokenCounts }

// setTrie is a set-valued collection. Items are map[string]struct{}.
type setTrie struct {
	mu        sync.RWMutex
	trie      *patricia.Trie
	populated bool
}

func (t *setTrie) All() (map[string][]string, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if !t.populated {
		return nil, ports.ErrTrainingRequired
	}
	out := make(map[string][]string)
	_ = t.trie.Visit(func(p patricia.Prefix, item patricia.Item) error {
		out[string(p)] = sortedMembers(item.(map[string]struct{}))
		return nil
	})
	return out, nil
}

func (t *setTrie) Get(key string) ([]string, bool, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if !t.populated {
		return nil, false, ports.ErrTrainingRequired
	}
	item := t.trie.Get(patricia.Prefix(key))
	if item == nil {
		return nil, false, nil
	}
	return sortedMembers(item.(map[string]struct{})), true, nil
}

func (t *setTrie) Merge(updates map[string][]string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	for key, values := range updates {
		p := patricia.Prefix(key)
		var members map[string]struct{}
		if item := t.trie.Get(p); item != nil {
			members = item.(map[string]struct{})
		} else {
			members = make(map[string]struct{}, len(values))
			t.trie.Insert(p, members)
		}
		for _, v := range values {
			members[v] = struct{}{}
		}
	}
	t.populated = true
	return nil
}

func (t *setTrie) Clear() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.trie = patricia.NewTrie()
	t.populated = false
	return nil
}

// countTrie is a count-valued collection. Items are int.
type countTrie struct {
	mu        sync.RWMutex
	trie      *patricia.Trie
	populated bool
}

func (t *countTrie) All() (map[string]int, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if !t.populated {
		return nil, ports.ErrTrainingRequired
	}
	out := make(map[string]int)
	_ = t.trie.Visit(func(p patricia.Prefix, item patricia.Item) error {
		out[string(p)] = item.(int)
		return nil
	})
	return out, nil
}

func (t *countTrie) Get(key string, def int) (int, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if !t.populated {
		return 0, ports.ErrTrainingRequired
	}
	item := t.trie.Get(patricia.Prefix(key))
	if item == nil {
		return def, nil
	}
	return item.(int), nil
}

func (t *countTrie) GetMany(keys []string, def int) (map[string]int, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if !t.populated {
		return nil, ports.ErrTrainingRequired
	}
	out := make(map[string]int, len(keys))
	for _, key := range keys {
		if item := t.trie.Get(patricia.Prefix(key)); item != nil {
			out[key] = item.(int)
		} else {
			out[key] = def
		}
	}
	return out, nil
}

func (t *countTrie) Merge(updates map[string]int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	for key, count := range updates {
		p := patricia.Prefix(key)
		if item := t.trie.Get(p); item != nil {
			t.trie.Set(p, item.(int)+count)
		} else {
			t.trie.Insert(p, count)
		}
	}
	t.populated = true
	return nil
}

func (t *countTrie) Clear() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.trie = patricia.NewTrie()
	t.populated = false
	return nil
}

func sortedMembers(set map[string]struct{}) []string {
	members := make([]string, 0, len(set))
	for m := range set {
		members = append(members, m)
	}
	sort.Strings(members)
	return members
}
