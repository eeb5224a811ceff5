package engine

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/charmbracelet/log"
)

// alphaRe extracts letters-only words for frequency counting. Tokens with
// embedded digits are deliberately excluded from the frequency index so a
// numeric token never acquires a typo correction.
var alphaRe = regexp.MustCompile(`[a-z]+`)

// Train indexes the given strings into all three collections: every token
// under each of its prefixes, every token to its lowercased source string,
// and every letters-only word to its occurrence count. Training merges into
// the existing model; it never overwrites, so a corpus can be fed
// incrementally. Counts are additive by design: re-training the same string
// counts its words again.
//
// The batch is built locally and committed through the adapter at the end,
// so a failure before commit leaves no partial state.
func (e *Engine) Train(inputs []string) error {
	prefixTokens := make(map[string]map[string]struct{})
	tokenStrings := make(map[string]map[string]struct{})
	counts := make(map[string]int)

	for _, input := range inputs {
		lower := strings.ToLower(input)
		for _, token := range strings.Fields(normalize(input)) {
			addMember(tokenStrings, token, lower)
			if len(token) < e.opts.MinGramSize {
				addMember(prefixTokens, token, token)
			}
			for size := e.opts.MinGramSize; size <= len(token); size++ {
				addMember(prefixTokens, token[:size], token)
			}
		}
		for _, word := range alphaRe.FindAllString(lower, -1) {
			counts[word]++
		}
	}

	if err := e.store.PrefixTokens().Merge(flatten(prefixTokens)); err != nil {
		return fmt.Errorf("merge prefix index: %w", err)
	}
	if err := e.store.TokenStrings().Merge(flatten(tokenStrings)); err != nil {
		return fmt.Errorf("merge string index: %w", err)
	}
	if err := e.store.TokenCounts().Merge(counts); err != nil {
		return fmt.Errorf("merge frequency index: %w", err)
	}

	log.Debugf("trained %d strings: %d prefixes, %d tokens, %d counted words",
		len(inputs), len(prefixTokens), len(tokenStrings), len(counts))
	return nil
}

// normalize lowercases the input and strips every rune that is not a letter,
// digit, or space.
func normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if r == ' ' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func addMember(sets map[string]map[string]struct{}, key, member string) {
	set, ok := sets[key]
	if !ok {
		set = make(map[string]struct{})
		sets[key] = set
	}
	set[member] = struct{}{}
}

// flatten converts the batch sets into the port's merge shape, with members
// sorted for deterministic adapter contents.
func flatten(sets map[string]map[string]struct{}) map[string][]string {
	out := make(map[string][]string, len(sets))
	for key, members := range sets {
		values := make([]string, 0, len(members))
		for m := range members {
			values = append(values, m)
		}
		sort.Strings(values)
		out[key] = values
	}
	return out
}
