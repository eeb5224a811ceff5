package engine

import (
	"sort"
	"strings"
)

const alphabet = "abcdefghijklmnopqrstuvwxyz"

// CorrectToken resolves a noisy input token to a vocabulary token. The
// input is lowercased; a token that is already a known prefix, or already
// has a nonzero frequency, comes back unchanged. Otherwise edit-distance-1
// candidates are tried, then the frontier is widened one edit at a time up
// to the configured deviation count, and the highest-frequency known
// candidate wins. A token with no known candidate is returned as-is.
func (e *Engine) CorrectToken(token string) (string, error) {
	token = strings.ToLower(token)

	_, known, err := e.store.PrefixTokens().Get(token)
	if err != nil {
		return "", err
	}
	if known {
		return token, nil
	}

	count, err := e.store.TokenCounts().Get(token, 0)
	if err != nil {
		return "", err
	}
	if count > 0 {
		return token, nil
	}

	frontier := possibleTypos(token)
	best, found, err := e.bestKnown(frontier)
	if err != nil {
		return "", err
	}
	if found {
		return best, nil
	}

	// Widen the search one edit per round, keeping every candidate seen.
	all := make(map[string]struct{}, len(frontier))
	for cand := range frontier {
		all[cand] = struct{}{}
	}
	for round := 1; round < e.opts.TypoDeviations; round++ {
		next := make(map[string]struct{})
		for cand := range frontier {
			for typo := range possibleTypos(cand) {
				next[typo] = struct{}{}
			}
		}
		for typo := range next {
			all[typo] = struct{}{}
		}
		frontier = next
	}
	best, found, err = e.bestKnown(all)
	if err != nil {
		return "", err
	}
	if found {
		return best, nil
	}
	return token, nil
}

// CorrectPhrase splits the text on whitespace and corrects each token
// independently; no cross-token context is used.
func (e *Engine) CorrectPhrase(text string) ([]string, error) {
	fields := strings.Fields(text)
	corrected := make([]string, 0, len(fields))
	for _, token := range fields {
		fixed, err := e.CorrectToken(token)
		if err != nil {
			return nil, err
		}
		corrected = append(corrected, fixed)
	}
	return corrected, nil
}

// bestKnown returns the candidate with the highest nonzero frequency.
// Candidates are scanned in sorted order so ties resolve to the
// lexicographically smallest, keeping corrections stable run to run.
func (e *Engine) bestKnown(candidates map[string]struct{}) (string, bool, error) {
	keys := make([]string, 0, len(candidates))
	for cand := range candidates {
		keys = append(keys, cand)
	}
	sort.Strings(keys)

	counts, err := e.store.TokenCounts().GetMany(keys, 0)
	if err != nil {
		return "", false, err
	}
	best, bestCount := "", 0
	for _, cand := range keys {
		if counts[cand] > bestCount {
			best, bestCount = cand, counts[cand]
		}
	}
	return best, bestCount > 0, nil
}

// possibleTypos generates every string at edit distance 1 from word:
// single-character deletions, adjacent transpositions, substitutions, and
// insertions over a 26-letter alphabet. A word of length n yields on the
// order of 26n candidates.
func possibleTypos(word string) map[string]struct{} {
	typos := make(map[string]struct{}, 26*(2*len(word)+1))
	for i := 0; i <= len(word); i++ {
		head, tail := word[:i], word[i:]
		if len(tail) > 0 {
			typos[head+tail[1:]] = struct{}{}
		}
		if len(tail) > 1 {
			typos[head+string(tail[1])+string(tail[0])+tail[2:]] = struct{}{}
		}
		for j := 0; j < len(alphabet); j++ {
			c := string(alphabet[j])
			if len(tail) > 0 {
				typos[head+c+tail[1:]] = struct{}{}
			}
			typos[head+c+tail] = struct{}{}
		}
	}
	return typos
}
