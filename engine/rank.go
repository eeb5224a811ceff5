package engine

import (
	"sort"
	"strings"
)

// rankedString pairs a candidate source string with its aggregated score.
type rankedString struct {
	text  string
	score float64
}

// GuessFullStrings ranks the trained source strings the given tokens most
// likely refer to, best first.
//
// Each input token is expanded to the vocabulary tokens it is a prefix of.
// Every (vocabulary token, source string) pair contributes a coverage score
// of token length over the string's length with spaces removed; per-string
// scores are summed and weighted by the fraction of contributions relative
// to the input token count, so strings covered by only some of the input
// rank below fully covered ones.
//
// An empty token list yields no result. Tokens with no prefix match in the
// vocabulary contribute nothing.
func (e *Engine) GuessFullStrings(tokens []string) ([]string, error) {
	if len(tokens) == 0 {
		return nil, nil
	}

	vocab, err := e.resolveVocabulary(tokens)
	if err != nil {
		return nil, err
	}

	scores := make(map[string]float64)
	contributions := make(map[string]int)
	for _, token := range vocab {
		fullStrings, _, err := e.store.TokenStrings().Get(token)
		if err != nil {
			return nil, err
		}
		for _, full := range fullStrings {
			flatLen := len(full) - strings.Count(full, " ")
			scores[full] += float64(len(token)) / float64(flatLen)
			contributions[full]++
		}
	}

	ranked := make([]rankedString, 0, len(scores))
	for full, score := range scores {
		completeness := float64(contributions[full]) / float64(len(tokens))
		ranked = append(ranked, rankedString{text: full, score: score * completeness})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].text < ranked[j].text
	})

	return e.filterRanked(ranked), nil
}

// resolveVocabulary returns the union of vocabulary tokens reachable as a
// prefix match from any input token, sorted for deterministic scoring.
func (e *Engine) resolveVocabulary(tokens []string) ([]string, error) {
	seen := make(map[string]struct{})
	for _, token := range tokens {
		matches, _, err := e.store.PrefixTokens().Get(token)
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			seen[m] = struct{}{}
		}
	}
	vocab := make([]string, 0, len(seen))
	for token := range seen {
		vocab = append(vocab, token)
	}
	sort.Strings(vocab)
	return vocab, nil
}

// filterRanked applies the result-selection rules to the score-sorted list.
// When the top entry is an exact full-coverage match (score 1.0), shorter
// candidates are dropped so a sub-phrase never outranks the fuller phrase
// that subsumes it. Entries at or above the score threshold are preferred;
// when too few clear it, the result is padded from the unfiltered
// score-sorted list up to the minimum result count.
func (e *Engine) filterRanked(ranked []rankedString) []string {
	fallback := ranked
	if len(fallback) > e.opts.MaxResults {
		fallback = fallback[:e.opts.MaxResults]
	}

	filtered := ranked
	if len(ranked) > 0 && ranked[0].score == 1.0 {
		minLen := len(ranked[0].text)
		filtered = make([]rankedString, 0, len(ranked))
		for _, r := range ranked {
			if len(r.text) >= minLen {
				filtered = append(filtered, r)
			}
		}
	}

	var withinThreshold []rankedString
	for _, r := range filtered {
		if r.score >= e.opts.ScoreThreshold {
			withinThreshold = append(withinThreshold, r)
		}
	}

	var selected []rankedString
	if len(withinThreshold) > e.opts.MinResults {
		selected = withinThreshold
		if len(selected) > e.opts.MaxResults {
			selected = selected[:e.opts.MaxResults]
		}
	} else {
		selected = fallback
		if len(selected) > e.opts.MinResults {
			selected = selected[:e.opts.MinResults]
		}
	}

	texts := make([]string, len(selected))
	for i, r := range selected {
		texts[i] = r.text
	}
	return texts
}
