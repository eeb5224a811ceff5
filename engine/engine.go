// Package engine implements the fuzzy text-matching engine: prefix
// indexing of a training corpus, typo correction of noisy input tokens,
// and ranking of the source strings a set of tokens most likely refers to.
//
// One Engine composes the three layers over a single ports.Storage. Every
// read goes through the adapter; nothing is cached across calls, and the
// only invalidation is an explicit Reset.
package engine

import (
	"fmt"
	"strings"

	"github.com/slobdell/finisher/ports"
)

// Options configures an Engine. The zero value is not usable; start from
// DefaultOptions.
type Options struct {
	// MinGramSize is the shortest prefix length indexed per token. Tokens
	// shorter than this are indexed under themselves.
	MinGramSize int

	// TypoDeviations is the number of edit-distance rounds CorrectToken may
	// expand a candidate frontier through. Cost grows exponentially with
	// each round.
	TypoDeviations int

	// MinResults is the number of guesses returned when too few candidates
	// clear ScoreThreshold, padded from the score-sorted list.
	MinResults int

	// MaxResults caps the number of guesses returned.
	MaxResults int

	// ScoreThreshold is the minimum aggregated score a guess needs to count
	// toward the MinResults cutoff.
	ScoreThreshold float64
}

// DefaultOptions returns the standard engine configuration.
func DefaultOptions() Options {
	return Options{
		MinGramSize:    1,
		TypoDeviations: 2,
		MinResults:     5,
		MaxResults:     10,
		ScoreThreshold: 0.2,
	}
}

func (o Options) validate() error {
	switch {
	case o.MinGramSize < 1:
		return fmt.Errorf("%w: min gram size %d, must be >= 1", ports.ErrInvalidArgument, o.MinGramSize)
	case o.TypoDeviations < 1:
		return fmt.Errorf("%w: typo deviations %d, must be >= 1", ports.ErrInvalidArgument, o.TypoDeviations)
	case o.MinResults < 1:
		return fmt.Errorf("%w: min results %d, must be >= 1", ports.ErrInvalidArgument, o.MinResults)
	case o.MaxResults < o.MinResults:
		return fmt.Errorf("%w: max results %d below min results %d", ports.ErrInvalidArgument, o.MaxResults, o.MinResults)
	case o.ScoreThreshold < 0 || o.ScoreThreshold > 1:
		return fmt.Errorf("%w: score threshold %v outside [0, 1]", ports.ErrInvalidArgument, o.ScoreThreshold)
	}
	return nil
}

// Engine is the trained model's query surface. All operations are
// synchronous and run to completion; reads are safe to invoke concurrently
// with each other.
type Engine struct {
	store ports.Storage
	opts  Options
}

// New creates an Engine with DefaultOptions.
func New(store ports.Storage) (*Engine, error) {
	return NewWithOptions(store, DefaultOptions())
}

// NewWithOptions creates an Engine with explicit options.
func NewWithOptions(store ports.Storage, opts Options) (*Engine, error) {
	if store == nil {
		return nil, fmt.Errorf("%w: nil storage", ports.ErrInvalidArgument)
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}
	return &Engine{store: store, opts: opts}, nil
}

// TokensForPrefix returns the vocabulary tokens indexed under the given
// prefix. The prefix is lowercased before lookup. A prefix with no matches
// yields an empty result; querying before any training is an error.
func (e *Engine) TokensForPrefix(prefix string) ([]string, error) {
	tokens, _, err := e.store.PrefixTokens().Get(strings.ToLower(prefix))
	if err != nil {
		return nil, fmt.Errorf("prefix index: %w", err)
	}
	return tokens, nil
}

// StringsForToken returns the lowercased source strings the given token was
// extracted from.
func (e *Engine) StringsForToken(token string) ([]string, error) {
	strs, _, err := e.store.TokenStrings().Get(strings.ToLower(token))
	if err != nil {
		return nil, fmt.Errorf("string index: %w", err)
	}
	return strs, nil
}

// Reset clears all three indices unconditionally. Subsequent queries fail
// with ports.ErrTrainingRequired until the engine is trained again.
func (e *Engine) Reset() error {
	if err := e.store.PrefixTokens().Clear(); err != nil {
		return fmt.Errorf("clear prefix index: %w", err)
	}
	if err := e.store.TokenStrings().Clear(); err != nil {
		return fmt.Errorf("clear string index: %w", err)
	}
	if err := e.store.TokenCounts().Clear(); err != nil {
		return fmt.Errorf("clear frequency index: %w", err)
	}
	return nil
}
