package search

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnrecognized is returned when input matches no grammar.
	ErrUnrecognized = errors.New("unsupported search query")
	// ErrNormalizationFailed is returned when a grammar matched but could not
	// produce a canonical value. It indicates a defect in the grammar.
	ErrNormalizationFailed = errors.New("search query normalization failed")
)

// Classify trims raw and returns the query of the first grammar that matches it.
func Classify(raw string) (Query, error) {
	input := strings.TrimSpace(raw)
	if input == "" {
		return nil, ErrUnrecognized
	}

	for _, grammar := range Grammars {
		if !grammar.Matches(input) {
			continue
		}
		return normalizeWith(grammar, input)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnrecognized, input)
}

// ClassifyAs classifies raw against the grammar of a single kind.
func ClassifyAs(raw string, kind Kind) (Query, error) {
	input := strings.TrimSpace(raw)
	grammar, ok := grammarFor(kind)
	if !ok {
		return nil, fmt.Errorf("%w: unknown query kind %q", ErrNormalizationFailed, kind)
	}
	if input == "" || !grammar.Matches(input) {
		return nil, fmt.Errorf("%w: %q is not a valid %s", ErrUnrecognized, input, kind)
	}
	return normalizeWith(grammar, input)
}

// Matching returns the kinds of every grammar that accepts the trimmed input.
// A well-formed grammar set never returns more than one kind.
func Matching(raw string) []Kind {
	input := strings.TrimSpace(raw)
	var kinds []Kind
	for _, grammar := range Grammars {
		if grammar.Matches(input) {
			kinds = append(kinds, grammar.Kind)
		}
	}
	return kinds
}

func normalizeWith(grammar Grammar, input string) (Query, error) {
	query, err := grammar.Normalize(input)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrNormalizationFailed, grammar.Kind, err)
	}
	if query == nil || query.Kind() != grammar.Kind {
		return nil, fmt.Errorf("%w: %s grammar produced a mismatched query", ErrNormalizationFailed, grammar.Kind)
	}
	return query, nil
}

func grammarFor(kind Kind) (Grammar, bool) {
	for _, grammar := range Grammars {
		if grammar.Kind == kind {
			return grammar, true
		}
	}
	return Grammar{}, false
}
