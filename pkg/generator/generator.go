// Package generator enumerates the strings accepted by an automaton.
//
// Enumeration is a breadth-first search over (state, string) configurations
// starting at (initial, ""). Breadth-first order yields accepted strings by
// non-decreasing symbol count; strings with the same count follow the
// alphabet order. The length bound counts characters of the joined string.
package generator

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/aretw0/dfa/pkg/automaton"
)

const (
	// DefaultLimit is the number of strings returned when the caller has no preference.
	DefaultLimit = 10
	// DefaultMaxLength bounds exploration when the caller has no preference.
	DefaultMaxLength = 20
)

// ErrInvalidBounds is returned for negative limit or max length.
var ErrInvalidBounds = errors.New("limit and max length must not be negative")

type config struct {
	state  string
	word   []string
	length int
}

// Generate returns at most limit accepted strings of at most maxLength characters,
// shortest first. Finding fewer than limit strings is not an error.
func Generate(a *automaton.Automaton, limit, maxLength int) ([]string, error) {
	words, err := GenerateWords(a, limit, maxLength)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = strings.Join(w, "")
	}
	return out, nil
}

// GenerateWords is like Generate but returns each accepted string as its symbol sequence.
func GenerateWords(a *automaton.Automaton, limit, maxLength int) ([][]string, error) {
	if limit < 0 || maxLength < 0 {
		return nil, ErrInvalidBounds
	}
	if violations := a.Violations(); len(violations) > 0 {
		return nil, &automaton.StructuralError{Violations: violations}
	}

	results := make([][]string, 0, min(limit, 64))
	if limit == 0 {
		return results, nil
	}

	alphabet := a.Alphabet()
	recorded := make(map[string]struct{})
	visited := make(map[[2]string]struct{})
	queue := []config{{state: a.Initial()}}

	for len(queue) > 0 && len(results) < limit {
		cur := queue[0]
		queue = queue[1:]

		str := strings.Join(cur.word, "")
		if a.IsFinal(cur.state) {
			if _, dup := recorded[str]; !dup {
				recorded[str] = struct{}{}
				results = append(results, cur.word)
				if len(results) >= limit {
					break
				}
			}
		}

		if cur.length >= maxLength {
			continue
		}
		for _, sym := range alphabet {
			length := cur.length + utf8.RuneCountInString(sym)
			if length > maxLength {
				continue
			}
			next, _ := a.Step(cur.state, sym)
			key := [2]string{next, str + sym}
			if _, seen := visited[key]; seen {
				continue
			}
			visited[key] = struct{}{}

			word := make([]string, len(cur.word)+1)
			copy(word, cur.word)
			word[len(cur.word)] = sym
			queue = append(queue, config{state: next, word: word, length: length})
		}
	}

	return results, nil
}
