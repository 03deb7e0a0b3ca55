package search

import (
	"fmt"
	"sort"
	"strings"
)

// parsedQuery holds the plus-words (required) and minus-words (excluded)
// of a parsed query. Sorted queries carry deduplicated, ascending-sorted
// slices (used by both scorer policies and the sequential matcher, where
// set semantics are wanted); raw queries may carry duplicates (used only
// by the parallel matcher, whose final sort+dedup of matched words
// absorbs any duplicate terms).
type parsedQuery struct {
	plusWords  []string
	minusWords []string
}

// parseQueryTerm splits a single query token into its bare word and
// plus/minus sense, validating "-" syntax and character content. stop
// reports whether the bare word is a stop-word (such terms are dropped
// entirely, neither plus nor minus).
func (s *Server) parseQueryTerm(token string) (word string, isMinus bool, stop bool, err error) {
	if strings.HasPrefix(token, "-") {
		isMinus = true
		if len(token) == 1 || token[1] == '-' {
			return "", false, false, fmt.Errorf("query contains invalid request %q: %w", token, ErrInvalidArgument)
		}
		token = token[1:]
	}
	if !isValidText(token) {
		return "", false, false, fmt.Errorf("query contains symbols that are not allowed: %w", ErrInvalidArgument)
	}
	return token, isMinus, s.isStopWord(token), nil
}

// parseQuerySorted parses raw into a sorted, deduplicated plus/minus query,
// used by both scorer policies and the sequential matcher.
func (s *Server) parseQuerySorted(raw string) (parsedQuery, error) {
	plusSet := make(map[string]struct{})
	minusSet := make(map[string]struct{})
	for _, token := range splitWords(raw) {
		word, isMinus, stop, err := s.parseQueryTerm(token)
		if err != nil {
			return parsedQuery{}, err
		}
		if stop {
			continue
		}
		if isMinus {
			minusSet[word] = struct{}{}
		} else {
			plusSet[word] = struct{}{}
		}
	}
	return parsedQuery{
		plusWords:  sortedKeys(plusSet),
		minusWords: sortedKeys(minusSet),
	}, nil
}

// parseQueryRaw parses raw into a plus/minus query that may contain
// duplicate terms, used by the parallel matcher (matchParallel): its final
// sort+dedup of the matched-word list absorbs any duplicates, so the
// parse itself doesn't need to deduplicate. The parallel scorer does not
// use this form — see findAllDocumentsSequential's comment.
func (s *Server) parseQueryRaw(raw string) (parsedQuery, error) {
	var q parsedQuery
	for _, token := range splitWords(raw) {
		word, isMinus, stop, err := s.parseQueryTerm(token)
		if err != nil {
			return parsedQuery{}, err
		}
		if stop {
			continue
		}
		if isMinus {
			q.minusWords = append(q.minusWords, word)
		} else {
			q.plusWords = append(q.plusWords, word)
		}
	}
	return q, nil
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
