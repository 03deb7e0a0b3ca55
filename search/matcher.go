package search

import (
	"fmt"
	"sort"
	"sync"
)

// Match reports which of query's plus-words are present in document id,
// sequentially. If any minus-word is present in the document, the match is
// vetoed and an empty word list is returned (with the document's status
// still reported). id must name a live document, or ErrOutOfRange is
// returned.
func (s *Server) Match(query string, id int) ([]string, Status, error) {
	return s.MatchPolicy(Sequential, query, id)
}

// MatchPolicy is Match with an explicit dispatch policy. Both policies
// return identical (words, status) pairs for the same inputs.
func (s *Server) MatchPolicy(policy Policy, query string, id int) ([]string, Status, error) {
	meta, ok := s.docs[id]
	if !ok {
		return nil, 0, fmt.Errorf("document id %d does not exist: %w", id, ErrOutOfRange)
	}
	fwd := s.forward[id]

	if policy == Parallel {
		return s.matchParallel(query, fwd, meta)
	}
	return s.matchSequential(query, fwd, meta)
}

func (s *Server) matchSequential(query string, fwd map[string]float64, meta docMeta) ([]string, Status, error) {
	q, err := s.parseQuerySorted(query)
	if err != nil {
		return nil, 0, err
	}

	for _, word := range q.minusWords {
		if _, present := fwd[word]; present {
			return []string{}, meta.status, nil
		}
	}

	matched := make([]string, 0, len(q.plusWords))
	for _, word := range q.plusWords {
		if _, present := fwd[word]; present {
			matched = append(matched, word)
		}
	}
	// q.plusWords is already sorted and deduplicated.
	return matched, meta.status, nil
}

func (s *Server) matchParallel(query string, fwd map[string]float64, meta docMeta) ([]string, Status, error) {
	q, err := s.parseQueryRaw(query)
	if err != nil {
		return nil, 0, err
	}

	anyMinus := parallelAny(q.minusWords, func(word string) bool {
		_, present := fwd[word]
		return present
	})
	if anyMinus {
		return []string{}, meta.status, nil
	}

	var mu sync.Mutex
	matched := make([]string, 0, len(q.plusWords))
	parallelForEach(q.plusWords, func(word string) {
		if _, present := fwd[word]; present {
			mu.Lock()
			matched = append(matched, word)
			mu.Unlock()
		}
	})

	sort.Strings(matched)
	matched = dedupSorted(matched)
	return matched, meta.status, nil
}

// dedupSorted removes adjacent duplicates in place from a sorted slice.
func dedupSorted(words []string) []string {
	if len(words) < 2 {
		return words
	}
	out := words[:1]
	for _, w := range words[1:] {
		if w != out[len(out)-1] {
			out = append(out, w)
		}
	}
	return out
}
