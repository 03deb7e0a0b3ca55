package search

import (
	"log"
	"sort"
	"strings"
)

// RemoveDuplicates removes every document whose word set — the keys of its
// word-frequency map, term frequencies ignored — equals an earlier
// document's, iterating ids in ascending order so that the document with
// the smallest id in any duplicate group survives. It returns the removed
// ids in the order they were removed and logs a notice for each (mirroring
// the original's "Found duplicate document id N" console line, via the
// CLI's configured log.Logger rather than a bare print).
func RemoveDuplicates(s *Server) []int {
	seen := make(map[string]struct{})
	var toRemove []int

	for _, id := range s.IDs() {
		key := wordSetKey(s.GetWordFrequencies(id))
		if _, dup := seen[key]; dup {
			toRemove = append(toRemove, id)
			continue
		}
		seen[key] = struct{}{}
	}

	for _, id := range toRemove {
		s.RemoveDocument(id)
		log.Printf("Found duplicate document id %d", id)
	}
	return toRemove
}

// wordSetKey builds a stable identity for a document's word set (term
// frequencies ignored). Words can never contain a NUL byte (AddDocument
// rejects text with bytes below 32), so joining on "\x00" cannot collide
// two distinct word sets.
func wordSetKey(freqs map[string]float64) string {
	words := make([]string, 0, len(freqs))
	for w := range freqs {
		words = append(words, w)
	}
	sort.Strings(words)
	return strings.Join(words, "\x00")
}
