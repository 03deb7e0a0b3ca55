package search

import (
	"fmt"
	"math"
	"sort"
)

// Policy selects how an operation (FindTopDocuments, Match,
// RemoveDocument) fans work out across goroutines. Both policies are
// required to return bit-identical results for the same index state and
// inputs (spec §5, §8) — Policy only changes how the answer is computed,
// never what it is.
type Policy int

const (
	// Sequential runs the operation on the calling goroutine with an
	// ordinary single-threaded map.
	Sequential Policy = iota
	// Parallel fans the operation out across a worker pool, accumulating
	// into the sharded concurrent aggregator.
	Parallel
)

// Predicate decides whether a document qualifies for inclusion in a
// FindTopDocuments result, given its id, status, and rating.
type Predicate func(id int, status Status, rating int) bool

// Server is the posting index: the forward and inverted TF maps, the
// document metadata table, the stop-word set, and the string arena that
// owns every indexed word. A Server is a single-writer, multi-reader
// structure (spec §5): callers must not overlap AddDocument, RemoveDocument,
// or RemoveDuplicates with any concurrent call, read or write.
type Server struct {
	stopWords map[string]struct{}
	arena     *arena

	// inverted[word][docID] = tf(word, doc)
	inverted map[string]map[int]float64
	// forward[docID][word] = tf(word, doc)
	forward map[int]map[string]float64
	// docs[docID] = metadata recorded at AddDocument time
	docs map[int]docMeta
	// liveIDs is kept sorted ascending; it is both the existence check
	// and the iteration order (spec §3: "ordered set of live document ids").
	liveIDs []int

	shardCount int
}

// New constructs a Server whose stop-words are the space-separated tokens
// of stopWordsText. Every resulting word must be non-empty (empty tokens
// are silently discarded, per spec §6) and satisfy isValidText; an invalid
// stop-word is a programmer error in the caller's configuration and is
// reported immediately rather than deferred to the first query.
func New(stopWordsText string) (*Server, error) {
	return NewFromWords(splitWords(stopWordsText))
}

// NewFromWords constructs a Server from an explicit sequence of stop-words,
// the same validation as New.
func NewFromWords(stopWords []string) (*Server, error) {
	s := &Server{
		stopWords:  make(map[string]struct{}),
		arena:      newArena(),
		inverted:   make(map[string]map[int]float64),
		forward:    make(map[int]map[string]float64),
		docs:       make(map[int]docMeta),
		shardCount: defaultShardCount(),
	}
	for _, w := range stopWords {
		if w == "" {
			continue
		}
		if !isValidText(w) {
			return nil, fmt.Errorf("invalid stop word %q: %w", w, ErrInvalidArgument)
		}
		s.stopWords[w] = struct{}{}
	}
	return s, nil
}

func (s *Server) isStopWord(word string) bool {
	_, ok := s.stopWords[word]
	return ok
}

// AddDocument indexes text under id with the given status and ratings.
// text must pass isValidText; id must be non-negative and not already
// present. An empty (or all-stop-word) text is accepted and contributes no
// postings — n is zero, so the 1/n term-frequency step is skipped entirely
// rather than dividing by zero.
func (s *Server) AddDocument(id int, text string, status Status, ratings []int) error {
	if id < 0 {
		return fmt.Errorf("negative id %d: %w", id, ErrInvalidArgument)
	}
	if _, exists := s.docs[id]; exists {
		return fmt.Errorf("id %d already exists: %w", id, ErrInvalidArgument)
	}
	if !isValidText(text) {
		return fmt.Errorf("document text contains symbols that are not allowed: %w", ErrInvalidArgument)
	}

	words := make([]string, 0, 8)
	for _, tok := range splitWords(text) {
		if s.isStopWord(tok) {
			continue
		}
		words = append(words, tok)
	}

	if n := len(words); n > 0 {
		invN := 1.0 / float64(n)
		fwd := make(map[string]float64, n)
		for _, w := range words {
			owned := s.arena.intern(w)
			fwd[owned] += invN
		}
		for word, tf := range fwd {
			inv := s.inverted[word]
			if inv == nil {
				inv = make(map[int]float64)
				s.inverted[word] = inv
			}
			inv[id] = tf
		}
		s.forward[id] = fwd
	}

	s.docs[id] = docMeta{rating: computeAverageRating(ratings), status: status}
	s.insertLiveID(id)
	return nil
}

func (s *Server) insertLiveID(id int) {
	i := sort.SearchInts(s.liveIDs, id)
	s.liveIDs = append(s.liveIDs, 0)
	copy(s.liveIDs[i+1:], s.liveIDs[i:])
	s.liveIDs[i] = id
}

func (s *Server) removeLiveID(id int) {
	i := sort.SearchInts(s.liveIDs, id)
	if i < len(s.liveIDs) && s.liveIDs[i] == id {
		s.liveIDs = append(s.liveIDs[:i], s.liveIDs[i+1:]...)
	}
}

// RemoveDocument removes id from the index, sequentially: from liveIDs,
// docs, forward, and every inverted entry that previously mapped id
// (dropping the word from inverted entirely if it becomes empty).
// Removing an unknown id is a no-op. The arena is never pruned.
func (s *Server) RemoveDocument(id int) {
	s.removeDocument(Sequential, id)
}

// RemoveDocumentPolicy removes id from the index, optionally parallelizing
// the per-word removal over id's forward entries (Parallel policy).
func (s *Server) RemoveDocumentPolicy(policy Policy, id int) {
	s.removeDocument(policy, id)
}

func (s *Server) removeDocument(policy Policy, id int) {
	if _, exists := s.docs[id]; !exists {
		return
	}
	fwd := s.forward[id]

	words := make([]string, 0, len(fwd))
	for w := range fwd {
		words = append(words, w)
	}

	// Each word's inner map is touched by exactly one goroutine, so the
	// delete(inv, id) below is safe to run concurrently. Pruning an
	// emptied word out of the shared top-level s.inverted map is not: two
	// words from the same document can empty out at once, and concurrent
	// writes to the same Go map are undefined behavior. That pruning is
	// done in a second, strictly sequential pass after the fan-out (and
	// its wg.Wait()) has fully returned.
	removeWord := func(w string) {
		inv := s.inverted[w]
		if inv == nil {
			return
		}
		delete(inv, id)
	}

	if policy == Parallel && len(words) > 0 {
		parallelForEach(words, removeWord)
	} else {
		for _, w := range words {
			removeWord(w)
		}
	}

	for _, w := range words {
		if inv := s.inverted[w]; len(inv) == 0 {
			delete(s.inverted, w)
		}
	}

	delete(s.forward, id)
	delete(s.docs, id)
	s.removeLiveID(id)
}

// GetWordFrequencies returns the word -> tf map recorded for id, or an
// empty map if id is unknown. The returned map is valid until the next
// mutation of the index and must not be modified by the caller.
func (s *Server) GetWordFrequencies(id int) map[string]float64 {
	if fwd, ok := s.forward[id]; ok {
		return fwd
	}
	return emptyWordFreqs
}

var emptyWordFreqs = map[string]float64{}

// GetDocumentCount returns the number of live documents.
func (s *Server) GetDocumentCount() int {
	return len(s.docs)
}

// IDs returns a snapshot of the live document ids in ascending order.
func (s *Server) IDs() []int {
	out := make([]int, len(s.liveIDs))
	copy(out, s.liveIDs)
	return out
}

func (s *Server) computeIDF(word string) float64 {
	df := len(s.inverted[word])
	return math.Log(float64(s.GetDocumentCount()) / float64(df))
}
