package search

import "sort"

// MaxResultDocumentCount caps the number of documents FindTopDocuments ever
// returns.
const MaxResultDocumentCount = 5

// CompareTolerance is the relevance-difference threshold below which two
// results are considered tied and broken by descending rating instead.
const CompareTolerance = 1e-6

// ActualOnly is the default predicate used by the status-less
// FindTopDocuments overloads: only ACTUAL documents match.
func ActualOnly(_ int, status Status, _ int) bool {
	return status == Actual
}

func statusPredicate(want Status) Predicate {
	return func(_ int, status Status, _ int) bool {
		return status == want
	}
}

// FindTopDocuments runs the sequential scorer with the default ACTUAL
// predicate.
func (s *Server) FindTopDocuments(query string) ([]Document, error) {
	return s.FindTopDocumentsPolicy(Sequential, query, ActualOnly)
}

// FindTopDocumentsStatus runs the sequential scorer restricted to the given
// status.
func (s *Server) FindTopDocumentsStatus(query string, status Status) ([]Document, error) {
	return s.FindTopDocumentsPolicy(Sequential, query, statusPredicate(status))
}

// FindTopDocumentsFunc runs the sequential scorer with a caller-supplied
// predicate.
func (s *Server) FindTopDocumentsFunc(query string, pred Predicate) ([]Document, error) {
	return s.FindTopDocumentsPolicy(Sequential, query, pred)
}

// FindTopDocumentsPolicyStatus runs the scorer under policy restricted to
// the given status.
func (s *Server) FindTopDocumentsPolicyStatus(policy Policy, query string, status Status) ([]Document, error) {
	return s.FindTopDocumentsPolicy(policy, query, statusPredicate(status))
}

// FindTopDocumentsPolicy runs the scorer under policy with a caller-supplied
// predicate, returning up to MaxResultDocumentCount documents sorted
// descending by relevance, ties (within CompareTolerance) broken by
// descending rating, then ascending id. Sequential and Parallel return the same documents
// in the same order for the same index state and inputs.
func (s *Server) FindTopDocumentsPolicy(policy Policy, query string, pred Predicate) ([]Document, error) {
	q, err := s.parseQuerySorted(query)
	if err != nil {
		return nil, err
	}

	var rel map[int]float64
	if policy == Parallel {
		rel = s.findAllDocumentsParallel(q, pred)
	} else {
		rel = s.findAllDocumentsSequential(q, pred)
	}

	results := make([]Document, 0, len(rel))
	for id, relevance := range rel {
		results = append(results, Document{ID: id, Relevance: relevance, Rating: s.docs[id].rating})
	}

	sort.Slice(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if diff := a.Relevance - b.Relevance; diff > CompareTolerance || diff < -CompareTolerance {
			return a.Relevance > b.Relevance
		}
		if a.Rating != b.Rating {
			return a.Rating > b.Rating
		}
		return a.ID < b.ID
	})

	if len(results) > MaxResultDocumentCount {
		results = results[:MaxResultDocumentCount]
	}
	return results, nil
}

// findAllDocumentsSequential accumulates relevance with an ordinary map.
// It always operates on the sorted (deduplicated) query form: processing a
// query term's postings exactly once per distinct word is what keeps this
// path bit-identical to the parallel path for queries with repeated terms.
func (s *Server) findAllDocumentsSequential(q parsedQuery, pred Predicate) map[int]float64 {
	rel := make(map[int]float64)
	for _, word := range q.plusWords {
		postings, ok := s.inverted[word]
		if !ok {
			continue
		}
		idf := s.computeIDF(word)
		for id, tf := range postings {
			meta := s.docs[id]
			if pred(id, meta.status, meta.rating) {
				rel[id] += tf * idf
			}
		}
	}
	for _, word := range q.minusWords {
		postings, ok := s.inverted[word]
		if !ok {
			continue
		}
		for id := range postings {
			delete(rel, id)
		}
	}
	return rel
}

// findAllDocumentsParallel dispatches the plus-word phase across a worker
// pool, each worker accumulating into the sharded aggregator under that
// shard's lock, then evicts minus-word hits the same way, then merges. The
// minus-word phase only starts after every plus-word worker has returned —
// eviction only commutes with the additive phase if it strictly follows it
// (spec §4.7, §4.9).
func (s *Server) findAllDocumentsParallel(q parsedQuery, pred Predicate) map[int]float64 {
	agg := newShardedRelevanceMap(s.shardCount)

	parallelForEach(q.plusWords, func(word string) {
		postings, ok := s.inverted[word]
		if !ok {
			return
		}
		idf := s.computeIDF(word)
		for id, tf := range postings {
			meta := s.docs[id]
			if pred(id, meta.status, meta.rating) {
				agg.add(id, tf*idf)
			}
		}
	})

	parallelForEach(q.minusWords, func(word string) {
		postings, ok := s.inverted[word]
		if !ok {
			return
		}
		for id := range postings {
			agg.erase(id)
		}
	})

	return agg.merge()
}
