package search

import "golang.org/x/sync/errgroup"

// ProcessQueries runs queries against server in parallel, one goroutine per
// query (each query is an independent unit of work), and returns the
// per-query result lists in input order. It propagates the first error any
// inner FindTopDocuments call returns, the same InvalidArgument kind
// FindTopDocuments itself raises.
func ProcessQueries(server *Server, queries []string) ([][]Document, error) {
	results := make([][]Document, len(queries))
	var g errgroup.Group
	for i, q := range queries {
		i, q := i, q
		g.Go(func() error {
			docs, err := server.FindTopDocuments(q)
			if err != nil {
				return err
			}
			results[i] = docs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// ProcessQueriesJoined is ProcessQueries with the per-query result lists
// concatenated in input order.
func ProcessQueriesJoined(server *Server, queries []string) ([]Document, error) {
	perQuery, err := ProcessQueries(server, queries)
	if err != nil {
		return nil, err
	}
	joined := make([]Document, 0, len(queries)*MaxResultDocumentCount)
	for _, docs := range perQuery {
		joined = append(joined, docs...)
	}
	return joined, nil
}
