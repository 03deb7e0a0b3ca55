package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessQueriesMatchesSequentialPerQuery(t *testing.T) {
	s := seedServer(t)
	queries := []string{"curly dog", "nasty rat -not", "big dog", "no such word"}

	got, err := ProcessQueries(s, queries)
	require.NoError(t, err)
	require.Len(t, got, len(queries))

	for i, q := range queries {
		want, err := s.FindTopDocuments(q)
		require.NoError(t, err)
		assert.Equal(t, want, got[i], "query %q", q)
	}
}

func TestProcessQueriesPropagatesError(t *testing.T) {
	s := seedServer(t)
	_, err := ProcessQueries(s, []string{"fine", "bad --query"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestProcessQueriesJoinedConcatenatesInOrder(t *testing.T) {
	s := seedServer(t)
	queries := []string{"curly dog", "nasty rat -not"}

	perQuery, err := ProcessQueries(s, queries)
	require.NoError(t, err)
	joined, err := ProcessQueriesJoined(s, queries)
	require.NoError(t, err)

	var want []Document
	for _, docs := range perQuery {
		want = append(want, docs...)
	}
	assert.Equal(t, want, joined)
}
