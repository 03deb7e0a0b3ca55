package search

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsInvalidStopWord(t *testing.T) {
	_, err := New("good \x01bad")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestNewDiscardsEmptyStopWords(t *testing.T) {
	s, err := NewFromWords([]string{"", "and", "", "with"})
	require.NoError(t, err)
	assert.True(t, s.isStopWord("and"))
	assert.True(t, s.isStopWord("with"))
	assert.False(t, s.isStopWord(""))
}

func TestAddDocumentRejectsNegativeID(t *testing.T) {
	s, _ := New("")
	err := s.AddDocument(-1, "cat", Actual, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestAddDocumentRejectsDuplicateID(t *testing.T) {
	s, _ := New("")
	require.NoError(t, s.AddDocument(1, "cat", Actual, nil))
	err := s.AddDocument(1, "dog", Actual, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestAddDocumentRejectsControlBytes(t *testing.T) {
	s, _ := New("")
	err := s.AddDocument(1, "cat\x07dog", Actual, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestAddDocumentAcceptsEmptyText(t *testing.T) {
	s, _ := New("")
	require.NoError(t, s.AddDocument(1, "", Actual, nil))
	assert.Equal(t, 1, s.GetDocumentCount())
	assert.Empty(t, s.GetWordFrequencies(1))
}

func TestAddDocumentStopWordsOnlyLeavesNoPostings(t *testing.T) {
	s, _ := New("and with")
	require.NoError(t, s.AddDocument(1, "and with and", Actual, nil))
	assert.Empty(t, s.GetWordFrequencies(1))
}

func TestComputeAverageRatingTruncatesTowardZero(t *testing.T) {
	assert.Equal(t, 0, computeAverageRating(nil))
	assert.Equal(t, 0, computeAverageRating([]int{}))
	assert.Equal(t, 5, computeAverageRating([]int{7, 2, 7}))
	assert.Equal(t, 2, computeAverageRating([]int{1, 2, 3}))
	assert.Equal(t, 0, computeAverageRating([]int{-1, -2, 2})) // sum -1, truncates toward zero
	assert.Equal(t, -2, computeAverageRating([]int{-7, 0, 0})) // sum -7, -7/3 truncates to -2
}

func TestTermFrequencySumsToDistinctWordRatio(t *testing.T) {
	s, _ := New("")
	require.NoError(t, s.AddDocument(1, "cat cat dog bird cat", Actual, nil))
	freqs := s.GetWordFrequencies(1)
	sum := 0.0
	for _, tf := range freqs {
		sum += tf
	}
	// 5 tokens, 3 distinct words: 3/5 + 1/5 + 1/5 = 1.
	assert.InDelta(t, 1.0, sum, 1e-9)
	assert.InDelta(t, 3.0/5.0, freqs["cat"], 1e-9)
	assert.InDelta(t, 1.0/5.0, freqs["dog"], 1e-9)
}

func TestRemoveDocumentPrunesForwardAndInverted(t *testing.T) {
	s, _ := New("")
	require.NoError(t, s.AddDocument(1, "cat dog", Actual, nil))
	require.NoError(t, s.AddDocument(2, "cat bird", Actual, nil))

	s.RemoveDocument(1)

	assert.NotContains(t, s.IDs(), 1)
	assert.Empty(t, s.GetWordFrequencies(1))
	// "dog" only appeared in doc 1, so its inverted entry must be gone.
	_, stillIndexed := s.inverted["dog"]
	assert.False(t, stillIndexed)
	// "cat" still appears in doc 2.
	assert.Contains(t, s.inverted["cat"], 2)
	assert.NotContains(t, s.inverted["cat"], 1)
}

func TestRemoveDocumentParallelMatchesSequential(t *testing.T) {
	seq, _ := New("")
	par, _ := New("")
	for _, s := range []*Server{seq, par} {
		require.NoError(t, s.AddDocument(1, "cat dog bird fish", Actual, nil))
		require.NoError(t, s.AddDocument(2, "cat dog", Actual, nil))
	}

	seq.RemoveDocumentPolicy(Sequential, 1)
	par.RemoveDocumentPolicy(Parallel, 1)

	assert.Equal(t, seq.IDs(), par.IDs())
	assert.Equal(t, len(seq.inverted), len(par.inverted))
	for word := range seq.inverted {
		assert.Equal(t, seq.inverted[word], par.inverted[word])
	}
}

func TestRemoveUnknownDocumentIsNoop(t *testing.T) {
	s, _ := New("")
	require.NoError(t, s.AddDocument(1, "cat", Actual, nil))
	s.RemoveDocument(42)
	assert.Equal(t, 1, s.GetDocumentCount())
}

func TestIDsAreAscending(t *testing.T) {
	s, _ := New("")
	for _, id := range []int{5, 1, 3, 2, 4} {
		require.NoError(t, s.AddDocument(id, "word", Actual, nil))
	}
	assert.Equal(t, []int{1, 2, 3, 4, 5}, s.IDs())
}
