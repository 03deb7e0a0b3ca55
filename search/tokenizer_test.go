package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitWords(t *testing.T) {
	assert.Equal(t, []string{"funny", "pet", "and", "nasty", "rat"}, splitWords("funny pet and nasty rat"))
	assert.Equal(t, []string{"a", "b"}, splitWords("  a   b  "))
	assert.Empty(t, splitWords(""))
	assert.Empty(t, splitWords("   "))
	// Tabs are not word separators: the whole run is one token.
	assert.Equal(t, []string{"a\tb"}, splitWords("a\tb"))
}

func TestIsValidText(t *testing.T) {
	assert.True(t, isValidText("funny pet"))
	assert.True(t, isValidText(""))
	assert.False(t, isValidText("bad\x00word"))
	assert.False(t, isValidText("bad\x1fword"))
	assert.True(t, isValidText("bad word")) // space (32) is not a control byte
}
