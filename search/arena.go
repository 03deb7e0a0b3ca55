package search

// arena is the append-only canonical owner of every indexed word. The
// forward and inverted maps key on the strings it hands back rather than
// allocating their own copies, so a word that appears in a thousand
// documents is stored exactly once. Unlike the C++ source, Go strings are
// already immutable byte-slice views, so the arena's job here is purely
// deduplication (one allocation per distinct word) rather than avoiding
// dangling views — but the "owns every indexed word exactly once" invariant
// from the data model still holds, and TestArenaInternDeduplicates checks it.
//
// No deletion: words are retained for the engine's lifetime, even after the
// last document referencing them is removed. Simpler ownership discipline,
// acceptable because query vocabularies are bounded in practice.
type arena struct {
	words map[string]string
}

func newArena() *arena {
	return &arena{words: make(map[string]string)}
}

// intern returns the arena's canonical copy of s, allocating and storing one
// if this is the word's first occurrence. The empty string is never
// interned; callers must not pass it.
func (a *arena) intern(s string) string {
	if v, ok := a.words[s]; ok {
		return v
	}
	// Copy so the returned string does not keep a larger backing array
	// (e.g. a full document's text) alive via a substring view.
	owned := string([]byte(s))
	a.words[owned] = owned
	return owned
}

// len reports the number of distinct words the arena has ever interned.
func (a *arena) len() int {
	return len(a.words)
}
