package token

// NoStore is the sentinel Store value for tokens that carry no side-table
// payload (every punctuator, EOF, and the boolean keywords).
const NoStore = ^uint32(0)

// Token is a single lexical unit: its Kind, the byte span it occupies in
// the source text, and, for literal kinds, an index (Store) into the
// tokenizer's matching side table (strings, ints, or floats).
type Token struct {
	Kind  Kind
	Store uint32
	Begin int
	End   int
}

// Len returns the byte length of the token's span.
func (t Token) Len() int { return t.End - t.Begin }

// HasStore reports whether Store indexes a side table entry.
func (t Token) HasStore() bool { return t.Store != NoStore }
