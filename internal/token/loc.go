package token

// SourceLoc is an opaque, lightweight source position: the index of the
// token it refers to, not a byte offset or eagerly-computed line/column.
// Resolving it to human-readable form is the tokenizer's job, done lazily
// only when a diagnostic actually needs to be rendered.
type SourceLoc struct {
	TokenIndex int
}

// NoLoc is the sentinel SourceLoc (TokenIndex -1, not the zero value,
// which names the first token) used where no meaningful location is
// available (never produced by the parser itself, but useful as an
// explicit "none" for synthetic values constructed outside parsing).
var NoLoc = SourceLoc{TokenIndex: -1}
