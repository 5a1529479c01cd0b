package autodiff

// Grad is one parent contribution to an item's derivative: this item's
// value changes by Coef for each unit change in the value at tape slot
// Parent.
type Grad struct {
	Parent uint32
	Coef   AdExpr
}

// Item is one tape slot: its forward value expression and the parents
// it differentiates with respect to. Seed items (the first Tape.NumVars
// slots) have a nil Value and empty Grads — the caller supplies their
// values at evaluation time.
type Item struct {
	Value AdExpr
	Grads []Grad
}

// Tape is the frozen, append-only, topologically sorted result of
// lowering an AST: the first NumVars items are the independent-variable
// seed slots, in declaration order.
type Tape struct {
	Items   []Item
	NumVars int
	Output  uint32
}

// Len returns the total number of tape slots, including seeds.
func (t *Tape) Len() int { return len(t.Items) }
