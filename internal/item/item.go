package item

import "mc-lite/internal/registry"

// MaxStackSize is the standard stack limit.
const MaxStackSize = 64

// Stack is a quantity of one item kind. Meta carries free-form item state
// (loot provenance, color variants); empty for plain blocks.
type Stack struct {
	ID    registry.BlockID
	Count int
	Meta  string
}

// NewStack creates a stack of the given kind.
func NewStack(id registry.BlockID, count int) Stack {
	return Stack{ID: id, Count: count}
}

// Equal reports whether two stacks hold the same item kind and meta.
func (s Stack) Equal(o Stack) bool {
	return s.ID == o.ID && s.Meta == o.Meta
}

// Empty reports whether the stack holds nothing.
func (s Stack) Empty() bool {
	return s.Count <= 0
}
