package inventory

import (
	"mc-lite/internal/item"
	"mc-lite/internal/registry"
)

const (
	// Size is the number of inventory slots, hotbar first.
	Size = 36
	// HotbarSize is the number of directly selectable slots.
	HotbarSize = 9
)

// Inventory is a fixed-size ordered sequence of slots. A nil slot is empty.
type Inventory struct {
	Slots   [Size]*item.Stack
	Current int // selected hotbar index, 0..8
}

// New creates an empty inventory.
func New() *Inventory {
	return &Inventory{}
}

// Selected returns the stack in the selected hotbar slot, or nil.
func (inv *Inventory) Selected() *item.Stack {
	return inv.Slots[inv.Current]
}

// Select sets the selected hotbar slot directly.
func (inv *Inventory) Select(index int) {
	if index >= 0 && index < HotbarSize {
		inv.Current = index
	}
}

// Scroll moves the hotbar selection, wrapping around.
func (inv *Inventory) Scroll(direction int) {
	if direction > 0 {
		direction = 1
	} else if direction < 0 {
		direction = -1
	}
	inv.Current = (inv.Current + direction + HotbarSize) % HotbarSize
}

// Add merges the stack into the first matching non-empty slot, then fills
// the first empty slot. Returns false when nothing fit; the stack keeps
// whatever remained.
func (inv *Inventory) Add(s *item.Stack) bool {
	if s == nil || s.Empty() {
		return false
	}

	for i := range inv.Slots {
		existing := inv.Slots[i]
		if existing == nil || !existing.Equal(*s) {
			continue
		}
		space := item.MaxStackSize - existing.Count
		if space <= 0 {
			continue
		}
		take := min(s.Count, space)
		existing.Count += take
		s.Count -= take
		if s.Count == 0 {
			return true
		}
	}

	for i := range inv.Slots {
		if inv.Slots[i] != nil {
			continue
		}
		take := min(s.Count, item.MaxStackSize)
		st := item.Stack{ID: s.ID, Count: take, Meta: s.Meta}
		inv.Slots[i] = &st
		s.Count -= take
		if s.Count == 0 {
			return true
		}
	}

	return false
}

// ConsumeSelected removes one item from the selected slot. Returns the kind
// consumed, or false when the slot is empty.
func (inv *Inventory) ConsumeSelected() (registry.BlockID, bool) {
	s := inv.Selected()
	if s == nil || s.Empty() {
		return registry.BlockAir, false
	}
	id := s.ID
	s.Count--
	if s.Count <= 0 {
		inv.Slots[inv.Current] = nil
	}
	return id, true
}

// Count totals the items of one kind across all slots.
func (inv *Inventory) Count(id registry.BlockID) int {
	total := 0
	for _, s := range inv.Slots {
		if s != nil && s.ID == id {
			total += s.Count
		}
	}
	return total
}
