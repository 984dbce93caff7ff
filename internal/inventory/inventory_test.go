package inventory

import (
	"testing"

	"mc-lite/internal/item"
	"mc-lite/internal/registry"
)

func TestAddMergesIntoFirstMatchingSlot(t *testing.T) {
	inv := New()

	first := item.NewStack(registry.BlockDirt, 5)
	inv.Add(&first)

	filler := item.NewStack(registry.BlockStone, 1)
	inv.Add(&filler)

	more := item.NewStack(registry.BlockDirt, 3)
	if !inv.Add(&more) {
		t.Fatalf("add failed")
	}

	if inv.Slots[0] == nil || inv.Slots[0].Count != 8 {
		t.Errorf("slot 0 = %+v, want 8 dirt", inv.Slots[0])
	}
	if inv.Slots[2] != nil {
		t.Errorf("merge spilled into a new slot")
	}
}

func TestAddFillsFirstEmptySlot(t *testing.T) {
	inv := New()
	a := item.NewStack(registry.BlockDirt, 1)
	inv.Add(&a)
	b := item.NewStack(registry.BlockStone, 1)
	inv.Add(&b)

	inv.Slots[0] = nil // free the first slot

	c := item.NewStack(registry.BlockSand, 1)
	inv.Add(&c)
	if inv.Slots[0] == nil || inv.Slots[0].ID != registry.BlockSand {
		t.Errorf("new item skipped the first empty slot")
	}
}

func TestAddRespectsStackLimitAndOverflow(t *testing.T) {
	inv := New()
	big := item.NewStack(registry.BlockPlanks, item.MaxStackSize+10)
	if !inv.Add(&big) {
		t.Fatalf("overflow add failed with empty slots available")
	}
	if inv.Slots[0].Count != item.MaxStackSize {
		t.Errorf("slot 0 count = %d, want %d", inv.Slots[0].Count, item.MaxStackSize)
	}
	if inv.Slots[1] == nil || inv.Slots[1].Count != 10 {
		t.Errorf("overflow slot = %+v, want 10", inv.Slots[1])
	}
}

func TestAddMetaKeepsStacksApart(t *testing.T) {
	inv := New()
	plain := item.NewStack(registry.BlockChest, 1)
	inv.Add(&plain)

	loot := item.Stack{ID: registry.BlockChest, Count: 1, Meta: "sky"}
	inv.Add(&loot)

	if inv.Slots[0].Count != 1 || inv.Slots[1] == nil {
		t.Errorf("stacks with different meta merged")
	}
}

func TestAddFullInventory(t *testing.T) {
	inv := New()
	for i := range inv.Slots {
		s := item.NewStack(registry.BlockStone, item.MaxStackSize)
		inv.Slots[i] = &s
	}
	extra := item.NewStack(registry.BlockDirt, 1)
	if inv.Add(&extra) {
		t.Errorf("add succeeded into a full inventory")
	}
	if extra.Count != 1 {
		t.Errorf("failed add consumed items")
	}
}

func TestConsumeSelected(t *testing.T) {
	inv := New()
	s := item.NewStack(registry.BlockBricks, 2)
	inv.Add(&s)

	if id, ok := inv.ConsumeSelected(); !ok || id != registry.BlockBricks {
		t.Fatalf("consume = (%v, %v)", id, ok)
	}
	if inv.Slots[0].Count != 1 {
		t.Errorf("count after consume = %d, want 1", inv.Slots[0].Count)
	}

	inv.ConsumeSelected()
	if inv.Slots[0] != nil {
		t.Errorf("emptied slot not cleared")
	}
	if _, ok := inv.ConsumeSelected(); ok {
		t.Errorf("consumed from an empty slot")
	}
}

func TestScrollWraps(t *testing.T) {
	inv := New()
	inv.Scroll(-1)
	if inv.Current != HotbarSize-1 {
		t.Errorf("scroll down from 0 = %d, want %d", inv.Current, HotbarSize-1)
	}
	inv.Scroll(1)
	if inv.Current != 0 {
		t.Errorf("scroll back = %d, want 0", inv.Current)
	}
}
