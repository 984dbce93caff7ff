package world

import "testing"

func unpackAO(lo, hi uint32, idx int) uint8 {
	if idx < 16 {
		return uint8((lo >> (uint(idx) * 2)) & 0x3)
	}
	return uint8((hi >> (uint(idx-16) * 2)) & 0x3)
}

func TestCornerAO(t *testing.T) {
	cases := []struct {
		side1, side2, corner bool
		want                 uint8
	}{
		{false, false, false, 3},
		{true, false, false, 2},
		{false, true, false, 2},
		{false, false, true, 2},
		{true, false, true, 1},
		{true, true, false, 0},
		{true, true, true, 0},
	}
	for _, c := range cases {
		if got := cornerAO(c.side1, c.side2, c.corner); got != c.want {
			t.Errorf("cornerAO(%v,%v,%v) = %d, want %d", c.side1, c.side2, c.corner, got, c.want)
		}
	}
}

func TestPackAOOpenSky(t *testing.T) {
	occ := func(BlockPos) bool { return false }
	lo, hi := packAO(occ, BlockPos{0, 0, 0})

	for i := 0; i < 24; i++ {
		if v := unpackAO(lo, hi, i); v != 3 {
			t.Fatalf("corner %d = %d, want 3 with nothing occluding", i, v)
		}
	}
}

func TestPackAOTopCornerDarkened(t *testing.T) {
	// One diagonal neighbor above the (-1,-1) corner.
	occ := func(p BlockPos) bool {
		return p == BlockPos{-1, 1, -1}
	}
	lo, hi := packAO(occ, BlockPos{0, 0, 0})

	if v := unpackAO(lo, hi, 0); v != 2 {
		t.Errorf("shadowed top corner = %d, want 2", v)
	}
	for i := 1; i < 4; i++ {
		if v := unpackAO(lo, hi, i); v != 3 {
			t.Errorf("open top corner %d = %d, want 3", i, v)
		}
	}
}

func TestPackAOBothSidesForceZero(t *testing.T) {
	occ := func(p BlockPos) bool {
		return p == BlockPos{-1, 1, 0} || p == BlockPos{0, 1, -1}
	}
	lo, hi := packAO(occ, BlockPos{0, 0, 0})

	if v := unpackAO(lo, hi, 0); v != 0 {
		t.Errorf("fully pinched corner = %d, want 0", v)
	}
}

func TestPackAOSideFaceOverheadSample(t *testing.T) {
	// Block above the -z neighbor darkens the whole north face (corners 4-7).
	occ := func(p BlockPos) bool {
		return p == BlockPos{0, 1, -1}
	}
	lo, hi := packAO(occ, BlockPos{0, 0, 0})

	for i := 4; i < 8; i++ {
		if v := unpackAO(lo, hi, i); v != 2 {
			t.Errorf("side corner %d = %d, want 2", i, v)
		}
	}
	// Bottom face stays flat.
	for i := 20; i < 24; i++ {
		if v := unpackAO(lo, hi, i); v != 3 {
			t.Errorf("bottom corner %d = %d, want 3", i, v)
		}
	}
}
