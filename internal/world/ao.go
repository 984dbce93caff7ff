package world

// Per-vertex ambient occlusion, packed two bits per corner into a pair of
// u32 instance attributes. 24 values: six faces times four corners, corners
// 0..15 in the low word, 16..23 in the high word.
//
// The top face gets the full three-sample corner term; side faces use a
// single overhead sample; the bottom face is flat.

// aoCorners is the (dx, dz) corner order of a horizontal face.
var aoCorners = [4][2]int{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}

// sideFaces is the (dx, dz) direction order of the four vertical faces.
var sideFaces = [4][2]int{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}

// packAO computes the 24 corner values for the block at p given an occlusion
// query, and packs them in vertex-index order: top, the four side faces,
// bottom.
func packAO(occ func(BlockPos) bool, p BlockPos) (lo, hi uint32) {
	var vals [24]uint8
	i := 0

	// Top face: corner AO from the two edge neighbors and the diagonal one
	// level up.
	for _, c := range aoCorners {
		side1 := occ(BlockPos{p[0] + c[0], p[1] + 1, p[2]})
		side2 := occ(BlockPos{p[0], p[1] + 1, p[2] + c[1]})
		corner := occ(BlockPos{p[0] + c[0], p[1] + 1, p[2] + c[1]})
		vals[i] = cornerAO(side1, side2, corner)
		i++
	}

	// Side faces: one overhead sample darkens the whole face.
	for _, f := range sideFaces {
		v := uint8(3)
		if occ(BlockPos{p[0] + f[0], p[1] + 1, p[2] + f[1]}) {
			v = 2
		}
		for c := 0; c < 4; c++ {
			vals[i] = v
			i++
		}
	}

	// Bottom face: flat.
	for c := 0; c < 4; c++ {
		vals[i] = 3
		i++
	}

	for idx, v := range vals {
		if idx < 16 {
			lo |= uint32(v&0x3) << (uint(idx) * 2)
		} else {
			hi |= uint32(v&0x3) << (uint(idx-16) * 2)
		}
	}
	return lo, hi
}

// cornerAO is the classic corner term: 3 minus the occupied samples, forced
// to 0 when both edge neighbors are occupied.
func cornerAO(side1, side2, corner bool) uint8 {
	if side1 && side2 {
		return 0
	}
	n := uint8(0)
	if side1 {
		n++
	}
	if side2 {
		n++
	}
	if corner {
		n++
	}
	return 3 - n
}
