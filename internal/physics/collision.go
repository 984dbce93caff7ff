package physics

import (
	"math"
)

// BlockSource answers solidity queries. The world implements it; tests use
// small fakes.
type BlockSource interface {
	IsSolid(x, y, z int) bool
}

// Player body and motion constants. Velocities are per second and scaled by
// dt each integration step.
const (
	Gravity          = -24.0
	TerminalVelocity = -50.0
	Speed            = 8.0
	JumpForce        = 10.0

	PlayerWidth  = 0.6
	PlayerHeight = 1.8
	EyeHeight    = 1.65

	MaxStep     = 1.0
	MaxJumpStep = 2.0

	FrictionSlide  = 0.9
	FrictionCorner = 0.7

	CameraWidth  = 0.3
	JumpInterval = 0.25

	DtMax = 0.1

	// aabbEpsilon shrinks the sampled box top and bottom so a body resting
	// exactly on a block face does not register as colliding.
	aabbEpsilon = 0.1
)

// CheckAABB reports whether the player box anchored at foot position
// (x, y, z) overlaps any solid block. excludeFeet skips the bottom cell row,
// used for horizontal sweeps so the current support block does not count.
func CheckAABB(w BlockSource, x, y, z float64, excludeFeet bool) bool {
	half := PlayerWidth / 2

	minX := int(math.Floor(x - half))
	maxX := int(math.Floor(x + half))
	minY := int(math.Floor(y + aabbEpsilon))
	maxY := int(math.Floor(y + PlayerHeight - aabbEpsilon))
	minZ := int(math.Floor(z - half))
	maxZ := int(math.Floor(z + half))

	if excludeFeet {
		minY++
	}

	for bx := minX; bx <= maxX; bx++ {
		for by := minY; by <= maxY; by++ {
			for bz := minZ; bz <= maxZ; bz++ {
				if w.IsSolid(bx, by, bz) {
					return true
				}
			}
		}
	}
	return false
}

// HasSupport samples the five foot points just below the body: the center
// and the four box corners.
func HasSupport(w BlockSource, x, y, z float64) bool {
	half := PlayerWidth / 2
	by := int(math.Floor(y - aabbEpsilon))

	points := [5][2]float64{
		{x, z},
		{x - half, z - half},
		{x + half, z - half},
		{x - half, z + half},
		{x + half, z + half},
	}
	for _, p := range points {
		if w.IsSolid(int(math.Floor(p[0])), by, int(math.Floor(p[1]))) {
			return true
		}
	}
	return false
}

// GroundLevel scans down from the feet for up to maxScan blocks and returns
// the top face of the first solid cell under the body footprint. The second
// return is false when nothing solid is within range.
func GroundLevel(w BlockSource, x, y, z float64, maxScan int) (float64, bool) {
	half := PlayerWidth / 2
	startY := int(math.Floor(y))

	best := math.Inf(-1)
	found := false
	for bx := int(math.Floor(x - half)); bx <= int(math.Floor(x+half)); bx++ {
		for bz := int(math.Floor(z - half)); bz <= int(math.Floor(z+half)); bz++ {
			for by := startY; by >= startY-maxScan; by-- {
				if !w.IsSolid(bx, by, bz) {
					continue
				}
				top := float64(by) + 1
				if top > best {
					best = top
					found = true
				}
				break
			}
		}
	}
	return best, found
}

// IntersectsBlock reports whether the player box at (x, y, z) overlaps the
// unit cube at block (bx, by, bz). Placement uses it to reject blocks inside
// the body.
func IntersectsBlock(x, y, z float64, bx, by, bz int) bool {
	half := PlayerWidth / 2
	return x-half < float64(bx)+1 && x+half > float64(bx) &&
		y < float64(by)+1 && y+PlayerHeight > float64(by) &&
		z-half < float64(bz)+1 && z+half > float64(bz)
}
