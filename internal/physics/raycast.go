package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Occupancy answers whether a cell currently holds a targetable block.
// Interaction rays test rendered blocks, not the collision index, so hidden
// interior blocks and invisible colliders are never picked.
type Occupancy interface {
	Occupied(x, y, z int) bool
}

// RayStep is the march increment in world units.
const RayStep = 0.1

// RayHit is the result of a raycast.
type RayHit struct {
	Hit      bool
	Block    [3]int // the cell that was hit
	Adjacent [3]int // the last empty cell before the hit
	Normal   [3]int // face normal pointing out of the hit block
	Distance float32
}

// Raycast marches from start along dir up to maxDist, flooring each sample
// into a cell, and reports the first occupied cell together with the face it
// was entered through.
func Raycast(start, dir mgl32.Vec3, maxDist float32, occ Occupancy) RayHit {
	steps := int(maxDist / RayStep)

	prev := [3]int{
		int(math.Floor(float64(start.X()))),
		int(math.Floor(float64(start.Y()))),
		int(math.Floor(float64(start.Z()))),
	}

	for i := 1; i <= steps; i++ {
		dist := float32(i) * RayStep
		p := start.Add(dir.Mul(dist))
		cell := [3]int{
			int(math.Floor(float64(p.X()))),
			int(math.Floor(float64(p.Y()))),
			int(math.Floor(float64(p.Z()))),
		}
		if cell == prev {
			continue
		}
		if occ.Occupied(cell[0], cell[1], cell[2]) {
			return RayHit{
				Hit:      true,
				Block:    cell,
				Adjacent: prev,
				Normal:   [3]int{prev[0] - cell[0], prev[1] - cell[1], prev[2] - cell[2]},
				Distance: dist,
			}
		}
		prev = cell
	}
	return RayHit{}
}
