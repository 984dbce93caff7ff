package world

import (
	"math"

	"mc-lite/internal/registry"
)

// Voxel features. All randomness comes from the chunk RNG so features
// reproduce for a given (cx, cz, seed). Cells outside the chunk clip.

func (g *generator) defaultTree(wx, h, wz int) {
	top := h + 4
	for y := h + 1; y <= top; y++ {
		g.set(wx, y, wz, registry.BlockWood)
	}
	for dx := -1; dx <= 1; dx++ {
		for dz := -1; dz <= 1; dz++ {
			for dy := 0; dy <= 1; dy++ {
				if dx == 0 && dz == 0 && dy == 0 {
					continue
				}
				g.setIfEmpty(wx+dx, top+dy, wz+dz, registry.BlockLeaves)
			}
		}
	}
	g.setIfEmpty(wx, top+2, wz, registry.BlockLeaves)
}

func (g *generator) bigTree(wx, h, wz int) {
	height := 5 + g.rng.Intn(2)
	top := h + height
	for y := h + 1; y <= top; y++ {
		g.set(wx, y, wz, registry.BlockWood)
	}
	// Three stacked canopy layers, narrowing upward.
	for dx := -2; dx <= 2; dx++ {
		for dz := -2; dz <= 2; dz++ {
			if dx == 0 && dz == 0 {
				continue
			}
			if abs(dx) == 2 && abs(dz) == 2 {
				continue
			}
			g.setIfEmpty(wx+dx, top-1, wz+dz, registry.BlockLeaves)
		}
	}
	for dx := -1; dx <= 1; dx++ {
		for dz := -1; dz <= 1; dz++ {
			g.setIfEmpty(wx+dx, top, wz+dz, registry.BlockLeaves)
			if abs(dx)+abs(dz) <= 1 {
				g.setIfEmpty(wx+dx, top+1, wz+dz, registry.BlockLeaves)
			}
		}
	}
}

func (g *generator) azaleaTree(wx, h, wz int) {
	top := h + 4
	for y := h + 1; y <= top; y++ {
		g.set(wx, y, wz, registry.BlockAzaleaLog)
	}
	for dx := -2; dx <= 2; dx++ {
		for dz := -2; dz <= 2; dz++ {
			if abs(dx) == 2 && abs(dz) == 2 {
				continue
			}
			leaves := registry.BlockAzaleaLeaves
			if g.rng.Float64() < 0.2 {
				leaves = registry.BlockYellowLeaves
			}
			g.setIfEmpty(wx+dx, top, wz+dz, leaves)
		}
	}
	for dx := -1; dx <= 1; dx++ {
		for dz := -1; dz <= 1; dz++ {
			g.setIfEmpty(wx+dx, top+1, wz+dz, registry.BlockAzaleaLeaves)
		}
	}
}

// swampTree grows a short trunk with a wide flat canopy and hanging vines.
func (g *generator) swampTree(wx, h, wz int) {
	height := 3 + g.rng.Intn(2)
	top := h + height
	for y := h + 1; y <= top; y++ {
		g.set(wx, y, wz, registry.BlockWood)
	}
	for dx := -2; dx <= 2; dx++ {
		for dz := -2; dz <= 2; dz++ {
			g.setIfEmpty(wx+dx, top, wz+dz, registry.BlockLeaves)
			onEdge := abs(dx) == 2 || abs(dz) == 2
			if onEdge && g.rng.Float64() < 0.4 {
				drop := 1 + g.rng.Intn(3)
				for dy := 1; dy <= drop; dy++ {
					g.setIfEmpty(wx+dx, top-dy, wz+dz, registry.BlockVine)
				}
			}
		}
	}
	g.setIfEmpty(wx, top+1, wz, registry.BlockLeaves)
}

func (g *generator) cactus(wx, h, wz int) {
	height := 1 + g.rng.Intn(3)
	for y := h + 1; y <= h+height; y++ {
		g.set(wx, y, wz, registry.BlockCactus)
	}
}

func (g *generator) skyTree(wx, h, wz int) {
	top := h + 3
	for y := h + 1; y <= top; y++ {
		g.set(wx, y, wz, registry.BlockSkyWood)
	}
	for dx := -1; dx <= 1; dx++ {
		for dz := -1; dz <= 1; dz++ {
			g.setIfEmpty(wx+dx, top, wz+dz, registry.BlockSkyLeaves)
		}
	}
	g.setIfEmpty(wx, top+1, wz, registry.BlockSkyLeaves)
}

// house drops a small plains cottage: cobblestone floor, plank walls with a
// door gap, pitched roof and a brick chimney, bed and bookbox inside.
func (g *generator) house(wx, h, wz int) {
	const half = 2
	floor := h + 1

	walls := []registry.BlockID{
		registry.BlockPlanks,
		registry.BlockOakPlanks,
		registry.BlockWhitePlanks,
		registry.BlockDarkPlanks,
	}
	wall := walls[g.rng.Intn(len(walls))]

	for dx := -half; dx <= half; dx++ {
		for dz := -half; dz <= half; dz++ {
			g.set(wx+dx, floor-1, wz+dz, registry.BlockCobblestone)
		}
	}
	for y := floor; y <= floor+2; y++ {
		for dx := -half; dx <= half; dx++ {
			for dz := -half; dz <= half; dz++ {
				onWall := abs(dx) == half || abs(dz) == half
				if !onWall {
					continue
				}
				// Door gap on the north (-z) wall.
				if dz == -half && dx == 0 && y <= floor+1 {
					continue
				}
				g.set(wx+dx, y, wz+dz, wall)
			}
		}
	}
	// Roof shrinks to a ridge.
	for dx := -half; dx <= half; dx++ {
		for dz := -half; dz <= half; dz++ {
			g.set(wx+dx, floor+3, wz+dz, registry.BlockDarkPlanks)
		}
	}
	for dx := -1; dx <= 1; dx++ {
		for dz := -1; dz <= 1; dz++ {
			g.set(wx+dx, floor+4, wz+dz, registry.BlockDarkPlanks)
		}
	}
	g.set(wx+half-1, floor+4, wz+half-1, registry.BlockBricks)
	g.set(wx+half-1, floor+5, wz+half-1, registry.BlockChimney)

	g.set(wx-1, floor, wz+1, registry.BlockBed)
	g.set(wx+1, floor, wz+1, registry.BlockBookbox)
}

// shipwreck lays a small sunken hull on the seabed with a loot chest.
func (g *generator) shipwreck(wx, y, wz int) {
	for dx := -3; dx <= 3; dx++ {
		for dz := -1; dz <= 1; dz++ {
			g.set(wx+dx, y, wz+dz, registry.BlockDarkPlanks)
			if abs(dx) >= 2 || abs(dz) == 1 {
				g.set(wx+dx, y+1, wz+dz, registry.BlockDarkPlanks)
			}
		}
	}
	g.set(wx, y+1, wz, registry.BlockChest)
	g.set(wx-2, y+1, wz, registry.BlockDebris)
}

// cloudCluster grows a 30..50 cell blob at y=35 by randomized BFS, with a
// 20% chance per chunk.
func (g *generator) cloudCluster() {
	if g.rng.Float64() >= 0.2 {
		return
	}
	const cloudY = 35
	target := 30 + g.rng.Intn(21)

	start := BlockPos{g.minX + g.rng.Intn(ChunkSize), cloudY, g.minZ + g.rng.Intn(ChunkSize)}
	frontier := []BlockPos{start}
	placed := map[BlockPos]struct{}{start: {}}
	g.set(start[0], start[1], start[2], registry.BlockCloud)

	dirs := [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	for len(placed) < target && len(frontier) > 0 {
		i := g.rng.Intn(len(frontier))
		cur := frontier[i]
		grown := false
		for _, d := range dirs {
			if g.rng.Float64() < 0.4 {
				continue
			}
			next := BlockPos{cur[0] + d[0], cloudY, cur[2] + d[1]}
			if _, ok := placed[next]; ok {
				continue
			}
			placed[next] = struct{}{}
			frontier = append(frontier, next)
			g.set(next[0], next[1], next[2], registry.BlockCloud)
			grown = true
			if len(placed) >= target {
				return
			}
		}
		if !grown {
			frontier[i] = frontier[len(frontier)-1]
			frontier = frontier[:len(frontier)-1]
		}
	}
}

// floatingIsland builds an inverted cone of sky stone below a grass cap,
// with sky trees and a chest on the apex. 8% chance per chunk.
func (g *generator) floatingIsland() {
	if g.rng.Float64() >= 0.08 {
		return
	}
	cxw := g.minX + 4 + g.rng.Intn(8)
	czw := g.minZ + 4 + g.rng.Intn(8)
	topY := 40 + g.rng.Intn(30)
	radius := 5 + g.rng.Intn(6)
	height := radius

	for layer := 0; layer < height; layer++ {
		shrink := 1 - math.Pow(float64(layer)/float64(height), 0.7)
		r := float64(radius) * shrink
		if r < 0.5 {
			break
		}
		ri := int(r)
		id := registry.BlockSkyStone
		if layer == 0 {
			id = registry.BlockSkyGrass
		}
		for dx := -ri; dx <= ri; dx++ {
			for dz := -ri; dz <= ri; dz++ {
				if float64(dx*dx+dz*dz) > r*r {
					continue
				}
				x, z := cxw+dx, czw+dz
				y := topY - layer
				g.setIfEmpty(x, y, z, id)
				if layer == 0 && g.rng.Float64() < 0.1 {
					g.skyTree(x, y, z)
				}
			}
		}
	}
	g.set(cxw, topY+1, czw, registry.BlockChest)
}

// Entity anchors. The collider cells enter the solidity index only; the
// model itself is cloned by the chunk when generation output is applied.

func (g *generator) anchorRealisticTree(wx, h, wz int) {
	g.anchors = append(g.anchors, EntityAnchor{
		Kind: AnchorRealisticTree,
		Pos:  BlockPos{wx, h + 1, wz},
		Colliders: []BlockPos{
			{wx, h + 1, wz},
			{wx, h + 2, wz},
			{wx, h + 3, wz},
		},
	})
}

func (g *generator) anchorRover(wx, h, wz int) {
	var cells []BlockPos
	for dx := -1; dx <= 1; dx++ {
		for dz := 0; dz <= 1; dz++ {
			cells = append(cells, BlockPos{wx + dx, h + 1, wz + dz})
		}
	}
	g.anchors = append(g.anchors, EntityAnchor{
		Kind:      AnchorRover,
		Pos:       BlockPos{wx, h + 1, wz},
		Colliders: cells,
	})
}

func (g *generator) anchorGunman(wx, h, wz int) {
	g.anchors = append(g.anchors, EntityAnchor{
		Kind: AnchorGunman,
		Pos:  BlockPos{wx, h + 1, wz},
		Colliders: []BlockPos{
			{wx, h + 1, wz},
			{wx, h + 2, wz},
		},
	})
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
