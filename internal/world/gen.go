package world

import (
	"math/rand"

	"mc-lite/internal/registry"
	"mc-lite/internal/render"
)

// EntityKind names an externally loaded model anchored to generated terrain.
type EntityKind int

const (
	AnchorRealisticTree EntityKind = iota
	AnchorRover
	AnchorGunman
)

// EntityAnchor is a generated placement for a non-voxel model together with
// the invisible collider cells that give it a physics footprint.
type EntityAnchor struct {
	Kind      EntityKind
	Pos       BlockPos
	Colliders []BlockPos
}

// GenOutput is everything a worker produces for one chunk column. It is
// handed to the main loop as an owned value; the worker keeps no reference.
type GenOutput struct {
	Coord   ChunkCoord
	Blocks  map[BlockPos]registry.BlockID
	Solid   []BlockPos
	Visible []BlockPos
	Buckets render.Buckets
	Anchors []EntityAnchor
}

// generator carries the per-chunk state while building one column.
type generator struct {
	cx, cz int
	minX   int
	minZ   int
	seed   uint32
	noise  Noise
	rng    *rand.Rand

	blocks  map[BlockPos]registry.BlockID
	anchors []EntityAnchor
	rooms   []roomBox
}

// roomBox is a carved void in the deep layers, in world coordinates.
type roomBox struct {
	min, max BlockPos
}

func (r roomBox) contains(p BlockPos) bool {
	return p[0] >= r.min[0] && p[0] <= r.max[0] &&
		p[1] >= r.min[1] && p[1] <= r.max[1] &&
		p[2] >= r.min[2] && p[2] <= r.max[2]
}

// Generate builds a chunk column. It is a pure function of (cx, cz, seed,
// deltas): the structural decisions reproduce exactly for the same inputs.
// Deltas are overlaid last and win over everything generation produced.
func Generate(cx, cz int, seed uint32, deltas map[BlockPos]registry.BlockID) *GenOutput {
	g := &generator{
		cx:     cx,
		cz:     cz,
		minX:   cx * ChunkSize,
		minZ:   cz * ChunkSize,
		seed:   seed,
		noise:  NewNoise(seed),
		rng:    chunkRand(cx, cz, seed),
		blocks: make(map[BlockPos]registry.BlockID, ChunkSize*ChunkSize*16),
	}

	g.carveRooms()
	g.terrain()
	g.cloudPlane()
	g.cloudCluster()
	g.floatingIsland()
	g.overlay(deltas)

	return g.finish()
}

// carveRooms picks the two procedural voids of this chunk. Layer placement
// later skips any cell inside a room.
func (g *generator) carveRooms() {
	for i := 0; i < 2; i++ {
		sx := 1 + g.rng.Intn(5)
		sy := 1 + g.rng.Intn(5)
		sz := 1 + g.rng.Intn(5)
		ox := g.minX + g.rng.Intn(ChunkSize)
		oz := g.minZ + g.rng.Intn(ChunkSize)
		oy := 2 + g.rng.Intn(9-sy+1)
		g.rooms = append(g.rooms, roomBox{
			min: BlockPos{ox, oy, oz},
			max: BlockPos{ox + sx - 1, oy + sy - 1, oz + sz - 1},
		})
	}
}

func (g *generator) inRoom(p BlockPos) bool {
	for _, r := range g.rooms {
		if r.contains(p) {
			return true
		}
	}
	return false
}

// set places a block if the cell lies inside this chunk. Structures clip at
// chunk borders instead of leaking into neighbors.
func (g *generator) set(x, y, z int, id registry.BlockID) {
	if x < g.minX || x >= g.minX+ChunkSize || z < g.minZ || z >= g.minZ+ChunkSize {
		return
	}
	g.blocks[BlockPos{x, y, z}] = id
}

// setIfEmpty places a block only when the cell is still free.
func (g *generator) setIfEmpty(x, y, z int, id registry.BlockID) {
	p := BlockPos{x, y, z}
	if x < g.minX || x >= g.minX+ChunkSize || z < g.minZ || z >= g.minZ+ChunkSize {
		return
	}
	if _, ok := g.blocks[p]; !ok {
		g.blocks[p] = id
	}
}

func (g *generator) terrain() {
	for lx := 0; lx < ChunkSize; lx++ {
		for lz := 0; lz < ChunkSize; lz++ {
			wx := g.minX + lx
			wz := g.minZ + lz
			biome := g.noise.BiomeAt(wx, wz)
			h := g.noise.SurfaceHeight(wx, wz)

			if h < SeaLevel {
				g.seabedColumn(wx, wz, h, biome, lx, lz)
				continue
			}

			// Surface and sub-surface
			g.set(wx, h, wz, biome.Top)
			g.set(wx, h-1, wz, biome.Filler)

			// Deep layers: eleven below the filler, floored by bedrock.
			for depth := 2; depth <= 12; depth++ {
				y := h - depth
				p := BlockPos{wx, y, wz}
				switch {
				case depth == 12:
					g.blocks[p] = registry.BlockEndStone
				case depth >= 10:
					if !g.inRoom(p) {
						g.blocks[p] = registry.BlockStone
					}
				default:
					if g.inRoom(p) {
						continue
					}
					if g.rng.Float64() < 0.05 {
						g.blocks[p] = registry.BlockGoldOre
					} else {
						g.blocks[p] = registry.BlockStone
					}
				}
			}

			g.vegetation(wx, wz, h, biome)
		}
	}
}

// seabedColumn fills a column whose surface lies below sea level.
func (g *generator) seabedColumn(wx, wz, h int, biome *Biome, lx, lz int) {
	g.set(wx, h, wz, registry.BlockSand)
	g.set(wx, h-1, wz, registry.BlockEndStone)

	water := registry.BlockWater
	if biome == BiomeSwamp {
		water = registry.BlockSwampWater
	}
	for y := h + 1; y <= SeaLevel; y++ {
		g.set(wx, y, wz, water)
	}

	if biome == BiomeSwamp && g.rng.Float64() < 0.08 {
		g.set(wx, SeaLevel+1, wz, registry.BlockLilypad)
	}

	if h < -6 && lx >= 3 && lx <= 12 && lz >= 3 && lz <= 12 && g.rng.Float64() < 0.001 {
		g.shipwreck(wx, h+1, wz)
	}
}

// vegetation rolls the per-column feature tables for a surface above sea level.
func (g *generator) vegetation(wx, wz, h int, biome *Biome) {
	switch biome {
	case BiomeForest:
		if g.rng.Float64() < 0.04 {
			if g.rng.Float64() < 0.15 {
				g.anchorRealisticTree(wx, h, wz)
			} else {
				g.bigTree(wx, h, wz)
			}
		}
	case BiomeAzalea:
		if g.rng.Float64() < 0.045 {
			g.azaleaTree(wx, h, wz)
		}
	case BiomeSwamp:
		if g.rng.Float64() < 0.03 {
			g.swampTree(wx, h, wz)
		}
	case BiomeDesert:
		if g.rng.Float64() < 0.01 {
			g.cactus(wx, h, wz)
		} else if g.rng.Float64() < 0.0005 {
			g.anchorRover(wx, h, wz)
		}
	default: // plains
		switch {
		case g.rng.Float64() < 0.0005:
			g.anchorGunman(wx, h, wz)
		case g.rng.Float64() < 0.005:
			g.defaultTree(wx, h, wz)
		case g.rng.Float64() < 0.05:
			g.setIfEmpty(wx, h+1, wz, registry.BlockShortGrass)
		case g.rng.Float64() < 0.05:
			flower := registry.BlockFlower
			if g.rng.Float64() < 1.0/3.0 {
				flower = registry.BlockAllium
			}
			g.setIfEmpty(wx, h+1, wz, flower)
		case g.rng.Float64() < 0.001:
			g.house(wx, h, wz)
		}
	}
}

// cloudPlane places single cloud cells on the high noise ridge.
func (g *generator) cloudPlane() {
	for lx := 0; lx < ChunkSize; lx++ {
		for lz := 0; lz < ChunkSize; lz++ {
			wx := g.minX + lx
			wz := g.minZ + lz
			if g.noise.Sample(float64(wx), float64(wz), 0.03) > 1.2 {
				g.setIfEmpty(wx, 55, wz, registry.BlockCloud)
			}
		}
	}
}

// overlay forces every persisted delta over the generated output, last.
func (g *generator) overlay(deltas map[BlockPos]registry.BlockID) {
	for p, t := range deltas {
		if t == registry.BlockAir {
			delete(g.blocks, p)
		} else {
			g.blocks[p] = t
		}
	}
}

// occluderAt reports whether the cell hides faces of its neighbors. For
// cells outside this chunk it estimates from the biome-adjusted surface
// height (the world's not-ready fallback uses the raw terrain height).
func (g *generator) occluderAt(p BlockPos) bool {
	if p[0] >= g.minX && p[0] < g.minX+ChunkSize && p[2] >= g.minZ && p[2] < g.minZ+ChunkSize {
		id, ok := g.blocks[p]
		return ok && registry.IsOccluding(id)
	}
	return p[1] <= g.noise.SurfaceHeight(p[0], p[2])
}

// finish derives the solidity index, the visibility mask, and the instanced
// render buckets (with packed AO) from the block map.
func (g *generator) finish() *GenOutput {
	out := &GenOutput{
		Coord:   ChunkCoord{X: g.cx, Z: g.cz},
		Blocks:  g.blocks,
		Buckets: make(render.Buckets),
		Anchors: g.anchors,
	}

	for p, id := range g.blocks {
		if registry.IsSolid(id) {
			out.Solid = append(out.Solid, p)
		}

		hidden := true
		for _, d := range Neighbors6 {
			if !g.occluderAt(p.Offset(d)) {
				hidden = false
				break
			}
		}
		if hidden {
			continue
		}

		out.Visible = append(out.Visible, p)
		inst := render.Instance{X: int32(p[0]), Y: int32(p[1]), Z: int32(p[2])}
		if registry.AOEnabled(id) {
			inst.AOLow, inst.AOHigh = packAO(g.occluderAt, p)
		}
		out.Buckets[id] = append(out.Buckets[id], inst)
	}

	// Entity collider cells join the solid index without block data.
	for _, a := range g.anchors {
		out.Solid = append(out.Solid, a.Colliders...)
	}

	return out
}
