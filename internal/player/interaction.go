package player

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"mc-lite/internal/item"
	"mc-lite/internal/physics"
	"mc-lite/internal/registry"
	"mc-lite/internal/world"
)

// rayWorld adapts the world's rendered-block query to the raycast interface.
// Interaction only sees materialized meshes, so a chunk that is still
// generating cannot be targeted.
type rayWorld struct {
	w *world.World
}

func (r rayWorld) Occupied(x, y, z int) bool {
	return r.w.VisibleAt(x, y, z)
}

func (p *Player) interactionRay() physics.RayHit {
	return physics.Raycast(p.EyePosition(), p.FrontVector(), InteractRange, rayWorld{p.World})
}

// Primary handles a left click: open a chest, trigger TNT, or mine the
// block. Bedrock shrugs it off; a miss is just a swing.
func (p *Player) Primary() {
	hit := p.interactionRay()
	if !hit.Hit {
		return
	}

	pos := world.BlockPos(hit.Block)
	id, ok := p.World.GetBlock(pos[0], pos[1], pos[2])
	if !ok {
		return
	}

	switch id {
	case registry.BlockChest:
		p.openChest(pos)
	case registry.BlockEndStone:
		// unminable
	case registry.BlockTNT:
		p.World.Explode(pos)
	default:
		if p.World.RemoveBlock(pos[0], pos[1], pos[2]) {
			p.World.SpawnDigEffect(pos)
			drop := item.NewStack(id, 1)
			p.Inventory.Add(&drop)
		}
	}
}

// Secondary handles a right click: open an unopened chest, place the held
// block against the hit face, or bridge into the sky when aiming at nothing.
func (p *Player) Secondary() {
	hit := p.interactionRay()

	if hit.Hit {
		pos := world.BlockPos(hit.Block)
		// An unopened chest takes precedence over placement.
		if id, _ := p.World.GetBlock(pos[0], pos[1], pos[2]); id == registry.BlockChest {
			if p.openChest(pos) {
				return
			}
		}

		place := world.BlockPos{
			hit.Block[0] + hit.Normal[0],
			hit.Block[1] + hit.Normal[1],
			hit.Block[2] + hit.Normal[2],
		}
		p.placeAt(place)
		return
	}

	p.skyBridge()
}

// placeAt places the selected block at the cell unless it is taken or
// overlaps the player's box.
func (p *Player) placeAt(pos world.BlockPos) bool {
	if p.World.IsSolid(pos[0], pos[1], pos[2]) {
		return false
	}
	if _, taken := p.World.GetBlock(pos[0], pos[1], pos[2]); taken {
		return false
	}
	body := p.Body.Pos
	if physics.IntersectsBlock(float64(body.X()), float64(body.Y()), float64(body.Z()), pos[0], pos[1], pos[2]) {
		return false
	}

	sel := p.Inventory.Selected()
	if sel == nil || sel.Empty() {
		return false
	}
	id, _ := p.Inventory.ConsumeSelected()
	p.World.SetBlock(pos[0], pos[1], pos[2], id)
	return true
}

// skyBridge steps along the camera ray and places the held block at the
// first empty cell that touches a solid neighbor whose face points along
// the ray, so the new block visually continues the bridge. At most one
// block per click.
func (p *Player) skyBridge() {
	sel := p.Inventory.Selected()
	if sel == nil || sel.Empty() {
		return
	}

	start := p.EyePosition()
	dir := p.FrontVector()

	for dist := float32(physics.RayStep); dist <= InteractRange; dist += physics.RayStep {
		sample := start.Add(dir.Mul(dist))
		cell := world.BlockPos{
			int(math.Floor(float64(sample.X()))),
			int(math.Floor(float64(sample.Y()))),
			int(math.Floor(float64(sample.Z()))),
		}
		if _, taken := p.World.GetBlock(cell[0], cell[1], cell[2]); taken {
			continue
		}

		for _, d := range world.Neighbors6 {
			n := cell.Offset(d)
			if !p.World.IsSolid(n[0], n[1], n[2]) {
				continue
			}
			// Normal of the neighbor's face touching the cell.
			normal := mgl32.Vec3{float32(-d[0]), float32(-d[1]), float32(-d[2])}
			if dir.Dot(normal) > 0.01 {
				if p.placeAt(cell) {
					return
				}
			}
		}
	}
}

func (p *Player) openChest(pos world.BlockPos) bool {
	if !p.World.OpenChest(pos) {
		return false
	}
	for _, drop := range chestLoot(pos, p.rng) {
		drop := drop
		p.Inventory.Add(&drop)
	}
	return true
}
