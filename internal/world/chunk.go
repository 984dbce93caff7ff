package world

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"

	"mc-lite/internal/model"
	"mc-lite/internal/registry"
	"mc-lite/internal/render"
)

// ChunkState tracks the chunk lifecycle.
type ChunkState int

const (
	ChunkPending ChunkState = iota
	ChunkGenerating
	ChunkReady
	ChunkUnloading
	ChunkDisposed
)

// ErrBedrock is returned when a mutation targets the unminable floor layer.
var ErrBedrock = errors.New("bedrock is unminable")

// bucketRef locates a live instance inside a render bucket so a mutation can
// zero it without rebuilding the chunk mesh.
type bucketRef struct {
	id    registry.BlockID
	index int
}

// anchorInstance pairs a generated entity anchor with its cloned model.
type anchorInstance struct {
	anchor EntityAnchor
	inst   model.Instance
}

// Chunk owns the block data of one 16x16 column. All mutation goes through
// the chunk; the world routes by coordinate. Neighbor access always takes
// the World as an explicit argument, chunks never hold a back-reference.
type Chunk struct {
	Coord ChunkCoord

	state ChunkState

	blocks    map[BlockPos]registry.BlockID
	solid     map[BlockPos]struct{}
	visible   map[BlockPos]struct{}
	deltas    map[BlockPos]registry.BlockID
	colliders map[BlockPos]struct{}

	buckets   render.Buckets
	instIndex map[BlockPos]bucketRef
	dynamic   map[BlockPos]registry.BlockID

	anchors []anchorInstance
}

func newChunk(coord ChunkCoord) *Chunk {
	return &Chunk{
		Coord:     coord,
		state:     ChunkPending,
		blocks:    make(map[BlockPos]registry.BlockID),
		solid:     make(map[BlockPos]struct{}),
		visible:   make(map[BlockPos]struct{}),
		deltas:    make(map[BlockPos]registry.BlockID),
		colliders: make(map[BlockPos]struct{}),
		instIndex: make(map[BlockPos]bucketRef),
		dynamic:   make(map[BlockPos]registry.BlockID),
	}
}

// Ready reports whether generator output has been applied.
func (c *Chunk) Ready() bool {
	return c.state == ChunkReady
}

// State returns the lifecycle state.
func (c *Chunk) State() ChunkState {
	return c.state
}

// ApplyGen installs worker output: block map, solidity and visibility
// indices, instanced buckets, and the entity anchors with their colliders.
// Output arriving after stream-out is dropped.
func (c *Chunk) ApplyGen(w *World, out *GenOutput) {
	if c.state == ChunkUnloading || c.state == ChunkDisposed {
		return
	}

	c.blocks = out.Blocks
	for _, p := range out.Solid {
		c.solid[p] = struct{}{}
	}
	for _, p := range out.Visible {
		c.visible[p] = struct{}{}
	}
	c.buckets = out.Buckets
	for id, instances := range out.Buckets {
		for i, inst := range instances {
			c.instIndex[BlockPos{int(inst.X), int(inst.Y), int(inst.Z)}] = bucketRef{id: id, index: i}
		}
	}

	for _, a := range out.Anchors {
		c.spawnAnchor(w, a)
	}

	w.sink.UploadChunk(c.Coord.X, c.Coord.Z, c.buckets)
	c.state = ChunkReady
}

// spawnAnchor clones the model for an anchor and registers its collider
// cells. A missing asset degrades to a skipped anchor.
func (c *Chunk) spawnAnchor(w *World, a EntityAnchor) {
	h, err := w.models.Load(anchorModelName(a.Kind))
	if err != nil {
		for _, p := range a.Colliders {
			delete(c.solid, p)
		}
		return
	}
	pos := mgl32.Vec3{float32(a.Pos[0]) + 0.5, float32(a.Pos[1]), float32(a.Pos[2]) + 0.5}
	inst := h.Clone(pos)
	for _, p := range a.Colliders {
		c.colliders[p] = struct{}{}
	}
	c.anchors = append(c.anchors, anchorInstance{anchor: a, inst: inst})
}

func anchorModelName(k EntityKind) string {
	switch k {
	case AnchorRealisticTree:
		return "realistic_tree"
	case AnchorRover:
		return "rover"
	default:
		return "gun_man"
	}
}

// AddBlockDynamic is the authoritative mutation. Placing air removes the
// block; anything else inserts or replaces it. Removal reveals previously
// occluded neighbors, here and in adjacent chunks. Every mutation lands in
// the delta map so persistence captures it.
func (c *Chunk) AddBlockDynamic(w *World, p BlockPos, t registry.BlockID) {
	old, hadOld := c.blocks[p]

	// Drop the old visual.
	if ref, ok := c.instIndex[p]; ok {
		w.sink.HideInstance(c.Coord.X, c.Coord.Z, ref.id, ref.index)
		delete(c.instIndex, p)
	}
	if _, ok := c.dynamic[p]; ok {
		w.sink.RemoveDynamic([3]int(p))
		delete(c.dynamic, p)
	}

	if t == registry.BlockAir {
		delete(c.blocks, p)
		delete(c.visible, p)
		delete(c.solid, p)

		if hadOld && old != registry.BlockAir {
			c.revealNeighbors(w, p)
		}
	} else {
		c.blocks[p] = t
		c.visible[p] = struct{}{}
		if registry.IsSolid(t) {
			c.solid[p] = struct{}{}
		} else {
			delete(c.solid, p)
		}
		c.dynamic[p] = t
		w.sink.AddDynamic([3]int(p), t)
	}

	c.deltas[p] = t
	w.persist.RecordChange(c.Coord.X, c.Coord.Z, [3]int(p), t)
}

// revealNeighbors materializes blocks whose last covering face just opened.
func (c *Chunk) revealNeighbors(w *World, p BlockPos) {
	for _, d := range Neighbors6 {
		n := p.Offset(d)
		owner := ChunkOf(n[0], n[2])
		if owner == c.Coord {
			if id, ok := c.blocks[n]; ok {
				if _, vis := c.visible[n]; !vis {
					c.AddBlockDynamic(w, n, id)
				}
			}
			continue
		}
		if nc := w.chunkAt(owner); nc != nil && nc.Ready() {
			nc.CheckReveal(w, n)
		}
	}
}

// CheckReveal materializes a hidden block of this chunk after a neighboring
// chunk removed the face that covered it.
func (c *Chunk) CheckReveal(w *World, p BlockPos) {
	id, ok := c.blocks[p]
	if !ok {
		return
	}
	if _, vis := c.visible[p]; vis {
		return
	}
	c.AddBlockDynamic(w, p, id)
}

// RemoveBlock removes the block at p. Bedrock is rejected.
func (c *Chunk) RemoveBlock(w *World, p BlockPos) error {
	if c.blocks[p] == registry.BlockEndStone {
		return ErrBedrock
	}
	c.AddBlockDynamic(w, p, registry.BlockAir)
	return nil
}

// RemoveCollisionKey removes an entity collider cell and any block data at
// the same key, exactly like a block removal. Used when an entity model is
// destroyed.
func (c *Chunk) RemoveCollisionKey(w *World, p BlockPos) {
	delete(c.colliders, p)
	delete(c.solid, p)
	if _, ok := c.blocks[p]; ok {
		c.AddBlockDynamic(w, p, registry.BlockAir)
	}
}

// IsSolidAt reports collision-index membership.
func (c *Chunk) IsSolidAt(p BlockPos) bool {
	_, ok := c.solid[p]
	return ok
}

// BlockAt reads the authoritative type map.
func (c *Chunk) BlockAt(p BlockPos) (registry.BlockID, bool) {
	id, ok := c.blocks[p]
	return id, ok
}

// VisibleAt reports whether the block at p currently has a rendered mesh.
func (c *Chunk) VisibleAt(p BlockPos) bool {
	_, ok := c.visible[p]
	return ok
}

// SnapshotDeltas copies the accumulated mutations for a flush.
func (c *Chunk) SnapshotDeltas() map[[3]int]registry.BlockID {
	out := make(map[[3]int]registry.BlockID, len(c.deltas))
	for p, t := range c.deltas {
		out[[3]int(p)] = t
	}
	return out
}

// dispose releases renderer resources and entity models on stream-out.
func (c *Chunk) dispose(w *World) {
	w.sink.DisposeChunk(c.Coord.X, c.Coord.Z)
	for _, a := range c.anchors {
		a.inst.Dispose()
	}
	c.anchors = nil
	c.state = ChunkDisposed
}
