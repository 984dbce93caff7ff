package world

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"mc-lite/internal/audio"
	"mc-lite/internal/explosion"
	"mc-lite/internal/model"
	"mc-lite/internal/profiling"
	"mc-lite/internal/registry"
	"mc-lite/internal/render"
)

// Persistence is the world-facing surface of the delta store.
type Persistence interface {
	DeltaSource
	RecordChange(cx, cz int, pos [3]int, t registry.BlockID)
	Flush(cx, cz int)
}

// Options wires the world to its collaborators. Zero-value fields fall back
// to no-op implementations so tests and headless runs need no setup.
type Options struct {
	Seed           uint32
	RenderDistance int
	Persist        Persistence
	Sink           render.Sink
	Audio          audio.Player
	Models         model.Loader
	Logger         *zap.Logger
}

// fuse is a pending chain reaction.
type fuse struct {
	pos   BlockPos
	delay float64
}

// World owns the live chunks and routes every inter-chunk query. The
// gameplay loop is single-threaded; generation, blasts, and persistence I/O
// run on workers and hand results back through channels drained in Update.
type World struct {
	seed       uint32
	noise      Noise
	renderDist int

	chunks   map[ChunkCoord]*Chunk
	streamer *streamer
	blast    *explosion.Worker

	persist Persistence
	sink    render.Sink
	audio   audio.Player
	models  model.Loader
	log     *zap.Logger

	effects  *effects
	igniting map[BlockPos]struct{}
	fuses    []fuse
}

// New creates a world for the given seed.
func New(opts Options) *World {
	if opts.RenderDistance <= 0 {
		opts.RenderDistance = DefaultRenderDistance
	}
	if opts.Persist == nil {
		opts.Persist = nopPersistence{}
	}
	if opts.Sink == nil {
		opts.Sink = render.NopSink{}
	}
	if opts.Audio == nil {
		opts.Audio = audio.NopPlayer{}
	}
	if opts.Models == nil {
		opts.Models = model.NopLoader{}
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	w := &World{
		seed:       opts.Seed,
		noise:      NewNoise(opts.Seed),
		renderDist: opts.RenderDistance,
		chunks:     make(map[ChunkCoord]*Chunk),
		persist:    opts.Persist,
		sink:       opts.Sink,
		audio:      opts.Audio,
		models:     opts.Models,
		log:        opts.Logger,
		effects:    newEffects(),
		igniting:   make(map[BlockPos]struct{}),
		blast:      explosion.NewWorker(),
	}
	w.streamer = newStreamer(opts.Seed, opts.Persist, opts.Logger)
	return w
}

// Close stops the worker pools. Pending deltas are flushed by the caller
// through the persistence service.
func (w *World) Close() {
	w.streamer.close()
	w.blast.Close()
}

// Seed returns the world seed.
func (w *World) Seed() uint32 { return w.seed }

// Noise exposes the terrain sampler (spawn search, fallback queries).
func (w *World) Noise() Noise { return w.noise }

// Update is the per-frame streaming step: apply finished generation, keep
// the window around the focus live, stream out far chunks, tick effects and
// pending chain reactions.
func (w *World) Update(focus mgl32.Vec3, dt float64) {
	defer profiling.Track("world.Update")()

	for _, out := range w.streamer.drain() {
		if c, ok := w.chunks[out.Coord]; ok && !c.Ready() {
			c.ApplyGen(w, out)
		}
		// Results for chunks unloaded while generating are dropped.
	}

	center := ChunkOf(int(math.Floor(float64(focus.X()))), int(math.Floor(float64(focus.Z()))))

	for dx := -w.renderDist; dx <= w.renderDist; dx++ {
		for dz := -w.renderDist; dz <= w.renderDist; dz++ {
			coord := ChunkCoord{X: center.X + dx, Z: center.Z + dz}
			c, ok := w.chunks[coord]
			if !ok {
				c = newChunk(coord)
				w.chunks[coord] = c
			}
			// Re-requesting a chunk already in flight is a cheap no-op, and
			// it retries generation after a transient worker failure.
			if !c.Ready() && c.state != ChunkUnloading {
				if w.streamer.request(coord) {
					c.state = ChunkGenerating
				}
			}
		}
	}

	// Unload with one chunk of hysteresis so border walking does not thrash.
	for coord, c := range w.chunks {
		if chebyshev(coord, center) <= w.renderDist+1 {
			continue
		}
		c.state = ChunkUnloading
		go w.persist.Flush(coord.X, coord.Z)
		c.dispose(w)
		delete(w.chunks, coord)
	}

	w.drainBlasts()
	w.tickFuses(dt)
	w.effects.tick(dt)
}

func chebyshev(a, b ChunkCoord) int {
	dx := abs(a.X - b.X)
	dz := abs(a.Z - b.Z)
	if dx > dz {
		return dx
	}
	return dz
}

// StreamSync generates and applies every chunk in the window on the calling
// goroutine. Startup uses it to guarantee ground under the spawn point;
// everything else goes through the async path in Update.
func (w *World) StreamSync(focus mgl32.Vec3, radius int) {
	center := ChunkOf(int(math.Floor(float64(focus.X()))), int(math.Floor(float64(focus.Z()))))
	for dx := -radius; dx <= radius; dx++ {
		for dz := -radius; dz <= radius; dz++ {
			coord := ChunkCoord{X: center.X + dx, Z: center.Z + dz}
			c, ok := w.chunks[coord]
			if ok && c.Ready() {
				continue
			}
			if !ok {
				c = newChunk(coord)
				w.chunks[coord] = c
			}

			raw := w.persist.GetDeltas(coord.X, coord.Z)
			deltas := make(map[BlockPos]registry.BlockID, len(raw))
			for k, t := range raw {
				deltas[BlockPos(k)] = t
			}
			c.ApplyGen(w, Generate(coord.X, coord.Z, w.seed, deltas))
		}
	}
}

// chunkAt returns the live chunk at coord, if any.
func (w *World) chunkAt(coord ChunkCoord) *Chunk {
	return w.chunks[coord]
}

// IsSolid answers collision queries. For chunks still generating it falls
// back to the raw terrain height so the player cannot drop through a column
// that has not materialized yet.
func (w *World) IsSolid(x, y, z int) bool {
	c := w.chunks[ChunkOf(x, z)]
	if c != nil && c.Ready() {
		return c.IsSolidAt(BlockPos{x, y, z})
	}
	return y <= w.noise.HeightRaw(x, z)
}

// GetBlock reads the authoritative type map of the owning chunk.
func (w *World) GetBlock(x, y, z int) (registry.BlockID, bool) {
	c := w.chunks[ChunkOf(x, z)]
	if c == nil || !c.Ready() {
		return registry.BlockAir, false
	}
	return c.BlockAt(BlockPos{x, y, z})
}

// VisibleAt reports whether a rendered mesh exists at the cell. Interaction
// raycasts only see materialized blocks.
func (w *World) VisibleAt(x, y, z int) bool {
	c := w.chunks[ChunkOf(x, z)]
	return c != nil && c.Ready() && c.VisibleAt(BlockPos{x, y, z})
}

// SetBlock places a block, routed to the owning chunk. Mutations against a
// chunk that is not ready are recorded as deltas and show up when its
// generation applies them.
func (w *World) SetBlock(x, y, z int, t registry.BlockID) {
	p := BlockPos{x, y, z}
	c := w.chunks[ChunkOf(x, z)]
	if c == nil || !c.Ready() {
		w.persist.RecordChange(ChunkOf(x, z).X, ChunkOf(x, z).Z, [3]int(p), t)
		return
	}
	c.AddBlockDynamic(w, p, t)
}

// RemoveBlock removes a block; bedrock is rejected in a ready chunk. For a
// chunk that is not ready the removal is recorded as an air delta without a
// type check.
func (w *World) RemoveBlock(x, y, z int) bool {
	p := BlockPos{x, y, z}
	c := w.chunks[ChunkOf(x, z)]
	if c == nil || !c.Ready() {
		w.persist.RecordChange(ChunkOf(x, z).X, ChunkOf(x, z).Z, [3]int(p), registry.BlockAir)
		return true
	}
	return c.RemoveBlock(w, p) == nil
}

// RemoveBlocksBatch removes many blocks grouped by owning chunk. Blast
// application uses this path.
func (w *World) RemoveBlocksBatch(list []BlockPos) {
	byChunk := make(map[ChunkCoord][]BlockPos)
	for _, p := range list {
		coord := ChunkOf(p[0], p[2])
		byChunk[coord] = append(byChunk[coord], p)
	}
	for coord, cells := range byChunk {
		c := w.chunks[coord]
		if c == nil || !c.Ready() {
			for _, p := range cells {
				w.persist.RecordChange(coord.X, coord.Z, [3]int(p), registry.BlockAir)
			}
			continue
		}
		for _, p := range cells {
			_ = c.RemoveBlock(w, p) // bedrock stays, by contract
		}
	}
}

// SpawnDigEffect borrows a pooled dig sprite at the block center.
func (w *World) SpawnDigEffect(p BlockPos) {
	w.effects.spawnDig(mgl32.Vec3{float32(p[0]) + 0.5, float32(p[1]) + 0.5, float32(p[2]) + 0.5})
	w.audio.PlayOneshot("dig", 0.8)
}

// SpawnExplosionEffect borrows a billboard and a blast sphere.
func (w *World) SpawnExplosionEffect(p BlockPos) {
	w.effects.spawnExplosion(mgl32.Vec3{float32(p[0]) + 0.5, float32(p[1]) + 0.5, float32(p[2]) + 0.5})
	w.audio.PlayOneshot("explosion", 1.0)
}

// OpenChest starts the lid animation. False when the chest was already
// opened; the open state is terminal.
func (w *World) OpenChest(p BlockPos) bool {
	if ok := w.effects.openChest(p); !ok {
		return false
	}
	w.audio.PlayOneshot("chest_open", 0.7)
	return true
}

// Explode ignites the cell at p: the TNT disappears immediately, a 7x7x7
// snapshot goes to the blast worker, and the result is applied when it
// arrives. Cells already igniting never re-ignite.
func (w *World) Explode(p BlockPos) {
	if _, ok := w.igniting[p]; ok {
		return
	}
	w.igniting[p] = struct{}{}

	w.RemoveBlock(p[0], p[1], p[2])

	radius := explosion.DefaultRadius
	snap := make(map[[3]int]registry.BlockID, (2*radius+1)*(2*radius+1)*(2*radius+1))
	for dx := -radius; dx <= radius; dx++ {
		for dy := -radius; dy <= radius; dy++ {
			for dz := -radius; dz <= radius; dz++ {
				x, y, z := p[0]+dx, p[1]+dy, p[2]+dz
				if id, ok := w.GetBlock(x, y, z); ok {
					snap[[3]int{x, y, z}] = id
				}
			}
		}
	}
	igniting := make(map[[3]int]struct{}, len(w.igniting))
	for k := range w.igniting {
		igniting[[3]int(k)] = struct{}{}
	}

	if !w.blast.Submit(explosion.Request{
		Center:   [3]int(p),
		Radius:   radius,
		Blocks:   snap,
		Igniting: igniting,
	}) {
		delete(w.igniting, p)
	}
}

// drainBlasts applies finished blast results and schedules chain reactions.
func (w *World) drainBlasts() {
	for _, res := range w.blast.Drain() {
		destroy := make([]BlockPos, 0, len(res.Destroy))
		for _, c := range res.Destroy {
			destroy = append(destroy, BlockPos(c))
		}
		w.RemoveBlocksBatch(destroy)

		for _, ign := range res.Ignite {
			p := BlockPos(ign.Pos)
			if _, ok := w.igniting[p]; ok {
				continue
			}
			w.igniting[p] = struct{}{}
			w.fuses = append(w.fuses, fuse{pos: p, delay: ign.Delay})
		}

		center := BlockPos(res.Center)
		w.SpawnExplosionEffect(center)
		delete(w.igniting, center)
	}
}

// tickFuses counts down scheduled chain reactions and re-enters Explode.
func (w *World) tickFuses(dt float64) {
	remaining := w.fuses[:0]
	for _, f := range w.fuses {
		f.delay -= dt
		if f.delay > 0 {
			remaining = append(remaining, f)
			continue
		}
		// The cell is already marked igniting; clear it so Explode re-enters.
		delete(w.igniting, f.pos)
		w.Explode(f.pos)
	}
	w.fuses = remaining
}

// ChunkCount reports the number of live chunks.
func (w *World) ChunkCount() int {
	return len(w.chunks)
}

// ChunkState returns the lifecycle state of a chunk column, ChunkPending for
// unknown coordinates.
func (w *World) ChunkState(coord ChunkCoord) ChunkState {
	if c, ok := w.chunks[coord]; ok {
		return c.state
	}
	return ChunkPending
}

// nopPersistence keeps the engine running when no store is configured.
type nopPersistence struct{}

func (nopPersistence) GetDeltas(int, int) map[[3]int]registry.BlockID      { return nil }
func (nopPersistence) RecordChange(int, int, [3]int, registry.BlockID)     {}
func (nopPersistence) Flush(int, int)                                      {}
