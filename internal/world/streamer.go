package world

import (
	"runtime"
	"sync"

	"go.uber.org/zap"

	"mc-lite/internal/profiling"
	"mc-lite/internal/registry"
)

// DeltaSource supplies the persisted overrides for a chunk about to be
// generated. Reads may block; they run on worker goroutines, and on the
// caller's goroutine for World.StreamSync.
type DeltaSource interface {
	GetDeltas(cx, cz int) map[[3]int]registry.BlockID
}

// streamer runs chunk generation on a worker pool. The main loop enqueues
// coordinates and drains finished outputs opportunistically; nothing shared
// crosses the boundary except the immutable request and the owned output.
type streamer struct {
	seed    uint32
	deltas  DeltaSource
	log     *zap.Logger

	jobs    chan ChunkCoord
	results chan *GenOutput

	mu      sync.Mutex
	pending map[ChunkCoord]struct{}

	closeOnce sync.Once
}

func newStreamer(seed uint32, deltas DeltaSource, log *zap.Logger) *streamer {
	s := &streamer{
		seed:    seed,
		deltas:  deltas,
		log:     log,
		jobs:    make(chan ChunkCoord, 256),
		results: make(chan *GenOutput, 256),
		pending: make(map[ChunkCoord]struct{}),
	}
	workers := max(runtime.NumCPU()-1, 1)
	for i := 0; i < workers; i++ {
		go s.worker()
	}
	return s
}

func (s *streamer) worker() {
	for coord := range s.jobs {
		s.generate(coord)
	}
}

func (s *streamer) generate(coord ChunkCoord) {
	defer func() {
		if r := recover(); r != nil {
			// Transient generator failure: the chunk stays pending and the
			// physics fallback covers it until a retry.
			s.log.Warn("chunk generation failed",
				zap.Int("cx", coord.X), zap.Int("cz", coord.Z), zap.Any("panic", r))
			s.mu.Lock()
			delete(s.pending, coord)
			s.mu.Unlock()
		}
	}()

	defer profiling.Track("world.Generate")()

	raw := s.deltas.GetDeltas(coord.X, coord.Z)
	deltas := make(map[BlockPos]registry.BlockID, len(raw))
	for k, t := range raw {
		deltas[BlockPos(k)] = t
	}

	out := Generate(coord.X, coord.Z, s.seed, deltas)

	s.mu.Lock()
	delete(s.pending, coord)
	s.mu.Unlock()

	s.results <- out
}

// request enqueues generation for a chunk unless it is already in flight.
// Returns false when the queue is saturated; the caller retries next frame.
func (s *streamer) request(coord ChunkCoord) bool {
	s.mu.Lock()
	if _, ok := s.pending[coord]; ok {
		s.mu.Unlock()
		return true
	}
	s.pending[coord] = struct{}{}
	s.mu.Unlock()

	select {
	case s.jobs <- coord:
		return true
	default:
		s.mu.Lock()
		delete(s.pending, coord)
		s.mu.Unlock()
		return false
	}
}

// drain returns all finished outputs without blocking.
func (s *streamer) drain() []*GenOutput {
	var out []*GenOutput
	for {
		select {
		case r := <-s.results:
			out = append(out, r)
		default:
			return out
		}
	}
}

func (s *streamer) close() {
	s.closeOnce.Do(func() { close(s.jobs) })
}
