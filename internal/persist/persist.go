// Package persist stores per-chunk block deltas: every player mutation is a
// (position, type) override that regeneration applies over generator output.
// Two tiers: an in-memory dirty map absorbing writes synchronously, and a
// durable LevelDB store written on chunk stream-out. A missing or failing
// store degrades to memory-only; the engine never stops for persistence.
package persist

import (
	"fmt"
	"path/filepath"
	"sync"

	lru "github.com/hashicorp/golang-lru"
	"github.com/syndtr/goleveldb/leveldb"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"mc-lite/internal/registry"
)

const durableCacheSize = 128

// Service is the delta store. All methods are safe for concurrent use;
// RecordChange is synchronous and cheap, reads and flushes may touch disk
// and run on worker goroutines.
type Service struct {
	mu    sync.Mutex
	db    *leveldb.DB
	dirty map[[2]int]map[[3]int]registry.BlockID

	cache *lru.Cache // durable records by chunk coord
	log   *zap.Logger
	seed  uint32
}

// Open creates the service over a LevelDB directory. Store failures are
// logged and leave the service memory-only.
func Open(dir string, seed uint32, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	cache, _ := lru.New(durableCacheSize)
	s := &Service{
		dirty: make(map[[2]int]map[[3]int]registry.BlockID),
		cache: cache,
		log:   log,
		seed:  seed,
	}

	if dir == "" {
		return s
	}
	db, err := leveldb.OpenFile(filepath.Join(dir, "world"), nil)
	if err != nil {
		log.Warn("persistence unavailable, deltas stay in memory", zap.Error(err))
		return s
	}
	s.db = db
	return s
}

// Available reports whether the durable store is reachable.
func (s *Service) Available() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db != nil
}

// RecordChange notes a block mutation in the owning chunk's dirty map.
func (s *Service) RecordChange(cx, cz int, pos [3]int, t registry.BlockID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := [2]int{cx, cz}
	m := s.dirty[key]
	if m == nil {
		m = make(map[[3]int]registry.BlockID)
		s.dirty[key] = m
	}
	m[pos] = t
}

// GetDeltas returns the full override map for a chunk: durable record
// overlaid with unflushed dirty changes. The caller owns the result.
func (s *Service) GetDeltas(cx, cz int) map[[3]int]registry.BlockID {
	durable := s.durableRecord(cx, cz)

	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[[3]int]registry.BlockID, len(durable)+8)
	for p, t := range durable {
		out[p] = t
	}
	for p, t := range s.dirty[[2]int{cx, cz}] {
		out[p] = t
	}
	return out
}

// durableRecord loads the stored delta map of a chunk, through the LRU.
func (s *Service) durableRecord(cx, cz int) map[[3]int]registry.BlockID {
	key := [2]int{cx, cz}
	if v, ok := s.cache.Get(key); ok {
		return v.(map[[3]int]registry.BlockID)
	}

	s.mu.Lock()
	db := s.db
	s.mu.Unlock()
	if db == nil {
		return nil
	}

	data, err := db.Get(chunkKey(cx, cz), nil)
	if err != nil {
		if err != leveldb.ErrNotFound {
			s.log.Warn("delta read failed", zap.Int("cx", cx), zap.Int("cz", cz), zap.Error(err))
		}
		return nil
	}
	rec, err := decodeRecord(data)
	if err != nil {
		s.log.Warn("delta record corrupt", zap.Int("cx", cx), zap.Int("cz", cz), zap.Error(err))
		return nil
	}
	s.cache.Add(key, rec)
	return rec
}

// Flush writes the union of the durable record and the dirty changes of a
// chunk. Called on stream-out, after every RecordChange that preceded the
// unload; per-chunk ordering comes from the service mutex.
func (s *Service) Flush(cx, cz int) {
	merged := s.GetDeltas(cx, cz)
	if len(merged) == 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := [2]int{cx, cz}
	s.cache.Add(key, merged)

	if s.db == nil {
		// Keep the changes dirty so a later snapshot still sees them.
		return
	}

	data, err := encodeRecord(merged)
	if err != nil {
		s.log.Warn("delta encode failed", zap.Int("cx", cx), zap.Int("cz", cz), zap.Error(err))
		return
	}
	if err := s.db.Put(chunkKey(cx, cz), data, nil); err != nil {
		s.log.Warn("delta write failed", zap.Int("cx", cx), zap.Int("cz", cz), zap.Error(err))
		return
	}
	delete(s.dirty, key)
}

// FlushAll flushes every chunk with dirty changes, fanned out.
func (s *Service) FlushAll() error {
	s.mu.Lock()
	coords := make([][2]int, 0, len(s.dirty))
	for k := range s.dirty {
		coords = append(coords, k)
	}
	s.mu.Unlock()

	var g errgroup.Group
	for _, c := range coords {
		c := c
		g.Go(func() error {
			s.Flush(c[0], c[1])
			return nil
		})
	}
	return g.Wait()
}

// Close flushes everything and releases the store.
func (s *Service) Close() error {
	if err := s.FlushAll(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	if err != nil {
		return fmt.Errorf("close delta store: %w", err)
	}
	return nil
}

func chunkKey(cx, cz int) []byte {
	return []byte(fmt.Sprintf("chunk|%d,%d", cx, cz))
}
