package persist

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/syndtr/goleveldb/leveldb/util"
	"go.uber.org/zap"

	"mc-lite/internal/registry"
)

// Persistent state layout. Block types travel as their stable names; "air"
// marks a removal.

// ChunkDelta is the stored override set of one chunk column.
type ChunkDelta struct {
	CX      int               `json:"cx"`
	CZ      int               `json:"cz"`
	Changes map[string]string `json:"changes"` // "x,y,z" -> block name
}

// SavedWorld is the seed plus every chunk's delta record.
type SavedWorld struct {
	Seed   uint32       `json:"seed"`
	Chunks []ChunkDelta `json:"chunks"`
}

// SavedPlayer is the spawn-restorable player state.
type SavedPlayer struct {
	X     float32 `json:"x"`
	Y     float32 `json:"y"`
	Z     float32 `json:"z"`
	Yaw   float32 `json:"yaw"`
	Pitch float32 `json:"pitch"`
}

// Snapshot is the payload the external save UI exchanges with the engine.
type Snapshot struct {
	ID     string      `json:"id"`
	Player SavedPlayer `json:"player"`
	World  SavedWorld  `json:"world"`
}

const playerKey = "player"

// encodeRecord serializes a delta map as the {"x,y,z": name} wire format.
func encodeRecord(rec map[[3]int]registry.BlockID) ([]byte, error) {
	m := make(map[string]string, len(rec))
	for p, t := range rec {
		m[posKey(p)] = registry.NameOf(t)
	}
	return json.Marshal(m)
}

func decodeRecord(data []byte) (map[[3]int]registry.BlockID, error) {
	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	rec := make(map[[3]int]registry.BlockID, len(m))
	for k, name := range m {
		p, err := parsePosKey(k)
		if err != nil {
			return nil, err
		}
		id, ok := registry.ByName(name)
		if !ok {
			return nil, fmt.Errorf("unknown block name %q", name)
		}
		rec[p] = id
	}
	return rec, nil
}

func posKey(p [3]int) string {
	return fmt.Sprintf("%d,%d,%d", p[0], p[1], p[2])
}

func parsePosKey(k string) ([3]int, error) {
	var p [3]int
	parts := strings.Split(k, ",")
	if len(parts) != 3 {
		return p, fmt.Errorf("bad position key %q", k)
	}
	for i, part := range parts {
		if _, err := fmt.Sscanf(part, "%d", &p[i]); err != nil {
			return p, fmt.Errorf("bad position key %q: %w", k, err)
		}
	}
	return p, nil
}

func parseChunkKey(k []byte) (cx, cz int, ok bool) {
	s := strings.TrimPrefix(string(k), "chunk|")
	if s == string(k) {
		return 0, 0, false
	}
	if _, err := fmt.Sscanf(s, "%d,%d", &cx, &cz); err != nil {
		return 0, 0, false
	}
	return cx, cz, true
}

// SnapshotWorld assembles the full saved state: every durable record merged
// with unflushed dirty changes.
func (s *Service) SnapshotWorld() SavedWorld {
	merged := make(map[[2]int]map[[3]int]registry.BlockID)

	s.mu.Lock()
	db := s.db
	s.mu.Unlock()

	if db != nil {
		iter := db.NewIterator(util.BytesPrefix([]byte("chunk|")), nil)
		for iter.Next() {
			cx, cz, ok := parseChunkKey(iter.Key())
			if !ok {
				continue
			}
			rec, err := decodeRecord(iter.Value())
			if err != nil {
				s.log.Warn("skipping corrupt delta record", zap.Error(err))
				continue
			}
			merged[[2]int{cx, cz}] = rec
		}
		iter.Release()
	}

	s.mu.Lock()
	for coord, changes := range s.dirty {
		rec := merged[coord]
		if rec == nil {
			rec = make(map[[3]int]registry.BlockID, len(changes))
			merged[coord] = rec
		}
		for p, t := range changes {
			rec[p] = t
		}
	}
	s.mu.Unlock()

	saved := SavedWorld{Seed: s.seed}
	for coord, rec := range merged {
		cd := ChunkDelta{CX: coord[0], CZ: coord[1], Changes: make(map[string]string, len(rec))}
		for p, t := range rec {
			cd.Changes[posKey(p)] = registry.NameOf(t)
		}
		saved.Chunks = append(saved.Chunks, cd)
	}
	return saved
}

// NewSnapshot wraps world and player state with a fresh identifier.
func (s *Service) NewSnapshot(player SavedPlayer) Snapshot {
	return Snapshot{
		ID:     uuid.NewString(),
		Player: player,
		World:  s.SnapshotWorld(),
	}
}

// InjectSnapshot replaces the delta state with the given save. Existing
// dirty changes are discarded; durable records are rewritten.
func (s *Service) InjectSnapshot(snap Snapshot) error {
	s.mu.Lock()
	s.dirty = make(map[[2]int]map[[3]int]registry.BlockID)
	s.cache.Purge()
	db := s.db
	s.mu.Unlock()

	for _, cd := range snap.World.Chunks {
		rec := make(map[[3]int]registry.BlockID, len(cd.Changes))
		for k, name := range cd.Changes {
			p, err := parsePosKey(k)
			if err != nil {
				return err
			}
			id, ok := registry.ByName(name)
			if !ok {
				return fmt.Errorf("unknown block name %q", name)
			}
			rec[p] = id
		}

		if db == nil {
			s.mu.Lock()
			s.dirty[[2]int{cd.CX, cd.CZ}] = rec
			s.mu.Unlock()
			continue
		}
		data, err := encodeRecord(rec)
		if err != nil {
			return err
		}
		if err := db.Put(chunkKey(cd.CX, cd.CZ), data, nil); err != nil {
			return fmt.Errorf("inject chunk (%d,%d): %w", cd.CX, cd.CZ, err)
		}
	}

	if err := s.SavePlayer(snap.Player); err != nil {
		return err
	}
	return nil
}

// SavePlayer stores the player state, durable when possible.
func (s *Service) SavePlayer(p SavedPlayer) error {
	s.mu.Lock()
	db := s.db
	s.mu.Unlock()
	if db == nil {
		return nil
	}
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	if err := db.Put([]byte(playerKey), data, nil); err != nil {
		return fmt.Errorf("save player: %w", err)
	}
	return nil
}

// LoadPlayer reads stored player state; ok is false for a fresh world.
func (s *Service) LoadPlayer() (SavedPlayer, bool) {
	var p SavedPlayer
	s.mu.Lock()
	db := s.db
	s.mu.Unlock()
	if db == nil {
		return p, false
	}
	data, err := db.Get([]byte(playerKey), nil)
	if err != nil {
		return p, false
	}
	if err := json.Unmarshal(data, &p); err != nil {
		s.log.Warn("player record corrupt", zap.Error(err))
		return p, false
	}
	return p, true
}
