package game

import (
	"testing"

	"go.uber.org/zap"

	"mc-lite/internal/config"
	"mc-lite/internal/registry"
)

func testConfig(t *testing.T) config.Config {
	cfg := config.Default()
	cfg.Seed = 7
	cfg.SaveDir = t.TempDir()
	return cfg
}

func TestSessionBootAndClose(t *testing.T) {
	s := NewSession(testConfig(t), Collaborators{}, zap.NewNop())

	for i := 0; i < 10; i++ {
		s.Update(1.0 / 60)
	}
	s.Close()
}

func TestSessionRestoresPlayerAcrossRuns(t *testing.T) {
	cfg := testConfig(t)

	s := NewSession(cfg, Collaborators{}, zap.NewNop())
	s.Player.Body.Pos[0] = 123
	s.Player.Body.Yaw = 0.75
	s.Close()

	s2 := NewSession(cfg, Collaborators{}, zap.NewNop())
	defer s2.Close()

	if s2.Player.Body.Pos[0] != 123 {
		t.Errorf("player x = %f, want 123", s2.Player.Body.Pos[0])
	}
	if s2.Player.Body.Yaw != 0.75 {
		t.Errorf("player yaw = %f, want 0.75", s2.Player.Body.Yaw)
	}
}

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	cfg := testConfig(t)
	s := NewSession(cfg, Collaborators{}, zap.NewNop())
	defer s.Close()

	// Mine a block through the world and snapshot the result.
	n := s.World.Noise()
	h := n.SurfaceHeight(10, 10)
	s.World.RemoveBlock(10, h, 10)

	snap := s.Snapshot()
	if snap.World.Seed != cfg.Seed {
		t.Errorf("snapshot seed = %d, want %d", snap.World.Seed, cfg.Seed)
	}

	cfg2 := testConfig(t)
	cfg2.Seed = cfg.Seed
	s2 := NewSession(cfg2, Collaborators{}, zap.NewNop())
	defer s2.Close()

	if err := s2.Restore(snap); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if got := s2.Persist.GetDeltas(0, 0)[[3]int{10, h, 10}]; got != registry.BlockAir {
		t.Errorf("restored delta = %s, want air", registry.NameOf(got))
	}
	if s2.Player.Body.Pos != s.Player.Body.Pos {
		t.Errorf("restored player position differs")
	}
}
