package game

import (
	"go.uber.org/zap"

	"mc-lite/internal/audio"
	"mc-lite/internal/config"
	"mc-lite/internal/input"
	"mc-lite/internal/model"
	"mc-lite/internal/persist"
	"mc-lite/internal/player"
	"mc-lite/internal/profiling"
	"mc-lite/internal/render"
	"mc-lite/internal/world"
)

// Session owns one running world: persistence, chunk streaming, the player,
// and the per-frame update order. External collaborators (renderer, audio,
// models) plug in through their contracts; nil fields fall back to no-ops.
type Session struct {
	Config config.Config

	World   *world.World
	Player  *player.Player
	Input   *input.Manager
	Persist *persist.Service

	log *zap.Logger
}

// Collaborators carries the optional external backends of a session.
type Collaborators struct {
	Sink   render.Sink
	Audio  audio.Player
	Models model.Loader
}

// NewSession boots the engine: open the store, build the world, restore or
// search the spawn.
func NewSession(cfg config.Config, ext Collaborators, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}

	store := persist.Open(cfg.SaveDir, cfg.Seed, log)

	w := world.New(world.Options{
		Seed:           cfg.Seed,
		RenderDistance: cfg.RenderDistance,
		Persist:        store,
		Sink:           ext.Sink,
		Audio:          ext.Audio,
		Models:         ext.Models,
		Logger:         log,
	})

	p := player.New(w)
	if saved, ok := store.LoadPlayer(); ok {
		p.Body.Pos[0] = saved.X
		p.Body.Pos[1] = saved.Y
		p.Body.Pos[2] = saved.Z
		p.Body.Yaw = saved.Yaw
		p.Pitch = saved.Pitch
	}

	// Ground under the spawn before the first physics step; the rest of the
	// window streams in asynchronously.
	w.StreamSync(p.Position(), 1)

	log.Info("session started",
		zap.Uint32("seed", cfg.Seed),
		zap.Int("renderDistance", cfg.RenderDistance),
		zap.Bool("persistent", store.Available()))

	return &Session{
		Config:  cfg,
		World:   w,
		Player:  p,
		Input:   input.NewManager(),
		Persist: store,
		log:     log,
	}
}

// Update advances one frame: stream the world around the player, then run
// the player controller. Input edges are consumed here.
func (s *Session) Update(dt float64) {
	defer profiling.Track("game.Update")()

	s.World.Update(s.Player.Position(), dt)
	s.Player.Update(dt, s.Input)
	s.Input.EndFrame()
}

// SavedPlayer captures the restorable player state.
func (s *Session) SavedPlayer() persist.SavedPlayer {
	pos := s.Player.Position()
	return persist.SavedPlayer{
		X:     pos.X(),
		Y:     pos.Y(),
		Z:     pos.Z(),
		Yaw:   s.Player.Body.Yaw,
		Pitch: s.Player.Pitch,
	}
}

// Snapshot assembles the save payload for the external save UI.
func (s *Session) Snapshot() persist.Snapshot {
	return s.Persist.NewSnapshot(s.SavedPlayer())
}

// Restore injects a save payload and respawns the player from it. Live
// chunks regenerate with the new deltas as they stream back in.
func (s *Session) Restore(snap persist.Snapshot) error {
	if err := s.Persist.InjectSnapshot(snap); err != nil {
		return err
	}
	s.Player.Body.Pos[0] = snap.Player.X
	s.Player.Body.Pos[1] = snap.Player.Y
	s.Player.Body.Pos[2] = snap.Player.Z
	s.Player.Body.Yaw = snap.Player.Yaw
	s.Player.Pitch = snap.Player.Pitch
	return nil
}

// Close flushes persistence and stops the worker pools.
func (s *Session) Close() {
	if err := s.Persist.SavePlayer(s.SavedPlayer()); err != nil {
		s.log.Warn("player save failed", zap.Error(err))
	}
	s.World.Close()
	if err := s.Persist.Close(); err != nil {
		s.log.Warn("persistence close failed", zap.Error(err))
	}
}
