package main

import (
	"flag"
	"sync/atomic"
	"time"

	"github.com/xlab/closer"
	"go.uber.org/zap"

	"mc-lite/internal/config"
	"mc-lite/internal/game"
	"mc-lite/internal/profiling"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to a YAML config file")
		seed       = flag.Uint("seed", 0, "world seed; 0 picks a random one")
		renderDist = flag.Int("render-distance", 0, "chunk radius kept live around the player")
		resScale   = flag.Float64("resolution-scale", 0, "render resolution scale")
		saveDir    = flag.String("save-dir", "", "directory for the world store")
		fpsLimit   = flag.Int("fps", 120, "simulation rate cap; 0 uncapped")
	)
	flag.Parse()

	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("config load failed", zap.Error(err))
	}
	if *seed != 0 {
		cfg.Seed = uint32(*seed)
	}
	if cfg.Seed == 0 {
		cfg.Seed = uint32(time.Now().UnixNano())
	}
	if *renderDist != 0 {
		cfg.RenderDistance = *renderDist
	}
	if *resScale != 0 {
		cfg.ResolutionScale = *resScale
	}
	if *saveDir != "" {
		cfg.SaveDir = *saveDir
	}
	cfg.Clamp()

	session := game.NewSession(cfg, game.Collaborators{}, log)

	var stopped atomic.Bool
	closer.Bind(func() {
		stopped.Store(true)
		session.Close()
		log.Info("session closed")
	})

	go func() {
		limiter := game.NewFPSLimiter(*fpsLimit)
		last := time.Now()
		for !stopped.Load() {
			profiling.ResetFrame()
			now := time.Now()
			dt := now.Sub(last).Seconds()
			last = now

			session.Update(dt)
			limiter.Wait()
		}
	}()

	closer.Hold()
}
