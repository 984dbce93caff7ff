package player

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"

	"mc-lite/internal/world"
)

const (
	spawnAttempts = 1000
	spawnRange    = 10000
	spawnY        = 70
)

// FindSpawn samples random columns and returns the first hospitable one:
// forest or plains, above the waterline. Falls back to the origin column.
func FindSpawn(n world.Noise, rng *rand.Rand) mgl32.Vec3 {
	for i := 0; i < spawnAttempts; i++ {
		x := rng.Intn(2*spawnRange+1) - spawnRange
		z := rng.Intn(2*spawnRange+1) - spawnRange

		biome := n.BiomeAt(x, z)
		if biome != world.BiomeForest && biome != world.BiomePlains {
			continue
		}
		if float64(n.SurfaceHeight(x, z)) <= -0.5 {
			continue
		}
		return mgl32.Vec3{float32(x), spawnY, float32(z)}
	}
	return mgl32.Vec3{0, spawnY, 0}
}
