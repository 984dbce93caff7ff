package world

import "mc-lite/internal/registry"

// Biome classifies a world column and drives terrain and vegetation.
type Biome struct {
	ID     int
	Name   string
	Top    registry.BlockID // surface block above sea level
	Filler registry.BlockID // sub-surface block under the top layer
}

var (
	BiomePlains = &Biome{
		ID:     0,
		Name:   "plains",
		Top:    registry.BlockGrass,
		Filler: registry.BlockDirt,
	}
	BiomeForest = &Biome{
		ID:     1,
		Name:   "forest",
		Top:    registry.BlockGrass,
		Filler: registry.BlockDirt,
	}
	BiomeAzalea = &Biome{
		ID:     2,
		Name:   "azalea",
		Top:    registry.BlockMoss,
		Filler: registry.BlockDirt,
	}
	BiomeDesert = &Biome{
		ID:     3,
		Name:   "desert",
		Top:    registry.BlockSand,
		Filler: registry.BlockSand,
	}
	BiomeSwamp = &Biome{
		ID:     4,
		Name:   "swamp",
		Top:    registry.BlockSwampGrass,
		Filler: registry.BlockDirt,
	}
)

// BiomeAt classifies the column at world (x, z) from two independent noise
// channels (temperature and humidity).
func (n Noise) BiomeAt(x, z int) *Biome {
	fx, fz := float64(x), float64(z)
	temp := n.Sample(fx, fz, 0.01)
	hum := n.Sample(fx+1000, fz+1000, 0.015)

	switch {
	case temp > 1.2:
		return BiomeForest
	case temp > 0.6 && hum > 0:
		return BiomeAzalea
	case temp < -1.5:
		return BiomeDesert
	case temp >= -1.5 && temp < -0.8 && hum > 0.5:
		return BiomeSwamp
	default:
		return BiomePlains
	}
}
