package player

import (
	"math/rand"

	"mc-lite/internal/item"
	"mc-lite/internal/registry"
	"mc-lite/internal/world"
)

// skyLoot is the distinguished drop set of high-altitude chests (floating
// islands).
var skyLoot = []registry.BlockID{
	registry.BlockDiamond,
	registry.BlockEmerald,
	registry.BlockAmethyst,
	registry.BlockGoldBlock,
}

// commonLoot feeds ground-level chests (houses, shipwrecks).
var commonLoot = []registry.BlockID{
	registry.BlockPlanks,
	registry.BlockBricks,
	registry.BlockHayBale,
	registry.BlockIron,
	registry.BlockGlass,
	registry.BlockTNT,
}

// chestLoot rolls the drops for an opened chest. Chests above y=60 yield
// the distinguished set; anything lower gives two of one common item.
func chestLoot(pos world.BlockPos, rng *rand.Rand) []item.Stack {
	if pos[1] > 60 {
		out := make([]item.Stack, 0, len(skyLoot))
		for _, id := range skyLoot {
			out = append(out, item.NewStack(id, 1))
		}
		return out
	}
	pick := commonLoot[rng.Intn(len(commonLoot))]
	return []item.Stack{item.NewStack(pick, 2)}
}
