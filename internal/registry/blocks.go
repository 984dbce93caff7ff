package registry

// BlockID identifies a registered block kind.
type BlockID uint8

const (
	BlockAir BlockID = iota

	// Opaque solids
	BlockStone
	BlockDirt
	BlockGrass
	BlockSand
	BlockWood
	BlockPlanks
	BlockOakPlanks
	BlockDarkPlanks
	BlockBluePlanks
	BlockGreenPlanks
	BlockWhitePlanks
	BlockBirchLog
	BlockMoss
	BlockAzaleaLog
	BlockCactus
	BlockCobblestone
	BlockMossyStone
	BlockBricks
	BlockHayBale
	BlockBookbox
	BlockChest
	BlockBed
	BlockCarBody
	BlockWheel
	BlockSkyStone
	BlockSkyGrass
	BlockSkyWood
	BlockEndStone
	BlockObsidian
	BlockMarble
	BlockGoldOre
	BlockIronOre
	BlockGoldBlock
	BlockIron
	BlockDiamond
	BlockEmerald
	BlockAmethyst
	BlockDebris
	BlockTNT
	BlockSwampGrass

	// Transparent but registered as cubes
	BlockGlass
	BlockGlassBlink
	BlockLeaves
	BlockAzaleaLeaves
	BlockYellowLeaves
	BlockSkyLeaves

	// Non-solid decoration
	BlockFlower
	BlockShortGrass
	BlockAllium
	BlockVine
	BlockLilypad
	BlockWater
	BlockSwampWater
	BlockCloud
	BlockChimney

	// Invisible collision proxy for entity models
	BlockCollider

	blockCount
)

// Definition holds the static properties of a block type.
// Properties never change at runtime; the registry is immutable after init.
type Definition struct {
	ID            BlockID
	Name          string
	IsSolid       bool
	IsTransparent bool
	AOEnabled     bool
}

var (
	blocks [blockCount]*Definition
	byName = make(map[string]BlockID, blockCount)
)

func register(def *Definition) {
	blocks[def.ID] = def
	byName[def.Name] = def.ID
}

func init() {
	register(&Definition{ID: BlockAir, Name: "air", IsTransparent: true})

	opaque := func(id BlockID, name string, ao bool) {
		register(&Definition{ID: id, Name: name, IsSolid: true, AOEnabled: ao})
	}
	transparentCube := func(id BlockID, name string) {
		register(&Definition{ID: id, Name: name, IsSolid: true, IsTransparent: true})
	}
	decoration := func(id BlockID, name string) {
		register(&Definition{ID: id, Name: name, IsTransparent: true})
	}

	// Terrain cubes carry per-vertex AO; decorative solids do not.
	opaque(BlockStone, "stone", true)
	opaque(BlockDirt, "dirt", true)
	opaque(BlockGrass, "grass", true)
	opaque(BlockSand, "sand", true)
	opaque(BlockWood, "wood", true)
	opaque(BlockPlanks, "planks", true)
	opaque(BlockOakPlanks, "oak_planks", true)
	opaque(BlockDarkPlanks, "dark_planks", true)
	opaque(BlockBluePlanks, "blue_planks", true)
	opaque(BlockGreenPlanks, "green_planks", true)
	opaque(BlockWhitePlanks, "white_planks", true)
	opaque(BlockBirchLog, "birch_log", false)
	opaque(BlockMoss, "moss", true)
	opaque(BlockAzaleaLog, "azalea_log", false)
	opaque(BlockCactus, "cactus", false)
	opaque(BlockCobblestone, "cobblestone", true)
	opaque(BlockMossyStone, "mossy_stone", true)
	opaque(BlockBricks, "bricks", true)
	opaque(BlockHayBale, "hay_bale", false)
	opaque(BlockBookbox, "bookbox", false)
	opaque(BlockChest, "chest", false)
	opaque(BlockBed, "bed", false)
	opaque(BlockCarBody, "car_body", false)
	opaque(BlockWheel, "wheel", false)
	opaque(BlockSkyStone, "sky_stone", true)
	opaque(BlockSkyGrass, "sky_grass", true)
	opaque(BlockSkyWood, "sky_wood", false)
	opaque(BlockEndStone, "end_stone", true)
	opaque(BlockObsidian, "obsidian", true)
	opaque(BlockMarble, "marble", true)
	opaque(BlockGoldOre, "gold_ore", true)
	opaque(BlockIronOre, "iron_ore", true)
	opaque(BlockGoldBlock, "gold_block", false)
	opaque(BlockIron, "iron", false)
	opaque(BlockDiamond, "diamond", false)
	opaque(BlockEmerald, "emerald", false)
	opaque(BlockAmethyst, "amethyst", false)
	opaque(BlockDebris, "debris", false)
	opaque(BlockTNT, "tnt", false)
	opaque(BlockSwampGrass, "swamp_grass", true)

	transparentCube(BlockGlass, "glass_block")
	transparentCube(BlockGlassBlink, "glass_blink")
	transparentCube(BlockLeaves, "leaves")
	transparentCube(BlockAzaleaLeaves, "azalea_leaves")
	transparentCube(BlockYellowLeaves, "yellow_leaves")
	transparentCube(BlockSkyLeaves, "sky_leaves")

	decoration(BlockFlower, "flower")
	decoration(BlockShortGrass, "short_grass")
	decoration(BlockAllium, "allium")
	decoration(BlockVine, "vine")
	decoration(BlockLilypad, "lilypad")
	decoration(BlockWater, "water")
	decoration(BlockSwampWater, "swamp_water")
	decoration(BlockCloud, "cloud")
	decoration(BlockChimney, "chimney")

	// The collider cell blocks movement but never occludes faces.
	register(&Definition{ID: BlockCollider, Name: "collider", IsSolid: true, IsTransparent: true})
}

// Get returns the definition for the given id, or the air definition for
// unknown ids.
func Get(id BlockID) *Definition {
	if int(id) >= len(blocks) || blocks[id] == nil {
		return blocks[BlockAir]
	}
	return blocks[id]
}

// ByName resolves a stable block name to its id. The second return is false
// for unknown names.
func ByName(name string) (BlockID, bool) {
	id, ok := byName[name]
	return id, ok
}

// NameOf returns the stable name of a block id.
func NameOf(id BlockID) string {
	return Get(id).Name
}

// IsSolid reports whether the block participates in collision.
func IsSolid(id BlockID) bool {
	return Get(id).IsSolid
}

// IsTransparent reports whether neighbors of this type leave adjacent faces visible.
func IsTransparent(id BlockID) bool {
	return Get(id).IsTransparent
}

// IsOccluding reports whether the block hides the touching face of a neighbor.
func IsOccluding(id BlockID) bool {
	d := Get(id)
	return d.IsSolid && !d.IsTransparent
}

// AOEnabled reports whether instances of this block carry packed
// per-vertex ambient occlusion values.
func AOEnabled(id BlockID) bool {
	return Get(id).AOEnabled
}
