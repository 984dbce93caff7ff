package player

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"

	"mc-lite/internal/input"
	"mc-lite/internal/inventory"
	"mc-lite/internal/physics"
	"mc-lite/internal/profiling"
	"mc-lite/internal/world"
)

// InteractRange is how far the interaction ray reaches, in blocks.
const InteractRange = 9.0

// Player is the first-person avatar: a physics body, a view direction, and
// an inventory. The world is passed in, never stored behind the scenes by
// chunks; the player is the only long-lived holder.
type Player struct {
	Body  physics.Body
	Pitch float32

	Inventory *inventory.Inventory
	World     *world.World

	rng *rand.Rand
}

// New spawns a player into the world at a searched spawn point.
func New(w *world.World) *Player {
	p := &Player{
		Inventory: inventory.New(),
		World:     w,
		rng:       rand.New(rand.NewSource(int64(w.Seed()) ^ 0x5DEECE66D)),
	}
	p.Body.SpaceReleased = true

	spawn := FindSpawn(w.Noise(), p.rng)
	p.Body.Pos = spawn
	p.Body.CameraY = float64(spawn.Y()) + physics.EyeHeight
	return p
}

// Update runs one frame: look, movement, then interaction edges.
func (p *Player) Update(dt float64, im *input.Manager) {
	defer profiling.Track("player.Update")()

	dx, dy := im.MouseDelta()
	p.HandleMouseMovement(dx, dy)

	in := physics.Input{Jump: im.IsActive(input.ActionJump)}
	if im.IsActive(input.ActionMoveForward) {
		in.Forward += 1
	}
	if im.IsActive(input.ActionMoveBackward) {
		in.Forward -= 1
	}
	if im.IsActive(input.ActionMoveRight) {
		in.Strafe += 1
	}
	if im.IsActive(input.ActionMoveLeft) {
		in.Strafe -= 1
	}

	physics.Step(&p.Body, in, dt, p.World)

	if im.JustPressed(input.ActionMouseLeft) {
		p.Primary()
	}
	if im.JustPressed(input.ActionMouseRight) {
		p.Secondary()
	}

	for i := 0; i < inventory.HotbarSize; i++ {
		if im.JustPressed(input.ActionHotbar1 + input.Action(i)) {
			p.Inventory.Select(i)
		}
	}
}

// Position returns the logical foot position.
func (p *Player) Position() mgl32.Vec3 {
	return p.Body.Pos
}

// EyePosition returns the camera origin used for interaction rays.
func (p *Player) EyePosition() mgl32.Vec3 {
	return p.Body.Pos.Add(mgl32.Vec3{0, physics.EyeHeight, 0})
}
