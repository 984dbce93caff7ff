package world

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Pooled visual effects. Pools are fixed-size and silently drop spawns when
// saturated; an effect never allocates mid-frame and never aborts gameplay.

const (
	digPoolSize       = 20
	explosionPoolSize = 10
	spherePoolSize    = 15

	chestOpenAngle = -1.9 // radians, lid fully open
	chestOpenSpeed = 3.0  // radians per second
)

// Particle is one pooled billboard sprite.
type Particle struct {
	Pos    mgl32.Vec3
	Vel    mgl32.Vec3
	Life   float64
	active bool
}

// Sphere is an expanding translucent blast shell.
type Sphere struct {
	Pos    mgl32.Vec3
	Radius float64
	active bool
}

// ChestState tracks the lid animation of an opened chest.
type ChestState int

const (
	ChestClosed ChestState = iota
	ChestOpening
	ChestOpen // terminal
)

// ChestAnim interpolates a chest lid from closed to open.
type ChestAnim struct {
	Pos   BlockPos
	Angle float64
	State ChestState
}

type effects struct {
	dig       [digPoolSize]Particle
	explosion [explosionPoolSize]Particle
	spheres   [spherePoolSize]Sphere
	chests    []ChestAnim
	opened    map[BlockPos]struct{}
}

func newEffects() *effects {
	return &effects{opened: make(map[BlockPos]struct{})}
}

// spawnDig borrows a dig particle. Saturated pools drop the effect.
func (e *effects) spawnDig(pos mgl32.Vec3) {
	for i := range e.dig {
		if !e.dig[i].active {
			e.dig[i] = Particle{Pos: pos, Vel: mgl32.Vec3{0, 2, 0}, Life: 0.4, active: true}
			return
		}
	}
}

// spawnExplosion borrows an explosion billboard plus a blast sphere.
func (e *effects) spawnExplosion(pos mgl32.Vec3) {
	for i := range e.explosion {
		if !e.explosion[i].active {
			e.explosion[i] = Particle{Pos: pos, Life: 0.6, active: true}
			break
		}
	}
	for i := range e.spheres {
		if !e.spheres[i].active {
			e.spheres[i] = Sphere{Pos: pos, Radius: 0.5, active: true}
			return
		}
	}
}

// openChest starts the lid animation once per chest. Returns false when the
// chest was opened before; Open is terminal.
func (e *effects) openChest(p BlockPos) bool {
	if _, ok := e.opened[p]; ok {
		return false
	}
	e.opened[p] = struct{}{}
	e.chests = append(e.chests, ChestAnim{Pos: p, State: ChestOpening})
	return true
}

// tick advances all pools, frame-rate independent.
func (e *effects) tick(dt float64) {
	for i := range e.dig {
		if !e.dig[i].active {
			continue
		}
		e.dig[i].Life -= dt
		e.dig[i].Pos = e.dig[i].Pos.Add(e.dig[i].Vel.Mul(float32(dt)))
		if e.dig[i].Life <= 0 {
			e.dig[i].active = false
		}
	}
	for i := range e.explosion {
		if !e.explosion[i].active {
			continue
		}
		e.explosion[i].Life -= dt
		if e.explosion[i].Life <= 0 {
			e.explosion[i].active = false
		}
	}
	for i := range e.spheres {
		if !e.spheres[i].active {
			continue
		}
		e.spheres[i].Radius += 8.0 * dt
		if e.spheres[i].Radius > 5.0 {
			e.spheres[i].active = false
		}
	}
	for i := range e.chests {
		if e.chests[i].State != ChestOpening {
			continue
		}
		e.chests[i].Angle -= chestOpenSpeed * dt
		if e.chests[i].Angle <= chestOpenAngle {
			e.chests[i].Angle = chestOpenAngle
			e.chests[i].State = ChestOpen
		}
	}
}
