package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Body is the physical state of the player, integrated once per frame.
type Body struct {
	Pos mgl32.Vec3 // logical foot position
	Vel mgl32.Vec3

	Yaw float32

	Jumping       bool
	IsStuck       bool
	SpaceReleased bool
	JumpCooldown  float64

	CameraY float64

	LastDir mgl32.Vec3 // last non-zero input direction, world space
}

// Input is the movement intent for one frame.
type Input struct {
	Forward float32 // -1..1 along the view direction
	Strafe  float32 // -1..1 along the right vector
	Jump    bool
}

// Step advances the body by dt against the world. All sub-steps are
// frame-rate independent; dt is clamped so a hitch never tunnels the body
// through geometry.
func Step(b *Body, in Input, dt float64, w BlockSource) {
	if dt > DtMax {
		dt = DtMax
	}

	b.JumpCooldown -= dt
	if !in.Jump {
		b.SpaceReleased = true
	}

	// 1. Input to horizontal velocity.
	yaw := float64(b.Yaw)
	fx, fz := math.Cos(yaw), math.Sin(yaw)
	rx, rz := math.Cos(yaw+math.Pi/2), math.Sin(yaw+math.Pi/2)

	dirX := float64(in.Forward)*fx + float64(in.Strafe)*rx
	dirZ := float64(in.Forward)*fz + float64(in.Strafe)*rz
	if l := math.Hypot(dirX, dirZ); l > 0 {
		dirX /= l
		dirZ /= l
		b.LastDir = mgl32.Vec3{float32(dirX), 0, float32(dirZ)}
	}
	b.Vel[0] = float32(dirX * Speed)
	b.Vel[2] = float32(dirZ * Speed)

	x := float64(b.Pos.X())
	y := float64(b.Pos.Y())
	z := float64(b.Pos.Z())
	ox, oz := x, z

	// 2-3. Swept per-axis resolution with sliding, stepping, and the convex
	// corner penalty.
	vx := float64(b.Vel[0])
	vz := float64(b.Vel[2])
	nx := x + vx*dt
	nz := z + vz*dt

	if vx != 0 || vz != 0 {
		cornerX, cornerZ := ox+(nx-ox)*FrictionCorner, oz+(nz-oz)*FrictionCorner
		if !CheckAABB(w, nx, y, nz, true) {
			x, z = nx, nz
		} else if !CheckAABB(w, nx, y, oz, true) && !CheckAABB(w, ox, y, nz, true) &&
			!CheckAABB(w, cornerX, y, cornerZ, true) {
			// Both axis moves clear on their own, so the diagonal cell
			// alone blocked the path: penalize the combined displacement.
			x, z = cornerX, cornerZ
		} else {
			if !CheckAABB(w, nx, y, z, true) {
				x = nx
				b.Vel[0] *= FrictionSlide
			} else {
				if ny, ok := tryStepUp(b, w, x, y, z, nx, z); ok {
					x, y = nx, ny
				}
			}

			if !CheckAABB(w, x, y, nz, true) {
				z = nz
				b.Vel[2] *= FrictionSlide
			} else {
				if ny, ok := tryStepUp(b, w, x, y, z, x, nz); ok {
					z, y = nz, ny
				}
			}
		}
	}

	// 4. Tunnel centering: walls on both sides of an axis nudge the body
	// toward the cell center so narrow corridors stay walkable.
	if vx != 0 || vz != 0 {
		x, z = centerInTunnel(w, x, y, z)
	}

	// 5. Camera bumper: keep the eye out of geometry by backing the body
	// off the wall it is facing.
	eyeY := int(math.Floor(y + EyeHeight))
	bumped := false
	for _, off := range [3]float64{-CameraWidth / 2, 0, CameraWidth / 2} {
		sx := x + fx*0.25 + rx*off
		sz := z + fz*0.25 + rz*off
		if w.IsSolid(int(math.Floor(sx)), eyeY, int(math.Floor(sz))) {
			bumped = true
			break
		}
	}
	if bumped {
		x -= fx * 0.05
		z -= fz * 0.05
	}

	// 6. Ceiling bump.
	vy := float64(b.Vel[1])
	if vy > 0 && w.IsSolid(int(math.Floor(x)), int(math.Floor(y+PlayerHeight)), int(math.Floor(z))) {
		vy = -0.01
	}

	// 7. Vertical integration against the scanned ground.
	gy, hasGround := GroundLevel(w, x, y, z, 4)
	y += vy * dt
	if hasGround && y < gy {
		y = gy
		vy = 0
		b.Jumping = false
	} else {
		vy = math.Max(vy+Gravity*dt, TerminalVelocity)
	}

	// 8. Jump, gated by the cooldown and the key-release latch.
	if in.Jump && !b.Jumping && b.JumpCooldown <= 0 && b.SpaceReleased {
		vy = JumpForce
		b.Jumping = true
		b.JumpCooldown = JumpInterval
		b.SpaceReleased = false
	}

	// 9. Push-out recovery when the body ended up inside geometry.
	if CheckAABB(w, x, y, z, false) {
		b.IsStuck = true
		dirs := [6][3]float64{
			{0.1, 0, 0}, {-0.1, 0, 0},
			{0, 0.1, 0}, {0, -0.1, 0},
			{0, 0, 0.1}, {0, 0, -0.1},
		}
		for _, d := range dirs {
			if !CheckAABB(w, x+d[0], y+d[1], z+d[2], false) {
				x += d[0]
				y += d[1]
				z += d[2]
				b.IsStuck = false
				break
			}
		}
	} else {
		b.IsStuck = false
	}

	// 10. Void respawn.
	if y < -20 {
		y = 60
		vy = 0
	}

	// 11. Camera smoothing toward eye height.
	b.CameraY += (y + EyeHeight - b.CameraY) * 0.2

	b.Pos = mgl32.Vec3{float32(x), float32(y), float32(z)}
	b.Vel[1] = float32(vy)
}

// tryStepUp lifts the body onto a ledge of at most one block, or two while
// ascending a jump. A two-block step consumes the jump so holding the key
// does not auto-repeat. Requires support beneath the feet.
func tryStepUp(b *Body, w BlockSource, x, y, z, tx, tz float64) (float64, bool) {
	if !HasSupport(w, x, y, z) {
		return 0, false
	}
	maxH := int(MaxStep)
	if b.Jumping && b.Vel[1] > 0 {
		maxH = int(MaxJumpStep)
	}
	for h := 1; h <= maxH; h++ {
		ny := y + float64(h)
		// The lift is only legal when the body clears both at the target and
		// straight above its current cell.
		if !CheckAABB(w, tx, ny, tz, false) && !CheckAABB(w, x, ny, z, false) {
			b.Vel[1] = 0
			if h > 1 {
				b.SpaceReleased = false
			}
			return ny, true
		}
	}
	return 0, false
}

// centerInTunnel nudges the body toward the cell center on an axis whose
// both neighbors are walls at foot and head height.
func centerInTunnel(w BlockSource, x, y, z float64) (float64, float64) {
	bx := int(math.Floor(x))
	bz := int(math.Floor(z))
	footY := int(math.Floor(y))
	headY := int(math.Floor(y + PlayerHeight - aabbEpsilon))

	solidBoth := func(x1, z1, x2, z2 int) bool {
		return w.IsSolid(x1, footY, z1) && w.IsSolid(x1, headY, z1) &&
			w.IsSolid(x2, footY, z2) && w.IsSolid(x2, headY, z2)
	}

	if solidBoth(bx-1, bz, bx+1, bz) {
		x += (float64(bx) + 0.5 - x) * 0.1
	}
	if solidBoth(bx, bz-1, bx, bz+1) {
		z += (float64(bz) + 0.5 - z) * 0.1
	}
	return x, z
}
