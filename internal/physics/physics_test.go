package physics

import (
	"math"
	"testing"
)

// gridWorld is a fake block source: a flat floor plus explicit solids.
type gridWorld struct {
	floorY int // every cell with y <= floorY is solid
	solids map[[3]int]bool
}

func newGridWorld(floorY int) *gridWorld {
	return &gridWorld{floorY: floorY, solids: make(map[[3]int]bool)}
}

func (g *gridWorld) set(x, y, z int) {
	g.solids[[3]int{x, y, z}] = true
}

func (g *gridWorld) IsSolid(x, y, z int) bool {
	return y <= g.floorY || g.solids[[3]int{x, y, z}]
}

// newGroundedBody stands a body on the floor at (x, z).
func newGroundedBody(g *gridWorld, x, z float64) *Body {
	b := &Body{SpaceReleased: true}
	b.Pos[0] = float32(x)
	b.Pos[1] = float32(g.floorY + 1)
	b.Pos[2] = float32(z)
	b.CameraY = float64(g.floorY+1) + EyeHeight
	return b
}

func TestCheckAABBFlatGround(t *testing.T) {
	g := newGridWorld(9)
	if CheckAABB(g, 0.5, 10, 0.5, false) {
		t.Errorf("body standing on the floor reported as colliding")
	}
	if !CheckAABB(g, 0.5, 9.5, 0.5, false) {
		t.Errorf("body halfway into the floor not colliding")
	}
}

func TestCheckAABBExcludeFeet(t *testing.T) {
	g := newGridWorld(-100)
	g.set(0, 10, 0)

	// Feet inside the support cell: the excluded bottom row clears it.
	if CheckAABB(g, 0.5, 10.5, 0.5, true) {
		t.Errorf("support block counted with excludeFeet")
	}
	if !CheckAABB(g, 0.5, 10.5, 0.5, false) {
		t.Errorf("support block ignored without excludeFeet")
	}
}

func TestGroundLevel(t *testing.T) {
	g := newGridWorld(9)
	gy, ok := GroundLevel(g, 0.5, 12, 0.5, 4)
	if !ok || gy != 10 {
		t.Errorf("GroundLevel = (%f, %v), want (10, true)", gy, ok)
	}

	_, ok = GroundLevel(g, 0.5, 30, 0.5, 4)
	if ok {
		t.Errorf("ground found beyond the 4-block scan")
	}
}

func TestWalkSixtyFramesReachesEightBlocks(t *testing.T) {
	g := newGridWorld(9)
	b := newGroundedBody(g, 0.5, 0.5)
	b.Yaw = 0 // facing +x

	dt := 1.0 / 60
	for i := 0; i < 60; i++ {
		Step(b, Input{Forward: 1}, dt, g)
	}

	got := float64(b.Pos.X())
	if math.Abs(got-8.5) > 0.01 {
		t.Errorf("x after 60 frames = %f, want 8.5 ± 0.01", got)
	}
	if gy := float64(g.floorY + 1); math.Abs(float64(b.Pos.Y())-gy) > 1e-3 {
		t.Errorf("y after walk = %f, want ground %f", b.Pos.Y(), gy)
	}
}

func TestNoTunnelingIntoWall(t *testing.T) {
	g := newGridWorld(9)
	// Wall across x=3 at body height.
	for y := 10; y <= 12; y++ {
		for z := -2; z <= 2; z++ {
			g.set(3, y, z)
		}
	}

	for _, frames := range []int{60, 180} {
		b := newGroundedBody(g, 0.5, 0.5)
		b.Yaw = 0
		dt := 1.0 / 60
		for i := 0; i < frames; i++ {
			Step(b, Input{Forward: 1}, dt, g)
			if CheckAABB(g, float64(b.Pos.X()), float64(b.Pos.Y()), float64(b.Pos.Z()), false) {
				t.Fatalf("body inside wall at frame %d, x=%f", i, b.Pos.X())
			}
		}
		if b.Pos.X() >= 3 {
			t.Errorf("body passed through the wall, x=%f", b.Pos.X())
		}
	}
}

func TestNoTunnelingDiagonal(t *testing.T) {
	g := newGridWorld(9)
	for y := 10; y <= 12; y++ {
		for i := -3; i <= 3; i++ {
			g.set(4, y, i)
			g.set(i, y, 4)
		}
	}

	b := newGroundedBody(g, 0.5, 0.5)
	b.Yaw = float32(math.Pi / 4) // toward +x +z
	dt := 1.0 / 60
	for i := 0; i < 180; i++ {
		Step(b, Input{Forward: 1}, dt, g)
		if CheckAABB(g, float64(b.Pos.X()), float64(b.Pos.Y()), float64(b.Pos.Z()), false) {
			t.Fatalf("diagonal run entered a wall at frame %d", i)
		}
	}
}

func TestStepUpOneBlockLedge(t *testing.T) {
	g := newGridWorld(9)
	// A ledge one block high starting at x=3, long enough to stay under the
	// walker for the whole run.
	for x := 3; x <= 24; x++ {
		for z := -2; z <= 2; z++ {
			g.set(x, 10, z)
		}
	}

	b := newGroundedBody(g, 0.5, 0.5)
	b.Yaw = 0
	dt := 1.0 / 60
	for i := 0; i < 60; i++ {
		Step(b, Input{Forward: 1}, dt, g)
	}

	if b.Pos.X() < 3 {
		t.Errorf("walk did not climb the 1-block ledge, x=%f", b.Pos.X())
	}
	if math.Abs(float64(b.Pos.Y())-11) > 1e-3 {
		t.Errorf("y on ledge = %f, want 11", b.Pos.Y())
	}
}

func TestTwoBlockLedgeRejectedWhenGrounded(t *testing.T) {
	g := newGridWorld(9)
	for x := 3; x <= 6; x++ {
		for z := -2; z <= 2; z++ {
			g.set(x, 10, z)
			g.set(x, 11, z)
		}
	}

	b := newGroundedBody(g, 0.5, 0.5)
	b.Yaw = 0
	dt := 1.0 / 60
	for i := 0; i < 120; i++ {
		Step(b, Input{Forward: 1}, dt, g)
	}

	if b.Pos.X() >= 3 {
		t.Errorf("2-block ledge climbed without jumping, x=%f", b.Pos.X())
	}
}

func TestTwoBlockLedgeClimbedDuringJump(t *testing.T) {
	g := newGridWorld(9)
	for x := 3; x <= 8; x++ {
		for z := -2; z <= 2; z++ {
			g.set(x, 10, z)
			g.set(x, 11, z)
		}
	}

	b := newGroundedBody(g, 1.7, 0.5) // close to the ledge
	b.Yaw = 0
	dt := 1.0 / 60
	climbed := false
	for i := 0; i < 240; i++ {
		Step(b, Input{Forward: 1, Jump: true}, dt, g)
		if b.Pos.X() >= 3 && math.Abs(float64(b.Pos.Y())-12) < 0.5 {
			climbed = true
			break
		}
	}
	if !climbed {
		t.Errorf("ascending jump did not climb the 2-block ledge (x=%f y=%f)", b.Pos.X(), b.Pos.Y())
	}
	if b.SpaceReleased {
		t.Errorf("2-block step did not consume the jump latch")
	}
}

func TestCornerPenalty(t *testing.T) {
	g := newGridWorld(9)
	// A lone pillar: only its diagonal cell blocks the path.
	for y := 10; y <= 12; y++ {
		g.set(2, y, 2)
	}

	// Position so the diagonal move clips the pillar but each axis alone
	// clears it, and the penalized position ends short of the pillar.
	b := newGroundedBody(g, 1.61, 1.61)
	b.Yaw = float32(math.Pi / 4)
	dt := 1.0 / 60

	ox, oz := float64(b.Pos.X()), float64(b.Pos.Z())
	Step(b, Input{Forward: 1}, dt, g)
	dx := float64(b.Pos.X()) - ox
	dz := float64(b.Pos.Z()) - oz

	free := newGroundedBody(g, -10, -10)
	free.Yaw = b.Yaw
	fx, fz := float64(free.Pos.X()), float64(free.Pos.Z())
	Step(free, Input{Forward: 1}, dt, g)
	wantDX := (float64(free.Pos.X()) - fx) * FrictionCorner
	wantDZ := (float64(free.Pos.Z()) - fz) * FrictionCorner

	if math.Abs(dx-wantDX) > math.Abs(wantDX)*0.01+1e-9 ||
		math.Abs(dz-wantDZ) > math.Abs(wantDZ)*0.01+1e-9 {
		t.Errorf("corner displacement = (%f, %f), want (%f, %f) ± 1%%", dx, dz, wantDX, wantDZ)
	}
}

func TestJumpLatchPreventsAutoRepeat(t *testing.T) {
	g := newGridWorld(9)
	b := newGroundedBody(g, 0.5, 0.5)
	dt := 1.0 / 60

	jumps := 0
	prevJumping := false
	for i := 0; i < 600; i++ {
		Step(b, Input{Jump: true}, dt, g) // key held the whole time
		if b.Jumping && !prevJumping {
			jumps++
		}
		prevJumping = b.Jumping
	}
	if jumps != 1 {
		t.Errorf("held jump key produced %d jumps, want 1", jumps)
	}
}

func TestCeilingBump(t *testing.T) {
	g := newGridWorld(9)
	for x := -2; x <= 2; x++ {
		for z := -2; z <= 2; z++ {
			g.set(x, 12, z)
		}
	}

	b := newGroundedBody(g, 0.5, 0.5)
	dt := 1.0 / 60
	Step(b, Input{Jump: true}, dt, g)

	peaked := float64(b.Pos.Y())
	for i := 0; i < 120; i++ {
		Step(b, Input{}, dt, g)
		if y := float64(b.Pos.Y()); y > peaked {
			peaked = y
		}
	}
	if peaked+PlayerHeight > 12.5 {
		t.Errorf("head rose into the ceiling, peak foot y=%f", peaked)
	}
}

func TestPushOutRecovery(t *testing.T) {
	g := newGridWorld(-100)
	g.set(0, 10, 0)

	b := &Body{SpaceReleased: true}
	b.Pos[0] = 0.5
	b.Pos[1] = 10.5 // embedded in the block
	b.Pos[2] = 0.5

	for i := 0; i < 60; i++ {
		Step(b, Input{}, 1.0/60, g)
	}
	if CheckAABB(g, float64(b.Pos.X()), float64(b.Pos.Y()), float64(b.Pos.Z()), false) {
		t.Errorf("push-out never freed the body")
	}
}

func TestVoidRespawn(t *testing.T) {
	g := newGridWorld(-1000)
	b := &Body{SpaceReleased: true}
	b.Pos[1] = -19

	for i := 0; i < 300; i++ {
		Step(b, Input{}, 1.0/60, g)
		if b.Pos.Y() >= 59 {
			break
		}
	}
	if b.Pos.Y() < 59 {
		t.Errorf("no void respawn, y=%f", b.Pos.Y())
	}
}

func TestDtClamp(t *testing.T) {
	g := newGridWorld(9)
	b := newGroundedBody(g, 0.5, 0.5)
	b.Yaw = 0

	Step(b, Input{Forward: 1}, 5.0, g) // a huge hitch

	moved := float64(b.Pos.X()) - 0.5
	if moved > Speed*DtMax+1e-6 {
		t.Errorf("hitch moved %f blocks, clamp allows at most %f", moved, Speed*DtMax)
	}
}

func BenchmarkStep(b *testing.B) {
	g := newGridWorld(9)
	body := newGroundedBody(g, 0.5, 0.5)
	body.Yaw = 0
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Step(body, Input{Forward: 1}, 1.0/60, g)
	}
}
