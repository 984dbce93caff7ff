package player

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	mouseSensitivity = 0.002
	pitchLimit       = 1.5 // radians
)

// HandleMouseMovement applies captured-pointer motion to yaw and pitch.
func (p *Player) HandleMouseMovement(dx, dy float64) {
	p.Body.Yaw += float32(dx * mouseSensitivity)
	p.Pitch -= float32(dy * mouseSensitivity)

	if p.Pitch > pitchLimit {
		p.Pitch = pitchLimit
	}
	if p.Pitch < -pitchLimit {
		p.Pitch = -pitchLimit
	}
}

// FrontVector is the view direction from yaw and pitch.
func (p *Player) FrontVector() mgl32.Vec3 {
	yaw := float64(p.Body.Yaw)
	pitch := float64(p.Pitch)
	return mgl32.Vec3{
		float32(math.Cos(yaw) * math.Cos(pitch)),
		float32(math.Sin(pitch)),
		float32(math.Sin(yaw) * math.Cos(pitch)),
	}.Normalize()
}

// ViewMatrix builds the camera transform with the smoothed camera height.
func (p *Player) ViewMatrix() mgl32.Mat4 {
	eye := mgl32.Vec3{p.Body.Pos.X(), float32(p.Body.CameraY), p.Body.Pos.Z()}
	target := eye.Add(p.FrontVector())
	return mgl32.LookAtV(eye, target, mgl32.Vec3{0, 1, 0})
}
