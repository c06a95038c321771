// Package camera is a right handed perspective fly camera
package camera

import (
	"github.com/bloeys/gglm/gglm"
	"github.com/chewxy/math32"
)

type Camera struct {
	Pos     gglm.Vec3
	Forward gglm.Vec3
	WorldUp gglm.Vec3

	NearClip    float32
	FarClip     float32
	FovRad      float32
	AspectRatio float32

	ViewMat gglm.Mat4
	ProjMat gglm.Mat4
}

// Update recomputes the view and projection matrices from the current fields
func (c *Camera) Update() {

	target := c.Pos.Clone().Add(&c.Forward)
	c.ViewMat = gglm.LookAtRH(&c.Pos, target, &c.WorldUp).Mat4

	projMat := gglm.Perspective(c.FovRad, c.AspectRatio, c.NearClip, c.FarClip)
	c.ProjMat = *projMat.Clone()
}

// UpdateRotation points the camera using pitch and yaw in radians, then calls Update.
// A yaw of -pi/2 with zero pitch looks down -Z.
func (c *Camera) UpdateRotation(pitch, yaw float32) {

	c.Forward = gglm.NewVec3(
		math32.Cos(yaw)*math32.Cos(pitch),
		math32.Sin(pitch),
		math32.Sin(yaw)*math32.Cos(pitch),
	)
	c.Forward.Normalize()

	c.Update()
}

// Right is the normalized direction to the right of the camera
func (c *Camera) Right() gglm.Vec3 {
	f, u := &c.Forward, &c.WorldUp
	right := gglm.NewVec3(
		f.Y()*u.Z()-f.Z()*u.Y(),
		f.Z()*u.X()-f.X()*u.Z(),
		f.X()*u.Y()-f.Y()*u.X(),
	)
	right.Normalize()
	return right
}

func NewPerspective(pos, forward, worldUp *gglm.Vec3, nearClip, farClip, fovRadians, aspectRatio float32) Camera {

	cam := Camera{
		Pos:     *pos,
		Forward: *forward,
		WorldUp: *worldUp,

		NearClip:    nearClip,
		FarClip:     farClip,
		FovRad:      fovRadians,
		AspectRatio: aspectRatio,
	}

	cam.Update()
	return cam
}
