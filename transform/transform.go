// Package transform builds model matrices from scale, per-axis rotation in degrees and translation.
//
// The composition order is fixed: translate * rotZ * rotY * rotX * scale. Applied to a
// column vector, an object is scaled first, then rotated around X, then Y, then Z, and
// translated last. Changing the order changes the result for anything rotated on more than one axis.
package transform

import (
	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/nscene/renderer"
)

// Params are the inputs of one model matrix
type Params struct {
	Scale    gglm.Vec3
	RotXDeg  float32
	RotYDeg  float32
	RotZDeg  float32
	Position gglm.Vec3
}

// Identity has unit scale and no rotation or translation
func Identity() Params {
	return Params{Scale: gglm.NewVec3(1, 1, 1)}
}

func (p *Params) Matrix() gglm.Mat4 {
	return Compose(p.Scale, p.RotXDeg, p.RotYDeg, p.RotZDeg, p.Position)
}

func Compose(scale gglm.Vec3, rotXDeg, rotYDeg, rotZDeg float32, pos gglm.Vec3) gglm.Mat4 {

	// Each axis gets its own matrix. Chaining Rotate calls on one TrMat would apply
	// them in the reverse order.
	rotX := gglm.NewTrMatId()
	rotX.Rotate(rotXDeg*gglm.Deg2Rad, 1, 0, 0)

	rotY := gglm.NewTrMatId()
	rotY.Rotate(rotYDeg*gglm.Deg2Rad, 0, 1, 0)

	rotZ := gglm.NewTrMatId()
	rotZ.Rotate(rotZDeg*gglm.Deg2Rad, 0, 0, 1)

	scaleMat := gglm.NewScaleMatVec(&scale)

	model := gglm.NewTranslationMatVec(&pos)
	model.Mul(&rotZ).Mul(&rotY).Mul(&rotX).Mul(&scaleMat)

	return model.Mat4
}

// SetTransformations composes a model matrix and pushes it to the "model" uniform
func SetTransformations(u renderer.Uniforms, scale gglm.Vec3, rotXDeg, rotYDeg, rotZDeg float32, pos gglm.Vec3) {
	model := Compose(scale, rotXDeg, rotYDeg, rotZDeg, pos)
	u.SetUnifMat4(renderer.UnifModel, &model)
}

// Push is SetTransformations with p
func (p *Params) Push(u renderer.Uniforms) {
	model := p.Matrix()
	u.SetUnifMat4(renderer.UnifModel, &model)
}
