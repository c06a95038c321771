package transform

import (
	"testing"

	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/nscene/renderer"
	"github.com/bloeys/nscene/renderer/rendertest"
	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-5

func mulPoint(m *gglm.Mat4, x, y, z float32) [3]float32 {

	in := [4]float32{x, y, z, 1}
	var out [4]float32
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			out[row] += m.Data[col][row] * in[col]
		}
	}

	return [3]float32{out[0], out[1], out[2]}
}

func assertPoint(t *testing.T, expected, actual [3]float32) {
	t.Helper()
	for i := 0; i < 3; i++ {
		assert.InDelta(t, expected[i], actual[i], tol, "component %d of %v", i, actual)
	}
}

func TestComposeIdentity(t *testing.T) {

	m := Compose(gglm.NewVec3(1, 1, 1), 0, 0, 0, gglm.NewVec3(0, 0, 0))

	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {

			expected := float32(0)
			if col == row {
				expected = 1
			}

			assert.InDelta(t, expected, m.Data[col][row], tol, "col=%d row=%d", col, row)
		}
	}
}

func TestComposeScaleThenRotateThenTranslate(t *testing.T) {

	m := Compose(gglm.NewVec3(2, 1, 1), 0, 90, 0, gglm.NewVec3(5, 0, 0))

	// (1,0,0) -> scale -> (2,0,0) -> rotY 90 -> (0,0,-2) -> translate -> (5,0,-2).
	// Rotating before scaling would give (5,0,-1) instead.
	assertPoint(t, [3]float32{5, 0, -2}, mulPoint(&m, 1, 0, 0))
}

func TestComposeRotationOrderXThenY(t *testing.T) {

	m := Compose(gglm.NewVec3(1, 1, 1), 90, 90, 0, gglm.NewVec3(0, 0, 0))

	// (0,1,0) -> rotX 90 -> (0,0,1) -> rotY 90 -> (1,0,0).
	// Y before X would give (0,0,1).
	assertPoint(t, [3]float32{1, 0, 0}, mulPoint(&m, 0, 1, 0))
}

func TestComposeRotationOrderYThenZ(t *testing.T) {

	m := Compose(gglm.NewVec3(1, 1, 1), 0, 90, 90, gglm.NewVec3(0, 0, 0))

	// (0,0,1) -> rotY 90 -> (1,0,0) -> rotZ 90 -> (0,1,0)
	assertPoint(t, [3]float32{0, 1, 0}, mulPoint(&m, 0, 0, 1))
}

func TestComposeTranslationOnly(t *testing.T) {

	m := Compose(gglm.NewVec3(1, 1, 1), 0, 0, 0, gglm.NewVec3(-9.5, 6, -12.51))
	assertPoint(t, [3]float32{-9.5, 6, -12.51}, mulPoint(&m, 0, 0, 0))
	assertPoint(t, [3]float32{-8.5, 7, -11.51}, mulPoint(&m, 1, 1, 1))
}

func TestComposeIsPure(t *testing.T) {

	p := Params{
		Scale:    gglm.NewVec3(3.5, 6.5, 3),
		RotYDeg:  10,
		Position: gglm.NewVec3(-10.5, 3.25, -9.5),
	}

	a := p.Matrix()
	b := p.Matrix()
	assert.Equal(t, a, b)
}

func TestSetTransformationsPushesModel(t *testing.T) {

	u := &rendertest.Uniforms{}
	SetTransformations(u, gglm.NewVec3(2, 1, 1), 0, 90, 0, gglm.NewVec3(5, 0, 0))

	require.Len(t, u.Writes, 1)
	w := u.Writes[0]
	assert.Equal(t, renderer.UnifModel, w.Name)
	assert.Equal(t, "mat4", w.Kind)
	assertPoint(t, [3]float32{5, 0, -2}, mulPoint(&w.Mat4, 1, 0, 0))

	p := Identity()
	p.Push(u)
	require.Len(t, u.Writes, 2)
	assertPoint(t, [3]float32{1, 2, 3}, mulPoint(&u.Writes[1].Mat4, 1, 2, 3))
}

// transformPoint applies scale, rotX, rotY, rotZ and translation one step at a time
func transformPoint(p Params, x, y, z float32) [3]float32 {

	x, y, z = x*p.Scale.X(), y*p.Scale.Y(), z*p.Scale.Z()

	s, c := math32.Sin(p.RotXDeg*gglm.Deg2Rad), math32.Cos(p.RotXDeg*gglm.Deg2Rad)
	y, z = c*y-s*z, s*y+c*z

	s, c = math32.Sin(p.RotYDeg*gglm.Deg2Rad), math32.Cos(p.RotYDeg*gglm.Deg2Rad)
	x, z = c*x+s*z, -s*x+c*z

	s, c = math32.Sin(p.RotZDeg*gglm.Deg2Rad), math32.Cos(p.RotZDeg*gglm.Deg2Rad)
	x, y = c*x-s*y, s*x+c*y

	return [3]float32{x + p.Position.X(), y + p.Position.Y(), z + p.Position.Z()}
}

func TestComposeAllAxesMatchesStepwise(t *testing.T) {

	p := Params{
		Scale:    gglm.NewVec3(2, 0.5, 3),
		RotXDeg:  30,
		RotYDeg:  -45,
		RotZDeg:  60,
		Position: gglm.NewVec3(4, 1, -2),
	}
	m := p.Matrix()

	for _, pt := range [][3]float32{{0.3, -2, 1}, {1, 0, 0}, {0, 1, 0}, {-1, 2, 0.5}} {
		assertPoint(t, transformPoint(p, pt[0], pt[1], pt[2]), mulPoint(&m, pt[0], pt[1], pt[2]))
	}
}
