package camera

import (
	"testing"

	"github.com/bloeys/gglm/gglm"
	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
)

// mulPoint applies a column major matrix to a point with w=1
func mulPoint(m *gglm.Mat4, p gglm.Vec3) [3]float32 {

	var out [3]float32
	for row := 0; row < 3; row++ {
		out[row] = m.Data[0][row]*p.X() + m.Data[1][row]*p.Y() + m.Data[2][row]*p.Z() + m.Data[3][row]
	}

	return out
}

func newTestCamera() Camera {
	pos := gglm.NewVec3(0, 10, 20)
	forward := gglm.NewVec3(0, 0, -1)
	up := gglm.NewVec3(0, 1, 0)
	return NewPerspective(&pos, &forward, &up, 0.1, 200, 45*gglm.Deg2Rad, 16.0/9.0)
}

func TestViewMovesCameraToOrigin(t *testing.T) {

	cam := newTestCamera()

	p := mulPoint(&cam.ViewMat, cam.Pos)
	assert.InDelta(t, 0, p[0], 1e-4)
	assert.InDelta(t, 0, p[1], 1e-4)
	assert.InDelta(t, 0, p[2], 1e-4)

	// A point in front of the camera ends up on -Z in view space
	ahead := mulPoint(&cam.ViewMat, gglm.NewVec3(0, 10, 15))
	assert.InDelta(t, -5, ahead[2], 1e-4)
}

func TestUpdateRotation(t *testing.T) {

	cam := newTestCamera()
	cam.UpdateRotation(0, -math32.Pi/2)

	assert.InDelta(t, 0, cam.Forward.X(), 1e-5)
	assert.InDelta(t, 0, cam.Forward.Y(), 1e-5)
	assert.InDelta(t, -1, cam.Forward.Z(), 1e-5)

	right := cam.Right()
	assert.InDelta(t, 1, right.X(), 1e-5)

	cam.UpdateRotation(0, 0)
	assert.InDelta(t, 1, cam.Forward.X(), 1e-5)
}
