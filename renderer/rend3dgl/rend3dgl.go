// Package rend3dgl is the OpenGL 4.1 backend of the renderer contracts.
// Everything here must run on the thread that owns the GL context.
package rend3dgl

import (
	"fmt"

	"github.com/bloeys/nscene/logging"
	"github.com/bloeys/nscene/meshes"
	"github.com/bloeys/nscene/renderer"
	"github.com/go-gl/gl/v4.1-core/gl"
)

var (
	_ renderer.TextureBackend  = &Rend3DGL{}
	_ renderer.PrimitiveDrawer = &Rend3DGL{}
)

type Rend3DGL struct {
	Meshes *meshes.Library

	BoundMeshVaoId uint32
}

func (r *Rend3DGL) DrawPrimitive(kind renderer.PrimitiveKind) {

	mesh := r.Meshes.Get(kind)
	if mesh == nil {
		logging.ErrLog.Printf("Primitive '%s' has no loaded mesh\n", kind)
		return
	}

	if mesh.Vao.Id != r.BoundMeshVaoId {
		mesh.Vao.Bind()
		r.BoundMeshVaoId = mesh.Vao.Id
	}

	mesh.Draw()
}

func (r *Rend3DGL) Upload(pixels []byte, width, height int32, format renderer.TexturePixelFormat) (uint32, error) {

	var internalFormat int32
	var pixelFormat uint32
	switch format {
	case renderer.TexturePixelFormat_RGB8:
		internalFormat = gl.RGB8
		pixelFormat = gl.RGB
	case renderer.TexturePixelFormat_RGBA8:
		internalFormat = gl.RGBA8
		pixelFormat = gl.RGBA
	default:
		return 0, fmt.Errorf("unsupported texture pixel format '%s'", format)
	}

	if len(pixels) == 0 {
		return 0, fmt.Errorf("texture of %dx%d has no pixel data", width, height)
	}

	var texId uint32
	gl.GenTextures(1, &texId)
	if texId == 0 {
		return 0, fmt.Errorf("failed to create OpenGL texture. OpenGl Error=%d", gl.GetError())
	}

	gl.BindTexture(gl.TEXTURE_2D, texId)

	// Rows are tightly packed, which RGB8 rows of odd widths violate under the default alignment of 4.
	// Unpack alignment is global state, so it is put back once the upload is done.
	var prevAlignment int32
	gl.GetIntegerv(gl.UNPACK_ALIGNMENT, &prevAlignment)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	gl.TexImage2D(gl.TEXTURE_2D, 0, internalFormat, width, height, 0, pixelFormat, gl.UNSIGNED_BYTE, gl.Ptr(&pixels[0]))
	gl.GenerateMipmap(gl.TEXTURE_2D)

	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, prevAlignment)

	return texId, nil
}

func (r *Rend3DGL) Bind(unit int32, handle uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	gl.BindTexture(gl.TEXTURE_2D, handle)
}

func (r *Rend3DGL) Delete(handle uint32) {
	gl.DeleteTextures(1, &handle)
}

// FrameEnd forgets cached bindings, since anything outside the renderer may have changed them
func (r *Rend3DGL) FrameEnd() {
	r.BoundMeshVaoId = 0
}

func NewRend3DGL(meshLib *meshes.Library) *Rend3DGL {
	return &Rend3DGL{
		Meshes: meshLib,
	}
}
