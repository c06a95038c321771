// Package renderer holds the contracts between the scene pipeline and the graphics
// backend. Nothing here touches OpenGL, which lets the texture cache and the
// pipeline be driven by fakes in tests.
package renderer

import (
	"github.com/bloeys/gglm/gglm"
)

const (
	// MaxTextureUnits is the number of texture units the scene shader samples from.
	// Slot i of the texture cache is always bound to unit i.
	MaxTextureUnits = 16

	// MaxLights must match the size of the lightSources array in the scene shader
	MaxLights = 5
)

// Uniform names shared with the scene shader. These must match the shader exactly.
const (
	UnifModel         = "model"
	UnifView          = "view"
	UnifProjection    = "projection"
	UnifViewPosition  = "viewPosition"
	UnifObjectColor   = "objectColor"
	UnifUseTexture    = "bUseTexture"
	UnifUseLighting   = "bUseLighting"
	UnifObjectTexture = "objectTexture"

	UnifMatAmbientColor    = "material.ambientColor"
	UnifMatAmbientStrength = "material.ambientStrength"
	UnifMatDiffuseColor    = "material.diffuseColor"
	UnifMatSpecularColor   = "material.specularColor"
	UnifMatShininess       = "material.shininess"
)

// Uniforms is the named parameter surface of a shader program.
// Values persist on the program until overwritten.
type Uniforms interface {
	SetUnifBool(uniformName string, val bool)
	SetUnifInt32(uniformName string, val int32)
	SetUnifFloat32(uniformName string, val float32)
	SetUnifVec3(uniformName string, vec3 *gglm.Vec3)
	SetUnifVec4(uniformName string, vec4 *gglm.Vec4)
	SetUnifMat4(uniformName string, mat4 *gglm.Mat4)
	SetUnifSampler(uniformName string, textureUnit int32)
}

// TexturePixelFormat is the layout of pixel data handed to TextureBackend.Upload
type TexturePixelFormat int32

const (
	TexturePixelFormat_Unknown TexturePixelFormat = iota
	TexturePixelFormat_RGB8
	TexturePixelFormat_RGBA8
)

func (f TexturePixelFormat) String() string {

	switch f {
	case TexturePixelFormat_RGB8:
		return "RGB8"
	case TexturePixelFormat_RGBA8:
		return "RGBA8"
	default:
		return "Unknown"
	}
}

// TextureBackend owns GPU texture objects. A handle of 0 is never a valid texture.
type TextureBackend interface {

	// Upload creates a 2D texture from tightly packed pixel rows, sets repeat wrapping,
	// linear-mipmap-linear/linear filtering, and generates the full mipmap chain.
	// It returns the new texture handle.
	Upload(pixels []byte, width, height int32, format TexturePixelFormat) (uint32, error)

	// Bind makes the texture current on the given texture unit
	Bind(unit int32, handle uint32)

	Delete(handle uint32)
}

// PrimitiveKind is one of the basic shapes supplied by the mesh library
type PrimitiveKind uint8

const (
	PrimitiveKind_Unknown PrimitiveKind = iota
	PrimitiveKind_Plane
	PrimitiveKind_Box
	PrimitiveKind_Cylinder
	PrimitiveKind_Cone
	PrimitiveKind_Sphere
)

// PrimitiveKinds lists every drawable kind in load order
var PrimitiveKinds = [...]PrimitiveKind{
	PrimitiveKind_Plane,
	PrimitiveKind_Box,
	PrimitiveKind_Cylinder,
	PrimitiveKind_Cone,
	PrimitiveKind_Sphere,
}

func (k PrimitiveKind) String() string {

	switch k {
	case PrimitiveKind_Plane:
		return "plane"
	case PrimitiveKind_Box:
		return "box"
	case PrimitiveKind_Cylinder:
		return "cylinder"
	case PrimitiveKind_Cone:
		return "cone"
	case PrimitiveKind_Sphere:
		return "sphere"
	default:
		return "unknown"
	}
}

// ParsePrimitiveKind maps names like "box" to their kind.
// The second return is false for unknown names.
func ParsePrimitiveKind(s string) (PrimitiveKind, bool) {

	for _, k := range PrimitiveKinds {
		if k.String() == s {
			return k, true
		}
	}

	return PrimitiveKind_Unknown, false
}

// PrimitiveDrawer issues one draw call for a primitive using whatever
// program and uniforms are currently set
type PrimitiveDrawer interface {
	DrawPrimitive(kind PrimitiveKind)
}
