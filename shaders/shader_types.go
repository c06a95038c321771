package shaders

import (
	"github.com/go-gl/gl/v4.1-core/gl"
)

type ShaderType int32

const (
	ShaderType_Unknown ShaderType = iota
	ShaderType_Vertex
	ShaderType_Fragment
	ShaderType_Geometry
)

// shaderTypeTags are the names that follow '//shader:' in combined files
var shaderTypeTags = [...]struct {
	tag string
	typ ShaderType
}{
	{"vertex", ShaderType_Vertex},
	{"fragment", ShaderType_Fragment},
	{"geometry", ShaderType_Geometry},
}

func (s ShaderType) String() string {

	for _, t := range shaderTypeTags {
		if t.typ == s {
			return t.tag
		}
	}

	return "unknown"
}

// ToGl returns the OpenGL shader enum, or 0 for unknown types
func (s ShaderType) ToGl() uint32 {

	switch s {
	case ShaderType_Vertex:
		return gl.VERTEX_SHADER
	case ShaderType_Fragment:
		return gl.FRAGMENT_SHADER
	case ShaderType_Geometry:
		return gl.GEOMETRY_SHADER
	default:
		return 0
	}
}
