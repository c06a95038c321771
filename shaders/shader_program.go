package shaders

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

type ShaderProgram struct {
	Id           uint32
	VertShaderId uint32
	FragShaderId uint32
	GeomShaderId uint32
}

func (sp *ShaderProgram) AttachShader(shader Shader) error {

	switch shader.Type {
	case ShaderType_Vertex:
		sp.VertShaderId = shader.Id
	case ShaderType_Fragment:
		sp.FragShaderId = shader.Id
	case ShaderType_Geometry:
		sp.GeomShaderId = shader.Id
	default:
		return fmt.Errorf("unknown shader type '%d' for shader id '%d'", shader.Type, shader.Id)
	}

	gl.AttachShader(sp.Id, shader.Id)
	return nil
}

// Link links the program and deletes the attached shader objects. On failure the
// program is deleted too.
func (sp *ShaderProgram) Link() error {

	gl.LinkProgram(sp.Id)

	if sp.VertShaderId != 0 {
		gl.DeleteShader(sp.VertShaderId)
	}

	if sp.FragShaderId != 0 {
		gl.DeleteShader(sp.FragShaderId)
	}

	if sp.GeomShaderId != 0 {
		gl.DeleteShader(sp.GeomShaderId)
	}

	var linkedSuccessfully int32
	gl.GetProgramiv(sp.Id, gl.LINK_STATUS, &linkedSuccessfully)
	if linkedSuccessfully == gl.TRUE {
		return nil
	}

	var logLength int32
	gl.GetProgramiv(sp.Id, gl.INFO_LOG_LENGTH, &logLength)

	log := gl.Str(strings.Repeat("\x00", int(logLength)+1))
	gl.GetProgramInfoLog(sp.Id, logLength, nil, log)

	gl.DeleteProgram(sp.Id)
	sp.Id = 0
	return errors.New("failed to link shader program. Err: " + gl.GoStr(log))
}

func (s *ShaderProgram) Bind() {
	gl.UseProgram(s.Id)
}

func (s *ShaderProgram) UnBind() {
	gl.UseProgram(0)
}
