// Package materials wraps a linked shader program and its uniform surface.
package materials

import (
	_ "unsafe"

	"fmt"

	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/nscene/assert"
	"github.com/bloeys/nscene/logging"
	"github.com/bloeys/nscene/renderer"
	"github.com/bloeys/nscene/shaders"
	"github.com/go-gl/gl/v4.1-core/gl"
)

// The noescape linknames below keep vectors and matrices passed to cgo
// from escaping to the heap on every uniform set.

var _ renderer.Uniforms = &Material{}

var (
	lastMatId uint32
)

// Material is a shader program plus cached uniform and attribute locations.
// Setters use ProgramUniform*, so they don't require the program to be in use.
type Material struct {
	Id         uint32
	Name       string
	ShaderProg shaders.ShaderProgram

	UnifLocs   map[string]int32
	AttribLocs map[string]int32

	// StrictUniforms makes a missing uniform an assert failure instead of a
	// warning. Uniforms the GLSL compiler optimized out are also 'missing'.
	StrictUniforms bool
}

func (m *Material) Use() {
	m.ShaderProg.Bind()
}

func (m *Material) UnUse() {
	gl.UseProgram(0)
}

func (m *Material) GetAttribLoc(attribName string) int32 {

	loc, ok := m.AttribLocs[attribName]
	if ok {
		return loc
	}

	name := gl.Str(attribName + "\x00")
	loc = gl.GetAttribLocation(m.ShaderProg.Id, name)
	assert.T(loc != -1, "Attribute '%s' doesn't exist on material '%s'", attribName, m.Name)
	m.AttribLocs[attribName] = loc
	return loc
}

// GetUnifLoc returns the cached location of a uniform, or -1 if it doesn't exist.
// Writes to -1 are ignored by OpenGL.
func (m *Material) GetUnifLoc(uniformName string) int32 {

	loc, ok := m.UnifLocs[uniformName]
	if ok {
		return loc
	}

	name := gl.Str(uniformName + "\x00")
	loc = gl.GetUniformLocation(m.ShaderProg.Id, name)
	if loc == -1 {
		assert.T(!m.StrictUniforms, "Uniform '%s' doesn't exist on material '%s'", uniformName, m.Name)
		logging.WarnLog.Printf("Uniform '%s' doesn't exist (or is unused) on material '%s'\n", uniformName, m.Name)
	}

	m.UnifLocs[uniformName] = loc
	return loc
}

func (m *Material) SetUnifBool(uniformName string, val bool) {

	var i int32
	if val {
		i = 1
	}

	gl.ProgramUniform1i(m.ShaderProg.Id, m.GetUnifLoc(uniformName), i)
}

func (m *Material) SetUnifInt32(uniformName string, val int32) {
	gl.ProgramUniform1i(m.ShaderProg.Id, m.GetUnifLoc(uniformName), val)
}

// SetUnifSampler points a sampler uniform at a texture unit (0 for GL_TEXTURE0 and so on)
func (m *Material) SetUnifSampler(uniformName string, textureUnit int32) {
	gl.ProgramUniform1i(m.ShaderProg.Id, m.GetUnifLoc(uniformName), textureUnit)
}

func (m *Material) SetUnifFloat32(uniformName string, val float32) {
	gl.ProgramUniform1f(m.ShaderProg.Id, m.GetUnifLoc(uniformName), val)
}

func (m *Material) SetUnifVec3(uniformName string, vec3 *gglm.Vec3) {
	internalSetUnifVec3(m.ShaderProg.Id, m.GetUnifLoc(uniformName), vec3)
}

//go:noescape
//go:linkname internalSetUnifVec3 github.com/bloeys/nscene/materials.SetUnifVec3
func internalSetUnifVec3(shaderProgId uint32, unifLoc int32, vec3 *gglm.Vec3)

func SetUnifVec3(shaderProgId uint32, unifLoc int32, vec3 *gglm.Vec3) {
	gl.ProgramUniform3fv(shaderProgId, unifLoc, 1, &vec3.Data[0])
}

func (m *Material) SetUnifVec4(uniformName string, vec4 *gglm.Vec4) {
	internalSetUnifVec4(m.ShaderProg.Id, m.GetUnifLoc(uniformName), vec4)
}

//go:noescape
//go:linkname internalSetUnifVec4 github.com/bloeys/nscene/materials.SetUnifVec4
func internalSetUnifVec4(shaderProgId uint32, unifLoc int32, vec4 *gglm.Vec4)

func SetUnifVec4(shaderProgId uint32, unifLoc int32, vec4 *gglm.Vec4) {
	gl.ProgramUniform4fv(shaderProgId, unifLoc, 1, &vec4.Data[0])
}

func (m *Material) SetUnifMat4(uniformName string, mat4 *gglm.Mat4) {
	internalSetUnifMat4(m.ShaderProg.Id, m.GetUnifLoc(uniformName), mat4)
}

//go:noescape
//go:linkname internalSetUnifMat4 github.com/bloeys/nscene/materials.SetUnifMat4
func internalSetUnifMat4(shaderProgId uint32, unifLoc int32, mat4 *gglm.Mat4)

func SetUnifMat4(shaderProgId uint32, unifLoc int32, mat4 *gglm.Mat4) {
	gl.ProgramUniformMatrix4fv(shaderProgId, unifLoc, 1, false, &mat4.Data[0][0])
}

func (m *Material) Delete() {
	gl.DeleteProgram(m.ShaderProg.Id)
}

func getNewMatId() uint32 {
	lastMatId++
	return lastMatId
}

func newMaterial(matName string, shdrProg shaders.ShaderProgram) *Material {
	return &Material{
		Id:         getNewMatId(),
		Name:       matName,
		ShaderProg: shdrProg,
		UnifLocs:   make(map[string]int32),
		AttribLocs: make(map[string]int32),
	}
}

// NewMaterial compiles and links the combined shader file at shaderPath
func NewMaterial(matName, shaderPath string) (*Material, error) {

	shdrProg, err := shaders.LoadAndCompileCombinedShader(shaderPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create material '%s'. Err: %w", matName, err)
	}

	return newMaterial(matName, shdrProg), nil
}

func NewMaterialSrc(matName string, shaderSrc []byte) (*Material, error) {

	shdrProg, err := shaders.LoadAndCompileCombinedShaderSrc(shaderSrc)
	if err != nil {
		return nil, fmt.Errorf("failed to create material '%s'. Err: %w", matName, err)
	}

	return newMaterial(matName, shdrProg), nil
}
