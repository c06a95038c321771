// Package shaders loads combined shader files, where each stage starts with a
// '//shader:vertex', '//shader:fragment' or '//shader:geometry' line.
package shaders

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/bloeys/nscene/logging"
	"github.com/go-gl/gl/v4.1-core/gl"
)

const stageMarker = "//shader:"

type Shader struct {
	Id   uint32
	Type ShaderType
}

func (s *Shader) Delete() {
	gl.DeleteShader(s.Id)
	s.Id = 0
}

// StageSource is the source of one stage of a combined shader file
type StageSource struct {
	Type ShaderType
	Src  []byte
}

var (
	ErrMissingVertexStage   = errors.New("no valid vertex shader found. Please put '//shader:vertex' before your vertex shader")
	ErrMissingFragmentStage = errors.New("no valid fragment shader found. Please put '//shader:fragment' before your fragment shader")
)

// SplitCombinedSource splits a combined shader file into its stages. Text before the
// first marker must be whitespace. Each stage may appear at most once, and vertex and
// fragment stages are required.
func SplitCombinedSource(shaderSrc []byte) ([]StageSource, error) {

	parts := bytes.Split(shaderSrc, []byte(stageMarker))
	if len(bytes.TrimSpace(parts[0])) != 0 {
		return nil, errors.New("combined shader has text before the first '//shader:' marker")
	}

	stages := make([]StageSource, 0, len(parts)-1)
	seen := map[ShaderType]bool{}
	for i := 1; i < len(parts); i++ {

		src := parts[i]

		shdrType := ShaderType_Unknown
		for _, t := range shaderTypeTags {
			if bytes.HasPrefix(src, []byte(t.tag)) {
				shdrType = t.typ
				src = src[len(t.tag):]
				break
			}
		}

		if shdrType == ShaderType_Unknown {
			return nil, errors.New("unknown shader type. Must be '//shader:vertex' or '//shader:fragment' or '//shader:geometry'")
		}

		if seen[shdrType] {
			return nil, fmt.Errorf("shader stage '%s' appears more than once", shdrType)
		}
		seen[shdrType] = true

		stages = append(stages, StageSource{Type: shdrType, Src: src})
	}

	if !seen[ShaderType_Vertex] {
		return nil, ErrMissingVertexStage
	}

	if !seen[ShaderType_Fragment] {
		return nil, ErrMissingFragmentStage
	}

	return stages, nil
}

func NewShaderProgram() (ShaderProgram, error) {

	id := gl.CreateProgram()
	if id == 0 {
		return ShaderProgram{}, errors.New("failed to create shader program")
	}

	return ShaderProgram{Id: id}, nil
}

func LoadAndCompileCombinedShader(shaderPath string) (ShaderProgram, error) {

	combinedSource, err := os.ReadFile(shaderPath)
	if err != nil {
		return ShaderProgram{}, fmt.Errorf("failed to read shader '%s'. Err: %w", shaderPath, err)
	}

	shdrProg, err := LoadAndCompileCombinedShaderSrc(combinedSource)
	if err != nil {
		return ShaderProgram{}, fmt.Errorf("shader '%s': %w", shaderPath, err)
	}

	logging.InfoLog.Printf("Loaded shader '%s' (program id=%d)\n", shaderPath, shdrProg.Id)
	return shdrProg, nil
}

func LoadAndCompileCombinedShaderSrc(shaderSrc []byte) (ShaderProgram, error) {

	stages, err := SplitCombinedSource(shaderSrc)
	if err != nil {
		return ShaderProgram{}, err
	}

	shdrProg, err := NewShaderProgram()
	if err != nil {
		return ShaderProgram{}, err
	}

	for i := 0; i < len(stages); i++ {

		shdr, err := CompileShaderOfType(stages[i].Src, stages[i].Type)
		if err != nil {
			gl.DeleteProgram(shdrProg.Id)
			return ShaderProgram{}, fmt.Errorf("%s stage: %w", stages[i].Type, err)
		}

		if err := shdrProg.AttachShader(shdr); err != nil {
			shdr.Delete()
			gl.DeleteProgram(shdrProg.Id)
			return ShaderProgram{}, err
		}
	}

	if err := shdrProg.Link(); err != nil {
		return ShaderProgram{}, err
	}

	return shdrProg, nil
}

func CompileShaderOfType(shaderSource []byte, shaderType ShaderType) (Shader, error) {

	shaderId := gl.CreateShader(shaderType.ToGl())
	if shaderId == 0 {
		return Shader{}, fmt.Errorf("failed to create OpenGl shader. OpenGl Error=%d", gl.GetError())
	}

	//Load shader source and compile
	shaderCStr, shaderFree := gl.Strs(string(shaderSource) + "\x00")
	defer shaderFree()
	gl.ShaderSource(shaderId, 1, shaderCStr, nil)

	gl.CompileShader(shaderId)
	if err := getShaderCompileErrors(shaderId); err != nil {
		gl.DeleteShader(shaderId)
		return Shader{}, err
	}

	return Shader{Id: shaderId, Type: shaderType}, nil
}

func getShaderCompileErrors(shaderId uint32) error {

	var compiledSuccessfully int32
	gl.GetShaderiv(shaderId, gl.COMPILE_STATUS, &compiledSuccessfully)
	if compiledSuccessfully == gl.TRUE {
		return nil
	}

	var logLength int32
	gl.GetShaderiv(shaderId, gl.INFO_LOG_LENGTH, &logLength)

	log := gl.Str(strings.Repeat("\x00", int(logLength)+1))
	gl.GetShaderInfoLog(shaderId, logLength, nil, log)

	errMsg := gl.GoStr(log)
	logging.ErrLog.Println("Compilation of shader with id ", shaderId, " failed. Err: ", errMsg)
	return errors.New(errMsg)
}
