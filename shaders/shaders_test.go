package shaders

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitCombinedSource(t *testing.T) {

	src := []byte(`
//shader:vertex
#version 410
void main() {}

//shader:fragment
#version 410
void main() {}
`)

	stages, err := SplitCombinedSource(src)
	require.NoError(t, err)
	require.Len(t, stages, 2)

	assert.Equal(t, ShaderType_Vertex, stages[0].Type)
	assert.Contains(t, string(stages[0].Src), "#version 410")
	assert.NotContains(t, string(stages[0].Src), "fragment")
	assert.Equal(t, ShaderType_Fragment, stages[1].Type)
}

func TestSplitCombinedSourceErrors(t *testing.T) {

	tests := []struct {
		name string
		src  string
		err  error
	}{
		{"empty", "", ErrMissingVertexStage},
		{"fragment only", "//shader:fragment\nvoid main(){}", ErrMissingVertexStage},
		{"vertex only", "//shader:vertex\nvoid main(){}", ErrMissingFragmentStage},
		{"unknown stage", "//shader:vertex\n//shader:compute\n", nil},
		{"duplicate stage", "//shader:vertex\n//shader:vertex\n//shader:fragment\n", nil},
		{"leading text", "#version 410\n//shader:vertex\n//shader:fragment\n", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {

			_, err := SplitCombinedSource([]byte(tt.src))
			require.Error(t, err)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
			}
		})
	}
}

func TestShaderTypeString(t *testing.T) {
	assert.Equal(t, "vertex", ShaderType_Vertex.String())
	assert.Equal(t, "geometry", ShaderType_Geometry.String())
	assert.Equal(t, "unknown", ShaderType_Unknown.String())
}

func TestBundledSceneShaderSplits(t *testing.T) {

	src, err := os.ReadFile("../res/shaders/scene.glsl")
	require.NoError(t, err)

	stages, err := SplitCombinedSource(src)
	require.NoError(t, err)
	require.Len(t, stages, 2)

	assert.Equal(t, ShaderType_Vertex, stages[0].Type)
	assert.Equal(t, ShaderType_Fragment, stages[1].Type)

	frag := string(stages[1].Src)
	for _, name := range []string{"objectColor", "bUseTexture", "bUseLighting", "objectTexture", "viewPosition", "lightSources[TOTAL_LIGHTS]", "material"} {
		assert.True(t, strings.Contains(frag, name), name)
	}
}
