package shading

import (
	"testing"

	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/nscene/renderer"
	"github.com/bloeys/nscene/renderer/rendertest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetColorDisablesTexture(t *testing.T) {

	u := &rendertest.Uniforms{}
	SetColor(u, 0.15, 0.35, 0.85, 1)

	require.Len(t, u.Writes, 2)
	assert.Equal(t, renderer.UnifUseTexture, u.Writes[0].Name)
	assert.False(t, u.Writes[0].Bool)

	assert.Equal(t, renderer.UnifObjectColor, u.Writes[1].Name)
	assert.Equal(t, gglm.NewVec4(0.15, 0.35, 0.85, 1), u.Writes[1].Vec4)
}

func TestSetLightPushesAllFields(t *testing.T) {

	u := &rendertest.Uniforms{}
	l := LightSource{
		Position:          gglm.NewVec3(0, 6.5, -14),
		AmbientColor:      gglm.NewVec3(0.08, 0.06, 0.03),
		DiffuseColor:      gglm.NewVec3(0.6, 0.45, 0.25),
		SpecularColor:     gglm.NewVec3(0.7, 0.55, 0.35),
		FocalStrength:     20,
		SpecularIntensity: 0.7,
	}

	require.NoError(t, SetLight(u, 1, &l))
	require.Len(t, u.Writes, 6)

	w, ok := u.Get("lightSources[1].position")
	require.True(t, ok)
	assert.Equal(t, l.Position, w.Vec3)

	w, ok = u.Get(LightUnifName(1, "diffuseColor"))
	require.True(t, ok)
	assert.Equal(t, l.DiffuseColor, w.Vec3)

	w, ok = u.Get("lightSources[1].focalStrength")
	require.True(t, ok)
	assert.Equal(t, float32(20), w.Float)

	w, ok = u.Get("lightSources[1].specularIntensity")
	require.True(t, ok)
	assert.Equal(t, float32(0.7), w.Float)

	for _, name := range []string{"ambientColor", "specularColor"} {
		_, ok = u.Get(LightUnifName(1, name))
		assert.True(t, ok, name)
	}
}

func TestSetLightIndexBounds(t *testing.T) {

	u := &rendertest.Uniforms{}
	l := DisabledLight()

	assert.Error(t, SetLight(u, -1, &l))
	assert.Error(t, SetLight(u, renderer.MaxLights, &l))
	assert.Empty(t, u.Writes)

	assert.NoError(t, SetLight(u, renderer.MaxLights-1, &l))
}

func TestDisabledLights(t *testing.T) {

	lights := AllLightsDisabled()
	for i := range lights {
		assert.True(t, lights[i].IsDisabled())
		assert.Equal(t, float32(1), lights[i].FocalStrength)
		assert.Equal(t, float32(0), lights[i].SpecularIntensity)
	}

	u := &rendertest.Uniforms{}
	SetLights(u, &lights)
	assert.Len(t, u.Writes, renderer.MaxLights*6)

	assert.Equal(t, 0, lights.EnabledCount())

	lights[2].DiffuseColor = gglm.NewVec3(0.06, 0.06, 0.06)
	assert.False(t, lights[2].IsDisabled())
	assert.Equal(t, 1, lights.EnabledCount())
}

func TestLightUnifNamesMatchShader(t *testing.T) {

	assert.Equal(t, "lightSources[0].position", LightUnifName(0, "position"))
	assert.Equal(t, "lightSources[4].specularIntensity", lightUnifNames[4].specularIntensity)
	assert.Equal(t, LightUnifName(3, "focalStrength"), lightUnifNames[3].focalStrength)
}

func TestMaterialPush(t *testing.T) {

	u := &rendertest.Uniforms{}
	m := DefaultMaterial()
	m.Push(u)

	require.Len(t, u.Writes, 5)

	w, _ := u.Get(renderer.UnifMatAmbientStrength)
	assert.Equal(t, float32(0.025), w.Float)

	w, _ = u.Get(renderer.UnifMatShininess)
	assert.Equal(t, float32(20), w.Float)

	w, _ = u.Get(renderer.UnifMatDiffuseColor)
	assert.Equal(t, gglm.NewVec3(0.75, 0.75, 0.75), w.Vec3)
}

func TestOverrideRestoresPrevious(t *testing.T) {

	u := &rendertest.Uniforms{}
	base := DefaultMaterial()
	ceiling := base
	ceiling.AmbientStrength = 0.02
	ceiling.SpecularColor = gglm.NewVec3(0.08, 0.08, 0.08)
	ceiling.Shininess = 4

	func() {
		o := Begin(u, &base, &ceiling)
		defer o.End()

		w, _ := u.Get(renderer.UnifMatShininess)
		assert.Equal(t, float32(4), w.Float)
	}()

	w, _ := u.Get(renderer.UnifMatShininess)
	assert.Equal(t, float32(20), w.Float)

	w, _ = u.Get(renderer.UnifMatAmbientStrength)
	assert.Equal(t, float32(0.025), w.Float)

	w, _ = u.Get(renderer.UnifMatSpecularColor)
	assert.Equal(t, gglm.NewVec3(0.3, 0.3, 0.3), w.Vec3)
}

func TestOverrideEndIsIdempotent(t *testing.T) {

	u := &rendertest.Uniforms{}
	base := DefaultMaterial()
	other := base
	other.Shininess = 4

	o := Begin(u, &base, &other)
	o.End()
	n := len(u.Writes)

	o.End()
	assert.Len(t, u.Writes, n)
}

func TestOverrideRestoresOnPanic(t *testing.T) {

	u := &rendertest.Uniforms{}
	base := DefaultMaterial()
	other := base
	other.Shininess = 99

	assert.Panics(t, func() {
		o := Begin(u, &base, &other)
		defer o.End()
		panic("draw failed")
	})

	w, _ := u.Get(renderer.UnifMatShininess)
	assert.Equal(t, float32(20), w.Float)
}
