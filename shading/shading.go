// Package shading pushes material and light values to the scene shader.
//
// All values here are plain uniforms, so they persist on the program until overwritten.
// A light is disabled by giving it zero colors, there is no enable flag.
package shading

import (
	"fmt"
	"strconv"

	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/nscene/renderer"
)

type MaterialState struct {
	AmbientColor    gglm.Vec3
	AmbientStrength float32
	DiffuseColor    gglm.Vec3
	SpecularColor   gglm.Vec3
	Shininess       float32
}

// DefaultMaterial is the base material every frame starts with
func DefaultMaterial() MaterialState {
	return MaterialState{
		AmbientColor:    gglm.NewVec3(1, 1, 1),
		AmbientStrength: 0.025,
		DiffuseColor:    gglm.NewVec3(0.75, 0.75, 0.75),
		SpecularColor:   gglm.NewVec3(0.3, 0.3, 0.3),
		Shininess:       20,
	}
}

func (m *MaterialState) Push(u renderer.Uniforms) {
	u.SetUnifVec3(renderer.UnifMatAmbientColor, &m.AmbientColor)
	u.SetUnifFloat32(renderer.UnifMatAmbientStrength, m.AmbientStrength)
	u.SetUnifVec3(renderer.UnifMatDiffuseColor, &m.DiffuseColor)
	u.SetUnifVec3(renderer.UnifMatSpecularColor, &m.SpecularColor)
	u.SetUnifFloat32(renderer.UnifMatShininess, m.Shininess)
}

type LightSource struct {
	Position          gglm.Vec3
	AmbientColor      gglm.Vec3
	DiffuseColor      gglm.Vec3
	SpecularColor     gglm.Vec3
	FocalStrength     float32
	SpecularIntensity float32
}

// DisabledLight contributes nothing to lighting
func DisabledLight() LightSource {
	return LightSource{
		FocalStrength:     1,
		SpecularIntensity: 0,
	}
}

func (l *LightSource) IsDisabled() bool {
	zero := gglm.Vec3{}
	return l.AmbientColor == zero && l.DiffuseColor == zero && l.SpecularColor == zero
}

// Lights is the full light array of the scene shader
type Lights [renderer.MaxLights]LightSource

// EnabledCount returns how many lights contribute to lighting
func (l *Lights) EnabledCount() int {

	count := 0
	for i := 0; i < len(l); i++ {
		if !l[i].IsDisabled() {
			count++
		}
	}

	return count
}

// AllLightsDisabled returns a light array with every light off
func AllLightsDisabled() Lights {

	var lights Lights
	for i := 0; i < len(lights); i++ {
		lights[i] = DisabledLight()
	}

	return lights
}

// LightUnifName returns the uniform name of field (e.g. "position") of light index
func LightUnifName(index int, field string) string {
	return "lightSources[" + strconv.Itoa(index) + "]." + field
}

// lightUnifNames are the uniform names of each light field, precomputed to
// avoid building strings every frame
var lightUnifNames = func() (names [renderer.MaxLights]struct {
	position, ambientColor, diffuseColor, specularColor, focalStrength, specularIntensity string
}) {

	for i := 0; i < renderer.MaxLights; i++ {
		names[i].position = LightUnifName(i, "position")
		names[i].ambientColor = LightUnifName(i, "ambientColor")
		names[i].diffuseColor = LightUnifName(i, "diffuseColor")
		names[i].specularColor = LightUnifName(i, "specularColor")
		names[i].focalStrength = LightUnifName(i, "focalStrength")
		names[i].specularIntensity = LightUnifName(i, "specularIntensity")
	}

	return names
}()

// SetLight pushes every field of light index. Index must be in [0, renderer.MaxLights).
func SetLight(u renderer.Uniforms, index int, l *LightSource) error {

	if index < 0 || index >= renderer.MaxLights {
		return fmt.Errorf("light index %d is out of range [0, %d)", index, renderer.MaxLights)
	}

	n := &lightUnifNames[index]
	u.SetUnifVec3(n.position, &l.Position)
	u.SetUnifVec3(n.ambientColor, &l.AmbientColor)
	u.SetUnifVec3(n.diffuseColor, &l.DiffuseColor)
	u.SetUnifVec3(n.specularColor, &l.SpecularColor)
	u.SetUnifFloat32(n.focalStrength, l.FocalStrength)
	u.SetUnifFloat32(n.specularIntensity, l.SpecularIntensity)
	return nil
}

// SetLights pushes all lights, including disabled ones
func SetLights(u renderer.Uniforms, lights *Lights) {

	for i := 0; i < len(lights); i++ {
		// Can't fail, i is always in range
		_ = SetLight(u, i, &lights[i])
	}
}

// SetColor disables texturing and sets a solid object color
func SetColor(u renderer.Uniforms, r, g, b, a float32) {
	color := gglm.NewVec4(r, g, b, a)
	u.SetUnifBool(renderer.UnifUseTexture, false)
	u.SetUnifVec4(renderer.UnifObjectColor, &color)
}

func SetUseTexture(u renderer.Uniforms, useTexture bool) {
	u.SetUnifBool(renderer.UnifUseTexture, useTexture)
}

func SetUseLighting(u renderer.Uniforms, useLighting bool) {
	u.SetUnifBool(renderer.UnifUseLighting, useLighting)
}
