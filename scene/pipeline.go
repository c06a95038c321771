// Package scene drives one frame of immediate mode rendering.
//
// For every object the pipeline does, in order: scoped material override, model
// transform, texture or solid color, and one primitive draw. There is no batching or
// sorting. Uniform state persists between draws, so draw order matters for any
// object that relies on state it doesn't set itself.
package scene

import (
	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/nscene/assert"
	"github.com/bloeys/nscene/logging"
	"github.com/bloeys/nscene/renderer"
	"github.com/bloeys/nscene/shading"
	"github.com/bloeys/nscene/textures"
	"github.com/bloeys/nscene/transform"
)

// DrawCall is everything needed to draw one object.
//
// Texture and Color are mutually exclusive. When both are empty the object
// is drawn with whatever texture/color state the previous draw left behind.
type DrawCall struct {
	Name      string
	Primitive renderer.PrimitiveKind
	Transform transform.Params

	// Texture is a texture cache tag. If the tag isn't loaded nothing is changed,
	// so the previous texture state is used.
	Texture string
	Color   *gglm.Vec4

	// Material, if set, is active only for this draw
	Material *shading.MaterialState
}

type Pipeline struct {
	Uniforms renderer.Uniforms
	Textures *textures.Cache
	Meshes   renderer.PrimitiveDrawer

	// Lights and Material are pushed at the start of every frame
	Lights   shading.Lights
	Material shading.MaterialState

	warnedTags map[string]struct{}
}

// Apply takes lights and base material from desc. Textures are not touched.
func (p *Pipeline) Apply(desc *Description) {
	p.Lights = desc.Lights
	p.Material = desc.Material
}

// Prepare applies desc and loads its textures. It returns the number of textures loaded.
func (p *Pipeline) Prepare(desc *Description) int {

	p.Apply(desc)
	logging.InfoLog.Printf("Scene has %d objects and %d/%d enabled lights\n", len(desc.Objects), p.Lights.EnabledCount(), len(p.Lights))

	loaded := p.Textures.LoadAll(desc.Textures)
	if loaded != len(desc.Textures) {
		logging.WarnLog.Printf("Loaded %d/%d scene textures\n", loaded, len(desc.Textures))
	}

	return loaded
}

// Reload drops all textures and prepares desc from scratch
func (p *Pipeline) Reload(desc *Description) int {
	p.Textures.DestroyAll()
	clear(p.warnedTags)
	return p.Prepare(desc)
}

// BeginFrame binds textures to their units and pushes lighting and the base material
func (p *Pipeline) BeginFrame() {

	p.Textures.BindAll()

	shading.SetUseLighting(p.Uniforms, true)
	shading.SetLights(p.Uniforms, &p.Lights)
	p.Material.Push(p.Uniforms)
}

// Draw issues one object. Must be called between BeginFrame and the end of the frame.
func (p *Pipeline) Draw(dc *DrawCall) {

	if dc.Primitive == renderer.PrimitiveKind_Unknown {
		logging.ErrLog.Printf("Skipping object '%s' because it has no primitive\n", dc.Name)
		return
	}

	if dc.Material != nil {
		o := shading.Begin(p.Uniforms, &p.Material, dc.Material)
		defer o.End()
	}

	dc.Transform.Push(p.Uniforms)

	assert.T(dc.Texture == "" || dc.Color == nil, "Object '%s' has both a texture and a color", dc.Name)
	if dc.Texture != "" {

		if !p.Textures.SelectForDraw(p.Uniforms, dc.Texture) {
			p.warnMissingTexture(dc)
		}

	} else if dc.Color != nil {
		c := &dc.Color.Data
		shading.SetColor(p.Uniforms, c[0], c[1], c[2], c[3])
	}

	p.Meshes.DrawPrimitive(dc.Primitive)
}

func (p *Pipeline) warnMissingTexture(dc *DrawCall) {

	if p.warnedTags == nil {
		p.warnedTags = make(map[string]struct{})
	}

	if _, ok := p.warnedTags[dc.Texture]; ok {
		return
	}

	p.warnedTags[dc.Texture] = struct{}{}
	logging.WarnLog.Printf("Texture tag '%s' used by object '%s' is not loaded. The previous texture state will be used\n", dc.Texture, dc.Name)
}

// Render draws a full frame of objects in order
func (p *Pipeline) Render(objects []DrawCall) {

	p.BeginFrame()
	for i := 0; i < len(objects); i++ {
		p.Draw(&objects[i])
	}
}

// Close releases all textures
func (p *Pipeline) Close() {
	p.Textures.DestroyAll()
}

func NewPipeline(u renderer.Uniforms, texCache *textures.Cache, meshes renderer.PrimitiveDrawer) *Pipeline {
	return &Pipeline{
		Uniforms: u,
		Textures: texCache,
		Meshes:   meshes,
		Lights:   shading.AllLightsDisabled(),
		Material: shading.DefaultMaterial(),
	}
}
