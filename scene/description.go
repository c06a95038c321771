package scene

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/nscene/renderer"
	"github.com/bloeys/nscene/shading"
	"github.com/bloeys/nscene/textures"
	"github.com/bloeys/nscene/transform"
	"github.com/pelletier/go-toml/v2"
)

// Description is a scene file: the textures to load, the lights and base material
// of every frame, and the objects to draw in order.
//
// Scene files are TOML:
//
//	[material]
//	ambient_color = [1, 1, 1]
//	ambient_strength = 0.025
//
//	[[textures]]
//	path = "res/textures/floor.jpg"
//	tag = "floor"
//
//	[[lights]]
//	index = 1
//	position = [0, 6.5, -14]
//	diffuse_color = [0.6, 0.45, 0.25]
//
//	[[objects]]
//	name = "floor"
//	primitive = "plane"
//	scale = [25, 1, 25]
//	texture = "floor"
//
// Material fields left out of an object's material table keep the base value.
// Lights not listed are disabled.
type Description struct {
	Textures []textures.TextureSpec
	Lights   shading.Lights
	Material shading.MaterialState
	Objects  []DrawCall
}

type materialDesc struct {
	AmbientColor    []float32 `toml:"ambient_color"`
	AmbientStrength *float32  `toml:"ambient_strength"`
	DiffuseColor    []float32 `toml:"diffuse_color"`
	SpecularColor   []float32 `toml:"specular_color"`
	Shininess       *float32  `toml:"shininess"`
}

type lightDesc struct {
	Index             int       `toml:"index"`
	Position          []float32 `toml:"position"`
	AmbientColor      []float32 `toml:"ambient_color"`
	DiffuseColor      []float32 `toml:"diffuse_color"`
	SpecularColor     []float32 `toml:"specular_color"`
	FocalStrength     *float32  `toml:"focal_strength"`
	SpecularIntensity *float32  `toml:"specular_intensity"`
}

type objectDesc struct {
	Name      string        `toml:"name"`
	Primitive string        `toml:"primitive"`
	Scale     []float32     `toml:"scale"`
	Rotation  []float32     `toml:"rotation"`
	Position  []float32     `toml:"position"`
	Texture   string        `toml:"texture"`
	Color     []float32     `toml:"color"`
	Material  *materialDesc `toml:"material"`
}

type descriptionFile struct {
	Material *materialDesc          `toml:"material"`
	Textures []textures.TextureSpec `toml:"textures"`
	Lights   []lightDesc            `toml:"lights"`
	Objects  []objectDesc           `toml:"objects"`
}

var (
	ErrInvalidDescription = errors.New("invalid scene description")
)

func LoadDescription(path string) (*Description, error) {

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene file '%s'. Err: %w", path, err)
	}

	desc, err := ParseDescription(data)
	if err != nil {
		return nil, fmt.Errorf("scene file '%s': %w", path, err)
	}

	return desc, nil
}

func ParseDescription(data []byte) (*Description, error) {

	var f descriptionFile
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDescription, err)
	}

	desc := &Description{
		Textures: f.Textures,
		Lights:   shading.AllLightsDisabled(),
		Material: shading.DefaultMaterial(),
		Objects:  make([]DrawCall, 0, len(f.Objects)),
	}

	if f.Material != nil {
		if err := f.Material.applyTo(&desc.Material); err != nil {
			return nil, fmt.Errorf("%w: material: %w", ErrInvalidDescription, err)
		}
	}

	seenLights := [renderer.MaxLights]bool{}
	for i := 0; i < len(f.Lights); i++ {

		ld := &f.Lights[i]
		if ld.Index < 0 || ld.Index >= renderer.MaxLights {
			return nil, fmt.Errorf("%w: light %d has index %d, must be in [0, %d)", ErrInvalidDescription, i, ld.Index, renderer.MaxLights)
		}

		if seenLights[ld.Index] {
			return nil, fmt.Errorf("%w: light index %d is defined more than once", ErrInvalidDescription, ld.Index)
		}
		seenLights[ld.Index] = true

		if err := ld.applyTo(&desc.Lights[ld.Index]); err != nil {
			return nil, fmt.Errorf("%w: light %d: %w", ErrInvalidDescription, ld.Index, err)
		}
	}

	for i := 0; i < len(f.Objects); i++ {

		dc, err := f.Objects[i].toDrawCall(&desc.Material)
		if err != nil {
			return nil, fmt.Errorf("%w: object %d ('%s'): %w", ErrInvalidDescription, i, f.Objects[i].Name, err)
		}

		desc.Objects = append(desc.Objects, dc)
	}

	return desc, nil
}

func (m *materialDesc) applyTo(out *shading.MaterialState) error {

	if err := setVec3(&out.AmbientColor, m.AmbientColor, "ambient_color"); err != nil {
		return err
	}

	if err := setVec3(&out.DiffuseColor, m.DiffuseColor, "diffuse_color"); err != nil {
		return err
	}

	if err := setVec3(&out.SpecularColor, m.SpecularColor, "specular_color"); err != nil {
		return err
	}

	if m.AmbientStrength != nil {
		out.AmbientStrength = *m.AmbientStrength
	}

	if m.Shininess != nil {
		out.Shininess = *m.Shininess
	}

	return nil
}

func (ld *lightDesc) applyTo(out *shading.LightSource) error {

	if err := setVec3(&out.Position, ld.Position, "position"); err != nil {
		return err
	}

	if err := setVec3(&out.AmbientColor, ld.AmbientColor, "ambient_color"); err != nil {
		return err
	}

	if err := setVec3(&out.DiffuseColor, ld.DiffuseColor, "diffuse_color"); err != nil {
		return err
	}

	if err := setVec3(&out.SpecularColor, ld.SpecularColor, "specular_color"); err != nil {
		return err
	}

	if ld.FocalStrength != nil {
		out.FocalStrength = *ld.FocalStrength
	}

	if ld.SpecularIntensity != nil {
		out.SpecularIntensity = *ld.SpecularIntensity
	}

	return nil
}

func (od *objectDesc) toDrawCall(baseMat *shading.MaterialState) (DrawCall, error) {

	kind, ok := renderer.ParsePrimitiveKind(od.Primitive)
	if !ok {
		return DrawCall{}, fmt.Errorf("unknown primitive '%s'. Must be one of plane, box, cylinder, cone, sphere", od.Primitive)
	}

	dc := DrawCall{
		Name:      od.Name,
		Primitive: kind,
		Transform: transform.Identity(),
		Texture:   od.Texture,
	}

	if err := setVec3(&dc.Transform.Scale, od.Scale, "scale"); err != nil {
		return DrawCall{}, err
	}

	if err := setVec3(&dc.Transform.Position, od.Position, "position"); err != nil {
		return DrawCall{}, err
	}

	var rot gglm.Vec3
	if err := setVec3(&rot, od.Rotation, "rotation"); err != nil {
		return DrawCall{}, err
	}
	dc.Transform.RotXDeg, dc.Transform.RotYDeg, dc.Transform.RotZDeg = rot.X(), rot.Y(), rot.Z()

	if len(od.Color) > 0 {

		if od.Texture != "" {
			return DrawCall{}, errors.New("texture and color can't both be set")
		}

		if len(od.Color) != 4 {
			return DrawCall{}, fmt.Errorf("color must have 4 components, got %d", len(od.Color))
		}

		c := gglm.NewVec4(od.Color[0], od.Color[1], od.Color[2], od.Color[3])
		dc.Color = &c
	}

	if od.Material != nil {

		mat := *baseMat
		if err := od.Material.applyTo(&mat); err != nil {
			return DrawCall{}, fmt.Errorf("material: %w", err)
		}

		dc.Material = &mat
	}

	return dc, nil
}

// setVec3 writes vals into out if vals isn't empty
func setVec3(out *gglm.Vec3, vals []float32, field string) error {

	if len(vals) == 0 {
		return nil
	}

	if len(vals) != 3 {
		return fmt.Errorf("%s must have 3 components, got %d", field, len(vals))
	}

	out.Data = [3]float32{vals[0], vals[1], vals[2]}
	return nil
}
