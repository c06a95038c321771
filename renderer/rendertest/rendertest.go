// Package rendertest provides recording implementations of the renderer contracts
// so pipeline code can be tested without a GL context.
package rendertest

import (
	"errors"
	"fmt"

	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/nscene/renderer"
)

var (
	_ renderer.Uniforms        = &Uniforms{}
	_ renderer.TextureBackend  = &TextureBackend{}
	_ renderer.PrimitiveDrawer = &Drawer{}
)

// Write is one recorded uniform write. Exactly one of the value fields is meaningful,
// depending on the setter that produced it.
type Write struct {
	Name string
	Kind string

	Bool  bool
	Int   int32
	Float float32
	Vec3  gglm.Vec3
	Vec4  gglm.Vec4
	Mat4  gglm.Mat4
}

// Uniforms records every write in order, and keeps the latest value per name
type Uniforms struct {
	Writes []Write
	Latest map[string]Write

	seq int
}

func (u *Uniforms) record(w Write) {

	if u.Latest == nil {
		u.Latest = make(map[string]Write)
	}

	u.Writes = append(u.Writes, w)
	u.Latest[w.Name] = w
	u.seq++
}

func (u *Uniforms) SetUnifBool(uniformName string, val bool) {
	u.record(Write{Name: uniformName, Kind: "bool", Bool: val})
}

func (u *Uniforms) SetUnifInt32(uniformName string, val int32) {
	u.record(Write{Name: uniformName, Kind: "int32", Int: val})
}

func (u *Uniforms) SetUnifFloat32(uniformName string, val float32) {
	u.record(Write{Name: uniformName, Kind: "float32", Float: val})
}

func (u *Uniforms) SetUnifVec3(uniformName string, vec3 *gglm.Vec3) {
	u.record(Write{Name: uniformName, Kind: "vec3", Vec3: *vec3})
}

func (u *Uniforms) SetUnifVec4(uniformName string, vec4 *gglm.Vec4) {
	u.record(Write{Name: uniformName, Kind: "vec4", Vec4: *vec4})
}

func (u *Uniforms) SetUnifMat4(uniformName string, mat4 *gglm.Mat4) {
	u.record(Write{Name: uniformName, Kind: "mat4", Mat4: *mat4})
}

func (u *Uniforms) SetUnifSampler(uniformName string, textureUnit int32) {
	u.record(Write{Name: uniformName, Kind: "sampler", Int: textureUnit})
}

// Get returns the latest write to name
func (u *Uniforms) Get(name string) (Write, bool) {
	w, ok := u.Latest[name]
	return w, ok
}

// Seq is the number of writes so far. Useful to slice Writes between two points.
func (u *Uniforms) Seq() int {
	return u.seq
}

func (u *Uniforms) Reset() {
	u.Writes = u.Writes[:0]
	u.Latest = nil
	u.seq = 0
}

type Upload struct {
	Handle uint32
	Width  int32
	Height int32
	Format renderer.TexturePixelFormat
	Bytes  int
}

type BindCall struct {
	Unit   int32
	Handle uint32
}

// TextureBackend hands out increasing handles starting at 1
type TextureBackend struct {
	Uploads []Upload
	Binds   []BindCall
	Deleted []uint32

	// FailUploads makes Upload return an error
	FailUploads bool

	lastHandle uint32
	live       map[uint32]bool
}

func (b *TextureBackend) Upload(pixels []byte, width, height int32, format renderer.TexturePixelFormat) (uint32, error) {

	if b.FailUploads {
		return 0, errors.New("upload failed")
	}

	if b.live == nil {
		b.live = make(map[uint32]bool)
	}

	b.lastHandle++
	b.live[b.lastHandle] = true
	b.Uploads = append(b.Uploads, Upload{
		Handle: b.lastHandle,
		Width:  width,
		Height: height,
		Format: format,
		Bytes:  len(pixels),
	})

	return b.lastHandle, nil
}

func (b *TextureBackend) Bind(unit int32, handle uint32) {
	b.Binds = append(b.Binds, BindCall{Unit: unit, Handle: handle})
}

func (b *TextureBackend) Delete(handle uint32) {

	if !b.live[handle] {
		panic(fmt.Sprintf("delete of unknown or already deleted texture handle %d", handle))
	}

	delete(b.live, handle)
	b.Deleted = append(b.Deleted, handle)
}

// LiveCount is the number of uploaded textures not yet deleted
func (b *TextureBackend) LiveCount() int {
	return len(b.live)
}

// Draw is one recorded draw with the uniform write count at the time of the call
type Draw struct {
	Kind     renderer.PrimitiveKind
	WriteSeq int
}

type Drawer struct {
	Draws []Draw

	// Uniforms, when set, is used to stamp each draw with the current write count
	Uniforms *Uniforms
}

func (d *Drawer) DrawPrimitive(kind renderer.PrimitiveKind) {

	seq := 0
	if d.Uniforms != nil {
		seq = d.Uniforms.Seq()
	}

	d.Draws = append(d.Draws, Draw{Kind: kind, WriteSeq: seq})
}
