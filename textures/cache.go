package textures

import (
	"errors"
	"fmt"

	"github.com/bloeys/nscene/assert"
	"github.com/bloeys/nscene/assets"
	"github.com/bloeys/nscene/logging"
	"github.com/bloeys/nscene/renderer"
)

const (
	// Capacity is the fixed number of slots. Slot i is bound to texture unit i,
	// so this can't exceed the units the scene shader samples from.
	Capacity = renderer.MaxTextureUnits

	// SlotNotFound is returned by FindSlot on a miss
	SlotNotFound = -1
)

var (
	ErrCapacityExceeded  = errors.New("texture cache is full")
	ErrDecodeFailure     = errors.New("failed to decode image")
	ErrUnsupportedFormat = errors.New("unsupported image format")
	ErrNotFound          = errors.New("texture tag not found")
)

// Slot pairs a tag with a GPU texture handle. Its texture unit is its position in the cache.
type Slot struct {
	Tag    string
	Handle uint32
}

// Cache is a load-once, drop-all-at-once table of textures keyed by tag.
//
// There is no eviction. Once full, loads fail until DestroyAll is called.
// Tags are not required to be unique, lookups return the first loaded match.
//
// Like everything touching the GL context, a Cache must only be used from the render thread.
type Cache struct {
	slots   [Capacity]Slot
	count   int
	backend renderer.TextureBackend
	decoder assets.Decoder
}

// TextureSpec is one entry of a batch load
type TextureSpec struct {
	Path string `toml:"path"`
	Tag  string `toml:"tag"`
}

func (c *Cache) Len() int {
	return c.count
}

func (c *Cache) Cap() int {
	return Capacity
}

func (c *Cache) IsFull() bool {
	return c.count >= Capacity
}

// Slot returns the occupied slot at index i
func (c *Cache) Slot(i int) (Slot, bool) {

	if i < 0 || i >= c.count {
		return Slot{}, false
	}

	return c.slots[i], true
}

// Tags returns the tags of occupied slots in insertion order
func (c *Cache) Tags() []string {

	tags := make([]string, c.count)
	for i := 0; i < c.count; i++ {
		tags[i] = c.slots[i].Tag
	}

	return tags
}

// Load decodes the image at path, uploads it and appends it to the cache under tag.
//
// On failure nothing is changed and the returned error wraps one of ErrCapacityExceeded,
// ErrDecodeFailure or ErrUnsupportedFormat. None of these are fatal, callers are expected
// to log and carry on loading other textures.
func (c *Cache) Load(path, tag string) error {

	if c.IsFull() {
		return fmt.Errorf("%w (capacity=%d). Can't load '%s' with tag '%s'", ErrCapacityExceeded, Capacity, path, tag)
	}

	img, err := c.decoder.Decode(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDecodeFailure, err)
	}
	defer img.Release()

	var format renderer.TexturePixelFormat
	switch img.Channels {
	case 3:
		format = renderer.TexturePixelFormat_RGB8
	case 4:
		format = renderer.TexturePixelFormat_RGBA8
	default:
		return fmt.Errorf("%w: image '%s' has %d channels, only 3 (RGB) and 4 (RGBA) are supported", ErrUnsupportedFormat, path, img.Channels)
	}

	if img.Width <= 0 || img.Height <= 0 || len(img.Pix) < img.Width*img.Height*img.Channels {
		return fmt.Errorf("%w: image '%s' has invalid size %dx%d with %d bytes of pixel data", ErrDecodeFailure, path, img.Width, img.Height, len(img.Pix))
	}

	handle, err := c.backend.Upload(img.Pix, int32(img.Width), int32(img.Height), format)
	if err != nil {
		return fmt.Errorf("failed to upload image '%s'. Err: %w", path, err)
	}
	assert.T(handle != 0, "Texture backend returned handle 0 for image '%s'", path)

	c.slots[c.count] = Slot{Tag: tag, Handle: handle}
	c.count++

	logging.InfoLog.Printf("Loaded image '%s' (%dx%d, channels: %d) into slot %d with tag '%s'\n", path, img.Width, img.Height, img.Channels, c.count-1, tag)
	return nil
}

// LoadAll loads textures in order, skipping failures, then binds everything.
// It returns how many loads succeeded.
func (c *Cache) LoadAll(specs []TextureSpec) int {

	loaded := 0
	for i := 0; i < len(specs); i++ {

		err := c.Load(specs[i].Path, specs[i].Tag)
		if err != nil {
			logging.ErrLog.Printf("Failed to load texture. Err: %s\n", err)
			continue
		}

		loaded++
	}

	c.BindAll()
	return loaded
}

// FindSlot returns the index of the first slot with tag, or SlotNotFound
func (c *Cache) FindSlot(tag string) int {

	for i := 0; i < c.count; i++ {
		if c.slots[i].Tag == tag {
			return i
		}
	}

	return SlotNotFound
}

// Lookup is FindSlot with an error that wraps ErrNotFound on a miss
func (c *Cache) Lookup(tag string) (int, error) {

	i := c.FindSlot(tag)
	if i == SlotNotFound {
		return SlotNotFound, fmt.Errorf("%w: '%s'", ErrNotFound, tag)
	}

	return i, nil
}

// BindAll binds slot i to texture unit i. Units are derived from slot position only,
// so this must be called every frame before drawing anything textured.
func (c *Cache) BindAll() {

	for i := 0; i < c.count; i++ {
		c.backend.Bind(int32(i), c.slots[i].Handle)
	}
}

// DestroyAll deletes every texture and empties the cache. Calling it on an empty cache does nothing.
func (c *Cache) DestroyAll() {

	if c.count == 0 {
		logging.InfoLog.Println("No textures to destroy")
		return
	}

	for i := 0; i < c.count; i++ {

		if c.slots[i].Handle != 0 {
			c.backend.Delete(c.slots[i].Handle)
		}

		c.slots[i] = Slot{}
	}

	logging.InfoLog.Printf("Destroyed %d textures\n", c.count)
	c.count = 0
}

// SelectForDraw points the shader at the texture tagged tag and enables texturing.
//
// On a miss nothing is written and the shader keeps whatever texture state it had.
// Solid color draws must disable texturing themselves. The return value reports whether tag was found.
func (c *Cache) SelectForDraw(u renderer.Uniforms, tag string) bool {

	slot := c.FindSlot(tag)
	if slot == SlotNotFound {
		return false
	}

	u.SetUnifBool(renderer.UnifUseTexture, true)
	u.SetUnifSampler(renderer.UnifObjectTexture, int32(slot))
	return true
}

func NewCache(backend renderer.TextureBackend, decoder assets.Decoder) *Cache {

	assert.T(backend != nil, "NewCache requires a texture backend")
	assert.T(decoder != nil, "NewCache requires an image decoder")

	return &Cache{
		backend: backend,
		decoder: decoder,
	}
}
