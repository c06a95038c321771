package buffers

import (
	"github.com/bloeys/nscene/assert"
	"github.com/go-gl/gl/v4.1-core/gl"
)

// Element is one vertex attribute inside an interleaved buffer (e.g. Vec3 at an offset of 12 bytes)
type Element struct {
	Offset int
	ElementType
}

// ElementType is the type of one vertex attribute. Every type is made of float32 components.
type ElementType uint8

const (
	DataTypeUnknown ElementType = iota
	DataTypeFloat32
	DataTypeVec2
	DataTypeVec3
	DataTypeVec4
)

var elementTypeInfo = [...]struct {
	name      string
	compCount int32
}{
	DataTypeUnknown: {"Unknown", 0},
	DataTypeFloat32: {"float32", 1},
	DataTypeVec2:    {"Vec2", 2},
	DataTypeVec3:    {"Vec3", 3},
	DataTypeVec4:    {"Vec4", 4},
}

func (dt ElementType) isKnown() bool {
	return dt > DataTypeUnknown && int(dt) < len(elementTypeInfo)
}

func (dt ElementType) GLType() uint32 {
	assert.T(dt.isKnown(), "Unknown data type passed. DataType '%d'", dt)
	return gl.FLOAT
}

// CompCount returns the number of float32 components (e.g. 2 for Vec2)
func (dt ElementType) CompCount() int32 {

	if !dt.isKnown() {
		assert.T(false, "Unknown data type passed. DataType '%d'", dt)
		return 0
	}

	return elementTypeInfo[dt].compCount
}

// Size returns the size in bytes (e.g. 12 for Vec3)
func (dt ElementType) Size() int32 {
	return dt.CompCount() * 4
}

func (dt ElementType) String() string {

	if !dt.isKnown() {
		return elementTypeInfo[DataTypeUnknown].name
	}

	return elementTypeInfo[dt].name
}

// BufUsage is the usage hint passed to glBufferData. Meshes here are uploaded once,
// so only the draw usages exist.
type BufUsage uint8

const (
	BufUsage_Unknown BufUsage = iota

	// Set once, drawn many times
	BufUsage_Static_Draw
	// Changed often, drawn many times
	BufUsage_Dynamic_Draw
)

func (b BufUsage) ToGL() uint32 {

	switch b {
	case BufUsage_Static_Draw:
		return gl.STATIC_DRAW
	case BufUsage_Dynamic_Draw:
		return gl.DYNAMIC_DRAW
	}

	assert.T(false, "Unexpected BufUsage value '%d'", b)
	return 0
}
