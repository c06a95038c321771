package meshes

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bloeys/assimp-go/asig"
	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/nscene/renderer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func triangle() (pos, normals, uvs []gglm.Vec3) {

	pos = []gglm.Vec3{gglm.NewVec3(0, 0, 0), gglm.NewVec3(1, 0, 0), gglm.NewVec3(0, 1, 0)}
	normals = []gglm.Vec3{gglm.NewVec3(0, 0, 1), gglm.NewVec3(0, 0, 1), gglm.NewVec3(0, 0, 1)}
	uvs = []gglm.Vec3{gglm.NewVec3(0, 0, 0), gglm.NewVec3(1, 0, 0), gglm.NewVec3(0, 1, 0)}
	return pos, normals, uvs
}

func TestAddSubMeshInterleaves(t *testing.T) {

	md := meshData{}
	pos, normals, uvs := triangle()
	require.NoError(t, md.addSubMesh(pos, normals, uvs, []uint32{0, 1, 2}))

	require.Len(t, md.vertices, 3*vertexStrideFloats)
	// Second vertex: pos, normal, uv
	assert.Equal(t, []float32{1, 0, 0, 0, 0, 1, 1, 0}, md.vertices[vertexStrideFloats:2*vertexStrideFloats])
	assert.Equal(t, []SubMesh{{BaseVertex: 0, BaseIndex: 0, IndexCount: 3}}, md.subMeshes)
}

func TestAddSubMeshOffsets(t *testing.T) {

	md := meshData{}
	pos, normals, uvs := triangle()
	require.NoError(t, md.addSubMesh(pos, normals, uvs, []uint32{0, 1, 2}))
	require.NoError(t, md.addSubMesh(pos, nil, nil, []uint32{2, 1, 0}))

	require.Len(t, md.subMeshes, 2)
	assert.Equal(t, SubMesh{BaseVertex: 3, BaseIndex: 3, IndexCount: 3}, md.subMeshes[1])
	assert.Equal(t, []uint32{0, 1, 2, 2, 1, 0}, md.indices)

	// Missing normals and uvs become zeros
	last := md.vertices[5*vertexStrideFloats:]
	assert.Equal(t, []float32{0, 1, 0, 0, 0, 0, 0, 0}, last)
}

func TestAddSubMeshErrors(t *testing.T) {

	pos, normals, uvs := triangle()

	md := meshData{}
	assert.Error(t, md.addSubMesh(nil, nil, nil, nil))
	assert.Error(t, md.addSubMesh(pos, normals[:2], uvs, []uint32{0, 1, 2}))
	assert.Error(t, md.addSubMesh(pos, normals, uvs[:1], []uint32{0, 1, 2}))
	assert.Error(t, md.addSubMesh(pos, normals, uvs, []uint32{0, 1, 3}))
	assert.Empty(t, md.subMeshes)
}

func TestFlattenFaces(t *testing.T) {

	indices, err := flattenFaces([]asig.Face{{Indices: []uint{0, 1, 2}}, {Indices: []uint{2, 3, 0}}})
	require.NoError(t, err)
	assert.Equal(t, []uint32{0, 1, 2, 2, 3, 0}, indices)

	_, err = flattenFaces([]asig.Face{{Indices: []uint{0, 1, 2, 3}}})
	assert.Error(t, err)
}

func TestPrimitiveFileNames(t *testing.T) {

	assert.Equal(t, "plane.obj", PrimitiveFileName(renderer.PrimitiveKind_Plane))
	assert.Equal(t, "sphere.obj", PrimitiveFileName(renderer.PrimitiveKind_Sphere))

	l := Library{}
	assert.Nil(t, l.Get(renderer.PrimitiveKind_Box))
	assert.Nil(t, l.Get(renderer.PrimitiveKind(200)))
}

func TestBundledPrimitivesExist(t *testing.T) {

	for _, kind := range renderer.PrimitiveKinds {
		_, err := os.Stat(filepath.Join("../res/models", PrimitiveFileName(kind)))
		assert.NoError(t, err, kind.String())
	}
}
