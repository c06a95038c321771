package meshes

import (
	"errors"
	"fmt"

	"github.com/bloeys/assimp-go/asig"
	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/nscene/assert"
	"github.com/bloeys/nscene/buffers"
	"github.com/go-gl/gl/v4.1-core/gl"
)

type SubMesh struct {
	BaseVertex int32
	BaseIndex  uint32
	IndexCount int32
}

type Mesh struct {
	Name string
	/*
		Vao has the following shader attribute layout:
			- Loc0: Pos
			- Loc1: Normal
			- Loc2: UV0
	*/
	Vao       buffers.VertexArray
	SubMeshes []SubMesh
}

// Draw issues one indexed draw per submesh. The vao must already be bound.
func (m *Mesh) Draw() {

	for i := 0; i < len(m.SubMeshes); i++ {
		sm := &m.SubMeshes[i]
		gl.DrawElementsBaseVertexWithOffset(gl.TRIANGLES, sm.IndexCount, gl.UNSIGNED_INT, uintptr(sm.BaseIndex*4), sm.BaseVertex)
	}
}

func (m *Mesh) Delete() {
	m.Vao.Delete()
	m.SubMeshes = nil
}

var (
	// DefaultMeshLoadFlags are always applied when loading a mesh
	DefaultMeshLoadFlags asig.PostProcess = asig.PostProcessTriangulate

	// VertexLayout is the interleaved layout of every mesh vertex buffer
	VertexLayout = []buffers.Element{
		{ElementType: buffers.DataTypeVec3}, // Position
		{ElementType: buffers.DataTypeVec3}, // Normal
		{ElementType: buffers.DataTypeVec2}, // UV0
	}
)

// vertexStrideFloats is the number of floats per vertex in VertexLayout
const vertexStrideFloats = 3 + 3 + 2

// meshData is the CPU side of a mesh before upload. All submeshes share one
// vertex buffer and one index buffer.
type meshData struct {
	vertices  []float32
	indices   []uint32
	subMeshes []SubMesh
}

// addSubMesh interleaves one submesh into the shared buffers. Normals and uvs may be
// empty, in which case zeros are used.
func (md *meshData) addSubMesh(positions, normals, uvs []gglm.Vec3, indices []uint32) error {

	if len(positions) == 0 {
		return errors.New("submesh has no vertices")
	}

	if len(normals) != 0 && len(normals) != len(positions) {
		return fmt.Errorf("submesh has %d normals but %d vertices", len(normals), len(positions))
	}

	if len(uvs) != 0 && len(uvs) != len(positions) {
		return fmt.Errorf("submesh has %d uvs but %d vertices", len(uvs), len(positions))
	}

	for _, index := range indices {
		if int(index) >= len(positions) {
			return fmt.Errorf("submesh index %d is out of range for %d vertices", index, len(positions))
		}
	}

	md.subMeshes = append(md.subMeshes, SubMesh{

		// Index of the vertex to start from (e.g. if index buffer says use vertex 5, and BaseVertex=3, the vertex used will be vertex 8)
		BaseVertex: int32(len(md.vertices) / vertexStrideFloats),
		// Which index (in the index buffer) to start from
		BaseIndex: uint32(len(md.indices)),
		// How many indices in this submesh
		IndexCount: int32(len(indices)),
	})

	for i := 0; i < len(positions); i++ {

		md.vertices = append(md.vertices, positions[i].Data[:]...)

		if len(normals) > 0 {
			md.vertices = append(md.vertices, normals[i].Data[:]...)
		} else {
			md.vertices = append(md.vertices, 0, 0, 0)
		}

		if len(uvs) > 0 {
			md.vertices = append(md.vertices, uvs[i].X(), uvs[i].Y())
		} else {
			md.vertices = append(md.vertices, 0, 0)
		}
	}

	md.indices = append(md.indices, indices...)
	return nil
}

func (md *meshData) upload(name string) (Mesh, error) {

	vao, err := buffers.NewVertexArray()
	if err != nil {
		return Mesh{}, err
	}

	vbo, err := buffers.NewVertexBuffer(VertexLayout...)
	if err != nil {
		vao.Delete()
		return Mesh{}, err
	}

	ibo, err := buffers.NewIndexBuffer()
	if err != nil {
		vbo.Delete()
		vao.Delete()
		return Mesh{}, err
	}

	assert.T(vbo.Stride == vertexStrideFloats*4, "Vertex layout stride of %d bytes doesn't match %d floats", vbo.Stride, vertexStrideFloats)

	vao.Bind()
	vbo.SetData(md.vertices, buffers.BufUsage_Static_Draw)
	ibo.SetData(md.indices)

	vao.AddVertexBuffer(vbo)
	vao.SetIndexBuffer(ibo)

	// This is needed so that if you load meshes one after the other the
	// following mesh doesn't attach its vbo/ibo to this vao
	vao.UnBind()

	return Mesh{
		Name:      name,
		Vao:       vao,
		SubMeshes: md.subMeshes,
	}, nil
}

func NewMesh(name, modelPath string, postProcessFlags asig.PostProcess) (Mesh, error) {

	finalPostProcessFlags := DefaultMeshLoadFlags | postProcessFlags

	scene, release, err := asig.ImportFile(modelPath, finalPostProcessFlags)
	if err != nil {
		return Mesh{}, fmt.Errorf("failed to load model '%s'. Err: %w", modelPath, err)
	}
	defer release()

	if len(scene.Meshes) == 0 {
		return Mesh{}, errors.New("no meshes found in file: " + modelPath)
	}

	md := meshData{
		vertices:  make([]float32, 0, len(scene.Meshes[0].Vertices)*vertexStrideFloats),
		indices:   make([]uint32, 0, len(scene.Meshes[0].Faces)*3),
		subMeshes: make([]SubMesh, 0, len(scene.Meshes)),
	}

	for i := 0; i < len(scene.Meshes); i++ {

		sceneMesh := scene.Meshes[i]
		indices, err := flattenFaces(sceneMesh.Faces)
		if err != nil {
			return Mesh{}, fmt.Errorf("submesh %d of '%s': %w", i, modelPath, err)
		}

		var uvs []gglm.Vec3
		if len(sceneMesh.TexCoords) > 0 {
			uvs = sceneMesh.TexCoords[0]
		}

		if err := md.addSubMesh(sceneMesh.Vertices, sceneMesh.Normals, uvs, indices); err != nil {
			return Mesh{}, fmt.Errorf("submesh %d of '%s': %w", i, modelPath, err)
		}
	}

	return md.upload(name)
}

func flattenFaces(faces []asig.Face) ([]uint32, error) {

	uints := make([]uint32, len(faces)*3)
	for i := 0; i < len(faces); i++ {

		if len(faces[i].Indices) != 3 {
			return nil, fmt.Errorf("face %d doesn't have 3 indices. Index count: %d", i, len(faces[i].Indices))
		}

		uints[i*3+0] = uint32(faces[i].Indices[0])
		uints[i*3+1] = uint32(faces[i].Indices[1])
		uints[i*3+2] = uint32(faces[i].Indices[2])
	}

	return uints, nil
}
