package buffers

import (
	"errors"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// VertexArray owns its buffers. Attribute i of the vertex buffer layout goes to location i.
type VertexArray struct {
	Id          uint32
	Vbos        []VertexBuffer
	IndexBuffer IndexBuffer
}

func (va *VertexArray) Bind() {
	gl.BindVertexArray(va.Id)
}

func (va *VertexArray) UnBind() {
	gl.BindVertexArray(0)
}

func (va *VertexArray) AddVertexBuffer(vbo VertexBuffer) {

	// NOTE: VBOs are only bound at 'VertexAttribPointer' (and related) calls

	va.Bind()
	vbo.Bind()

	for i := 0; i < len(vbo.layout); i++ {

		l := &vbo.layout[i]

		gl.EnableVertexAttribArray(uint32(i))
		gl.VertexAttribPointerWithOffset(uint32(i), l.ElementType.CompCount(), l.ElementType.GLType(), false, vbo.Stride, uintptr(l.Offset))
	}

	va.Vbos = append(va.Vbos, vbo)
}

func (va *VertexArray) SetIndexBuffer(ib IndexBuffer) {
	va.Bind()
	ib.Bind()
	va.IndexBuffer = ib
}

// Delete deletes the vertex array and every buffer attached to it
func (va *VertexArray) Delete() {

	for i := 0; i < len(va.Vbos); i++ {
		va.Vbos[i].Delete()
	}
	va.Vbos = nil

	if va.IndexBuffer.Id != 0 {
		va.IndexBuffer.Delete()
	}

	gl.DeleteVertexArrays(1, &va.Id)
	va.Id = 0
}

func NewVertexArray() (VertexArray, error) {

	vao := VertexArray{}

	gl.GenVertexArrays(1, &vao.Id)
	if vao.Id == 0 {
		return VertexArray{}, errors.New("failed to create OpenGL vertex array object")
	}

	return vao, nil
}
