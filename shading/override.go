package shading

import (
	"github.com/bloeys/nscene/renderer"
)

// Override is a scoped material change. Begin pushes the new material and End
// pushes the previous one back, so a per-object material can't leak into later draws:
//
//	o := shading.Begin(u, &base, &cakeMat)
//	defer o.End()
type Override struct {
	u     renderer.Uniforms
	prev  MaterialState
	ended bool
}

func Begin(u renderer.Uniforms, prev, next *MaterialState) *Override {

	next.Push(u)
	return &Override{
		u:    u,
		prev: *prev,
	}
}

// End restores the material that was active before Begin. Calling it more than once does nothing.
func (o *Override) End() {

	if o.ended {
		return
	}

	o.ended = true
	o.prev.Push(o.u)
}
