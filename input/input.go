// Package input tracks keyboard and mouse state from SDL events.
//
// EventLoopStart must be called once per frame before the frame's events are handled.
// "Clicked" and "released" queries are true only during the frame the event arrived in.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// btnState is shared by keys and mouse buttons. pressedFrame and releasedFrame hold
// the frame number of the last edge, so nothing has to be reset between frames.
type btnState struct {
	isDown        bool
	pressedFrame  uint64
	releasedFrame uint64
}

var (
	// Starts at 1 so the zero value of a btnState never counts as this frame
	frame uint64 = 1

	keys       = make(map[sdl.Keycode]btnState)
	mouseBtns  = make(map[uint8]btnState)
	quitFrame  uint64
	mouseWheel int32

	mouseX, mouseY           int32
	mouseXDelta, mouseYDelta int32
)

func EventLoopStart() {

	frame++

	mouseXDelta = 0
	mouseYDelta = 0
	mouseWheel = 0
}

// ClearState forgets all keys and buttons, e.g. when the window loses focus
// and release events would be missed
func ClearState() {
	clear(keys)
	clear(mouseBtns)
	mouseXDelta, mouseYDelta = 0, 0
	mouseWheel = 0
}

func (s *btnState) update(pressed bool) {

	if pressed && !s.isDown {
		s.pressedFrame = frame
	} else if !pressed && s.isDown {
		s.releasedFrame = frame
	}

	s.isDown = pressed
}

func HandleQuitEvent(e *sdl.QuitEvent) {
	quitFrame = frame
}

func IsQuitClicked() bool {
	return quitFrame == frame
}

// HandleKeyboardEvent ignores key repeats, so holding a key is one click
func HandleKeyboardEvent(e *sdl.KeyboardEvent) {

	if e.Repeat != 0 {
		return
	}

	ks := keys[e.Keysym.Sym]
	ks.update(e.State == sdl.PRESSED)
	keys[e.Keysym.Sym] = ks
}

func HandleMouseBtnEvent(e *sdl.MouseButtonEvent) {

	mb := mouseBtns[e.Button]
	mb.update(e.State == sdl.PRESSED)
	mouseBtns[e.Button] = mb
}

// HandleMouseMotionEvent accumulates motion, since a frame can have many motion events
func HandleMouseMotionEvent(e *sdl.MouseMotionEvent) {

	mouseX, mouseY = e.X, e.Y

	mouseXDelta += e.XRel
	mouseYDelta += e.YRel
}

func HandleMouseWheelEvent(e *sdl.MouseWheelEvent) {
	mouseWheel += e.Y
}

// GetMousePos returns the window coordinates of the mouse
func GetMousePos() (x, y int32) {
	return mouseX, mouseY
}

// GetMouseMotion returns how many pixels were moved this frame
func GetMouseMotion() (xDelta, yDelta int32) {
	return mouseXDelta, mouseYDelta
}

// GetMouseWheelY returns the vertical wheel movement this frame. Positive is away from the user.
func GetMouseWheelY() int32 {
	return mouseWheel
}

func KeyClicked(kc sdl.Keycode) bool {
	return keys[kc].pressedFrame == frame
}

func KeyReleased(kc sdl.Keycode) bool {
	return keys[kc].releasedFrame == frame
}

func KeyDown(kc sdl.Keycode) bool {
	return keys[kc].isDown
}

func MouseClicked(mb uint8) bool {
	return mouseBtns[mb].pressedFrame == frame
}

func MouseDown(mb uint8) bool {
	return mouseBtns[mb].isDown
}
