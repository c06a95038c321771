package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/veandco/go-sdl2/sdl"
)

func keyEvent(kc sdl.Keycode, state uint8, repeat uint8) *sdl.KeyboardEvent {
	return &sdl.KeyboardEvent{
		State:  state,
		Repeat: repeat,
		Keysym: sdl.Keysym{Sym: kc},
	}
}

func TestKeyLifecycle(t *testing.T) {

	ClearState()
	EventLoopStart()

	HandleKeyboardEvent(keyEvent(sdl.K_w, sdl.PRESSED, 0))
	assert.True(t, KeyClicked(sdl.K_w))
	assert.True(t, KeyDown(sdl.K_w))
	assert.False(t, KeyDown(sdl.K_s))

	// Held into the next frame
	EventLoopStart()
	HandleKeyboardEvent(keyEvent(sdl.K_w, sdl.PRESSED, 1))
	assert.False(t, KeyClicked(sdl.K_w))
	assert.True(t, KeyDown(sdl.K_w))

	EventLoopStart()
	HandleKeyboardEvent(keyEvent(sdl.K_w, sdl.RELEASED, 0))
	assert.True(t, KeyReleased(sdl.K_w))
	assert.False(t, KeyDown(sdl.K_w))
}

func TestMouseMotionAccumulatesPerFrame(t *testing.T) {

	ClearState()
	EventLoopStart()

	HandleMouseMotionEvent(&sdl.MouseMotionEvent{X: 10, Y: 10, XRel: 3, YRel: -1})
	HandleMouseMotionEvent(&sdl.MouseMotionEvent{X: 12, Y: 9, XRel: 2, YRel: -1})

	x, y := GetMouseMotion()
	assert.Equal(t, int32(5), x)
	assert.Equal(t, int32(-2), y)

	px, py := GetMousePos()
	assert.Equal(t, int32(12), px)
	assert.Equal(t, int32(9), py)

	EventLoopStart()
	x, y = GetMouseMotion()
	assert.Zero(t, x)
	assert.Zero(t, y)
}

func TestMouseButtonsAndQuit(t *testing.T) {

	ClearState()
	EventLoopStart()

	HandleMouseBtnEvent(&sdl.MouseButtonEvent{Button: sdl.BUTTON_RIGHT, State: sdl.PRESSED})
	HandleMouseWheelEvent(&sdl.MouseWheelEvent{Y: 1})
	HandleQuitEvent(&sdl.QuitEvent{})

	assert.True(t, MouseClicked(sdl.BUTTON_RIGHT))
	assert.True(t, MouseDown(sdl.BUTTON_RIGHT))
	assert.False(t, MouseDown(sdl.BUTTON_LEFT))
	assert.Equal(t, int32(1), GetMouseWheelY())
	assert.True(t, IsQuitClicked())

	EventLoopStart()
	assert.False(t, MouseClicked(sdl.BUTTON_RIGHT))
	assert.True(t, MouseDown(sdl.BUTTON_RIGHT))
	assert.False(t, IsQuitClicked())
}

func TestClearStateReleasesHeldKeys(t *testing.T) {

	ClearState()
	EventLoopStart()

	HandleKeyboardEvent(keyEvent(sdl.K_LSHIFT, sdl.PRESSED, 0))
	assert.True(t, KeyDown(sdl.K_LSHIFT))

	// The release arrives while unfocused and is never seen
	ClearState()
	EventLoopStart()
	assert.False(t, KeyDown(sdl.K_LSHIFT))
	assert.False(t, KeyReleased(sdl.K_LSHIFT))

	// Pressing again counts as a fresh click
	HandleKeyboardEvent(keyEvent(sdl.K_LSHIFT, sdl.PRESSED, 0))
	assert.True(t, KeyClicked(sdl.K_LSHIFT))
}
