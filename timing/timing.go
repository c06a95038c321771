// Package timing tracks frame delta time and a smoothed frame rate
package timing

import "time"

// fpsWindow is how long frame counts are accumulated before the FPS is recomputed
const fpsWindow = time.Second

var (
	startTime      time.Time
	frameStartTime time.Time
	dt             float32

	frameCount   int
	windowStart  time.Time
	framesPerSec float32
)

// Init resets all timers. Must be called once before the first frame.
func Init() {
	startTime = time.Now()
	frameStartTime = startTime
	windowStart = startTime
	dt = 0.01
	frameCount = 0
	framesPerSec = 0
}

func FrameStarted() {
	frameStartTime = time.Now()
}

// FrameEnded computes the delta time of the frame that just ended
func FrameEnded() {
	frameEnded(time.Now())
}

func frameEnded(now time.Time) {

	dt = float32(now.Sub(frameStartTime).Seconds())

	frameCount++
	if elapsed := now.Sub(windowStart); elapsed >= fpsWindow {
		framesPerSec = float32(float64(frameCount) / elapsed.Seconds())
		frameCount = 0
		windowStart = now
	}
}

// DT returns the duration of the last frame in seconds
func DT() float32 {
	return dt
}

// FPS is the frame rate averaged over roughly the last second
func FPS() float32 {
	return framesPerSec
}

// ElapsedTime is the time since Init in seconds
func ElapsedTime() float32 {
	return float32(time.Since(startTime).Seconds())
}
