package timing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFrameDeltaAndFPS(t *testing.T) {

	Init()
	base := frameStartTime

	// 10 frames of 100ms each
	for i := 0; i < 10; i++ {
		frameStartTime = base.Add(time.Duration(i) * 100 * time.Millisecond)
		frameEnded(frameStartTime.Add(100 * time.Millisecond))
	}

	assert.InDelta(t, 0.1, DT(), 1e-6)
	assert.InDelta(t, 10, FPS(), 1e-3)
	assert.GreaterOrEqual(t, ElapsedTime(), float32(0))
}
