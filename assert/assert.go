package assert

import (
	"github.com/bloeys/nscene/logging"
)

// T panics with the formatted message if check is false.
// It is a no-op when built with the 'nscene_release' tag.
func T(check bool, msg string, args ...any) {

	if isDebug && !check {
		logging.ErrLog.Panicf("Assert failed: "+msg, args...)
	}
}
