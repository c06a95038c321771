//go:build nscene_release

package assert

const isDebug = false
