//go:build !debug

package polyarc

// logDebugf is a no-op unless built with the "debug" tag.
func logDebugf(string, ...interface{}) {}
