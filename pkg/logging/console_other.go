//go:build !windows

package logging

// enableColors is a no-op on platforms whose terminals speak ANSI natively.
func enableColors() {}
