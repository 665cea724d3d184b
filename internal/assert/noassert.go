// +build !debug

package assert

// True is a no-op outside of debug builds.
func True(cond bool, format string, args ...interface{}) {}

// False is a no-op outside of debug builds.
func False(cond bool, format string, args ...interface{}) {}
