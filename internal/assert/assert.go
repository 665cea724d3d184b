// +build debug

// Package assert provides debug-only invariant checks.
//
// The behaviour is active only when the repo is built with the 'debug'
// build tag; outside of that tag True/False compile to no-ops (see
// noassert.go) so release builds pay nothing for them.
package assert

import (
	"fmt"
	"log"
)

// True panics with the formatted message if cond is false.
func True(cond bool, format string, args ...interface{}) {
	if !cond {
		log.Println("--- assertion failed ---")
		if len(args) == 0 {
			panic(format)
		}
		panic(fmt.Sprintf(format, args...))
	}
}

// False panics with the formatted message if cond is true.
func False(cond bool, format string, args ...interface{}) {
	True(!cond, format, args...)
}
