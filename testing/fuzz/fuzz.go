// Package fuzz holds helpers for fuzz style tests.
package fuzz

import "runtime/debug"

// FreeMemory calls debug.FreeOSMemory() every 10 loop iterations.
// Tests that build full beacon states inside a loop allocate the complete
// backing tree of every state, including the fixed size vectors such as
// block roots and randao mixes, and the garbage collector returns that
// memory to the OS slowly. Freeing it manually keeps in-use memory low at
// the cost of longer test times.
func FreeMemory(iteration int) {
	if iteration%10 == 0 {
		debug.FreeOSMemory()
	}
}
