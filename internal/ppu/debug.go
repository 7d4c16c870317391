//go:build !ppudebug

package ppu

// debug enables invariant assertions. Build with -tags ppudebug to
// turn them on.
const debug = false
