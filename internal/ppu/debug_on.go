//go:build ppudebug

package ppu

const debug = true
