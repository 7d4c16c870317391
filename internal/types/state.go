package types

import (
	"fmt"
)

// State is a flat little-endian byte encoding of the emulated
// hardware, used to save and load states between runs. Objects
// write themselves in a fixed order and read back in the same
// order.
type State struct {
	raw          []byte // raw state data
	readPosition int    // current read position
}

// Stater is an interface that allows an object to be saved
// and loaded from a state.
type Stater interface {
	Load(*State) // Load the state of the object
	Save(*State) // Save the state of the object
}

// NewState creates a new, empty state.
func NewState() *State {
	return &State{
		raw: make([]byte, 0, 0x2400),
	}
}

// StateFromBytes creates a new state from the given bytes.
func StateFromBytes(raw []byte) *State {
	return &State{
		raw: raw,
	}
}

// Rewind resets the read position, allowing the state to be
// read from the beginning.
func (s *State) Rewind() {
	s.readPosition = 0
}

func (s *State) Write8(value uint8) {
	s.raw = append(s.raw, value)
}

func (s *State) Write16(value uint16) {
	s.raw = append(s.raw, byte(value), byte(value>>8))
}

func (s *State) Write32(value uint32) {
	s.raw = append(s.raw, byte(value), byte(value>>8), byte(value>>16), byte(value>>24))
}

func (s *State) Write64(value uint64) {
	s.Write32(uint32(value))
	s.Write32(uint32(value >> 32))
}

func (s *State) WriteBool(value bool) {
	if value {
		s.raw = append(s.raw, 1)
	} else {
		s.raw = append(s.raw, 0)
	}
}

func (s *State) WriteData(data []byte) {
	s.raw = append(s.raw, data...)
}

func (s *State) Read8() uint8 {
	s.need(1)
	value := s.raw[s.readPosition]
	s.readPosition++
	return value
}

func (s *State) Read16() uint16 {
	s.need(2)
	value := uint16(s.raw[s.readPosition]) | uint16(s.raw[s.readPosition+1])<<8
	s.readPosition += 2
	return value
}

func (s *State) Read32() uint32 {
	s.need(4)
	value := uint32(s.raw[s.readPosition]) | uint32(s.raw[s.readPosition+1])<<8 | uint32(s.raw[s.readPosition+2])<<16 | uint32(s.raw[s.readPosition+3])<<24
	s.readPosition += 4
	return value
}

func (s *State) Read64() uint64 {
	return uint64(s.Read32()) | uint64(s.Read32())<<32
}

func (s *State) ReadBool() bool {
	return s.Read8() != 0
}

func (s *State) ReadData(p []byte) {
	s.need(len(p))
	copy(p, s.raw[s.readPosition:])
	s.readPosition += len(p)
}

// Bytes returns the encoded state.
func (s *State) Bytes() []byte {
	return s.raw
}

// Len returns the number of encoded bytes.
func (s *State) Len() int {
	return len(s.raw)
}

// need panics when the state is shorter than a read expects, which
// only happens when loading a state produced by a different layout.
func (s *State) need(n int) {
	if s.readPosition+n > len(s.raw) {
		panic(fmt.Sprintf("state: read of %d bytes at offset %d overruns %d byte state", n, s.readPosition, len(s.raw)))
	}
}
