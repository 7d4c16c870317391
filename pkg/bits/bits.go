package bits

// Val returns the value of the bit at the given index.
func Val(b uint8, i uint8) uint8 {
	return (b >> i) & 1
}

// Test tests the bit at the given index.
func Test(b, i uint8) bool {
	return (b>>i)&1 != 0
}

// Pixel returns the 2-bit colour index of pixel x (0 is leftmost)
// in a tile row made of the low and high bit planes.
func Pixel(low, high uint8, x uint8) uint8 {
	return Val(low, 7-x) | Val(high, 7-x)<<1
}

// Row decodes a tile row into its 8 colour indices, left to right.
func Row(low, high uint8) [8]uint8 {
	var row [8]uint8
	for x := uint8(0); x < 8; x++ {
		row[x] = Pixel(low, high, x)
	}
	return row
}
