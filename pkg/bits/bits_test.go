package bits

import "testing"

func TestValTest(t *testing.T) {
	if !Test(0x08, 3) || Test(0x08, 2) {
		t.Errorf("expected only bit 3 set in 0x08")
	}
	if Val(0x80, 7) != 1 {
		t.Errorf("expected bit 7 of 0x80 to be 1")
	}
}

func TestRow(t *testing.T) {
	// 0x3C/0x7E is the second row of the classic Nintendo logo tile
	row := Row(0x3C, 0x7E)
	expected := [8]uint8{0, 2, 3, 3, 3, 3, 2, 0}
	if row != expected {
		t.Errorf("expected %v, got %v", expected, row)
	}
	if Pixel(0x80, 0x80, 0) != 3 {
		t.Errorf("expected pixel 0 of 0x80/0x80 to be 3")
	}
}
