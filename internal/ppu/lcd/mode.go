package lcd

// Mode represents a mode of the LCD, as reported in STAT bits 0-1.
type Mode uint8

const (
	// HBlank (Mode 0) is the horizontal blanking period. It fills the
	// remainder of each visible scanline, so its duration depends on the
	// length of Drawing. The CPU can access both VRAM and OAM.
	HBlank Mode = iota
	// VBlank (Mode 1) is the vertical blanking period, covering LY
	// 144-153. The CPU can access both VRAM and OAM.
	VBlank
	// OAMScan (Mode 2) searches OAM for the sprites on the scanline. It
	// always lasts 80 dots and locks OAM.
	OAMScan
	// Drawing (Mode 3) transfers pixels to the LCD. Its duration varies
	// with scroll, sprites and the window, and it locks both VRAM and OAM.
	Drawing
)

func (m Mode) String() string {
	switch m {
	case HBlank:
		return "HBlank"
	case VBlank:
		return "VBlank"
	case OAMScan:
		return "OAMScan"
	case Drawing:
		return "Drawing"
	}
	return "Unknown"
}
