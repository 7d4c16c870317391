package types

// HardwareAddress represents the address of a hardware
// register. The registers driven by the display are mapped
// to 0xFF40 - 0xFF4B, the interrupt registers to 0xFF0F and
// 0xFFFF.
type HardwareAddress = uint16

const (
	// IF is the address of the IF hardware register. The IF
	// hardware register is used to request interrupts.
	//
	//  Bit 0: V-Blank Interrupt Request (INT 40h)  (1=Request)
	//  Bit 1: LCD STAT Interrupt Request (INT 48h) (1=Request)
	//  Bit 2: Timer Interrupt Request (INT 50h)    (1=Request)
	//  Bit 3: Serial Interrupt Request (INT 58h)   (1=Request)
	//  Bit 4: Joypad Interrupt Request (INT 60h)   (1=Request)
	IF HardwareAddress = 0xFF0F
	// LCDC is the address of the LCDC hardware register. The LCDC
	// hardware register is used to control the LCD.
	//
	//  Bit 7: LCD Enable                     (0=Off, 1=On)
	//  Bit 6: Window Tile Map Display Select (0=9800-9BFF, 1=9C00-9FFF)
	//  Bit 5: Window Display Enable          (0=Off, 1=On)
	//  Bit 4: BG & Window Tile Data Select   (0=8800-97FF, 1=8000-8FFF)
	//  Bit 3: BG Tile Map Display Select     (0=9800-9BFF, 1=9C00-9FFF)
	//  Bit 2: OBJ (Sprite) Size              (0=8x8, 1=8x16)
	//  Bit 1: OBJ (Sprite) Display Enable    (0=Off, 1=On)
	//  Bit 0: BG/Window Display              (0=Off, 1=On)
	LCDC HardwareAddress = 0xFF40
	// STAT is the address of the STAT hardware register. It reports
	// the mode the LCD is in, and selects the sources of the LCD
	// STAT interrupt.
	//
	//  Bit 6: LYC=LY Coincidence Interrupt (1=Enable) (Read/Write)
	//  Bit 5: Mode 2 OAM Interrupt         (1=Enable) (Read/Write)
	//  Bit 4: Mode 1 V-Blank Interrupt     (1=Enable) (Read/Write)
	//  Bit 3: Mode 0 H-Blank Interrupt     (1=Enable) (Read/Write)
	//  Bit 2: Coincidence Flag  (0:LYC<>LY, 1:LYC=LY) (Read Only)
	//  Bit 1-0: Mode Flag                             (Read Only)
	STAT HardwareAddress = 0xFF41
	// SCY is the address of the SCY hardware register, the vertical
	// scroll position of the background.
	SCY HardwareAddress = 0xFF42
	// SCX is the address of the SCX hardware register, the horizontal
	// scroll position of the background.
	SCX HardwareAddress = 0xFF43
	// LY is the address of the LY hardware register. LY is the
	// scanline currently being processed, in the range 0-153.
	// It is read only.
	LY HardwareAddress = 0xFF44
	// LYC is the address of the LYC hardware register. When LY
	// equals LYC the coincidence flag in STAT is set.
	LYC HardwareAddress = 0xFF45
	// DMA is the address of the DMA hardware register. It is not
	// driven by the display but sits inside its register block.
	DMA HardwareAddress = 0xFF46
	// BGP is the address of the BGP hardware register, the shades
	// used for the background and window.
	//
	//  Bit 7-6 - Shade for Color Number 3
	//  Bit 5-4 - Shade for Color Number 2
	//  Bit 3-2 - Shade for Color Number 1
	//  Bit 1-0 - Shade for Color Number 0
	BGP HardwareAddress = 0xFF47
	// OBP0 is the address of the OBP0 hardware register, sprite
	// palette 0. Bits 1-0 are ignored as colour 0 is transparent.
	OBP0 HardwareAddress = 0xFF48
	// OBP1 is the address of the OBP1 hardware register, sprite
	// palette 1. Bits 1-0 are ignored as colour 0 is transparent.
	OBP1 HardwareAddress = 0xFF49
	// WY is the address of the WY hardware register, the Y position
	// of the window.
	WY HardwareAddress = 0xFF4A
	// WX is the address of the WX hardware register, the X position
	// of the window plus 7.
	WX HardwareAddress = 0xFF4B
	// IE is the address of the IE hardware register, used to enable
	// interrupts.
	IE HardwareAddress = 0xFFFF
)

const (
	// VRAMStart is the first address of video RAM.
	VRAMStart = 0x8000
	// VRAMEnd is the last address of video RAM.
	VRAMEnd = 0x9FFF
	// VRAMSize is the size of video RAM in bytes.
	VRAMSize = 0x2000
	// OAMStart is the first address of object attribute memory.
	OAMStart = 0xFE00
	// OAMEnd is the last address of object attribute memory.
	OAMEnd = 0xFE9F
	// OAMSize is the size of object attribute memory in bytes.
	OAMSize = 0xA0
)
