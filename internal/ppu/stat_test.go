package ppu

import (
	"testing"

	"github.com/thelolagemann/gomeboy-ppu/internal/interrupts"
	"github.com/thelolagemann/gomeboy-ppu/internal/ppu/lcd"
)

func newTestInterruptController() (*InterruptController, *Registers, *interrupts.Service) {
	regs := newRegisters()
	irq := interrupts.NewService()
	return NewInterruptController(regs, irq), regs, irq
}

func TestInterruptController_RisingEdge(t *testing.T) {
	c, regs, irq := newTestInterruptController()
	regs.STAT.Write(0x08)

	c.SetMode(lcd.HBlank)
	c.SetMode(lcd.HBlank)
	if n := irq.Requests(interrupts.LCDFlag); n != 1 {
		t.Errorf("expected a single request while the line is held, got %d", n)
	}

	c.SetMode(lcd.Drawing)
	if c.Line() {
		t.Errorf("expected Drawing to lower the line")
	}
	c.SetMode(lcd.HBlank)
	if n := irq.Requests(interrupts.LCDFlag); n != 2 {
		t.Errorf("expected a request on the next rising edge, got %d", n)
	}
}

func TestInterruptController_Coincidence(t *testing.T) {
	c, regs, irq := newTestInterruptController()
	regs.STAT.Write(0x40)
	regs.LY, regs.LYC = 7, 7

	c.CheckCoincidence()
	if !regs.STAT.Coincidence() || irq.Requests(interrupts.LCDFlag) != 1 {
		t.Errorf("expected coincidence and a request")
	}

	// mode changes do not lower a line held by LY=LYC
	c.SetMode(lcd.OAMScan)
	c.SetMode(lcd.Drawing)
	if n := irq.Requests(interrupts.LCDFlag); n != 1 {
		t.Errorf("expected no further requests, got %d", n)
	}

	regs.LYC = 8
	c.CheckCoincidence()
	if regs.STAT.Coincidence() || c.Line() {
		t.Errorf("expected the line to fall with LY!=LYC")
	}
}

func TestInterruptController_LCDOff(t *testing.T) {
	c, regs, irq := newTestInterruptController()
	regs.STAT.Write(0x78)
	regs.LCDC.Write(0x11)
	regs.LY, regs.LYC = 0, 0

	c.CheckCoincidence()
	c.SetMode(lcd.OAMScan)
	c.Update()

	if irq.Requests(interrupts.LCDFlag) != 0 {
		t.Errorf("expected no requests while the LCD is off")
	}
	if regs.STAT.Coincidence() {
		t.Errorf("expected coincidence to be left untouched while the LCD is off")
	}
	if regs.STAT.Mode() != lcd.HBlank {
		t.Errorf("expected mode to be left untouched while the LCD is off, got %s", regs.STAT.Mode())
	}
}

func TestInterruptController_VBlank(t *testing.T) {
	c, _, irq := newTestInterruptController()
	c.RequestVBlank()
	if !irq.Pending(interrupts.VBlankFlag) {
		t.Errorf("expected VBlank to be pending")
	}
}
