package mmu

import (
	"testing"

	"github.com/go-test/deep"
	"github.com/thelolagemann/gomeboy-ppu/internal/types"
)

type guard struct {
	vram, oam bool
}

func (g *guard) VRAMAccessible() bool { return g.vram }
func (g *guard) OAMAccessible() bool  { return g.oam }

func TestBus_Locking(t *testing.T) {
	b := NewBus()
	g := &guard{}
	b.AttachGuard(g)

	b.Set(0x8000, 0x12)
	b.Set(0xFE00, 0x34)

	if v := b.Read(0x8000); v != 0xFF {
		t.Errorf("expected locked VRAM to read 0xFF, got 0x%02X", v)
	}
	if v := b.Read(0xFE00); v != 0xFF {
		t.Errorf("expected locked OAM to read 0xFF, got 0x%02X", v)
	}
	b.Write(0x8000, 0x56)
	if v := b.Get(0x8000); v != 0x12 {
		t.Errorf("expected locked VRAM write to be dropped, got 0x%02X", v)
	}

	g.vram = true
	b.Write(0x8000, 0x56)
	if v := b.Read(0x8000); v != 0x56 {
		t.Errorf("expected 0x56, got 0x%02X", v)
	}
	if v := b.Get(0xFE00); v != 0x34 {
		t.Errorf("expected Get to bypass the lock, got 0x%02X", v)
	}
}

func TestBus_ReserveAddress(t *testing.T) {
	b := NewBus()
	var written byte
	b.ReserveAddress(types.STAT, func(v byte) byte {
		written = v
		return v | 0x80
	})

	b.Write(types.STAT, 0x08)
	if written != 0x08 {
		t.Errorf("expected handler to see 0x08, got 0x%02X", written)
	}
	if v := b.Read(types.STAT); v != 0x88 {
		t.Errorf("expected stored value 0x88, got 0x%02X", v)
	}

	b.Set(types.STAT, 0x01)
	if written != 0x08 {
		t.Errorf("expected Set to bypass the handler")
	}

	defer func() {
		if recover() == nil {
			t.Errorf("expected a second reservation to panic")
		}
	}()
	b.ReserveAddress(types.STAT, func(v byte) byte { return v })
}

func TestBus_ReserveOutsideIO(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected reserving 0x8000 to panic")
		}
	}()
	NewBus().ReserveAddress(0x8000, func(v byte) byte { return v })
}

func TestBus_LazyReader(t *testing.T) {
	b := NewBus()
	ly := byte(0)
	b.ReserveLazyReader(types.LY, func() byte { return ly })

	ly = 42
	if v := b.Read(types.LY); v != 42 {
		t.Errorf("expected 42, got %d", v)
	}
}

func TestBus_DMA(t *testing.T) {
	b := NewBus()
	for i := uint16(0); i < 0xA0; i++ {
		b.Set(0xC000+i, byte(i))
	}

	b.Write(types.DMA, 0xC0)

	for i := uint16(0); i < 0xA0; i++ {
		if v := b.Get(0xFE00 + i); v != byte(i) {
			t.Fatalf("expected 0x%02X at 0x%04X, got 0x%02X", i, 0xFE00+i, v)
		}
	}
	if v := b.Read(types.DMA); v != 0xC0 {
		t.Errorf("expected DMA to read back 0xC0, got 0x%02X", v)
	}
}

func TestBus_Snapshot(t *testing.T) {
	raw := make([]byte, SnapshotSize)
	for i := range raw {
		raw[i] = byte(i * 7)
	}

	b := NewBus()
	var writes []uint16
	for addr := types.LCDC; addr <= types.WX; addr++ {
		if addr == types.DMA {
			continue
		}
		a := addr
		b.ReserveAddress(a, func(v byte) byte {
			writes = append(writes, a)
			return v
		})
	}

	if err := b.LoadSnapshot(raw); err != nil {
		t.Fatal(err)
	}
	if v := b.Get(0x8123); v != raw[0x123] {
		t.Errorf("expected VRAM byte 0x%02X, got 0x%02X", raw[0x123], v)
	}
	if v := b.Get(0xFE05); v != raw[0x2005] {
		t.Errorf("expected OAM byte 0x%02X, got 0x%02X", raw[0x2005], v)
	}

	expected := []uint16{0xFF40, 0xFF41, 0xFF42, 0xFF43, 0xFF45, 0xFF47, 0xFF48, 0xFF49, 0xFF4A, 0xFF4B}
	if diff := deep.Equal(writes, expected); diff != nil {
		t.Error(diff)
	}

	if err := b.LoadSnapshot(raw[:10]); err == nil {
		t.Errorf("expected an error for a short snapshot")
	}

	out := b.Snapshot()
	if diff := deep.Equal(out[:types.VRAMSize+types.OAMSize], raw[:types.VRAMSize+types.OAMSize]); diff != nil {
		t.Error(diff)
	}
}

func TestBus_SaveLoad(t *testing.T) {
	a := NewBus()
	a.Set(0x9FFF, 0xAB)
	a.Set(0xFE9F, 0xCD)

	s := types.NewState()
	a.Save(s)

	b := NewBus()
	b.Load(types.StateFromBytes(s.Bytes()))
	if b.Get(0x9FFF) != 0xAB || b.Get(0xFE9F) != 0xCD {
		t.Errorf("expected VRAM and OAM to be restored")
	}
}
