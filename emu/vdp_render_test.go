package emu

import (
	"image/color"
	"testing"
)

// paintSink counts the Paint calls it receives and remembers the coordinates
// of the last one.
type paintSink struct {
	calls int
	last  struct{ x, y int }
	err   error
}

func (s *paintSink) SetResolution(w, h int) error { return nil }
func (s *paintSink) Paint(x, y int, c RGB888) error {
	s.calls++
	s.last.x, s.last.y = x, y
	return s.err
}
func (s *paintSink) Render() error { return nil }

func TestVDP_CRAMToColorSMS(t *testing.T) {
	v := NewVDP()
	v.cramLatch[0] = 0x3F // --BBGGRR all bits set -> full white

	c := v.cramToColor(0)
	if c.R != 255 || c.G != 255 || c.B != 255 {
		t.Errorf("expected full-white, got R=%d G=%d B=%d", c.R, c.G, c.B)
	}
}

func TestVDP_CRAMToColorGameGear(t *testing.T) {
	v := NewVDPKind(VDPGameGear)
	v.ggCRAM[0] = 0x0F0 // R=0, G=15, B=0

	c := v.cramToColor(0)
	if c.R != 0 || c.G != 255 || c.B != 0 {
		t.Errorf("expected pure green, got R=%d G=%d B=%d", c.R, c.G, c.B)
	}
}

func TestVDP_GGViewportCentersOn160x144(t *testing.T) {
	v := NewVDPKind(VDPGameGear)
	xOff, yOff := v.ggViewport()
	if xOff != (ScreenWidth-160)/2 {
		t.Errorf("xOff: expected %d, got %d", (ScreenWidth-160)/2, xOff)
	}
	if yOff != (192-144)/2 {
		t.Errorf("yOff: expected %d, got %d", (192-144)/2, yOff)
	}
}

func TestVDP_RenderLineBlankScreenUsesBackdrop(t *testing.T) {
	v := NewVDP()
	// Leave register[1] bit6 (display enable) clear: renderLine should fill
	// the whole line with the backdrop color instead of rendering tiles.
	v.reg7Latch = 0x01
	v.cramLatch[16+1] = 0x3F

	var seen [ScreenWidth]color.RGBA
	v.renderLine(func(x, line int, c color.RGBA) {
		seen[x] = c
	})

	backdrop := v.cramToColor(17)
	for x := 0; x < ScreenWidth; x++ {
		if seen[x] != backdrop {
			t.Fatalf("pixel %d: expected backdrop color, got %+v", x, seen[x])
		}
	}
}

func TestVDP_RenderLineBeyondActiveHeightSkips(t *testing.T) {
	v := NewVDP()
	v.vCounter = 250 // past the 192-line active area
	v.register[1] |= 0x40

	called := false
	v.renderLine(func(x, line int, c color.RGBA) { called = true })
	if called {
		t.Error("renderLine should not plot anything past ActiveHeight")
	}
}

func TestVDP_RenderScanlineWritesFramebuffer(t *testing.T) {
	v := NewVDP()
	v.register[1] |= 0x40 // enable display
	v.vCounter = 0

	v.RenderScanline()

	fb := v.Framebuffer()
	bounds := fb.Bounds()
	if bounds.Dx() != ScreenWidth {
		t.Errorf("framebuffer width: expected %d, got %d", ScreenWidth, bounds.Dx())
	}
}

func TestVDP_RenderScanlineToCropsGameGearViewport(t *testing.T) {
	v := NewVDPKind(VDPGameGear)
	v.register[1] |= 0x40
	v.vCounter = 0 // outside the 144-line GG viewport (starts at yOff=24)

	sink := &paintSink{}
	if err := v.RenderScanlineTo(sink); err != nil {
		t.Fatalf("RenderScanlineTo returned error: %v", err)
	}
	if sink.calls != 0 {
		t.Errorf("line 0 is above the GG viewport, expected no Paint calls, got %d", sink.calls)
	}

	xOff, yOff := v.ggViewport()
	v.vCounter = uint16(yOff)
	sink2 := &paintSink{}
	if err := v.RenderScanlineTo(sink2); err != nil {
		t.Fatalf("RenderScanlineTo returned error: %v", err)
	}
	if sink2.calls != 160 {
		t.Errorf("expected 160 Paint calls within the GG viewport row, got %d", sink2.calls)
	}
	_ = xOff
}

func TestVDP_RenderScanlineToPropagatesSinkError(t *testing.T) {
	v := NewVDP()
	v.register[1] |= 0x40
	v.vCounter = 0

	wantErr := &GraphicsError{}
	sink := &paintSink{err: wantErr}
	if err := v.RenderScanlineTo(sink); err != wantErr {
		t.Errorf("expected RenderScanlineTo to propagate the sink's error, got %v", err)
	}
}

func TestVDP_ComputeBackgroundReadsNameTable(t *testing.T) {
	v := NewVDP()
	v.register[1] |= 0x40
	// Name table base for 192-line mode with reg2=0x0E lands at 0x3800.
	v.reg2Latch = 0x0E
	nameTableBase := uint16(0x0E&0x0E) << 10

	// Tile 0 at row 0, col 0: pattern index 1, no flips, palette 0, no priority.
	v.vram[nameTableBase] = 0x01
	v.vram[nameTableBase+1] = 0x00

	// Pattern 1, line 0: all 4 bitplanes set -> color index 0x0F for every pixel.
	patternAddr := uint16(1) * 32
	v.vram[patternAddr+0] = 0xFF
	v.vram[patternAddr+1] = 0xFF
	v.vram[patternAddr+2] = 0xFF
	v.vram[patternAddr+3] = 0xFF

	idx := v.computeBackground(0)
	if idx[0] != 0x0F {
		t.Errorf("expected palette index 0x0F at x=0, got 0x%02X", idx[0])
	}
}

func TestVDP_ComputeSpritesOverlayOntoBackground(t *testing.T) {
	v := NewVDP()
	v.register[1] |= 0x40
	v.register[5] = 0x00 // SAT base at VRAM 0
	v.register[6] = 0x04 // sprite patterns at VRAM 0x2000, clear of the SAT

	satBase := uint16(0)
	v.vram[satBase+0] = 10           // sprite 0 Y=10 -> visible at line 11
	v.vram[satBase+0x80+0] = 5       // sprite 0 X=5
	v.vram[satBase+0x80+1] = 0       // sprite 0 pattern 0

	// Pattern 0 (at 0x2000), line 0: bitplane 0 set -> color index 1 for every pixel.
	v.vram[0x2000] = 0xFF

	var pixelIndex [256]uint8
	v.computeSprites(11, &pixelIndex)

	if pixelIndex[5] != 1+16 {
		t.Errorf("expected sprite pixel at x=5 with cramIndex 17, got %d", pixelIndex[5])
	}
}

func TestVDP_ComputeSpritesSetsOverflowFlag(t *testing.T) {
	v := NewVDP()
	v.register[1] |= 0x40
	v.register[5] = 0x00

	for i := 0; i < 9; i++ {
		v.vram[i] = 20 // all visible on the same line
	}

	var pixelIndex [256]uint8
	v.computeSprites(21, &pixelIndex)

	if v.status&0x40 == 0 {
		t.Error("expected sprite-overflow status bit to be set with 9 sprites on one line")
	}
}

func TestVDP_ComputeSpritesSetsCollisionFlag(t *testing.T) {
	v := NewVDP()
	v.register[1] |= 0x40
	v.register[5] = 0x00
	v.register[6] = 0x04 // sprite patterns at VRAM 0x2000, clear of the SAT

	satBase := uint16(0)
	v.vram[satBase+0] = 10
	v.vram[satBase+1] = 10
	v.vram[satBase+0x80+0] = 5
	v.vram[satBase+0x80+1] = 0
	v.vram[satBase+0x80+2] = 5
	v.vram[satBase+0x80+3] = 0
	v.vram[0x2000] = 0xFF

	var pixelIndex [256]uint8
	v.computeSprites(11, &pixelIndex)

	if v.status&0x20 == 0 {
		t.Error("expected sprite-collision status bit to be set when two sprites share a pixel")
	}
}
