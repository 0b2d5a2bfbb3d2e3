package emu

import (
	"image"
	"image/color"
)

// cramToColor converts a CRAM entry to RGBA. SMS/SMS2 read the latched
// CRAM copy, a packed 6-bit --BBGGRR byte; Game Gear reads its live 16-bit
// ----BBBBGGGGRRRR word with 4 bits per channel.
func (v *VDP) cramToColor(index uint8) color.RGBA {
	if v.kind == VDPGameGear {
		c := v.ggCRAM[index&0x1F]
		r := uint8(c & 0x0F)
		g := uint8((c >> 4) & 0x0F)
		b := uint8((c >> 8) & 0x0F)
		return color.RGBA{R: r * 17, G: g * 17, B: b * 17, A: 255}
	}
	c := v.cramLatch[index&0x1F]
	r := (c >> 0) & 0x03
	g := (c >> 2) & 0x03
	b := (c >> 4) & 0x03
	return color.RGBA{R: paletteScale[r], G: paletteScale[g], B: paletteScale[b], A: 255}
}

func (v *VDP) toRGB888(c color.RGBA) RGB888 {
	return RGB888{R: c.R, G: c.G, B: c.B}
}

// ggViewport returns the pixel offsets of Game Gear's cropped 160x144
// window within the full active display: Game Gear always displays only
// the central 144 lines x 160 columns.
func (v *VDP) ggViewport() (xOff, yOff int) {
	activeHeight := v.ActiveHeight()
	return (ScreenWidth - 160) / 2, (activeHeight - 144) / 2
}

// RenderScanline renders the current scanline into the VDP's own
// framebuffer, for hosts that read Framebuffer() directly rather than a
// GraphicsSink.
func (v *VDP) RenderScanline() {
	v.renderLine(func(x, line int, c color.RGBA) {
		v.framebuffer.SetRGBA(x, line, c)
	})
}

// RenderScanlineTo additionally pushes each visible pixel through a
// GraphicsSink, the only channel through which rendered pixels leave the
// emulation core. Game Gear output is cropped to its 160x144 viewport and
// re-based to sink-local coordinates.
func (v *VDP) RenderScanlineTo(sink GraphicsSink) error {
	var sinkErr error
	xOff, yOff := 0, 0
	if v.kind == VDPGameGear {
		xOff, yOff = v.ggViewport()
	}
	line := int(v.vCounter)

	v.renderLine(func(x, ln int, c color.RGBA) {
		v.framebuffer.SetRGBA(x, ln, c)
		if sinkErr != nil {
			return
		}
		if v.kind == VDPGameGear {
			if x < xOff || x >= xOff+160 || line < yOff || line >= yOff+144 {
				return
			}
			sinkErr = sink.Paint(x-xOff, line-yOff, v.toRGB888(c))
			return
		}
		sinkErr = sink.Paint(x, ln, v.toRGB888(c))
	})
	return sinkErr
}

// renderLine computes one scanline's pixels (background, sprites, left-
// column blank) and invokes plot for each. Factoring this out keeps
// RenderScanline (framebuffer-only) and RenderScanlineTo (framebuffer +
// sink) from duplicating the pixel pipeline.
func (v *VDP) renderLine(plot func(x, line int, c color.RGBA)) {
	line := v.vCounter
	activeHeight := v.ActiveHeight()

	if int(line) >= activeHeight {
		return
	}

	for i := range v.bgPriority {
		v.bgPriority[i] = false
	}

	if v.register[1]&0x40 == 0 {
		bg := v.cramToColor(16 + (v.reg7Latch & 0x0F))
		for x := 0; x < ScreenWidth; x++ {
			plot(x, int(line), bg)
		}
		return
	}

	pixelIndex := v.computeBackground(line)
	v.computeSprites(line, &pixelIndex)

	leftBlank := v.register[0]&0x20 != 0
	backdrop := 16 + (v.reg7Latch & 0x0F)

	for x := 0; x < ScreenWidth; x++ {
		idx := pixelIndex[x]
		if leftBlank && x < 8 {
			idx = backdrop
		}
		plot(x, int(line), v.cramToColor(idx))
	}
}

// computeBackground renders the tile layer for one line into a 256-entry
// palette-index buffer; tile priority is recorded separately in
// v.bgPriority for computeSprites.
func (v *VDP) computeBackground(line uint16) [256]uint8 {
	var pixelIndex [256]uint8

	var nameTableBase uint16
	activeHeight := v.ActiveHeight()
	reg2 := v.reg2Latch
	if activeHeight == 192 {
		nameTableBase = uint16(reg2&0x0E) << 10
	} else {
		nameTableBase = (uint16(reg2&0x0C) << 10) | 0x0700
	}

	hScroll := v.hScrollLatch
	vScroll := v.vScrollLatch
	topRowLock := v.register[0]&0x40 != 0
	rightColLock := v.register[0]&0x80 != 0

	for x := 0; x < ScreenWidth; x++ {
		effectiveHScroll := hScroll
		effectiveVScroll := vScroll

		if topRowLock && line < 16 {
			effectiveHScroll = 0
		}
		if rightColLock && x >= 192 {
			effectiveVScroll = 0
		}

		var effectiveY uint16
		if activeHeight == 192 {
			effectiveY = uint16(line) + uint16(effectiveVScroll)
			if effectiveY >= 224 {
				effectiveY -= 224
			}
		} else {
			effectiveY = (uint16(line) + uint16(effectiveVScroll)) & 0xFF
		}

		tileRow := effectiveY / 8
		tileLine := effectiveY % 8

		effectiveX := (uint16(x) - uint16(effectiveHScroll)) & 0xFF
		tileCol := effectiveX / 8
		tilePixel := effectiveX % 8

		nameTableAddr := nameTableBase + (tileRow*32+tileCol)*2
		entryLo := v.vram[nameTableAddr&0x3FFF]
		entryHi := v.vram[(nameTableAddr+1)&0x3FFF]

		patternIndex := uint16(entryLo) | (uint16(entryHi&0x01) << 8)
		hFlip := (entryHi & 0x02) != 0
		vFlip := (entryHi & 0x04) != 0
		paletteSelect := (entryHi & 0x08) >> 3
		priority := (entryHi & 0x10) != 0

		patternLine := tileLine
		if vFlip {
			patternLine = 7 - tileLine
		}
		pixelPos := tilePixel
		if hFlip {
			pixelPos = 7 - tilePixel
		}

		patternAddr := patternIndex*32 + patternLine*4
		bp0 := v.vram[patternAddr&0x3FFF]
		bp1 := v.vram[(patternAddr+1)&0x3FFF]
		bp2 := v.vram[(patternAddr+2)&0x3FFF]
		bp3 := v.vram[(patternAddr+3)&0x3FFF]

		shift := 7 - pixelPos
		colorIndex := ((bp0 >> shift) & 1) |
			(((bp1 >> shift) & 1) << 1) |
			(((bp2 >> shift) & 1) << 2) |
			(((bp3 >> shift) & 1) << 3)

		cramIndex := uint8(paletteSelect)*16 + colorIndex
		pixelIndex[x] = cramIndex

		if priority && colorIndex != 0 {
			v.bgPriority[x] = true
		}
	}

	return pixelIndex
}

// computeSprites overlays up to 8 sprites per line onto pixelIndex,
// respecting background priority and recording the sprite-collision and
// sprite-overflow status flags.
func (v *VDP) computeSprites(line uint16, pixelIndex *[256]uint8) {
	satBase := uint16(v.register[5]&0x7E) << 7

	spriteHeight := 8
	if v.register[1]&0x02 != 0 {
		spriteHeight = 16
	}

	zoom := 1
	zoomShift := 0
	if v.register[1]&0x01 != 0 {
		zoom = 2
		zoomShift = 1
	}
	effectiveHeight := spriteHeight * zoom

	patternBase := uint16(v.register[6]&0x04) << 11

	spriteShift := 0
	if v.register[0]&0x08 != 0 {
		spriteShift = 8
	}

	activeHeight := v.ActiveHeight()

	type spriteInfo struct {
		x       int
		pattern uint8
		line    int
	}
	var sprites [8]spriteInfo
	spriteCount := 0

	for i := 0; i < 64; i++ {
		y := int(v.vram[(satBase+uint16(i))&0x3FFF])

		if activeHeight == 192 && y == 208 {
			break
		}

		spriteY := y + 1
		if int(line) >= spriteY && int(line) < spriteY+effectiveHeight {
			if spriteCount >= 8 {
				v.status |= 0x40
				break
			}

			satAddr2 := satBase + 0x80 + uint16(i)*2
			spriteX := int(v.vram[satAddr2&0x3FFF]) - spriteShift
			pattern := v.vram[(satAddr2+1)&0x3FFF]
			if spriteHeight == 16 {
				pattern &= 0xFE
			}

			spriteLine := (int(line) - spriteY) >> zoomShift
			sprites[spriteCount] = spriteInfo{x: spriteX, pattern: pattern, line: spriteLine}
			spriteCount++
		}
	}

	for i := range v.spritePixels {
		v.spritePixels[i] = false
	}

	for i := spriteCount - 1; i >= 0; i-- {
		spr := sprites[i]

		pattern := uint16(spr.pattern)
		spriteLine := spr.line
		if spriteHeight == 16 && spriteLine >= 8 {
			pattern++
			spriteLine -= 8
		}

		patternAddr := patternBase + pattern*32 + uint16(spriteLine)*4
		bp0 := v.vram[patternAddr&0x3FFF]
		bp1 := v.vram[(patternAddr+1)&0x3FFF]
		bp2 := v.vram[(patternAddr+2)&0x3FFF]
		bp3 := v.vram[(patternAddr+3)&0x3FFF]

		for px := 0; px < 8*zoom; px++ {
			screenX := spr.x + px
			if screenX < 0 || screenX >= ScreenWidth {
				continue
			}

			patternPx := px >> zoomShift
			shift := uint(7 - patternPx)
			colorIndex := ((bp0 >> shift) & 1) |
				(((bp1 >> shift) & 1) << 1) |
				(((bp2 >> shift) & 1) << 2) |
				(((bp3 >> shift) & 1) << 3)

			if colorIndex == 0 {
				continue
			}

			if v.spritePixels[screenX] {
				v.status |= 0x20
			}
			v.spritePixels[screenX] = true

			if v.bgPriority[screenX] {
				continue
			}

			pixelIndex[screenX] = colorIndex + 16
		}
	}
}

// Framebuffer returns the VDP's own framebuffer (full active display,
// uncropped even for Game Gear).
func (v *VDP) Framebuffer() *image.RGBA { return v.framebuffer }
