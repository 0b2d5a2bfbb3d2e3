//go:build !libretro && !ios

// Package ebiten provides an Ebiten-specific wrapper for the emulator.
package ebiten

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/user-none/smscore/emu"
)

// Emulator wraps emu.EmulatorBase with Ebiten-specific functionality. It
// installs a framebufferSink as the emulator's GraphicsSink, so every pixel
// reaching the screen went through emu's Paint/Render contract rather than
// a pulled-framebuffer shortcut.
type Emulator struct {
	emu.EmulatorBase

	sink      *framebufferSink
	offscreen *ebiten.Image           // Offscreen buffer for native resolution rendering
	drawOpts  ebiten.DrawImageOptions // Pre-allocated draw options to avoid per-frame allocation
}

// NewEmulator creates a new emulator instance with Ebiten rendering.
// Audio is managed separately via AudioPlayer.
func NewEmulator(rom []byte, region emu.Region) *Emulator {
	base := emu.InitEmulatorBase(rom, region)
	sink := newFramebufferSink()
	base.SetGraphicsSink(sink)

	return &Emulator{
		EmulatorBase: base,
		sink:         sink,
	}
}

// Close cleans up the emulator resources
func (e *Emulator) Close() {
	// Emulator no longer manages audio - AudioPlayer handles it
}

// DrawToScreen renders the sink's accumulated frame to the given screen.
// Handles scaling, centering, and optional SMS left-border cropping. Game
// Gear output arrives already cropped to its 160x144 viewport by the sink.
func (e *Emulator) DrawToScreen(screen *ebiten.Image, cropBorder bool) {
	img := e.frameImage()
	if img == nil {
		return
	}

	srcImage := img
	nativeW := float64(img.Bounds().Dx())
	if cropBorder && e.LeftColumnBlankEnabled() {
		b := img.Bounds()
		srcImage = img.SubImage(image.Rect(b.Min.X+8, b.Min.Y, b.Max.X, b.Max.Y)).(*ebiten.Image)
		nativeW -= 8
	}

	screenW, screenH := screen.Bounds().Dx(), screen.Bounds().Dy()
	nativeH := float64(img.Bounds().Dy())

	scaleX := float64(screenW) / nativeW
	scaleY := float64(screenH) / nativeH
	scale := scaleX
	if scaleY < scaleX {
		scale = scaleY
	}

	scaledW := nativeW * scale
	scaledH := nativeH * scale
	offsetX := (float64(screenW) - scaledW) / 2
	offsetY := (float64(screenH) - scaledH) / 2

	e.drawOpts = ebiten.DrawImageOptions{}
	e.drawOpts.GeoM.Scale(scale, scale)
	e.drawOpts.GeoM.Translate(offsetX, offsetY)
	e.drawOpts.Filter = ebiten.FilterNearest
	screen.DrawImage(srcImage, &e.drawOpts)
}

func (e *Emulator) Layout(outsideWidth, outsideHeight int) (int, int) {
	// Return window size so we control scaling in Draw()
	return outsideWidth, outsideHeight
}

// GetFramebufferImage returns the most recently painted frame as an
// ebiten.Image at native resolution, optionally cropping the SMS left
// border. Game Gear frames are already cropped to 160x144 by the sink.
func (e *Emulator) GetFramebufferImage(cropBorder bool) *ebiten.Image {
	img := e.frameImage()
	if img == nil {
		return nil
	}
	if cropBorder && e.LeftColumnBlankEnabled() {
		b := img.Bounds()
		return img.SubImage(image.Rect(b.Min.X+8, b.Min.Y, b.Max.X, b.Max.Y)).(*ebiten.Image)
	}
	return img
}

// frameImage materializes the sink's pixel buffer into the offscreen
// ebiten.Image, resizing it when the sink's resolution has changed.
func (e *Emulator) frameImage() *ebiten.Image {
	w, h := e.sink.width, e.sink.height
	if w == 0 || h == 0 || len(e.sink.pixels) < w*h*4 {
		return nil
	}
	if e.offscreen == nil || e.offscreen.Bounds().Dx() != w || e.offscreen.Bounds().Dy() != h {
		e.offscreen = ebiten.NewImage(w, h)
	}
	e.offscreen.WritePixels(e.sink.pixels)
	return e.offscreen
}
