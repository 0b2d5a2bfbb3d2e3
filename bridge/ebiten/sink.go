package ebiten

import "github.com/user-none/smscore/emu"

// framebufferSink implements emu.GraphicsSink by accumulating painted
// pixels into a packed RGBA byte buffer sized to the VDP's current
// resolution, ready for a single ebiten.Image.WritePixels call per frame.
type framebufferSink struct {
	width, height int
	pixels        []byte
}

func newFramebufferSink() *framebufferSink {
	return &framebufferSink{}
}

func (s *framebufferSink) SetResolution(w, h int) error {
	if w == s.width && h == s.height && s.pixels != nil {
		return nil
	}
	s.width, s.height = w, h
	s.pixels = make([]byte, w*h*4)
	return nil
}

func (s *framebufferSink) Paint(x, y int, c emu.RGB888) error {
	if x < 0 || y < 0 || x >= s.width || y >= s.height {
		return nil
	}
	i := (y*s.width + x) * 4
	s.pixels[i+0] = c.R
	s.pixels[i+1] = c.G
	s.pixels[i+2] = c.B
	s.pixels[i+3] = 0xFF
	return nil
}

func (s *framebufferSink) Render() error { return nil }
