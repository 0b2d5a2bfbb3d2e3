package emu

// Memory is the CPU's view of the 16-bit address space, backed by the
// cartridge mapper. Both operations are synchronous and never fail.
type Memory interface {
	Read(addr uint16) uint8
	Write(addr uint16, value uint8)
}

// Ports is the CPU's view of the Z80 IO address space. The low 8 bits of
// the port select a device; routing to the VDP, PSG, and controller ports
// is the implementation's responsibility.
type Ports interface {
	In(port uint16) uint8
	Out(port uint16, value uint8)
}

// IRQSource is the CPU's view of the VDP's interrupt-request line: the CPU
// samples it at instruction boundaries rather than being pushed to.
type IRQSource interface {
	RequestingMaskable() bool
}

// RGB888 is a host-agnostic 24-bit color.
type RGB888 struct {
	R, G, B uint8
}

// GraphicsSink is the host collaborator the VDP paints into. It is the only
// channel through which rendered pixels leave the emulation core.
type GraphicsSink interface {
	SetResolution(w, h int) error
	Paint(x, y int, c RGB888) error
	Render() error
}

// NullSink discards all output. Useful for headless CPU/VDP testing and for
// the differential test harness, which only cares about CPU/memory state.
type NullSink struct{}

func (NullSink) SetResolution(w, h int) error   { return nil }
func (NullSink) Paint(x, y int, c RGB888) error { return nil }
func (NullSink) Render() error                  { return nil }
