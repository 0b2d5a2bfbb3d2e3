package emu

import "testing"

func TestSMSIO_PowerOnState(t *testing.T) {
	vdp := NewVDP()
	psg := NewPSG(NTSCTiming.CPUClockHz, 48000, 800)
	io := NewSMSIO(vdp, psg, NationalityExport)

	if io.Input.Port1 != 0xFF || io.Input.Port2 != 0xFF {
		t.Error("controller ports should read all-released (0xFF) at power-on")
	}
	if io.In(0xDC) != 0xFF {
		t.Errorf("port $DC: expected 0xFF, got 0x%02X", io.In(0xDC))
	}
}

func TestSMSIO_SetP1UpdatesPort1(t *testing.T) {
	vdp := NewVDP()
	psg := NewPSG(NTSCTiming.CPUClockHz, 48000, 800)
	io := NewSMSIO(vdp, psg, NationalityExport)

	io.Input.SetP1(true, false, false, true, false, false) // Up + Right
	want := uint8(0xFF &^ 0x01 &^ 0x08)
	if io.Input.Port1 != want {
		t.Errorf("Port1: expected 0x%02X, got 0x%02X", want, io.Input.Port1)
	}

	got := io.In(0xDC)
	if got != want {
		t.Errorf("port $DC read: expected 0x%02X, got 0x%02X", want, got)
	}
}

func TestSMSIO_SetP2UpdatesBothPorts(t *testing.T) {
	vdp := NewVDP()
	psg := NewPSG(NTSCTiming.CPUClockHz, 48000, 800)
	io := NewSMSIO(vdp, psg, NationalityExport)

	io.Input.SetP2(true, true, true, true, true, true)

	if io.Input.Port1&0xC0 != 0 {
		t.Errorf("Port1 P2 Up/Down bits should be clear, got 0x%02X", io.Input.Port1)
	}
	if io.Input.Port2&0x0F != 0 {
		t.Errorf("Port2 P2 Left/Right/Btn bits should be clear, got 0x%02X", io.Input.Port2)
	}
}

func TestSMSIO_PortDDJapaneseInversion(t *testing.T) {
	vdp := NewVDP()
	psg := NewPSG(NTSCTiming.CPUClockHz, 48000, 800)
	export := NewSMSIO(vdp, psg, NationalityExport)
	japan := NewSMSIO(vdp, psg, NationalityJapanese)

	export.Out(0x3F, 0xA0) // TH bits set on both ports
	japan.Out(0x3F, 0xA0)

	exportVal := export.In(0xDD)
	japanVal := japan.In(0xDD)

	if (exportVal ^ japanVal) != 0xC0 {
		t.Errorf("TH bits should be exactly inverted between export/Japanese: export=0x%02X japan=0x%02X", exportVal, japanVal)
	}
}

func TestSMSIO_GameGearStartButton(t *testing.T) {
	vdp := NewVDPKind(VDPGameGear)
	psg := NewPSG(NTSCTiming.CPUClockHz, 48000, 800)
	io := NewGameGearIO(vdp, psg, NationalityExport)

	if io.In(0x00)&0x40 == 0 {
		t.Error("Start button bit should read high (unpressed) initially")
	}

	io.SetGameGearStart(true)
	if io.In(0x00)&0x40 != 0 {
		t.Error("Start button bit should read low while pressed")
	}

	io.SetGameGearStart(false)
	if io.In(0x00)&0x40 == 0 {
		t.Error("Start button bit should read high again once released")
	}
}

func TestSMSIO_VDPPortRouting(t *testing.T) {
	vdp := NewVDP()
	psg := NewPSG(NTSCTiming.CPUClockHz, 48000, 800)
	io := NewSMSIO(vdp, psg, NationalityExport)

	io.Out(0xBF, 0x00) // control port low byte
	io.Out(0xBF, 0x40) // control port high byte, code=1 (write setup), addr=0
	io.Out(0xBE, 0x77) // data port write

	if vdp.GetVRAM()[0] != 0x77 {
		t.Errorf("VRAM[0]: expected 0x77, got 0x%02X", vdp.GetVRAM()[0])
	}
}

func TestSMSIO_PSGPortRouting(t *testing.T) {
	vdp := NewVDP()
	psg := NewPSG(NTSCTiming.CPUClockHz, 48000, 800)
	io := NewSMSIO(vdp, psg, NationalityExport)

	io.Out(0x7F, 0x9F) // latch channel 0 volume = 0xF (silent)
	if psg.GetVolume(0) != 0x0F {
		t.Errorf("channel0 volume: expected 0x0F, got 0x%02X", psg.GetVolume(0))
	}
}
