package emu

// segaMapperState holds the register bits of the standard Sega mapper
// ($FFFC-$FFFF) that SMSMemory.Write consults before committing a page change.
// bit3 of ramControl enables cartridge RAM in slot2; bit4 enables the first
// cartridge RAM page over system RAM in slot3; bit2 selects which RAM page
// slot2's RAM maps to.
type segaMapperState struct {
	ramControl uint8
	// pendingSlot2Rom remembers the ROM page requested via $FFFF while
	// cartridge RAM occupies slot2, so it takes effect immediately once RAM
	// is disabled again.
	pendingSlot2Rom int
}

func (m *SMSMemory) writeSega(addr uint16, val uint8) {
	switch addr {
	case 0xFFFC:
		m.sega.ramControl = val
		m.applySegaRamControl()
	case 0xFFFD:
		m.pages[0] = page{pageRomButFirstKiB, m.mapPage(int(val))}
	case 0xFFFE:
		m.pages[1] = page{pageRom, m.mapPage(int(val))}
	case 0xFFFF:
		m.sega.pendingSlot2Rom = m.mapPage(int(val))
		if m.sega.ramControl&0x08 == 0 {
			m.pages[2] = page{pageRom, m.sega.pendingSlot2Rom}
		}
	}
}

func (m *SMSMemory) applySegaRamControl() {
	if m.sega.ramControl&0x08 != 0 {
		ramPage := pageFirstCartridgeRam
		if m.sega.ramControl&0x04 != 0 {
			ramPage = pageSecondCartridgeRam
		}
		variant := cartRAMOnePage
		if ramPage == pageSecondCartridgeRam {
			variant = cartRAMTwoPages
		}
		m.ensureMainCartRAM(variant)
		m.pages[2] = page{kind: ramPage}
	} else {
		m.pages[2] = page{pageRom, m.sega.pendingSlot2Rom}
	}

	if m.sega.ramControl&0x10 != 0 {
		m.ensureMainCartRAM(cartRAMOnePage)
		m.pages[3] = page{kind: pageFirstCartridgeRam}
	} else {
		m.pages[3] = page{kind: pageSystemRam}
	}
}
