package emu

// codemastersMapperState is empty: the Codemasters mapper has no shared
// control register, only three independent slot-select writes.
type codemastersMapperState struct{}

// writeCodemasters handles the three ROM page-select writes. The slot2
// write additionally carries a RAM-enable bit in its top bit: some
// Codemasters titles (Ernie Els Golf, Dizzy the Adventurer) overlay an 8 KiB
// RAM chip onto the upper half of the 16 KiB slot2 window, leaving the
// lower half still reading the selected ROM page.
func (m *SMSMemory) writeCodemasters(addr uint16, val uint8) {
	switch addr {
	case 0x0000:
		m.pages[0] = page{pageRom, m.mapPage(int(val))}
	case 0x4000:
		m.pages[1] = page{pageRom, m.mapPage(int(val))}
	case 0x8000:
		romPage := m.mapPage(int(val & 0x7F))
		if val&0x80 != 0 {
			m.ensureHalfCartRAM()
			m.pages[2] = page{pageHalfCartridgeRam, romPage}
		} else {
			m.pages[2] = page{pageRom, romPage}
		}
	}
}
