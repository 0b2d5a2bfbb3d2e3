package emu

import "hash/crc32"

// MapperKind identifies which cartridge mapper protocol governs register
// writes for a loaded ROM.
type MapperKind int

const (
	MapperSega MapperKind = iota
	MapperCodemasters
	MapperSG1000
)

// pageKind identifies what physical storage a logical 16 KiB slot (or, for
// HalfCartridgeRam, the upper half of one) currently reads and writes
// through.
type pageKind int

const (
	pageSystemRam pageKind = iota
	pageFirstCartridgeRam
	pageSecondCartridgeRam
	pageHalfCartridgeRam
	pageRom
	pageRomButFirstKiB
)

// page names a single slot's current mapping: a kind plus, for the ROM
// variants, the page index within rom.
type page struct {
	kind  pageKind
	index int
}

// cartRAMVariant describes how much battery-backed/work cartridge RAM a
// cartridge exposes.
type cartRAMVariant int

const (
	cartRAMNone cartRAMVariant = iota
	cartRAMOnePage
	cartRAMTwoPages
)

const (
	romPageSize    = 0x4000
	systemRamSize  = 0x2000
	cartRAMPageLen = 0x4000
	halfCartRAMLen = 0x2000
)

// SMSMemory is the 16-bit address space: cartridge ROM, system RAM, optional
// cartridge RAM, and the current mapping from the four logical 16 KiB slots
// to physical pages. It implements the Memory interface consumed by the CPU.
type SMSMemory struct {
	rom           []uint8
	romPageCount  int
	systemRam     [systemRamSize]uint8
	mainCartRAM   []uint8 // lazily allocated, len 0x4000 or 0x8000
	mainCartKind  cartRAMVariant
	halfCartRAM   []uint8 // lazily allocated, len 0x2000
	pages         [4]page
	mapperKind    MapperKind
	sega          segaMapperState
	codemasters   codemastersMapperState
}

// NewMemory constructs an SMSMemory for the given ROM image, autodetecting the
// mapper from the known-ROM database (falling back to the Sega mapper, the
// overwhelming majority case) and installing that mapper's power-on slot
// mapping.
func NewMemory(rom []byte) *SMSMemory {
	m := &SMSMemory{
		rom: make([]uint8, len(rom)),
	}
	copy(m.rom, rom)

	m.romPageCount = len(rom) / romPageSize
	if m.romPageCount == 0 {
		m.romPageCount = 1
	}

	m.mapperKind = detectMapperKind(rom)
	m.resetSlots()
	return m
}

// mapPage reduces a raw page index modulo the ROM's page count. This is the
// only path by which a page index reaches pages[]; callers never store an
// unreduced index.
func (m *SMSMemory) mapPage(index int) int {
	if m.romPageCount == 0 {
		return 0
	}
	return index % m.romPageCount
}

func (m *SMSMemory) resetSlots() {
	switch m.mapperKind {
	case MapperCodemasters:
		m.pages[0] = page{pageRom, m.mapPage(0)}
		m.pages[1] = page{pageRom, m.mapPage(1)}
		m.pages[2] = page{pageRom, m.mapPage(0)}
	case MapperSG1000:
		m.pages[0] = page{pageRom, m.mapPage(0)}
		m.pages[1] = page{pageRom, m.mapPage(1)}
		m.pages[2] = page{pageRom, m.mapPage(2)}
	default:
		m.pages[0] = page{pageRomButFirstKiB, m.mapPage(0)}
		m.pages[1] = page{pageRom, m.mapPage(1)}
		m.pages[2] = page{pageRom, m.mapPage(2)}
	}
	m.pages[3] = page{kind: pageSystemRam}
}

// detectMapperKind identifies the mapper type based on ROM CRC32, consulting
// the cached known-ROM database. SG-1000 cartridges predate the Sega mapper
// and are not present in the database; this repo has no SG-1000 CRC table,
// so SG-1000 images must be selected explicitly by the host driver rather
// than autodetected (see NewMemoryWithMapper).
func detectMapperKind(rom []byte) MapperKind {
	crc := crc32.ChecksumIEEE(rom)
	if info, ok := lookupROMInfo(crc); ok {
		return info.Mapper
	}
	return MapperSega
}

// NewMemoryWithMapper behaves like NewMemory but forces a mapper kind
// instead of autodetecting, for hosts that already know (from a ROM
// header, a database outside this package, or a user flag) which protocol
// a cartridge speaks.
func NewMemoryWithMapper(rom []byte, kind MapperKind) *SMSMemory {
	m := &SMSMemory{
		rom:        make([]uint8, len(rom)),
		mapperKind: kind,
	}
	copy(m.rom, rom)
	m.romPageCount = len(rom) / romPageSize
	if m.romPageCount == 0 {
		m.romPageCount = 1
	}
	m.resetSlots()
	return m
}

func (m *SMSMemory) ensureMainCartRAM(variant cartRAMVariant) {
	if m.mainCartKind >= variant {
		return
	}
	size := cartRAMPageLen
	if variant == cartRAMTwoPages {
		size = cartRAMPageLen * 2
	}
	grown := make([]uint8, size)
	copy(grown, m.mainCartRAM)
	m.mainCartRAM = grown
	m.mainCartKind = variant
}

func (m *SMSMemory) ensureHalfCartRAM() {
	if m.halfCartRAM != nil {
		return
	}
	m.halfCartRAM = make([]uint8, halfCartRAMLen)
}

func (m *SMSMemory) slotForAddr(addr uint16) (int, uint16) {
	switch {
	case addr < 0x4000:
		return 0, addr
	case addr < 0x8000:
		return 1, addr - 0x4000
	case addr < 0xC000:
		return 2, addr - 0x8000
	default:
		return 3, addr - 0xC000
	}
}

// Read implements Memory.
func (m *SMSMemory) Read(addr uint16) uint8 {
	slot, off := m.slotForAddr(addr)
	p := m.pages[slot]

	switch p.kind {
	case pageSystemRam:
		return m.systemRam[off&(systemRamSize-1)]
	case pageFirstCartridgeRam:
		return m.readCartRAMPage(0, off)
	case pageSecondCartridgeRam:
		return m.readCartRAMPage(1, off)
	case pageHalfCartridgeRam:
		if off < halfCartRAMLen {
			return m.readRomPage(p.index, off)
		}
		if m.halfCartRAM == nil {
			return 0xFF
		}
		return m.halfCartRAM[off-halfCartRAMLen]
	case pageRomButFirstKiB:
		if slot == 0 && off < 0x400 {
			if int(off) < len(m.rom) {
				return m.rom[off]
			}
			return 0xFF
		}
		return m.readRomPage(p.index, off)
	default: // pageRom
		return m.readRomPage(p.index, off)
	}
}

func (m *SMSMemory) readRomPage(pageIndex int, off uint16) uint8 {
	addr := uint32(pageIndex)*romPageSize + uint32(off)
	if addr < uint32(len(m.rom)) {
		return m.rom[addr]
	}
	return 0xFF
}

func (m *SMSMemory) readCartRAMPage(ramPage int, off uint16) uint8 {
	if m.mainCartRAM == nil {
		return 0xFF
	}
	addr := ramPage*cartRAMPageLen + int(off)
	if addr < len(m.mainCartRAM) {
		return m.mainCartRAM[addr]
	}
	return 0xFF
}

func (m *SMSMemory) writeCartRAMPage(ramPage int, off uint16, val uint8) {
	if m.mainCartRAM == nil {
		return
	}
	addr := ramPage*cartRAMPageLen + int(off)
	if addr < len(m.mainCartRAM) {
		m.mainCartRAM[addr] = val
	}
}

// Write implements Memory. It runs the mapper-specific register check
// first, then, unless the addressed slot's current page is writable,
// discards the write silently — writes to ROM never mutate rom[].
func (m *SMSMemory) Write(addr uint16, val uint8) {
	switch m.mapperKind {
	case MapperCodemasters:
		m.writeCodemasters(addr, val)
	case MapperSG1000:
		// No register writes; only system RAM in slot 3 is ever writable.
	default:
		m.writeSega(addr, val)
	}

	slot, off := m.slotForAddr(addr)
	p := m.pages[slot]
	switch p.kind {
	case pageSystemRam:
		m.systemRam[off&(systemRamSize-1)] = val
	case pageFirstCartridgeRam:
		m.writeCartRAMPage(0, off, val)
	case pageSecondCartridgeRam:
		m.writeCartRAMPage(1, off, val)
	case pageHalfCartridgeRam:
		if off >= halfCartRAMLen && m.halfCartRAM != nil {
			m.halfCartRAM[off-halfCartRAMLen] = val
		}
	default:
		// ROM pages are read-only; writes discarded.
	}
}

// GetROMCRC32 returns the CRC32 checksum of the loaded ROM, used for
// savestate verification so a state is never applied to the wrong cartridge.
func (m *SMSMemory) GetROMCRC32() uint32 {
	return crc32.ChecksumIEEE(m.rom)
}

// RomPageCount reports how many 16 KiB pages the loaded ROM occupies.
func (m *SMSMemory) RomPageCount() int {
	return m.romPageCount
}

// ValidatePages returns InvalidRomPageSelectedError if any currently
// selected ROM-backed page falls outside the loaded ROM, for validating a
// page mapping restored from a savestate.
func (m *SMSMemory) ValidatePages() error {
	for slot, p := range m.pages {
		switch p.kind {
		case pageRom, pageRomButFirstKiB, pageHalfCartridgeRam:
			if p.index >= m.romPageCount {
				return &InvalidRomPageSelectedError{Slot: slot, Selected: p.index, Found: m.romPageCount}
			}
		}
	}
	return nil
}
