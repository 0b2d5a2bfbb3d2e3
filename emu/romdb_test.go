package emu

import "testing"

func TestLookupROMInfo_KnownSegaEntry(t *testing.T) {
	info, ok := lookupROMInfo(0x299cbb74) // Astro Warrior
	if !ok {
		t.Fatal("expected Astro Warrior's CRC32 to be in the database")
	}
	if info.Mapper != MapperSega {
		t.Errorf("expected MapperSega, got %v", info.Mapper)
	}
	if info.Region != RegionNTSC {
		t.Errorf("expected RegionNTSC, got %v", info.Region)
	}
}

func TestLookupROMInfo_KnownCodemastersEntry(t *testing.T) {
	info, ok := lookupROMInfo(0x29822980) // Cosmic Spacehead
	if !ok {
		t.Fatal("expected Cosmic Spacehead's CRC32 to be in the database")
	}
	if info.Mapper != MapperCodemasters {
		t.Errorf("expected MapperCodemasters, got %v", info.Mapper)
	}
	if info.Region != RegionPAL {
		t.Errorf("expected RegionPAL, got %v", info.Region)
	}
}

func TestLookupROMInfo_UnknownCRCMisses(t *testing.T) {
	_, ok := lookupROMInfo(0xDEADBEEF)
	if ok {
		t.Error("expected an unknown CRC32 to miss the database")
	}
}

func TestLookupROMInfo_CachesOnHit(t *testing.T) {
	// Prime the cache, then remove the entry from the underlying map and
	// confirm the cached copy still answers the lookup.
	crc := uint32(0x299cbb74)
	want, ok := lookupROMInfo(crc)
	if !ok {
		t.Fatal("expected initial lookup to succeed")
	}

	saved := romDatabase[crc]
	delete(romDatabase, crc)
	defer func() { romDatabase[crc] = saved }()

	got, ok := lookupROMInfo(crc)
	if !ok {
		t.Fatal("expected cached lookup to succeed even after the map entry was removed")
	}
	if got != want {
		t.Errorf("cached lookup returned %+v, want %+v", got, want)
	}
}

func TestDetectMapperKind_UnknownFallsBackToSega(t *testing.T) {
	rom := createTestROM(2)
	if got := detectMapperKind(rom); got != MapperSega {
		t.Errorf("unknown ROM should default to MapperSega, got %v", got)
	}
}
