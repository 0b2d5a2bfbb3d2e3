package cli

// A differential test harness — running a ROM set against both this
// emulator and a separate reference implementation, then comparing CPU,
// memory, and VDP state after each frame — is out of scope for this
// package: it shells out to an external reference emulator that this repo
// neither implements nor vendors.
//
// The collaborator boundary for such a harness is the same one `Runner`
// already uses: construct a bridge/ebiten.Emulator headlessly (a NullSink
// GraphicsSink, input fed from a recorded script instead of polled), call
// RunFrame per tick, and compare Serialize() output or GetSystemRAM/
// GetCartRAM snapshots against the reference's own state dump after each
// frame. Nothing in this package depends on that external process existing.
