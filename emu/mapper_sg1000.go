package emu

// SG-1000 cartridges predate bank switching entirely: the three ROM slots
// are fixed at power-on to pages 0, 1, 2 (set in SMSMemory.resetSlots) and no
// address range reconfigures them. There is no per-instance state and no
// write handler to register — SMSMemory.Write's MapperSG1000 case is a no-op
// by omission.
