// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/ax16/cpu"
	"github.com/ezrec/ax16/internal"
)

const (
	RESET_VECTOR = 0 // Execution always begins at address 0.
)

var _emulator_defines = map[string]string{
	"RESET_VECTOR": fmt.Sprintf("%v", RESET_VECTOR),
}

// Emulator state. CPU + program listing.
//
// The emulator owns the run loop around the CPU core: it installs the
// program image, steps the machine one cycle at a time, and annotates
// runtime errors with their source location.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently running program listing.
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:     cpu.NewCpu(),
		Program: &cpu.Program{},
	}

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		emu.Cpu.Defines(),
	)
}

// Reset resets the CPU and installs the program image.
func (emu *Emulator) Reset() (err error) {
	emu.Cpu.Verbose = emu.Verbose

	emu.Cpu.Reset()
	err = emu.Cpu.Mem.Load(emu.Program.Image())

	return
}

// LineNo returns the source line number for the opcode at PC.
func (emu *Emulator) LineNo() int {
	dbg := emu.Program.Debug(emu.Cpu.Pc)
	if dbg.Opcode == nil {
		return 0
	}

	return dbg.Opcode.LineNo
}

// Step performs a single cycle of the emulator. done reports the
// halted state; once halted, further steps leave all state unchanged.
func (emu *Emulator) Step() (trace cpu.Trace, done bool, err error) {
	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: lineno, Err: err}
		}
	}()

	emu.Cpu.Verbose = emu.Verbose

	trace, err = emu.Cpu.Tick()
	done = emu.Cpu.Halted()

	return
}

// Run steps the emulator until the CPU halts. An unknown extended
// opcode is recoverable: it is logged and execution continues. A
// non-zero maxCycles bounds the run, failing with ErrCycleLimit if the
// program has not halted by then.
func (emu *Emulator) Run(maxCycles int) (cycles int, err error) {
	for !emu.Cpu.Halted() {
		_, _, err = emu.Step()
		if errors.Is(err, cpu.ErrExtOpcode) {
			if emu.Verbose {
				log.Printf("emulator: %v", err)
			}
			err = nil
		}
		if err != nil {
			return
		}
		cycles++

		if maxCycles > 0 && cycles >= maxCycles && !emu.Cpu.Halted() {
			err = ErrCycleLimit
			return
		}
	}

	return
}
