package cpu

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"
)

var _cpu_defines = map[string]string{
	"MEM_SIZE": fmt.Sprintf("%v", MEM_SIZE),
	"MEM_MASK": fmt.Sprintf("%#x", MEM_MASK),
}

// Status is the flag register, one named field per flag.
//
// Only Z, I, and H are ever written by an instruction. N, C, and V are
// part of the architected state but no operation computes them; they
// stay false after reset. They are kept so that state snapshots expose
// the full register.
type Status struct {
	Z bool // Zero: last register result was zero.
	N bool // Negative: architected, never computed.
	C bool // Carry: architected, never computed.
	I bool // Interrupt enable.
	V bool // Overflow: architected, never computed.
	H bool // Halt: set once, cleared only by Reset.
}

// Cpu is the simulation context for the AX16 processor.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Mem    Memory // Flat code+data memory.
	Acc    uint16 // Accumulator.
	X      uint16 // Index register.
	Pc     uint16 // Program counter.
	Status Status // Flag register.

	Cycles int // Executed cycle counter.
}

// NewCpu creates a new CPU in the reset state.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{}

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// Reset returns the CPU to its power-on state: memory, registers, and
// all flags zero, PC at 0.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.Mem.Reset()
	cpu.Acc = 0
	cpu.X = 0
	cpu.Pc = 0
	cpu.Status = Status{}
	cpu.Cycles = 0
}

// Halted returns true once the halt flag is set.
func (cpu *Cpu) Halted() bool {
	return cpu.Status.H
}

// Decode turns one instruction word into an execution Context. The
// effective address is computed from the word's address constant, its
// addressing mode, and the current value of X; it is never cached
// across cycles. Every field is decoded, extended escape included, as
// the hardware would.
func (cpu *Cpu) Decode(code Code) (ctx Context) {
	ctx.Code = code
	ctx.Op = code.Op()
	ctx.Reg = code.Reg()
	ctx.Mode = code.Mode()
	ctx.Const = code.Const()

	switch ctx.Mode {
	case MODE_DIRECT:
		ctx.EffAddr = ctx.Const
	case MODE_INDIRECT:
		ctx.EffAddr = cpu.Mem.Read(ctx.Const)
	case MODE_INDEXED:
		ctx.EffAddr = (ctx.Const + cpu.X) & MEM_MASK
	case MODE_INDIRECT_INDEXED:
		ctx.EffAddr = cpu.Mem.Read(ctx.Const + cpu.X)
	}

	ctx.Extended = ctx.Op == OP_EXT
	if ctx.Extended {
		ctx.Ext = code.Ext()
	}

	return
}

// FetchDecode reads the instruction word at PC and decodes it.
// It does not mutate any machine state.
func (cpu *Cpu) FetchDecode() (ctx Context) {
	return cpu.Decode(Code(cpu.Mem.Read(cpu.Pc)))
}

// regPtr returns the register selected by an instruction word.
func (cpu *Cpu) regPtr(sel RegSel) *uint16 {
	if sel == REG_ACC {
		return &cpu.Acc
	}
	return &cpu.X
}

// execute dispatches a single decoded instruction. Handlers that
// redirect control flow pre-decrement PC so that the cycle's
// unconditional post-increment lands exactly on the target.
func (cpu *Cpu) execute(ctx Context) (err error) {
	if ctx.Extended {
		switch ctx.Ext {
		case EXT_HALT:
			cpu.Status.H = true
			cpu.Pc-- // hold PC on this instruction
		case EXT_EI:
			cpu.Status.I = true
		case EXT_DI:
			cpu.Status.I = false
		default:
			// Extended opcode 3 is unassigned: no state change,
			// but the caller is told.
			err = errors.Join(ErrOpcode(ctx.Code), ErrExtOpcode)
		}
		return
	}

	reg := cpu.regPtr(ctx.Reg)
	switch ctx.Op {
	case OP_ST:
		cpu.Mem.Write(ctx.EffAddr, *reg)
	case OP_LD:
		*reg = cpu.Mem.Read(ctx.EffAddr)
		cpu.Status.Z = *reg == 0
	case OP_ADD:
		*reg += cpu.Mem.Read(ctx.EffAddr)
		cpu.Status.Z = *reg == 0
	case OP_BR:
		cpu.Pc = ctx.EffAddr - 1
	case OP_BZ:
		if cpu.Status.Z {
			cpu.Pc = ctx.EffAddr - 1
		}
	case OP_CLR:
		*reg = 0
		cpu.Status.Z = true
	case OP_DEC:
		*reg--
		cpu.Status.Z = *reg == 0
	}

	return
}

// Trace is the structured record of one executed cycle, exposed to the
// observation collaborator. Register and status fields are the values
// after the cycle completed.
type Trace struct {
	Addr uint16  // Address the instruction was fetched from.
	Code Code    // Raw instruction word.
	Ctx  Context // Decoded instruction.

	Acc    uint16
	X      uint16
	Pc     uint16
	Status Status
}

// Tick executes a single fetch-decode-execute cycle.
//
// The zero flag is cleared before dispatch on every cycle, so a bz
// instruction observes the Z value left by the previous cycle's
// handler, never its own. Once halted, Tick is a no-op.
func (cpu *Cpu) Tick() (trace Trace, err error) {
	if cpu.Status.H {
		trace = Trace{Acc: cpu.Acc, X: cpu.X, Pc: cpu.Pc, Status: cpu.Status}
		return
	}

	addr := cpu.Pc & MEM_MASK
	ctx := cpu.FetchDecode()

	if cpu.Verbose {
		log.Printf("%03x: %v", addr, ctx.Code)
	}

	cpu.Status.Z = false

	err = cpu.execute(ctx)

	cpu.Pc++
	cpu.Cycles++

	trace = Trace{
		Addr:   addr,
		Code:   ctx.Code,
		Ctx:    ctx,
		Acc:    cpu.Acc,
		X:      cpu.X,
		Pc:     cpu.Pc,
		Status: cpu.Status,
	}

	return
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	regs := []string{"pc", "acc", "x", "status"}
	for _, reg := range regs {
		var strval string
		switch reg {
		case "pc":
			strval = fmt.Sprintf("%03X", cpu.Pc&MEM_MASK)
		case "acc":
			strval = fmt.Sprintf("%04X", cpu.Acc)
		case "x":
			strval = fmt.Sprintf("%04X", cpu.X)
		case "status":
			st := cpu.Status
			strval = fmt.Sprintf("[Z:%v N:%v C:%v I:%v V:%v H:%v]",
				b2i(st.Z), b2i(st.N), b2i(st.C), b2i(st.I), b2i(st.V), b2i(st.H))
		}
		text += fmt.Sprintf("% 7s: %v\n", reg, strval)
	}

	// Show used memory plus some margin, at least 30 words.
	used := 0
	for n := MEM_SIZE - 1; n >= 0; n-- {
		if cpu.Mem[n] != 0 {
			used = n
			break
		}
	}
	show := max(used+10, 30)
	show = min(show, MEM_SIZE)

	text += fmt.Sprintf("mem[0-%d]:", show-1)
	for n := 0; n < show; n++ {
		if n%10 == 0 {
			text += "\n  "
		}
		text += fmt.Sprintf(" %04X", cpu.Mem[n])
	}
	text += "\n"

	return
}

func b2i(flag bool) (value int) {
	if flag {
		value = 1
	}
	return
}
