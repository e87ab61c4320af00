package cpu

import (
	"fmt"
)

// Instruction word layout (16 bits, bit 15 most significant):
//
//	[ 000 ][ OP OP OP ][ R ][ M M ][ C C C C C C ]
//	 15-12    11-9       8    7-6       5-0
//
// Extended instructions (op == 7) repurpose bits 8-7 as a 2-bit
// sub-opcode in place of the register-select bit and the upper
// addressing-mode bit.
const (
	OPCODE_SHIFT = 9    // Shift of the 3-bit opcode field.
	OPCODE_MASK  = 0x7  // Mask of the opcode field.
	REG_SHIFT    = 8    // Shift of the register-select bit.
	MODE_SHIFT   = 6    // Shift of the 2-bit addressing-mode field.
	MODE_MASK    = 0x3  // Mask of the addressing-mode field.
	CONST_MASK   = 0x3f // Mask of the 6-bit address constant.
	EXT_SHIFT    = 7    // Shift of the 2-bit extended opcode field.
	EXT_MASK     = 0x3  // Mask of the extended opcode field.
)

// Op is a primary opcode.
type Op int

//go:generate go tool stringer -linecomment -type=Op
const (
	OP_ST  = Op(0) // st
	OP_LD  = Op(1) // ld
	OP_ADD = Op(2) // add
	OP_BR  = Op(3) // br
	OP_BZ  = Op(4) // bz
	OP_CLR = Op(5) // clr
	OP_DEC = Op(6) // dec
	OP_EXT = Op(7) // ext
)

// ExtOp is an extended opcode, reached through the OP_EXT escape.
type ExtOp int

//go:generate go tool stringer -linecomment -type=ExtOp
const (
	EXT_HALT = ExtOp(0) // halt
	EXT_EI   = ExtOp(1) // ei
	EXT_DI   = ExtOp(2) // di
)

// AddrMode is an effective-address computation mode.
type AddrMode int

//go:generate go tool stringer -linecomment -type=AddrMode
const (
	MODE_DIRECT           = AddrMode(0) // direct
	MODE_INDIRECT         = AddrMode(1) // indirect
	MODE_INDEXED          = AddrMode(2) // indexed
	MODE_INDIRECT_INDEXED = AddrMode(3) // indirect-indexed
)

// RegSel selects the register operand of an instruction.
type RegSel int

//go:generate go tool stringer -linecomment -type=RegSel
const (
	REG_X   = RegSel(0) // x
	REG_ACC = RegSel(1) // acc
)

// Code is a single encoded instruction word.
type Code uint16

// MakeCode creates a primary instruction word.
func MakeCode(op Op, reg RegSel, mode AddrMode, addr uint16) Code {
	return Code((uint16(op) << OPCODE_SHIFT) |
		(uint16(reg) << REG_SHIFT) |
		(uint16(mode) << MODE_SHIFT) |
		(addr & CONST_MASK))
}

// MakeCodeExt creates an extended instruction word.
func MakeCodeExt(ext ExtOp) Code {
	return Code((uint16(OP_EXT) << OPCODE_SHIFT) | (uint16(ext) << EXT_SHIFT))
}

// Op returns the primary opcode from the instruction word.
func (code Code) Op() Op {
	return Op((uint16(code) >> OPCODE_SHIFT) & OPCODE_MASK)
}

// Reg returns the register selector from the instruction word.
func (code Code) Reg() RegSel {
	return RegSel((uint16(code) >> REG_SHIFT) & 0x1)
}

// Mode returns the addressing mode from the instruction word.
func (code Code) Mode() AddrMode {
	return AddrMode((uint16(code) >> MODE_SHIFT) & MODE_MASK)
}

// Const returns the 6-bit address constant from the instruction word.
func (code Code) Const() uint16 {
	return uint16(code) & CONST_MASK
}

// Extended returns true if the instruction word uses the extended escape.
func (code Code) Extended() bool {
	return code.Op() == OP_EXT
}

// Ext returns the extended opcode. Meaningful only when Extended() is true.
func (code Code) Ext() ExtOp {
	return ExtOp((uint16(code) >> EXT_SHIFT) & EXT_MASK)
}

// String returns the assembly language representation of this instruction.
func (code Code) String() (out string) {
	if code.Extended() {
		ext := code.Ext()
		if ext > EXT_DI {
			return fmt.Sprintf("ext(%d)", int(ext))
		}
		return ext.String()
	}

	var operand string
	switch code.Mode() {
	case MODE_DIRECT:
		operand = fmt.Sprintf("[%d]", code.Const())
	case MODE_INDIRECT:
		operand = fmt.Sprintf("[[%d]]", code.Const())
	case MODE_INDEXED:
		operand = fmt.Sprintf("[%d+x]", code.Const())
	case MODE_INDIRECT_INDEXED:
		operand = fmt.Sprintf("[[%d+x]]", code.Const())
	}

	out = fmt.Sprintf("%v %v,%v", code.Op().String(), code.Reg().String(), operand)

	return
}

// Context is a fully decoded instruction, produced fresh each cycle and
// consumed once by the execution dispatch.
type Context struct {
	Code     Code     // Raw instruction word.
	Op       Op       // Primary opcode.
	Reg      RegSel   // Register selector.
	Mode     AddrMode // Addressing mode.
	Const    uint16   // 6-bit address constant.
	EffAddr  uint16   // Computed effective address.
	Extended bool     // True if the OP_EXT escape is in use.
	Ext      ExtOp    // Extended opcode, when Extended.
}
