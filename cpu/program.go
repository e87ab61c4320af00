package cpu

import (
	"iter"
)

// Opcode represents a line of assembled code with its source location
// and generated instruction word.
type Opcode struct {
	LineNo    int
	Addr      int
	Words     []string
	Code      Code
	LinkLabel string
}

// DataCell is a memory cell preset by a data directive.
type DataCell struct {
	LineNo int
	Addr   int
	Value  uint16
}

type Program struct {
	Opcodes []Opcode
	Data    []DataCell
}

type Debug struct {
	*Opcode
}

// Debug returns the source opcode record covering a memory address.
func (prog *Program) Debug(addr uint16) (dbg Debug) {
	for n, op := range prog.Opcodes {
		if int(addr) == op.Addr {
			dbg = Debug{Opcode: &prog.Opcodes[n]}
			break
		}
	}

	return
}

// Words iterates the instruction stream as (address, code) pairs.
func (prog *Program) Words() iter.Seq2[uint16, Code] {
	return func(yield func(addr uint16, code Code) bool) {
		for _, op := range prog.Opcodes {
			if !yield(uint16(op.Addr), op.Code) {
				return
			}
		}
	}
}

// Image renders the program as a memory image: the instruction stream
// from address 0, plus any data cells at their stated addresses.
func (prog *Program) Image() (words []uint16) {
	size := len(prog.Opcodes)
	for _, cell := range prog.Data {
		if cell.Addr+1 > size {
			size = cell.Addr + 1
		}
	}

	words = make([]uint16, size)
	for addr, code := range prog.Words() {
		words[addr] = uint16(code)
	}
	for _, cell := range prog.Data {
		words[cell.Addr] = cell.Value
	}

	return
}
