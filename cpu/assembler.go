// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"regexp"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Predefined system equates
var sysEquate = map[string]string{
	"MEM_SIZE": fmt.Sprintf("%v", MEM_SIZE),
	"MEM_MASK": fmt.Sprintf("%#x", MEM_MASK),
}

// Assembler is a line-oriented assembler for the AX16 instruction set.
//
// Instructions take the form `MNEMONIC REG,OPERAND` where REG is `acc`
// or `x` and OPERAND selects the addressing mode:
//
//	[addr]     direct
//	[[addr]]   indirect
//	[addr+x]   indexed
//	[[addr+x]] indirect-indexed
//
// `halt`, `ei` and `di` take no operands. Memory cells are preset with
// `mem[addr] = value` directives. `label:` lines name the address of
// the following instruction, `.equ NAME value` defines an equate, and
// `$(expr)` evaluates a compile-time expression.
type Assembler struct {
	Verbose bool // If set, verbosely logs the assembler actions.

	predefine map[string]string // Predefines
	Label     map[string]int    // Map of jump labels to instruction addresses.
	Equate    map[string]string // Map of equates.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// opMap is a map of mnemonics to primary opcodes.
var opMap = map[string]Op{
	"st":  OP_ST,
	"ld":  OP_LD,
	"add": OP_ADD,
	"br":  OP_BR,
	"bz":  OP_BZ,
	"clr": OP_CLR,
	"dec": OP_DEC,
}

// extMap is a map of mnemonics to extended opcodes.
var extMap = map[string]ExtOp{
	"halt": EXT_HALT,
	"ei":   EXT_EI,
	"di":   EXT_DI,
}

// regMap is a map of register names to selectors.
var regMap = map[string]RegSel{
	"x":   REG_X,
	"acc": REG_ACC,
}

var (
	reEquate = regexp.MustCompile(`(?i)^\.equ\s+(\w+)\s+(\S+)$`)
	reData   = regexp.MustCompile(`(?i)^mem\[\s*(.+?)\s*\]\s*=\s*(.+)$`)
	reLabel  = regexp.MustCompile(`^(\w+):$`)
	reInstr  = regexp.MustCompile(`^(\w+)(?:\s+(\w+)\s*,\s*(.+))?$`)

	// Operand forms, most specific first.
	reIndIdx = regexp.MustCompile(`^\[\[\s*(.+?)\s*\+\s*[xX]\s*\]\]$`)
	reInd    = regexp.MustCompile(`^\[\[\s*(.+?)\s*\]\]$`)
	reIdx    = regexp.MustCompile(`^\[\s*(.+?)\s*\+\s*[xX]\s*\]$`)
	reDir    = regexp.MustCompile(`^\[\s*(.+?)\s*\]$`)
)

// valueOf returns the value of a simple word: a number, an equate
// chain ending in a number, or a $(...) expression. A leading '~'
// inverts the value.
func (asm *Assembler) valueOf(word string) (value uint32, err error) {
	invert := false
	if len(word) > 0 && word[0] == '~' {
		invert = true
		word = word[1:]
	}

	// Follow equate chains, bounded to avoid definition loops.
	for range 8 {
		next, ok := asm.Equate[word]
		if !ok {
			break
		}
		word = next
	}

	if strings.HasPrefix(word, "$(") && strings.HasSuffix(word, ")") {
		value, err = asm.expression(word[2 : len(word)-1])
		if err != nil {
			return
		}
	} else {
		var v64 int64
		v64, err = strconv.ParseInt(word, 0, 33)
		if err != nil {
			err = ErrParseNumber(word)
			return
		}
		if v64 < 0 {
			v64 = int64(uint16(v64))
		}
		value = uint32(v64)
	}

	if invert {
		value = ^value
	}

	return
}

// expression evaluates a compile-time $(...) expression, with all
// integer-valued equates bound as variables.
func (asm *Assembler) expression(expr string) (value uint32, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		var value32 uint32
		value32, err = asm.valueOf(str)
		if err != nil {
			// Ignore non-integer equates.
			err = nil
			continue
		}
		pred[key] = starlark.MakeInt(int(value32))
	}

	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = ErrParseExpression(expr)
		return
	}

	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}

	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}

	v64, ok := st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	if v64 < 0 {
		v64 = int64(uint16(v64))
	}
	value = uint32(v64)

	return
}

// operandOf parses an instruction operand into an addressing mode and
// an address constant. A bare identifier that is not an equate is
// returned as a link label to be resolved after the full pass.
func (asm *Assembler) operandOf(operand string) (mode AddrMode, addr uint16, link string, err error) {
	var inner string
	switch {
	case reIndIdx.MatchString(operand):
		mode = MODE_INDIRECT_INDEXED
		inner = reIndIdx.FindStringSubmatch(operand)[1]
	case reInd.MatchString(operand):
		mode = MODE_INDIRECT
		inner = reInd.FindStringSubmatch(operand)[1]
	case reIdx.MatchString(operand):
		mode = MODE_INDEXED
		inner = reIdx.FindStringSubmatch(operand)[1]
	case reDir.MatchString(operand):
		mode = MODE_DIRECT
		inner = reDir.FindStringSubmatch(operand)[1]
	default:
		err = ErrOperandInvalid
		return
	}

	value, verr := asm.valueOf(inner)
	if verr != nil {
		// Not a value; defer as a label reference if it looks like one.
		if reLabelName.MatchString(inner) {
			link = inner
			return
		}
		err = verr
		return
	}

	if value > CONST_MASK {
		err = ErrAddressRange
		return
	}
	addr = uint16(value)

	return
}

var reLabelName = regexp.MustCompile(`^[A-Za-z_]\w*$`)

// stripComment removes ';' and '//' comments from a line.
func stripComment(line string) string {
	if n := strings.Index(line, ";"); n >= 0 {
		line = line[:n]
	}
	if n := strings.Index(line, "//"); n >= 0 {
		line = line[:n]
	}
	return strings.TrimSpace(line)
}

// Parse assembles a source stream into a Program.
func (asm *Assembler) Parse(in io.Reader) (prog *Program, err error) {
	asm.Label = map[string]int{}
	asm.Equate = map[string]string{}
	for key, value := range sysEquate {
		asm.Equate[key] = value
	}
	for key, value := range asm.predefine {
		asm.Equate[key] = value
	}

	prog = &Program{}

	lineno := 0
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		lineno++
		raw := scanner.Text()
		line := stripComment(raw)
		if len(line) == 0 {
			continue
		}

		fail := func(ferr error) error {
			return ErrSyntax{LineNo: lineno, Line: raw, Err: ferr}
		}

		if strings.HasPrefix(strings.ToLower(line), ".equ") {
			m := reEquate.FindStringSubmatch(line)
			if m == nil {
				err = fail(ErrEquateSyntax)
				return
			}
			if _, ok := asm.Equate[m[1]]; ok {
				err = fail(ErrEquateDuplicate)
				return
			}
			asm.Equate[m[1]] = m[2]
			continue
		}

		if m := reData.FindStringSubmatch(line); m != nil {
			var addr, value uint32
			addr, err = asm.valueOf(m[1])
			if err == nil && addr >= MEM_SIZE {
				err = ErrAddressRange
			}
			if err == nil {
				value, err = asm.valueOf(m[2])
			}
			if err == nil && value > 0xffff {
				err = ErrDataRange
			}
			if err != nil {
				err = fail(err)
				return
			}
			prog.Data = append(prog.Data, DataCell{
				LineNo: lineno,
				Addr:   int(addr),
				Value:  uint16(value),
			})
			continue
		}

		if m := reLabel.FindStringSubmatch(line); m != nil {
			if _, ok := asm.Label[m[1]]; ok {
				err = fail(ErrLabelDuplicate)
				return
			}
			asm.Label[m[1]] = len(prog.Opcodes)
			continue
		}

		m := reInstr.FindStringSubmatch(line)
		if m == nil {
			err = fail(ErrOpcodeInvalid)
			return
		}
		mnemonic := strings.ToLower(m[1])

		var code Code
		var link string
		words := []string{mnemonic}

		if ext, ok := extMap[mnemonic]; ok {
			if len(m[2]) != 0 || len(m[3]) != 0 {
				err = fail(ErrOperandExtra)
				return
			}
			code = MakeCodeExt(ext)
		} else {
			op, ok := opMap[mnemonic]
			if !ok {
				err = fail(ErrOpcodeInvalid)
				return
			}
			if len(m[3]) == 0 {
				err = fail(ErrOperandMissing)
				return
			}
			reg, ok := regMap[strings.ToLower(m[2])]
			if !ok {
				err = fail(ErrRegisterInvalid)
				return
			}
			var mode AddrMode
			var addr uint16
			mode, addr, link, err = asm.operandOf(m[3])
			if err != nil {
				err = fail(err)
				return
			}
			code = MakeCode(op, reg, mode, addr)
			words = append(words, strings.ToLower(m[2]), m[3])
		}

		opcode := Opcode{
			LineNo:    lineno,
			Addr:      len(prog.Opcodes),
			Words:     words,
			Code:      code,
			LinkLabel: link,
		}
		if asm.Verbose {
			log.Printf("asm: %03x: %04x %v", opcode.Addr, uint16(code), strings.Join(words, " "))
		}
		prog.Opcodes = append(prog.Opcodes, opcode)
	}
	if err = scanner.Err(); err != nil {
		return
	}

	// Resolve deferred label references.
	for n := range prog.Opcodes {
		op := &prog.Opcodes[n]
		if len(op.LinkLabel) == 0 {
			continue
		}
		addr, ok := asm.Label[op.LinkLabel]
		if !ok {
			err = ErrSyntax{LineNo: op.LineNo, Line: strings.Join(op.Words, " "),
				Err: ErrLabelMissing(op.LinkLabel)}
			return
		}
		if addr > CONST_MASK {
			err = ErrSyntax{LineNo: op.LineNo, Line: strings.Join(op.Words, " "),
				Err: ErrAddressRange}
			return
		}
		op.Code |= Code(addr)
	}

	return
}
