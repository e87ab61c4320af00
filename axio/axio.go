// Package axio reads and writes AX16 program image files.
//
// An image file is a text listing with one 16-bit word per line, hex or
// decimal, with an optional trailing comma and '//' comment:
//
//	0x305, // ld acc,[5]
//	0xE00, // halt
//
// Lines that are blank or start with ';', '#' or '/' are skipped.
package axio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ezrec/ax16/cpu"
)

// Load reads a program image, one memory word per line, starting at
// address 0.
func Load(in io.Reader) (words []uint16, err error) {
	lineno := 0
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		lineno++
		raw := scanner.Text()
		line := strings.TrimSpace(raw)
		if len(line) == 0 {
			continue
		}
		switch line[0] {
		case ';', '#', '/':
			continue
		}
		if n := strings.Index(line, "//"); n >= 0 {
			line = line[:n]
		}
		if n := strings.Index(line, ","); n >= 0 {
			line = line[:n]
		}
		line = strings.TrimSpace(line)
		if len(line) == 0 {
			continue
		}

		var v64 uint64
		v64, err = strconv.ParseUint(line, 0, 16)
		if err != nil {
			err = ErrImage{LineNo: lineno, Line: raw, Err: ErrWordInvalid}
			return
		}

		if len(words) == cpu.MEM_SIZE {
			err = ErrImageSize
			return
		}
		words = append(words, uint16(v64))
	}
	err = scanner.Err()

	return
}

// Save writes a program as an image file. Instruction words carry
// their source text as a comment; data cells are labeled with their
// address.
func Save(out io.Writer, prog *cpu.Program) (err error) {
	image := prog.Image()
	ncode := len(prog.Opcodes)

	for addr, word := range image {
		var comment string
		if addr < ncode {
			comment = strings.Join(prog.Opcodes[addr].Words, " ")
		} else {
			comment = fmt.Sprintf("mem[%d]", addr)
		}
		_, err = fmt.Fprintf(out, "0x%03X, // %v\n", word, comment)
		if err != nil {
			return
		}
	}

	return
}
