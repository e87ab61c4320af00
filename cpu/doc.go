// Package cpu implements the AX16 microprocessor and assembler.
//
// The AX16 is a 16-bit von-Neumann machine: 4096 words of memory shared
// by code and data, an accumulator (ACC), an index register (X), a
// program counter, and a six-flag status register. Each instruction is
// one 16-bit word carrying a 3-bit opcode, a register-select bit, a
// 2-bit addressing mode, and a 6-bit address constant; opcode 7 escapes
// to a 2-bit extended opcode for halt and interrupt control.
//
// The assembler provides the AX16 assembly language, supporting labels,
// equates, data directives, and compile-time expression evaluation.
package cpu
