package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCode_Fields(t *testing.T) {
	assert := assert.New(t)

	code := MakeCode(OP_ADD, REG_ACC, MODE_INDEXED, 0x2a)
	assert.Equal(OP_ADD, code.Op())
	assert.Equal(REG_ACC, code.Reg())
	assert.Equal(MODE_INDEXED, code.Mode())
	assert.Equal(uint16(0x2a), code.Const())
	assert.False(code.Extended())
}

func TestCode_KnownEncodings(t *testing.T) {
	assert := assert.New(t)

	// Encodings existing program images rely on.
	table := [](struct {
		name string
		code Code
		word uint16
	}){
		{"ld acc,[5]", MakeCode(OP_LD, REG_ACC, MODE_DIRECT, 5), 0x305},
		{"add acc,[6]", MakeCode(OP_ADD, REG_ACC, MODE_DIRECT, 6), 0x506},
		{"st acc,[8]", MakeCode(OP_ST, REG_ACC, MODE_DIRECT, 8), 0x108},
		{"st x,[0]", MakeCode(OP_ST, REG_X, MODE_DIRECT, 0), 0x000},
		{"halt", MakeCodeExt(EXT_HALT), 0xe00},
		{"ei", MakeCodeExt(EXT_EI), 0xe80},
		{"di", MakeCodeExt(EXT_DI), 0xf00},
	}

	for _, entry := range table {
		assert.Equal(entry.word, uint16(entry.code), entry.name)
		assert.Equal(entry.name, entry.code.String(), entry.name)
	}
}

func TestCode_ExtendedOverlap(t *testing.T) {
	assert := assert.New(t)

	// The extended opcode field repurposes the register-select bit and
	// the upper addressing-mode bit of the primary encoding.
	code := MakeCodeExt(EXT_EI)
	assert.True(code.Extended())
	assert.Equal(EXT_EI, code.Ext())
	assert.Equal(REG_X, code.Reg())
	assert.Equal(MODE_INDEXED, code.Mode())

	code = MakeCodeExt(EXT_DI)
	assert.Equal(EXT_DI, code.Ext())
	assert.Equal(REG_ACC, code.Reg())
	assert.Equal(MODE_DIRECT, code.Mode())
}

func TestCode_ConstMasked(t *testing.T) {
	assert := assert.New(t)

	// Address constants are truncated to 6 bits by the encoder.
	code := MakeCode(OP_LD, REG_X, MODE_DIRECT, 0x7f)
	assert.Equal(uint16(0x3f), code.Const())
}

func TestCode_String(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		code Code
		text string
	}){
		{MakeCode(OP_LD, REG_ACC, MODE_INDIRECT, 3), "ld acc,[[3]]"},
		{MakeCode(OP_ADD, REG_X, MODE_INDEXED, 10), "add x,[10+x]"},
		{MakeCode(OP_BZ, REG_X, MODE_INDIRECT_INDEXED, 7), "bz x,[[7+x]]"},
		{Code(uint16(OP_EXT)<<OPCODE_SHIFT | 3<<EXT_SHIFT), "ext(3)"},
	}

	for _, entry := range table {
		assert.Equal(entry.text, entry.code.String())
	}
}
