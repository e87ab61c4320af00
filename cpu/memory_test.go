package cpu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemory_Wrap(t *testing.T) {
	assert := assert.New(t)

	m := &Memory{}
	m.Write(0x1005, 0xbeef)
	assert.Equal(uint16(0xbeef), m[5])
	assert.Equal(uint16(0xbeef), m.Read(5))
	assert.Equal(uint16(0xbeef), m.Read(0xf005))

	m[MEM_SIZE-1] = 0x1234
	assert.Equal(uint16(0x1234), m.Read(0xffff))
}

func TestMemory_Load(t *testing.T) {
	assert := assert.New(t)

	m := &Memory{}
	m[100] = 0x5555

	err := m.Load([]uint16{1, 2, 3})
	assert.NoError(err)
	assert.Equal(uint16(1), m[0])
	assert.Equal(uint16(3), m[2])
	// Cells beyond the image are untouched.
	assert.Equal(uint16(0x5555), m[100])
}

func TestMemory_Load_TooBig(t *testing.T) {
	assert := assert.New(t)

	m := &Memory{}
	err := m.Load(make([]uint16, MEM_SIZE+1))
	assert.True(errors.Is(err, ErrImageTooBig))
}

func TestMemory_Reset(t *testing.T) {
	assert := assert.New(t)

	m := &Memory{}
	m[0] = 1
	m[MEM_SIZE-1] = 2
	m.Reset()
	assert.Equal(Memory{}, *m)
}
