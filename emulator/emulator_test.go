package emulator

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezrec/ax16/cpu"
)

func TestEmulator(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	assert.False(emu.Verbose)
	assert.NotNil(emu.Cpu)
	assert.NotNil(emu.Program)
}

func doRun(t *testing.T, program []string) (emu *Emulator) {
	t.Helper()
	require := require.New(t)

	emu = NewEmulator()

	asm := &cpu.Assembler{}
	for key, value := range emu.Defines() {
		asm.Predefine(key, value)
	}
	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	require.NoError(err)
	emu.Program = prog

	err = emu.Reset()
	require.NoError(err)

	_, err = emu.Run(10000)
	require.NoError(err)
	require.True(emu.Cpu.Halted())

	return
}

func TestEmulatorSum(t *testing.T) {
	assert := assert.New(t)

	emu := doRun(t, []string{
		"ld acc,[5]",
		"add acc,[6]",
		"add acc,[7]",
		"st acc,[8]",
		"halt",
		"mem[5] = 1",
		"mem[6] = 2",
		"mem[7] = 4",
	})

	assert.Equal(uint16(7), emu.Cpu.Mem.Read(8))
	assert.Equal(uint16(7), emu.Cpu.Acc)
	assert.False(emu.Cpu.Status.Z)
	assert.True(emu.Cpu.Status.H)
}

func TestEmulatorSubtract(t *testing.T) {
	assert := assert.New(t)

	// Adding 0xFFFE is a two's-complement subtract by 2: 8 - 2 == 6.
	emu := doRun(t, []string{
		"ld acc,[10]",
		"add acc,[11]",
		"st acc,[12]",
		"halt",
		"mem[10] = 8",
		"mem[11] = 0xFFFE",
	})

	assert.Equal(uint16(6), emu.Cpu.Mem.Read(12))
}

func TestEmulatorIndexed(t *testing.T) {
	assert := assert.New(t)

	// With X == 2, [10+x] must read mem[12], not mem[10].
	emu := doRun(t, []string{
		"ld x,[4]",
		"ld acc,[10+x]",
		"halt",
		"mem[4] = 2",
		"mem[10] = 0x11",
		"mem[12] = 0x99",
	})

	assert.Equal(uint16(2), emu.Cpu.X)
	assert.Equal(uint16(0x99), emu.Cpu.Acc)
}

func TestEmulatorIndirect(t *testing.T) {
	assert := assert.New(t)

	emu := doRun(t, []string{
		"ld acc,[[4]]",
		"halt",
		"mem[4] = 30",
		"mem[30] = 0x7777",
	})

	assert.Equal(uint16(0x7777), emu.Cpu.Acc)
}

func TestEmulatorCycleLimit(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	emu := NewEmulator()

	asm := &cpu.Assembler{}
	prog, err := asm.Parse(strings.NewReader(strings.Join([]string{
		"loop:",
		"br x,[loop]",
	}, "\n")))
	require.NoError(err)
	emu.Program = prog

	require.NoError(emu.Reset())

	cycles, err := emu.Run(100)
	assert.True(errors.Is(err, ErrCycleLimit))
	assert.Equal(100, cycles)
	assert.False(emu.Cpu.Halted())
}

func TestEmulatorUnknownExtended(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	// An unassigned extended opcode is recoverable; Run continues to
	// the halt.
	emu := NewEmulator()
	require.NoError(emu.Reset())
	require.NoError(emu.Cpu.Mem.Load([]uint16{0xf80, 0xe00}))

	cycles, err := emu.Run(100)
	assert.NoError(err)
	assert.True(emu.Cpu.Halted())
	assert.Equal(2, cycles)
}

func TestEmulatorStepHalted(t *testing.T) {
	assert := assert.New(t)

	emu := doRun(t, []string{"halt"})

	pc := emu.Cpu.Pc
	cycles := emu.Cpu.Cycles

	trace, done, err := emu.Step()
	assert.NoError(err)
	assert.True(done)
	assert.Equal(pc, emu.Cpu.Pc)
	assert.Equal(cycles, emu.Cpu.Cycles)
	assert.True(trace.Status.H)
}

func TestEmulatorStepTrace(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	emu := NewEmulator()

	asm := &cpu.Assembler{}
	prog, err := asm.Parse(strings.NewReader("ld acc,[5]\nhalt\nmem[5] = 3"))
	require.NoError(err)
	emu.Program = prog
	require.NoError(emu.Reset())

	assert.Equal(1, emu.LineNo())

	trace, done, err := emu.Step()
	assert.NoError(err)
	assert.False(done)
	assert.Equal(uint16(0), trace.Addr)
	assert.Equal(prog.Opcodes[0].Code, trace.Code)
	assert.Equal(uint16(3), trace.Acc)

	assert.Equal(2, emu.LineNo())

	_, done, err = emu.Step()
	assert.NoError(err)
	assert.True(done)
}

func TestEmulatorStepError(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	emu := NewEmulator()
	require.NoError(emu.Reset())
	require.NoError(emu.Cpu.Mem.Load([]uint16{0xf80}))

	_, _, err := emu.Step()
	assert.True(errors.Is(err, cpu.ErrExtOpcode))

	var runtime *ErrRuntime
	assert.True(errors.As(err, &runtime))
}

func TestEmulatorResetInstallsImage(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	emu := NewEmulator()

	asm := &cpu.Assembler{}
	prog, err := asm.Parse(strings.NewReader("halt\nmem[20] = 0x1234"))
	require.NoError(err)
	emu.Program = prog

	require.NoError(emu.Reset())
	assert.Equal(uint16(0xe00), emu.Cpu.Mem.Read(0))
	assert.Equal(uint16(0x1234), emu.Cpu.Mem.Read(20))

	// Reset after a run reinstalls the image.
	emu.Cpu.Mem.Write(20, 0)
	require.NoError(emu.Reset())
	assert.Equal(uint16(0x1234), emu.Cpu.Mem.Read(20))
}
