package cpu

const (
	MEM_SIZE = 4096  // Memory size in 16-bit words.
	MEM_MASK = 0xfff // Address mask; all accesses wrap modulo MEM_SIZE.
)

// Memory is the flat word-addressed store shared by code and data.
// Every access wraps modulo MEM_SIZE, so an indexed effective address
// of constant+X never indexes past the array.
type Memory [MEM_SIZE]uint16

// Read returns the word at addr, wrapped to the memory size.
func (m *Memory) Read(addr uint16) uint16 {
	return m[addr&MEM_MASK]
}

// Write stores a word at addr, wrapped to the memory size.
func (m *Memory) Write(addr uint16, value uint16) {
	m[addr&MEM_MASK] = value
}

// Reset zeroes all of memory.
func (m *Memory) Reset() {
	clear(m[:])
}

// Load installs a program image at address 0. Cells beyond the image
// keep their current contents.
func (m *Memory) Load(words []uint16) (err error) {
	if len(words) > MEM_SIZE {
		err = ErrImageTooBig
		return
	}
	copy(m[:], words)

	return
}
