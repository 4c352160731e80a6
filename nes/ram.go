package nes

// RAM is a plain read/write memory; callers translate addresses to offsets.
type RAM struct {
	data []byte
}

// NewRAM creates a RAM of size bytes, used for the CPU work RAM and the
// cartridge trainer.
func NewRAM(size int) *RAM {
	return &RAM{data: make([]byte, size)}
}

// read reads data
func (r *RAM) read(offset uint16) byte {
	return r.data[offset]
}

// write writes data
func (r *RAM) write(offset uint16, x byte) {
	r.data[offset] = x
}
