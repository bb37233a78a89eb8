package parser

const (
	// Sliding window size - must be a power of 2.
	LZSS2_N = 4096

	// Look-ahead size. Only used by the encoder to size the window
	// but the decoder keeps the same layout.
	LZSS2_F = 18

	// Back-references encode length - LZSS2_THRESHOLD.
	LZSS2_THRESHOLD = 2

	// The window is pre-filled with spaces.
	LZSS2_FILL = 0x20
)

// ringBuffer is the decoder's history. Positions are taken modulo
// LZSS2_N so the trailing LZSS2_F-1 slots are never addressed while
// decoding.
type ringBuffer struct {
	buf    [LZSS2_N + LZSS2_F - 1]byte
	cursor int
}

func newRingBuffer() *ringBuffer {
	self := &ringBuffer{cursor: LZSS2_N - LZSS2_F}
	for i := range self.buf {
		self.buf[i] = LZSS2_FILL
	}
	return self
}

// Put stores b at the cursor and advances it.
func (self *ringBuffer) Put(b byte) {
	self.buf[self.cursor] = b
	self.cursor = (self.cursor + 1) & (LZSS2_N - 1)
}

func (self *ringBuffer) Get(pos int) byte {
	return self.buf[pos&(LZSS2_N-1)]
}
