package parser

import (
	"bytes"
	"testing"

	"github.com/alecthomas/assert"
)

func TestOffsetReader(t *testing.T) {
	r := &OffsetReader{
		Offset: 2,
		Reader: bytes.NewReader([]byte("abcd")),
	}

	// Read 1 byte from the end of the buffer.
	buf := make([]byte, 1)
	c, err := r.ReadAt(buf, 1)
	assert.NoError(t, err)
	assert.Equal(t, c, 1)
	assert.Equal(t, buf, []byte{0x64})

	// Read past end.
	buf = make([]byte, 3)
	c, _ = r.ReadAt(buf, 0)
	assert.Equal(t, c, 2)
	assert.Equal(t, buf[:c], []byte("cd"))
}

func makeFlashDump() ([]byte, []byte, []byte) {
	first := defaultTestContainer([]byte{0x03, 'A', 'B', 0xEE, 0xF0}).Bytes()

	second_container := defaultTestContainer([]byte("plain"))
	second_container.Flags = BL_EXECUTE_FROM_ROM
	second_container.VendorTag = []byte("OTHER\x00\x00\x00")
	second := second_container.Bytes()

	dump := bytes.Repeat([]byte{0xFF}, 0x100)

	// A stray signature too close to the start to be a header.
	copy(dump[2:], BOOT_SIGNATURE)

	dump = append(dump, first...)
	dump = append(dump, bytes.Repeat([]byte{0xFF}, 0x33)...)

	// A signature without a valid header around it.
	dump = append(dump, 0, 0, 0, 0, 0, 0, 0, 0)
	dump = append(dump, BOOT_SIGNATURE...)
	dump = append(dump, bytes.Repeat([]byte{0xFF}, 0x40)...)

	dump = append(dump, second...)
	return dump, first, second
}

func TestFindBootHeaders(t *testing.T) {
	dump, first, _ := makeFlashDump()

	second_offset := int64(0x100 + len(first) + 0x33 + 16 + 0x40)
	assert.Equal(t, []int64{0x100, second_offset}, FindBootHeaders(dump))

	assert.Equal(t, []int64{}, FindBootHeaders([]byte("no headers here")))
}

func TestReadContainer(t *testing.T) {
	dump, first, second := makeFlashDump()
	reader := bytes.NewReader(dump)

	offsets := FindBootHeaders(dump)
	assert.Equal(t, 2, len(offsets))

	container, err := ReadContainer(reader, offsets[0])
	assert.NoError(t, err)
	assert.Equal(t, first, container)

	image, err := LoadImage(container, GetDefaultOptions())
	assert.NoError(t, err)
	assert.Equal(t, []byte("ABABA"), image.Data)

	// The last container ends the dump exactly.
	container, err = ReadContainer(reader, offsets[1])
	assert.NoError(t, err)
	assert.Equal(t, second, container)

	header, err := ParseBootHeader(container)
	assert.NoError(t, err)
	assert.Equal(t, "OTHER", header.VendorTag)
	assert.True(t, header.SizeMatches())

	// No header at the start of the dump.
	_, err = ReadContainer(reader, 0)
	assert.True(t, IsFormatError(err))

	// Cut the last container short.
	_, err = ReadContainer(bytes.NewReader(dump[:len(dump)-1]), offsets[1])
	assert.True(t, IsTruncationError(err))
}
