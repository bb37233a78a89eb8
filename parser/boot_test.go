package parser

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseBootHeader(t *testing.T) {
	assert := assert.New(t)

	payload := []byte{0xFF, 1, 2, 3, 4, 5, 6, 7, 8}
	data := defaultTestContainer(payload).Bytes()

	header, err := ParseBootHeader(data)
	assert.NoError(err)

	assert.Equal(uint32(0x2C), header.CompleteHeaderSize)
	assert.Equal(uint32(0x24), header.NetOSHeaderSize)
	assert.Equal("bootHdr", header.SignatureString())
	assert.Equal("7.4", header.VersionString())
	assert.Equal(BL_WRITE_TO_FLASH|BL_LZSS2_COMPRESSED, header.Flags)
	assert.True(header.IsCompressed())
	assert.Equal(uint32(0x50100000), header.FlashAddress)
	assert.Equal(uint32(0x20000000), header.RAMAddress)
	assert.Equal(uint32(len(payload)), header.PayloadSize)
	assert.Equal("HPPDU00", header.VendorTag)
	assert.Equal(uint32(0xDEADBEEF), header.Trailer)

	assert.Equal(int64(0x2C), header.PayloadStart())
	assert.Equal(int64(0x2C+9), header.PayloadEnd())
	assert.Equal(int64(len(data)), header.ContainerSize())
	assert.True(header.SizeMatches())
	assert.Equal(payload, header.Payload())
	assert.Equal(data[:len(data)-4], header.Covered())

	// Parsing the same bytes again gives the same answer.
	again, err := ParseBootHeader(data)
	assert.NoError(err)
	assert.Equal(header, again)
}

func TestPayloadIsReadOnlyView(t *testing.T) {
	data := defaultTestContainer([]byte{0xFF, 1}).Bytes()
	header, err := ParseBootHeader(data)
	assert.NoError(t, err)

	// Appending must not clobber the trailer.
	_ = append(header.Payload(), 0x55, 0x55, 0x55, 0x55)
	assert.Equal(t, []byte{0xDE, 0xAD, 0xBE, 0xEF}, data[len(data)-4:])
}

func TestParseBootHeaderTrailingData(t *testing.T) {
	data := defaultTestContainer([]byte{0xFF, 1}).Bytes()
	data = append(data, 0, 0, 0, 0)

	header, err := ParseBootHeader(data)
	assert.NoError(t, err)
	assert.False(t, header.SizeMatches())
	assert.Equal(t, uint32(0xDEADBEEF), header.Trailer)
}

func TestParseBootHeaderSignature(t *testing.T) {
	for _, signature := range []string{
		"bootHdr1",
		"BOOTHDR\x00",
		"\x00\x00\x00\x00\x00\x00\x00\x00",
		"bootHd\x00\x00",
	} {
		container := defaultTestContainer([]byte{0xFF, 1})
		container.Signature = signature

		_, err := ParseBootHeader(container.Bytes())
		assert.True(t, IsFormatError(err), "signature %q: %v", signature, err)
		assert.False(t, IsTruncationError(err))
	}

	// Short garbage with a bad signature is still the wrong format.
	_, err := ParseBootHeader([]byte("0123456789abcdef01"))
	assert.True(t, IsFormatError(err))
}

func TestParseBootHeaderSizes(t *testing.T) {
	assert := assert.New(t)
	data := defaultTestContainer([]byte{0xFF, 1, 2, 3}).Bytes()

	type testCase struct {
		name   string
		mutate func(data []byte) []byte
		format bool
	}

	for _, testcase := range []testCase{
		{"complete header smaller than NET+OS header", func(data []byte) []byte {
			binary.BigEndian.PutUint32(data[0x00:], 0x20)
			binary.BigEndian.PutUint32(data[0x04:], 0x24)
			return data
		}, true},

		{"NET+OS header smaller than the fixed fields", func(data []byte) []byte {
			binary.BigEndian.PutUint32(data[0x04:], 0x10)
			return data
		}, true},

		{"complete header past the end", func(data []byte) []byte {
			binary.BigEndian.PutUint32(data[0x00:], 0x1000)
			return data
		}, false},

		{"payload past the end", func(data []byte) []byte {
			binary.BigEndian.PutUint32(data[0x20:], 0x1000)
			return data
		}, false},

		{"missing trailer byte", func(data []byte) []byte {
			return data[:len(data)-1]
		}, false},

		{"only the signature", func(data []byte) []byte {
			return data[:0x10]
		}, false},

		{"too short for a signature", func(data []byte) []byte {
			return data[:4]
		}, false},
	} {
		buf := testcase.mutate(append([]byte{}, data...))
		_, err := ParseBootHeader(buf)
		assert.Error(err, testcase.name)

		if testcase.format {
			assert.True(IsFormatError(err), "%v: %v", testcase.name, err)
		} else {
			assert.True(IsTruncationError(err), "%v: %v", testcase.name, err)
		}
	}
}

func TestVersionString(t *testing.T) {
	for _, testcase := range []struct {
		version  uint32
		expected string
	}{
		{0x0000, "pre-7.4 (0x0000)"},
		{0x0703, "pre-7.4 (0x0703)"},
		{0x0704, "7.4"},
		{0x0705, "7.5"},
		{0x0A01, "10.1"},
		{0x10000, "unknown (0x00010000)"},
	} {
		header := &BootHeader{Version: testcase.version}
		assert.Equal(t, testcase.expected, header.VersionString())
	}
}

func TestBootFlags(t *testing.T) {
	assert := assert.New(t)

	flags := BootFlags(0x09)
	assert.True(flags.IsSet("BL_WRITE_TO_FLASH"))
	assert.True(flags.IsSet("BL_LZSS2_COMPRESSED"))
	assert.False(flags.IsSet("BL_EXECUTE_FROM_ROM"))
	assert.False(flags.IsSet("NO_SUCH_FLAG"))
	assert.Equal([]string{"BL_WRITE_TO_FLASH", "BL_LZSS2_COMPRESSED"}, flags.Names())

	// Undocumented bits are not named.
	assert.Equal([]string{"BL_BYPASS_IMGLEN_CHECK"}, BootFlags(0x80000020).Names())
	assert.Equal([]string{}, BootFlags(0).Names())

	all := BootFlags(0x3F)
	assert.Equal([]string{
		"BL_WRITE_TO_FLASH",
		"BL_LZSS_COMPRESSED_MAYBE",
		"BL_EXECUTE_FROM_ROM",
		"BL_LZSS2_COMPRESSED",
		"BL_BYPASS_CRC_CHECK",
		"BL_BYPASS_IMGLEN_CHECK",
	}, all.Names())
}
