package parser

import (
	"encoding/binary"
)

// testContainer describes a bootHdr container to build for tests.
type testContainer struct {
	NetOSHeaderSize uint32
	VendorTag       []byte
	Signature       string
	Version         uint32
	Flags           BootFlags
	FlashAddress    uint32
	RAMAddress      uint32
	Payload         []byte
	Trailer         uint32
}

func defaultTestContainer(payload []byte) *testContainer {
	return &testContainer{
		NetOSHeaderSize: BOOT_HEADER_FIXED_SIZE,
		VendorTag:       []byte("HPPDU00\x00"),
		Signature:       BOOT_SIGNATURE,
		Version:         0x0704,
		Flags:           BL_WRITE_TO_FLASH | BL_LZSS2_COMPRESSED,
		FlashAddress:    0x50100000,
		RAMAddress:      0x20000000,
		Payload:         payload,
		Trailer:         0xDEADBEEF,
	}
}

func (self *testContainer) Bytes() []byte {
	complete := self.NetOSHeaderSize + uint32(len(self.VendorTag))

	result := make([]byte, self.NetOSHeaderSize)
	binary.BigEndian.PutUint32(result[0x00:], complete)
	binary.BigEndian.PutUint32(result[0x04:], self.NetOSHeaderSize)
	copy(result[0x08:0x10], self.Signature)
	binary.BigEndian.PutUint32(result[0x10:], self.Version)
	binary.BigEndian.PutUint32(result[0x14:], uint32(self.Flags))
	binary.BigEndian.PutUint32(result[0x18:], self.FlashAddress)
	binary.BigEndian.PutUint32(result[0x1C:], self.RAMAddress)
	binary.BigEndian.PutUint32(result[0x20:], uint32(len(self.Payload)))

	result = append(result, self.VendorTag...)
	result = append(result, self.Payload...)

	var trailer [4]byte
	binary.BigEndian.PutUint32(trailer[:], self.Trailer)
	return append(result, trailer[:]...)
}

// literalStream encodes data using only literal tokens.
func literalStream(data []byte) []byte {
	result := []byte{}
	for len(data) > 0 {
		n := len(data)
		if n > 8 {
			n = 8
		}
		result = append(result, byte(0xFF>>(8-n)))
		result = append(result, data[:n]...)
		data = data[n:]
	}
	return result
}
