package parser

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"
)

const (
	BOOT_SIGNATURE = "bootHdr\x00"

	// Size of the fixed part of the NET+OS header. Newer releases
	// declare a larger NET+OS header but the fields we know about
	// are all in here.
	BOOT_HEADER_FIXED_SIZE = 0x24

	// The unidentified integrity field after the payload.
	TRAILER_SIZE = 4

	// Versions below this are stored as an opaque number.
	VERSION_7_4 = 0x0704
)

// BootHeader is a parsed NET+OS "bootHdr" image header. All fields
// are stored big endian on disk.
type BootHeader struct {
	CompleteHeaderSize uint32
	NetOSHeaderSize    uint32
	Signature          [8]byte
	Version            uint32
	Flags              BootFlags
	FlashAddress       uint32
	RAMAddress         uint32

	// The size of the payload as stored in the container. For
	// compressed images this is the compressed size.
	PayloadSize uint32

	// OEM tag between the NET+OS header and the payload
	// (e.g. "HPPDU00").
	VendorTag string

	// The trailing 4 bytes. We do not know how they are calculated.
	Trailer uint32

	data []byte
}

// ParseBootHeader parses the header at the start of data. The
// returned header refers to data, which must not be modified
// afterwards.
func ParseBootHeader(data []byte) (*BootHeader, error) {
	STATS.Inc_BootHeader()

	if len(data) < 0x10 {
		return nil, &TruncationError{
			Offset: 0, Need: 0x10, Have: int64(len(data))}
	}

	// The signature is checked before anything else so random data
	// is reported as a format error rather than as truncated.
	if !bytes.Equal(data[0x08:0x10], []byte(BOOT_SIGNATURE)) {
		return nil, &FormatError{
			Field: "Signature",
			Message: fmt.Sprintf("expected %q got %q",
				BOOT_SIGNATURE, data[0x08:0x10]),
		}
	}

	if len(data) < BOOT_HEADER_FIXED_SIZE {
		return nil, &TruncationError{
			Offset: 0, Need: BOOT_HEADER_FIXED_SIZE, Have: int64(len(data))}
	}

	self := &BootHeader{
		CompleteHeaderSize: binary.BigEndian.Uint32(data[0x00:]),
		NetOSHeaderSize:    binary.BigEndian.Uint32(data[0x04:]),
		Version:            binary.BigEndian.Uint32(data[0x10:]),
		Flags:              BootFlags(binary.BigEndian.Uint32(data[0x14:])),
		FlashAddress:       binary.BigEndian.Uint32(data[0x18:]),
		RAMAddress:         binary.BigEndian.Uint32(data[0x1C:]),
		PayloadSize:        binary.BigEndian.Uint32(data[0x20:]),
	}
	copy(self.Signature[:], data[0x08:0x10])

	err := self.IsValid()
	if err != nil {
		return nil, err
	}

	if int64(self.CompleteHeaderSize) > int64(len(data)) {
		return nil, &TruncationError{
			Offset: 0,
			Need:   int64(self.CompleteHeaderSize),
			Have:   int64(len(data)),
		}
	}

	if self.TrailerOffset()+TRAILER_SIZE > int64(len(data)) {
		return nil, &TruncationError{
			Offset: self.PayloadStart(),
			Need:   int64(self.PayloadSize) + TRAILER_SIZE,
			Have:   int64(len(data)) - self.PayloadStart(),
		}
	}

	tag := data[self.NetOSHeaderSize:self.CompleteHeaderSize]
	if idx := bytes.IndexByte(tag, 0); idx >= 0 {
		tag = tag[:idx]
	}
	self.VendorTag = string(tag)

	self.Trailer = binary.BigEndian.Uint32(data[self.TrailerOffset():])
	self.data = data

	Printf("ParseBootHeader: %v\n", self.DebugString())

	return self, nil
}

// IsValid checks the relationship between the two header sizes.
func (self *BootHeader) IsValid() error {
	if self.CompleteHeaderSize < self.NetOSHeaderSize {
		return &FormatError{
			Field: "CompleteHeaderSize",
			Message: fmt.Sprintf("complete header size %#x smaller than NET+OS header size %#x",
				self.CompleteHeaderSize, self.NetOSHeaderSize),
		}
	}

	if self.NetOSHeaderSize < BOOT_HEADER_FIXED_SIZE {
		return &FormatError{
			Field: "NetOSHeaderSize",
			Message: fmt.Sprintf("NET+OS header size %#x is too small",
				self.NetOSHeaderSize),
		}
	}

	return nil
}

func (self *BootHeader) PayloadStart() int64 {
	return int64(self.CompleteHeaderSize)
}

func (self *BootHeader) PayloadEnd() int64 {
	return int64(self.CompleteHeaderSize) + int64(self.PayloadSize)
}

func (self *BootHeader) TrailerOffset() int64 {
	return self.PayloadEnd()
}

// ContainerSize is the size the header says the file should be.
func (self *BootHeader) ContainerSize() int64 {
	return self.PayloadEnd() + TRAILER_SIZE
}

// FileSize is the size of the data the header was parsed from.
func (self *BootHeader) FileSize() int64 {
	return int64(len(self.data))
}

// SizeMatches is false when there is extra data after the trailer.
func (self *BootHeader) SizeMatches() bool {
	return self.FileSize() == self.ContainerSize()
}

// Payload returns the stored (possibly compressed) payload. Appending
// to the result never writes into the container.
func (self *BootHeader) Payload() []byte {
	start, end := self.PayloadStart(), self.PayloadEnd()
	return self.data[start:end:end]
}

// Covered returns the header and payload - everything before the
// trailer.
func (self *BootHeader) Covered() []byte {
	end := self.TrailerOffset()
	return self.data[:end:end]
}

func (self *BootHeader) IsCompressed() bool {
	return self.Flags.Has(BL_LZSS2_COMPRESSED)
}

func (self *BootHeader) SignatureString() string {
	return strings.TrimRight(string(self.Signature[:]), "\x00")
}

// VersionString decodes the version field. From 7.4 the high byte
// is the major and the low byte the minor version.
func (self *BootHeader) VersionString() string {
	switch {
	case self.Version < VERSION_7_4:
		return fmt.Sprintf("pre-7.4 (0x%04x)", self.Version)
	case self.Version <= 0xFFFF:
		return fmt.Sprintf("%d.%d", (self.Version>>8)&0xFF, self.Version&0xFF)
	default:
		return fmt.Sprintf("unknown (0x%08x)", self.Version)
	}
}

func (self *BootHeader) DebugString() string {
	result := []string{
		"[BootHeader]",
		fmt.Sprintf("  CompleteHeaderSize: %#x", self.CompleteHeaderSize),
		fmt.Sprintf("  NetOSHeaderSize: %#x", self.NetOSHeaderSize),
		fmt.Sprintf("  Signature: %q", self.SignatureString()),
		fmt.Sprintf("  Version: %s", self.VersionString()),
		fmt.Sprintf("  Flags: %v", self.Flags),
		fmt.Sprintf("  FlashAddress: 0x%08x", self.FlashAddress),
		fmt.Sprintf("  RAMAddress: 0x%08x", self.RAMAddress),
		fmt.Sprintf("  PayloadSize: %#x", self.PayloadSize),
		fmt.Sprintf("  VendorTag: %q", self.VendorTag),
		fmt.Sprintf("  Trailer: 0x%08x @ %#x", self.Trailer, self.TrailerOffset()),
	}
	return strings.Join(result, "\n")
}
