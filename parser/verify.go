package parser

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
)

type IntegrityStatus int

const (
	// Nobody checked the trailer. This is the normal state of
	// affairs because its algorithm is not known.
	IntegrityUnknown IntegrityStatus = iota
	IntegrityValid
	IntegrityMismatch
)

func (self IntegrityStatus) String() string {
	switch self {
	case IntegrityValid:
		return "valid"
	case IntegrityMismatch:
		return "mismatch"
	default:
		return "unknown (not verified)"
	}
}

// A Verifier checks the trailing integrity field of a container.
type Verifier interface {
	Name() string
	Verify(header *BootHeader) (IntegrityStatus, error)
}

type noVerification struct{}

func (self noVerification) Name() string {
	return "none"
}

func (self noVerification) Verify(header *BootHeader) (IntegrityStatus, error) {
	return IntegrityUnknown, nil
}

// NoVerification is the default: the trailer is reported but never
// checked.
var NoVerification Verifier = noVerification{}

// CRC32Verifier tries the IEEE CRC-32 over part of the container.
// No firmware release seen so far matches it - it exists to make
// trying candidates cheap.
type CRC32Verifier struct {
	// Include the header in the checksum, otherwise just the
	// payload.
	IncludeHeader bool
}

func (self CRC32Verifier) Name() string {
	if self.IncludeHeader {
		return "crc32-all"
	}
	return "crc32-payload"
}

func (self CRC32Verifier) Verify(header *BootHeader) (IntegrityStatus, error) {
	data := header.Payload()
	if self.IncludeHeader {
		data = header.Covered()
	}

	crc := crc32.ChecksumIEEE(data)
	Printf("%v: calculated 0x%08x stored 0x%08x\n", self.Name(), crc, header.Trailer)

	// Accept the stored value in either byte order.
	var swapped [4]byte
	binary.LittleEndian.PutUint32(swapped[:], header.Trailer)
	if crc == header.Trailer || crc == binary.BigEndian.Uint32(swapped[:]) {
		return IntegrityValid, nil
	}
	return IntegrityMismatch, nil
}

// GetVerifier looks up a verifier by the name used on the command
// line.
func GetVerifier(name string) (Verifier, error) {
	for _, v := range []Verifier{
		NoVerification,
		CRC32Verifier{},
		CRC32Verifier{IncludeHeader: true},
	} {
		if v.Name() == name {
			return v, nil
		}
	}
	return nil, fmt.Errorf("Unknown verifier %v", name)
}
