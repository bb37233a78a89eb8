package parser

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/pkg/errors"
)

const (
	// Sanity limit when sizing a container from an untrusted header.
	MAX_CONTAINER_SIZE = 256 * 1024 * 1024
)

type OffsetReader struct {
	Offset int64
	Reader io.ReaderAt
}

func (self *OffsetReader) ReadAt(buf []byte, offset int64) (int, error) {
	return self.Reader.ReadAt(buf, offset+self.Offset)
}

// ReadContainer carves a single container starting at offset out of
// reader (e.g. a flash dump). Only the bytes the header accounts for
// are returned.
func ReadContainer(reader io.ReaderAt, offset int64) ([]byte, error) {
	r := &OffsetReader{Offset: offset, Reader: reader}

	prefix := make([]byte, BOOT_HEADER_FIXED_SIZE)
	n, err := r.ReadAt(prefix, 0)
	if err != nil && err != io.EOF {
		return nil, errors.Wrapf(err, "reading header at %#x", offset)
	}

	if n >= 0x10 && !bytes.Equal(prefix[0x08:0x10], []byte(BOOT_SIGNATURE)) {
		return nil, &FormatError{
			Field:   "Signature",
			Message: fmt.Sprintf("no boot header at %#x", offset),
		}
	}

	if n < len(prefix) {
		return nil, &TruncationError{
			Offset: offset, Need: int64(len(prefix)), Have: int64(n)}
	}

	complete_header_size := binary.BigEndian.Uint32(prefix[0x00:])
	payload_size := binary.BigEndian.Uint32(prefix[0x20:])
	size := int64(complete_header_size) + int64(payload_size) + TRAILER_SIZE
	if size > MAX_CONTAINER_SIZE {
		return nil, &FormatError{
			Field:   "PayloadSize",
			Message: fmt.Sprintf("container of %d bytes is implausible", size),
		}
	}

	DebugPrint("ReadContainer: %#x bytes at %#x\n", size, offset)

	buf := make([]byte, size)
	n, err = r.ReadAt(buf, 0)
	if err != nil && err != io.EOF {
		return nil, errors.Wrapf(err, "reading container at %#x", offset)
	}
	buf = buf[:n]

	// Make sure what we read holds together.
	_, err = ParseBootHeader(buf)
	if err != nil {
		return nil, err
	}

	return buf, nil
}
