package parser

import (
	"bytes"
)

// FindBootHeaders returns the offsets of all containers embedded in
// data. A hit needs the signature and a header which parses.
func FindBootHeaders(data []byte) []int64 {
	STATS.Inc_FindBootHeaders()

	result := []int64{}
	signature := []byte(BOOT_SIGNATURE)

	start := 0
	for {
		idx := bytes.Index(data[start:], signature)
		if idx < 0 {
			return result
		}

		pos := start + idx
		start = pos + 1

		// The signature lives at +8 into the header.
		offset := pos - 0x08
		if offset < 0 {
			continue
		}

		_, err := ParseBootHeader(data[offset:])
		if err != nil {
			DebugPrint("FindBootHeaders: %#x: %v\n", offset, err)
			continue
		}

		result = append(result, int64(offset))
	}
}
