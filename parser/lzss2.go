/*
Decompression support for the LZSS2 variant used by the Digi NET+OS
bootloader to pack firmware images.

This is the classic Okumura LZSS layout: a 4096 byte ring buffer
pre-filled with spaces and a control byte before every group of
eight tokens. A set bit is a literal byte, a clear bit a two byte
back-reference into the ring buffer:

	i, j:  position = i | (j & 0xF0) << 4
	       length   = (j & 0x0F) + THRESHOLD, copying length+1 bytes

There is no length or end marker in the stream - decoding runs until
the input is consumed.
*/

package parser

func LZSS2Decompress(in []byte) ([]byte, error) {
	out, err := LZSS2DecompressPartial(in)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// LZSS2DecompressPartial is like LZSS2Decompress but also returns
// whatever was decoded before an error.
func LZSS2DecompressPartial(in []byte) ([]byte, error) {
	debugLZSS2Decompress("LZSS2Decompress in:\n%s\n", debugHexDump(in))

	window := newRingBuffer()

	// Firmware images roughly double - append grows the rest.
	out := make([]byte, 0, len(in)*2)

	// Index into the in buffer
	i := 0
	literals, references := 0, 0

	// Bit 8 and up count the bits left in the control byte.
	flags := uint(0)

	for i < len(in) {
		flags >>= 1
		if flags&0x100 == 0 {
			flags = uint(in[i]) | 0xFF00
			debugLZSS2Decompress("%d Control %02x @ %#x\n", len(out), in[i], i)
			i++
		}

		// Clean end: the last control byte had bits to spare.
		if i >= len(in) {
			break
		}

		if flags&1 != 0 {
			c := in[i]
			i++

			out = append(out, c)
			window.Put(c)
			literals++
			continue
		}

		if i+1 >= len(in) {
			debugLZSS2Decompress("Back-reference at %#x cut short\n", i)
			STATS.addLZSS2(literals, references, i, len(out))
			return out, &TruncationError{
				Offset: int64(i),
				Need:   2,
				Have:   int64(len(in) - i),
				Err:    IncompleteStreamError,
			}
		}

		position := int(in[i]) | (int(in[i+1]&0xF0) << 4)
		length := int(in[i+1]&0x0F) + LZSS2_THRESHOLD
		i += 2

		debugLZSS2Decompress("  %d: Reference %#03x len %d\n",
			len(out), position, length+1)

		// The copy may overlap the cursor so it has to go byte by
		// byte through the window.
		for k := 0; k <= length; k++ {
			c := window.Get(position + k)
			out = append(out, c)
			window.Put(c)
		}
		references++
	}

	STATS.addLZSS2(literals, references, i, len(out))

	debugLZSS2Decompress("decompression out %v\n", len(out))
	return out, nil
}
