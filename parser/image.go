package parser

import (
	"github.com/pkg/errors"
)

// Image is a loaded firmware image: the header and the payload after
// decompression.
type Image struct {
	Header *BootHeader

	// The decompressed image, or a copy of the payload when the
	// image is stored uncompressed.
	Data []byte

	Compressed bool

	// Set when Options.KeepPartial let a broken image through.
	Partial bool

	Integrity IntegrityStatus
	Verifier  string
}

// LoadImage parses a container held in memory and returns the image
// it carries. Header errors abort before any decoding.
func LoadImage(data []byte, options Options) (*Image, error) {
	STATS.Inc_LoadImage()

	header, err := ParseBootHeader(data)
	if err != nil {
		return nil, err
	}

	result := &Image{
		Header:     header,
		Compressed: header.IsCompressed(),
	}

	if result.Compressed {
		out, err := LZSS2DecompressPartial(header.Payload())
		if err != nil {
			if !options.KeepPartial {
				return nil, errors.Wrap(err, "LZSS2 payload")
			}
			result.Data = out
			result.Partial = true
			return result, errors.Wrap(err, "LZSS2 payload")
		}
		result.Data = out

	} else {
		result.Data = append([]byte{}, header.Payload()...)
	}

	if options.MaxOutputSize > 0 && len(result.Data) > options.MaxOutputSize {
		return nil, errors.Wrapf(OutputTooLargeError,
			"image is %d bytes, limit %d", len(result.Data),
			options.MaxOutputSize)
	}

	verifier := options.Verifier
	if verifier == nil {
		verifier = NoVerification
	}

	result.Verifier = verifier.Name()
	result.Integrity, err = verifier.Verify(header)
	if err != nil {
		return nil, errors.Wrap(err, verifier.Name())
	}

	if result.Integrity == IntegrityUnknown {
		STATS.Inc_IntegrityUnchecked()
	}

	Printf("LoadImage: %d bytes (%v)\n%v\n", len(result.Data),
		result.Integrity, DebugString(header, "  "))

	return result, nil
}
