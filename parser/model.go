package parser

import (
	"fmt"
	"math"

	"github.com/Velocidex/ordereddict"
)

// This file defines a model for loaded images suitable for JSON
// output.

type ImageInformation struct {
	Signature       string
	Version         string
	HeaderSize      uint32
	NetOSHeaderSize uint32
	Flags           []string
	FlashAddress    string
	RAMAddress      string
	PayloadSize     uint32
	VendorTag       string
	Trailer         string
	ContainerSize   int64
	FileSize        int64
	SizeMatches     bool
	Compressed      bool
	ImageSize       int
	Entropy         string
	Integrity       string
}

func ModelImage(image *Image) *ImageInformation {
	header := image.Header
	return &ImageInformation{
		Signature:       header.SignatureString(),
		Version:         header.VersionString(),
		HeaderSize:      header.CompleteHeaderSize,
		NetOSHeaderSize: header.NetOSHeaderSize,
		Flags:           header.Flags.Names(),
		FlashAddress:    fmt.Sprintf("0x%08x", header.FlashAddress),
		RAMAddress:      fmt.Sprintf("0x%08x", header.RAMAddress),
		PayloadSize:     header.PayloadSize,
		VendorTag:       header.VendorTag,
		Trailer:         fmt.Sprintf("0x%08x", header.Trailer),
		ContainerSize:   header.ContainerSize(),
		FileSize:        header.FileSize(),
		SizeMatches:     header.SizeMatches(),
		Compressed:      image.Compressed,
		ImageSize:       len(image.Data),
		Entropy:         fmt.Sprintf("%.4f", Entropy(image.Data)),
		Integrity:       image.Integrity.String(),
	}
}

// Dict returns the header fields in on-disk order.
func (self *BootHeader) Dict() *ordereddict.Dict {
	return ordereddict.NewDict().
		Set("CompleteHeaderSize", fmt.Sprintf("%#x", self.CompleteHeaderSize)).
		Set("NetOSHeaderSize", fmt.Sprintf("%#x", self.NetOSHeaderSize)).
		Set("Signature", self.SignatureString()).
		Set("Version", self.VersionString()).
		Set("Flags", self.Flags.String()).
		Set("FlashAddress", fmt.Sprintf("0x%08x", self.FlashAddress)).
		Set("RAMAddress", fmt.Sprintf("0x%08x", self.RAMAddress)).
		Set("PayloadSize", fmt.Sprintf("%#x", self.PayloadSize)).
		Set("VendorTag", self.VendorTag).
		Set("PayloadStart", fmt.Sprintf("%#x", self.PayloadStart())).
		Set("PayloadEnd", fmt.Sprintf("%#x", self.PayloadEnd())).
		Set("Trailer", fmt.Sprintf("0x%08x", self.Trailer)).
		Set("FileSize", self.FileSize()).
		Set("SizeMatches", self.SizeMatches())
}

// Entropy is the Shannon entropy of data in bits per byte. Packed
// payloads are close to 8, code is usually below 6.5.
func Entropy(data []byte) float64 {
	if len(data) == 0 {
		return 0
	}

	var counts [256]int
	for _, b := range data {
		counts[b]++
	}

	result := 0.0
	total := float64(len(data))
	for _, c := range counts {
		if c == 0 {
			continue
		}
		p := float64(c) / total
		result -= p * math.Log2(p)
	}
	return result
}
