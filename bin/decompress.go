package main

import (
	"fmt"
	"os"

	"github.com/mithro/ai-shenanigans-for-bmcs/parser"
	kingpin "gopkg.in/alecthomas/kingpin.v2"
)

var (
	decompress_command = app.Command(
		"decompress", "Extract the firmware image.")

	decompress_command_file_arg = decompress_command.Arg(
		"file", "The firmware image to extract",
	).Required().File()

	decompress_command_output = decompress_command.Arg(
		"output", "Where to write the image",
	).Required().String()

	decompress_command_image_offset = decompress_command.Flag(
		"image_offset", "The offset of the container in the file.",
	).Default("0").Int64()

	decompress_command_partial = decompress_command.Flag(
		"partial", "Write whatever decodes from a broken stream.").Bool()

	decompress_command_verify = decompress_command.Flag(
		"verify", "Trailer check to try.",
	).Default("none").Enum("none", "crc32-payload", "crc32-all")

	decompress_command_max_size = decompress_command.Flag(
		"max_size", "Refuse images larger than this (0 for no limit).",
	).Default("0").Int()
)

func doDecompress() {
	verifier, err := parser.GetVerifier(*decompress_command_verify)
	kingpin.FatalIfError(err, "Verifier")

	options := parser.GetDefaultOptions()
	options.Verifier = verifier
	options.KeepPartial = *decompress_command_partial
	options.MaxOutputSize = *decompress_command_max_size

	container := getContainer(*decompress_command_file_arg,
		*decompress_command_image_offset)

	image, err := parser.LoadImage(container, options)
	if err != nil && image != nil && image.Partial {
		fmt.Fprintf(os.Stderr, "Warning: %v - keeping %d partial bytes\n",
			err, len(image.Data))
	} else {
		kingpin.FatalIfError(err, "Can not load image")
	}

	err = os.WriteFile(*decompress_command_output, image.Data, 0660)
	kingpin.FatalIfError(err, "Can not write %v", *decompress_command_output)

	fmt.Printf("Wrote %d bytes to %v (compressed %v, load address 0x%08x)\n",
		len(image.Data), *decompress_command_output,
		image.Compressed, image.Header.RAMAddress)

	if image.Integrity == parser.IntegrityUnknown {
		fmt.Printf("Trailer 0x%08x was not verified: its algorithm is unknown\n",
			image.Header.Trailer)
	} else {
		fmt.Printf("Trailer 0x%08x: %v (%v)\n", image.Header.Trailer,
			image.Integrity, image.Verifier)
	}
}

func init() {
	command_handlers = append(command_handlers, func(command string) bool {
		switch command {
		case decompress_command.FullCommand():
			doDecompress()
		default:
			return false
		}
		return true
	})
}
