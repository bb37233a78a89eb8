package main

import (
	"fmt"

	"github.com/mithro/ai-shenanigans-for-bmcs/parser"
)

var (
	vectors_command = app.Command(
		"vectors", "Check the image starts with an exception vector table.")

	vectors_command_file_arg = vectors_command.Arg(
		"file", "The firmware image to inspect",
	).Required().File()

	vectors_command_image_offset = vectors_command.Flag(
		"image_offset", "The offset of the container in the file.",
	).Default("0").Int64()
)

func doVectors() {
	image := getImage(*vectors_command_file_arg,
		*vectors_command_image_offset, parser.GetDefaultOptions())

	table := parser.CheckVectorTable(image.Data, image.Header.RAMAddress)
	fmt.Println(table.DebugString())

	order := table.Plausible()
	if order == nil {
		fmt.Println("No plausible vector table found")
		return
	}
	fmt.Printf("Looks like a valid ARM vector table (%v)\n", order.ByteOrder)
}

func init() {
	command_handlers = append(command_handlers, func(command string) bool {
		switch command {
		case vectors_command.FullCommand():
			doVectors()
		default:
			return false
		}
		return true
	})
}
