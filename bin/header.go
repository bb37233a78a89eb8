package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mithro/ai-shenanigans-for-bmcs/parser"
	"github.com/olekukonko/tablewriter"
	kingpin "gopkg.in/alecthomas/kingpin.v2"
)

var (
	header_command = app.Command(
		"header", "Inspect the boot header.")

	header_command_file_arg = header_command.Arg(
		"file", "The firmware image to inspect",
	).Required().File()

	header_command_image_offset = header_command.Flag(
		"image_offset", "The offset of the container in the file.",
	).Default("0").Int64()

	header_command_json = header_command.Flag(
		"json", "Print the image model as JSON.").Bool()
)

func doHeader() {
	image := getImage(*header_command_file_arg,
		*header_command_image_offset, parser.GetDefaultOptions())

	if *debug_flag {
		parser.Debug(parser.ModelImage(image))
	}

	if *header_command_json {
		serialized, err := json.MarshalIndent(
			parser.ModelImage(image), "", " ")
		kingpin.FatalIfError(err, "Marshal")

		fmt.Println(string(serialized))
		return
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Field", "Value"})
	table.SetAutoWrapText(false)
	table.SetCaption(true, fmt.Sprintf(
		"Integrity: %v", image.Integrity))

	dict := image.Header.Dict()
	for _, k := range dict.Keys() {
		v, _ := dict.Get(k)
		table.Append([]string{k, fmt.Sprintf("%v", v)})
	}
	table.Render()
}

func init() {
	command_handlers = append(command_handlers, func(command string) bool {
		switch command {
		case header_command.FullCommand():
			doHeader()
		default:
			return false
		}
		return true
	})
}
