package main

import (
	"fmt"
	"os"

	"github.com/mithro/ai-shenanigans-for-bmcs/parser"
	"github.com/olekukonko/tablewriter"
	kingpin "gopkg.in/alecthomas/kingpin.v2"
)

var (
	scan_command = app.Command(
		"scan", "Find boot images embedded in a file (e.g. a flash dump).")

	scan_command_file_arg = scan_command.Arg(
		"file", "The file to scan",
	).Required().File()
)

func doScan() {
	data, closer, err := mapFile(*scan_command_file_arg)
	kingpin.FatalIfError(err, "Can not read %v", (*scan_command_file_arg).Name())
	defer closer()

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{
		"Offset",
		"Version",
		"Flags",
		"Flash",
		"RAM",
		"Payload",
		"Vendor",
	})
	defer table.Render()

	for _, offset := range parser.FindBootHeaders(data) {
		header, err := parser.ParseBootHeader(data[offset:])
		if err != nil {
			continue
		}

		table.Append([]string{
			fmt.Sprintf("%#x", offset),
			header.VersionString(),
			fmt.Sprintf("%#x", uint32(header.Flags)),
			fmt.Sprintf("0x%08x", header.FlashAddress),
			fmt.Sprintf("0x%08x", header.RAMAddress),
			fmt.Sprintf("%d", header.PayloadSize),
			header.VendorTag,
		})
	}
}

func init() {
	command_handlers = append(command_handlers, func(command string) bool {
		switch command {
		case scan_command.FullCommand():
			doScan()
		default:
			return false
		}
		return true
	})
}
