package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mithro/ai-shenanigans-for-bmcs/parser"
	kingpin "gopkg.in/alecthomas/kingpin.v2"
)

type CommandHandler func(command string) bool

var (
	app = kingpin.New("netos",
		"A tool for inspecting NET+OS firmware images.")

	debug_flag = app.Flag("debug", "Print parser debug output.").Bool()

	stats_flag = app.Flag("stats", "Print parser statistics on exit.").Bool()

	command_handlers []CommandHandler
)

func main() {
	app.HelpFlag.Short('h')
	app.UsageTemplate(kingpin.CompactUsageTemplate)
	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	parser.SetDebug(*debug_flag)

	for _, command_handler := range command_handlers {
		if command_handler(command) {
			break
		}
	}

	if *stats_flag {
		serialized, err := json.MarshalIndent(parser.STATS.Dict(), "", " ")
		kingpin.FatalIfError(err, "Marshal")
		fmt.Fprintln(os.Stderr, string(serialized))
	}
}
