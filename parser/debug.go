package parser

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/davecgh/go-spew/spew"
)

var (
	debug       = false
	LZSS2_debug = false

	NETOS_DEBUG *bool
)

// SetDebug turns on verbose parser output (used by the --debug flag).
func SetDebug(enabled bool) {
	debug = enabled
	LZSS2_debug = enabled
}

func Debug(arg interface{}) {
	spew.Dump(arg)
}

type Debugger interface {
	DebugString() string
}

func DebugString(arg interface{}, indent string) string {
	debugger, ok := arg.(Debugger)
	if debug && ok {
		lines := strings.Split(debugger.DebugString(), "\n")
		for idx, line := range lines {
			lines[idx] = indent + line
		}
		return strings.Join(lines, "\n")
	}

	return ""
}

func Printf(fmt_str string, args ...interface{}) {
	if debug {
		fmt.Printf(fmt_str, args...)
	}
}

func debugLZSS2Decompress(fmt_str string, args ...interface{}) {
	if LZSS2_debug {
		fmt.Printf(fmt_str, args...)
	}
}

// Only dump the head of large buffers - payloads are megabytes.
func debugHexDump(in []byte) string {
	if !LZSS2_debug {
		return ""
	}

	if len(in) > 256 {
		in = in[:256]
	}
	return hex.Dump(in)
}

func DebugPrint(fmt_str string, v ...interface{}) {
	if NETOS_DEBUG == nil {
		// os.Environ() seems very expensive in Go so we cache
		// it.
		for _, x := range os.Environ() {
			if strings.HasPrefix(x, "NETOS_DEBUG=") {
				value := true
				NETOS_DEBUG = &value
				break
			}
		}
	}

	if NETOS_DEBUG == nil {
		value := false
		NETOS_DEBUG = &value
	}

	if *NETOS_DEBUG {
		fmt.Printf(fmt_str, v...)
	}
}
