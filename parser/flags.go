package parser

import (
	"fmt"
	"strings"
)

// Flag bits of the bootHdr flags word. Only BL_LZSS2_COMPRESSED
// changes what LoadImage does, the rest are reported.
const (
	BL_WRITE_TO_FLASH        = BootFlags(1 << 0)
	BL_LZSS_COMPRESSED_MAYBE = BootFlags(1 << 1)
	BL_EXECUTE_FROM_ROM      = BootFlags(1 << 2)
	BL_LZSS2_COMPRESSED      = BootFlags(1 << 3)
	BL_BYPASS_CRC_CHECK      = BootFlags(1 << 4)
	BL_BYPASS_IMGLEN_CHECK   = BootFlags(1 << 5)
)

var flag_names = []struct {
	bit  BootFlags
	name string
}{
	{BL_WRITE_TO_FLASH, "BL_WRITE_TO_FLASH"},
	{BL_LZSS_COMPRESSED_MAYBE, "BL_LZSS_COMPRESSED_MAYBE"},
	{BL_EXECUTE_FROM_ROM, "BL_EXECUTE_FROM_ROM"},
	{BL_LZSS2_COMPRESSED, "BL_LZSS2_COMPRESSED"},
	{BL_BYPASS_CRC_CHECK, "BL_BYPASS_CRC_CHECK"},
	{BL_BYPASS_IMGLEN_CHECK, "BL_BYPASS_IMGLEN_CHECK"},
}

type BootFlags uint32

func (self BootFlags) Has(bit BootFlags) bool {
	return self&bit != 0
}

// IsSet checks a flag by name, e.g. IsSet("BL_LZSS2_COMPRESSED").
func (self BootFlags) IsSet(name string) bool {
	for _, flag := range flag_names {
		if flag.name == name {
			return self.Has(flag.bit)
		}
	}
	return false
}

// Names lists the known flags which are set. Undocumented bits are
// ignored.
func (self BootFlags) Names() []string {
	result := []string{}
	for _, flag := range flag_names {
		if self.Has(flag.bit) {
			result = append(result, flag.name)
		}
	}
	return result
}

func (self BootFlags) String() string {
	return fmt.Sprintf("0x%08x (%s)", uint32(self), strings.Join(self.Names(), " | "))
}
