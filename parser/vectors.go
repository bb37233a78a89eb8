package parser

import (
	"encoding/binary"
	"fmt"
	"strings"
)

var vector_names = []string{
	"Reset", "Undef", "SWI", "PAbort", "DAbort", "Reserved", "IRQ", "FIQ",
}

const (
	VECTOR_BRANCH       = "branch"
	VECTOR_LITERAL_LOAD = "ldr_pc"
	VECTOR_NOP          = "nop"
	VECTOR_OTHER        = "other"

	ARM_NOP = 0xE1A00000 // mov r0, r0
)

type VectorEntry struct {
	Name string
	Word uint32
	Kind string

	// Only for branches.
	Link   bool
	Target uint32
}

func (self *VectorEntry) String() string {
	switch self.Kind {
	case VECTOR_BRANCH:
		op := "B"
		if self.Link {
			op = "BL"
		}
		return fmt.Sprintf("%-8s: %s 0x%08x", self.Name, op, self.Target)
	case VECTOR_LITERAL_LOAD:
		return fmt.Sprintf("%-8s: LDR PC, [PC, #%#x]", self.Name, self.Word&0xFFF)
	case VECTOR_NOP:
		return fmt.Sprintf("%-8s: NOP", self.Name)
	}
	return fmt.Sprintf("%-8s: 0x%08x", self.Name, self.Word)
}

// The vector table read in one byte order.
type VectorOrder struct {
	ByteOrder    string
	Entries      []*VectorEntry
	Branches     int
	LiteralLoads int
	Nops         int
}

// Plausible means most of the vectors jump somewhere - which is what
// a reset vector table looks like.
func (self *VectorOrder) Plausible() bool {
	return self.Branches >= 4 || self.LiteralLoads >= 4
}

type VectorTable struct {
	Base   uint32
	Orders []*VectorOrder
}

// CheckVectorTable classifies the first eight words of data as ARM
// exception vectors, in both byte orders. base is the address the
// image is loaded at.
func CheckVectorTable(data []byte, base uint32) *VectorTable {
	return &VectorTable{
		Base: base,
		Orders: []*VectorOrder{
			checkVectors(data, base, "LE", binary.LittleEndian),
			checkVectors(data, base, "BE", binary.BigEndian),
		},
	}
}

func checkVectors(data []byte, base uint32,
	name string, order binary.ByteOrder) *VectorOrder {
	result := &VectorOrder{ByteOrder: name}

	for i := 0; i < len(vector_names) && i*4+4 <= len(data); i++ {
		word := order.Uint32(data[i*4:])
		entry := &VectorEntry{
			Name: vector_names[i],
			Word: word,
			Kind: VECTOR_OTHER,
		}

		switch {
		case word&0x0F000000 == 0x0A000000:
			// 24 bit signed word offset relative to pc+8.
			offset := int32(word<<8) >> 8
			entry.Kind = VECTOR_BRANCH
			entry.Link = word&0x01000000 != 0
			entry.Target = base + uint32(i*4+8) + uint32(offset<<2)
			result.Branches++

		case word&0x0FFF0000 == 0x059F0000:
			entry.Kind = VECTOR_LITERAL_LOAD
			result.LiteralLoads++

		case word == ARM_NOP:
			entry.Kind = VECTOR_NOP
			result.Nops++
		}

		result.Entries = append(result.Entries, entry)
	}

	return result
}

// Plausible returns the first byte order that looks like a vector
// table, or nil.
func (self *VectorTable) Plausible() *VectorOrder {
	for _, order := range self.Orders {
		if order.Plausible() {
			return order
		}
	}
	return nil
}

func (self *VectorTable) DebugString() string {
	result := []string{fmt.Sprintf("[VectorTable] @ 0x%08x", self.Base)}
	for _, order := range self.Orders {
		result = append(result, fmt.Sprintf(
			"  %s: B=%d LDR PC=%d NOP=%d plausible=%v", order.ByteOrder,
			order.Branches, order.LiteralLoads, order.Nops, order.Plausible()))
		for _, entry := range order.Entries {
			result = append(result, "    "+entry.String())
		}
	}
	return strings.Join(result, "\n")
}
