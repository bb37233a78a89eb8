package parser

import (
	"encoding/json"
	"sync"

	"github.com/Velocidex/ordereddict"
)

var (
	STATS = Stats{}
)

type Stats struct {
	mu sync.Mutex

	BootHeader         int
	LoadImage          int
	LZSS2Decompress    int
	LZSS2Literals      int
	LZSS2References    int
	LZSS2BytesIn       int
	LZSS2BytesOut      int
	FindBootHeaders    int
	IntegrityUnchecked int
}

func (self *Stats) DebugString() string {
	self.mu.Lock()
	defer self.mu.Unlock()

	serialized, _ := json.MarshalIndent(self, " ", " ")
	return string(serialized)
}

// Dict returns the counters in a stable order for display.
func (self *Stats) Dict() *ordereddict.Dict {
	self.mu.Lock()
	defer self.mu.Unlock()

	return ordereddict.NewDict().
		Set("BootHeader", self.BootHeader).
		Set("LoadImage", self.LoadImage).
		Set("LZSS2Decompress", self.LZSS2Decompress).
		Set("LZSS2Literals", self.LZSS2Literals).
		Set("LZSS2References", self.LZSS2References).
		Set("LZSS2BytesIn", self.LZSS2BytesIn).
		Set("LZSS2BytesOut", self.LZSS2BytesOut).
		Set("FindBootHeaders", self.FindBootHeaders).
		Set("IntegrityUnchecked", self.IntegrityUnchecked)
}

func (self *Stats) Reset() {
	self.mu.Lock()
	defer self.mu.Unlock()

	self.BootHeader = 0
	self.LoadImage = 0
	self.LZSS2Decompress = 0
	self.LZSS2Literals = 0
	self.LZSS2References = 0
	self.LZSS2BytesIn = 0
	self.LZSS2BytesOut = 0
	self.FindBootHeaders = 0
	self.IntegrityUnchecked = 0
}

func (self *Stats) Inc_BootHeader() {
	self.mu.Lock()
	defer self.mu.Unlock()

	self.BootHeader++
}

func (self *Stats) Inc_LoadImage() {
	self.mu.Lock()
	defer self.mu.Unlock()

	self.LoadImage++
}

func (self *Stats) Inc_FindBootHeaders() {
	self.mu.Lock()
	defer self.mu.Unlock()

	self.FindBootHeaders++
}

func (self *Stats) Inc_IntegrityUnchecked() {
	self.mu.Lock()
	defer self.mu.Unlock()

	self.IntegrityUnchecked++
}

// The decoder counts locally and reports once per call.
func (self *Stats) addLZSS2(literals, references, in, out int) {
	self.mu.Lock()
	defer self.mu.Unlock()

	self.LZSS2Decompress++
	self.LZSS2Literals += literals
	self.LZSS2References += references
	self.LZSS2BytesIn += in
	self.LZSS2BytesOut += out
}
