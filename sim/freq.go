package sim

import (
	"log"
	"math"

	"github.com/dustin/go-humanize"
)

// VTimeInSec defines the time in the simulated space in the unit of second
type VTimeInSec float64

// Defines the unit of time
const (
	Sec VTimeInSec = 1
	Ms  VTimeInSec = 1e-3
	Us  VTimeInSec = 1e-6
	Ns  VTimeInSec = 1e-9
)

// Freq defines the type of frequency
type Freq float64

// Defines the unit of frequency
const (
	Hz  Freq = 1
	KHz Freq = 1e3
	MHz Freq = 1e6
	GHz Freq = 1e9
)

// String renders the frequency with an SI prefix, e.g. "3 GHz".
func (f Freq) String() string {
	return humanize.SI(float64(f), "Hz")
}

// Period returns the time between two consecutive ticks
func (f Freq) Period() VTimeInSec {
	if f == 0 {
		log.Panic("frequency cannot be 0")
	}

	return VTimeInSec(1.0 / f)
}

// Cycle converts a time to the number of cycles passed since time 0.
func (f Freq) Cycle(time VTimeInSec) uint64 {
	return uint64(math.Round(float64(time) * float64(f)))
}

// NCycles returns the duration of n cycles.
func (f Freq) NCycles(n int) VTimeInSec {
	return VTimeInSec(float64(n)) * f.Period()
}
