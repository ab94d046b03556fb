package cache

import (
	"fmt"

	"github.com/sarchlab/memhier/sim"
)

// Cache lines range from 4 bytes to 64KiB.
const (
	minLog2LineSize = 2
	maxLog2LineSize = 16
)

// Builder can build caches.
type Builder struct {
	freq              sim.Freq
	spec              Spec
	coreID            int
	log2CacheLineSize int
}

// MakeBuilder creates a new builder.
func MakeBuilder() Builder {
	return Builder{
		freq:              1 * sim.GHz,
		spec:              DefaultSpec(L1D),
		coreID:            Shared,
		log2CacheLineSize: 6,
	}
}

// WithFreq sets the frequency of the cache clock.
func (b Builder) WithFreq(freq sim.Freq) Builder {
	b.freq = freq
	return b
}

// WithSpec sets the parameters of the cache.
func (b Builder) WithSpec(spec Spec) Builder {
	b.spec = spec
	return b
}

// WithCoreID tags the cache as private to a core. Use Shared for caches that
// serve all the cores.
func (b Builder) WithCoreID(coreID int) Builder {
	b.coreID = coreID
	return b
}

// WithLog2CacheLineSize sets the log2 of the cache line size of the builder.
func (b Builder) WithLog2CacheLineSize(log2CacheLineSize int) Builder {
	b.log2CacheLineSize = log2CacheLineSize
	return b
}

// Build builds a cache. It fails with an InvalidSpecError if the spec cannot
// describe a real cache.
func (b Builder) Build(name string) (*Comp, error) {
	if err := b.spec.Validate(); err != nil {
		return nil, err
	}

	if b.log2CacheLineSize < minLog2LineSize ||
		b.log2CacheLineSize > maxLog2LineSize {
		return nil, b.spec.invalid("LineSize", fmt.Sprintf(
			"of 2^%d bytes is outside [2^%d, 2^%d]", b.log2CacheLineSize,
			minLog2LineSize, maxLog2LineSize))
	}

	byteSize, _ := b.spec.ByteSize()
	blockSize := 1 << b.log2CacheLineSize

	numSets, err := b.fullSets(byteSize, uint64(blockSize))
	if err != nil {
		return nil, err
	}

	comp := &Comp{
		ComponentBase: sim.NewComponentBase(name),
		Spec:          b.spec,
		CoreID:        b.coreID,
		Freq:          b.freq,
		ByteSize:      byteSize,
		LineSize:      blockSize,
		NumSets:       int(numSets),
	}

	b.addPorts(comp, name)

	return comp, nil
}

func (b Builder) addPorts(comp *Comp, name string) {
	comp.CPUSide = sim.NewPort(comp, name+".CPUSide")
	comp.MemSide = sim.NewPort(comp, name+".MemSide")

	comp.AddPort("CPUSide", comp.CPUSide)
	comp.AddPort("MemSide", comp.MemSide)
}

func (b Builder) fullSets(cacheByteSize, blockSize uint64) (uint64, error) {
	if cacheByteSize%blockSize != 0 {
		return 0, b.spec.invalid("Size", fmt.Sprintf(
			"%d bytes is not an integer number of %d-byte lines",
			cacheByteSize, blockSize))
	}

	lines := cacheByteSize / blockSize
	assoc := uint64(b.spec.Assoc)

	if assoc > lines {
		return 0, b.spec.invalid("Assoc", fmt.Sprintf(
			"%d exceeds the %d lines of the cache", assoc, lines))
	}

	if lines%assoc != 0 {
		return 0, b.spec.invalid("Size", fmt.Sprintf(
			"%d bytes is not an integer number of %d-byte sets",
			cacheByteSize, blockSize*assoc))
	}

	return lines / assoc, nil
}
