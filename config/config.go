// Package config loads machine descriptions from YAML files.
package config

import (
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/sarchlab/memhier/board"
	"github.com/sarchlab/memhier/hierarchy"
	"github.com/sarchlab/memhier/isa"
	"github.com/sarchlab/memhier/mem/mem"
	"github.com/sarchlab/memhier/sim"
)

// Config describes a board and the cache hierarchy to incorporate into it.
type Config struct {
	// Board
	NumCores       int    `yaml:"numCores"`
	ISA            string `yaml:"isa"`
	ClockFrequency int    `yaml:"clockFrequency"` // MHz
	IOBus          bool   `yaml:"ioBus"`
	CoherentIO     bool   `yaml:"coherentIO"`
	BootROM        bool   `yaml:"bootROM"`
	NumMemCtrls    int    `yaml:"numMemCtrls"`
	MemSize        string `yaml:"memSize"`

	// Cache hierarchy
	L1ISize           string `yaml:"l1iSize"`
	L1DSize           string `yaml:"l1dSize"`
	L2Size            string `yaml:"l2Size"`
	L3Size            string `yaml:"l3Size"`
	L3Assoc           int    `yaml:"l3Assoc"`
	BridgeDelayNs     int    `yaml:"bridgeDelayNs"`
	RequireCoherentIO bool   `yaml:"requireCoherentIO"`
}

// DefaultConfig returns the configuration of a single-core RISC-V board with
// the default hierarchy.
func DefaultConfig() *Config {
	return &Config{
		NumCores:       1,
		ISA:            "riscv",
		ClockFrequency: 3000,
		NumMemCtrls:    1,
		MemSize:        "8GiB",

		L1ISize:       "32kB",
		L1DSize:       "32kB",
		L2Size:        "4kB",
		L3Size:        "2MiB",
		L3Assoc:       16,
		BridgeDelayNs: 50,
	}
}

// Load reads a configuration file. Keys missing from the file keep their
// default values.
func Load(fs afero.Fs, path string) (*Config, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config file")
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse config")
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}

	return cfg, nil
}

// Validate checks that every value can be used to build a machine.
func (c *Config) Validate() error {
	if c.NumCores < 0 {
		return errors.New("number of cores must not be negative")
	}

	if c.ClockFrequency <= 0 {
		return errors.New("clock frequency must be positive")
	}

	if c.NumMemCtrls < 0 {
		return errors.New("number of memory controllers must not be negative")
	}

	if c.L3Assoc <= 0 {
		return errors.New("L3 associativity must be positive")
	}

	if c.BridgeDelayNs < 0 {
		return errors.New("bridge delay must not be negative")
	}

	if _, err := isa.Parse(c.ISA); err != nil {
		return err
	}

	sizes := []struct {
		key   string
		value string
	}{
		{"memSize", c.MemSize},
		{"l1iSize", c.L1ISize},
		{"l1dSize", c.L1DSize},
		{"l2Size", c.L2Size},
		{"l3Size", c.L3Size},
	}

	for _, s := range sizes {
		if _, err := mem.ParseSize(s.value); err != nil {
			return errors.Wrap(err, s.key)
		}
	}

	return nil
}

// BoardBuilder returns a builder for the described board.
func (c *Config) BoardBuilder() (board.Builder, error) {
	family, err := isa.Parse(c.ISA)
	if err != nil {
		return board.Builder{}, err
	}

	memSize, err := mem.ParseSize(c.MemSize)
	if err != nil {
		return board.Builder{}, errors.Wrap(err, "memSize")
	}

	b := board.MakeBuilder().
		WithNumCores(c.NumCores).
		WithISA(family).
		WithClockFreq(sim.Freq(c.ClockFrequency) * sim.MHz).
		WithNumMemCtrls(c.NumMemCtrls).
		WithMemSize(memSize)

	if c.IOBus {
		b = b.WithIOBus()
	}

	if c.CoherentIO {
		b = b.WithCoherentIO()
	}

	if c.BootROM {
		b = b.WithBootROM()
	}

	return b, nil
}

// HierarchyBuilder returns a builder for the described cache hierarchy.
func (c *Config) HierarchyBuilder() hierarchy.Builder {
	b := hierarchy.MakeBuilder().
		WithFreq(sim.Freq(c.ClockFrequency) * sim.MHz).
		WithL1ISize(c.L1ISize).
		WithL1DSize(c.L1DSize).
		WithL2Size(c.L2Size).
		WithL3Size(c.L3Size).
		WithL3Assoc(c.L3Assoc).
		WithBridgeDelay(sim.VTimeInSec(c.BridgeDelayNs) * sim.Ns)

	if c.RequireCoherentIO {
		b = b.WithCoherentIORequired()
	}

	return b
}
