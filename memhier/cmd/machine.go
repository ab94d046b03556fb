package cmd

import (
	"io"
	"log"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/sarchlab/memhier/board"
	"github.com/sarchlab/memhier/config"
	"github.com/sarchlab/memhier/hierarchy"
)

// machineFlags are the flags shared by the commands that build a machine.
type machineFlags struct {
	configPath string
	cores      int
	isa        string
	ioBus      bool
	coherentIO bool
	bootROM    bool
	memCtrls   int
	l3Size     string
	verbose    bool
}

func addMachineFlags(cmd *cobra.Command, f *machineFlags) {
	flags := cmd.Flags()
	flags.StringVar(&f.configPath, "config", "",
		"YAML machine description (defaults to $"+ConfigEnv+")")
	flags.IntVar(&f.cores, "cores", 1, "number of cores")
	flags.StringVar(&f.isa, "isa", "riscv", "instruction set of the cores")
	flags.BoolVar(&f.ioBus, "io-bus", false, "give the board an I/O bus")
	flags.BoolVar(&f.coherentIO, "coherent-io", false,
		"make the I/O devices coherent")
	flags.BoolVar(&f.bootROM, "boot-rom", false, "give the board a boot ROM")
	flags.IntVar(&f.memCtrls, "mem-ctrls", 1, "number of memory controllers")
	flags.StringVar(&f.l3Size, "l3-size", "2MiB", "capacity of the L3 cache")
	flags.BoolVarP(&f.verbose, "verbose", "v", false,
		"log every component and link as they are made")
}

// loadConfig reads the config file, if any, and applies the flags that were
// set on the command line on top of it.
func loadConfig(
	cmd *cobra.Command,
	fs afero.Fs,
	f *machineFlags,
) (*config.Config, error) {
	path := f.configPath
	if path == "" {
		path = configPathFromEnv()
	}

	cfg := config.DefaultConfig()
	if path != "" {
		var err error

		cfg, err = config.Load(fs, path)
		if err != nil {
			return nil, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("cores") {
		cfg.NumCores = f.cores
	}

	if flags.Changed("isa") {
		cfg.ISA = f.isa
	}

	if flags.Changed("io-bus") {
		cfg.IOBus = f.ioBus
	}

	if flags.Changed("coherent-io") {
		cfg.CoherentIO = f.coherentIO
	}

	if flags.Changed("boot-rom") {
		cfg.BootROM = f.bootROM
	}

	if flags.Changed("mem-ctrls") {
		cfg.NumMemCtrls = f.memCtrls
	}

	if flags.Changed("l3-size") {
		cfg.L3Size = f.l3Size
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}

	return cfg, nil
}

// buildMachine creates the board and incorporates a hierarchy into it.
func buildMachine(
	cfg *config.Config,
	logOutput io.Writer,
) (*board.Board, *hierarchy.Hierarchy, error) {
	bb, err := cfg.BoardBuilder()
	if err != nil {
		return nil, nil, err
	}

	hb := cfg.HierarchyBuilder()
	if logOutput != nil {
		hb = hb.WithHook(hierarchy.NewBuildLogger(log.New(logOutput, "", 0)))
	}

	b := bb.Build("Board")
	h := hb.Build("CacheHierarchy")

	if err := h.Incorporate(b); err != nil {
		return nil, nil, err
	}

	return b, h, nil
}

func buildFromFlags(
	cmd *cobra.Command,
	fs afero.Fs,
	f *machineFlags,
) (*board.Board, *hierarchy.Hierarchy, error) {
	cfg, err := loadConfig(cmd, fs, f)
	if err != nil {
		return nil, nil, err
	}

	var logOutput io.Writer
	if f.verbose {
		logOutput = cmd.ErrOrStderr()
	}

	return buildMachine(cfg, logOutput)
}
