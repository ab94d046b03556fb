package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/sarchlab/memhier/board"
	"github.com/sarchlab/memhier/datarecording"
	"github.com/sarchlab/memhier/hierarchy"
)

func newBuildCmd() *cobra.Command {
	f := &machineFlags{}
	var recordPath string

	buildCmd := &cobra.Command{
		Use:   "build",
		Short: "Build a machine and print its topology.",
		Long: "`build` incorporates a cache hierarchy into a board and " +
			"prints every component and link. With --record the topology " +
			"is also stored in a SQLite database.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, h, err := buildFromFlags(cmd, afero.NewOsFs(), f)
			if err != nil {
				return err
			}

			printTopology(cmd.OutOrStdout(), b, h)

			if recordPath == "" {
				return nil
			}

			r, err := datarecording.New(recordPath)
			if err != nil {
				return err
			}

			err = datarecording.RecordTopology(r, b.Components(), h.Links())
			if err != nil {
				r.Close()
				return err
			}

			return r.Close()
		},
	}

	addMachineFlags(buildCmd, f)
	buildCmd.Flags().StringVar(&recordPath, "record", "",
		"store the topology in <path>.sqlite3")

	return buildCmd
}

func printTopology(w io.Writer, b *board.Board, h *hierarchy.Hierarchy) {
	proc := b.Proc()
	fmt.Fprintf(w, "Machine: %d %s cores at %s\n",
		proc.NumCores(), proc.ISA(), proc.Freq)

	comps := b.Components()

	fmt.Fprintf(w, "Components (%d):\n", len(comps))

	for _, c := range comps {
		e := datarecording.DescribeComponent(c)
		if e.Detail == "" {
			fmt.Fprintf(w, "  %s [%s]\n", e.Name, e.Kind)
			continue
		}

		fmt.Fprintf(w, "  %s [%s %s]\n", e.Name, e.Kind, e.Detail)
	}

	links := h.Links()

	fmt.Fprintf(w, "Links (%d):\n", len(links))

	for _, l := range links {
		fmt.Fprintf(w, "  %s -> %s\n", l.Requestor.Name(), l.Responder.Name())
	}
}
