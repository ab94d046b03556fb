package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/pkg/browser"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/sarchlab/memhier/monitoring"
)

func newServeCmd() *cobra.Command {
	f := &machineFlags{}

	var (
		port int
		open bool
	)

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Build a machine and serve its topology over HTTP.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, h, err := buildFromFlags(cmd, afero.NewOsFs(), f)
			if err != nil {
				return err
			}

			m := monitoring.NewMonitor().WithPortNumber(port)
			for _, c := range b.Components() {
				m.RegisterComponent(c)
			}

			for _, l := range h.Links() {
				m.RegisterLink(l)
			}

			url, err := m.StartServer()
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.ErrOrStderr(), "Serving topology at %s\n", url)

			if open {
				if err := browser.OpenURL(url + "/api/list_components"); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(),
						"cannot open browser: %v\n", err)
				}
			}

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, os.Interrupt)
			<-stop

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			return m.Shutdown(ctx)
		},
	}

	addMachineFlags(serveCmd, f)
	serveCmd.Flags().IntVar(&port, "port", 0,
		"port of the server, random if not set")
	serveCmd.Flags().BoolVar(&open, "open", false,
		"open the component list in a browser")

	return serveCmd
}
