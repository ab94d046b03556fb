// Package cmd provides the command-line interface of memhier.
package cmd

import (
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

// ConfigEnv names the environment variable that holds the default config
// file path. It can also be set in a .env file in the working directory.
const ConfigEnv = "MEMHIER_CONFIG"

// NewRootCmd creates the base command with all its subcommands.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "memhier",
		Short: "memhier builds the cache hierarchy of a multi-core machine.",
		Long: `memhier builds the cache hierarchy of a multi-core machine ` +
			`and shows, records or serves the resulting topology.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadDotEnv()
		},
	}

	rootCmd.AddCommand(newBuildCmd())
	rootCmd.AddCommand(newServeCmd())

	return rootCmd
}

// Execute runs the command line and exits with a non-zero code on failure.
func Execute() {
	err := NewRootCmd().Execute()
	if err != nil {
		atexit.Exit(1)
	}

	atexit.Exit(0)
}

func loadDotEnv() error {
	err := godotenv.Load()
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	return errors.Wrap(err, "failed to load .env")
}

func configPathFromEnv() string {
	return os.Getenv(ConfigEnv)
}
