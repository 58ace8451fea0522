// Command voxpath runs path searches over a voxel grid from the terminal.
//
//	voxpath find --from 0,0,0 --to 9,0,9 --block 4,0,0:4,0,8
//	voxpath bench --jobs 500 --density 0.25 --metrics-addr :9090
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/voxpath/config"
	"github.com/katalvlaran/voxpath/internal/logging"
	"github.com/katalvlaran/voxpath/types"
)

var version = "0.1.0"

// app holds state shared by all subcommands.
type app struct {
	configPath string
	logLevel   string
	logFormat  string

	cfg config.Config
	log types.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "voxpath",
		Short:         "voxpath - A* path search over stacked voxel grids",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "YAML config file (defaults apply when empty)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "override log level: debug, info, warn, error")
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "override log format: text or json")

	root.AddCommand(newFindCmd(a), newBenchCmd(a), newVersionCmd())

	return root
}

// setup loads configuration and builds the logger. Flags override the file.
func (a *app) setup(cmd *cobra.Command) error {
	cfg := config.DefaultConfig()
	if a.configPath != "" {
		loaded, err := config.Load(a.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if a.logFormat != "" {
		cfg.Log.Format = a.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	l, err := logging.New(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	cfg.ValidateWithWarnings(l)
	a.cfg, a.log = cfg, l

	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of voxpath",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "voxpath version %s\n", version)
		},
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
