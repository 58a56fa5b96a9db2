package cmd

import (
	"fmt"
	"os"

	"github.com/ibex-ipc/ibex/cmd/bb"
	"github.com/ibex-ipc/ibex/cmd/name"
	"github.com/ibex-ipc/ibex/cmd/util"
	"github.com/ibex-ipc/ibex/cmd/validate"
	"github.com/ibex-ipc/ibex/lib/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	Version = "0.4.1"
)

var (

	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "ibex",
		Short: "validated resource naming and blackboard tooling",
		Long: fmt.Sprintf(`ibex (v%s)

Tooling for zero-copy IPC deployments: validation of cross-platform-safe
resource names and paths, derivation of shared-resource file paths, and
inspection of blackboard snapshot files.`, Version),
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := viper.BindPFlags(cmd.Root().PersistentFlags()); err != nil {
				return err
			}
			return logging.Init(viper.GetString("log-level"))
		},
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of ibex",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("ibex v%s\n", Version)
		},
	}
)

func init() {
	// Run the root PersistentPreRunE (logging setup) even when a command
	// group defines its own hook
	cobra.EnableTraverseRunHooks = true

	// Initialize viper
	cobra.OnInitialize(util.InitEnvConfig)

	// Add Commands
	RootCmd.AddCommand(validate.ValidateCommands)
	RootCmd.AddCommand(name.NameCommands)
	RootCmd.AddCommand(bb.BlackboardCommands)
	RootCmd.AddCommand(versionCmd)

	// Add Flags
	key := "log-level"
	RootCmd.PersistentFlags().String(key, "info", util.WrapString("log level (debug, info, warn, error)"))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
