package name

import (
	"fmt"

	"github.com/ibex-ipc/ibex/cmd/util"
	"github.com/ibex-ipc/ibex/lib/naming"
	"github.com/ibex-ipc/ibex/lib/semantic"
	"github.com/spf13/cobra"
)

var (
	namingConfig naming.Config

	// NameCommands represents the name command group
	NameCommands = &cobra.Command{
		Use:               "name",
		Short:             "Derive shared-resource paths from validated name parts",
		PersistentPreRunE: setupNamingConfig,
	}

	deriveCmd = &cobra.Command{
		Use:   "derive [service]",
		Short: "Derives the shared-resource path for a service name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := semantic.NewFileName(args[0])
			if err != nil {
				return fmt.Errorf("invalid service name: %w", err)
			}

			path, err := namingConfig.ResourcePath(service)
			if err != nil {
				return err
			}

			fmt.Println(path.String())
			return nil
		},
	}

	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Print the effective naming configuration",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(namingConfig.String())
		},
	}
)

func init() {
	// Add common naming flags to the command group
	util.SetupNamingFlags(NameCommands)

	// Add subcommands
	NameCommands.AddCommand(deriveCmd)
	NameCommands.AddCommand(configCmd)
}

// setupNamingConfig builds the naming configuration from flags and env
func setupNamingConfig(cmd *cobra.Command, _ []string) error {
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	cfg, err := util.GetNamingConfig()
	if err != nil {
		return err
	}

	namingConfig = cfg
	return nil
}
