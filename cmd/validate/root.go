package validate

import (
	"fmt"

	"github.com/ibex-ipc/ibex/cmd/util"
	"github.com/ibex-ipc/ibex/lib/grammar"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// ValidateCommands represents the validate command group
	ValidateCommands = &cobra.Command{
		Use:   "validate",
		Short: "Validate resource name and path strings",
	}

	fileNameCmd = &cobra.Command{
		Use:   "file-name [value]",
		Short: "Checks whether the value is a valid file name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !grammar.IsValidFileName(args[0]) {
				return fmt.Errorf("%q is not a valid file name", args[0])
			}
			fmt.Println("valid")
			return nil
		},
	}

	filePathCmd = &cobra.Command{
		Use:   "file-path [value]",
		Short: "Checks whether the value is a valid path to a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !grammar.IsValidPathToFile(args[0]) {
				return fmt.Errorf("%q is not a valid path to a file", args[0])
			}
			fmt.Println("valid")
			return nil
		},
	}

	directoryPathCmd = &cobra.Command{
		Use:   "directory-path [value]",
		Short: "Checks whether the value is a valid path to a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !grammar.IsValidPathToDirectory(args[0]) {
				return fmt.Errorf("%q is not a valid path to a directory", args[0])
			}
			fmt.Println("valid")
			return nil
		},
	}

	entryCmd = &cobra.Command{
		Use:   "entry [value]",
		Short: "Checks whether the value is a valid single path entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := util.BindCommandFlags(cmd); err != nil {
				return err
			}

			policy := grammar.RelativePathComponentsReject
			if viper.GetBool("accept-relative") {
				policy = grammar.RelativePathComponentsAccept
			}

			if !grammar.IsValidPathEntry(args[0], policy) {
				return fmt.Errorf("%q is not a valid path entry (relative components: %s)", args[0], policy)
			}
			fmt.Println("valid")
			return nil
		},
	}
)

func init() {
	// Add Flags
	key := "accept-relative"
	entryCmd.Flags().Bool(key, false, util.WrapString("Accept the relative components . and .. as valid entries"))

	// Add subcommands
	ValidateCommands.AddCommand(fileNameCmd)
	ValidateCommands.AddCommand(filePathCmd)
	ValidateCommands.AddCommand(directoryPathCmd)
	ValidateCommands.AddCommand(entryCmd)
}
