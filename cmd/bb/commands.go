package bb

import (
	"fmt"

	"github.com/ibex-ipc/ibex/cmd/util"
	"github.com/ibex-ipc/ibex/lib/semantic"
	"github.com/spf13/cobra"
)

var (
	// setCmd publishes a value under a key and writes the snapshot back
	setCmd = &cobra.Command{
		Use:   "set [key] [value]",
		Short: "Publish a value under a key",
		Long:  util.WrapString("Publishes a new value under the given key and advances its generation counter. The key must be a valid file name."),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := semantic.NewFileName(args[0])
			if err != nil {
				return fmt.Errorf("invalid key: %w", err)
			}

			board, err := loadBoard()
			if err != nil {
				return err
			}

			writer, err := board.OpenWriter(key)
			if err != nil {
				return err
			}
			defer writer.Close()

			generation, err := writer.Publish([]byte(args[1]))
			if err != nil {
				return err
			}

			if err := saveBoard(board); err != nil {
				return err
			}

			cmd.Printf("ok (generation %d)\n", generation)
			return nil
		},
	}

	// getCmd prints the current value and generation of a key
	getCmd = &cobra.Command{
		Use:   "get [key]",
		Short: "Read the current value of a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := semantic.NewFileName(args[0])
			if err != nil {
				return fmt.Errorf("invalid key: %w", err)
			}

			board, err := loadBoard()
			if err != nil {
				return err
			}

			value, generation, ok := board.OpenReader(key).Get()
			if !ok {
				return fmt.Errorf("key %q has never been published", args[0])
			}

			cmd.Printf("%s (generation %d)\n", value, generation)
			return nil
		},
	}

	// keysCmd lists all keys in the snapshot
	keysCmd = &cobra.Command{
		Use:   "keys",
		Short: "List all keys in the snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			board, err := loadBoard()
			if err != nil {
				return err
			}

			for _, key := range board.Keys() {
				cmd.Println(key)
			}
			return nil
		},
	}
)
