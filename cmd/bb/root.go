package bb

import (
	"fmt"
	"os"

	"github.com/ibex-ipc/ibex/cmd/util"
	"github.com/ibex-ipc/ibex/lib/blackboard"
	"github.com/ibex-ipc/ibex/lib/blackboard/codec"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	snapshotFile  string
	snapshotCodec codec.Codec

	// BlackboardCommands represents the bb command group
	BlackboardCommands = &cobra.Command{
		Use:               "bb",
		Short:             "Inspect and mutate blackboard snapshot files",
		PersistentPreRunE: setupSnapshotConfig,
	}
)

func init() {
	// Add Flags
	key := "file"
	BlackboardCommands.PersistentFlags().String(key, "ibex.bb", util.WrapString("Path of the blackboard snapshot file"))

	key = "codec"
	BlackboardCommands.PersistentFlags().String(key, "binary", util.WrapString("Snapshot codec to use (binary, json, gob)"))

	// Add subcommands
	BlackboardCommands.AddCommand(setCmd)
	BlackboardCommands.AddCommand(getCmd)
	BlackboardCommands.AddCommand(keysCmd)
	BlackboardCommands.AddCommand(watchCmd)
	BlackboardCommands.AddCommand(snapshotCmd)
	BlackboardCommands.AddCommand(perfCmd)
}

// setupSnapshotConfig reads the snapshot file and codec settings
func setupSnapshotConfig(cmd *cobra.Command, _ []string) error {
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	c, err := util.GetCodec()
	if err != nil {
		return err
	}

	snapshotFile = viper.GetString("file")
	snapshotCodec = c
	return nil
}

// --------------------------------------------------------------------------
// Snapshot file helpers
// --------------------------------------------------------------------------

// loadBoard restores a board from the snapshot file. A missing file yields
// a fresh empty board.
func loadBoard() (*blackboard.Board, error) {
	board := blackboard.New(&blackboard.Options{Name: snapshotFile})

	f, err := os.Open(snapshotFile)
	if os.IsNotExist(err) {
		return board, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if err := board.Load(f, snapshotCodec); err != nil {
		return nil, fmt.Errorf("failed to restore snapshot %s: %w", snapshotFile, err)
	}
	return board, nil
}

// saveBoard persists a board to the snapshot file
func saveBoard(board *blackboard.Board) error {
	f, err := os.Create(snapshotFile)
	if err != nil {
		return err
	}
	defer f.Close()

	return board.Save(f, snapshotCodec)
}
