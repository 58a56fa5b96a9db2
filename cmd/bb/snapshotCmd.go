package bb

import (
	"fmt"
	"os"

	"github.com/ibex-ipc/ibex/cmd/util"
	"github.com/ibex-ipc/ibex/lib/semantic"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// snapshotCmd groups the snapshot file maintenance commands
	snapshotCmd = &cobra.Command{
		Use:   "snapshot",
		Short: "Inspect and convert the snapshot file",
	}

	snapshotInfoCmd = &cobra.Command{
		Use:   "info",
		Short: "Print a summary of all records in the snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			board, err := loadBoard()
			if err != nil {
				return err
			}

			keys := board.Keys()
			cmd.Printf("%s: %d slots\n", snapshotFile, len(keys))

			for _, key := range keys {
				name, err := semantic.NewFileName(key)
				if err != nil {
					continue
				}

				value, generation, ok := board.OpenReader(name).Get()
				if !ok {
					cmd.Printf("  %-32s never published\n", key)
					continue
				}
				cmd.Printf("  %-32s generation %-6d %d bytes\n", key, generation, len(value))
			}
			return nil
		},
	}

	snapshotConvertCmd = &cobra.Command{
		Use:   "convert",
		Short: "Re-encode the snapshot with a different codec",
		Args:  cobra.NoArgs,
		RunE:  runSnapshotConvert,
	}
)

func init() {
	key := "to-file"
	snapshotConvertCmd.Flags().String(key, "", util.WrapString("Destination file (defaults to rewriting the snapshot in place)"))

	key = "to-codec"
	snapshotConvertCmd.Flags().String(key, "binary", util.WrapString("Destination codec (binary, json, gob)"))

	snapshotCmd.AddCommand(snapshotInfoCmd)
	snapshotCmd.AddCommand(snapshotConvertCmd)
}

func runSnapshotConvert(cmd *cobra.Command, _ []string) error {
	target, err := util.CodecByName(viper.GetString("to-codec"))
	if err != nil {
		return err
	}

	targetFile := viper.GetString("to-file")
	if targetFile == "" {
		targetFile = snapshotFile
	}

	board, err := loadBoard()
	if err != nil {
		return err
	}

	f, err := os.Create(targetFile)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := board.Save(f, target); err != nil {
		return fmt.Errorf("failed to write %s: %w", targetFile, err)
	}

	cmd.Printf("wrote %s (%d slots, codec %s)\n", targetFile, len(board.Keys()), viper.GetString("to-codec"))
	return nil
}
