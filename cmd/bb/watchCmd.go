package bb

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/ibex-ipc/ibex/cmd/util"
	"github.com/ibex-ipc/ibex/lib/blackboard"
	"github.com/ibex-ipc/ibex/lib/semantic"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var watchCmd = &cobra.Command{
	Use:   "watch [key...]",
	Short: "Watch the snapshot file for published changes",
	Long: util.WrapString("Polls the snapshot file and prints an event for every key whose generation advanced since the last poll. " +
		"With key arguments only those keys are watched. Runs until interrupted."),
	RunE: runWatch,
}

func init() {
	key := "interval"
	watchCmd.Flags().Duration(key, time.Second, util.WrapString("Poll interval"))
}

func runWatch(cmd *cobra.Command, args []string) error {
	interval := viper.GetDuration("interval")

	// Optional key filter
	filter := make(map[string]bool, len(args))
	for _, arg := range args {
		key, err := semantic.NewFileName(arg)
		if err != nil {
			return fmt.Errorf("invalid key: %w", err)
		}
		filter[key.String()] = true
	}

	board, err := loadBoard()
	if err != nil {
		return err
	}
	last := boardGenerations(board, filter)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	cmd.Printf("watching %s (interval %s)\n", snapshotFile, interval)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			board, err := loadBoard()
			if err != nil {
				// The writer may be mid-rewrite of the file, retry on the
				// next tick.
				continue
			}

			current := boardGenerations(board, filter)
			for key, generation := range current {
				if generation != last[key] {
					cmd.Printf("%s\t%s\tgeneration %d\n", time.Now().Format(time.RFC3339), key, generation)
				}
			}
			last = current
		}
	}
}

// boardGenerations collects the current generation of every (filtered) key
func boardGenerations(board *blackboard.Board, filter map[string]bool) map[string]uint64 {
	generations := make(map[string]uint64)
	for _, key := range board.Keys() {
		if len(filter) > 0 && !filter[key] {
			continue
		}

		// Keys on a restored board always satisfy the file name grammar.
		name, err := semantic.NewFileName(key)
		if err != nil {
			continue
		}
		generations[key] = board.OpenReader(name).Generation()
	}
	return generations
}
