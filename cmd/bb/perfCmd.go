package bb

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/ibex-ipc/ibex/cmd/util"
	"github.com/ibex-ipc/ibex/lib/blackboard"
	"github.com/ibex-ipc/ibex/lib/semantic"
	"github.com/rcrowley/go-metrics"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	perfCmd = &cobra.Command{
		Use:     "perf",
		Short:   "Performance testing tool for the blackboard",
		Long:    "",
		RunE:    runPerf,
		PreRunE: processPerfConfig,
	}
	perfKeyPrefix   = "__test"
	perfValueSizeKB = 1
	perfNumThreads  = 10
	perfNumOps      = 100000
	perfKeySpread   = 100
	perfSkip        = make([]string, 0)
)

func init() {
	// add flags
	key := "skip"
	perfCmd.Flags().String(key, "", util.WrapString("Benchmarks to skip (comma separated - e.g. publish,read)"))
	key = "threads"
	perfCmd.Flags().Int(key, 10, util.WrapString("Number of threads to use for the benchmark"))
	key = "ops"
	perfCmd.Flags().Int(key, 100000, util.WrapString("Number of operations per benchmark"))
	key = "value-size"
	perfCmd.Flags().Int(key, 1, util.WrapString("Size of the published values (in KB)"))
	key = "keys"
	perfCmd.Flags().Int(key, 100, util.WrapString("How many different keys to use for the tests"))
	key = "csv"
	perfCmd.Flags().String(key, "", util.WrapString("Optional path to save benchmark results as CSV"))
}

func processPerfConfig(cmd *cobra.Command, _ []string) error {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	// Read the configuration from the command line flags and environment variables
	perfValueSizeKB = viper.GetInt("value-size")
	perfKeySpread = viper.GetInt("keys")
	perfNumThreads = viper.GetInt("threads")
	perfNumOps = viper.GetInt("ops")
	perfSkip = strings.Split(viper.GetString("skip"), ",")

	return nil
}

func runPerf(_ *cobra.Command, _ []string) error {

	fmt.Println("Performance testing tool for the blackboard")

	// Print configuration
	fmt.Println()
	fmt.Println("Configuration:")
	fmt.Printf("Threads: %d\n", perfNumThreads)
	fmt.Printf("Operations: %d\n", perfNumOps)
	fmt.Printf("Keys: %d\n", perfKeySpread)
	fmt.Printf("Value size: %d KB\n", perfValueSizeKB)
	fmt.Println()

	fmt.Println("starting tests...")

	board := blackboard.New(&blackboard.Options{Name: "perf"})
	value := make([]byte, perfValueSizeKB*1024)
	registry := metrics.NewRegistry()
	results := make(map[string]metrics.Timer)

	keys, err := perfKeys(board)
	if err != nil {
		return err
	}

	publishTimer := metrics.GetOrRegisterTimer("publish", registry)
	if !shouldSkipPerf("publish") {
		writers := make([]*blackboard.Writer, len(keys))
		for i, k := range keys {
			w, err := board.OpenWriter(k)
			if err != nil {
				return err
			}
			writers[i] = w
		}

		// a writer must not be shared between threads
		runParallelPerf(func(thread, _ int) {
			w := writers[thread%len(writers)]
			publishTimer.Time(func() {
				_, _ = w.Publish(value)
			})
		})

		for _, w := range writers {
			w.Close()
		}
	}
	results["publish"] = publishTimer
	printPerfResult("publish", publishTimer)

	readTimer := metrics.GetOrRegisterTimer("read", registry)
	if !shouldSkipPerf("read") {
		readers := make([]*blackboard.Reader, len(keys))
		for i, k := range keys {
			readers[i] = board.OpenReader(k)
		}

		runParallelPerf(func(_, i int) {
			r := readers[i%len(readers)]
			readTimer.Time(func() {
				_, _, _ = r.Get()
			})
		})
	}
	results["read"] = readTimer
	printPerfResult("read", readTimer)

	mixedTimer := metrics.GetOrRegisterTimer("mixed", registry)
	if !shouldSkipPerf("mixed") {
		writers := make([]*blackboard.Writer, len(keys))
		readers := make([]*blackboard.Reader, len(keys))
		for i, k := range keys {
			w, err := board.OpenWriter(k)
			if err != nil {
				return err
			}
			writers[i] = w
			readers[i] = board.OpenReader(k)
		}

		runParallelPerf(func(thread, i int) {
			mixedTimer.Time(func() {
				if i%4 == 0 {
					_, _ = writers[thread%len(writers)].Publish(value)
				} else {
					_, _, _ = readers[i%len(readers)].Get()
				}
			})
		})

		for _, w := range writers {
			w.Close()
		}
	}
	results["mixed"] = mixedTimer
	printPerfResult("mixed", mixedTimer)

	// Write results to csv if specified
	if csvPath := viper.GetString("csv"); csvPath != "" {
		fmt.Printf("\nExporting results to CSV: %s\n", csvPath)
		if err := writePerfResultsToCSV(csvPath, results); err != nil {
			return fmt.Errorf("failed to export results to CSV: %v", err)
		}
		fmt.Println("Export complete")
	}

	return nil
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

func shouldSkipPerf(test string) bool {
	// Check if the test is in the skip list
	for _, skip := range perfSkip {
		if test == skip {
			return true
		}
	}
	return false
}

// perfKeys creates the set of test keys
func perfKeys(board *blackboard.Board) ([]semantic.FileName, error) {
	keys := make([]semantic.FileName, perfKeySpread)
	for i := 0; i < perfKeySpread; i++ {
		k, err := semantic.NewFileName(fmt.Sprintf("%s-%d", perfKeyPrefix, i))
		if err != nil {
			return nil, err
		}
		keys[i] = k
	}
	return keys, nil
}

// runParallelPerf spreads perfNumOps calls of fn over perfNumThreads goroutines
func runParallelPerf(fn func(thread, i int)) {
	var wg sync.WaitGroup
	opsPerThread := perfNumOps / perfNumThreads

	for t := 0; t < perfNumThreads; t++ {
		wg.Add(1)
		go func(thread int) {
			defer wg.Done()
			for i := 0; i < opsPerThread; i++ {
				fn(thread, thread*opsPerThread+i)
			}
		}(t)
	}

	wg.Wait()
}

// printPerfResult prints the result of a benchmark test in a formatted way
func printPerfResult(test string, timer metrics.Timer) {
	if timer.Count() == 0 {
		fmt.Printf("%-20sskipped\n", test)
		return
	}

	mean := timer.Mean()
	p99 := timer.Percentile(0.99)
	opsPerSec := 1.0 / (mean / 1e9)

	fmt.Printf("%-20s%.0fns/op (%s/op)\tp99 %s\t%.0f ops/sec\n",
		test, mean, time.Duration(mean), time.Duration(p99), opsPerSec)
}

// writePerfResultsToCSV writes benchmark results to a CSV file
func writePerfResultsToCSV(csvPath string, results map[string]metrics.Timer) error {
	file, err := os.Create(csvPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %v", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	header := []string{
		"Test", "Count", "MeanNs", "P99Ns", "OpsPerSec", "Skipped",
		"Threads", "ValueSizeKB", "Keys Count",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %v", err)
	}

	// Write test results
	for test, timer := range results {
		skipped := timer.Count() == 0
		var opsPerSec float64
		if !skipped && timer.Mean() > 0 {
			opsPerSec = 1.0 / (timer.Mean() / 1e9)
		}

		row := []string{
			test,
			strconv.FormatInt(timer.Count(), 10),
			fmt.Sprintf("%.0f", timer.Mean()),
			fmt.Sprintf("%.0f", timer.Percentile(0.99)),
			fmt.Sprintf("%.0f", opsPerSec),
			strconv.FormatBool(skipped),
			strconv.Itoa(perfNumThreads),
			strconv.Itoa(perfValueSizeKB),
			strconv.Itoa(perfKeySpread),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %v", err)
		}
	}

	return nil
}
