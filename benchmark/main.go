// Package main provides a performance benchmarking tool for the motionlens CLI.
// It generates synthetic datasets of increasing size, runs each command
// multiple times with and without the dataset cache, treating the first
// successful cached run as cold and averaging the rest as warm, and writes
// the timings to CSV.
//
// Prerequisites:
// - motionlens binary installed and available in PATH
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory the synthetic datasets and cache are written to
package main

import (
	"encoding/csv"
	"fmt"
	"math/rand/v2"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (no-cache average, cold run and average of warm runs).
type BenchmarkResult struct {
	Rows        int
	Command     string
	NoCacheTime string
	ColdTime    string
	WarmTime    string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir     string
	Timeout     time.Duration
	NoCacheRuns int
	CacheRuns   int
	Sizes       []int
	Commands    [][]string
}

var activities = []string{"walk", "run", "sit", "stairs", "cycle"}

func main() {
	// Parse command line arguments
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}

	config := BenchmarkConfig{
		WorkDir:     os.Args[1],
		Timeout:     5 * time.Minute,
		NoCacheRuns: 3,
		CacheRuns:   4,
		Sizes:       []int{1_000, 10_000, 100_000, 1_000_000},
		Commands: [][]string{
			{"line", "--participant", "none"},
			{"clock", "--hours", "6-18"},
			{"chord"},
		},
	}

	if _, err := exec.LookPath("motionlens"); err != nil {
		fmt.Printf("Prerequisites check failed: motionlens binary not found in PATH\n")
		os.Exit(1)
	}
	if err := os.MkdirAll(config.WorkDir, 0o755); err != nil {
		fmt.Printf("Failed to create work dir: %v\n", err)
		os.Exit(1)
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// generateDataset writes rows synthetic readings, one minute apart, spread over 20 participants.
func generateDataset(path string, rows int) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	rng := rand.New(rand.NewPCG(uint64(rows), 42))
	writer := csv.NewWriter(file)
	if err := writer.Write([]string{"motion_intensity", "Timestamp", "Participant_ID", "Activity_Type"}); err != nil {
		return err
	}
	start := time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC).Unix()
	for i := range rows {
		record := []string{
			strconv.FormatFloat(rng.Float64(), 'f', 4, 64),
			strconv.FormatInt(start+int64(i)*60, 10),
			strconv.Itoa(1 + rng.IntN(20)),
			activities[rng.IntN(len(activities))],
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// runBenchmarks executes every command against every dataset size
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d sizes, %v timeout, no-cache: %d runs, cache: %d runs\n",
		len(config.Sizes), config.Timeout, config.NoCacheRuns, config.CacheRuns)

	for _, size := range config.Sizes {
		dataset := filepath.Join(config.WorkDir, fmt.Sprintf("motion_%d.csv", size))
		if err := generateDataset(dataset, size); err != nil {
			fmt.Printf("Failed to generate %s: %v\n", dataset, err)
			continue
		}
		fmt.Printf("Benchmarking %d rows\n", size)

		for _, command := range config.Commands {
			cacheDB := filepath.Join(config.WorkDir, fmt.Sprintf("cache_%d_%s.db", size, command[0]))
			_ = os.Remove(cacheDB)
			results = append(results, runBenchmarkSuite(config, size, dataset, cacheDB, command))
		}
	}

	return results
}

// runBenchmarkSuite runs both no-cache and cache benchmarks for a command
func runBenchmarkSuite(config BenchmarkConfig, size int, dataset, cacheDB string, command []string) BenchmarkResult {
	fmt.Printf("Running %s on %d rows\n", strings.Join(command, " "), size)

	// Helper to run a benchmark phase
	runPhase := func(cacheArgs []string, numRuns int, phaseName string) (coldTime float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		args := append([]string{command[0], dataset, "--timezone", "UTC", "--output", "csv", "--output-file", os.DevNull}, command[1:]...)
		cold, times := runBenchmark(config, append(args, cacheArgs...), numRuns)
		if len(times) == 0 {
			avgTime = "TIMEOUT"
		} else {
			var sum float64
			for _, t := range times {
				sum += t
			}
			avgTime = fmt.Sprintf("%.3fs", sum/float64(len(times)))
		}
		return cold, avgTime
	}

	// Phase 1: No-cache runs
	_, noCacheAvg := runPhase([]string{"--cache-backend", "none"}, config.NoCacheRuns, "No-cache")

	// Phase 2: Cache runs
	coldTime, warmAvg := runPhase([]string{"--cache-backend", "sqlite", "--cache-db-connect", cacheDB}, config.CacheRuns, "Cache")

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  No-cache average: %s, Cold time: %s, Warm average: %s\n", noCacheAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		Rows:        size,
		Command:     command[0],
		NoCacheTime: noCacheAvg,
		ColdTime:    coldTimeStr,
		WarmTime:    warmAvg,
	}
}

// runBenchmark executes a motionlens command multiple times and returns cold time and warm times
func runBenchmark(config BenchmarkConfig, args []string, numRuns int) (coldTime float64, warmTimes []float64) {
	var times []float64
	for run := 1; run <= numRuns; run++ {
		start := time.Now()

		cmd := exec.Command("motionlens", args...)

		done := make(chan bool)
		var output []byte
		var cmdErr error

		go func() {
			output, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil && isSuccess(output) {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			_ = cmd.Process.Kill()
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// isSuccess checks if command output indicates the dataset was loaded
func isSuccess(output []byte) bool {
	outputStr := string(output)
	return strings.Contains(outputStr, "Loaded") && strings.Contains(outputStr, "records from")
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/motionlens_benchmark_%s.csv", timestamp)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	if err := writer.Write([]string{"rows", "cmd", "no_cache_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// Write results
	for _, result := range results {
		if err := writer.Write([]string{strconv.Itoa(result.Rows), result.Command, result.NoCacheTime, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")
	for _, command := range []string{"line", "clock", "chord"} {
		fmt.Printf("%s:\n", command)
		for _, result := range results {
			if result.Command == command {
				fmt.Printf("  %9d rows: No-cache: %s, Cold: %s, Warm: %s\n", result.Rows, result.NoCacheTime, result.ColdTime, result.WarmTime)
			}
		}
	}
}
