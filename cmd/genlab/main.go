// Package main provides the genlab CLI for running a benchmark-function
// Lab evolution, grounded on cmd/evolve/main.go's flag/banner/progress/
// checkpoint/signal-handler structure.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/aldermoss/genlab/algo"
	"github.com/aldermoss/genlab/benchmarks"
	"github.com/aldermoss/genlab/cell"
	"github.com/aldermoss/genlab/config"
	"github.com/aldermoss/genlab/dataset"
	"github.com/aldermoss/genlab/facade"
	"github.com/aldermoss/genlab/lab"
	"github.com/aldermoss/genlab/reporting"
	"github.com/aldermoss/genlab/telemetry"
)

// Version information (set by build flags).
var (
	Version   = "dev"
	BuildTime = "unknown"
)

var (
	generations     int
	populationTotal int
	eliteRatio      float64
	fitnessFct      string
	dimensions      int
	seed            int64
	checkpointPath  string
	checkpointEvery int
	outputDir       string
	workers         int
	envFile         string
	verbose         bool
	showVersion     bool
)

func init() {
	flag.IntVar(&generations, "generations", 100, "Number of generations to evolve")
	flag.IntVar(&populationTotal, "population", 200, "Total population across every algo")
	flag.Float64Var(&eliteRatio, "elite-ratio", 0.1, "Fraction of each algo's population treated as elite")
	flag.StringVar(&fitnessFct, "function", "spherical", "Benchmark function (spherical, xinsheyang, schwefel, styblinskitank, quartic)")
	flag.IntVar(&dimensions, "dimensions", 8, "Genome length / problem dimensionality")
	flag.Int64Var(&seed, "seed", 0, "Random seed (0 = use current time)")
	flag.StringVar(&checkpointPath, "checkpoint", "", "Resume from checkpoint file")
	flag.IntVar(&checkpointEvery, "checkpoint-interval", 10, "Auto-save checkpoint every N generations (0 = disabled)")
	flag.StringVar(&outputDir, "output-dir", "", "Output directory for results (default: output/run-TIMESTAMP)")
	flag.IntVar(&workers, "workers", 0, "Worker goroutines for fitness evaluation (0 = auto-detect CPU count)")
	flag.StringVar(&envFile, "env-file", ".env", "Optional .env file whose entries are exported as environment variables that are not already set (flags do not read them)")
	flag.BoolVar(&verbose, "verbose", false, "Enable verbose output")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
}

func main() {
	flag.Parse()
	if values, err := config.LoadDotEnvDefaults(envFile); err == nil {
		_ = config.ApplyEnvDefaults(values)
	}

	if showVersion {
		fmt.Printf("genlab %s (built %s)\n", Version, BuildTime)
		os.Exit(0)
	}

	if outputDir == "" {
		timestamp := time.Now().Format("20060102-150405")
		outputDir = filepath.Join("output", fmt.Sprintf("run-%s", timestamp))
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	printBanner()

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	f, recorder, err := buildRun()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building run: %v\n", err)
		os.Exit(1)
	}

	if checkpointPath != "" {
		fmt.Printf("Resuming from checkpoint: %s\n", checkpointPath)
		cp, err := lab.LoadCheckpoint(checkpointPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading checkpoint: %v\n", err)
			os.Exit(1)
		}
		if err := f.Lab.RestoreFromCheckpoint(cp); err != nil {
			fmt.Fprintf(os.Stderr, "Error restoring checkpoint: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Resumed at generation %d\n\n", cp.Generation)
	}

	cpPath := filepath.Join(outputDir, "checkpoint.json")
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\n\nInterrupted! Saving checkpoint...")
		if err := f.Lab.SaveCheckpoint(cpPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving checkpoint: %v\n", err)
		} else {
			fmt.Printf("Checkpoint saved to %s\n", cpPath)
		}
		os.Exit(130)
	}()

	startTime := time.Now()
	generationSeen := 0
	f.Lab.OnGenerationComplete = func(id algo.AlgoID, stats lab.GenerationStats) {
		recorder.ObserveGeneration(id, stats)
		if verbose {
			fmt.Printf("  gen %d algo %d best %.6f\n", stats.Generation, id, stats.BestScore)
		}
		if checkpointEvery > 0 && stats.Generation != generationSeen && stats.Generation%checkpointEvery == 0 {
			generationSeen = stats.Generation
			if err := f.Lab.SaveCheckpoint(cpPath); err != nil {
				fmt.Fprintf(os.Stderr, "\nWarning: checkpoint save failed: %v\n", err)
			}
		}
	}

	fmt.Println("Starting evolution...")
	genome, score, err := f.Start(generations)
	if err != nil {
		fmt.Fprintf(os.Stderr, "\nEvolution failed: %v\n", err)
		os.Exit(1)
	}
	recorder.ObserveRunComplete(score)

	totalTime := time.Since(startTime)
	fmt.Printf("\nEvolution complete in %s\n", formatDuration(totalTime))

	best := cell.CellData{Genome: genome, Score: score}

	reporting.PrintStatsTable(os.Stdout, f.Lab.StatsHistory)
	reporting.PrintBestCell(os.Stdout, best)

	workbookPath := filepath.Join(outputDir, "results.xlsx")
	if err := reporting.ExportWorkbook(workbookPath, f.Lab.StatsHistory, best); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to export workbook: %v\n", err)
	} else {
		fmt.Printf("Results workbook: %s\n", workbookPath)
	}

	if err := f.Lab.SaveCheckpoint(cpPath); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: final checkpoint save failed: %v\n", err)
	}
}

// buildRun wires a single-algo Lab (one benchmark FunctionAlgo driven by
// Darwin) behind a Facade, with a telemetry.Recorder ready to be hung off
// OnGenerationComplete. Multi-algo wheel topologies are built with
// labmap.Build and applied the same way, via f.ApplyMap.
func buildRun() (*facade.Facade[*benchmarks.Cell], *telemetry.Recorder, error) {
	cfg := lab.LabConfig{PopulationTotal: populationTotal, EliteRatio: eliteRatio, MaximizeScore: false}
	f := facade.New[*benchmarks.Cell](cfg, seed)

	fnAlgo, err := benchmarks.NewFunctionAlgo(fitnessFct, dimensions, -500, 500)
	if err != nil {
		return nil, nil, err
	}
	fnAlgo.Workers = workers
	id := f.RegisterAlgo(fnAlgo)

	mapJSON, err := json.Marshal([]algo.AlgoConfiguration{
		{
			ID:         fmt.Sprintf("algo-%d", id),
			Method:     "Darwin",
			Give:       nil,
			Population: algo.WeightOfTotal(1.0),
		},
	})
	if err != nil {
		return nil, nil, err
	}
	if err := f.ApplyMap(mapJSON); err != nil {
		return nil, nil, err
	}
	if err := f.SetOutputAlgorithm(id); err != nil {
		return nil, nil, err
	}

	f.RegisterDataset("ticks", dataset.NewEmpty(1))

	return f, telemetry.NewRecorder(), nil
}

func printBanner() {
	fmt.Println()
	fmt.Println("==================================================")
	fmt.Println("              genlab evolution engine              ")
	fmt.Println("==================================================")
	fmt.Println()
	fmt.Printf("Configuration:\n")
	fmt.Printf("  Population:    %d\n", populationTotal)
	fmt.Printf("  Generations:   %d\n", generations)
	fmt.Printf("  Function:      %s\n", fitnessFct)
	fmt.Printf("  Dimensions:    %d\n", dimensions)
	fmt.Printf("  Workers:       %d (0=auto)\n", workers)
	fmt.Printf("  Output:        %s\n", outputDir)
	if checkpointEvery > 0 {
		fmt.Printf("  Checkpoint:    every %d generations\n", checkpointEvery)
	}
	fmt.Println()
}

func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	if d < time.Hour {
		m := int(d.Minutes())
		s := int(d.Seconds()) % 60
		return fmt.Sprintf("%dm%ds", m, s)
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	return fmt.Sprintf("%dh%dm", h, m)
}
