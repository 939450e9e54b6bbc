package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/dkovats/schedkit/pkg/exercise"
	"github.com/dkovats/schedkit/pkg/generator"
	"github.com/dkovats/schedkit/pkg/logging"
	"github.com/dkovats/schedkit/pkg/metrics"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "conf-eq":
		runConflictEquivalent(os.Args[2:])
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	usage := `schedkit - transaction schedule exercise generator

Usage:
  schedkit <command> [options]

Available Commands:
  conf-eq     Generate a conflict-equivalence exercise sheet
  help        Show this help message

Use "schedkit <command> --help" for more information about a command.
`
	fmt.Print(usage)
}

func runConflictEquivalent(args []string) {
	fs := flag.NewFlagSet("conf-eq", flag.ExitOnError)
	configPath := fs.String("config", "", "YAML config file (flags override it)")
	numSchedules := fs.Int("num-schedules", 0, "Number of schedules to generate")
	numTransactions := fs.Int("num-transactions", 0, "Number of transactions in the schedule")
	numOperations := fs.Int("num-operations", 0, "Number of conflicting operations")
	mustRead := fs.Bool("must-read", true, "Require a read of each written item before the write")
	mustWrite := fs.Bool("must-write", false, "Require a write-back of each read item")
	serializable := fs.Bool("serializable", false, "Generate only serializable schedules")
	seed := fs.Int64("seed", 0, "Random seed (0 uses the clock)")
	logLevel := fs.String("log-level", "ERROR", "Log level: DEBUG, INFO, WARN, ERROR")
	fs.Parse(args)

	cfg := exercise.DefaultConflictEquivalentConfig()
	if *configPath != "" {
		loaded, err := exercise.LoadConflictEquivalentConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *numSchedules > 0 {
		cfg.NumSchedules = *numSchedules
	}
	if *numTransactions > 0 {
		cfg.NumTransactions = *numTransactions
	}
	if *numOperations > 0 {
		cfg.NumOperations = *numOperations
	}
	cfg.MustRead = *mustRead
	cfg.MustWrite = *mustWrite
	cfg.Serializable = *serializable

	if *seed != 0 {
		generator.Seed(*seed)
	}

	logger := logging.NewJSONLogger(os.Stderr, logging.ParseLevel(*logLevel))
	ex := exercise.NewConflictEquivalent(cfg, logger, metrics.DefaultRegistry())

	fmt.Println("Generating conflict-equivalency exercise with the following parameters:")
	fmt.Printf("Number of schedules: %d\n", cfg.NumSchedules)
	fmt.Printf("Number of transactions: %d\n", cfg.NumTransactions)
	fmt.Printf("Number of conflicting operations: %d\n", cfg.NumOperations)
	fmt.Printf("Must read before write: %t\n", cfg.MustRead)
	fmt.Printf("Must write after read: %t\n", cfg.MustWrite)

	sheet, err := ex.Generate()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Generation failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Generated schedules:")
	for _, s := range sheet.Schedules {
		fmt.Println(s)
	}

	fmt.Println("Precedence graphs:")
	for i, s := range sheet.Schedules {
		fmt.Printf("Precedence graph for Schedule S_%d:\n", s.ID)
		fmt.Println(sheet.PrecedenceGraphs[i])
	}
}
