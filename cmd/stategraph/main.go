package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/deepnoodle-ai/stategraph"
	"github.com/deepnoodle-ai/stategraph/handlers"
	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

// CLI configuration
type Config struct {
	GraphFile      string
	WorkflowID     string
	State          map[string]interface{}
	CheckpointsDir string
	Resume         bool
	MaxSteps       int
	Timeout        time.Duration
	Verbose        bool
	JSON           bool
}

func main() {
	config := parseFlags()

	// Validate required arguments
	if config.GraphFile == "" {
		color.Red("Error: graph definition file is required")
		flag.Usage()
		os.Exit(1)
	}
	if _, err := os.Stat(config.GraphFile); os.IsNotExist(err) {
		color.Red("Error: graph file '%s' not found", config.GraphFile)
		os.Exit(1)
	}
	if config.Resume && config.WorkflowID == "" {
		color.Red("Error: -resume requires -workflow-id")
		os.Exit(1)
	}

	logger := setupLogger(config.Verbose)

	// Load and compile the graph definition
	color.Blue("Loading graph from: %s", config.GraphFile)
	def, err := stategraph.LoadDefinitionFile(config.GraphFile)
	if err != nil {
		log.Fatalf("Failed to load graph definition: %v", err)
	}
	graph, err := def.Compile(handlers.Registry())
	if err != nil {
		log.Fatalf("Failed to compile graph: %v", err)
	}

	color.Cyan("Graph: %s", def.Name)
	if def.Description != "" {
		color.White("Description: %s", def.Description)
	}

	workflowID := config.WorkflowID
	if workflowID == "" {
		workflowID = uuid.NewString()
	}

	// Set up checkpointing
	store, err := stategraph.NewFileCheckpointStore(config.CheckpointsDir)
	if err != nil {
		log.Fatalf("Failed to create checkpoint store: %v", err)
	}
	manager, err := stategraph.NewCheckpointManager(stategraph.CheckpointManagerOptions{
		Store:  store,
		Logger: logger,
	})
	if err != nil {
		log.Fatalf("Failed to create checkpoint manager: %v", err)
	}

	executor := stategraph.NewExecutor(stategraph.ExecutorOptions{
		Logger:    logger,
		Callbacks: stategraph.NewCheckpointingCallbacks(manager),
	})

	initialState := def.InitialState()
	for k, v := range config.State {
		initialState[k] = v
	}

	ctx := context.Background()
	if config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, config.Timeout)
		defer cancel()
		color.Yellow("Timeout: %v", config.Timeout)
	}

	var result *stategraph.Result
	if config.Resume {
		color.Green("Resuming workflow %s...\n", workflowID)
		result, err = executor.Resume(ctx, stategraph.ResumeOptions{
			Graph:        graph,
			Manager:      manager,
			WorkflowID:   workflowID,
			InitialState: initialState,
			MaxSteps:     config.MaxSteps,
		})
	} else {
		color.Green("Starting workflow %s...\n", workflowID)
		result, err = executor.Execute(ctx, stategraph.ExecuteOptions{
			Graph:        graph,
			InitialState: initialState,
			MaxSteps:     config.MaxSteps,
			WorkflowID:   workflowID,
		})
	}
	if err != nil {
		log.Fatalf("Execution error: %v", err)
	}

	showResult(result, config)

	if result.Status == stategraph.StatusFailed {
		os.Exit(1)
	}
}

func showResult(result *stategraph.Result, config *Config) {
	if config.JSON {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			log.Fatalf("Failed to marshal result: %v", err)
		}
		fmt.Println(string(data))
		return
	}

	fmt.Println()
	switch result.Status {
	case stategraph.StatusCompleted:
		color.Green("Status: %s", result.Status)
	case stategraph.StatusMaxStepsReached:
		color.Yellow("Status: %s", result.Status)
	default:
		color.Red("Status: %s", result.Status)
	}
	color.White("Steps: %d", result.Steps)
	color.White("Duration: %v", result.Duration)
	color.White("Executed: %s", strings.Join(result.ExecutedNodes, " -> "))
	if result.Error != nil {
		color.Red("Error at node %q: %v", result.Error.Node, result.Error.Err)
	}
	if len(result.FinalState) > 0 {
		data, err := json.MarshalIndent(result.FinalState, "", "  ")
		if err == nil {
			color.White("Final state:\n%s", string(data))
		}
	}
}

func setupLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.RFC3339,
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
	}))
}

// stringSlice implements flag.Value for repeated flags
type stringSlice []string

func (s *stringSlice) String() string {
	return strings.Join(*s, ",")
}

func (s *stringSlice) Set(value string) error {
	*s = append(*s, value)
	return nil
}

func parseFlags() *Config {
	config := &Config{
		State: make(map[string]interface{}),
	}

	flag.StringVar(&config.GraphFile, "file", "", "Path to the YAML graph definition file (required)")
	flag.StringVar(&config.GraphFile, "f", "", "Path to the YAML graph definition file (shorthand)")

	var stateFlags stringSlice
	flag.Var(&stateFlags, "state", "Initial state entry in format key=value (can be used multiple times)")
	flag.Var(&stateFlags, "s", "Initial state entry in format key=value (shorthand)")

	flag.StringVar(&config.WorkflowID, "workflow-id", "", "Workflow ID for checkpointing (generated if omitted)")
	flag.StringVar(&config.CheckpointsDir, "checkpoints", "", "Directory to store checkpoints (defaults under home)")
	flag.BoolVar(&config.Resume, "resume", false, "Resume from the workflow's latest checkpoint")
	flag.IntVar(&config.MaxSteps, "max-steps", 0, "Maximum node invocations per run (default 100)")
	flag.DurationVar(&config.Timeout, "timeout", 0, "Execution timeout (e.g., 30s, 5m)")
	flag.BoolVar(&config.Verbose, "verbose", false, "Enable verbose logging")
	flag.BoolVar(&config.Verbose, "v", false, "Enable verbose logging (shorthand)")
	flag.BoolVar(&config.JSON, "json", false, "Output the result in JSON format")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `stategraph - Execute YAML-defined state graphs

Usage: %s [options] -file <graph.yaml>

Examples:
  # Execute a graph
  %s -file graph.yaml

  # Execute with initial state
  %s -file graph.yaml -state count=0 -state name=demo

  # Resume a previous run from its last checkpoint
  %s -file graph.yaml -workflow-id wf-123 -resume

Options:
`, os.Args[0], os.Args[0], os.Args[0], os.Args[0])
		flag.PrintDefaults()

		fmt.Fprintf(os.Stderr, `
Built-in Handlers:
  set        - Set a state key to a value
  delete     - Remove a state key
  increment  - Add an amount to a numeric state key
  print      - Print a message with ${state.key} substitution
  sleep      - Wait for a duration
  fail       - Intentionally fail with a message

State Format:
  Use -state key=value for each entry.
  Values are parsed as JSON if possible, otherwise as strings.
`)
	}

	flag.Parse()

	for _, entry := range stateFlags {
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			fmt.Fprintf(os.Stderr, "Error: invalid state format '%s'. Use key=value\n", entry)
			os.Exit(1)
		}
		key, value := parts[0], parts[1]

		// Try to parse as JSON, fallback to string
		var parsedValue interface{}
		if err := json.Unmarshal([]byte(value), &parsedValue); err != nil {
			parsedValue = value
		}
		config.State[key] = parsedValue
	}

	return config
}
