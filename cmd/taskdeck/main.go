// Package main provides the taskdeck CLI entry point. taskdeck is a
// terminal shell for managing projects: todos, notes, dev logs,
// architecture components, and tech stacks, driven by a slash-command
// language.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"taskdeck/internal/commands"
	"taskdeck/internal/logger"
	"taskdeck/internal/output"
	"taskdeck/internal/projects"
	"taskdeck/internal/shell"
	"taskdeck/internal/store"
	"taskdeck/internal/version"
	"taskdeck/pkg/decktypes"
)

var (
	logLevel string
	logFile  string
	dbPath   string
	userID   string
)

// rootCmd starts the interactive shell when called without a
// subcommand.
var rootCmd = &cobra.Command{
	Use:   "taskdeck",
	Short: "taskdeck - project management shell",
	Long: `taskdeck is a terminal shell for managing projects: todos and
subtasks, notes, dev logs, architecture components with typed
relationships, and tech stacks. Commands are slash-prefixed lines,
optionally batched with && or newlines.`,
	RunE: runShell,
}

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start the interactive shell",
	RunE:  runShell,
}

var runCmd = &cobra.Command{
	Use:   "run <script.tdk>",
	Short: "Execute a command script without entering the shell",
	Args:  cobra.ExactArgs(1),
	RunE:  runScript,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Println(version.GetDetailedVersion())
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to a file instead of stderr")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Database file path (overrides configuration)")
	rootCmd.PersistentFlags().StringVar(&userID, "user", "", "Acting user id (overrides configuration)")

	rootCmd.AddCommand(shellCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(versionCmd)
}

// setup wires configuration, logging, storage, and dispatch, returning
// a ready shell.
func setup() (*shell.Shell, error) {
	config, err := shell.InitializeServices()
	if err != nil {
		return nil, fmt.Errorf("initializing services: %w", err)
	}

	level := logLevel
	if level == "" {
		level = config.LogLevel()
	}
	file := logFile
	if file == "" {
		file = config.LogFile()
	}
	if err := logger.Configure(level, file); err != nil {
		return nil, fmt.Errorf("configuring logger: %w", err)
	}

	path := dbPath
	if path == "" {
		path = config.DBPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	projectStore, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", path, err)
	}

	user := userID
	if user == "" {
		user = config.User()
	}

	cache := projects.NewSummaryCache(config.CacheTTL(), nil)
	resolver := projects.NewResolver(projectStore, cache)
	dispatcher := commands.NewDispatcher(commands.GetGlobalRegistry(), resolver, projectStore)

	session := &decktypes.Session{UserID: user}
	return shell.New(dispatcher, output.NewPrinter(), session), nil
}

func runShell(_ *cobra.Command, _ []string) error {
	logger.Info("starting taskdeck", "version", version.GetVersion())

	s, err := setup()
	if err != nil {
		return err
	}
	s.Run()
	return nil
}

func runScript(_ *cobra.Command, args []string) error {
	s, err := setup()
	if err != nil {
		return err
	}
	return s.RunScript(args[0])
}
