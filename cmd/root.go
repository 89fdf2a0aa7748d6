// Package cmd provides the CLI commands for the Spur application.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"
	"github.com/mvidal/spur/internal/adapters/notification"
	"github.com/mvidal/spur/internal/adapters/storage"
	"github.com/mvidal/spur/internal/adapters/tui"
	"github.com/mvidal/spur/internal/config"
	"github.com/mvidal/spur/internal/domain"
	"github.com/mvidal/spur/internal/logger"
	"github.com/mvidal/spur/internal/ports"
	"github.com/mvidal/spur/internal/services"
)

var (
	// Version info (set at build time via ldflags)
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"

	// Global flags
	dbPath     string
	jsonOutput bool
	debugMode  bool

	// Global dependencies
	storageAdapter ports.Storage
	activitySvc    *services.ActivityService
	notifier       *notification.Notifier
	appConfig      *config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "spur",
	Short: "Spur - random activity suggestions for your spare minutes",
	Long: `Spur keeps a list of activities grouped by how long they take.
Tell it how many minutes you have and it suggests one at random,
with a countdown so you know when time is up.

Run "spur" with no arguments to open the interactive picker.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeServices()
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return cleanupServices()
	},
	RunE: runTUI,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to the database file (default: ~/.spur/spur.db)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output results in JSON format")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Mirror logs to stderr at debug level")

	// Set version - cobra handles --version automatically
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("Spur\nVersion: {{.Version}}\n")

	// Add subcommands
	rootCmd.AddCommand(pickCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(resetCmd)
}

// initializeServices sets up all the required services and adapters.
func initializeServices() error {
	// Load configuration
	var err error
	appConfig, err = config.Load()
	if err != nil {
		// If config loading fails, use defaults
		appConfig = config.DefaultConfig()
	}

	if err := logger.Init(logger.Config{
		Debug:   debugMode,
		DataDir: appConfig.Storage.DataDir,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logger init failed: %v\n", err)
	}

	// Initialize notifier
	notifier = notification.New(&appConfig.Notifications)

	// Determine database path
	if dbPath == "" {
		dbPath = config.GetDBPath(appConfig)
	}

	// Ensure directory exists
	dbDir := getDir(dbPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}

	// Initialize storage
	storageAdapter, err = storage.New(dbPath)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	// Initialize the activity service with persisted state
	activitySvc = services.NewActivityService(storageAdapter)
	activitySvc.Load(context.Background())

	return nil
}

// cleanupServices closes all resources.
func cleanupServices() error {
	if storageAdapter != nil {
		return storageAdapter.Close()
	}
	return nil
}

// setupSignalHandler sets up a context that cancels on interrupt signals.
func setupSignalHandler() context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		cancel()
	}()

	return ctx
}

// runTUI launches the interactive picker for the bare "spur" command.
func runTUI(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(os.Stdout.Fd()) {
		return fmt.Errorf("interactive mode needs a terminal; use \"spur pick\" in scripts")
	}

	ctx := setupSignalHandler()

	onTimeUp := func(pick *domain.Pick) {
		if notifier == nil || !notifier.IsEnabled() {
			return
		}
		if err := notifier.NotifyTimeUp(pick.Activity, pick.Minutes); err != nil {
			logger.Warn("notification failed", "err", err)
		}
	}

	if err := tui.Run(ctx, activitySvc, &appConfig.Theme, onTimeUp); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

// getDir returns the directory of a file path.
func getDir(path string) string {
	lastSep := 0
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' || path[i] == '\\' {
			lastSep = i
			break
		}
	}
	if lastSep == 0 {
		return "."
	}
	return path[:lastSep]
}
