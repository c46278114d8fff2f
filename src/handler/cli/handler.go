package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"dupscan/src/config"
	"dupscan/src/util"
)

// Handler handles CLI commands
type Handler struct {
	cfg        *config.Config
	configPath string
	verbose    bool
	rootCmd    *cobra.Command
}

// New creates a new CLI handler
func New() *Handler {
	h := &Handler{}
	h.setupCommands()
	return h
}

func (h *Handler) setupCommands() {
	h.rootCmd = &cobra.Command{
		Use:   "dupscan",
		Short: "Code duplication detection and refactoring recommendations",
		Long:  "Analyzes JavaScript/TypeScript codebases for duplicated code and generates prioritized refactoring recommendations",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return h.loadConfig()
		},
	}

	// Global flags
	h.rootCmd.PersistentFlags().StringVarP(&h.configPath, "config", "c", "",
		"Path to configuration file")
	h.rootCmd.PersistentFlags().BoolVarP(&h.verbose, "verbose", "v", false,
		"Enable debug logging")

	// Add subcommands
	h.rootCmd.AddCommand(h.analyzeCmd())
	h.rootCmd.AddCommand(h.versionCmd())
	h.rootCmd.AddCommand(h.detectorsCmd())
}

func (h *Handler) loadConfig() error {
	loader := config.NewLoader()
	cfg, err := loader.Load(h.configPath)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	h.cfg = cfg

	if h.verbose {
		h.cfg.Logging.Level = "debug"
	}

	// Initialize logger from config
	util.SetDefaultLogger(h.cfg.Logging)
	util.Debug("Configuration loaded successfully")
	util.Debug("Log level set to: %s", h.cfg.Logging.Level)

	return nil
}

// Execute runs the CLI
func (h *Handler) Execute() error {
	return h.rootCmd.Execute()
}

// Run is the main entry point
func Run() {
	handler := New()
	if err := handler.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
