package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/philipparndt/femscene/internal/config"
	"github.com/philipparndt/femscene/version"
	"github.com/spf13/cobra"
)

var (
	configFile string
	logLevel   string

	cfg    config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "femscene",
	Short: "Inspect and select parts of structural models",
	Long: `femscene shows structural models (nodes, two-node elements and element groups)
in an interactive viewport with frustum box selection and an arcball camera.
Models are read from YAML structure files or derived from STL meshes.`,
	Version:           version.GetFullVersion(),
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "TOML settings file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides the settings file")
}

// setup loads the settings and installs the logger for every command
func setup(cmd *cobra.Command, args []string) error {
	var err error
	if cfg, err = config.Load(configFile); err != nil {
		return err
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	level, err := config.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}

	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
