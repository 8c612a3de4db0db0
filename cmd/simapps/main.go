package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sim-tools/simapps/internal/config"
)

var (
	configFile string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "simapps",
	Short: "Command line utilities for SIM directory workflows",
	Long: `Command line utilities for SIM directory workflows.

If no config file is specified, simapps will look for config files in the
following locations:
  - ./config.yaml
  - ./config/config.yaml
  - /etc/simapps/config.yaml
  - ~/.config/simapps/config.yaml`,
}

// loadConfig loads the configuration based on the --config flag or default locations
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	return cfg, nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to the configuration file (optional)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logrus.Fatalf("Failed to execute command: %v", err)
	}
}
