package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"blocksmith/internal/config"
	"blocksmith/internal/logging"
)

var (
	// Global flags
	verbose    bool
	configPath string
	worldPath  string
	timeout    time.Duration

	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "blocksmith",
	Short: "blocksmith - goal-directed planner for a one-armed blocks world",
	Long: `blocksmith plans sequences of primitive arm actions (left, right,
pick, drop) that transform a blocks world until it satisfies a goal
formula over spatial relations.

Goals are written in disjunctive normal form:

  ontop(a,b) & beside(b,c) | holding(a)

Worlds are YAML files listing the object catalog, the stacks, the arm
position and the held object.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zc := zap.NewProductionConfig()
		if verbose {
			zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zc.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		if err := logging.Initialize(wd, cfg.Logging); err != nil {
			return err
		}

		if !cmd.Flags().Changed("timeout") {
			timeout = cfg.GetSearchTimeout()
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.CloseAll()
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the blocksmith version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("%s %s\n", config.DefaultConfig().Name, config.DefaultConfig().Version)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "blocksmith.yaml", "Configuration file")
	rootCmd.PersistentFlags().StringVarP(&worldPath, "world", "w", "world.yaml", "World description file")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Search budget per goal")

	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
