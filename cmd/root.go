package cmd

import (
	"fmt"
	"os"

	"github.com/kt902/dissertation/pkg/config"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "augmenter",
	Short: "Video segment quality augmentation pipeline",
	Long: `Augmenter - builds a video segment quality dataset by synthesizing
degraded segments with known quality labels.

From a source annotation table it derives a declarative augmentation plan
(darkening, completeness truncation, occlusion masking, negative mining),
then executes the plan against pre-clipped source videos with resumable,
checkpointed, parallel processing.

Commands:
  • generate-plan - derive the plan and augmented-segment quality table
  • process-plan  - execute the plan, producing augmented video clips`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// NewRootCmd creates a new root command (exported for testing)
func NewRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	// Set up configuration loading with lazy initialization
	cobra.OnInitialize(loadConfig)
}

// loadConfig loads the configuration when a command needs it
// This is called lazily only when a command that needs config runs
func loadConfig() {
	// Skip config loading for commands that don't need it
	cmd, _, _ := rootCmd.Find(os.Args[1:])
	if cmd != nil && (cmd.Name() == "version" || cmd.Name() == "help") {
		return
	}

	// Initialize the configuration
	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing config: %v\n", err)
		os.Exit(1)
	}
}
