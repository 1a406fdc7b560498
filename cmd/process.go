package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/kt902/dissertation/internal/models"
	"github.com/kt902/dissertation/internal/services/annotations"
	"github.com/kt902/dissertation/internal/services/executor"
	"github.com/kt902/dissertation/internal/services/transform"
	"github.com/kt902/dissertation/pkg/config"
	"github.com/kt902/dissertation/pkg/ffmpeg"
)

// processCmd represents the process-plan command
var processCmd = &cobra.Command{
	Use:   "process-plan",
	Short: "Execute an augmentation plan",
	Long: `Execute the augmentation plan, producing one H.264 clip per
non-negative plan entry.

Execution is resumable: entries already marked completed in the progress
CSV are skipped, and the progress file is rewritten durably after every
settled unit. Failed units are recorded with an error status and the run
continues; the command exits nonzero if any unit failed.`,
	RunE: runProcessPlan,
}

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().String("plan-csv-path", "", "path to the augmentation plan CSV")
	processCmd.Flags().String("augmented-root", "", "root directory for augmented output clips")
	processCmd.Flags().String("progress-csv-path", "", "path of the progress/checkpoint CSV")

	for _, flag := range []string{"plan-csv-path", "augmented-root", "progress-csv-path"} {
		if err := processCmd.MarkFlagRequired(flag); err != nil {
			panic(err)
		}
	}
}

func runProcessPlan(cmd *cobra.Command, args []string) error {
	planPath, _ := cmd.Flags().GetString("plan-csv-path")
	augmentedRoot, _ := cmd.Flags().GetString("augmented-root")
	progressPath, _ := cmd.Flags().GetString("progress-csv-path")

	cfg, err := config.GetConfig()
	if err != nil {
		return err
	}

	entries, err := models.ReadPlan(planPath)
	if err != nil {
		return fmt.Errorf("loading plan: %w", err)
	}

	ff := ffmpeg.New(cfg.Processing.FFmpegPath, cfg.Processing.FFprobePath, cfg.Processing.FFmpegTimeout)
	if err := ff.ValidateBinaries(); err != nil {
		return err
	}

	if err := os.MkdirAll(augmentedRoot, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	cache := annotations.NewCache(annotations.NewStore(cfg.Paths.AnnotationsRoot), cfg.Pipeline.AnnotationCacheSize)
	runner := executor.NewClipRunner(ff, cfg.Paths.OriginalsRoot, augmentedRoot, transform.Options{
		Gamma:       cfg.Pipeline.Gamma,
		Annotations: cache,
		RefWidth:    cfg.Pipeline.ReferenceWidth,
		RefHeight:   cfg.Pipeline.ReferenceHeight,
	})

	exec := executor.New(runner, progressPath, cfg.Processing.Workers, cfg.Processing.UnitTimeout)
	summary, err := exec.Run(cmd.Context(), entries)
	if err != nil {
		return err
	}

	log.Printf("[INFO] Augmentation processing completed. Progress saved to %s", progressPath)
	if summary.Failed > 0 {
		return fmt.Errorf("%d of %d units failed; rerun to retry them", summary.Failed, summary.Total)
	}
	return nil
}
