package cmd

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kt902/dissertation/internal/models"
	"github.com/kt902/dissertation/internal/services/annotations"
	"github.com/kt902/dissertation/internal/services/negatives"
	"github.com/kt902/dissertation/internal/services/plan"
	"github.com/kt902/dissertation/pkg/config"
)

// generateCmd represents the generate-plan command
var generateCmd = &cobra.Command{
	Use:   "generate-plan",
	Short: "Generate an augmentation plan",
	Long: `Derive the augmentation plan and augmented-segment quality table from
a source annotation CSV.

For every source segment the configured policy decides which augmentation
variants to produce (darken, completeness truncation, occlusion), a
mismatched negative donor is mined, and each derived segment receives a
fresh deterministic ID. Two files are written: the machine-executable plan
and the human-auditable quality table (original, augmented and negative
rows with computed quality scores).`,
	RunE: runGeneratePlan,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().String("csv-path", "", "path to the source annotation CSV")
	generateCmd.Flags().String("original-root", "", "root directory of the pre-clipped original videos")
	generateCmd.Flags().String("plan-csv-path", "", "output path for the augmentation plan CSV")
	generateCmd.Flags().String("segments-csv-path", "", "output path for the augmented segments quality CSV")

	for _, flag := range []string{"csv-path", "plan-csv-path", "segments-csv-path"} {
		if err := generateCmd.MarkFlagRequired(flag); err != nil {
			panic(err)
		}
	}
}

func runGeneratePlan(cmd *cobra.Command, args []string) error {
	csvPath, _ := cmd.Flags().GetString("csv-path")
	originalRoot, _ := cmd.Flags().GetString("original-root")
	planPath, _ := cmd.Flags().GetString("plan-csv-path")
	segmentsPath, _ := cmd.Flags().GetString("segments-csv-path")

	cfg, err := config.GetConfig()
	if err != nil {
		return err
	}

	records, err := models.ReadSegments(csvPath)
	if err != nil {
		return fmt.Errorf("loading annotation table: %w", err)
	}
	log.Printf("[INFO] Loaded %d source segments from %s", len(records), csvPath)

	if originalRoot != "" {
		warnMissingClips(records, originalRoot)
	}

	store := annotations.NewStore(cfg.Paths.AnnotationsRoot)
	policy := &plan.Policy{
		CompletenessFrameThreshold: cfg.Pipeline.CompletenessFrameThreshold,
		HasAnnotations:             store.Exists,
	}
	miner := negatives.NewMiner(records, nil)
	capFrames := int(cfg.Pipeline.FPS) * cfg.Pipeline.CompletenessCapSeconds

	generator := plan.NewGenerator(policy, miner, cfg.Pipeline.FPS, capFrames, cfg.Pipeline.NegativeSamples)
	result, err := generator.Generate(records)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(planPath), 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := models.WritePlan(planPath, result.Plan); err != nil {
		return fmt.Errorf("writing plan: %w", err)
	}
	if err := models.WriteQualityTable(segmentsPath, result.Quality); err != nil {
		return fmt.Errorf("writing quality table: %w", err)
	}

	log.Printf("[INFO] Augmentation plan saved to %s", planPath)
	log.Printf("[INFO] Augmented segments saved to %s", segmentsPath)
	return nil
}

// warnMissingClips reports source segments whose pre-clipped video is absent
// under the originals root. Plan generation proceeds regardless; the missing
// clips surface again as failed units at processing time.
func warnMissingClips(records []*models.SegmentRecord, root string) {
	missing := 0
	for _, rec := range records {
		path := filepath.Join(root, rec.NarrationID+".mp4")
		if _, err := os.Stat(path); err != nil {
			missing++
			log.Printf("[WARN] Source clip not found: %s", path)
		}
	}
	if missing > 0 {
		log.Printf("[WARN] %d of %d source clips missing under %s", missing, len(records), root)
	}
}
