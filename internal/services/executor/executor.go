// Package executor runs an augmentation plan to completion: it fans plan
// entries out across a bounded worker pool, settles exactly one checkpoint
// row per unit, and resumes past already-completed segments on restart.
package executor

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/kt902/dissertation/internal/models"
	"github.com/kt902/dissertation/pkg/errors"
)

// Runner processes one non-negative plan entry end to end: read the source
// clip, transform each frame, re-encode.
type Runner interface {
	Process(ctx context.Context, entry *models.PlanEntry) error
}

// Summary reports how a run went
type Summary struct {
	Total     int // plan entries considered
	Skipped   int // already completed in the checkpoint
	Completed int // settled as completed this run
	Failed    int // settled with an error status this run
}

// Executor coordinates plan execution. Workers only compute; the executor
// goroutine is the sole writer of the checkpoint file, so no two writers
// ever race on it.
type Executor struct {
	runner         Runner
	checkpointPath string
	workers        int
	unitTimeout    time.Duration
}

// New creates an executor
func New(runner Runner, checkpointPath string, workers int, unitTimeout time.Duration) *Executor {
	if workers < 1 {
		workers = 1
	}
	return &Executor{
		runner:         runner,
		checkpointPath: checkpointPath,
		workers:        workers,
		unitTimeout:    unitTimeout,
	}
}

// unitResult is the tagged outcome a worker hands back; the orchestrator
// turns it into exactly one checkpoint row.
type unitResult struct {
	entry *models.PlanEntry
	err   error
}

// Run executes every plan entry not already completed in the checkpoint.
// Units that fail or time out are recorded with an error status and the run
// continues; the checkpoint is rewritten durably after every settled unit,
// so a crash loses at most the in-flight units.
func (e *Executor) Run(ctx context.Context, entries []*models.PlanEntry) (*Summary, error) {
	previous, err := models.ReadProgress(e.checkpointPath)
	if err != nil {
		return nil, fmt.Errorf("loading checkpoint %s: %w", e.checkpointPath, err)
	}

	// Completed rows carry over; error rows are superseded by this run's
	// re-attempt so each segment keeps a single row.
	completed := make(map[string]bool)
	progress := make([]*models.ProgressRecord, 0, len(previous))
	for _, rec := range previous {
		if rec.Completed() {
			completed[rec.SegmentID] = true
			progress = append(progress, rec)
		}
	}

	var pending []*models.PlanEntry
	for _, entry := range entries {
		if !completed[entry.SegmentID] {
			pending = append(pending, entry)
		}
	}

	summary := &Summary{Total: len(entries), Skipped: len(entries) - len(pending)}
	if len(pending) == 0 {
		log.Printf("[INFO] Nothing to do: all %d plan entries already completed", len(entries))
		return summary, nil
	}

	log.Printf("[INFO] Processing %d of %d plan entries (%d already completed, %d workers)",
		len(pending), len(entries), summary.Skipped, e.workers)

	results := make(chan unitResult)
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(e.workers)

	go func() {
		for _, entry := range pending {
			entry := entry
			group.Go(func() error {
				results <- unitResult{entry: entry, err: e.processUnit(groupCtx, entry)}
				return nil
			})
		}
		group.Wait()
		close(results)
	}()

	settled := 0
	for result := range results {
		record := &models.ProgressRecord{PlanEntry: *result.entry, Status: models.StatusCompleted}
		if result.err != nil {
			record.Status = models.ErrorStatus(result.err)
			summary.Failed++
			log.Printf("[ERROR] Segment %s failed: %v", result.entry.SegmentID, result.err)
		} else {
			summary.Completed++
		}
		progress = append(progress, record)

		if err := e.writeCheckpoint(progress); err != nil {
			return nil, err
		}

		settled++
		log.Printf("[INFO] Progress %d/%d (segment %s: %s)", settled, len(pending), result.entry.SegmentID, record.Status)
	}

	if err := ctx.Err(); err != nil {
		return summary, err
	}

	log.Printf("[INFO] Run finished: %d completed, %d failed, %d skipped", summary.Completed, summary.Failed, summary.Skipped)
	return summary, nil
}

// processUnit runs one entry under the per-unit timeout. Negative entries
// reference a pre-existing donor clip and settle without any video work.
func (e *Executor) processUnit(ctx context.Context, entry *models.PlanEntry) error {
	if entry.Type == models.AugmentNegative {
		return nil
	}

	unitCtx := ctx
	if e.unitTimeout > 0 {
		var cancel context.CancelFunc
		unitCtx, cancel = context.WithTimeout(ctx, e.unitTimeout)
		defer cancel()
	}

	err := e.runner.Process(unitCtx, entry)
	if err != nil && unitCtx.Err() == context.DeadlineExceeded {
		return errors.TimeoutError(fmt.Sprintf("segment %s", entry.SegmentID), e.unitTimeout.String()).WithCause(err)
	}
	return err
}

// writeCheckpoint durably rewrites the checkpoint table: the full table is
// written to a scratch file and renamed into place, so readers never see a
// torn file.
func (e *Executor) writeCheckpoint(progress []*models.ProgressRecord) error {
	dir := filepath.Dir(e.checkpointPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating checkpoint directory: %w", err)
	}

	scratch := filepath.Join(dir, fmt.Sprintf(".%s.%s", filepath.Base(e.checkpointPath), uuid.NewString()))
	if err := models.WriteProgress(scratch, progress); err != nil {
		os.Remove(scratch)
		return fmt.Errorf("writing checkpoint: %w", err)
	}
	if err := os.Rename(scratch, e.checkpointPath); err != nil {
		os.Remove(scratch)
		return fmt.Errorf("replacing checkpoint: %w", err)
	}
	return nil
}
