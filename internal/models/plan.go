package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// AugmentType identifies the kind of defect a plan entry injects
type AugmentType string

const (
	AugmentDarken       AugmentType = "darken"
	AugmentCompleteness AugmentType = "completeness"
	AugmentOcclusion    AugmentType = "occlusion"
	AugmentNegative     AugmentType = "negative"
)

// ParseAugmentType validates and returns an AugmentType
func ParseAugmentType(s string) (AugmentType, error) {
	switch t := AugmentType(s); t {
	case AugmentDarken, AugmentCompleteness, AugmentOcclusion, AugmentNegative:
		return t, nil
	default:
		return "", fmt.Errorf("unknown augment_type %q", s)
	}
}

// AugmentParams is the tagged parameter payload for a plan entry. Exactly
// the fields the entry's type allows may be set; everything round-trips as
// JSON, never as an evaluated expression.
type AugmentParams struct {
	// FrameCount is set for completeness entries: the number of frames the
	// output clip keeps.
	FrameCount int `json:"frame_count,omitempty"`

	// NegativeNarrationID is set for negative entries: the donor segment
	// whose clip stands in for this one.
	NegativeNarrationID string `json:"negative_narration_id,omitempty"`
}

// ValidateFor checks the params match the entry's type
func (p AugmentParams) ValidateFor(t AugmentType) error {
	switch t {
	case AugmentCompleteness:
		if p.FrameCount <= 0 {
			return fmt.Errorf("completeness entry requires frame_count > 0")
		}
		if p.NegativeNarrationID != "" {
			return fmt.Errorf("completeness entry must not carry negative_narration_id")
		}
	case AugmentNegative:
		if p.NegativeNarrationID == "" {
			return fmt.Errorf("negative entry requires negative_narration_id")
		}
		if p.FrameCount != 0 {
			return fmt.Errorf("negative entry must not carry frame_count")
		}
	case AugmentDarken, AugmentOcclusion:
		if p != (AugmentParams{}) {
			return fmt.Errorf("%s entry takes no params", t)
		}
	default:
		return fmt.Errorf("unknown augment_type %q", t)
	}
	return nil
}

// Encode renders the params as the JSON stored in the plan CSV
func (p AugmentParams) Encode() string {
	if p == (AugmentParams{}) {
		return "{}"
	}
	b, _ := json.Marshal(p)
	return string(b)
}

// ParseAugmentParams decodes the JSON params column
func ParseAugmentParams(s string) (AugmentParams, error) {
	var p AugmentParams
	s = strings.TrimSpace(s)
	if s == "" {
		return p, nil
	}
	dec := json.NewDecoder(strings.NewReader(s))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		return AugmentParams{}, fmt.Errorf("bad augment_params %q: %w", s, err)
	}
	return p, nil
}

// PlanEntry is one machine-executable augmentation work item. Entries are
// immutable after generation and consumed exactly once by the executor.
type PlanEntry struct {
	SegmentID     string
	NarrationID   string
	ParticipantID string
	VideoID       string
	StartFrame    int
	StopFrame     int
	Narration     string
	Type          AugmentType
	Params        AugmentParams
}

// Validate checks entry-level invariants
func (e *PlanEntry) Validate() error {
	if e.SegmentID == "" {
		return fmt.Errorf("plan entry has empty segment_id")
	}
	if e.NarrationID == "" {
		return fmt.Errorf("plan entry %s has empty narration_id", e.SegmentID)
	}
	if err := e.Params.ValidateFor(e.Type); err != nil {
		return fmt.Errorf("plan entry %s: %w", e.SegmentID, err)
	}
	return nil
}

// planColumns is the plan CSV column order
var planColumns = []string{
	"segment_id",
	"narration_id",
	"participant_id",
	"video_id",
	"start_frame",
	"stop_frame",
	"narration",
	"augment_type",
	"augment_params",
}

// PlanColumns returns the plan CSV header
func PlanColumns() []string {
	return append([]string{}, planColumns...)
}

func planEntryFromFields(get func(column string) (string, bool)) (*PlanEntry, error) {
	req := func(column string) (string, error) {
		v, ok := get(column)
		if !ok {
			return "", fmt.Errorf("missing column %q", column)
		}
		return v, nil
	}

	entry := &PlanEntry{}
	var err error
	if entry.SegmentID, err = req("segment_id"); err != nil {
		return nil, err
	}
	if entry.NarrationID, err = req("narration_id"); err != nil {
		return nil, err
	}
	if entry.ParticipantID, err = req("participant_id"); err != nil {
		return nil, err
	}
	if entry.VideoID, err = req("video_id"); err != nil {
		return nil, err
	}

	startFrame, err := req("start_frame")
	if err != nil {
		return nil, err
	}
	if entry.StartFrame, err = strconv.Atoi(startFrame); err != nil {
		return nil, fmt.Errorf("column start_frame: %w", err)
	}
	stopFrame, err := req("stop_frame")
	if err != nil {
		return nil, err
	}
	if entry.StopFrame, err = strconv.Atoi(stopFrame); err != nil {
		return nil, fmt.Errorf("column stop_frame: %w", err)
	}

	if entry.Narration, err = req("narration"); err != nil {
		return nil, err
	}

	rawType, err := req("augment_type")
	if err != nil {
		return nil, err
	}
	if entry.Type, err = ParseAugmentType(rawType); err != nil {
		return nil, err
	}

	rawParams, err := req("augment_params")
	if err != nil {
		return nil, err
	}
	if entry.Params, err = ParseAugmentParams(rawParams); err != nil {
		return nil, err
	}

	return entry, entry.Validate()
}

func (e *PlanEntry) fields() []string {
	return []string{
		e.SegmentID,
		e.NarrationID,
		e.ParticipantID,
		e.VideoID,
		strconv.Itoa(e.StartFrame),
		strconv.Itoa(e.StopFrame),
		e.Narration,
		string(e.Type),
		e.Params.Encode(),
	}
}

// Progress statuses
const StatusCompleted = "completed"

// ErrorStatus renders a failure status for the checkpoint table
func ErrorStatus(err error) string {
	return "error: " + err.Error()
}

// ProgressRecord is one checkpoint row: the plan entry it settles plus the
// terminal status of that unit.
type ProgressRecord struct {
	PlanEntry
	Status string
}

// Completed reports whether the unit finished successfully
func (r *ProgressRecord) Completed() bool {
	return r.Status == StatusCompleted
}

// ProgressColumns returns the checkpoint CSV header
func ProgressColumns() []string {
	return append(append([]string{}, planColumns...), "status")
}

func progressFromFields(get func(column string) (string, bool)) (*ProgressRecord, error) {
	entry, err := planEntryFromFields(get)
	if err != nil {
		return nil, err
	}
	status, ok := get("status")
	if !ok {
		return nil, fmt.Errorf("missing column %q", "status")
	}
	return &ProgressRecord{PlanEntry: *entry, Status: status}, nil
}

func (r *ProgressRecord) fields() []string {
	return append(r.PlanEntry.fields(), r.Status)
}
