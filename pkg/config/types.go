package config

import "time"

// Config is the top-level configuration structure
type Config struct {
	Environment string           `mapstructure:"environment"`
	Pipeline    PipelineConfig   `mapstructure:"pipeline"`
	Paths       PathsConfig      `mapstructure:"paths"`
	Processing  ProcessingConfig `mapstructure:"processing"`
}

// PipelineConfig holds augmentation pipeline parameters
type PipelineConfig struct {
	// FPS is the frame rate the annotation table assumes when converting
	// frame counts to timestamps. Source clips are normalized to this rate
	// upstream; it must be > 0.
	FPS float64 `mapstructure:"fps"`

	// Gamma is the exponent applied by the darken transform.
	Gamma float64 `mapstructure:"gamma"`

	// CompletenessFrameThreshold is the minimum frame count a segment needs
	// before a completeness (truncation) variant is planned for it.
	CompletenessFrameThreshold int `mapstructure:"completeness_frame_threshold"`

	// CompletenessCapSeconds bounds the truncated clip length in seconds;
	// the frame cap is FPS * CompletenessCapSeconds.
	CompletenessCapSeconds int `mapstructure:"completeness_cap_seconds"`

	// NegativeSamples is the number of mismatched donors drawn per segment.
	NegativeSamples int `mapstructure:"negative_samples"`

	// ReferenceWidth/ReferenceHeight is the resolution the spatial
	// annotations were drawn against.
	ReferenceWidth  int `mapstructure:"reference_width"`
	ReferenceHeight int `mapstructure:"reference_height"`

	// AnnotationCacheSize is the LRU capacity for per-video annotation
	// indexes. Minimum 1.
	AnnotationCacheSize int `mapstructure:"annotation_cache_size"`
}

// PathsConfig holds filesystem conventions shared with collaborator scripts
type PathsConfig struct {
	AnnotationsRoot string `mapstructure:"annotations_root"`
	OriginalsRoot   string `mapstructure:"originals_root"`
}

// ProcessingConfig holds executor and ffmpeg settings
type ProcessingConfig struct {
	Workers       int           `mapstructure:"workers"`
	UnitTimeout   time.Duration `mapstructure:"unit_timeout"`
	FFmpegPath    string        `mapstructure:"ffmpeg_path"`
	FFprobePath   string        `mapstructure:"ffprobe_path"`
	FFmpegTimeout time.Duration `mapstructure:"ffmpeg_timeout"`
}
