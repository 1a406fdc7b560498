package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

var (
	once    sync.Once
	initErr error
)

// Init initializes the configuration system
// This should be called once at application startup
func Init() error {
	once.Do(func() {
		// Set default values
		setDefaults()

		// Set up environment variable reading for overrides
		viper.SetEnvPrefix("AUGMENT")
		viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		viper.AutomaticEnv()

		// Load config from fixed location (cleaned for safety)
		configPath := filepath.Clean("./config/settings.yaml")
		viper.SetConfigFile(configPath)

		// Try to read the config file
		if err := viper.ReadInConfig(); err != nil {
			// If the config file doesn't exist, just use defaults and env vars
			if !os.IsNotExist(err) {
				initErr = fmt.Errorf("error reading config file %s: %w", configPath, err)
				return
			}
			// Config file doesn't exist, which is fine - we'll use defaults
		}

		// Validate the configuration
		if err := validate(); err != nil {
			initErr = fmt.Errorf("invalid configuration: %w", err)
		}
	})

	return initErr
}

// GetConfig returns the current configuration as a struct
// Init() must be called before using this
func GetConfig() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &config, nil
}

// Get returns a config value by key using Viper directly
func Get(key string) any {
	return viper.Get(key)
}

// GetString returns a string config value
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetFloat64 returns a float64 config value
func GetFloat64(key string) float64 {
	return viper.GetFloat64(key)
}

// GetDuration returns a time.Duration config value
func GetDuration(key string) time.Duration {
	return viper.GetDuration(key)
}

// validate validates the configuration using Viper values
func validate() error {
	fps := viper.GetFloat64("pipeline.fps")
	if fps <= 0 {
		return fmt.Errorf("invalid pipeline fps: %v (must be > 0)", fps)
	}

	gamma := viper.GetFloat64("pipeline.gamma")
	if gamma <= 0 {
		return fmt.Errorf("invalid darken gamma: %v (must be > 0)", gamma)
	}

	if viper.GetInt("pipeline.negative_samples") <= 0 {
		viper.Set("pipeline.negative_samples", 1)
	}

	// Auto-correct invalid worker count
	if viper.GetInt("processing.workers") <= 0 {
		viper.Set("processing.workers", runtime.NumCPU())
	}

	if viper.GetDuration("processing.unit_timeout") <= 0 {
		viper.Set("processing.unit_timeout", 60*time.Second)
	}

	if viper.GetInt("pipeline.annotation_cache_size") < 1 {
		viper.Set("pipeline.annotation_cache_size", 1)
	}

	return nil
}

// Validate validates a Config struct (for testing)
func (c *Config) Validate() error {
	if c.Pipeline.FPS <= 0 {
		return fmt.Errorf("invalid pipeline fps: %v (must be > 0)", c.Pipeline.FPS)
	}

	if c.Pipeline.Gamma <= 0 {
		return fmt.Errorf("invalid darken gamma: %v (must be > 0)", c.Pipeline.Gamma)
	}

	if c.Processing.Workers <= 0 {
		c.Processing.Workers = runtime.NumCPU()
	}

	if c.Processing.UnitTimeout <= 0 {
		c.Processing.UnitTimeout = 60 * time.Second
	}

	if c.Pipeline.AnnotationCacheSize < 1 {
		c.Pipeline.AnnotationCacheSize = 1
	}

	return nil
}

// setDefaults sets default configuration values
func setDefaults() {
	// Environment defaults
	viper.SetDefault("environment", "development")

	// Pipeline defaults
	// The annotation table encodes timestamps assuming a fixed frame rate;
	// it must match the rate the source clips were normalized to.
	viper.SetDefault("pipeline.fps", 60.0)
	viper.SetDefault("pipeline.gamma", 4.0)
	viper.SetDefault("pipeline.completeness_frame_threshold", 120)
	viper.SetDefault("pipeline.completeness_cap_seconds", 3)
	viper.SetDefault("pipeline.negative_samples", 1)
	viper.SetDefault("pipeline.reference_width", 1920)
	viper.SetDefault("pipeline.reference_height", 1080)
	viper.SetDefault("pipeline.annotation_cache_size", 1)

	// Path defaults
	viper.SetDefault("paths.annotations_root", "./data/visor-annotations")
	viper.SetDefault("paths.originals_root", "./processed_videos/clipped_resized_videos")

	// Processing defaults
	viper.SetDefault("processing.workers", runtime.NumCPU())
	viper.SetDefault("processing.unit_timeout", 60*time.Second)
	viper.SetDefault("processing.ffmpeg_path", "ffmpeg")
	viper.SetDefault("processing.ffprobe_path", "ffprobe")
	viper.SetDefault("processing.ffmpeg_timeout", 5*time.Minute)
}
