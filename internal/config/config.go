// Package config loads thread pool and load-driver settings from YAML or JSON files.
package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jzx17/gothreadpool/pkg/metrics"
	"github.com/jzx17/gothreadpool/pkg/types"
	"github.com/jzx17/gothreadpool/pkg/worker"
	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk configuration layout
type FileConfig struct {
	Pool    PoolConfig    `yaml:"pool" json:"pool"`
	Load    LoadConfig    `yaml:"load" json:"load"`
	Metrics MetricsConfig `yaml:"metrics" json:"metrics"`
}

// PoolConfig holds thread pool settings
type PoolConfig struct {
	Name     string `yaml:"name" json:"name"`
	Workers  int    `yaml:"workers" json:"workers"`
	LogLevel string `yaml:"log_level" json:"log_level"`
}

// LoadConfig holds settings for the load driver
type LoadConfig struct {
	Tasks        int     `yaml:"tasks" json:"tasks"`
	Submitters   int     `yaml:"submitters" json:"submitters"`
	TaskDuration string  `yaml:"task_duration" json:"task_duration"`
	FailEvery    int     `yaml:"fail_every" json:"fail_every"`
	SubmitRate   float64 `yaml:"submit_rate" json:"submit_rate"`
	SubmitBurst  int     `yaml:"submit_burst" json:"submit_burst"`
}

// MetricsConfig holds Prometheus endpoint settings
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" json:"enabled"`
	Addr    string `yaml:"addr" json:"addr"`
}

// Settings is the validated, typed form of FileConfig
type Settings struct {
	PoolName     string
	Workers      int
	LogLevel     slog.Level
	Tasks        int
	Submitters   int
	TaskDuration time.Duration
	FailEvery    int
	SubmitRate   float64
	SubmitBurst  int
	MetricsAddr  string
}

// Default returns the settings used when no file is given
func Default() Settings {
	return Settings{
		PoolName:     "loadgen",
		Workers:      4,
		LogLevel:     slog.LevelInfo,
		Tasks:        8,
		Submitters:   1,
		TaskDuration: 100 * time.Millisecond,
		SubmitBurst:  1,
	}
}

// LoadFile reads a configuration file, choosing the decoder by extension
func LoadFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config FileConfig
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}

	return &config, nil
}

// ToSettings converts the file config to Settings, filling defaults for unset fields
func (f *FileConfig) ToSettings() (Settings, error) {
	s := Default()

	if f.Pool.Name != "" {
		s.PoolName = f.Pool.Name
	}
	if f.Pool.Workers < 0 {
		return s, fmt.Errorf("%w: workers must not be negative, got %d", types.ErrInvalidConfig, f.Pool.Workers)
	}
	if f.Pool.Workers > 0 {
		s.Workers = f.Pool.Workers
	}
	if f.Pool.LogLevel != "" {
		level, err := ParseLevel(f.Pool.LogLevel)
		if err != nil {
			return s, err
		}
		s.LogLevel = level
	}

	if f.Load.Tasks < 0 {
		return s, fmt.Errorf("%w: tasks must not be negative, got %d", types.ErrInvalidConfig, f.Load.Tasks)
	}
	if f.Load.Tasks > 0 {
		s.Tasks = f.Load.Tasks
	}
	if f.Load.Submitters > 0 {
		s.Submitters = f.Load.Submitters
	}
	if f.Load.TaskDuration != "" {
		d, err := time.ParseDuration(f.Load.TaskDuration)
		if err != nil {
			return s, fmt.Errorf("%w: invalid task_duration: %v", types.ErrInvalidConfig, err)
		}
		s.TaskDuration = d
	}
	if f.Load.FailEvery > 0 {
		s.FailEvery = f.Load.FailEvery
	}
	if f.Load.SubmitRate < 0 {
		return s, fmt.Errorf("%w: submit_rate must not be negative", types.ErrInvalidConfig)
	}
	s.SubmitRate = f.Load.SubmitRate
	if f.Load.SubmitBurst > 0 {
		s.SubmitBurst = f.Load.SubmitBurst
	}

	if f.Metrics.Enabled {
		s.MetricsAddr = f.Metrics.Addr
		if s.MetricsAddr == "" {
			s.MetricsAddr = ":9090"
		}
	}

	return s, nil
}

// ParseLevel maps debug|info|warn|error to a slog level
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("%w: invalid log level %q", types.ErrInvalidConfig, s)
	}
	return level, nil
}

// PoolConfig builds the worker pool configuration from Settings
func (s Settings) PoolConfig(logger *slog.Logger, registry *metrics.Registry) *worker.Config {
	cfg := worker.DefaultConfig()
	cfg.PoolSize = s.Workers
	cfg.Name = s.PoolName
	cfg.Metrics = registry
	if logger != nil {
		cfg.Logger = logger
	}
	return cfg
}
