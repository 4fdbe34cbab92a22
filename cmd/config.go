package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/inference-sim/perftrend/perf"
)

// Output formats.
const (
	outputText = "text"
	outputJSON = "json"
)

// Config represents the full defaults.yaml structure.
// All top-level sections must be listed to satisfy KnownFields(true) strict parsing.
type Config struct {
	Buckets           []perf.Bucket `yaml:"buckets" validate:"dive"`
	Operations        []string      `yaml:"operations" validate:"dive,required"`
	SearchOperation   string        `yaml:"search_operation"`
	CreationOperation string        `yaml:"creation_operation"`
	Parallelism       int           `yaml:"parallelism" validate:"gte=0"`
	Output            string        `yaml:"output" validate:"omitempty,oneof=text json"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// DefaultConfig returns the configuration used when no config file is given.
func DefaultConfig() *Config {
	grade := perf.DefaultGradeConfig()
	return &Config{
		Buckets:           perf.DefaultLoadBuckets(),
		Operations:        []string{"Search_Operation", "Variable_Check", "Create_New_Tab", "Excel_Parser_Creation"},
		SearchOperation:   grade.SearchOperation,
		CreationOperation: grade.CreationOperation,
		Parallelism:       4,
		Output:            outputText,
	}
}

// LoadConfig parses a YAML config file with strict field checking and validates it.
// An empty path returns DefaultConfig. Fields absent from the file keep their defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return parseConfig(data, cfg)
}

func parseConfig(data []byte, cfg *Config) (*Config, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// ReportConfig converts the config for perf.BuildReport.
func (c *Config) ReportConfig() *perf.ReportConfig {
	return &perf.ReportConfig{
		Buckets:     c.Buckets,
		Grade:       c.GradeConfig(),
		Parallelism: c.Parallelism,
	}
}

// GradeConfig names the grade operations.
func (c *Config) GradeConfig() *perf.GradeConfig {
	return &perf.GradeConfig{SearchOperation: c.SearchOperation, CreationOperation: c.CreationOperation}
}

// CompareConfig converts the config for perf.Compare.
func (c *Config) CompareConfig() *perf.CompareConfig {
	return &perf.CompareConfig{CanonicalOperations: c.Operations}
}
