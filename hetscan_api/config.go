package hetscan_api

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/kelseyhightower/envconfig"
	cli "github.com/urfave/cli/v2"
	"gopkg.in/yaml.v2"
)

// The struct representing the pipeline configuration.
// Precedence: command line flags > HETSCAN_* environment > YAML file > defaults
type Config struct {
	// The root directory containing one subdirectory per cohort
	InputRoot string `yaml:"input_root" envconfig:"INPUT_ROOT"`

	// The root directory for all pipeline artifacts
	OutputRoot string `yaml:"output_root" envconfig:"OUTPUT_ROOT"`

	// Minimum exclusive read depth for a record to pass
	DepthThreshold int `yaml:"depth_threshold" envconfig:"DEPTH_THRESHOLD"`

	// Minimum inclusive genotype quality for a record to pass
	QualityThreshold int `yaml:"quality_threshold" envconfig:"QUALITY_THRESHOLD"`

	// Number of input files filtered concurrently
	Workers int `yaml:"workers" envconfig:"WORKERS"`

	// Skip samples already recorded in the tally store
	Resume bool `yaml:"resume" envconfig:"RESUME"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		InputRoot:        "input",
		OutputRoot:       "output",
		DepthThreshold:   20,
		QualityThreshold: 30,
		Workers:          runtime.NumCPU(),
	}
}

// LoadConfig builds the configuration from the defaults, the optional YAML
// config file, the environment and the command line flags, in that order
func LoadConfig(Cctx *cli.Context) (*Config, error) {
	config := DefaultConfig()

	if path := Cctx.String("config"); path != "" {
		configFile, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open the config file: %w", err)
		}
		if err := yaml.Unmarshal(configFile, config); err != nil {
			return nil, fmt.Errorf("failed to parse the config file: %w", err)
		}
	}

	if err := envconfig.Process("hetscan", config); err != nil {
		return nil, fmt.Errorf("failed to read the environment: %w", err)
	}

	if Cctx.IsSet("input") {
		config.InputRoot = Cctx.String("input")
	}
	if Cctx.IsSet("output") {
		config.OutputRoot = Cctx.String("output")
	}
	if Cctx.IsSet("depth") {
		config.DepthThreshold = Cctx.Int("depth")
	}
	if Cctx.IsSet("quality") {
		config.QualityThreshold = Cctx.Int("quality")
	}
	if Cctx.IsSet("workers") {
		config.Workers = Cctx.Int("workers")
	}
	if Cctx.IsSet("resume") {
		config.Resume = Cctx.Bool("resume")
	}

	if config.Workers <= 0 {
		config.Workers = runtime.NumCPU()
	}

	return config, nil
}

// Thresholds returns the quality predicate bounds
func (config *Config) Thresholds() Thresholds {
	return Thresholds{
		Depth:   config.DepthThreshold,
		Quality: config.QualityThreshold,
	}
}

// FilteredPath returns the output path of the filtered file of one sample
func (config *Config) FilteredPath(cohort string, sampleID string) string {
	name := fmt.Sprintf("%s.het_dp%d_gq%d.vcf.gz", sampleID, config.DepthThreshold, config.QualityThreshold)
	return filepath.Join(config.OutputRoot, "filtered_gvcf", cohort, name)
}

// CohortTablePath returns the path of the merged table of one cohort
func (config *Config) CohortTablePath(cohort string) string {
	return filepath.Join(config.OutputRoot, cohort+"_progressive_counts.tsv")
}

// CombinedTablePath returns the path of the merged table spanning all cohorts
func (config *Config) CombinedTablePath() string {
	return filepath.Join(config.OutputRoot, "all_cohorts_progressive_counts.tsv")
}

// ParquetPath returns the path of the columnar export of one cohort
func (config *Config) ParquetPath(cohort string) string {
	return filepath.Join(config.OutputRoot, cohort+".parquet")
}

func (config *Config) FileCheckPath() string {
	return filepath.Join(config.OutputRoot, "file_check.tsv")
}

func (config *Config) GzIndexPath() string {
	return filepath.Join(config.OutputRoot, "gz_index.txt")
}

func (config *Config) TallyDBPath() string {
	return filepath.Join(config.OutputRoot, "tally.db")
}

func (config *Config) RunningTallyPath() string {
	return filepath.Join(config.OutputRoot, "running_tally.tsv")
}

func (config *Config) ReportPath() string {
	return filepath.Join(config.OutputRoot, "report.txt")
}
