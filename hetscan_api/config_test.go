package hetscan_api

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, 20, config.DepthThreshold)
	assert.Equal(t, 30, config.QualityThreshold)
	assert.Greater(t, config.Workers, 0)
}

func TestConfigPaths(t *testing.T) {
	config := DefaultConfig()
	config.OutputRoot = "out"

	assert.Equal(t,
		filepath.Join("out", "filtered_gvcf", "Cohort_A", "S1.het_dp20_gq30.vcf.gz"),
		config.FilteredPath("Cohort_A", "S1"),
	)
	assert.Equal(t, filepath.Join("out", "Cohort_A_progressive_counts.tsv"), config.CohortTablePath("Cohort_A"))
	assert.Equal(t, filepath.Join("out", "all_cohorts_progressive_counts.tsv"), config.CombinedTablePath())
	assert.Equal(t, filepath.Join("out", "Cohort_A.parquet"), config.ParquetPath("Cohort_A"))
}

// The filtered file name encodes the thresholds it was produced with
func TestFilteredPathTracksThresholds(t *testing.T) {
	config := DefaultConfig()
	config.OutputRoot = "out"
	config.DepthThreshold = 10
	config.QualityThreshold = 50

	assert.Equal(t,
		filepath.Join("out", "filtered_gvcf", "Cohort_A", "S1.het_dp10_gq50.vcf.gz"),
		config.FilteredPath("Cohort_A", "S1"),
	)
}
