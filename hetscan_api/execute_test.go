package hetscan_api

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/karyolab/hetscan/logger"
)

func TestMain(m *testing.M) {
	if err := logger.InitLogger(zapcore.WarnLevel); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

// testPipeline builds an input tree with two cohorts and returns a pipeline
// over it
func testPipeline(t *testing.T) *Pipeline {
	t.Helper()
	inputRoot := t.TempDir()
	lines := append(append([]string{}, testHeaderLines...), testDataLines...)

	dirA := writeTestCohort(t, inputRoot, "Cohort_A")
	writeGzipLines(t, filepath.Join(dirA, "S1.gvcf.gz"), lines)
	writeGzipLines(t, filepath.Join(dirA, "S2.gvcf.gz"), lines[:len(testHeaderLines)+2])

	dirB := filepath.Join(inputRoot, "Cohort_B")
	require.NoError(t, os.MkdirAll(dirB, 0755))
	metadata := "SampleID\tAge\tAncestry\tIQ\nS3\t51\tAFR\t110\n"
	require.NoError(t, os.WriteFile(filepath.Join(dirB, "metadata.tsv"), []byte(metadata), 0644))
	writeGzipLines(t, filepath.Join(dirB, "S3.gvcf.gz"), lines)

	config := DefaultConfig()
	config.InputRoot = inputRoot
	config.OutputRoot = t.TempDir()
	config.Workers = 2

	pipeline, err := NewPipeline(config)
	require.NoError(t, err)
	t.Cleanup(func() { pipeline.Close() })
	return pipeline
}

func TestPipelineRun(t *testing.T) {
	pipeline := testPipeline(t)

	require.NoError(t, pipeline.Run())

	out := pipeline.Config.OutputRoot
	for _, name := range []string{
		"file_check.tsv",
		"gz_index.txt",
		"running_tally.tsv",
		"Cohort_A_progressive_counts.tsv",
		"Cohort_B_progressive_counts.tsv",
		"all_cohorts_progressive_counts.tsv",
		"Cohort_A.parquet",
		"Cohort_B.parquet",
		"report.txt",
	} {
		_, err := os.Stat(filepath.Join(out, name))
		assert.NoError(t, err, name)
	}
	_, err := os.Stat(pipeline.Config.FilteredPath("Cohort_A", "S1"))
	assert.NoError(t, err)

	// every per-file count reappears in the combined table
	header, records, err := readTable(pipeline.Config.CombinedTablePath())
	require.NoError(t, err)
	columns := columnIndex(header)
	require.Len(t, records, 3)
	total := 0
	for _, record := range records {
		count, err := strconv.Atoi(record[columns["Het_Count"]])
		require.NoError(t, err)
		total += count
	}
	// S1 and S3 hold the full fixture (2 passing records), S2 only its
	// first two data lines (1 passing record)
	assert.Equal(t, 5, total)
}

func TestPipelineFilterResume(t *testing.T) {
	pipeline := testPipeline(t)
	require.NoError(t, pipeline.Filter())

	results, err := pipeline.Store.CohortResults("Cohort_A")
	require.NoError(t, err)
	require.Len(t, results, 2)

	pipeline.Config.Resume = true
	require.NoError(t, pipeline.Filter())

	// the running tally grew only during the first pass
	_, records, err := readTable(pipeline.Config.RunningTallyPath())
	require.NoError(t, err)
	assert.Len(t, records, 3)
}

func TestPipelineMergeUnmatchedWritesNoCombinedTable(t *testing.T) {
	pipeline := testPipeline(t)
	require.NoError(t, pipeline.Filter())

	// simulate discovery drift: a result the metadata does not know
	require.NoError(t, pipeline.Store.Record(pipeline.RunID, FilterResult{
		SampleID: "X1",
		Cohort:   "Cohort_A",
		GZFile:   "X1.gvcf.gz",
	}))

	err := pipeline.Merge()
	var unmatched *UnmatchedSampleError
	require.ErrorAs(t, err, &unmatched)
	assert.Contains(t, unmatched.MissingMetadata, "X1")

	_, statErr := os.Stat(pipeline.Config.CombinedTablePath())
	assert.True(t, os.IsNotExist(statErr))
}

func TestPipelineFilterReportsMissingFile(t *testing.T) {
	pipeline := testPipeline(t)
	require.NoError(t, os.Remove(filepath.Join(pipeline.Config.InputRoot, "Cohort_A", "S2.gvcf.gz")))

	err := pipeline.Filter()
	require.ErrorContains(t, err, "S2")
	require.ErrorContains(t, err, NoteMissing)

	// the other files were still processed
	results, err2 := pipeline.Store.CohortResults("Cohort_A")
	require.NoError(t, err2)
	assert.Len(t, results, 1)
	resultsB, err2 := pipeline.Store.CohortResults("Cohort_B")
	require.NoError(t, err2)
	assert.Len(t, resultsB, 1)
}
