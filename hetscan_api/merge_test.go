package hetscan_api

import (
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCohort() Cohort {
	return Cohort{
		Name: "Cohort_A",
		Rows: []MetadataRow{
			{SampleID: "S1", Age: "34", Ancestry: "EUR", IQ: "101"},
			{SampleID: "S2", Age: "28", Ancestry: "EAS", IQ: "97"},
		},
	}
}

func testResult(sampleID string, hetCount int) FilterResult {
	return FilterResult{
		SampleID:     sampleID,
		Cohort:       "Cohort_A",
		GZFile:       sampleID + ".gvcf.gz",
		FilteredFile: sampleID + ".het_dp20_gq30.vcf.gz",
		NRecords:     hetCount * 3,
		AfterGTHet:   hetCount * 2,
		AfterDP:      hetCount,
		AfterGQ:      hetCount,
		HetCount:     hetCount,
	}
}

func TestMergeCohort(t *testing.T) {
	results := map[string]FilterResult{
		"S1": testResult("S1", 10),
		"S2": testResult("S2", 4),
	}

	rows, err := MergeCohort(testCohort(), results)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "S1", rows[0].SampleID)
	assert.Equal(t, "34", rows[0].Age)
	assert.Equal(t, "Cohort_A", rows[0].Cohort)
	assert.Equal(t, 10, rows[0].Result.HetCount)
	assert.Equal(t, 4, rows[1].Result.HetCount)
}

func TestMergeCohortMissingResult(t *testing.T) {
	results := map[string]FilterResult{
		"S1": testResult("S1", 10),
	}

	_, err := MergeCohort(testCohort(), results)

	var unmatched *UnmatchedSampleError
	require.ErrorAs(t, err, &unmatched)
	assert.Equal(t, "Cohort_A", unmatched.Cohort)
	assert.Equal(t, []string{"S2"}, unmatched.MissingResults)
	assert.Empty(t, unmatched.MissingMetadata)
}

func TestMergeCohortMissingMetadata(t *testing.T) {
	results := map[string]FilterResult{
		"S1": testResult("S1", 10),
		"S2": testResult("S2", 4),
		"X1": testResult("X1", 7),
	}

	_, err := MergeCohort(testCohort(), results)

	var unmatched *UnmatchedSampleError
	require.ErrorAs(t, err, &unmatched)
	assert.Equal(t, []string{"X1"}, unmatched.MissingMetadata)
}

// The Het_Count column of the merged table sums to the per-file counts
func TestMergedTableSumProperty(t *testing.T) {
	results := map[string]FilterResult{
		"S1": testResult("S1", 10),
		"S2": testResult("S2", 4),
	}
	rows, err := MergeCohort(testCohort(), results)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "Cohort_A_progressive_counts.tsv")
	require.NoError(t, WriteMergedTable(path, rows))

	header, records, err := readTable(path)
	require.NoError(t, err)
	columns := columnIndex(header)

	perFileSum := 0
	for _, result := range results {
		perFileSum += result.HetCount
	}
	tableSum := 0
	for _, record := range records {
		value, err := strconv.Atoi(record[columns["Het_Count"]])
		require.NoError(t, err)
		tableSum += value
	}
	assert.Equal(t, perFileSum, tableSum)
}

func TestWriteMergedTableColumns(t *testing.T) {
	rows, err := MergeCohort(testCohort(), map[string]FilterResult{
		"S1": testResult("S1", 10),
		"S2": testResult("S2", 4),
	})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "merged.tsv")
	require.NoError(t, WriteMergedTable(path, rows))

	header, records, err := readTable(path)
	require.NoError(t, err)
	assert.Equal(t, mergedTableHeader, header)
	assert.Len(t, records, 2)
}

func TestAppendRunningTally(t *testing.T) {
	path := filepath.Join(t.TempDir(), "running_tally.tsv")

	require.NoError(t, AppendRunningTally(path, testResult("S1", 10)))
	require.NoError(t, AppendRunningTally(path, testResult("S2", 4)))

	header, records, err := readTable(path)
	require.NoError(t, err)
	assert.Equal(t, "SampleID", header[0])
	require.Len(t, records, 2)
	assert.Equal(t, "S1", records[0][0])
	assert.Equal(t, "S2", records[1][0])
}
