package hetscan_api

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"
)

// Column order of the merged progressive count tables
var mergedTableHeader = []string{
	"SampleID", "Age", "Ancestry", "IQ", "Cohort", "GZ_File", "Filtered_GZ_File",
	"N_Records", "GT_Missing", "After_GT_Het", "After_DP", "After_GQ", "Het_Count", "Malformed_Count",
}

// MergeCohort joins the filter results of one cohort with its metadata
// table, one row per SampleID. The join is strict in both directions: any
// metadata row without a result or result without a metadata row fails the
// whole cohort with an UnmatchedSampleError before anything is written.
func MergeCohort(cohort Cohort, results map[string]FilterResult) ([]MergedRow, error) {
	missingResults := []string{}
	for _, row := range cohort.Rows {
		if _, ok := results[row.SampleID]; !ok {
			missingResults = append(missingResults, row.SampleID)
		}
	}

	known := map[string]bool{}
	for _, row := range cohort.Rows {
		known[row.SampleID] = true
	}
	missingMetadata := []string{}
	for sampleID := range results {
		if !known[sampleID] {
			missingMetadata = append(missingMetadata, sampleID)
		}
	}
	sort.Strings(missingMetadata)

	if len(missingResults) > 0 || len(missingMetadata) > 0 {
		return nil, &UnmatchedSampleError{
			Cohort:          cohort.Name,
			MissingResults:  missingResults,
			MissingMetadata: missingMetadata,
		}
	}

	merged := []MergedRow{}
	for _, row := range cohort.Rows {
		merged = append(merged, MergedRow{
			MetadataRow: row,
			Cohort:      cohort.Name,
			Result:      results[row.SampleID],
		})
	}
	return merged, nil
}

// WriteMergedTable writes one merged progressive count table
func WriteMergedTable(path string, rows []MergedRow) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create the merged table: %w", err)
	}
	defer out.Close()

	writer := csv.NewWriter(out)
	writer.Comma = '\t'
	if err := writer.Write(mergedTableHeader); err != nil {
		return err
	}
	for _, row := range rows {
		if err := writer.Write(row.record()); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func (row MergedRow) record() []string {
	return []string{
		row.SampleID,
		row.Age,
		row.Ancestry,
		row.IQ,
		row.Cohort,
		row.Result.GZFile,
		row.Result.FilteredFile,
		strconv.Itoa(row.Result.NRecords),
		strconv.Itoa(row.Result.GTMissing),
		strconv.Itoa(row.Result.AfterGTHet),
		strconv.Itoa(row.Result.AfterDP),
		strconv.Itoa(row.Result.AfterGQ),
		strconv.Itoa(row.Result.HetCount),
		strconv.Itoa(row.Result.MalformedCount),
	}
}

// AppendRunningTally appends one filter result to the running tally file.
// The file is append-only so an interrupted run never invalidates it.
func AppendRunningTally(path string, result FilterResult) error {
	out, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer out.Close()

	info, err := out.Stat()
	if err != nil {
		return err
	}

	writer := csv.NewWriter(out)
	writer.Comma = '\t'
	if info.Size() == 0 {
		header := []string{
			"SampleID", "Cohort", "GZ_File", "Filtered_GZ_File",
			"N_Records", "GT_Missing", "After_GT_Het", "After_DP", "After_GQ", "Het_Count", "Malformed_Count",
		}
		if err := writer.Write(header); err != nil {
			return err
		}
	}
	record := []string{
		result.SampleID,
		result.Cohort,
		result.GZFile,
		result.FilteredFile,
		strconv.Itoa(result.NRecords),
		strconv.Itoa(result.GTMissing),
		strconv.Itoa(result.AfterGTHet),
		strconv.Itoa(result.AfterDP),
		strconv.Itoa(result.AfterGQ),
		strconv.Itoa(result.HetCount),
		strconv.Itoa(result.MalformedCount),
	}
	if err := writer.Write(record); err != nil {
		return err
	}
	writer.Flush()
	return writer.Error()
}
