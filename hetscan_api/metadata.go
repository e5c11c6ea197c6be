package hetscan_api

import (
	"encoding/csv"
	"fmt"
	"os"
)

// The columns every cohort metadata table must carry
var requiredMetadataColumns = []string{"SampleID", "Age", "Ancestry", "IQ"}

// ReadMetadata reads one tab-delimited cohort metadata table.
// The first line must be a header naming at least SampleID, Age, Ancestry
// and IQ, extra columns are ignored.
func ReadMetadata(path string) ([]MetadataRow, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open the metadata table: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comma = '\t'

	// The header fixes the field count, a ragged row fails the whole table
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse the metadata table %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("metadata table %s is empty", path)
	}

	columns := map[string]int{}
	for index, name := range records[0] {
		columns[name] = index
	}
	for _, name := range requiredMetadataColumns {
		if _, ok := columns[name]; !ok {
			return nil, fmt.Errorf("metadata table %s is missing the %s column", path, name)
		}
	}

	rows := []MetadataRow{}
	seen := map[string]bool{}
	for _, record := range records[1:] {
		row := MetadataRow{
			SampleID: record[columns["SampleID"]],
			Age:      record[columns["Age"]],
			Ancestry: record[columns["Ancestry"]],
			IQ:       record[columns["IQ"]],
		}
		if seen[row.SampleID] {
			return nil, fmt.Errorf("metadata table %s lists SampleID %s twice", path, row.SampleID)
		}
		seen[row.SampleID] = true
		rows = append(rows, row)
	}
	return rows, nil
}
