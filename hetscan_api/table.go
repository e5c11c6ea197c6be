package hetscan_api

import (
	"encoding/csv"
	"fmt"
	"os"
)

// readTable reads a tab-delimited table and returns its header and records
func readTable(path string) ([]string, [][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open the table %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comma = '\t'

	// The header fixes the field count, a ragged row fails the whole table
	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse the table %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("table %s is empty", path)
	}
	return records[0], records[1:], nil
}

// columnIndex maps column names to their position in the header
func columnIndex(header []string) map[string]int {
	columns := map[string]int{}
	for index, name := range header {
		columns[name] = index
	}
	return columns
}
