package hetscan_api

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"
)

// The fixed column subset consumed by downstream analysis
var requiredExportColumns = []string{"SampleID", "Age", "Ancestry", "IQ", "Cohort", "Het_Count"}

// CohortRow is the columnar export schema of one individual
type CohortRow struct {
	SampleID string `parquet:"name=SampleID, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	Age      string `parquet:"name=Age, type=BYTE_ARRAY, convertedtype=UTF8"`
	Ancestry string `parquet:"name=Ancestry, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	IQ       string `parquet:"name=IQ, type=BYTE_ARRAY, convertedtype=UTF8"`
	Cohort   string `parquet:"name=Cohort, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	HetCount int64  `parquet:"name=Het_Count, type=INT64"`
}

// ExportCohortParquet converts one merged cohort table to a parquet file,
// keeping only the required columns. A merged table missing any required
// column is an error, not a partial export.
func ExportCohortParquet(tablePath string, parquetPath string) error {
	header, records, err := readTable(tablePath)
	if err != nil {
		return err
	}

	columns := columnIndex(header)
	missing := []string{}
	for _, name := range requiredExportColumns {
		if _, ok := columns[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("table %s is missing required column(s): %s", tablePath, strings.Join(missing, ", "))
	}

	fw, err := local.NewLocalFileWriter(parquetPath)
	if err != nil {
		return fmt.Errorf("failed to create the parquet file: %w", err)
	}
	defer fw.Close()

	pw, err := writer.NewParquetWriter(fw, new(CohortRow), 2)
	if err != nil {
		return fmt.Errorf("failed to create the parquet writer: %w", err)
	}
	pw.RowGroupSize = 128 * 1024 * 1024
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	for _, record := range records {
		hetCount, err := strconv.ParseInt(record[columns["Het_Count"]], 10, 64)
		if err != nil {
			return fmt.Errorf("table %s has a non-integer Het_Count for SampleID %s", tablePath, record[columns["SampleID"]])
		}
		row := CohortRow{
			SampleID: record[columns["SampleID"]],
			Age:      record[columns["Age"]],
			Ancestry: record[columns["Ancestry"]],
			IQ:       record[columns["IQ"]],
			Cohort:   record[columns["Cohort"]],
			HetCount: hetCount,
		}
		if err := pw.Write(row); err != nil {
			return fmt.Errorf("failed to write a parquet row: %w", err)
		}
	}
	if err := pw.WriteStop(); err != nil {
		return fmt.Errorf("failed to finalize the parquet file: %w", err)
	}
	return nil
}
