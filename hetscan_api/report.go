package hetscan_api

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gonum.org/v1/gonum/stat"
)

// The numeric columns summarized per cohort
var reportColumns = []string{"Age", "IQ", "Het_Count"}

// WriteReport reads the combined cohort table and writes a text summary:
// overall totals plus per-cohort numeric summaries for Age, IQ and
// Het_Count
func WriteReport(combinedPath string, reportPath string) error {
	header, records, err := readTable(combinedPath)
	if err != nil {
		return err
	}
	columns := columnIndex(header)
	if _, ok := columns["Cohort"]; !ok {
		return fmt.Errorf("table %s is missing the Cohort column", combinedPath)
	}

	byCohort := map[string][][]string{}
	for _, record := range records {
		cohort := record[columns["Cohort"]]
		byCohort[cohort] = append(byCohort[cohort], record)
	}
	cohorts := []string{}
	for cohort := range byCohort {
		cohorts = append(cohorts, cohort)
	}
	sort.Strings(cohorts)

	uniqueSamples := map[string]bool{}
	if index, ok := columns["SampleID"]; ok {
		for _, record := range records {
			uniqueSamples[record[index]] = true
		}
	}

	printer := message.NewPrinter(language.English)
	builder := &strings.Builder{}
	fmt.Fprintln(builder, "Merged Cohort Summary Report")
	fmt.Fprintln(builder, "")
	fmt.Fprintf(builder, "Input table: %s\n", combinedPath)
	printer.Fprintf(builder, "Total Rows: %d\n", len(records))
	printer.Fprintf(builder, "Unique SampleID: %d\n", len(uniqueSamples))
	printer.Fprintf(builder, "Number of Cohorts: %d\n", len(cohorts))
	fmt.Fprintln(builder, "")
	fmt.Fprintln(builder, "Numeric Summary by Cohort")
	fmt.Fprintln(builder, strings.Repeat("=", 40))

	for _, cohort := range cohorts {
		fmt.Fprintln(builder, "")
		fmt.Fprintf(builder, "Cohort: %s\n", cohort)
		fmt.Fprintln(builder, strings.Repeat("-", 30))
		for _, column := range reportColumns {
			index, ok := columns[column]
			if !ok {
				continue
			}
			values := numericValues(byCohort[cohort], index)
			if len(values) == 0 {
				continue
			}
			writeColumnSummary(builder, column, values)
		}
	}

	if err := os.WriteFile(reportPath, []byte(builder.String()), 0644); err != nil {
		return fmt.Errorf("failed to write the report: %w", err)
	}
	return nil
}

// numericValues collects the parseable values of one column, sorted
func numericValues(records [][]string, index int) []float64 {
	values := []float64{}
	for _, record := range records {
		value, err := strconv.ParseFloat(record[index], 64)
		if err != nil {
			continue
		}
		values = append(values, value)
	}
	sort.Float64s(values)
	return values
}

func writeColumnSummary(builder *strings.Builder, column string, sorted []float64) {
	fmt.Fprintf(builder, "%s:\n", column)
	fmt.Fprintf(builder, "  n     = %d\n", len(sorted))
	fmt.Fprintf(builder, "  mean  = %.2f\n", stat.Mean(sorted, nil))
	fmt.Fprintf(builder, "  std   = %.2f\n", stat.StdDev(sorted, nil))
	fmt.Fprintf(builder, "  min   = %.2f\n", sorted[0])
	fmt.Fprintf(builder, "  25%%   = %.2f\n", stat.Quantile(0.25, stat.Empirical, sorted, nil))
	fmt.Fprintf(builder, "  50%%   = %.2f\n", stat.Quantile(0.5, stat.Empirical, sorted, nil))
	fmt.Fprintf(builder, "  75%%   = %.2f\n", stat.Quantile(0.75, stat.Empirical, sorted, nil))
	fmt.Fprintf(builder, "  max   = %.2f\n", sorted[len(sorted)-1])
	fmt.Fprintln(builder, "")
}
