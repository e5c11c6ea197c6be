package hetscan_api

import (
	"strconv"
	"strings"
)

// A gVCF data line has at least CHROM, POS, ID, REF, ALT, QUAL, FILTER,
// INFO, FORMAT and one sample column
const minRecordColumns = 10

// IsHeaderLine reports whether the line is a header or comment line that
// must be passed through to the output unfiltered
func IsHeaderLine(line string) bool {
	return strings.HasPrefix(line, "#")
}

// ParseRecord parses one data line into a VariantRecord. Header lines are
// not accepted here, callers check IsHeaderLine first.
func ParseRecord(line string) (*VariantRecord, error) {
	data := strings.Split(line, "\t")
	if len(data) < minRecordColumns {
		return nil, &MalformedRecordError{Columns: len(data)}
	}

	pos, err := strconv.ParseInt(data[1], 10, 64)
	if err != nil {
		return nil, &MalformedRecordError{Columns: len(data), Reason: "POS is not an integer: " + data[1]}
	}

	record := &VariantRecord{
		Chromosome:  data[0],
		Pos:         pos,
		Id:          data[2],
		Ref:         data[3],
		Alt:         data[4],
		Qual:        data[5],
		Filter:      data[6],
		FormatKeys:  strings.Split(data[8], ":"),
		SampleValue: data[9],
	}
	return record, nil
}
