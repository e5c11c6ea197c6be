package hetscan_api

import (
	"fmt"
	"strings"
)

// MalformedRecordError signals a data line that cannot be split into the
// minimum required number of tab-separated columns. The line is skipped and
// counted, never fatal to the file.
type MalformedRecordError struct {
	// Number of columns found in the line
	Columns int

	// Reason for records with enough columns but an unparseable field
	Reason string
}

func (e *MalformedRecordError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("malformed record: %s", e.Reason)
	}
	return fmt.Sprintf("malformed record: %d columns, need at least %d", e.Columns, minRecordColumns)
}

// FieldCountMismatchError signals a sample value string whose number of
// colon-delimited values differs from the number of FORMAT keys.
type FieldCountMismatchError struct {
	Keys   int
	Values int
}

func (e *FieldCountMismatchError) Error() string {
	return fmt.Sprintf("field count mismatch: %d FORMAT keys but %d sample values", e.Keys, e.Values)
}

// UnreadableFileError signals an I/O or decompression failure on one input
// file. Fatal for that file only, other files are unaffected.
type UnreadableFileError struct {
	Path string
	Err  error
}

func (e *UnreadableFileError) Error() string {
	return fmt.Sprintf("unreadable file %s: %v", e.Path, e.Err)
}

func (e *UnreadableFileError) Unwrap() error {
	return e.Err
}

// UnmatchedSampleError signals a metadata/result join failure for one cohort.
// The merge for that cohort is aborted before any table is written.
type UnmatchedSampleError struct {
	Cohort string

	// Metadata SampleIDs without a filter result
	MissingResults []string

	// Filter result SampleIDs without a metadata row
	MissingMetadata []string
}

func (e *UnmatchedSampleError) Error() string {
	parts := []string{}
	if len(e.MissingResults) > 0 {
		parts = append(parts, fmt.Sprintf("no filter result for SampleID(s) %s", strings.Join(e.MissingResults, ", ")))
	}
	if len(e.MissingMetadata) > 0 {
		parts = append(parts, fmt.Sprintf("no metadata row for SampleID(s) %s", strings.Join(e.MissingMetadata, ", ")))
	}
	return fmt.Sprintf("unmatched samples in cohort %s: %s", e.Cohort, strings.Join(parts, "; "))
}
