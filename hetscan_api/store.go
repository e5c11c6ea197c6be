package hetscan_api

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const tallySchema = `
CREATE TABLE IF NOT EXISTS tally (
	cohort          TEXT NOT NULL,
	sample_id       TEXT NOT NULL,
	run_id          TEXT NOT NULL,
	gz_file         TEXT NOT NULL,
	filtered_file   TEXT NOT NULL,
	n_records       INTEGER NOT NULL,
	gt_missing      INTEGER NOT NULL,
	after_gt_het    INTEGER NOT NULL,
	after_dp        INTEGER NOT NULL,
	after_gq        INTEGER NOT NULL,
	het_count       INTEGER NOT NULL,
	malformed_count INTEGER NOT NULL,
	PRIMARY KEY (cohort, sample_id)
)`

// TallyStore persists one row per completed filter result, keyed by cohort
// and sample. It is what makes interrupted runs resumable: a sample present
// in the store is complete and can be skipped on the next run.
type TallyStore struct {
	db *sql.DB
}

// OpenTallyStore opens (and if needed initializes) the tally database
func OpenTallyStore(path string) (*TallyStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open the tally store: %w", err)
	}
	if _, err := db.Exec(tallySchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize the tally store: %w", err)
	}
	return &TallyStore{db: db}, nil
}

func (store *TallyStore) Close() error {
	return store.db.Close()
}

// Record upserts one completed filter result
func (store *TallyStore) Record(runID string, result FilterResult) error {
	_, err := store.db.Exec(
		`INSERT OR REPLACE INTO tally
		 (cohort, sample_id, run_id, gz_file, filtered_file, n_records, gt_missing, after_gt_het, after_dp, after_gq, het_count, malformed_count)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		result.Cohort, result.SampleID, runID, result.GZFile, result.FilteredFile,
		result.NRecords, result.GTMissing, result.AfterGTHet, result.AfterDP,
		result.AfterGQ, result.HetCount, result.MalformedCount,
	)
	return err
}

// Has reports whether a sample is already recorded as complete
func (store *TallyStore) Has(cohort string, sampleID string) (bool, error) {
	row := store.db.QueryRow(`SELECT COUNT(*) FROM tally WHERE cohort = ? AND sample_id = ?`, cohort, sampleID)
	count := 0
	if err := row.Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

// CohortResults returns all recorded filter results of one cohort, keyed by
// SampleID
func (store *TallyStore) CohortResults(cohort string) (map[string]FilterResult, error) {
	rows, err := store.db.Query(
		`SELECT cohort, sample_id, gz_file, filtered_file, n_records, gt_missing, after_gt_het, after_dp, after_gq, het_count, malformed_count
		 FROM tally WHERE cohort = ?`, cohort)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := map[string]FilterResult{}
	for rows.Next() {
		result := FilterResult{}
		err := rows.Scan(
			&result.Cohort, &result.SampleID, &result.GZFile, &result.FilteredFile,
			&result.NRecords, &result.GTMissing, &result.AfterGTHet, &result.AfterDP,
			&result.AfterGQ, &result.HetCount, &result.MalformedCount,
		)
		if err != nil {
			return nil, err
		}
		results[result.SampleID] = result
	}
	return results, rows.Err()
}
