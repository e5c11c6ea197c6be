package hetscan_api

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
)

// DiscoverCohorts lists the cohort directories under the input root.
// A cohort is a directory named Cohort_* containing a metadata.tsv table.
func DiscoverCohorts(inputRoot string) ([]Cohort, error) {
	matches, err := filepath.Glob(filepath.Join(inputRoot, "Cohort_*"))
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)

	cohorts := []Cohort{}
	for _, dir := range matches {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			continue
		}
		metadataPath := filepath.Join(dir, "metadata.tsv")
		if _, err := os.Stat(metadataPath); err != nil {
			continue
		}
		rows, err := ReadMetadata(metadataPath)
		if err != nil {
			return nil, err
		}
		cohorts = append(cohorts, Cohort{
			Name: filepath.Base(dir),
			Dir:  dir,
			Rows: rows,
		})
	}
	if len(cohorts) == 0 {
		return nil, fmt.Errorf("no cohort directories with a metadata.tsv found under %s", inputRoot)
	}
	return cohorts, nil
}

// FindSampleGZ matches one SampleID to its .gz file in the cohort directory.
// Exactly one match is NORMAL, anything else is a discovery problem noted in
// the verification table.
func FindSampleGZ(dir string, sampleID string) (string, string) {
	hits, err := filepath.Glob(filepath.Join(dir, sampleID+"*.gz"))
	if err != nil || len(hits) == 0 {
		return "", NoteMissing
	}
	if len(hits) > 1 {
		return "", NoteMultipleMatch
	}
	return hits[0], NoteNormal
}

// VerifyCohorts matches every metadata SampleID to its file, counts the
// lines of each matched file and writes the verification table plus an index
// of the NORMAL file paths
func VerifyCohorts(cohorts []Cohort, fileCheckPath string, gzIndexPath string) ([]SampleFile, error) {
	if err := os.MkdirAll(filepath.Dir(fileCheckPath), 0755); err != nil {
		return nil, err
	}

	files := []SampleFile{}
	for _, cohort := range cohorts {
		for _, row := range cohort.Rows {
			path, note := FindSampleGZ(cohort.Dir, row.SampleID)
			file := SampleFile{
				SampleID: row.SampleID,
				Cohort:   cohort.Name,
				Path:     path,
				Note:     note,
			}
			if note == NoteNormal {
				count, err := CountLines(path)
				if err != nil {
					return nil, err
				}
				file.LineCount = count
			}
			files = append(files, file)
		}
	}

	if err := writeFileCheck(cohorts, files, fileCheckPath); err != nil {
		return nil, err
	}
	if err := writeGzIndex(files, gzIndexPath); err != nil {
		return nil, err
	}
	return files, nil
}

func writeFileCheck(cohorts []Cohort, files []SampleFile, path string) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()

	metadata := map[string]MetadataRow{}
	for _, cohort := range cohorts {
		for _, row := range cohort.Rows {
			metadata[cohort.Name+"\t"+row.SampleID] = row
		}
	}

	writer := csv.NewWriter(out)
	writer.Comma = '\t'
	if err := writer.Write([]string{"SampleID", "Age", "Ancestry", "IQ", "Cohort", "GZ_File", "Line_Count", "Note"}); err != nil {
		return err
	}
	for _, file := range files {
		row := metadata[file.Cohort+"\t"+file.SampleID]
		lineCount := ""
		if file.Note == NoteNormal {
			lineCount = strconv.Itoa(file.LineCount)
		}
		record := []string{file.SampleID, row.Age, row.Ancestry, row.IQ, file.Cohort, file.Path, lineCount, file.Note}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func writeGzIndex(files []SampleFile, path string) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()

	for _, file := range files {
		if file.Note != NoteNormal {
			continue
		}
		if _, err := out.WriteString(file.Path + "\n"); err != nil {
			return err
		}
	}
	return nil
}
