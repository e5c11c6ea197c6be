package hetscan_api

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/biogo/hts/bgzf"
)

// FilterFile streams one compressed gVCF file, writes all header lines plus
// all passing records (in original order) to a recompressed output file and
// returns the progressive counts. The file is never loaded into memory as a
// whole. Lines that cannot be parsed are skipped and counted, an unreadable
// or undecompressable input is fatal for this file only.
func FilterFile(inPath string, outPath string, thresholds Thresholds) (*FilterResult, error) {
	input, err := os.Open(inPath)
	if err != nil {
		return nil, &UnreadableFileError{Path: inPath, Err: err}
	}
	defer input.Close()

	reader, err := openCompressed(input)
	if err != nil {
		return nil, &UnreadableFileError{Path: inPath, Err: err}
	}
	defer reader.Close()

	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create the output directory: %w", err)
	}
	output, err := os.Create(outPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create the output file: %w", err)
	}
	defer output.Close()

	writer := bgzf.NewWriter(output, 1)

	result := &FilterResult{
		GZFile:       filepath.Base(inPath),
		FilteredFile: filepath.Base(outPath),
	}

	scanner := bufio.NewScanner(reader)
	const maxCapacity = 8 * 1000000 // 8 MB
	scanner.Buffer(make([]byte, maxCapacity), maxCapacity)
	for scanner.Scan() {
		line := scanner.Text()
		if IsHeaderLine(line) {
			if err := writeLine(writer, line); err != nil {
				return nil, err
			}
			continue
		}

		record, err := ParseRecord(line)
		if err != nil {
			result.MalformedCount++
			continue
		}

		fields, err := ExtractGenotype(record.FormatKeys, record.SampleValue)
		if err != nil {
			result.MalformedCount++
			continue
		}

		result.NRecords++
		if IsMissingGT(fields.GT) {
			result.GTMissing++
		}

		if !IsHeterozygous(fields.GT) {
			continue
		}
		result.AfterGTHet++

		if !thresholds.DepthPasses(fields.DP) {
			continue
		}
		result.AfterDP++

		if !thresholds.QualityPasses(fields.GQ) {
			continue
		}
		result.AfterGQ++

		if err := writeLine(writer, line); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		writer.Close()
		return nil, &UnreadableFileError{Path: inPath, Err: err}
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to flush the output file: %w", err)
	}

	result.HetCount = result.AfterGQ
	return result, nil
}

// openCompressed wraps the input in a BGZF reader when the file is block
// compressed and falls back to a plain gzip reader otherwise
func openCompressed(input *os.File) (io.ReadCloser, error) {
	header := make([]byte, 18)
	n, err := io.ReadFull(input, header)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, err
	}
	if _, err := input.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	if isBGZF(header[:n]) {
		return bgzf.NewReader(input, 1)
	}
	return gzip.NewReader(input)
}

// isBGZF reports whether the gzip header carries the BGZF "BC" extra
// subfield holding the block size
func isBGZF(header []byte) bool {
	if len(header) < 18 {
		return false
	}
	if header[0] != 0x1f || header[1] != 0x8b {
		return false
	}
	if header[3]&0x04 == 0 {
		return false
	}
	return header[12] == 'B' && header[13] == 'C'
}

// writeLine writes one line to the compressed output
func writeLine(writer *bgzf.Writer, line string) error {
	if _, err := writer.Write([]byte(line + "\n")); err != nil {
		return fmt.Errorf("failed to write to the output file: %w", err)
	}
	return nil
}

// CountLines counts the lines of one compressed file
func CountLines(path string) (int, error) {
	input, err := os.Open(path)
	if err != nil {
		return 0, &UnreadableFileError{Path: path, Err: err}
	}
	defer input.Close()

	reader, err := openCompressed(input)
	if err != nil {
		return 0, &UnreadableFileError{Path: path, Err: err}
	}
	defer reader.Close()

	count := 0
	scanner := bufio.NewScanner(reader)
	const maxCapacity = 8 * 1000000 // 8 MB
	scanner.Buffer(make([]byte, maxCapacity), maxCapacity)
	for scanner.Scan() {
		count++
	}
	if err := scanner.Err(); err != nil {
		return 0, &UnreadableFileError{Path: path, Err: err}
	}
	return count, nil
}
