package history

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	utf8BOM         = "\uFEFF"
	csvHeader       = "Original,Translation,Note,Source,Target,Timestamp"
	timestampLayout = "2006-01-02T15:04:05.000Z"
)

// Record is one data row of an exported CSV file
type Record struct {
	Original    string
	Translation string
	Note        string
	Source      string
	Target      string
	Timestamp   time.Time
}

// Export writes the current sequence as CSV: a BOM, the header row and one
// quoted row per entry, newest first.
func (s *Store) Export(w io.Writer) error {
	return WriteCSV(w, s.List())
}

// ExportFile writes the CSV export into dir and returns the created path
func (s *Store) ExportFile(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	path, f, err := createExclusive(dir, fmt.Sprintf("translations_%d", s.now().UnixMilli()), ".csv")
	if err != nil {
		return "", err
	}

	if err := s.Export(f); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close export file: %w", err)
	}

	return path, nil
}

// maxExportAttempts bounds the suffixes tried for an export file name
const maxExportAttempts = 100

// createExclusive creates dir/base.ext, or dir/base_N.ext when that name is
// taken. Existing files are never overwritten.
func createExclusive(dir, base, ext string) (string, *os.File, error) {
	for i := 0; i < maxExportAttempts; i++ {
		name := base + ext
		if i > 0 {
			name = fmt.Sprintf("%s_%d%s", base, i, ext)
		}

		path := filepath.Join(dir, name)
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if err == nil {
			return path, f, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return "", nil, fmt.Errorf("failed to create export file: %w", err)
		}
	}
	return "", nil, fmt.Errorf("failed to create export file: %s%s and %d variants exist", base, ext, maxExportAttempts-1)
}

// WriteCSV encodes entries in the export format
func WriteCSV(w io.Writer, entries []Entry) error {
	bw := bufio.NewWriter(w)

	bw.WriteString(utf8BOM)
	bw.WriteString(csvHeader)
	for _, e := range entries {
		fields := []string{
			e.SourceText,
			e.TranslatedText,
			e.Definition,
			e.SourceLang,
			e.TargetLang,
			e.Time().UTC().Format(timestampLayout),
		}
		bw.WriteByte('\n')
		for i, field := range fields {
			if i > 0 {
				bw.WriteByte(',')
			}
			bw.WriteString(quote(field))
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write CSV export: %w", err)
	}
	return nil
}

func quote(field string) string {
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}

// ParseCSV reads back a file produced by Export
func ParseCSV(r io.Reader) ([]Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	data = bytes.TrimPrefix(data, []byte(utf8BOM))

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = 6

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("failed to parse CSV: missing header")
	}

	records := make([]Record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		ts, err := time.Parse(timestampLayout, row[5])
		if err != nil {
			return nil, fmt.Errorf("invalid timestamp on row %d: %w", i+2, err)
		}
		records = append(records, Record{
			Original:    row[0],
			Translation: row[1],
			Note:        row[2],
			Source:      row[3],
			Target:      row[4],
			Timestamp:   ts,
		})
	}

	return records, nil
}
