// Package tabular reads question/answer rows from knowledge-base files.
// Supported formats are delimited text (.csv) and spreadsheets (.xlsx).
// Both require exact, case-sensitive "Question" and "Answer" columns.
package tabular

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/custodia-labs/quanda-cli/internal/core/domain"
)

// Required column headers. Case-sensitive and exact.
const (
	questionColumn = "Question"
	answerColumn   = "Answer"
)

// Row is one question/answer pair read from a file.
type Row struct {
	// Question is the raw question cell.
	Question string

	// Answer is the raw answer cell.
	Answer string
}

// ParseFile reads Q&A rows from the file at path, dispatching on the
// extension. Unknown extensions fail with domain.ErrUnsupportedFormat.
func ParseFile(path string) ([]Row, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open file: %w", err)
		}
		defer f.Close()
		return ParseCSV(f)
	case ".xlsx":
		return ParseXLSX(path)
	default:
		return nil, domain.ErrUnsupportedFormat
	}
}

// ParseCSV reads Q&A rows from delimited text.
func ParseCSV(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // ragged rows are tolerated, short ones skipped

	header, err := reader.Read()
	if err == io.EOF {
		return nil, domain.ErrMissingColumns
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	qIdx, aIdx, err := columnIndexes(header)
	if err != nil {
		return nil, err
	}

	var rows []Row
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		if row, ok := makeRow(record, qIdx, aIdx); ok {
			rows = append(rows, row)
		}
	}

	if len(rows) == 0 {
		return nil, domain.ErrEmptyFile
	}
	return rows, nil
}

// ParseXLSX reads Q&A rows from the first sheet of a spreadsheet.
func ParseXLSX(path string) ([]Row, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open spreadsheet: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, domain.ErrMissingColumns
	}

	cells, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet: %w", err)
	}
	if len(cells) == 0 {
		return nil, domain.ErrMissingColumns
	}

	qIdx, aIdx, err := columnIndexes(cells[0])
	if err != nil {
		return nil, err
	}

	var rows []Row
	for _, record := range cells[1:] {
		if row, ok := makeRow(record, qIdx, aIdx); ok {
			rows = append(rows, row)
		}
	}

	if len(rows) == 0 {
		return nil, domain.ErrEmptyFile
	}
	return rows, nil
}

// columnIndexes locates the required headers.
func columnIndexes(header []string) (qIdx, aIdx int, err error) {
	qIdx, aIdx = -1, -1
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case questionColumn:
			qIdx = i
		case answerColumn:
			aIdx = i
		}
	}
	if qIdx < 0 || aIdx < 0 {
		return 0, 0, domain.ErrMissingColumns
	}
	return qIdx, aIdx, nil
}

// makeRow extracts a row, skipping records that are too short or have
// an empty question.
func makeRow(record []string, qIdx, aIdx int) (Row, bool) {
	if qIdx >= len(record) || aIdx >= len(record) {
		return Row{}, false
	}
	row := Row{
		Question: strings.TrimSpace(record[qIdx]),
		Answer:   strings.TrimSpace(record[aIdx]),
	}
	if row.Question == "" {
		return Row{}, false
	}
	return row, true
}
