package tabular

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/custodia-labs/quanda-cli/internal/core/domain"
)

func TestParseCSV_Valid(t *testing.T) {
	input := "Question,Answer\n" +
		"What is the capital of France?,Paris\n" +
		"Why is the sky blue?,Scattering\n"

	rows, err := ParseCSV(strings.NewReader(input))

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "What is the capital of France?", rows[0].Question)
	assert.Equal(t, "Paris", rows[0].Answer)
	assert.Equal(t, "Scattering", rows[1].Answer)
}

func TestParseCSV_ExtraColumns(t *testing.T) {
	input := "ID,Question,Category,Answer\n" +
		"1,What is 2+2?,math,4\n"

	rows, err := ParseCSV(strings.NewReader(input))

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "What is 2+2?", rows[0].Question)
	assert.Equal(t, "4", rows[0].Answer)
}

func TestParseCSV_MissingColumns(t *testing.T) {
	tests := []string{
		"Q,A\nx,y\n",                     // wrong names
		"question,answer\nx,y\n",         // case matters
		"Question\nWhat is X?\n",         // missing Answer
		"Answer\n42\n",                   // missing Question
		"",                               // empty file
	}

	for _, input := range tests {
		_, err := ParseCSV(strings.NewReader(input))
		assert.ErrorIs(t, err, domain.ErrMissingColumns, "input %q", input)
	}
}

func TestParseCSV_SkipsBlankQuestions(t *testing.T) {
	input := "Question,Answer\n" +
		",orphan answer\n" +
		"What is X?,Y\n"

	rows, err := ParseCSV(strings.NewReader(input))

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "What is X?", rows[0].Question)
}

func TestParseCSV_NoDataRows(t *testing.T) {
	_, err := ParseCSV(strings.NewReader("Question,Answer\n"))
	assert.ErrorIs(t, err, domain.ErrEmptyFile)
}

func TestParseFile_UnsupportedFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "kb.pdf")
	require.NoError(t, os.WriteFile(path, []byte("not a spreadsheet"), 0o600))

	_, err := ParseFile(path)
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}

func TestParseFile_CSV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "kb.csv")
	content := "Question,Answer\nWho approves leave?,The manager\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	rows, err := ParseFile(path)

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "The manager", rows[0].Answer)
}

func TestParseXLSX(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "kb.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetCellValue(sheet, "A1", "Question"))
	require.NoError(t, f.SetCellValue(sheet, "B1", "Answer"))
	require.NoError(t, f.SetCellValue(sheet, "A2", "What is the capital of France?"))
	require.NoError(t, f.SetCellValue(sheet, "B2", "Paris"))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	rows, err := ParseFile(path)

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Paris", rows[0].Answer)
}

func TestParseXLSX_MissingColumns(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "kb.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetCellValue(sheet, "A1", "Frage"))
	require.NoError(t, f.SetCellValue(sheet, "B1", "Antwort"))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	_, err := ParseFile(path)
	assert.ErrorIs(t, err, domain.ErrMissingColumns)
}
