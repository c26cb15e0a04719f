package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testHeaders = "Sender,,,,,,,Recipient,,,,,,,Package,,,,,Reference,,,\n" +
	"FromFirstName,FromLastName,FromAddress1,FromAddress2,FromCity,FromZip,FromState," +
	"ToFirstName,ToLastName,ToAddress1,ToAddress2,ToCity,ToZip,ToState," +
	"WeightLbs,WeightOz,Length,Width,Height,Phone1,Phone2,OrderNumber,ItemSKU\n"

func testRow(overrides map[int]string) string {
	fields := []string{
		"Jane", "Doe", "12 Oak Ave", "", "Portland", "97201", "or",
		"John", "Smith", "1 Main St", "Apt 2", "Springfield", "62704", "il",
		"1", "8", "10", "6", "4",
		"555-0100", "", "ORD-1001", "SKU-42",
	}
	for i, v := range overrides {
		fields[i] = v
	}
	return strings.Join(fields, ",")
}

func TestParserParsesValidRows(t *testing.T) {
	input := testHeaders + testRow(nil) + "\n" + testRow(map[int]string{21: "ORD-1002"}) + "\n"

	result, err := NewParser(0).Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, result.Rows, 2)
	assert.Empty(t, result.Warnings)

	row := result.Rows[0]
	assert.Equal(t, 3, row.RowNumber)
	assert.Equal(t, "Jane", row.From.FirstName)
	assert.Equal(t, "97201", row.From.ZipCode)
	assert.Equal(t, "OR", row.From.State)
	assert.Equal(t, "John", row.To.FirstName)
	assert.Equal(t, "62704", row.To.ZipCode)
	assert.Equal(t, "IL", row.To.State)
	assert.Equal(t, 1, row.Pkg.WeightLbs)
	assert.Equal(t, 8, row.Pkg.WeightOz)
	assert.Equal(t, "10", row.Pkg.Length.String())
	assert.Equal(t, "ORD-1001", row.OrderNumber)
	assert.Equal(t, "SKU-42", row.ItemSKU)

	assert.Equal(t, 4, result.Rows[1].RowNumber)
	assert.Equal(t, "ORD-1002", result.Rows[1].OrderNumber)
}

func TestParserRowNumbersFollowSpreadsheetLines(t *testing.T) {
	// The two header rows occupy lines 1-2, so the first data row is 3.
	input := testHeaders + testRow(nil) + "\n"

	result, err := NewParser(0).Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, result.Rows, 1)
	assert.Equal(t, 3, result.Rows[0].RowNumber)
}

func TestParserSkipsShortRowsWithWarning(t *testing.T) {
	input := testHeaders +
		testRow(nil) + "\n" +
		"Jane,Doe,12 Oak Ave\n" +
		testRow(nil) + "\n"

	result, err := NewParser(0).Parse(strings.NewReader(input))
	require.NoError(t, err)
	assert.Len(t, result.Rows, 2)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "row 4")
	assert.Contains(t, result.Warnings[0], "23 columns")

	// Skipped rows still consume a row number
	assert.Equal(t, 3, result.Rows[0].RowNumber)
	assert.Equal(t, 5, result.Rows[1].RowNumber)
}

func TestParserSkipsBlankRows(t *testing.T) {
	input := testHeaders + testRow(nil) + "\n" + strings.Repeat(",", 22) + "\n" + testRow(nil) + "\n"

	result, err := NewParser(0).Parse(strings.NewReader(input))
	require.NoError(t, err)
	assert.Len(t, result.Rows, 2)
	assert.Empty(t, result.Warnings)
}

func TestParserZeroesBadNumericCells(t *testing.T) {
	input := testHeaders + testRow(map[int]string{14: "heavy", 15: "-3", 16: "abc"}) + "\n"

	result, err := NewParser(0).Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, result.Rows, 1)
	assert.Equal(t, 0, result.Rows[0].Pkg.WeightLbs)
	assert.Equal(t, 0, result.Rows[0].Pkg.WeightOz)
	assert.True(t, result.Rows[0].Pkg.Length.IsZero())
}

func TestParserStripsBOM(t *testing.T) {
	input := "\xEF\xBB\xBF" + testHeaders + testRow(nil) + "\n"

	result, err := NewParser(0).Parse(strings.NewReader(input))
	require.NoError(t, err)
	assert.Len(t, result.Rows, 1)
}

func TestParserEmptyFile(t *testing.T) {
	_, err := NewParser(0).Parse(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrEmptyFile)
}

func TestParserMissingHeaderRows(t *testing.T) {
	_, err := NewParser(0).Parse(strings.NewReader("only one line\n"))
	assert.ErrorIs(t, err, ErrMissingHeader)
}

func TestParserNoDataRows(t *testing.T) {
	_, err := NewParser(0).Parse(strings.NewReader(testHeaders))
	assert.ErrorIs(t, err, ErrNoDataRows)
}

func TestParserRowLimit(t *testing.T) {
	input := testHeaders + testRow(nil) + "\n" + testRow(nil) + "\n" + testRow(nil) + "\n"

	_, err := NewParser(2).Parse(strings.NewReader(input))
	assert.ErrorIs(t, err, ErrTooManyRows)
}

func TestParserInvalidEncoding(t *testing.T) {
	_, err := NewParser(0).Parse(strings.NewReader("\xff\xfe broken"))
	assert.ErrorIs(t, err, ErrInvalidEncoding)
}
