package ingest

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/shipbatch/backend/internal/domain/shipping"
)

// The upload template is positional: two header rows (a section banner and
// the column names), then one shipment per row. Column meaning is fixed by
// index, so the actual header text is discarded.
const (
	colFromFirstName = iota
	colFromLastName
	colFromLine1
	colFromLine2
	colFromCity
	colFromZip
	colFromState
	colToFirstName
	colToLastName
	colToLine1
	colToLine2
	colToCity
	colToZip
	colToState
	colWeightLbs
	colWeightOz
	colLength
	colWidth
	colHeight
	colPhone1
	colPhone2
	colOrderNumber
	colItemSKU

	columnCount = colItemSKU + 1
)

// headerRows is the number of leading rows discarded before data starts.
// Data rows are numbered from headerRows+1 to match what users see in a
// spreadsheet.
const headerRows = 2

// Row is one parsed shipment row from the upload
type Row struct {
	RowNumber   int
	From        shipping.Address
	To          shipping.Address
	Pkg         shipping.Package
	Phone1      string
	Phone2      string
	OrderNumber string
	ItemSKU     string
}

// Result is the outcome of parsing an upload. Rows that could not be
// parsed are skipped and reported in Warnings rather than failing the
// whole file.
type Result struct {
	Rows     []Row
	Warnings []string
}

// Parser parses the fixed-layout shipment upload CSV
type Parser struct {
	maxRows int
}

// NewParser creates a parser. maxRows caps the number of data rows
// accepted per file; zero or negative means no cap.
func NewParser(maxRows int) *Parser {
	return &Parser{maxRows: maxRows}
}

// Parse reads the whole upload. It strips a UTF-8 BOM, validates the
// encoding, discards both header rows, and converts each remaining row.
// Short rows are skipped with a warning.
func (p *Parser) Parse(r io.Reader) (*Result, error) {
	buf := bufio.NewReader(r)

	head, err := buf.Peek(3)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if len(head) >= 3 && head[0] == 0xEF && head[1] == 0xBB && head[2] == 0xBF {
		_, _ = buf.Discard(3)
	}

	if err := validateUTF8(buf); err != nil {
		return nil, err
	}

	reader := csv.NewReader(buf)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	for i := 0; i < headerRows; i++ {
		if _, err := reader.Read(); err == io.EOF {
			return nil, ErrMissingHeader
		} else if err != nil {
			return nil, fmt.Errorf("failed to read header row %d: %w", i+1, err)
		}
	}

	result := &Result{}
	rowNumber := headerRows

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		rowNumber++
		if err != nil {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("row %d: skipped, malformed CSV: %v", rowNumber, err))
			continue
		}

		if isBlank(record) {
			continue
		}

		if len(record) < columnCount {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("row %d: skipped, expected %d columns but got %d", rowNumber, columnCount, len(record)))
			continue
		}

		if p.maxRows > 0 && len(result.Rows) >= p.maxRows {
			return nil, ErrTooManyRows
		}

		result.Rows = append(result.Rows, parseRow(rowNumber, record))
	}

	if len(result.Rows) == 0 && len(result.Warnings) == 0 {
		return nil, ErrNoDataRows
	}

	return result, nil
}

func parseRow(rowNumber int, record []string) Row {
	return Row{
		RowNumber: rowNumber,
		From: shipping.Address{
			FirstName:    field(record, colFromFirstName),
			LastName:     field(record, colFromLastName),
			AddressLine1: field(record, colFromLine1),
			AddressLine2: field(record, colFromLine2),
			City:         field(record, colFromCity),
			State:        strings.ToUpper(field(record, colFromState)),
			ZipCode:      field(record, colFromZip),
		},
		To: shipping.Address{
			FirstName:    field(record, colToFirstName),
			LastName:     field(record, colToLastName),
			AddressLine1: field(record, colToLine1),
			AddressLine2: field(record, colToLine2),
			City:         field(record, colToCity),
			State:        strings.ToUpper(field(record, colToState)),
			ZipCode:      field(record, colToZip),
		},
		Pkg: shipping.Package{
			WeightLbs: parseInt(field(record, colWeightLbs)),
			WeightOz:  parseInt(field(record, colWeightOz)),
			Length:    parseDecimal(field(record, colLength)),
			Width:     parseDecimal(field(record, colWidth)),
			Height:    parseDecimal(field(record, colHeight)),
		},
		Phone1:      field(record, colPhone1),
		Phone2:      field(record, colPhone2),
		OrderNumber: field(record, colOrderNumber),
		ItemSKU:     field(record, colItemSKU),
	}
}

func field(record []string, idx int) string {
	return strings.TrimSpace(record[idx])
}

// parseInt converts best-effort: unparseable or negative values become
// zero so a typo in one numeric cell does not drop the whole row.
func parseInt(s string) int {
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func parseDecimal(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}

func isBlank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func validateUTF8(r *bufio.Reader) error {
	const checkSize = 4096
	content, err := r.Peek(checkSize)
	if err != nil && err != io.EOF {
		return fmt.Errorf("failed to read file for encoding validation: %w", err)
	}

	if len(content) == 0 {
		return ErrEmptyFile
	}

	// The peek may end mid-rune, so ignore a trailing partial sequence.
	if len(content) == checkSize {
		for i := 0; i < utf8.UTFMax && len(content) > 0; i++ {
			if utf8.Valid(content) {
				break
			}
			content = content[:len(content)-1]
		}
	}

	if !utf8.Valid(content) {
		return ErrInvalidEncoding
	}

	return nil
}
