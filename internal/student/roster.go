package student

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

var ErrUnsupportedFormat = errors.New("unsupported roster format, expected .xlsx or .csv")

var rosterColumns = map[string]string{
	"techziteid":  "techziteId",
	"name":        "name",
	"email":       "email",
	"phonenumber": "phoneNumber",
}

// ParseRoster reads the first sheet of an .xlsx workbook or a .csv file. The
// first row is the header; columns are matched by name, ignoring case.
func ParseRoster(filename string, r io.Reader) ([]RosterRow, error) {
	var (
		records [][]string
		err     error
	)

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm":
		records, err = readWorkbook(r)
	case ".csv":
		records, err = readCSV(r)
	default:
		return nil, ErrUnsupportedFormat
	}
	if err != nil {
		return nil, err
	}

	return mapRecords(records), nil
}

func readWorkbook(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}

func readCSV(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return records, nil
}

func mapRecords(records [][]string) []RosterRow {
	if len(records) == 0 {
		return nil
	}

	index := map[string]int{}
	for i, h := range records[0] {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if col, ok := rosterColumns[key]; ok {
			index[col] = i
		}
	}

	cell := func(row []string, col string) string {
		i, ok := index[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	rows := make([]RosterRow, 0, len(records)-1)
	for _, rec := range records[1:] {
		rows = append(rows, RosterRow{
			TechziteID:  cell(rec, "techziteId"),
			Name:        cell(rec, "name"),
			Email:       cell(rec, "email"),
			PhoneNumber: cell(rec, "phoneNumber"),
		})
	}
	return rows
}
