package student_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/saulo-duarte/quiz-proctor/internal/student"
)

func TestParseRosterCSV(t *testing.T) {
	data := "TechziteId,Name,Email,PhoneNumber\n" +
		"tz001, Alice ,alice@x.com,9876543210\n" +
		"tz002,Bob,,9876543211\n"

	rows, err := student.ParseRoster("roster.csv", strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, student.RosterRow{TechziteID: "tz001", Name: "Alice", Email: "alice@x.com", PhoneNumber: "9876543210"}, rows[0])
	assert.Equal(t, "", rows[1].Email)
}

func TestParseRosterXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"phoneNumber", "name", "techziteId", "email"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{9876543210, "Alice", "tz001", "alice@x.com"}))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	rows, err := student.ParseRoster("Roster.XLSX", bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "tz001", rows[0].TechziteID)
	assert.Equal(t, "9876543210", rows[0].PhoneNumber)
}

func TestParseRosterUnsupported(t *testing.T) {
	_, err := student.ParseRoster("roster.pdf", strings.NewReader(""))
	assert.ErrorIs(t, err, student.ErrUnsupportedFormat)
}
