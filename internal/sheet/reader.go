package sheet

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/iliyamo/meeting-seatmap/internal/model"
)

// Column names looked up (case-insensitively) in the header row.
var (
	IDColumns   = []string{"PERSONID", "ID", "IDENTIFIER"}
	NameColumns = []string{"NAME"}
)

// Input formats accepted by ReadAttendees.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// FormatOf returns the parser ReadAttendees uses for filename: FormatCSV for
// *.csv, FormatXLSX for everything else.
func FormatOf(filename string) string {
	if strings.EqualFold(filepath.Ext(filename), ".csv") {
		return FormatCSV
	}
	return FormatXLSX
}

// ReadAttendees parses an uploaded attendee list and returns it sorted by
// identifier.  Files named *.csv are decoded as CSV; anything else is opened
// as an xlsx workbook and its first sheet is used.
func ReadAttendees(r io.Reader, filename string) ([]model.Attendee, error) {
	var (
		rows [][]string
		err  error
	)
	if FormatOf(filename) == FormatCSV {
		rows, err = csvRows(r)
	} else {
		rows, err = workbookRows(r)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInputRead, err)
	}
	attendees, err := parseRows(rows)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInputRead, err)
	}
	model.SortAttendees(attendees)
	return attendees, nil
}

func workbookRows(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}
	return f.GetRows(sheets[0])
}

func csvRows(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	// Excel writes UTF-8 CSVs with a byte order mark
	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], "\ufeff")
	}
	return rows, nil
}

func parseRows(rows [][]string) ([]model.Attendee, error) {
	if len(rows) == 0 {
		return nil, errors.New("missing header row")
	}
	idCol := findColumn(rows[0], IDColumns)
	if idCol < 0 {
		return nil, fmt.Errorf("missing identifier column (%s)", strings.Join(IDColumns, "/"))
	}
	nameCol := findColumn(rows[0], NameColumns)
	if nameCol < 0 {
		return nil, fmt.Errorf("missing name column (%s)", strings.Join(NameColumns, "/"))
	}

	out := make([]model.Attendee, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if blankRow(row) {
			continue
		}
		id, err := model.ParseIdentifier(cell(row, idCol))
		if err != nil {
			// rows[1:] starts at spreadsheet row 2
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		out = append(out, model.Attendee{ID: id, Name: cell(row, nameCol)})
	}
	return out, nil
}

func findColumn(header []string, names []string) int {
	for _, name := range names {
		for i, h := range header {
			if strings.EqualFold(strings.TrimSpace(h), name) {
				return i
			}
		}
	}
	return -1
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

func blankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
