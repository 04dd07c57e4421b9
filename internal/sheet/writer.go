package sheet

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/iliyamo/meeting-seatmap/internal/locale"
	"github.com/iliyamo/meeting-seatmap/internal/seating"
)

// FileName is the download name of a rendered chart.
const FileName = "seatingmap.xlsx"

// SheetName is the worksheet the chart is written to.
const SheetName = "Sheet1"

// ContentType is the MIME type of a rendered chart.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const (
	bannerFontSize      = 14
	explanationFontSize = 10
	explanationRowPt    = 20
	textNumFmt          = 49 // "@"
)

// ErrExplanationTooLong is returned when a single placement line does not fit
// in one spreadsheet cell.
var ErrExplanationTooLong = errors.New("placement line exceeds the cell size limit")

// Layout gives the 1-based spreadsheet rows of each block of a rendered
// chart.  The grid header is always row 1.
type Layout struct {
	Columns          int // row header column plus one column per seat
	BannerRow        int
	ExplanationStart int
	ExplanationEnd   int
}

// LayoutFor computes where Render places each block of chart.
func LayoutFor(chart *seating.Chart) Layout {
	lines := max(len(chart.Placements), 1)
	banner := len(chart.Rows) + 2
	start := banner + 2
	return Layout{
		Columns:          chart.SeatsPerRow + 1,
		BannerRow:        banner,
		ExplanationStart: start,
		ExplanationEnd:   start + lines - 1,
	}
}

// Render builds the workbook for chart: the grid with its header row, the
// stage banner merged across the grid width and the placement list below
// it, merged into wrapped blocks that each fit in one cell.  The caller owns the returned file and
// must Close it.
func Render(chart *seating.Chart, loc locale.Locale) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := render(f, chart, loc); err != nil {
		_ = f.Close()
		return nil, err
	}
	return f, nil
}

// Write renders chart and streams the workbook to w.
func Write(w io.Writer, chart *seating.Chart, loc locale.Locale) error {
	f, err := Render(chart, loc)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	return f.Write(w)
}

func render(f *excelize.File, chart *seating.Chart, loc locale.Locale) error {
	layout := LayoutFor(chart)
	lastCol, err := excelize.ColumnNumberToName(layout.Columns)
	if err != nil {
		return err
	}

	header := make([]interface{}, 0, layout.Columns)
	header = append(header, loc.RowHeader)
	for _, l := range chart.SeatLabels {
		header = append(header, l)
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, row := range chart.Rows {
		values := make([]interface{}, 0, layout.Columns)
		values = append(values, row.Label)
		for _, s := range row.Seats {
			values = append(values, s)
		}
		if err := f.SetSheetRow(SheetName, fmt.Sprintf("A%d", i+2), &values); err != nil {
			return fmt.Errorf("write row %q: %w", row.Label, err)
		}
	}

	bannerStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Font:      &excelize.Font{Bold: true, Size: bannerFontSize},
		NumFmt:    textNumFmt,
	})
	if err != nil {
		return err
	}
	if err := mergeBlock(f, layout.BannerRow, layout.BannerRow, lastCol, loc.Banner, bannerStyle); err != nil {
		return fmt.Errorf("write banner: %w", err)
	}

	textStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "top", WrapText: true},
		Font:      &excelize.Font{Size: explanationFontSize},
	})
	if err != nil {
		return err
	}
	blocks, err := explanationBlocks(ExplanationLines(chart.Placements, loc))
	if err != nil {
		return err
	}
	row := layout.ExplanationStart
	for _, lines := range blocks {
		last := row + len(lines) - 1
		if err := mergeBlock(f, row, last, lastCol, strings.Join(lines, "\n"), textStyle); err != nil {
			return fmt.Errorf("write explanation: %w", err)
		}
		row = last + 1
	}
	for r := layout.ExplanationStart; r <= layout.ExplanationEnd; r++ {
		if err := f.SetRowHeight(SheetName, r, explanationRowPt); err != nil {
			return err
		}
	}
	return nil
}

// mergeBlock writes value into column A of firstRow, merges firstRow..lastRow
// from column A to lastCol and applies style to the merged range.
func mergeBlock(f *excelize.File, firstRow, lastRow int, lastCol string, value string, style int) error {
	topLeft := fmt.Sprintf("A%d", firstRow)
	bottomRight := fmt.Sprintf("%s%d", lastCol, lastRow)
	if err := f.SetCellStr(SheetName, topLeft, value); err != nil {
		return err
	}
	if err := f.MergeCell(SheetName, topLeft, bottomRight); err != nil {
		return err
	}
	return f.SetCellStyle(SheetName, topLeft, bottomRight, style)
}

// explanationBlocks groups consecutive lines so that each group, joined by
// newlines, fits in one cell.  Longer text would be cut silently by the
// workbook writer.  Lengths are measured in bytes, which is never less than
// the character count the limit is defined in.  An empty list yields one
// empty block so the layout keeps its single explanation row.
func explanationBlocks(lines []string) ([][]string, error) {
	if len(lines) == 0 {
		return [][]string{{""}}, nil
	}
	var (
		blocks [][]string
		cur    []string
		size   int
	)
	for i, line := range lines {
		if len(line) > excelize.TotalCellChars {
			return nil, fmt.Errorf("%w: line %d has %d bytes", ErrExplanationTooLong, i+1, len(line))
		}
		grown := size + len(line)
		if len(cur) > 0 {
			grown++ // newline separator
		}
		if len(cur) > 0 && grown > excelize.TotalCellChars {
			blocks = append(blocks, cur)
			cur, grown = nil, len(line)
		}
		cur = append(cur, line)
		size = grown
	}
	return append(blocks, cur), nil
}
