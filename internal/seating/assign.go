package seating

import (
	"errors"
	"fmt"
	"sort"

	"github.com/iliyamo/meeting-seatmap/internal/model"
)

// RowLabeler turns a 1-based logical row number into its display label,
// e.g. "第一排" or "Row 1".
type RowLabeler func(row int) (string, error)

// Placement records where one attendee ended up.
type Placement struct {
	ID        model.Identifier `json:"id"`
	Name      string           `json:"name"`
	Row       string           `json:"row"`
	Seat      string           `json:"seat"`
	RowIndex  int              `json:"row_index"`  // logical row, 0 is nearest the stage
	SeatIndex int              `json:"seat_index"` // physical position, 0 is leftmost
}

// ChartRow is one printed row of the seating chart.  Seats is indexed by
// physical position; empty strings are unoccupied seats.
type ChartRow struct {
	Label string   `json:"label"`
	Seats []string `json:"seats"`
}

// Chart is the result of a seating run.
//
// Rows are in display order: the first logical row (nearest the stage) is
// the last element so the printed chart has the stage at the bottom.
// Placements are ordered by attendee identifier.
type Chart struct {
	SeatsPerRow int         `json:"seats_per_row"`
	SeatLabels  []string    `json:"seat_labels"`
	Rows        []ChartRow  `json:"rows"`
	Placements  []Placement `json:"placements"`
}

// LogicalRows returns the rows top-down in seating order, row one first.
func (c *Chart) LogicalRows() []ChartRow {
	out := make([]ChartRow, len(c.Rows))
	for i, r := range c.Rows {
		out[len(c.Rows)-1-i] = r
	}
	return out
}

// Assign seats attendees, which must already be sorted by identifier, in
// rows of seatsPerRow.  Attendee i of every row takes the i-th seat of the
// fill pattern.  An empty attendee list yields a chart with no rows.
func Assign(attendees []model.Attendee, seatsPerRow int, rowLabel RowLabeler) (*Chart, error) {
	pattern, err := FillPattern(seatsPerRow)
	if err != nil {
		return nil, err
	}
	labels, err := ColumnLabels(seatsPerRow)
	if err != nil {
		return nil, err
	}
	if rowLabel == nil {
		return nil, errors.New("seating: nil row labeler")
	}

	numRows := (len(attendees) + seatsPerRow - 1) / seatsPerRow
	logical := make([]ChartRow, 0, numRows)
	placements := make([]Placement, 0, len(attendees))

	for row := 0; row < numRows; row++ {
		label, err := rowLabel(row + 1)
		if err != nil {
			return nil, fmt.Errorf("label row %d: %w", row+1, err)
		}
		seats := make([]string, seatsPerRow)
		start := row * seatsPerRow
		end := min(start+seatsPerRow, len(attendees))
		for i, a := range attendees[start:end] {
			pos := pattern[i]
			seats[pos] = a.Name
			placements = append(placements, Placement{
				ID:        a.ID,
				Name:      a.Name,
				Row:       label,
				Seat:      labels[pos],
				RowIndex:  row,
				SeatIndex: pos,
			})
		}
		logical = append(logical, ChartRow{Label: label, Seats: seats})
	}

	display := make([]ChartRow, len(logical))
	for i, r := range logical {
		display[len(logical)-1-i] = r
	}

	sort.SliceStable(placements, func(i, j int) bool {
		return placements[i].ID.Compare(placements[j].ID) < 0
	})

	return &Chart{
		SeatsPerRow: seatsPerRow,
		SeatLabels:  labels,
		Rows:        display,
		Placements:  placements,
	}, nil
}
