package model

import "time"

// Export describes one generated seating chart.  Only metadata is recorded;
// the chart itself is never persisted.
//
// Fields:
//  ID          – uuid assigned by the service.
//  FileName    – name of the uploaded attendee list.
//  Attendees   – number of attendees seated.
//  SeatsPerRow – row capacity used for the run.
//  Rows        – number of logical rows produced.
//  Locale      – locale code of the rendered document.
//  CreatedAt   – generation timestamp (UTC).
type Export struct {
	ID          string    `json:"id"`            // seatmap_exports.id
	FileName    string    `json:"file_name"`     // seatmap_exports.file_name
	Attendees   int       `json:"attendees"`     // seatmap_exports.attendees
	SeatsPerRow int       `json:"seats_per_row"` // seatmap_exports.seats_per_row
	Rows        int       `json:"rows"`          // seatmap_exports.row_count
	Locale      string    `json:"locale"`        // seatmap_exports.locale
	CreatedAt   time.Time `json:"created_at"`    // seatmap_exports.created_at
}
