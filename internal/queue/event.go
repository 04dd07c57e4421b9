// Package queue defines the seatmap.generated event, its publisher and the
// background consumer that appends each event to a log file.
package queue

// SeatmapGeneratedQueue is the durable queue events are published to.
const SeatmapGeneratedQueue = "seatmap.generated"

// SeatmapGeneratedEvent is published after a chart has been rendered.  It
// carries run metadata only, never attendee names.
type SeatmapGeneratedEvent struct {
	ExportID    string `json:"export_id"`
	FileName    string `json:"file_name"`
	Attendees   int    `json:"attendees"`
	SeatsPerRow int    `json:"seats_per_row"`
	Rows        int    `json:"rows"`
	Locale      string `json:"locale"`
	CacheHit    bool   `json:"cache_hit"`
	GeneratedAt string `json:"generated_at"`
}
