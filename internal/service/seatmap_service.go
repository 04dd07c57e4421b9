// Package service runs one seating chart generation end to end: read the
// attendee list, assign seats, render the workbook.  The side effects that
// follow a successful run (document cache, export audit, event) are
// best-effort and never change the returned document.
package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/iliyamo/meeting-seatmap/internal/cache"
	"github.com/iliyamo/meeting-seatmap/internal/locale"
	"github.com/iliyamo/meeting-seatmap/internal/model"
	"github.com/iliyamo/meeting-seatmap/internal/queue"
	"github.com/iliyamo/meeting-seatmap/internal/seating"
	"github.com/iliyamo/meeting-seatmap/internal/sheet"
)

// ErrUploadTooLarge is returned when an attendee list exceeds MaxUploadBytes.
var ErrUploadTooLarge = errors.New("upload too large")

// DocumentCache looks up and stores rendered workbooks.
type DocumentCache interface {
	Key(upload []byte, format string, seatsPerRow int, locale string) string
	Get(ctx context.Context, key string) (*cache.Document, bool)
	Put(ctx context.Context, key string, doc *cache.Document) error
}

// ExportRecorder stores export audit entries.
type ExportRecorder interface {
	Insert(ctx context.Context, e *model.Export) error
}

// EventPublisher announces finished exports.
type EventPublisher interface {
	PublishSeatmapGenerated(ctx context.Context, ev queue.SeatmapGeneratedEvent) error
}

// Options configures a Service.  Cache, Exports and Events are optional.
type Options struct {
	DefaultLocale  string
	MaxSeatsPerRow int   // 0 means no upper bound
	MaxUploadBytes int64 // 0 means no limit
	Cache          DocumentCache
	Exports        ExportRecorder
	Events         EventPublisher
	Logger         *zap.Logger
}

// Service generates seating charts.  It holds no per-request state and is
// safe for concurrent use.
type Service struct {
	opts Options
	log  *zap.Logger
	now  func() time.Time

	publishing sync.WaitGroup
}

// publishTimeout bounds one event publish, which runs after the response.
const publishTimeout = 10 * time.Second

func New(opts Options) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.DefaultLocale == "" {
		opts.DefaultLocale = locale.Default
	}
	return &Service{opts: opts, log: logger, now: func() time.Time { return time.Now().UTC() }}
}

// Request is one uploaded attendee list plus the rendering settings.
type Request struct {
	FileName    string
	Data        []byte
	SeatsPerRow int
	Locale      string // empty selects the service default
}

// Result is a rendered chart.  Chart is nil when the document came from the
// cache.
type Result struct {
	ID          string
	FileName    string
	Document    []byte
	Explanation string
	Attendees   int
	Rows        int
	Locale      string
	Chart       *seating.Chart
	CacheHit    bool
}

// Generate runs the whole pipeline for req.  Any failure aborts the run and
// no document is returned.
func (s *Service) Generate(ctx context.Context, req Request) (*Result, error) {
	if err := s.checkCapacity(req.SeatsPerRow); err != nil {
		return nil, err
	}
	if s.opts.MaxUploadBytes > 0 && int64(len(req.Data)) > s.opts.MaxUploadBytes {
		return nil, fmt.Errorf("%w: %d bytes (limit %d)", ErrUploadTooLarge, len(req.Data), s.opts.MaxUploadBytes)
	}
	code := req.Locale
	if code == "" {
		code = s.opts.DefaultLocale
	}
	loc, err := locale.Lookup(code)
	if err != nil {
		return nil, err
	}

	res := &Result{ID: uuid.NewString(), FileName: sheet.FileName, Locale: loc.Code}
	var key string
	if s.opts.Cache != nil {
		key = s.opts.Cache.Key(req.Data, sheet.FormatOf(req.FileName), req.SeatsPerRow, loc.Code)
		if doc, ok := s.opts.Cache.Get(ctx, key); ok {
			res.Document = doc.Body
			res.Explanation = doc.Meta.Explanation
			res.Attendees = doc.Meta.Attendees
			res.Rows = doc.Meta.Rows
			res.CacheHit = true
			s.log.Debug("seatmap cache hit", zap.String("key", key))
			s.afterExport(ctx, req, res)
			return res, nil
		}
	}

	attendees, err := sheet.ReadAttendees(bytes.NewReader(req.Data), req.FileName)
	if err != nil {
		return nil, err
	}
	chart, err := seating.Assign(attendees, req.SeatsPerRow, loc.RowLabel)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := sheet.Write(&buf, chart, loc); err != nil {
		return nil, fmt.Errorf("render workbook: %w", err)
	}

	res.Document = buf.Bytes()
	res.Explanation = sheet.Explanation(chart.Placements, loc)
	res.Attendees = len(attendees)
	res.Rows = len(chart.Rows)
	res.Chart = chart

	if s.opts.Cache != nil {
		doc := &cache.Document{
			Meta: cache.Meta{Attendees: res.Attendees, Rows: res.Rows, Explanation: res.Explanation},
			Body: res.Document,
		}
		if err := s.opts.Cache.Put(ctx, key, doc); err != nil {
			s.log.Warn("seatmap cache store failed", zap.Error(err))
		}
	}
	s.afterExport(ctx, req, res)
	return res, nil
}

// Preview assigns seats without rendering a workbook.
func (s *Service) Preview(ctx context.Context, req Request) (*seating.Chart, string, error) {
	if err := s.checkCapacity(req.SeatsPerRow); err != nil {
		return nil, "", err
	}
	code := req.Locale
	if code == "" {
		code = s.opts.DefaultLocale
	}
	loc, err := locale.Lookup(code)
	if err != nil {
		return nil, "", err
	}
	attendees, err := sheet.ReadAttendees(bytes.NewReader(req.Data), req.FileName)
	if err != nil {
		return nil, "", err
	}
	chart, err := seating.Assign(attendees, req.SeatsPerRow, loc.RowLabel)
	if err != nil {
		return nil, "", err
	}
	return chart, sheet.Explanation(chart.Placements, loc), nil
}

// Layout describes the seat order and labels of a row width.
type Layout struct {
	SeatsPerRow int      `json:"seats_per_row"`
	FillPattern []int    `json:"fill_pattern"`
	SeatLabels  []string `json:"seat_labels"`
	// FillLabels is FillPattern translated to seat labels: the seat
	// numbers in the order attendees take them.
	FillLabels []string `json:"fill_labels"`
}

// Layout returns the fill pattern and column labels for seatsPerRow.
func (s *Service) Layout(seatsPerRow int) (*Layout, error) {
	if err := s.checkCapacity(seatsPerRow); err != nil {
		return nil, err
	}
	pattern, err := seating.FillPattern(seatsPerRow)
	if err != nil {
		return nil, err
	}
	labels, err := seating.ColumnLabels(seatsPerRow)
	if err != nil {
		return nil, err
	}
	order := make([]string, len(pattern))
	for i, pos := range pattern {
		order[i] = labels[pos]
	}
	return &Layout{SeatsPerRow: seatsPerRow, FillPattern: pattern, SeatLabels: labels, FillLabels: order}, nil
}

func (s *Service) checkCapacity(seatsPerRow int) error {
	if seatsPerRow < 1 {
		return fmt.Errorf("%w: %d", seating.ErrInvalidCapacity, seatsPerRow)
	}
	if s.opts.MaxSeatsPerRow > 0 && seatsPerRow > s.opts.MaxSeatsPerRow {
		return fmt.Errorf("%w: %d (maximum %d)", seating.ErrInvalidCapacity, seatsPerRow, s.opts.MaxSeatsPerRow)
	}
	return nil
}

// afterExport records the audit entry and publishes the event.  Failures
// are logged only.
func (s *Service) afterExport(ctx context.Context, req Request, res *Result) {
	now := s.now()
	s.log.Info("seatmap generated",
		zap.String("export_id", res.ID),
		zap.String("file", req.FileName),
		zap.Int("attendees", res.Attendees),
		zap.Int("seats_per_row", req.SeatsPerRow),
		zap.Int("rows", res.Rows),
		zap.String("locale", res.Locale),
		zap.Bool("cache_hit", res.CacheHit))

	if s.opts.Exports != nil {
		e := &model.Export{
			ID:          res.ID,
			FileName:    req.FileName,
			Attendees:   res.Attendees,
			SeatsPerRow: req.SeatsPerRow,
			Rows:        res.Rows,
			Locale:      res.Locale,
			CreatedAt:   now,
		}
		if err := s.opts.Exports.Insert(ctx, e); err != nil {
			s.log.Warn("export audit insert failed", zap.String("export_id", res.ID), zap.Error(err))
		}
	}
	if s.opts.Events != nil {
		ev := queue.SeatmapGeneratedEvent{
			ExportID:    res.ID,
			FileName:    req.FileName,
			Attendees:   res.Attendees,
			SeatsPerRow: req.SeatsPerRow,
			Rows:        res.Rows,
			Locale:      res.Locale,
			CacheHit:    res.CacheHit,
			GeneratedAt: now.Format(time.RFC3339),
		}
		// the request context ends with the response; the publish outlives it
		pubCtx := context.WithoutCancel(ctx)
		s.publishing.Add(1)
		go func() {
			defer s.publishing.Done()
			ctx, cancel := context.WithTimeout(pubCtx, publishTimeout)
			defer cancel()
			if err := s.opts.Events.PublishSeatmapGenerated(ctx, ev); err != nil {
				s.log.Warn("seatmap event publish failed", zap.String("export_id", ev.ExportID), zap.Error(err))
			}
		}()
	}
}

// Wait blocks until all event publishes started by Generate have finished.
func (s *Service) Wait() {
	s.publishing.Wait()
}
