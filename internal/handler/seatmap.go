// Package handler exposes the HTTP surface: the upload form, chart
// generation, layout previews and the export history.
package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/meeting-seatmap/internal/locale"
	"github.com/iliyamo/meeting-seatmap/internal/model"
	"github.com/iliyamo/meeting-seatmap/internal/repository"
	"github.com/iliyamo/meeting-seatmap/internal/seating"
	"github.com/iliyamo/meeting-seatmap/internal/service"
	"github.com/iliyamo/meeting-seatmap/internal/sheet"
)

// ExportLister reads the export audit.
type ExportLister interface {
	ListRecent(ctx context.Context, limit int) ([]model.Export, error)
	GetByID(ctx context.Context, id string) (*model.Export, error)
}

// SeatmapHandler bundles what the seatmap routes need.  Exports is nil when
// no database is configured.
type SeatmapHandler struct {
	Service        *service.Service
	Exports        ExportLister
	MaxSeatsPerRow int
	MaxUploadBytes int64
	Logger         *zap.Logger
}

// NewSeatmapHandler panics if svc or logger is nil.
func NewSeatmapHandler(svc *service.Service, exports ExportLister, maxSeats int, maxUpload int64, logger *zap.Logger) *SeatmapHandler {
	if svc == nil || logger == nil {
		panic("nil dependency passed to NewSeatmapHandler")
	}
	return &SeatmapHandler{
		Service:        svc,
		Exports:        exports,
		MaxSeatsPerRow: maxSeats,
		MaxUploadBytes: maxUpload,
		Logger:         logger,
	}
}

// multipartOverhead is the slack allowed on top of MaxUploadBytes for the
// multipart envelope and the other form fields.
const multipartOverhead = 64 << 10

// Create handles POST /v1/seatmaps.  It expects a multipart form with the
// attendee list in "file", the row capacity in "seats_per_row" and an
// optional "locale".  The workbook is returned as an attachment unless
// ?format=json asks for the chart itself.
func (h *SeatmapHandler) Create(c echo.Context) error {
	if h.MaxUploadBytes > 0 {
		c.Request().Body = http.MaxBytesReader(c.Response(), c.Request().Body, h.MaxUploadBytes+multipartOverhead)
	}
	if err := c.Request().ParseMultipartForm(32 << 20); err != nil {
		if tooLarge(err) {
			return h.fail(c, service.ErrUploadTooLarge)
		}
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "expected a multipart form upload"})
	}
	seatsPerRow, err := strconv.Atoi(strings.TrimSpace(c.FormValue("seats_per_row")))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "seats_per_row must be a whole number"})
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing attendee file"})
	}
	if h.MaxUploadBytes > 0 && fh.Size > h.MaxUploadBytes {
		return h.fail(c, service.ErrUploadTooLarge)
	}
	f, err := fh.Open()
	if err != nil {
		return h.fail(c, fmt.Errorf("%w: %w", sheet.ErrInputRead, err))
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return h.fail(c, fmt.Errorf("%w: %w", sheet.ErrInputRead, err))
	}

	req := service.Request{
		FileName:    fh.Filename,
		Data:        data,
		SeatsPerRow: seatsPerRow,
		Locale:      c.FormValue("locale"),
	}

	if c.QueryParam("format") == "json" {
		chart, text, err := h.Service.Preview(c.Request().Context(), req)
		if err != nil {
			return h.fail(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{
			"chart":       chart,
			"explanation": text,
		})
	}

	res, err := h.Service.Generate(c.Request().Context(), req)
	if err != nil {
		return h.fail(c, err)
	}
	hdr := c.Response().Header()
	hdr.Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", res.FileName))
	hdr.Set("X-Seatmap-Id", res.ID)
	hdr.Set("X-Seatmap-Rows", strconv.Itoa(res.Rows))
	if res.CacheHit {
		hdr.Set("X-Cache", "HIT")
	} else {
		hdr.Set("X-Cache", "MISS")
	}
	return c.Blob(http.StatusOK, sheet.ContentType, res.Document)
}

// Layout handles GET /v1/layout?seats_per_row=W.
func (h *SeatmapHandler) Layout(c echo.Context) error {
	w, err := strconv.Atoi(c.QueryParam("seats_per_row"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "seats_per_row must be a whole number"})
	}
	layout, err := h.Service.Layout(w)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, layout)
}

// ListExports handles GET /v1/exports?limit=n (default 20, at most 100).
func (h *SeatmapHandler) ListExports(c echo.Context) error {
	if h.Exports == nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "export history is not configured"})
	}
	limit := 20
	if s := c.QueryParam("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid limit"})
		}
		limit = min(n, 100)
	}
	items, err := h.Exports.ListRecent(c.Request().Context(), limit)
	if err != nil {
		h.Logger.Error("list exports failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetExport handles GET /v1/exports/:id.
func (h *SeatmapHandler) GetExport(c echo.Context) error {
	if h.Exports == nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "export history is not configured"})
	}
	e, err := h.Exports.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrExportNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "export not found"})
		}
		h.Logger.Error("get export failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, e)
}

// fail turns a pipeline error into the single error message shown to the
// user.
func (h *SeatmapHandler) fail(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrUploadTooLarge):
		status = http.StatusRequestEntityTooLarge
	case errors.Is(err, sheet.ErrInputRead),
		errors.Is(err, sheet.ErrExplanationTooLong),
		errors.Is(err, seating.ErrInvalidCapacity),
		errors.Is(err, locale.ErrUnknownLocale):
		status = http.StatusBadRequest
	case errors.Is(err, seating.ErrInvalidNumeral):
		status = http.StatusUnprocessableEntity
	}
	if status == http.StatusInternalServerError {
		h.Logger.Error("seatmap generation failed", zap.Error(err))
		return c.JSON(status, echo.Map{"error": "failed to generate seating chart"})
	}
	return c.JSON(status, echo.Map{"error": err.Error()})
}

func tooLarge(err error) bool {
	var mbe *http.MaxBytesError
	return errors.As(err, &mbe)
}
