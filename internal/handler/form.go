package handler

import (
	_ "embed"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

//go:embed templates/form.html
var formHTML string

// Form serves the upload page.  The seats-per-row input is capped only when
// a maximum is configured.
func (h *SeatmapHandler) Form(c echo.Context) error {
	maxAttr := ""
	if h.MaxSeatsPerRow > 0 {
		maxAttr = ` max="` + strconv.Itoa(h.MaxSeatsPerRow) + `"`
	}
	page := strings.ReplaceAll(formHTML, "{{MAX}}", maxAttr)
	return c.HTML(http.StatusOK, page)
}
