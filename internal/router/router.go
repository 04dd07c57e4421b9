package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/meeting-seatmap/internal/handler"
	"github.com/iliyamo/meeting-seatmap/internal/middleware"
)

// Middlewares are the optional Redis-backed middlewares.  A nil entry is
// skipped.
type Middlewares struct {
	RateLimit     echo.MiddlewareFunc // applied to chart generation
	ResponseCache echo.MiddlewareFunc // applied to layout previews
}

// RegisterRoutes registers routes that do not require any state.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterSeatmap registers the form, generation, layout and export history
// routes.  The export history is guarded by an operator token when jwtSecret
// is set.
func RegisterSeatmap(e *echo.Echo, h *handler.SeatmapHandler, mw Middlewares, jwtSecret string) {
	e.GET("/", h.Form)

	g := e.Group("/v1")
	g.POST("/seatmaps", h.Create, optional(mw.RateLimit)...)
	g.GET("/layout", h.Layout, optional(mw.ResponseCache)...)

	ops := g.Group("/exports", middleware.OperatorAuth(jwtSecret))
	ops.GET("", h.ListExports)
	ops.GET("/:id", h.GetExport)
}

func optional(m echo.MiddlewareFunc) []echo.MiddlewareFunc {
	if m == nil {
		return nil
	}
	return []echo.MiddlewareFunc{m}
}
