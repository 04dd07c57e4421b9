package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/iliyamo/meeting-seatmap/internal/handler"
	"github.com/iliyamo/meeting-seatmap/internal/service"
)

func newEcho(secret string, mw Middlewares) *echo.Echo {
	h := handler.NewSeatmapHandler(service.New(service.Options{}), nil, 30, 1<<20, zap.NewNop())
	e := echo.New()
	RegisterRoutes(e)
	RegisterSeatmap(e, h, mw, secret)
	return e
}

func get(e *echo.Echo, path string) int {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec.Code
}

func TestExportsRequireTokenWhenSecretSet(t *testing.T) {
	assert.Equal(t, http.StatusUnauthorized, get(newEcho("s3cret", Middlewares{}), "/v1/exports"))
	// Without a secret the route is open and reports the missing database.
	assert.Equal(t, http.StatusServiceUnavailable, get(newEcho("", Middlewares{}), "/v1/exports"))
}

func TestPublicRoutes(t *testing.T) {
	e := newEcho("s3cret", Middlewares{})
	assert.Equal(t, http.StatusOK, get(e, "/healthz"))
	assert.Equal(t, http.StatusOK, get(e, "/"))
	assert.Equal(t, http.StatusOK, get(e, "/v1/layout?seats_per_row=4"))
}

func TestMiddlewaresAreApplied(t *testing.T) {
	hit := false
	mark := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			hit = true
			return next(c)
		}
	}
	e := newEcho("", Middlewares{ResponseCache: mark})
	assert.Equal(t, http.StatusOK, get(e, "/v1/layout?seats_per_row=4"))
	assert.True(t, hit)
}
