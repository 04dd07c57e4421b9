package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/iliyamo/meeting-seatmap/internal/model"
	"github.com/iliyamo/meeting-seatmap/internal/repository"
	"github.com/iliyamo/meeting-seatmap/internal/service"
	"github.com/iliyamo/meeting-seatmap/internal/sheet"
)

type fakeExports struct{ items []model.Export }

func (f *fakeExports) ListRecent(_ context.Context, limit int) ([]model.Export, error) {
	if limit < len(f.items) {
		return f.items[:limit], nil
	}
	return f.items, nil
}

func (f *fakeExports) GetByID(_ context.Context, id string) (*model.Export, error) {
	for i := range f.items {
		if f.items[i].ID == id {
			return &f.items[i], nil
		}
	}
	return nil, repository.ErrExportNotFound
}

func newTestServer(t *testing.T, exports ExportLister) *echo.Echo {
	t.Helper()
	svc := service.New(service.Options{MaxSeatsPerRow: 30, MaxUploadBytes: 1 << 20})
	h := NewSeatmapHandler(svc, exports, 30, 1<<20, zap.NewNop())
	e := echo.New()
	e.GET("/", h.Form)
	e.GET("/healthz", Health)
	e.POST("/v1/seatmaps", h.Create)
	e.GET("/v1/layout", h.Layout)
	e.GET("/v1/exports", h.ListExports)
	e.GET("/v1/exports/:id", h.GetExport)
	return e
}

func attendeeWorkbook(t *testing.T, n int) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	header := []interface{}{"PERSONID", "NAME"}
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &header))
	for i := 1; i <= n; i++ {
		row := []interface{}{i, "P" + strconv.Itoa(i)}
		require.NoError(t, f.SetSheetRow("Sheet1", "A"+strconv.Itoa(i+1), &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func uploadRequest(t *testing.T, target string, fields map[string]string, fileName string, data []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if fileName != "" {
		fw, err := mw.CreateFormFile("file", fileName)
		require.NoError(t, err)
		_, err = fw.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set(echo.HeaderContentType, mw.FormDataContentType())
	return req
}

func serve(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestCreateReturnsWorkbook(t *testing.T) {
	e := newTestServer(t, nil)
	req := uploadRequest(t, "/v1/seatmaps", map[string]string{"seats_per_row": "10"}, "meetperson.xlsx", attendeeWorkbook(t, 12))
	rec := serve(e, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, sheet.ContentType, rec.Header().Get(echo.HeaderContentType))
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), sheet.FileName)
	assert.Equal(t, "2", rec.Header().Get("X-Seatmap-Rows"))
	assert.NotEmpty(t, rec.Header().Get("X-Seatmap-Id"))

	f, err := excelize.OpenReader(rec.Body)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	v, err := f.GetCellValue(sheet.SheetName, "A2")
	require.NoError(t, err)
	assert.Equal(t, "第二排", v)
}

func TestCreateJSONPreview(t *testing.T) {
	e := newTestServer(t, nil)
	req := uploadRequest(t, "/v1/seatmaps?format=json", map[string]string{"seats_per_row": "2", "locale": "en"}, "list.xlsx", attendeeWorkbook(t, 3))
	rec := serve(e, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var got struct {
		Chart struct {
			Rows []struct {
				Label string   `json:"label"`
				Seats []string `json:"seats"`
			} `json:"rows"`
		} `json:"chart"`
		Explanation string `json:"explanation"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got.Chart.Rows, 2)
	assert.Equal(t, "Row 2", got.Chart.Rows[0].Label)
	assert.Equal(t, []string{"P3", ""}, got.Chart.Rows[0].Seats)
	assert.Equal(t, "P1 is in Row 1, seat 01.\nP2 is in Row 1, seat 02.\nP3 is in Row 2, seat 01.", got.Explanation)
}

func TestCreateErrors(t *testing.T) {
	e := newTestServer(t, nil)
	good := attendeeWorkbook(t, 2)

	tests := []struct {
		name   string
		fields map[string]string
		file   string
		data   []byte
		want   int
	}{
		{"missing capacity", map[string]string{}, "a.xlsx", good, http.StatusBadRequest},
		{"capacity not a number", map[string]string{"seats_per_row": "ten"}, "a.xlsx", good, http.StatusBadRequest},
		{"zero capacity", map[string]string{"seats_per_row": "0"}, "a.xlsx", good, http.StatusBadRequest},
		{"capacity above form maximum", map[string]string{"seats_per_row": "31"}, "a.xlsx", good, http.StatusBadRequest},
		{"missing file", map[string]string{"seats_per_row": "5"}, "", nil, http.StatusBadRequest},
		{"not a spreadsheet", map[string]string{"seats_per_row": "5"}, "a.xlsx", []byte("hello"), http.StatusBadRequest},
		{"unknown locale", map[string]string{"seats_per_row": "5", "locale": "tlh"}, "a.xlsx", good, http.StatusBadRequest},
		{"too many rows", map[string]string{"seats_per_row": "1"}, "a.xlsx", attendeeWorkbook(t, 100), http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(e, uploadRequest(t, "/v1/seatmaps", tt.fields, tt.file, tt.data))
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestCreateRejectsOversizedFile(t *testing.T) {
	svc := service.New(service.Options{})
	h := NewSeatmapHandler(svc, nil, 30, 100, zap.NewNop())
	e := echo.New()
	e.POST("/v1/seatmaps", h.Create)

	req := uploadRequest(t, "/v1/seatmaps", map[string]string{"seats_per_row": "5"}, "a.csv", bytes.Repeat([]byte("x"), 1000))
	rec := serve(e, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestLayoutEndpoint(t *testing.T) {
	e := newTestServer(t, nil)
	rec := serve(e, httptest.NewRequest(http.MethodGet, "/v1/layout?seats_per_row=5", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var got service.Layout
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, []int{2, 1, 3, 0, 4}, got.FillPattern)
	assert.Equal(t, []string{"05", "03", "01", "02", "04"}, got.SeatLabels)

	rec = serve(e, httptest.NewRequest(http.MethodGet, "/v1/layout?seats_per_row=x", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExportsEndpoints(t *testing.T) {
	rec := serve(newTestServer(t, nil), httptest.NewRequest(http.MethodGet, "/v1/exports", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	e := newTestServer(t, &fakeExports{items: []model.Export{{ID: "a"}, {ID: "b"}, {ID: "c"}}})
	rec = serve(e, httptest.NewRequest(http.MethodGet, "/v1/exports?limit=2", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var list struct {
		Items []model.Export `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list.Items, 2)

	rec = serve(e, httptest.NewRequest(http.MethodGet, "/v1/exports?limit=0", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(e, httptest.NewRequest(http.MethodGet, "/v1/exports/b", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = serve(e, httptest.NewRequest(http.MethodGet, "/v1/exports/zzz", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFormAndHealth(t *testing.T) {
	e := newTestServer(t, nil)
	rec := serve(e, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `max="30"`)
	assert.False(t, strings.Contains(rec.Body.String(), "{{MAX}}"))

	unbounded := NewSeatmapHandler(service.New(service.Options{}), nil, 0, 1<<20, zap.NewNop())
	e2 := echo.New()
	e2.GET("/", unbounded.Form)
	rec = serve(e2, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `name="seats_per_row" min="1" value="10"`)
	assert.NotContains(t, rec.Body.String(), "max=")
	assert.NotContains(t, rec.Body.String(), "{{MAX}}")

	rec = serve(e, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, "ok", rec.Body.String())
}
