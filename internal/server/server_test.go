package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/costcheck-go/internal/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Server.DevMode = true
	cfg.Validation.ReferenceDir = t.TempDir()
	return NewServer(cfg, nil)
}

// workbook returns an xlsx holding only the currency block.
func workbook(t *testing.T) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetCellValue("Sheet1", "A1", "Currency"))
	require.NoError(t, f.SetCellValue("Sheet1", "B1", "USD"))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

type upload struct {
	name string
	data []byte
}

func validateRequest(t *testing.T, brand, accept string, files ...upload) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	if brand != "" {
		require.NoError(t, w.WriteField("brand", brand))
	}
	for _, f := range files {
		part, err := w.CreateFormFile("files", f.name)
		require.NoError(t, err)
		_, err = part.Write(f.data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/validate", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	return req
}

func serve(s *Server, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestIndexListsBrands(t *testing.T) {
	s := newTestServer(t)
	rec := serve(s, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `<option value="tidewater" selected>Tidewater</option>`)
	assert.Contains(t, rec.Body.String(), `<option value="summit">Summit</option>`)
}

func TestListBrands(t *testing.T) {
	s := newTestServer(t)
	rec := serve(s, httptest.NewRequest(http.MethodGet, "/api/brands", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Brands []brandInfo `json:"brands"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Brands, 2)
	assert.Equal(t, "summit", body.Brands[0].Name)
	assert.Equal(t, "tidewater", body.Brands[1].Name)
	assert.True(t, body.Brands[1].Default)
}

func TestValidateHTML(t *testing.T) {
	s := newTestServer(t)
	rec := serve(s, validateRequest(t, "tidewater", "",
		upload{"style-100.xlsx", workbook(t)},
		upload{"notes.txt", []byte("not a workbook")}))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Run-ID"))
	body := rec.Body.String()
	assert.Contains(t, body, "style-100.xlsx")
	assert.Contains(t, body, `data-tone="valid"`)
	assert.Contains(t, body, `data-tone="invalid"`)
	assert.Contains(t, body, "Not Found")
	assert.Contains(t, body, `<div class="error-block">notes.txt (parse)`)
}

func TestValidateJSON(t *testing.T) {
	s := newTestServer(t)
	rec := serve(s, validateRequest(t, "", "application/json", upload{"style-100.xlsx", workbook(t)}))
	require.Equal(t, http.StatusOK, rec.Code)

	var run struct {
		ID    string `json:"id"`
		Brand string `json:"brand"`
		Files []struct {
			FileName string `json:"file_name"`
			Verdicts []struct {
				RuleID string `json:"rule_id"`
				Status string `json:"status"`
			} `json:"verdicts"`
		} `json:"files"`
		Passed int `json:"passed"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &run))
	assert.Equal(t, rec.Header().Get("X-Run-ID"), run.ID)
	assert.Equal(t, "tidewater", run.Brand)
	require.Len(t, run.Files, 1)
	assert.Equal(t, 1, run.Passed)
	assert.Equal(t, "currency", run.Files[0].Verdicts[0].RuleID)
	assert.Equal(t, "pass", run.Files[0].Verdicts[0].Status)
}

func TestValidateErrors(t *testing.T) {
	s := newTestServer(t)

	rec := serve(s, validateRequest(t, "tidewater", ""))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(s, validateRequest(t, "acme", "application/json", upload{"a.xlsx", workbook(t)}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "unknown brand")

	// summit needs its reference table, absent from the temp reference dir
	rec = serve(s, validateRequest(t, "summit", "", upload{"a.xlsx", workbook(t)}))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "error-block")
	assert.Contains(t, rec.Body.String(), "reference table missing")
	assert.Nil(t, s.getLatest(), "a failed run must not replace the latest run")
}

func TestValidateWithReferenceTable(t *testing.T) {
	s := newTestServer(t)
	src, err := os.ReadFile(filepath.Join("..", "..", "reference", "summit_cost_breakdown.csv"))
	require.NoError(t, err)
	dst := filepath.Join(s.cfg.Validation.ReferenceDir, "summit_cost_breakdown.csv")
	require.NoError(t, os.WriteFile(dst, src, 0644))

	rec := serve(s, validateRequest(t, "summit", "", upload{"a.xlsx", workbook(t)}))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "checks passed")
}

func TestExport(t *testing.T) {
	s := newTestServer(t)

	rec := serve(s, httptest.NewRequest(http.MethodGet, "/api/export", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	first := serve(s, validateRequest(t, "tidewater", "", upload{"a.xlsx", workbook(t)}))
	require.Equal(t, http.StatusOK, first.Code)
	second := serve(s, validateRequest(t, "tidewater", "", upload{"b.xlsx", workbook(t)}))
	require.Equal(t, http.StatusOK, second.Code)

	rec = serve(s, httptest.NewRequest(http.MethodGet, "/api/export", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "%PDF-"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "Tidewater_Validation_")
	// last writer wins
	assert.Equal(t, second.Header().Get("X-Run-ID"), rec.Header().Get("X-Run-ID"))
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t)
	rec := serve(s, httptest.NewRequest(http.MethodOptions, "/api/validate", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
