package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"swan/internal/chart"
	"swan/internal/dashboard"
	"swan/internal/model"
	"swan/internal/store"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	columns := append(append([]string{}, model.RequiredColumns...), "Notes")
	records := []model.Record{
		{RowNo: 1, Department: "Lab", Physician: "Dr. Ali", Type: "Procedure", Service: "CBC", Price: "100", QtyCash: 3, QtyIns: 5,
			Values: []string{"Lab", "Dr. Ali", "Procedure", "CBC", "100", "3", "5", "n1"}},
		{RowNo: 2, Department: "Clinic", Physician: "Dr. Omar", Type: "Consultation", Service: "Visit", Price: "NA", QtyCash: 0, QtyIns: 2,
			Values: []string{"Clinic", "Dr. Omar", "Consultation", "Visit", "NA", "0", "2", "n2"}},
		{RowNo: 3, Department: "Lab", Physician: "Dr. Sara", Type: "Other", Service: "Swab", Price: "free", QtyCash: 1, QtyIns: 0,
			Values: []string{"Lab", "Dr. Sara", "Other", "Swab", "free", "1", "0", "n3"}},
	}
	ds := store.NewDataset("test.xlsx", "xlsx", columns, records)

	renderer, err := chart.NewRenderer(chart.Options{WidthInch: 6, HeightInch: 4})
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	h := NewHandler(ds, renderer, Options{Title: "Test", ExportDir: t.TempDir()})
	r := gin.New()
	h.RegisterRoutes(r.Group("/api"))
	return r
}

func doRequest(r http.Handler, method, target string, body []byte) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGetStatus(t *testing.T) {
	r := newTestRouter(t)

	w := doRequest(r, http.MethodGet, "/api/status", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", w.Code, w.Body.String())
	}
	var resp StatusResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !resp.Initialized || resp.RecordCount != 3 || resp.Format != "xlsx" || len(resp.Columns) != 8 {
		t.Fatalf("unexpected status: %+v", resp)
	}
}

func TestGetStatus_NoDataset(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(nil, nil, Options{}).RegisterRoutes(r.Group("/api"))

	w := doRequest(r, http.MethodGet, "/api/status", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", w.Code)
	}
	w = doRequest(r, http.MethodGet, "/api/dashboard", nil)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("unexpected dashboard status: %d", w.Code)
	}
}

func TestGetOptions(t *testing.T) {
	r := newTestRouter(t)

	w := doRequest(r, http.MethodGet, "/api/options", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", w.Code, w.Body.String())
	}
	var resp OptionsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(resp.Departments) != 2 || resp.Departments[0] != "Lab" {
		t.Fatalf("departments=%v", resp.Departments)
	}
	if len(resp.Physicians) != 3 || resp.Physicians[0] != "Dr. Ali" {
		t.Fatalf("physicians=%v", resp.Physicians)
	}
	if len(resp.Types) != 4 || resp.Types[0] != "Consultation" {
		t.Fatalf("types=%v", resp.Types)
	}
}

func TestGetDashboard(t *testing.T) {
	r := newTestRouter(t)

	w := doRequest(r, http.MethodGet, "/api/dashboard", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", w.Code, w.Body.String())
	}
	var resp struct {
		Title   string            `json:"title"`
		Metrics dashboard.Metrics `json:"metrics"`
		Rows    []dashboard.Row   `json:"rows"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Title != "Test" || resp.Metrics.InsuranceVisitors != 7 || resp.Metrics.CashVisitors != 4 || resp.Metrics.DistinctServices != 3 {
		t.Fatalf("unexpected metrics: %+v", resp)
	}
	if len(resp.Rows) != 3 || resp.Rows[0].Service != "CBC" || resp.Rows[0].FormattedPrice != "100 ريال" {
		t.Fatalf("unexpected rows: %+v", resp.Rows)
	}

	w = doRequest(r, http.MethodGet, "/api/dashboard?type=Procedure&type=Consultation&department=Lab", nil)
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(resp.Rows) != 1 || resp.Rows[0].Service != "CBC" || resp.Metrics.InsuranceVisitors != 5 {
		t.Fatalf("unexpected filtered dashboard: %+v", resp)
	}
}

func TestGetChart(t *testing.T) {
	r := newTestRouter(t)

	w := doRequest(r, http.MethodGet, "/api/chart.png?department=Lab", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/png" {
		t.Fatalf("content-type=%q", ct)
	}
	if !bytes.HasPrefix(w.Body.Bytes(), []byte("\x89PNG")) {
		t.Fatalf("body is not a PNG")
	}
}

func TestListRecords(t *testing.T) {
	r := newTestRouter(t)

	w := doRequest(r, http.MethodGet, "/api/records?department=Lab&page=1&pageSize=1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", w.Code, w.Body.String())
	}
	var resp listRecordsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Total != 2 || resp.PageSize != 1 || len(resp.Items) != 1 {
		t.Fatalf("unexpected paging: %+v", resp)
	}
	if resp.Items[0].RowNo != 1 || resp.Items[0].Values[4] != "100" || resp.Items[0].Values[7] != "n1" {
		t.Fatalf("values not passed through: %+v", resp.Items[0])
	}

	w = doRequest(r, http.MethodGet, "/api/records?page=9&pageSize=99999", nil)
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.PageSize != maxPageSize || len(resp.Items) != 0 || resp.Total != 3 {
		t.Fatalf("unexpected out-of-range page: %+v", resp)
	}
}

func TestExportAndDownload(t *testing.T) {
	r := newTestRouter(t)

	body, _ := json.Marshal(exportRequest{Format: "xlsx", Departments: []string{"Lab"}})
	w := doRequest(r, http.MethodPost, "/api/export", body)
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", w.Code, w.Body.String())
	}
	var resp exportResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Rows != 2 || resp.Format != "xlsx" || resp.DownloadURL == "" {
		t.Fatalf("unexpected export response: %+v", resp)
	}

	w = doRequest(r, http.MethodGet, resp.DownloadURL, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("download status: %d body=%s", w.Code, w.Body.String())
	}
	if w.Body.Len() == 0 || !bytes.HasPrefix(w.Body.Bytes(), []byte("PK")) {
		t.Fatalf("download is not an xlsx archive")
	}

	// 下载链接一次性
	w = doRequest(r, http.MethodGet, resp.DownloadURL, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("second download status: %d", w.Code)
	}
}

func TestExport_BadFormat(t *testing.T) {
	r := newTestRouter(t)

	w := doRequest(r, http.MethodPost, "/api/export", []byte(`{"format":"pdf"}`))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: %d", w.Code)
	}
}

func TestExportDownloadStore_Expiry(t *testing.T) {
	t.Parallel()

	f, err := os.CreateTemp(t.TempDir(), "export_*.xlsx")
	if err != nil {
		t.Fatalf("create temp: %v", err)
	}
	f.Close()

	s := newExportDownloadStore()
	token, _ := s.put(f.Name(), "xlsx", 0)
	if _, ok := s.take("unknown"); ok {
		t.Fatalf("unknown token accepted")
	}
	s.now = func() time.Time { return time.Now().Add(time.Second) }
	if _, ok := s.take(token); ok {
		t.Fatalf("expired token accepted")
	}
	if _, err := os.Stat(f.Name()); !os.IsNotExist(err) {
		t.Fatalf("expired export file not removed: %v", err)
	}
}
