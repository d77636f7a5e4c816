package optimize

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newTestRouter(t *testing.T, scraper *fakeScraper) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc, _, _, _ := newTestService(t, scraper)
	router := gin.New()
	NewHandler(svc).RegisterRoutes(router.Group("/api/v1"))
	return router
}

func multipartForm(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("WriteField: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	return body, writer.FormDataContentType()
}

func TestOptimizeEndpoint(t *testing.T) {
	router := newTestRouter(t, &fakeScraper{record: sampleVacancy()})

	body, contentType := multipartForm(t, map[string]string{
		"cv_text":     "Jane Doe, 5 years Python",
		"vacancy_url": "https://jobs.example/123",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/optimize", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Success    bool   `json:"success"`
		ResumeES   string `json:"cv_es"`
		ResumeEN   string `json:"cv_en"`
		FilenameES string `json:"es_filename"`
		FilenameEN string `json:"en_filename"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !resp.Success {
		t.Errorf("success = false")
	}
	if resp.FilenameES != "data_scientist-tech_global_es.txt" {
		t.Errorf("es_filename = %q", resp.FilenameES)
	}
	if resp.ResumeEN == "" {
		t.Errorf("cv_en empty")
	}
}

func TestOptimizeEndpointMissingInput(t *testing.T) {
	router := newTestRouter(t, &fakeScraper{record: sampleVacancy()})

	body, contentType := multipartForm(t, map[string]string{
		"vacancy_url": "https://jobs.example/123",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/optimize", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var resp struct {
		Error struct {
			Kind string `json:"kind"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Error.Kind != string(KindMissingInput) {
		t.Errorf("kind = %q, want %q", resp.Error.Kind, KindMissingInput)
	}
}

func TestOptimizeEndpointScrapeFailure(t *testing.T) {
	router := newTestRouter(t, &fakeScraper{err: errors.New("render timeout")})

	body, contentType := multipartForm(t, map[string]string{
		"cv_text":     "Jane Doe",
		"vacancy_url": "https://jobs.example/404",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/optimize", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
	var resp struct {
		Error struct {
			Kind string `json:"kind"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Error.Kind != string(KindScrapeFailed) {
		t.Errorf("kind = %q, want %q", resp.Error.Kind, KindScrapeFailed)
	}
}

func TestExtractEndpoint(t *testing.T) {
	router := newTestRouter(t, &fakeScraper{record: sampleVacancy()})

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", "resume.txt")
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	if _, err := part.Write([]byte("Jane Doe, 5 years Python")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents/extract", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Text != "Jane Doe, 5 years Python" {
		t.Errorf("text = %q", resp.Text)
	}
}

func TestExtractEndpointUnsupportedFormat(t *testing.T) {
	router := newTestRouter(t, &fakeScraper{record: sampleVacancy()})

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", "resume.odt")
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	if _, err := part.Write([]byte("whatever")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents/extract", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
