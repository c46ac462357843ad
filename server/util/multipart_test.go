package util

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
)

func multipartBody(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	w.Close()

	return &buf, w.FormDataContentType()
}

func TestParseUploadFile(t *testing.T) {
	body, contentType := multipartBody(t, "file", "pic.jpg", []byte("abc"))

	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()

	f, fh, ok := ParseUploadFile(rr, req, 1<<20, 1<<20)
	if !ok {
		t.Fatalf("expected parse to succeed, got %d: %s", rr.Code, rr.Body.String())
	}
	defer f.Close()

	if fh.Filename != "pic.jpg" {
		t.Fatalf("unexpected filename %q", fh.Filename)
	}

	data, err := io.ReadAll(f)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != "abc" {
		t.Fatalf("unexpected file content %q", data)
	}
}

func TestParseUploadFile_MissingFileField(t *testing.T) {
	body, contentType := multipartBody(t, "other", "pic.jpg", []byte("abc"))

	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()

	if _, _, ok := ParseUploadFile(rr, req, 1<<20, 1<<20); ok {
		t.Fatalf("expected parse to fail without file field")
	}
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestParseUploadFile_TooLarge(t *testing.T) {
	body, contentType := multipartBody(t, "file", "big.jpg", bytes.Repeat([]byte("x"), 2048))

	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()

	if _, _, ok := ParseUploadFile(rr, req, 1<<20, 1024); ok {
		t.Fatalf("expected parse to reject oversized file")
	}
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestParseUploadFile_NotMultipart(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/upload", bytes.NewReader([]byte("{}")))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	if _, _, ok := ParseUploadFile(rr, req, 1<<20, 1<<20); ok {
		t.Fatalf("expected parse to fail for non-multipart body")
	}
}
