package server

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"testing"

	"leaselens/internal/model"
)

// fakeExtractor resolves one field, or fails decoding when failDecode
// is set
type fakeExtractor struct {
	failDecode bool
}

func (f *fakeExtractor) ExtractFile(_ context.Context, path string) *model.LeaseFacts {
	facts := model.NewLeaseFacts()
	if f.failDecode {
		facts.DecodeFailed = true
		return facts
	}
	facts.Set(model.ExtractedField{
		Name:            model.FieldTenantName,
		NormalizedValue: "Acme Corp",
		Confidence:      0.9,
		Source:          model.SourcePattern,
	})
	return facts
}

func newTestServer(t *testing.T, extractor Extractor) *Server {
	t.Helper()
	return New(extractor, model.ServerConfig{
		MaxUploadBytes: 1 << 20,
		UploadDir:      t.TempDir(),
	})
}

// multipartBody builds a multipart request body with one file part
func multipartBody(t *testing.T, filename, contentType string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatal(err)
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}
	return &buf, mw.FormDataContentType()
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, &fakeExtractor{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %q, want ok", body["status"])
	}
}

func TestUploadPDF(t *testing.T) {
	srv := newTestServer(t, &fakeExtractor{})

	content := []byte("%PDF-1.4 fake lease document")
	body, contentType := multipartBody(t, "lease.pdf", "application/pdf", content)

	req := httptest.NewRequest(http.MethodPost, "/upload-pdf", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Message          string `json:"message"`
		OriginalFilename string `json:"original_filename"`
		SizeBytes        int64  `json:"size_bytes"`
		SavedPath        string `json:"saved_path"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.OriginalFilename != "lease.pdf" {
		t.Errorf("original_filename = %q", resp.OriginalFilename)
	}
	if resp.SizeBytes != int64(len(content)) {
		t.Errorf("size_bytes = %d, want %d", resp.SizeBytes, len(content))
	}

	saved, err := os.ReadFile(resp.SavedPath)
	if err != nil {
		t.Fatalf("saved file: %v", err)
	}
	if !bytes.Equal(saved, content) {
		t.Error("saved content differs from upload")
	}
}

func TestUploadRejectsNonPDF(t *testing.T) {
	srv := newTestServer(t, &fakeExtractor{})

	body, contentType := multipartBody(t, "notes.txt", "text/plain", []byte("plain text"))
	req := httptest.NewRequest(http.MethodPost, "/upload-pdf", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestUploadRejectsMissingFile(t *testing.T) {
	srv := newTestServer(t, &fakeExtractor{})

	req := httptest.NewRequest(http.MethodPost, "/upload-pdf", bytes.NewReader(nil))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=xyz")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestExtractLeaseFacts(t *testing.T) {
	srv := newTestServer(t, &fakeExtractor{})

	body, contentType := multipartBody(t, "lease.pdf", "application/pdf", []byte("%PDF-1.4 x"))
	req := httptest.NewRequest(http.MethodPost, "/extract-lease-facts", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var out map[string]*string
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if got := out["tenant_name"]; got == nil || *got != "Acme Corp" {
		t.Errorf("tenant_name = %v, want Acme Corp", got)
	}
	if got, present := out["base_year"]; !present || got != nil {
		t.Errorf("base_year = %v (present=%v), want explicit null", got, present)
	}
	if len(out) != len(model.AllFieldKinds()) {
		t.Errorf("response keys = %d, want %d", len(out), len(model.AllFieldKinds()))
	}
}

func TestExtractDecodeFailure(t *testing.T) {
	srv := newTestServer(t, &fakeExtractor{failDecode: true})

	body, contentType := multipartBody(t, "broken.pdf", "application/pdf", []byte("not a pdf"))
	req := httptest.NewRequest(http.MethodPost, "/extract-lease-facts", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if out["decode_failed"] != true {
		t.Error("decode_failed not set")
	}
	for _, kind := range model.AllFieldKinds() {
		if out[string(kind)] != nil {
			t.Errorf("%s = %v, want null", kind, out[string(kind)])
		}
	}
}

func TestExtractRejectsWrongTypeAndName(t *testing.T) {
	srv := newTestServer(t, &fakeExtractor{})

	body, contentType := multipartBody(t, "lease.docx", "application/msword", []byte("doc"))
	req := httptest.NewRequest(http.MethodPost, "/extract-lease-facts", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var resp struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Detail == "" {
		t.Error("missing error detail")
	}
}
