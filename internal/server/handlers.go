package server

import (
	"encoding/json"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"strings"

	"leaselens/internal/pdftext"
)

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleUpload accepts a PDF via multipart/form-data and stores it in
// the upload directory, streaming to disk without buffering the whole
// file in memory.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	file, header, ok := s.acceptPDF(w, r)
	if !ok {
		return
	}
	defer func() { _ = file.Close() }()

	// Peek at the magic bytes. Mismatches are logged, not rejected:
	// some producers mislabel otherwise readable PDFs.
	head := make([]byte, 5)
	n, _ := io.ReadFull(file, head)
	if !pdftext.LooksLikePDF(head[:n]) {
		log.Printf("upload %q does not start with %%PDF-", header.Filename)
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		httpError(w, http.StatusInternalServerError, "Failed to read upload")
		return
	}

	if err := os.MkdirAll(s.config.UploadDir, 0755); err != nil {
		httpError(w, http.StatusInternalServerError, "Failed to prepare upload directory")
		return
	}

	tmp, err := os.CreateTemp(s.config.UploadDir, "upload-*.pdf")
	if err != nil {
		httpError(w, http.StatusInternalServerError, "Failed to store upload")
		return
	}
	defer func() { _ = tmp.Close() }()

	size, err := io.Copy(tmp, file)
	if err != nil {
		_ = os.Remove(tmp.Name())
		httpError(w, http.StatusInternalServerError, "Failed to store upload")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":           "PDF uploaded successfully",
		"original_filename": header.Filename,
		"content_type":      header.Header.Get("Content-Type"),
		"size_bytes":        size,
		"saved_path":        tmp.Name(),
	})
}

// handleExtract accepts a lease PDF and returns the extracted facts as
// a flat field → value object, null for fields that were not found.
// A document that cannot be decoded still gets a 200 with every field
// null and decode_failed set.
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	file, _, ok := s.acceptPDF(w, r)
	if !ok {
		return
	}
	defer func() { _ = file.Close() }()

	tmp, err := os.CreateTemp("", "leaselens-*.pdf")
	if err != nil {
		httpError(w, http.StatusInternalServerError, "Failed to store upload")
		return
	}
	path := tmp.Name()
	defer func() { _ = os.Remove(path) }()

	if _, err := io.Copy(tmp, file); err != nil {
		_ = tmp.Close()
		httpError(w, http.StatusInternalServerError, "Failed to store upload")
		return
	}
	if err := tmp.Close(); err != nil {
		httpError(w, http.StatusInternalServerError, "Failed to store upload")
		return
	}

	facts := s.extractor.ExtractFile(r.Context(), path)

	out := make(map[string]any, len(facts.Fields)+1)
	for name, value := range facts.Flat() {
		out[name] = value
	}
	if facts.DecodeFailed {
		out["decode_failed"] = true
	}
	writeJSON(w, http.StatusOK, out)
}

// acceptPDF validates and returns the uploaded file. On failure it has
// already written the error response.
func (s *Server) acceptPDF(w http.ResponseWriter, r *http.Request) (multipart.File, *multipart.FileHeader, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		httpError(w, http.StatusBadRequest, "No file uploaded")
		return nil, nil, false
	}

	contentType := header.Header.Get("Content-Type")
	if !strings.HasSuffix(strings.ToLower(header.Filename), ".pdf") && contentType != "application/pdf" {
		_ = file.Close()
		httpError(w, http.StatusBadRequest, "File must be a PDF with content-type application/pdf")
		return nil, nil, false
	}

	return file, header, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}

func httpError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
