package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/Qween0fPandora/ai-summary-app/internal/extract"
	"github.com/Qween0fPandora/ai-summary-app/internal/provider"
	"github.com/Qween0fPandora/ai-summary-app/internal/repository"
	"github.com/Qween0fPandora/ai-summary-app/internal/services"
	"github.com/Qween0fPandora/ai-summary-app/internal/storage"
)

type fakeProvider struct {
	calls int
	reply string
}

func (f *fakeProvider) Name() string { return "github" }

func (f *fakeProvider) ChatCompletion(context.Context, *provider.ChatRequest) (*provider.ChatResponse, error) {
	f.calls++
	return &provider.ChatResponse{Content: f.reply, FinishReason: "stop"}, nil
}

func newTestServer(t *testing.T, fake *fakeProvider) *Server {
	t.Helper()
	blobs, err := storage.NewLocalStorage(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	reg := provider.NewRegistry()
	reg.Register(fake)
	svc := services.NewDocumentService(repository.NewMemory(), blobs, reg, "github/gpt-4.1-mini", 500)
	return NewServer(svc)
}

// multipartBody builds a multipart form with one file field.
func multipartBody(t *testing.T, filename, contentType, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	h := textproto.MIMEHeader{}
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	if err != nil {
		t.Fatal(err)
	}
	part.Write([]byte(content))
	mw.Close()
	return &buf, mw.FormDataContentType()
}

func uploadDocument(t *testing.T, srv *Server, filename, contentType, content string) map[string]any {
	t.Helper()
	body, formType := multipartBody(t, filename, contentType, content)
	req := httptest.NewRequest("POST", "/api/upload", body)
	req.Header.Set("Content-Type", formType)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("upload status: got %d, want 200 (body %s)", w.Code, w.Body.String())
	}
	var resp map[string]any
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

func postJSON(srv *Server, path string, payload any) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest("POST", path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	return w
}

func TestAPI_Upload(t *testing.T) {
	srv := newTestServer(t, &fakeProvider{})
	resp := uploadDocument(t, srv, "notes.txt", "text/plain", "Remember the meeting at 3pm.")

	if resp["success"] != true {
		t.Fatalf("success: got %v", resp["success"])
	}
	doc, ok := resp["document"].(map[string]any)
	if !ok {
		t.Fatalf("document missing from response: %v", resp)
	}
	if doc["filename"] != "notes.txt" {
		t.Errorf("filename: got %v", doc["filename"])
	}
	if doc["id"] == "" || doc["id"] == nil {
		t.Error("document id not assigned")
	}
	if _, present := doc["extracted_text"]; present {
		t.Error("extracted_text should be absent before extraction")
	}
}

func TestAPI_Upload_DisallowedType(t *testing.T) {
	srv := newTestServer(t, &fakeProvider{})
	body, formType := multipartBody(t, "pic.png", "image/png", "binary")
	req := httptest.NewRequest("POST", "/api/upload", body)
	req.Header.Set("Content-Type", formType)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want 400", w.Code)
	}
	var resp map[string]any
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["error"] == "" || resp["error"] == nil {
		t.Error("expected error message in body")
	}
}

func TestAPI_Upload_NoFile(t *testing.T) {
	srv := newTestServer(t, &fakeProvider{})
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	mw.Close()
	req := httptest.NewRequest("POST", "/api/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want 400", w.Code)
	}
}

func TestAPI_Extract(t *testing.T) {
	srv := newTestServer(t, &fakeProvider{})
	resp := uploadDocument(t, srv, "notes.txt", "text/plain", "hello world")
	id := resp["document"].(map[string]any)["id"].(string)

	w := postJSON(srv, "/api/extract", map[string]string{"documentId": id})
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200 (body %s)", w.Code, w.Body.String())
	}
	var out map[string]any
	json.Unmarshal(w.Body.Bytes(), &out)
	if out["extractedText"] != "hello world" {
		t.Errorf("extractedText: got %v", out["extractedText"])
	}
}

func TestAPI_Extract_PDFStub(t *testing.T) {
	srv := newTestServer(t, &fakeProvider{})
	resp := uploadDocument(t, srv, "paper.pdf", "application/pdf", "%PDF-1.4")
	id := resp["document"].(map[string]any)["id"].(string)

	w := postJSON(srv, "/api/extract", map[string]string{"documentId": id})
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", w.Code)
	}
	var out map[string]any
	json.Unmarshal(w.Body.Bytes(), &out)
	if out["extractedText"] != extract.UnsupportedFormatStub {
		t.Errorf("extractedText: got %v, want stub", out["extractedText"])
	}
}

func TestAPI_Extract_MissingID(t *testing.T) {
	srv := newTestServer(t, &fakeProvider{})
	w := postJSON(srv, "/api/extract", map[string]string{})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want 400", w.Code)
	}
}

func TestAPI_Extract_UnknownID(t *testing.T) {
	srv := newTestServer(t, &fakeProvider{})
	w := postJSON(srv, "/api/extract", map[string]string{"documentId": "nope"})
	if w.Code != http.StatusNotFound {
		t.Fatalf("status: got %d, want 404", w.Code)
	}
}

func TestAPI_Summarize_BeforeExtract(t *testing.T) {
	fake := &fakeProvider{reply: "summary"}
	srv := newTestServer(t, fake)
	resp := uploadDocument(t, srv, "notes.txt", "text/plain", "hello")
	id := resp["document"].(map[string]any)["id"].(string)

	w := postJSON(srv, "/api/summarize", map[string]string{"documentId": id})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want 400", w.Code)
	}
	if fake.calls != 0 {
		t.Errorf("provider calls: got %d, want 0", fake.calls)
	}
}

func TestAPI_Summarize_UnknownID(t *testing.T) {
	srv := newTestServer(t, &fakeProvider{})
	w := postJSON(srv, "/api/summarize", map[string]string{"documentId": "nope"})
	if w.Code != http.StatusNotFound {
		t.Fatalf("status: got %d, want 404", w.Code)
	}
}

func TestAPI_UploadExtractSummarizeFlow(t *testing.T) {
	fake := &fakeProvider{reply: "A reminder about a 3pm meeting."}
	srv := newTestServer(t, fake)
	resp := uploadDocument(t, srv, "notes.txt", "text/plain", "Remember the meeting at 3pm.")
	id := resp["document"].(map[string]any)["id"].(string)

	w := postJSON(srv, "/api/extract", map[string]string{"documentId": id})
	if w.Code != http.StatusOK {
		t.Fatalf("extract status: got %d", w.Code)
	}

	w = postJSON(srv, "/api/summarize", map[string]string{"documentId": id})
	if w.Code != http.StatusOK {
		t.Fatalf("summarize status: got %d (body %s)", w.Code, w.Body.String())
	}
	var out map[string]any
	json.Unmarshal(w.Body.Bytes(), &out)
	if out["summary"] == "" || out["summary"] == nil {
		t.Error("summary missing from response")
	}

	// Final record has all three fields populated.
	req := httptest.NewRequest("GET", "/api/documents/"+id, nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status: got %d", rec.Code)
	}
	var doc map[string]any
	json.Unmarshal(rec.Body.Bytes(), &doc)
	if doc["filename"] != "notes.txt" {
		t.Errorf("filename: got %v", doc["filename"])
	}
	if doc["extracted_text"] != "Remember the meeting at 3pm." {
		t.Errorf("extracted_text: got %v", doc["extracted_text"])
	}
	if !strings.Contains(doc["summary"].(string), "meeting") {
		t.Errorf("summary: got %v", doc["summary"])
	}
}

func TestAPI_ListDocuments(t *testing.T) {
	srv := newTestServer(t, &fakeProvider{})
	uploadDocument(t, srv, "a.txt", "text/plain", "aaa")
	uploadDocument(t, srv, "b.txt", "text/plain", "bbb")

	req := httptest.NewRequest("GET", "/api/documents", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", w.Code)
	}
	var docs []map[string]any
	json.Unmarshal(w.Body.Bytes(), &docs)
	if len(docs) != 2 {
		t.Errorf("documents: got %d, want 2", len(docs))
	}
}

func TestAPI_ServeDocumentFile(t *testing.T) {
	srv := newTestServer(t, &fakeProvider{})
	resp := uploadDocument(t, srv, "notes.txt", "text/plain", "raw bytes here")
	id := resp["document"].(map[string]any)["id"].(string)

	req := httptest.NewRequest("GET", "/api/documents/"+id+"/file", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", w.Code)
	}
	if w.Body.String() != "raw bytes here" {
		t.Errorf("body: got %q", w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/plain" {
		t.Errorf("content type: got %q", ct)
	}
}
