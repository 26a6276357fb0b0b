package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prakharsingh-74/meeting-summarizer/internal/email"
	"github.com/prakharsingh-74/meeting-summarizer/internal/logger"
	"github.com/prakharsingh-74/meeting-summarizer/internal/session"
	"github.com/prakharsingh-74/meeting-summarizer/internal/summarizer"
	"github.com/prakharsingh-74/meeting-summarizer/internal/transcript"
)

// mockSummarizer implements summarizer.Client for handler tests.
type mockSummarizer struct {
	GenerateFunc func(ctx context.Context, tr transcript.Transcript, customPrompt string) (session.Summary, error)
	calls        int
}

func (m *mockSummarizer) Generate(ctx context.Context, tr transcript.Transcript, customPrompt string) (session.Summary, error) {
	m.calls++
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, tr, customPrompt)
	}
	if strings.TrimSpace(tr.Text) == "" {
		return session.Summary{}, summarizer.ErrEmptyTranscript
	}
	return session.NewSummary("generated summary"), nil
}

// mockDeliverer implements email.Deliverer.
type mockDeliverer struct {
	SendFunc func(ctx context.Context, env email.Envelope) (email.Result, error)
}

func (m *mockDeliverer) Send(ctx context.Context, env email.Envelope) (email.Result, error) {
	if m.SendFunc != nil {
		return m.SendFunc(ctx, env)
	}
	preview := env
	return email.Result{
		Demo:       true,
		Message:    "Demo Mode: Email preview generated for 1 recipient",
		Recipients: env.To,
		Preview:    &preview,
	}, nil
}

func newTestServer(t *testing.T, gen summarizer.Client, del email.Deliverer) *Server {
	t.Helper()
	if gen == nil {
		gen = &mockSummarizer{}
	}
	if del == nil {
		del = &mockDeliverer{}
	}
	srv, err := New(gen, del, logger.New("error"))
	if err != nil {
		t.Fatal(err)
	}
	return srv
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode response: %v (body %q)", err, rec.Body.String())
	}
	return v
}

func TestSummarize(t *testing.T) {
	srv := newTestServer(t, nil, nil)
	h := srv.Routes()

	rec := doJSON(t, h, http.MethodPost, "/api/summarize", summarizeReq{Transcript: "Alice: hello"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	resp := decode[summarizeResp](t, rec)
	if resp.Summary != "generated summary" {
		t.Errorf("Summary = %q", resp.Summary)
	}
}

func TestSummarizeEmptyTranscript(t *testing.T) {
	gen := &mockSummarizer{}
	srv := newTestServer(t, gen, nil)

	rec := doJSON(t, srv.Routes(), http.MethodPost, "/api/summarize", summarizeReq{Transcript: "   "})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	resp := decode[errorResp](t, rec)
	if resp.Error == "" {
		t.Error("error body missing")
	}
}

func TestSummarizeUpstreamFailure(t *testing.T) {
	gen := &mockSummarizer{
		GenerateFunc: func(context.Context, transcript.Transcript, string) (session.Summary, error) {
			return session.Summary{}, &summarizer.UpstreamError{Provider: "gemini", Err: errors.New("boom")}
		},
	}
	srv := newTestServer(t, gen, nil)

	rec := doJSON(t, srv.Routes(), http.MethodPost, "/api/summarize", summarizeReq{Transcript: "notes"})
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadGateway)
	}
	resp := decode[errorResp](t, rec)
	if !strings.Contains(resp.Error, "boom") {
		t.Errorf("Error = %q, missing upstream message", resp.Error)
	}
}

func TestSendEmailDemo(t *testing.T) {
	srv := newTestServer(t, nil, nil)

	rec := doJSON(t, srv.Routes(), http.MethodPost, "/api/send-email", sendEmailReq{
		Recipients:       []string{"a@b.com", "bad"},
		Subject:          "Meeting Summary",
		Message:          "See below",
		Summary:          "the summary",
		TranscriptLength: 48,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	resp := decode[sendEmailResp](t, rec)
	if !resp.Success || !resp.Demo {
		t.Errorf("Success/Demo = %v/%v, want true/true", resp.Success, resp.Demo)
	}
	if len(resp.Recipients) != 1 || resp.Recipients[0] != "a@b.com" {
		t.Errorf("Recipients = %v, want filtered to [a@b.com]", resp.Recipients)
	}
	if resp.Preview == nil {
		t.Fatal("emailPreview missing in demo response")
	}
	if !strings.Contains(resp.Preview.Content, "Generated from 48 character transcript") {
		t.Errorf("preview content missing metadata line:\n%s", resp.Preview.Content)
	}
}

func TestSendEmailValidation(t *testing.T) {
	tests := []struct {
		name string
		req  sendEmailReq
	}{
		{
			name: "no recipients",
			req:  sendEmailReq{Subject: "s", Summary: "x"},
		},
		{
			name: "all invalid recipients",
			req:  sendEmailReq{Recipients: []string{"bad"}, Subject: "s", Summary: "x"},
		},
		{
			name: "missing subject",
			req:  sendEmailReq{Recipients: []string{"a@b.com"}, Summary: "x"},
		},
		{
			name: "missing summary",
			req:  sendEmailReq{Recipients: []string{"a@b.com"}, Subject: "s"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, nil, nil)
			rec := doJSON(t, srv.Routes(), http.MethodPost, "/api/send-email", tt.req)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
			}
		})
	}
}

func TestSendEmailDeliveryFailure(t *testing.T) {
	del := &mockDeliverer{
		SendFunc: func(context.Context, email.Envelope) (email.Result, error) {
			return email.Result{}, &email.DeliveryError{Err: errors.New("relay refused")}
		},
	}
	srv := newTestServer(t, nil, del)

	rec := doJSON(t, srv.Routes(), http.MethodPost, "/api/send-email", sendEmailReq{
		Recipients:       []string{"a@b.com"},
		Subject:          "Meeting Summary",
		Summary:          "the summary",
		TranscriptLength: 10,
	})
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
	resp := decode[errorResp](t, rec)
	if !strings.Contains(resp.Error, "relay refused") {
		t.Errorf("Error = %q, missing transport message", resp.Error)
	}
}

func createSession(t *testing.T, h http.Handler) (string, sessionResp) {
	t.Helper()
	rec := doJSON(t, h, http.MethodPost, "/api/sessions", sessionCreateReq{Transcript: "Alice: hello"})
	if rec.Code != http.StatusOK {
		t.Fatalf("create session status = %d, body %s", rec.Code, rec.Body.String())
	}
	resp := decode[sessionResp](t, rec)
	if resp.SessionID == "" {
		t.Fatal("session_id missing")
	}
	return resp.SessionID, resp
}

func TestSessionLifecycle(t *testing.T) {
	srv := newTestServer(t, nil, nil)
	h := srv.Routes()

	id, created := createSession(t, h)
	if created.Phase != "summarized" || created.State != "viewing" {
		t.Fatalf("created phase/state = %s/%s", created.Phase, created.State)
	}
	if created.Summary != "generated summary" {
		t.Errorf("Summary = %q", created.Summary)
	}

	// begin_edit then update
	rec := doJSON(t, h, http.MethodPost, "/api/sessions/"+id, sessionActionReq{Action: "begin_edit"})
	if resp := decode[sessionResp](t, rec); resp.State != "editing" {
		t.Fatalf("state after begin_edit = %s", resp.State)
	}

	rec = doJSON(t, h, http.MethodPost, "/api/sessions/"+id, sessionActionReq{Action: "update", Text: "edited text"})
	resp := decode[sessionResp](t, rec)
	if !resp.IsDirty {
		t.Error("is_dirty = false after update")
	}
	if resp.WordCount != 2 {
		t.Errorf("word_count = %d, want 2", resp.WordCount)
	}

	// save commits and returns to viewing with a timestamp
	rec = doJSON(t, h, http.MethodPost, "/api/sessions/"+id, sessionActionReq{Action: "save"})
	resp = decode[sessionResp](t, rec)
	if resp.State != "viewing" || resp.IsDirty {
		t.Errorf("after save state/dirty = %s/%v", resp.State, resp.IsDirty)
	}
	if resp.LastSavedAt == nil {
		t.Error("last_saved_at missing after save")
	}

	// GET reflects the saved state
	rec = doJSON(t, h, http.MethodGet, "/api/sessions/"+id, nil)
	resp = decode[sessionResp](t, rec)
	if resp.Summary != "edited text" {
		t.Errorf("Summary after save = %q", resp.Summary)
	}
}

func TestSessionCancelDeclined(t *testing.T) {
	srv := newTestServer(t, nil, nil)
	h := srv.Routes()
	id, _ := createSession(t, h)

	doJSON(t, h, http.MethodPost, "/api/sessions/"+id, sessionActionReq{Action: "begin_edit"})
	doJSON(t, h, http.MethodPost, "/api/sessions/"+id, sessionActionReq{Action: "update", Text: "unsaved"})

	rec := doJSON(t, h, http.MethodPost, "/api/sessions/"+id, sessionActionReq{Action: "cancel", Confirm: false})
	resp := decode[sessionResp](t, rec)
	if resp.Canceled == nil || *resp.Canceled {
		t.Error("canceled should be false when confirmation declined")
	}
	if resp.State != "editing" {
		t.Errorf("state = %s, want editing", resp.State)
	}
	if resp.Summary != "unsaved" {
		t.Errorf("Summary = %q, want unchanged %q", resp.Summary, "unsaved")
	}
}

func TestSessionInvalidTransition(t *testing.T) {
	srv := newTestServer(t, nil, nil)
	h := srv.Routes()
	id, _ := createSession(t, h)

	// save while viewing is a conflict
	rec := doJSON(t, h, http.MethodPost, "/api/sessions/"+id, sessionActionReq{Action: "save"})
	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusConflict)
	}
}

func TestSessionNotFound(t *testing.T) {
	srv := newTestServer(t, nil, nil)
	rec := doJSON(t, srv.Routes(), http.MethodGet, "/api/sessions/unknown", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestSessionReset(t *testing.T) {
	srv := newTestServer(t, nil, nil)
	h := srv.Routes()
	id, _ := createSession(t, h)

	rec := doJSON(t, h, http.MethodPost, "/api/sessions/"+id, sessionActionReq{Action: "reset"})
	resp := decode[sessionResp](t, rec)
	if resp.Phase != "idle" {
		t.Errorf("phase = %s, want idle", resp.Phase)
	}
	if resp.TranscriptLength != 0 {
		t.Errorf("transcript_length = %d, want 0 after reset", resp.TranscriptLength)
	}
}

func TestSessionExport(t *testing.T) {
	srv := newTestServer(t, nil, nil)
	h := srv.Routes()
	id, _ := createSession(t, h)

	req := httptest.NewRequest(http.MethodGet, "/api/sessions/"+id+"/export", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Content-Type"); got != docxContentType {
		t.Errorf("Content-Type = %q", got)
	}
	if rec.Body.Len() == 0 {
		t.Error("empty docx body")
	}
}
