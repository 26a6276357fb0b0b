package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/prakharsingh-74/meeting-summarizer/internal/email"
	"github.com/prakharsingh-74/meeting-summarizer/internal/logger"
	"github.com/prakharsingh-74/meeting-summarizer/internal/session"
	"github.com/prakharsingh-74/meeting-summarizer/internal/summarizer"
	"github.com/prakharsingh-74/meeting-summarizer/internal/transcript"
)

const requestTimeout = 60 * time.Second

// Server exposes the summarize/share workflow as a JSON API.
type Server struct {
	gen       summarizer.Client
	deliverer email.Deliverer
	store     *sessionStore
	logger    logger.Logger
}

// New wires the API around a summarizer client and a delivery client.
func New(gen summarizer.Client, deliverer email.Deliverer, log logger.Logger) (*Server, error) {
	if gen == nil {
		return nil, errors.New("summarizer client required")
	}
	if deliverer == nil {
		return nil, errors.New("deliverer required")
	}
	return &Server{
		gen:       gen,
		deliverer: deliverer,
		store:     newStore(),
		logger:    log,
	}, nil
}

// Routes builds the handler tree.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/summarize", s.handleSummarize)
	mux.HandleFunc("/api/send-email", s.handleSendEmail)
	mux.HandleFunc("/api/sessions", s.handleSessionCreate)
	mux.HandleFunc("/api/sessions/", s.handleSessionByID)
	return s.logMiddleware(mux)
}

// --- Request/response shapes ---

type summarizeReq struct {
	Transcript   string `json:"transcript"`
	CustomPrompt string `json:"customPrompt"`
}

type summarizeResp struct {
	Summary string `json:"summary"`
}

type sendEmailReq struct {
	Recipients       []string `json:"recipients"`
	Subject          string   `json:"subject"`
	Message          string   `json:"message"`
	Summary          string   `json:"summary"`
	CustomPrompt     string   `json:"customPrompt,omitempty"`
	TranscriptLength int      `json:"transcriptLength"`
}

type emailPreview struct {
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Content string   `json:"content"`
}

type sendEmailResp struct {
	Success    bool          `json:"success"`
	Demo       bool          `json:"demo,omitempty"`
	Message    string        `json:"message"`
	Recipients []string      `json:"recipients"`
	Preview    *emailPreview `json:"emailPreview,omitempty"`
}

type sessionCreateReq struct {
	Transcript   string `json:"transcript"`
	SourceName   string `json:"sourceName,omitempty"`
	CustomPrompt string `json:"customPrompt,omitempty"`
}

type sessionActionReq struct {
	Action  string `json:"action"`
	Text    string `json:"text,omitempty"`
	Confirm bool   `json:"confirm,omitempty"`
}

type sessionResp struct {
	SessionID        string     `json:"session_id"`
	Phase            string     `json:"phase"`
	State            string     `json:"state,omitempty"`
	Summary          string     `json:"summary,omitempty"`
	IsDirty          bool       `json:"is_dirty"`
	WordCount        int        `json:"word_count"`
	LastSavedAt      *time.Time `json:"last_saved_at,omitempty"`
	TranscriptLength int        `json:"transcript_length"`
	Canceled         *bool      `json:"canceled,omitempty"`
}

type errorResp struct {
	Error string `json:"error"`
}

// --- Handlers ---

func (s *Server) handleSummarize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req summarizeReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	summary, err := s.gen.Generate(ctx, transcript.New(req.Transcript), req.CustomPrompt)
	if err != nil {
		s.writeErrorFor(w, err)
		return
	}

	writeJSON(w, http.StatusOK, summarizeResp{Summary: summary.CurrentText})
}

func (s *Server) handleSendEmail(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req sendEmailReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	draft := email.Draft{
		Recipients: req.Recipients,
		Subject:    strings.TrimSpace(req.Subject),
		Message:    strings.TrimSpace(req.Message),
	}
	// The wire contract carries the summary text and transcript length
	// directly, so the envelope is rebuilt from those rather than from a
	// stored session.
	tr := transcript.Transcript{Length: req.TranscriptLength}

	env, err := email.Compose(draft, session.NewSummary(req.Summary), tr, req.CustomPrompt)
	if err != nil {
		s.writeErrorFor(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	res, err := s.deliverer.Send(ctx, env)
	if err != nil {
		s.writeErrorFor(w, err)
		return
	}

	resp := sendEmailResp{
		Success:    true,
		Demo:       res.Demo,
		Message:    res.Message,
		Recipients: res.Recipients,
	}
	if res.Preview != nil {
		resp.Preview = &emailPreview{
			To:      res.Preview.To,
			Subject: res.Preview.Subject,
			Content: res.Preview.TextBody,
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSessionCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req sessionCreateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tr := transcript.New(req.Transcript)
	tr.SourceName = req.SourceName

	ctrl := session.NewController(s.gen)
	ctrl.LoadTranscript(tr)

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	if _, err := ctrl.Generate(ctx, req.CustomPrompt); err != nil {
		s.writeErrorFor(w, err)
		return
	}

	id := newSessionID()
	s.store.set(id, ctrl)
	writeJSON(w, http.StatusOK, s.sessionView(id, ctrl, nil))
}

func (s *Server) handleSessionByID(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/sessions/")
	if rest == "" {
		http.NotFound(w, r)
		return
	}

	id := rest
	export := false
	if strings.HasSuffix(rest, "/export") {
		id = strings.TrimSuffix(rest, "/export")
		export = true
	}

	ctrl, ok := s.store.get(id)
	if !ok {
		s.writeError(w, http.StatusNotFound, "session not found")
		return
	}

	switch {
	case export:
		if r.Method != http.MethodGet {
			s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		s.handleExport(w, r, ctrl)
	case r.Method == http.MethodGet:
		writeJSON(w, http.StatusOK, s.sessionView(id, ctrl, nil))
	case r.Method == http.MethodPost:
		s.handleSessionAction(w, r, id, ctrl)
	case r.Method == http.MethodDelete:
		ctrl.Reset()
		s.store.delete(id)
		writeJSON(w, http.StatusOK, sessionResp{SessionID: id, Phase: session.Idle.String()})
	default:
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) handleSessionAction(w http.ResponseWriter, r *http.Request, id string, ctrl *session.Controller) {
	var req sessionActionReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Action == "reset" {
		ctrl.Reset()
		writeJSON(w, http.StatusOK, s.sessionView(id, ctrl, nil))
		return
	}

	edit, err := ctrl.Edit()
	if err != nil {
		s.writeErrorFor(w, err)
		return
	}

	var canceled *bool
	switch req.Action {
	case "begin_edit":
		err = edit.BeginEdit()
	case "update":
		err = edit.UpdateText(req.Text)
	case "undo":
		err = edit.Undo()
	case "save":
		err = edit.Save()
	case "cancel":
		var left bool
		left, err = edit.Cancel(func() bool { return req.Confirm })
		if err == nil {
			canceled = &left
		}
	default:
		s.writeError(w, http.StatusBadRequest, "unknown action "+req.Action)
		return
	}
	if err != nil {
		s.writeErrorFor(w, err)
		return
	}

	writeJSON(w, http.StatusOK, s.sessionView(id, ctrl, canceled))
}

func (s *Server) sessionView(id string, ctrl *session.Controller, canceled *bool) sessionResp {
	resp := sessionResp{
		SessionID:        id,
		Phase:            ctrl.Phase().String(),
		TranscriptLength: ctrl.Transcript().Length,
		Canceled:         canceled,
	}
	if edit, err := ctrl.Edit(); err == nil {
		summary := edit.Summary()
		resp.State = edit.State().String()
		resp.Summary = summary.CurrentText
		resp.IsDirty = summary.IsDirty()
		resp.WordCount = summary.WordCount()
		if !summary.LastSavedAt.IsZero() {
			t := summary.LastSavedAt
			resp.LastSavedAt = &t
		}
	}
	return resp
}

// --- Helpers ---

// writeErrorFor maps the error taxonomy onto HTTP statuses: validation 400,
// invalid transition 409, upstream 502, delivery 500.
func (s *Server) writeErrorFor(w http.ResponseWriter, err error) {
	var upstream *summarizer.UpstreamError
	var delivery *email.DeliveryError

	switch {
	case errors.As(err, &upstream):
		s.writeError(w, http.StatusBadGateway, upstream.Error())
	case errors.As(err, &delivery):
		s.writeError(w, http.StatusInternalServerError, delivery.Error())
	case errors.Is(err, session.ErrInvalidState):
		s.writeError(w, http.StatusConflict, err.Error())
	default:
		s.writeError(w, http.StatusBadRequest, err.Error())
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResp{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug(r.Context(), "%s %s (%s)", r.Method, r.URL.Path, time.Since(start))
	})
}
