package server

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/prakharsingh-74/meeting-summarizer/internal/session"
	"github.com/prakharsingh-74/meeting-summarizer/internal/summarizer"
)

const docxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// handleExport renders the current summary as a docx download.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request, ctrl *session.Controller) {
	edit, err := ctrl.Edit()
	if err != nil {
		s.writeErrorFor(w, err)
		return
	}
	summary := edit.Summary()

	title := "Meeting Summary"
	filename := "meeting-summary.docx"
	if name := ctrl.Transcript().SourceName; name != "" {
		base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
		title = base
		filename = base + ".docx"
	}

	// godocx writes to a path, so render into a temp file and stream it back.
	tmpDir, err := os.MkdirTemp("", "summary-export-*")
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "export failed")
		return
	}
	defer os.RemoveAll(tmpDir)

	path := filepath.Join(tmpDir, filename)
	if err := summarizer.WriteDocx(title, summary.CurrentText, path); err != nil {
		s.logger.Error(r.Context(), "Failed to render docx: %v", err)
		s.writeError(w, http.StatusInternalServerError, "export failed")
		return
	}

	w.Header().Set("Content-Type", docxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	http.ServeFile(w, r, path)
}
