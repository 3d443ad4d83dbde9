package web

import (
	"bytes"
	"net/http"
	"strconv"

	"linkedin-scraper/internal/export"
	"linkedin-scraper/internal/models"
	"linkedin-scraper/internal/orchestrator"
)

// controller returns the caller's controller, issuing a session cookie when needed
func (s *Server) controller(w http.ResponseWriter, r *http.Request) *orchestrator.Controller {
	var id string
	if c, err := r.Cookie(SessionCookie); err == nil {
		id = c.Value
	}
	sid, ctrl, created := s.sessions.Get(id)
	if created {
		http.SetCookie(w, &http.Cookie{
			Name:     SessionCookie,
			Value:    sid.String(),
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return ctrl
}

func redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	ctrl := s.controller(w, r)

	q := r.URL.Query()
	if q.Has("page") || q.Has("size") {
		state := ctrl.State()
		page := atoiOr(q.Get("page"), state.Pagination.CurrentPage)
		size := atoiOr(q.Get("size"), state.Pagination.PageSize)
		ctrl.ChangePage(page, size)
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, BuildPageView(ctrl.State())); err != nil {
		s.logger.WithError(err).Error("failed to render page")
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = buf.WriteTo(w)
}

// applyFields copies the posted form fields that are present onto the controller
func applyFields(r *http.Request, ctrl *orchestrator.Controller) error {
	if err := r.ParseForm(); err != nil {
		return err
	}
	for _, name := range []string{models.FieldIndustry, models.FieldCountry, models.FieldPages} {
		if _, ok := r.PostForm[name]; ok {
			ctrl.SetField(name, r.PostForm.Get(name))
		}
	}
	return nil
}

func (s *Server) handleFields(w http.ResponseWriter, r *http.Request) {
	ctrl := s.controller(w, r)
	if err := applyFields(r, ctrl); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	redirectHome(w, r)
}

func (s *Server) handleScrape(w http.ResponseWriter, r *http.Request) {
	ctrl := s.controller(w, r)
	if err := applyFields(r, ctrl); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	// the result is applied to the session state; the page polls while loading
	ctrl.Submit(s.baseCtx)
	redirectHome(w, r)
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	ctrl := s.controller(w, r)
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	state := ctrl.State()
	ctrl.ChangePage(
		atoiOr(r.PostForm.Get("page"), state.Pagination.CurrentPage),
		atoiOr(r.PostForm.Get("size"), state.Pagination.PageSize),
	)
	redirectHome(w, r)
}

func (s *Server) handleTheme(w http.ResponseWriter, r *http.Request) {
	s.controller(w, r).ToggleTheme()
	redirectHome(w, r)
}

func (s *Server) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	ctrl := s.controller(w, r)
	now := s.now()
	res, err := ctrl.ExportPDF(r.Context(), now)
	if err != nil {
		s.logger.WithError(err).Error("pdf export failed")
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}
	writeDownload(w, export.PDFFilename(now), export.PDFContentType, res.Bytes)
}

func (s *Server) handleExportSpreadsheet(w http.ResponseWriter, r *http.Request) {
	ctrl := s.controller(w, r)
	data, err := ctrl.ExportSpreadsheet(r.Context())
	if err != nil {
		s.logger.WithError(err).Error("spreadsheet export failed")
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}
	writeDownload(w, export.SpreadsheetFilename, export.SpreadsheetContentType, data)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func writeDownload(w http.ResponseWriter, filename, contentType string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	_, _ = w.Write(data)
}

func atoiOr(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}
