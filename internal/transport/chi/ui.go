package chi

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/kailas-cloud/mapvista/internal/domain"
	logpkg "github.com/kailas-cloud/mapvista/internal/logger"
)

// Dashboard handles GET /. The optional index and record query parameters
// select before rendering, so dashboard links can be shared.
func (s *Server) Dashboard(w http.ResponseWriter, r *http.Request) {
	p := s.page(w, r)
	ctx := r.Context()

	if index := r.URL.Query().Get("index"); index != "" {
		snap := s.dashboard.Snapshot(ctx, p)
		if !snap.HasIndex || snap.Index.ID() != index {
			if err := s.dashboard.SelectIndex(ctx, p, index); err != nil {
				s.handleDomainError(w, r, err)
				return
			}
		}
	}
	if id := r.URL.Query().Get("record"); id != "" {
		if err := s.dashboard.SelectRecord(p, id); err != nil {
			s.handleDomainError(w, r, err)
			return
		}
	}

	view := s.buildPageView(s.dashboard.Snapshot(ctx, p))

	var buf bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&buf, "base", view); err != nil {
		logpkg.FromContext(ctx, s.logger).Error("Template error", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

// UISelectIndex handles POST /ui/index.
func (s *Server) UISelectIndex(w http.ResponseWriter, r *http.Request) {
	p := s.page(w, r)
	if err := s.dashboard.SelectIndex(r.Context(), p, r.FormValue("index")); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	backToDashboard(w, r)
}

// UISelectRecord handles POST /ui/record.
func (s *Server) UISelectRecord(w http.ResponseWriter, r *http.Request) {
	p := s.page(w, r)
	if err := s.dashboard.SelectRecord(p, r.FormValue("id")); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	backToDashboard(w, r)
}

// UIClearRecord handles POST /ui/record/clear.
func (s *Server) UIClearRecord(w http.ResponseWriter, r *http.Request) {
	s.dashboard.ClearRecord(s.page(w, r))
	backToDashboard(w, r)
}

// UIAddFilter handles POST /ui/filter. An incomplete clause is ignored.
func (s *Server) UIAddFilter(w http.ResponseWriter, r *http.Request) {
	p := s.page(w, r)
	err := s.dashboard.AddFilter(p, r.FormValue("field"), r.FormValue("value"))
	if err != nil && !errors.Is(err, domain.ErrInvalidFilter) {
		s.handleDomainError(w, r, err)
		return
	}
	backToDashboard(w, r)
}

// UIRemoveFilter handles POST /ui/filter/remove.
func (s *Server) UIRemoveFilter(w http.ResponseWriter, r *http.Request) {
	p := s.page(w, r)
	i, err := strconv.Atoi(r.FormValue("i"))
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid format for parameter i")
		return
	}
	if err := s.dashboard.RemoveFilter(p, i); err != nil && !errors.Is(err, domain.ErrInvalidFilter) {
		s.handleDomainError(w, r, err)
		return
	}
	backToDashboard(w, r)
}

// UISetSearch handles POST /ui/search.
func (s *Server) UISetSearch(w http.ResponseWriter, r *http.Request) {
	s.dashboard.SetSearch(s.page(w, r), r.FormValue("q"))
	backToDashboard(w, r)
}

// UISetCatalogTerm handles POST /ui/catalog.
func (s *Server) UISetCatalogTerm(w http.ResponseWriter, r *http.Request) {
	s.dashboard.SetCatalogTerm(s.page(w, r), r.FormValue("q"))
	backToDashboard(w, r)
}

// UIToggleSort handles POST /ui/sort.
func (s *Server) UIToggleSort(w http.ResponseWriter, r *http.Request) {
	p := s.page(w, r)
	if err := s.dashboard.ToggleSort(p, r.FormValue("field")); err != nil && !errors.Is(err, domain.ErrInvalidSort) {
		s.handleDomainError(w, r, err)
		return
	}
	backToDashboard(w, r)
}

// UIToggleSidebar handles POST /ui/sidebar.
func (s *Server) UIToggleSidebar(w http.ResponseWriter, r *http.Request) {
	s.dashboard.ToggleSidebar(s.page(w, r))
	backToDashboard(w, r)
}

func backToDashboard(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
