package chi

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kailas-cloud/mapvista/internal/domain"
	"github.com/kailas-cloud/mapvista/internal/domain/mapview"
	"github.com/kailas-cloud/mapvista/internal/domain/table"
	"github.com/kailas-cloud/mapvista/internal/metrics"
	healthuc "github.com/kailas-cloud/mapvista/internal/usecase/health"
)

// ListIndexesParams are the query parameters of GET /api/v1/indexes.
type ListIndexesParams struct {
	Q *string `form:"q" json:"q,omitempty"`
}

// ListRecordsParams are the query parameters of GET /api/v1/indexes/{index}/records.
type ListRecordsParams struct {
	Filter *[]string `form:"filter" json:"filter,omitempty"`
	Q      *string   `form:"q" json:"q,omitempty"`
	Sort   *string   `form:"sort" json:"sort,omitempty"`
	Dir    *string   `form:"dir" json:"dir,omitempty"`
}

// ListIndexes handles GET /api/v1/indexes.
func (s *Server) ListIndexes(w http.ResponseWriter, r *http.Request) {
	var params ListIndexesParams
	if err := runtime.BindQueryParameter("form", true, false, "q", r.URL.Query(), &params.Q); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid format for parameter q")
		return
	}

	list, err := s.catalog.List(r.Context(), deref(params.Q))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, IndexListResponse{
		Items: indexesToDTO(list),
		Total: len(list),
	})
}

// GetIndex handles GET /api/v1/indexes/{index}.
func (s *Server) GetIndex(w http.ResponseWriter, r *http.Request) {
	index, ok := bindIndex(w, r)
	if !ok {
		return
	}

	d, err := s.catalog.Get(r.Context(), index)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, indexToDTO(d))
}

// ListRecords handles GET /api/v1/indexes/{index}/records. It runs the table
// engine over a fresh fetch and keeps no state.
func (s *Server) ListRecords(w http.ResponseWriter, r *http.Request) {
	index, ok := bindIndex(w, r)
	if !ok {
		return
	}

	var params ListRecordsParams
	query := r.URL.Query()
	for name, dest := range map[string]any{
		"filter": &params.Filter,
		"q":      &params.Q,
		"sort":   &params.Sort,
		"dir":    &params.Dir,
	} {
		if err := runtime.BindQueryParameter("form", true, false, name, query, dest); err != nil {
			writeError(w, http.StatusBadRequest, CodeBadRequest, fmt.Sprintf("Invalid format for parameter %s", name))
			return
		}
	}

	q, err := s.queryFromParams(params)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	rs, err := s.records.FetchRecords(r.Context(), index)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	ds := table.NewDataset(rs.Records, rs.Annotations, s.mapping.LatField, s.mapping.LngField)
	writeJSON(w, http.StatusOK, viewToDTO(index, s.engine.Apply(ds, q), q))
}

// ListPoints handles GET /api/v1/indexes/{index}/points.
func (s *Server) ListPoints(w http.ResponseWriter, r *http.Request) {
	index, ok := bindIndex(w, r)
	if !ok {
		return
	}

	rs, err := s.records.FetchRecords(r.Context(), index)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	proj := mapview.Project(rs.Records, s.mapping)
	metrics.ExcludedPointsTotal.Add(float64(proj.Excluded))
	writeJSON(w, http.StatusOK, PointsResponse{
		Index:    index,
		Points:   proj.Points,
		Excluded: proj.Excluded,
		Viewport: mapview.Fit(proj.Points, mapview.DefaultFrame),
	})
}

// GetSession handles GET /api/v1/session.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	page := s.page(w, r)
	writeJSON(w, http.StatusOK, snapshotToDTO(s.dashboard.Snapshot(r.Context(), page)))
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, map[string]any{
		"status": report.Status,
		"driver": report.Driver,
		"checks": report.Checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func (s *Server) queryFromParams(p ListRecordsParams) (table.Query, error) {
	var q table.Query
	if p.Filter != nil {
		if len(*p.Filter) > s.maxClauses {
			return q, fmt.Errorf("%w: at most %d filters", domain.ErrInvalidFilter, s.maxClauses)
		}
		for _, f := range *p.Filter {
			c, err := table.ParseClause(f)
			if err != nil {
				return q, fmt.Errorf("%w: %w", domain.ErrInvalidFilter, err)
			}
			q.Clauses = append(q.Clauses, c)
		}
	}
	q.Search = deref(p.Q)

	dir, err := table.ParseDirection(deref(p.Dir))
	if err != nil {
		return q, fmt.Errorf("%w: %w", domain.ErrInvalidSort, err)
	}
	if field := deref(p.Sort); field != "" {
		q.Sort = table.NewSortSpec(field, dir)
	}
	return q, nil
}

func bindIndex(w http.ResponseWriter, r *http.Request) (string, bool) {
	var index string
	err := runtime.BindStyledParameterWithOptions("simple", "index", chi.URLParam(r, "index"), &index,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid format for parameter index")
		return "", false
	}
	return index, true
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
