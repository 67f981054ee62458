// Package chi serves the dashboard pages and the JSON API over a chi router.
package chi

import (
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/kailas-cloud/mapvista/internal/domain/mapview"
	"github.com/kailas-cloud/mapvista/internal/domain/table"
	"github.com/kailas-cloud/mapvista/internal/source"
	cataloguc "github.com/kailas-cloud/mapvista/internal/usecase/catalog"
	dashboarduc "github.com/kailas-cloud/mapvista/internal/usecase/dashboard"
	healthuc "github.com/kailas-cloud/mapvista/internal/usecase/health"
)

// DefaultCookieName names the session cookie when Options leave it empty.
const DefaultCookieName = "mapvista_session"

// Options configures the HTTP surface.
type Options struct {
	CookieName     string
	CookieMaxAge   time.Duration
	Mapping        mapview.Mapping
	MaxClauses     int
	TileURL        string
	TilesDir       string // served at /tiles/ when set
	APIKeys        []string
	AllowedOrigins []string
}

// Server implements the dashboard and API handlers.
type Server struct {
	catalog       *cataloguc.Service
	records       source.Source
	dashboard     *dashboarduc.Service
	health        *healthuc.Service
	engine        *table.Engine
	mapping       mapview.Mapping
	maxClauses    int
	opts          Options
	tmpl          *template.Template
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP server.
func NewServer(
	catalog *cataloguc.Service,
	records source.Source,
	dashboard *dashboarduc.Service,
	health *healthuc.Service,
	opts Options,
	logger *zap.Logger,
) *Server {
	if opts.CookieName == "" {
		opts.CookieName = DefaultCookieName
	}
	if opts.MaxClauses <= 0 {
		opts.MaxClauses = table.MaxClauses
	}
	mapping := opts.Mapping
	if mapping.LatField == "" || mapping.LngField == "" {
		mapping = mapview.DefaultMapping()
	}
	if opts.TilesDir != "" {
		opts.TileURL = "/tiles/{z}/{x}/{y}.png"
	}
	return &Server{
		catalog:       catalog,
		records:       records,
		dashboard:     dashboard,
		health:        health,
		engine:        table.NewEngine(),
		mapping:       mapping,
		maxClauses:    opts.MaxClauses,
		opts:          opts,
		tmpl:          template.Must(template.New("page").Funcs(funcMap).Parse(tmplBase + tmplSidebar + tmplWelcome + tmplDashboard)),
		logger:        logger,
		errorHandlers: defaultErrorHandlers(),
	}
}

// Register mounts every route on r.
func (s *Server) Register(r chi.Router) {
	r.Get("/", s.Dashboard)
	r.Route("/ui", func(r chi.Router) {
		r.Post("/index", s.UISelectIndex)
		r.Post("/record", s.UISelectRecord)
		r.Post("/record/clear", s.UIClearRecord)
		r.Post("/filter", s.UIAddFilter)
		r.Post("/filter/remove", s.UIRemoveFilter)
		r.Post("/search", s.UISetSearch)
		r.Post("/catalog", s.UISetCatalogTerm)
		r.Post("/sort", s.UIToggleSort)
		r.Post("/sidebar", s.UIToggleSidebar)
	})

	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
	if s.opts.TilesDir != "" {
		r.Handle("/tiles/*", http.StripPrefix("/tiles/", http.FileServer(http.Dir(s.opts.TilesDir))))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(s.corsHandler())
		r.Use(BearerAuthMiddleware(s.opts.APIKeys))
		r.Get("/indexes", s.ListIndexes)
		r.Get("/indexes/{index}", s.GetIndex)
		r.Get("/indexes/{index}/records", s.ListRecords)
		r.Get("/indexes/{index}/points", s.ListPoints)
		r.Get("/session", s.GetSession)
	})
}

// Handler returns a router with every route mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	s.Register(r)
	return r
}

func (s *Server) corsHandler() func(http.Handler) http.Handler {
	if len(s.opts.AllowedOrigins) == 0 {
		return cors.AllowAll().Handler
	}
	return cors.Handler(cors.Options{
		AllowedOrigins: s.opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	})
}

// page returns the dashboard page of the request's session and refreshes
// the session cookie.
func (s *Server) page(w http.ResponseWriter, r *http.Request) *dashboarduc.Page {
	var id string
	if c, err := r.Cookie(s.opts.CookieName); err == nil {
		id = c.Value
	}
	p := s.dashboard.Open(id)
	cookie := &http.Cookie{
		Name:     s.opts.CookieName,
		Value:    p.ID(),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if s.opts.CookieMaxAge > 0 {
		cookie.MaxAge = int(s.opts.CookieMaxAge.Seconds())
	}
	http.SetCookie(w, cookie)
	return p
}
