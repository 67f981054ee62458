package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
	// Unhealthy indicates the data source is down.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Component names reported in Report.Checks.
const (
	ComponentSource  = "source"
	ComponentCatalog = "catalog"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Driver string
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	src     SourcePinger
	catalog CatalogLister
	driver  string
}

// New creates a Service. catalog can be nil.
func New(src SourcePinger, catalog CatalogLister, driver string) *Service {
	return &Service{src: src, catalog: catalog, driver: driver}
}

// Check runs health checks against all components.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	if err := s.src.Ping(ctx); err != nil {
		checks[ComponentSource] = CheckError
	} else {
		checks[ComponentSource] = CheckOK
	}

	if s.catalog != nil {
		if _, err := s.catalog.List(ctx, ""); err != nil {
			checks[ComponentCatalog] = CheckError
		} else {
			checks[ComponentCatalog] = CheckOK
		}
	}

	status := Healthy
	switch {
	case checks[ComponentSource] == CheckError:
		status = Unhealthy
	case checks[ComponentCatalog] == CheckError:
		status = Degraded
	}

	return Report{Status: status, Driver: s.driver, Checks: checks}
}
