package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results. The retrieval index is in-process
// and always available, so the service itself stays "ok" as long as it can
// answer; optional dependencies only degrade the report.
type Report struct {
	Status Status                 `json:"status"`
	Checks map[string]CheckResult `json:"checks"`
}

// Service coordinates health checks. Both dependencies are optional: the
// advisory pipeline works without persistence and without a live model.
type Service struct {
	db         DBPinger
	generation GenerationChecker
}

// New creates a health service. db and generation may be nil.
func New(db DBPinger, generation GenerationChecker) *Service {
	return &Service{db: db, generation: generation}
}

// Check runs health checks against the configured components.
func (s *Service) Check(ctx context.Context) Report {
	checks := map[string]CheckResult{
		"retrieval": CheckOK,
	}
	status := Healthy

	if s.db != nil {
		if err := s.db.Ping(ctx); err != nil {
			checks["database"] = CheckError
			status = Degraded
		} else {
			checks["database"] = CheckOK
		}
	}

	if s.generation != nil {
		if err := s.generation.HealthCheck(ctx); err != nil {
			checks["generation"] = CheckError
			status = Degraded
		} else {
			checks["generation"] = CheckOK
		}
	}

	return Report{Status: status, Checks: checks}
}
