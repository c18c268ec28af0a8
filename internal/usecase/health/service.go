package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
	// Unhealthy indicates total failure.
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

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	db    DBPinger
	index IndexChecker
}

// New creates a Service. index can be nil.
func New(db DBPinger, index IndexChecker) *Service {
	return &Service{db: db, index: index}
}

// Check runs health checks against all components. The index is only
// probed when the database answers.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	dbErr := s.db.Ping(ctx)
	if dbErr != nil {
		checks["database"] = CheckError
	} else {
		checks["database"] = CheckOK
	}

	if s.index != nil {
		ready, err := false, dbErr
		if dbErr == nil {
			ready, err = s.index.IndexReady(ctx)
		}
		if err != nil || !ready {
			checks["index"] = CheckError
		} else {
			checks["index"] = CheckOK
		}
	}

	status := Healthy
	errCount := 0
	for _, v := range checks {
		if v == CheckError {
			errCount++
		}
	}
	switch {
	case errCount == len(checks):
		status = Unhealthy
	case errCount > 0:
		status = Degraded
	}

	return Report{Status: status, Checks: checks}
}
