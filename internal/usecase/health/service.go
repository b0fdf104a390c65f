package health

import "context"

// Status represents the service health status.
type Status string

const (
	// Healthy indicates the service can answer queries.
	Healthy Status = "healthy"
	// Unhealthy indicates the index is not loaded.
	Unhealthy Status = "unhealthy"
)

// Report is a health snapshot.
type Report struct {
	Status         Status
	IndexLoaded    bool
	DocumentsCount int
}

// Service reports service identity and readiness.
type Service struct {
	name    string
	version string
	index   Index
}

// New creates a Service.
func New(name, version string, index Index) *Service {
	return &Service{name: name, version: version, index: index}
}

// Name returns the public service name.
func (s *Service) Name() string { return s.name }

// Version returns the service version.
func (s *Service) Version() string { return s.version }

// Check reports whether the service can answer queries. Readiness is
// the index being built or loaded; the document count rides along for
// operators.
func (s *Service) Check(_ context.Context) Report {
	ready := s.index.Ready()
	status := Healthy
	if !ready {
		status = Unhealthy
	}
	return Report{
		Status:         status,
		IndexLoaded:    ready,
		DocumentsCount: s.index.Len(),
	}
}
