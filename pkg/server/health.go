package server

import (
	"fmt"
	"net/http"
	"time"

	cnserrors "github.com/NVIDIA/pipeline-preflight/pkg/errors"
	"github.com/NVIDIA/pipeline-preflight/pkg/serializer"
)

const checkOK = "ok"

// HealthResponse is the body of /health and /ready.
type HealthResponse struct {
	Status    string            `json:"status" yaml:"status"`
	Name      string            `json:"name" yaml:"name"`
	Version   string            `json:"version" yaml:"version"`
	Timestamp time.Time         `json:"timestamp" yaml:"timestamp"`
	Reason    string            `json:"reason,omitempty" yaml:"reason,omitempty"`
	Checks    map[string]string `json:"checks,omitempty" yaml:"checks,omitempty"`
}

type readinessCheck struct {
	name  string
	check func() error
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request, allow string) {
	w.Header().Set("Allow", allow)
	WriteError(w, r, http.StatusMethodNotAllowed, cnserrors.ErrCodeMethodNotAllowed,
		"Method not allowed", false, map[string]any{"method": r.Method})
}

func (s *Server) healthResponse(status string) HealthResponse {
	return HealthResponse{
		Status:    status,
		Name:      s.name,
		Version:   s.version,
		Timestamp: time.Now().UTC(),
	}
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	serializer.RespondJSON(w, http.StatusOK, s.healthResponse("healthy"))
}

// handleReady handles GET /ready. Readiness checks run only once the
// listener is up; the first failing check is reported as the reason.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}

	if !s.isReady() {
		resp := s.healthResponse("not_ready")
		resp.Reason = "service is initializing"
		serializer.RespondJSON(w, http.StatusServiceUnavailable, resp)
		return
	}

	resp := s.healthResponse("ready")
	status := http.StatusOK
	for _, c := range s.checks {
		if resp.Checks == nil {
			resp.Checks = make(map[string]string, len(s.checks))
		}
		if err := c.check(); err != nil {
			resp.Checks[c.name] = err.Error()
			if status == http.StatusOK {
				status = http.StatusServiceUnavailable
				resp.Status = "not_ready"
				resp.Reason = fmt.Sprintf("%s: %v", c.name, err)
			}
			continue
		}
		resp.Checks[c.name] = checkOK
	}

	serializer.RespondJSON(w, status, resp)
}
