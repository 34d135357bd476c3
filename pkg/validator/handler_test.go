package validator

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/NVIDIA/pipeline-preflight/pkg/server"
)

func TestHandleValidate_MethodNotAllowed(t *testing.T) {
	v := New()
	methods := []string{http.MethodGet, http.MethodPut, http.MethodDelete, http.MethodPatch}

	for _, method := range methods {
		t.Run(method, func(t *testing.T) {
			req := httptest.NewRequest(method, "/v1/validate", nil)
			w := httptest.NewRecorder()

			v.HandleValidate(w, req)

			if w.Code != http.StatusMethodNotAllowed {
				t.Fatalf("expected status %d, got %d", http.StatusMethodNotAllowed, w.Code)
			}

			if allow := w.Header().Get("Allow"); allow != http.MethodPost {
				t.Errorf("expected Allow header %s, got %s", http.MethodPost, allow)
			}
		})
	}
}

func TestHandleValidate_InvalidBody(t *testing.T) {
	v := New()

	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: "project=foo"},
		{name: "options not an object", body: `{"options": ["a"]}`},
		{name: "truncated", body: `{"runner": "DataflowRunner"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/v1/validate", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			v.HandleValidate(w, req)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
			}

			var resp server.ErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to decode error response: %v", err)
			}
			if resp.Code != "INVALID_REQUEST" {
				t.Errorf("expected code INVALID_REQUEST, got %s", resp.Code)
			}
		})
	}
}

func TestHandleValidate_BodyTooLarge(t *testing.T) {
	v := New()
	body := `{"options": {"project": "` + strings.Repeat("a", 2<<20) + `"}}`

	req := httptest.NewRequest(http.MethodPost, "/v1/validate", strings.NewReader(body))
	w := httptest.NewRecorder()

	v.HandleValidate(w, req)

	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected status %d, got %d", http.StatusRequestEntityTooLarge, w.Code)
	}
}

func TestHandleValidate_Success(t *testing.T) {
	v := New(WithVersion("v0.0.1"))

	tests := []struct {
		name           string
		body           string
		wantAccepted   bool
		wantService    bool
		wantViolations int
		wantRegion     bool
	}{
		{
			name:         "direct runner with no options",
			body:         `{}`,
			wantAccepted: true,
		},
		{
			name:         "service runner accepted",
			body:         `{"runner": "DataflowRunner", "defaultRegion": "us-central1", "options": {"project": "example:example", "temp_location": "gs://foo/bar", "num_workers": 3, "max_num_workers": 5}}`,
			wantAccepted: true,
			wantService:  true,
			wantRegion:   true,
		},
		{
			name:           "service runner rejected",
			body:           `{"runner": "dataflow", "defaultRegion": "", "options": {"num_workers": 43, "max_num_workers": 42}}`,
			wantService:    true,
			wantViolations: 5,
		},
		{
			name:           "environment options list",
			body:           `{"runner": "DirectRunner", "options": {"environment_type": "docker", "environment_options": ["process_command=foo"]}}`,
			wantViolations: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/v1/validate", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			v.HandleValidate(w, req)

			if w.Code != http.StatusOK {
				t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
			}

			var result Result
			if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
				t.Fatalf("failed to decode result: %v", err)
			}

			if result.Accepted != tt.wantAccepted {
				t.Errorf("expected accepted=%v, got %v: %v", tt.wantAccepted, result.Accepted, result.Messages())
			}
			if result.Service != tt.wantService {
				t.Errorf("expected service=%v, got %v", tt.wantService, result.Service)
			}
			if len(result.Violations) != tt.wantViolations {
				t.Errorf("expected %d violations, got %d: %v", tt.wantViolations, len(result.Violations), result.Messages())
			}

			hasRegion := false
			for _, a := range result.Aliases {
				if a.Option == "region" {
					hasRegion = true
				}
			}
			if hasRegion != tt.wantRegion {
				t.Errorf("expected region alias=%v, got %v", tt.wantRegion, hasRegion)
			}
			if result.Kind != "ValidationResult" {
				t.Errorf("expected kind ValidationResult, got %s", result.Kind)
			}
		})
	}
}
