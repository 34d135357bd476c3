package validator

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/NVIDIA/pipeline-preflight/pkg/defaults"
	cnserrors "github.com/NVIDIA/pipeline-preflight/pkg/errors"
	"github.com/NVIDIA/pipeline-preflight/pkg/options"
	"github.com/NVIDIA/pipeline-preflight/pkg/runner"
	"github.com/NVIDIA/pipeline-preflight/pkg/serializer"
	"github.com/NVIDIA/pipeline-preflight/pkg/server"
)

// ValidateRequest is the body of POST /v1/validate.
type ValidateRequest struct {
	// Runner is the runner name, e.g. "DataflowRunner". Empty means the
	// direct runner.
	Runner string `json:"runner"`

	// DefaultRegion overrides the runner's default region. An explicit empty
	// string means the runner has none.
	DefaultRegion *string `json:"defaultRegion,omitempty"`

	// Options are the pipeline options by name.
	Options map[string]any `json:"options"`
}

// HandleValidate validates the posted options. Both accepted and rejected
// configurations are answered with 200 and a Result; only malformed requests
// are errors.
//
// Example:
//
//	POST /v1/validate
//	Content-Type: application/json
//	Body: {"runner": "DataflowRunner", "options": {"project": "my-project"}}
func (v *Validator) HandleValidate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		server.WriteError(w, r, http.StatusMethodNotAllowed, cnserrors.ErrCodeMethodNotAllowed,
			"Method not allowed", false, map[string]any{
				"method": r.Method,
			})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), defaults.ValidateRequestTimeout)
	defer cancel()

	var req ValidateRequest
	body := http.MaxBytesReader(w, r.Body, defaults.MaxValidateBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			server.WriteError(w, r, http.StatusRequestEntityTooLarge, cnserrors.ErrCodeInvalidRequest,
				"Request body too large", false, map[string]any{
					"limit": tooLarge.Limit,
				})
			return
		}
		server.WriteError(w, r, http.StatusBadRequest, cnserrors.ErrCodeInvalidRequest,
			"Invalid request body", false, map[string]any{
				"error": err.Error(),
			})
		return
	}

	store, err := options.FromValues(req.Options)
	if err != nil {
		server.WriteError(w, r, http.StatusBadRequest, cnserrors.ErrCodeInvalidRequest,
			"Invalid options", false, map[string]any{
				"error": err.Error(),
			})
		return
	}

	var runnerOpts []runner.Option
	if req.DefaultRegion != nil {
		runnerOpts = append(runnerOpts, runner.WithDefaultRegion(*req.DefaultRegion))
	}
	rn := runner.Parse(req.Runner, runnerOpts...)

	slog.Debug("validate request received",
		"runner", rn.Name(),
		"options", store.Len(),
		"request_id", server.RequestIDFromContext(ctx))

	result, err := v.Validate(store, rn)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Failed to validate options", nil)
		return
	}

	if err := ctx.Err(); err != nil {
		server.WriteError(w, r, http.StatusGatewayTimeout, cnserrors.ErrCodeTimeout,
			"Validation timed out", true, nil)
		return
	}

	serializer.RespondJSON(w, http.StatusOK, result)
}
