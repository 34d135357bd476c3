package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/NVIDIA/pipeline-preflight/pkg/logging"
	"github.com/NVIDIA/pipeline-preflight/pkg/server"
	"github.com/NVIDIA/pipeline-preflight/pkg/validator"
)

const (
	name           = "preflightd"
	versionDefault = "dev"

	// ValidatePath is the route of the validation endpoint.
	ValidatePath = "/v1/validate"
)

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/NVIDIA/pipeline-preflight/pkg/api.version=1.0.0"
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Serve starts the API server and blocks until shutdown.
// It configures logging, sets up routes, and handles graceful shutdown.
// Returns an error if the server fails to start or encounters a fatal error.
func Serve() error {
	logging.SetDefaultStructuredLogger(name, version)
	return Run(context.Background())
}

// Run serves the validation API with the current default logger until ctx is
// cancelled or a termination signal arrives. opts are applied after the
// defaults, so callers may override the config or version.
func Run(ctx context.Context, opts ...server.Option) error {
	slog.Info("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
	)

	s := NewServer(opts...)
	if err := s.Run(ctx); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}

	return nil
}

// NewServer returns a server with the validation routes registered.
func NewServer(opts ...server.Option) *server.Server {
	v := validator.New(validator.WithVersion(version))

	base := []server.Option{
		server.WithName(name),
		server.WithVersion(version),
		server.WithHandler(routes(v)),
		server.WithReadinessCheck("validator", v.Ready),
	}
	return server.New(append(base, opts...)...)
}

func routes(v *validator.Validator) map[string]http.HandlerFunc {
	return map[string]http.HandlerFunc{
		ValidatePath: v.HandleValidate,
	}
}
