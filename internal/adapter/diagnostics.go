package adapter

import (
	"encoding/json"
	"log/slog"

	"github.com/mmcdole/snips/internal/domain"
)

// LogDiagnostics writes request/response tracing to a slog logger at debug
// level. Errors are logged at error level.
type LogDiagnostics struct {
	logger *slog.Logger
}

// NewDiagnostics returns the diagnostics sink for the given configuration:
// a logging sink when enabled, a no-op otherwise.
func NewDiagnostics(cfg DiagnosticsConfig, logger *slog.Logger) domain.Diagnostics {
	if !cfg.Enabled {
		return domain.NoOpDiagnostics{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &LogDiagnostics{logger: logger.With("component", "diagnostics")}
}

func (d *LogDiagnostics) Request(ev domain.RequestEvent) {
	d.logger.Debug("api request",
		"requestID", ev.RequestID,
		"method", ev.Method,
		"url", ev.URL,
		"params", ev.Params,
	)
}

func (d *LogDiagnostics) Response(ev domain.ResponseEvent) {
	d.logger.Debug("api response",
		"requestID", ev.RequestID,
		"url", ev.URL,
		"status", ev.Status,
		"bytes", ev.Bytes,
		"elapsed", ev.Elapsed,
	)
}

func (d *LogDiagnostics) Error(requestID, url string, err error) {
	d.logger.Error("api error", "requestID", requestID, "url", url, "error", err)
}

// Display dumps a value as indented JSON
func (d *LogDiagnostics) Display(name string, value any) {
	preview, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		d.logger.Debug("display", "name", name, "value", value)
		return
	}
	d.logger.Debug("display", "name", name, "preview", string(preview))
}
