package domain

import (
	"context"
	"log/slog"
	"time"
)

// Diagnostic kinds.
const (
	DiagRowRejected   = "row_rejected"
	DiagGeocodeFailed = "geocode_failed"
	DiagLoadComplete  = "load_complete"
	DiagLoadFailed    = "load_failed"
)

// Diagnostic is one structured record of a contained failure or a load
// outcome. Row- and address-level failures are deliberately non-fatal; this is
// the channel that keeps them observable.
type Diagnostic struct {
	Kind    string    `json:"kind"`
	LoadID  string    `json:"load_id,omitempty"`
	Address string    `json:"address,omitempty"`
	Detail  string    `json:"detail,omitempty"`
	Count   int       `json:"count,omitempty"`
	Time    time.Time `json:"time"`
}

// DiagnosticSink receives diagnostics. Implementations must tolerate
// concurrent calls and must not fail the caller.
type DiagnosticSink interface {
	Record(ctx context.Context, d Diagnostic)
}

// LogSink writes diagnostics to a structured logger.
type LogSink struct {
	Logger *slog.Logger
}

func (s LogSink) Record(_ context.Context, d Diagnostic) {
	s.Logger.Warn("diagnostic",
		"kind", d.Kind,
		"load_id", d.LoadID,
		"address", d.Address,
		"detail", d.Detail,
		"count", d.Count,
	)
}

// MultiSink fans a diagnostic out to every sink.
type MultiSink []DiagnosticSink

func (s MultiSink) Record(ctx context.Context, d Diagnostic) {
	for _, sink := range s {
		sink.Record(ctx, d)
	}
}
