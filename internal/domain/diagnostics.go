package domain

import "time"

// RequestEvent describes an outgoing content API request.
type RequestEvent struct {
	RequestID string
	Method    string
	URL       string
	Params    map[string]string
}

// ResponseEvent describes a completed content API request.
type ResponseEvent struct {
	RequestID string
	URL       string
	Status    int
	Bytes     int
	Elapsed   time.Duration
}

// Diagnostics receives request/response tracing and value dumps.
// Implementations are injected at construction time; production builds
// use NoOpDiagnostics.
type Diagnostics interface {
	Request(ev RequestEvent)
	Response(ev ResponseEvent)
	Error(requestID, url string, err error)
	Display(name string, value any)
}

// NoOpDiagnostics discards everything.
type NoOpDiagnostics struct{}

func (NoOpDiagnostics) Request(RequestEvent)        {}
func (NoOpDiagnostics) Response(ResponseEvent)      {}
func (NoOpDiagnostics) Error(string, string, error) {}
func (NoOpDiagnostics) Display(string, any)         {}
