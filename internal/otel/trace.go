package otel

import (
	"os"
	"sync/atomic"
)

// traceEnabled starts from STAGEVIEW_TRACE; --trace turns it on as well.
var traceEnabled atomic.Bool

func init() {
	traceEnabled.Store(os.Getenv("STAGEVIEW_TRACE") != "")
}

// TraceEnabled reports whether raw push payloads should be logged.
func TraceEnabled() bool {
	return traceEnabled.Load()
}

// SetTraceEnabled overrides the environment setting.
func SetTraceEnabled(v bool) {
	traceEnabled.Store(v)
}
