package tracing

import (
	"sync"

	"go.opencensus.io/trace"
)

// RecordingExporter keeps exported spans in memory
type RecordingExporter struct {
	mu    sync.Mutex
	spans []*trace.SpanData
}

func (e *RecordingExporter) ExportSpan(s *trace.SpanData) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.spans = append(e.spans, s)
}

func (e *RecordingExporter) Spans() []*trace.SpanData {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]*trace.SpanData(nil), e.spans...)
}

// Names returns the span names in export order
func (e *RecordingExporter) Names() []string {
	spans := e.Spans()
	names := make([]string, 0, len(spans))
	for _, s := range spans {
		names = append(names, s.Name)
	}
	return names
}
