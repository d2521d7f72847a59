package middleware

import (
	"net/http"

	"go.opencensus.io/plugin/ochttp"
	"go.opencensus.io/trace"

	"github.com/mmjournal/mmjournal/internal/domain"
)

// TracingMiddleware opens an OpenCensus server span per request
func TracingMiddleware(next http.Handler) http.Handler {
	annotated := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		span := trace.FromContext(r.Context())
		if span == nil {
			next.ServeHTTP(w, r)
			return
		}

		span.AddAttributes(
			trace.StringAttribute("http.host", r.Host),
			trace.StringAttribute("http.method", r.Method),
			trace.StringAttribute("http.path", r.URL.Path),
		)
		if id := RequestIDFromContext(r.Context()); id != "" {
			span.AddAttributes(trace.StringAttribute("http.request_id", id))
		}

		next.ServeHTTP(&traceResponseWriter{ResponseWriter: w, span: span}, r)
	})

	return &ochttp.Handler{
		Handler: annotated,
		FormatSpanName: func(r *http.Request) string {
			return r.Method + " " + r.URL.Path
		},
		IsPublicEndpoint: true,
	}
}

// AnnotateIdentity tags the request span with the authenticated user
func AnnotateIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if span := trace.FromContext(r.Context()); span != nil {
			if identity, ok := domain.IdentityFromContext(r.Context()); ok {
				span.AddAttributes(trace.Int64Attribute("user.id", identity.UserID))
			}
		}
		next.ServeHTTP(w, r)
	})
}

type traceResponseWriter struct {
	http.ResponseWriter
	span       *trace.Span
	statusCode int
}

func (trw *traceResponseWriter) WriteHeader(code int) {
	trw.statusCode = code
	trw.span.AddAttributes(trace.Int64Attribute("http.status_code", int64(code)))
	if code >= http.StatusInternalServerError {
		trw.span.SetStatus(trace.Status{
			Code:    trace.StatusCodeUnknown,
			Message: http.StatusText(code),
		})
	}
	trw.ResponseWriter.WriteHeader(code)
}
