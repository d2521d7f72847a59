package tracing

import (
	"fmt"
	"net/http"
	"strings"

	"contrib.go.opencensus.io/exporter/aws"
	"contrib.go.opencensus.io/exporter/jaeger"
	"contrib.go.opencensus.io/exporter/prometheus"
	"contrib.go.opencensus.io/exporter/stackdriver"
	"contrib.go.opencensus.io/exporter/zipkin"
	"contrib.go.opencensus.io/integrations/ocsql"
	datadog "github.com/DataDog/opencensus-go-exporter-datadog"
	zipkinhttp "github.com/openzipkin/zipkin-go/reporter/http"
	"go.opencensus.io/plugin/ochttp"
	"go.opencensus.io/stats/view"
	"go.opencensus.io/trace"

	"github.com/mmjournal/mmjournal/config"
	"github.com/mmjournal/mmjournal/pkg/logger"
)

// InitTracing configures OpenCensus sampling and exporters. When prometheus is
// among the metrics exporters the returned handler serves the scrape endpoint,
// otherwise it is nil.
// codecov:ignore:start
func InitTracing(cfg *config.TracingConfig, log logger.Logger) (http.Handler, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	trace.ApplyConfig(trace.Config{
		DefaultSampler: trace.ProbabilitySampler(cfg.SamplingProbability),
	})

	if err := initTraceExporter(cfg, log); err != nil {
		return nil, err
	}

	metricsHandler, err := initMetricsExporters(cfg, log)
	if err != nil {
		return nil, err
	}

	if err := view.Register(ochttp.DefaultServerViews...); err != nil {
		return nil, fmt.Errorf("failed to register HTTP server views: %w", err)
	}

	log.WithFields(map[string]interface{}{
		"trace_exporter":   cfg.TraceExporter,
		"metrics_exporter": cfg.MetricsExporter,
	}).Info("OpenCensus initialized")
	return metricsHandler, nil
}

func initTraceExporter(cfg *config.TracingConfig, log logger.Logger) error {
	var exporter trace.Exporter

	switch cfg.TraceExporter {
	case "none", "":
		log.Info("No trace exporter configured")
		return nil
	case "jaeger":
		if cfg.JaegerEndpoint == "" {
			return fmt.Errorf("Jaeger endpoint is required for Jaeger exporter")
		}
		je, err := jaeger.NewExporter(jaeger.Options{
			CollectorEndpoint: cfg.JaegerEndpoint,
			Process:           jaeger.Process{ServiceName: cfg.ServiceName},
		})
		if err != nil {
			return fmt.Errorf("failed to create Jaeger exporter: %w", err)
		}
		exporter = je
	case "zipkin":
		if cfg.ZipkinEndpoint == "" {
			return fmt.Errorf("Zipkin endpoint is required for Zipkin exporter")
		}
		exporter = zipkin.NewExporter(zipkinhttp.NewReporter(cfg.ZipkinEndpoint), nil)
	case "stackdriver":
		se, err := newStackdriver(cfg, log)
		if err != nil {
			return err
		}
		exporter = se
	case "datadog":
		de, err := newDatadog(cfg, log)
		if err != nil {
			return err
		}
		exporter = de
	case "xray":
		if cfg.XRayRegion == "" {
			return fmt.Errorf("AWS region is required for X-Ray exporter")
		}
		xe, err := aws.NewExporter(aws.WithRegion(cfg.XRayRegion), aws.WithVersion("latest"))
		if err != nil {
			return fmt.Errorf("failed to create AWS X-Ray exporter: %w", err)
		}
		exporter = xe
	default:
		return fmt.Errorf("unsupported trace exporter: %s", cfg.TraceExporter)
	}

	trace.RegisterExporter(exporter)
	log.WithField("exporter", cfg.TraceExporter).Info("Trace exporter initialized")
	return nil
}

func initMetricsExporters(cfg *config.TracingConfig, log logger.Logger) (http.Handler, error) {
	names, err := metricsExporterNames(cfg.MetricsExporter)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		log.Info("No metrics exporter configured")
		return nil, nil
	}

	var handler http.Handler
	for _, name := range names {
		switch name {
		case "prometheus":
			pe, err := prometheus.NewExporter(prometheus.Options{
				Namespace: cfg.ServiceName,
				OnError: func(err error) {
					log.WithField("error", err.Error()).Error("Prometheus exporter error")
				},
			})
			if err != nil {
				return nil, fmt.Errorf("failed to create Prometheus exporter: %w", err)
			}
			view.RegisterExporter(pe)
			handler = pe
		case "stackdriver":
			se, err := newStackdriver(cfg, log)
			if err != nil {
				return nil, err
			}
			view.RegisterExporter(se)
		case "datadog":
			de, err := newDatadog(cfg, log)
			if err != nil {
				return nil, err
			}
			view.RegisterExporter(de)
		}
		log.WithField("exporter", name).Info("Metrics exporter initialized")
	}

	if err := view.Register(ocsql.DefaultViews...); err != nil {
		return nil, fmt.Errorf("failed to register database views: %w", err)
	}

	return handler, nil
}

// metricsExporterNames splits a comma-separated exporter list, dropping blanks and "none"
func metricsExporterNames(value string) ([]string, error) {
	var names []string
	for _, name := range strings.Split(value, ",") {
		name = strings.TrimSpace(name)
		switch name {
		case "", "none":
			continue
		case "prometheus", "stackdriver", "datadog":
			names = append(names, name)
		default:
			return nil, fmt.Errorf("unsupported metrics exporter: %s", name)
		}
	}
	return names, nil
}

func newStackdriver(cfg *config.TracingConfig, log logger.Logger) (*stackdriver.Exporter, error) {
	if cfg.StackdriverProjectID == "" {
		return nil, fmt.Errorf("Stackdriver project ID is required for Stackdriver exporter")
	}
	se, err := stackdriver.NewExporter(stackdriver.Options{
		ProjectID:    cfg.StackdriverProjectID,
		MetricPrefix: cfg.ServiceName,
		OnError: func(err error) {
			log.WithField("error", err.Error()).Error("Stackdriver exporter error")
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Stackdriver exporter: %w", err)
	}
	return se, nil
}

func newDatadog(cfg *config.TracingConfig, log logger.Logger) (*datadog.Exporter, error) {
	if cfg.DatadogAgentAddress == "" {
		return nil, fmt.Errorf("Datadog agent address is required for Datadog exporter")
	}
	de, err := datadog.NewExporter(datadog.Options{
		Service:   cfg.ServiceName,
		TraceAddr: cfg.DatadogAgentAddress,
		StatsAddr: cfg.DatadogAgentAddress,
		OnError: func(err error) {
			log.WithField("error", err.Error()).Error("Datadog exporter error")
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Datadog exporter: %w", err)
	}
	return de, nil
}

// codecov:ignore:end
