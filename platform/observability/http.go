package observability

import (
	"net/http"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// HTTPMiddleware возвращает chi/http middleware: извлекает trace context, создаёт server span на запрос
// и кладёт в контекст logger с trace_id
func HTTPMiddleware(serviceName string, logger *zap.Logger) func(http.Handler) http.Handler {
	tracer := otel.Tracer(serviceName)
	prop := otel.GetTextMapPropagator()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := prop.Extract(r.Context(), propagation.HeaderCarrier(r.Header))
			ctx, span := tracer.Start(ctx, "HTTP "+r.Method+" "+r.URL.Path,
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(
					attribute.String("http.method", r.Method),
					attribute.String("http.target", r.URL.Path),
				),
			)
			defer span.End()

			ctx = withLogger(ctx, L(ctx, logger))

			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(wrapped, r.WithContext(ctx))

			span.SetAttributes(attribute.Int("http.status_code", wrapped.statusCode))
			if wrapped.statusCode >= 400 {
				span.SetStatus(codes.Error, strconv.Itoa(wrapped.statusCode))
			}
		})
	}
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

// WriteHeader запоминает статус код ответа
func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// transport клиентский RoundTripper: span на каждый исходящий запрос, trace context в заголовках,
// счётчик запросов и гистограмма длительности
type transport struct {
	base     http.RoundTripper
	tracer   trace.Tracer
	prop     propagation.TextMapPropagator
	requests metric.Int64Counter
	duration metric.Float64Histogram
}

// NewTransport оборачивает base (nil - http.DefaultTransport) трассировкой и метриками.
// Провайдеры берутся глобальные, поэтому Init нужно вызвать до создания клиента
func NewTransport(base http.RoundTripper, serviceName string) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	meter := otel.Meter(serviceName)

	// Ошибка создания инструмента не должна ломать запросы - просто не пишем метрику
	requests, err := meter.Int64Counter("http.client.requests",
		metric.WithDescription("Outgoing HTTP requests"))
	if err != nil {
		requests = nil
	}
	duration, err := meter.Float64Histogram("http.client.duration",
		metric.WithDescription("Outgoing HTTP request duration"),
		metric.WithUnit("s"))
	if err != nil {
		duration = nil
	}

	return &transport{
		base:     base,
		tracer:   otel.Tracer(serviceName),
		prop:     otel.GetTextMapPropagator(),
		requests: requests,
		duration: duration,
	}
}

// RoundTrip выполняет запрос внутри client span
func (t *transport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx, span := t.tracer.Start(req.Context(), "HTTP "+req.Method+" "+req.URL.Path,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", req.Method),
			attribute.String("http.url", req.URL.Redacted()),
		),
	)
	defer span.End()

	// RoundTripper не должен менять исходный запрос
	out := req.Clone(ctx)
	t.prop.Inject(ctx, propagation.HeaderCarrier(out.Header))

	start := time.Now()
	resp, err := t.base.RoundTrip(out)
	elapsed := time.Since(start).Seconds()

	status := 0
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		status = resp.StatusCode
		span.SetAttributes(attribute.Int("http.status_code", status))
		if status >= 400 {
			span.SetStatus(codes.Error, strconv.Itoa(status))
		}
	}

	attrs := metric.WithAttributes(
		attribute.String("http.method", req.Method),
		attribute.Int("http.status_code", status),
	)
	if t.requests != nil {
		t.requests.Add(ctx, 1, attrs)
	}
	if t.duration != nil {
		t.duration.Record(ctx, elapsed, attrs)
	}

	return resp, err
}
