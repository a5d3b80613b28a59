package observability

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestTransport_PropagatesTraceContext(t *testing.T) {
	shutdown, err := Init(context.Background(), Config{Enabled: false})
	require.NoError(t, err)
	defer shutdown(context.Background())

	var gotLogger *zap.Logger
	server := httptest.NewServer(HTTPMiddleware("posstub", zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotLogger = LoggerFromContext(r.Context(), nil)
		w.WriteHeader(http.StatusTeapot)
	})))
	defer server.Close()

	client := &http.Client{Transport: NewTransport(nil, "kasir")}

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, server.URL+"/api/search", nil)
	require.NoError(t, err)

	resp, err := client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	require.Equal(t, http.StatusTeapot, resp.StatusCode)
	require.NotNil(t, gotLogger, "middleware must put a logger into the request context")
	// Исходный запрос не изменён транспортом
	require.Empty(t, req.Header.Get("traceparent"))
}

func TestLoggerFromContext_Fallback(t *testing.T) {
	fallback := zap.NewNop()
	require.Same(t, fallback, LoggerFromContext(context.Background(), fallback))
}
