package http

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"time"
)

// Check проверка готовности одной зависимости; nil - зависимость доступна
type Check func(ctx context.Context) error

// Response тело ответа health endpoint
type Response struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Handler возвращает HTTP handler для health check endpoint.
// 200 {"status":"ok"} если все проверки прошли (или их нет),
// 503 {"status":"not ready"} с текстом ошибок по каждой упавшей проверке
func Handler(checks map[string]Check) http.HandlerFunc {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		resp := Response{Status: "ok"}
		for _, name := range names {
			if err := checks[name](ctx); err != nil {
				if resp.Checks == nil {
					resp.Checks = make(map[string]string)
				}
				resp.Checks[name] = err.Error()
				resp.Status = "not ready"
			}
		}

		w.Header().Set("Content-Type", "application/json")
		if resp.Status != "ok" {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		json.NewEncoder(w).Encode(resp)
	}
}
