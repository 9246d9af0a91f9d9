package httpx

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/avitodash/statsproxy/internal/stats"
	"github.com/avitodash/statsproxy/internal/utils"
)

func NewRouter(log *slog.Logger, svc *stats.Service, allowOrigin string) http.Handler {
	mux := chi.NewRouter()
	mux.Use(utils.RequestID)
	mux.Use(utils.Logger(log))
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{allowOrigin},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	mux.Use(httprate.Limit(120, time.Minute, httprate.WithKeyFuncs(httprate.KeyByIP)))

	mux.Get("/health", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); w.Write([]byte("ok")) })
	mux.Handle("/metrics", promhttp.Handler())

	mux.Get("/stats", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		itemID := q.Get("itemId")
		if itemID == "" {
			writeError(w, 400, "itemId required")
			return
		}
		resp, err := svc.ItemSeries(r.Context(), itemID, q.Get("dateFrom"), q.Get("dateTo"), q.Get("grouping"))
		if err != nil {
			log.Error("stats request failed", slog.String("rid", utils.RID(r.Context())), slog.String("err", err.Error()))
			writeError(w, 500, "failed to fetch stats")
			return
		}
		writeJSON(w, resp)
	})

	mux.Get("/debug/items", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		body, err := svc.RawItemStats(r.Context(), q.Get("itemId"), q.Get("dateFrom"), q.Get("dateTo"))
		if err != nil {
			writeError(w, 500, err.Error())
			return
		}
		writeRaw(w, body)
	})

	mux.Get("/debug/calls", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		body, err := svc.RawCallStats(r.Context(), q.Get("dateFrom"), q.Get("dateTo"))
		if err != nil {
			writeError(w, 500, err.Error())
			return
		}
		writeRaw(w, body)
	})

	return mux
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.Encode(v)
}

func writeRaw(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
