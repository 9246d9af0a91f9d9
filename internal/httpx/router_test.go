package httpx

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/avitodash/statsproxy/internal/avito"
	"github.com/avitodash/statsproxy/internal/stats"
)

func testRouter(t *testing.T, upstream http.Handler) http.Handler {
	t.Helper()
	srv := httptest.NewServer(upstream)
	t.Cleanup(srv.Close)

	cl := avito.NewHTTPClient(0)
	tokens := avito.NewTokenCache(cl, srv.URL+"/token", "id", "secret")
	api := avito.NewAPI(cl, srv.URL+"/items", srv.URL+"/calls")
	svc := stats.NewService(tokens, api, slog.Default())
	return NewRouter(slog.Default(), svc, "http://localhost:3000")
}

func happyUpstream() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"access_token":"tok","expires_in":3600}`))
	})
	mux.HandleFunc("/items", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result":[{"stats":[{"date":"2024-01-01","views":10,"contacts":2}]}]}`))
	})
	mux.HandleFunc("/calls", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result":[{"date":"2024-01-01","calls":3}]}`))
	})
	return mux
}

func TestHealth(t *testing.T) {
	r := testRouter(t, happyUpstream())
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != 200 || rec.Body.String() != "ok" {
		t.Fatalf("health = %d %q", rec.Code, rec.Body.String())
	}
}

func TestStatsEndpoint(t *testing.T) {
	r := testRouter(t, happyUpstream())
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stats?itemId=777&dateFrom=2024-01-01&dateTo=2024-01-07&grouping=day", nil))
	if rec.Code != 200 {
		t.Fatalf("code = %d body = %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		ItemID string `json:"itemId"`
		Series []struct {
			Date  string `json:"date"`
			Views int    `json:"views"`
			Calls int    `json:"calls"`
		} `json:"series"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.ItemID != "777" || len(resp.Series) != 1 {
		t.Fatalf("resp = %+v", resp)
	}
	if resp.Series[0].Views != 10 || resp.Series[0].Calls != 3 {
		t.Fatalf("series = %+v", resp.Series[0])
	}
}

func TestStatsRequiresItemID(t *testing.T) {
	r := testRouter(t, happyUpstream())
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stats", nil))
	if rec.Code != 400 {
		t.Fatalf("code = %d", rec.Code)
	}
}

func TestStatsAuthFailureIs500WithErrorBody(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "denied", http.StatusForbidden)
	})
	r := testRouter(t, mux)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stats?itemId=777", nil))
	if rec.Code != 500 {
		t.Fatalf("code = %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["error"] == "" {
		t.Fatal("expected error field")
	}
}

func TestDebugPassthroughIsVerbatim(t *testing.T) {
	r := testRouter(t, happyUpstream())

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/items?itemId=777", nil))
	if rec.Code != 200 {
		t.Fatalf("code = %d", rec.Code)
	}
	want := `{"result":[{"stats":[{"date":"2024-01-01","views":10,"contacts":2}]}]}`
	if got, _ := io.ReadAll(rec.Body); string(got) != want {
		t.Fatalf("items passthrough = %s", got)
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/calls", nil))
	if rec.Code != 200 {
		t.Fatalf("code = %d", rec.Code)
	}
	if got := rec.Body.String(); got != `{"result":[{"date":"2024-01-01","calls":3}]}` {
		t.Fatalf("calls passthrough = %s", got)
	}
}
