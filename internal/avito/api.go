package avito

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/avitodash/statsproxy/internal/metrics"
)

// API wraps the two analytics endpoints this proxy reads from. Each method
// performs exactly one attempt and returns the raw response body so the
// debug passthrough can serve it unmodified.
type API struct {
	c            HTTPClient
	itemStatsURL string
	callStatsURL string
}

func NewAPI(c HTTPClient, itemStatsURL, callStatsURL string) *API {
	return &API{c: c, itemStatsURL: itemStatsURL, callStatsURL: callStatsURL}
}

type itemStatsRequest struct {
	DateFrom string   `json:"date_from"`
	DateTo   string   `json:"date_to"`
	ItemIDs  []string `json:"item_ids"`
}

type callStatsRequest struct {
	DateFrom string `json:"date_from"`
	DateTo   string `json:"date_to"`
}

func (a *API) ItemStats(ctx context.Context, token, itemID, dateFrom, dateTo string) ([]byte, error) {
	body, err := a.postJSON(ctx, "items", a.itemStatsURL, token, itemStatsRequest{
		DateFrom: dateFrom,
		DateTo:   dateTo,
		ItemIDs:  []string{itemID},
	})
	if err != nil {
		if ue, ok := err.(*upstreamError); ok {
			return nil, &ItemsError{Status: ue.status, Err: ue.err}
		}
		return nil, &ItemsError{Err: err}
	}
	return body, nil
}

func (a *API) CallStats(ctx context.Context, token, dateFrom, dateTo string) ([]byte, error) {
	body, err := a.postJSON(ctx, "calls", a.callStatsURL, token, callStatsRequest{
		DateFrom: dateFrom,
		DateTo:   dateTo,
	})
	if err != nil {
		if ue, ok := err.(*upstreamError); ok {
			return nil, &CallsError{Status: ue.status, Err: ue.err}
		}
		return nil, &CallsError{Err: err}
	}
	return body, nil
}

type upstreamError struct {
	status int
	err    error
}

func (e *upstreamError) Error() string {
	if e.err != nil {
		return e.err.Error()
	}
	return fmt.Sprintf("non-2xx: %d", e.status)
}

func (a *API) postJSON(ctx context.Context, endpoint, url, token string, payload any) ([]byte, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, &upstreamError{err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return nil, &upstreamError{err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	start := time.Now()
	resp, err := a.c.Do(req)
	metrics.UpstreamDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues(endpoint, "error").Inc()
		return nil, &upstreamError{err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metrics.UpstreamRequests.WithLabelValues(endpoint, "non_2xx").Inc()
		io.Copy(io.Discard, io.LimitReader(resp.Body, 1024))
		return nil, &upstreamError{status: resp.StatusCode}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues(endpoint, "error").Inc()
		return nil, &upstreamError{err: err}
	}
	metrics.UpstreamRequests.WithLabelValues(endpoint, "ok").Inc()
	return body, nil
}
