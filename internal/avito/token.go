package avito

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/avitodash/statsproxy/internal/metrics"
)

// tokens are refreshed this long before their stated expiry to cover clock
// skew and in-flight use
const expiryMargin = 60 * time.Second

const defaultExpiresIn = 3600

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
	TokenType   string `json:"token_type"`
}

// TokenCache holds the process-wide bearer credential and refreshes it when
// stale. The mutex only guards the cached fields: two goroutines hitting an
// expired window may both run the exchange, which is fine because the grant
// is idempotent.
type TokenCache struct {
	c            HTTPClient
	tokenURL     string
	clientID     string
	clientSecret string

	mu        sync.Mutex
	token     string
	expiresAt time.Time

	now func() time.Time
}

func NewTokenCache(c HTTPClient, tokenURL, clientID, clientSecret string) *TokenCache {
	return &TokenCache{
		c:            c,
		tokenURL:     tokenURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		now:          time.Now,
	}
}

func (t *TokenCache) Token(ctx context.Context) (string, error) {
	t.mu.Lock()
	if t.token != "" && t.now().Before(t.expiresAt.Add(-expiryMargin)) {
		tok := t.token
		t.mu.Unlock()
		metrics.TokenCacheHits.Inc()
		return tok, nil
	}
	t.mu.Unlock()

	tok, expiresAt, err := t.exchange(ctx)
	if err != nil {
		return "", err
	}

	t.mu.Lock()
	t.token = tok
	t.expiresAt = expiresAt
	t.mu.Unlock()
	return tok, nil
}

func (t *TokenCache) exchange(ctx context.Context) (string, time.Time, error) {
	metrics.TokenRefreshes.Inc()

	form := url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {t.clientID},
		"client_secret": {t.clientSecret},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", time.Time{}, &AuthError{Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.c.Do(req)
	if err != nil {
		return "", time.Time{}, &AuthError{Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 1024))
		return "", time.Time{}, &AuthError{Status: resp.StatusCode}
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", time.Time{}, &AuthError{Err: err}
	}
	if tr.AccessToken == "" {
		return "", time.Time{}, &AuthError{Status: resp.StatusCode}
	}
	expiresIn := tr.ExpiresIn
	if expiresIn == 0 {
		expiresIn = defaultExpiresIn
	}
	return tr.AccessToken, t.now().Add(time.Duration(expiresIn) * time.Second), nil
}
