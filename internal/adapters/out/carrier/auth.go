package carrier

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"fulfillment/internal/core/ports"

	"github.com/pkg/errors"
	"golang.org/x/oauth2"
)

const (
	opLogin = "login"

	// The carrier issues tokens valid for ten days. A day of slack keeps a
	// long-running process from presenting a token on its last minute.
	tokenLifetime = 9 * 24 * time.Hour
)

var loginTokenPaths = paths("token", "data.token", "access_token")

var authLockHints = []string{
	"too many failed login attempts",
	"too many login attempts",
	"temporarily blocked",
	"account is locked",
}

// tokenSource is an oauth2.TokenSource whose cached token can be dropped
// after the carrier answers 401.
type tokenSource interface {
	oauth2.TokenSource
	Invalidate()
}

// loginSource exchanges the configured credentials for a bearer token.
type loginSource struct {
	endpoint string
	email    string
	password string
	http     *http.Client
	now      func() time.Time
}

func (s *loginSource) Token() (*oauth2.Token, error) {
	raw, err := json.Marshal(map[string]string{"email": s.email, "password": s.password})
	if err != nil {
		return nil, errors.Wrap(err, "carrier login: encode credentials")
	}

	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, s.endpoint, bytes.NewReader(raw))
	if err != nil {
		return nil, errors.Wrap(err, "carrier login: build request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, ports.NewCarrierTransportError(opLogin, 0, "", errors.Wrap(err, "POST /auth/login"))
	}
	defer resp.Body.Close()

	doc, text, decodeErr := decodeBody(resp.Body)
	msg := errorMessage(doc)
	if msg == "" {
		msg = text
	}

	if resp.StatusCode == http.StatusTooManyRequests || isAuthLocked(msg) {
		return nil, ports.NewCarrierAuthLockedError(opLogin, resp.StatusCode, msg)
	}
	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, ports.NewCarrierTransportError(opLogin, resp.StatusCode, msg, decodeErr)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return nil, ports.NewCarrierRejectedError(opLogin, resp.StatusCode, msg)
	}
	if decodeErr != nil {
		return nil, ports.NewCarrierTransportError(opLogin, resp.StatusCode, "unreadable response", decodeErr)
	}

	token := firstString(doc, loginTokenPaths)
	if token == "" {
		return nil, ports.NewCarrierLogicalError(opLogin, "token")
	}
	return &oauth2.Token{AccessToken: token, TokenType: "Bearer", Expiry: s.now().Add(tokenLifetime)}, nil
}

func isAuthLocked(msg string) bool {
	msg = strings.ToLower(msg)
	for _, hint := range authLockHints {
		if strings.Contains(msg, hint) {
			return true
		}
	}
	return false
}

// cachedTokenSource holds one token until it expires or is invalidated.
// Logins are serialized so concurrent calls never trigger parallel logins.
type cachedTokenSource struct {
	mu  sync.Mutex
	src oauth2.TokenSource
	tok *oauth2.Token
}

func newCachedTokenSource(src oauth2.TokenSource) *cachedTokenSource {
	return &cachedTokenSource{src: src}
}

func (c *cachedTokenSource) Token() (*oauth2.Token, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.tok.Valid() {
		return c.tok, nil
	}
	tok, err := c.src.Token()
	if err != nil {
		return nil, err
	}
	c.tok = tok
	return tok, nil
}

func (c *cachedTokenSource) Invalidate() {
	c.mu.Lock()
	c.tok = nil
	c.mu.Unlock()
}

// staticTokenSource serves a configured token. A 401 has nothing to refresh.
type staticTokenSource struct {
	oauth2.TokenSource
}

func newStaticTokenSource(token string) staticTokenSource {
	return staticTokenSource{oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})}
}

func (staticTokenSource) Invalidate() {}
