// internal/api/client.go
//
// HTTP client for the Wordle backend.
// Responsibilities:
//   - Build JSON requests with X-Request-ID and, where required, a bearer token.
//   - Map non-2xx answers to *Error with the backend's message.
//   - Decode the guess endpoint's two response shapes at the boundary.
//
// Notes:
//   - No retries: every failure is returned to the caller as-is.
//   - Tokens come from a TokenSource (the session); the client never stores one.

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-client/internal/game"
)

// maxBody bounds how much of a response body is read.
const maxBody = 1 << 20

// TokenSource yields the current bearer token, if any.
type TokenSource interface {
	Token() (string, bool)
}

// Client talks to one backend base URL.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithTimeout bounds every request made by the client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			h := *c.http
			h.Timeout = d
			c.http = &h
		}
	}
}

// New constructs a Client for baseURL (e.g. http://192.168.0.109:3000).
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// WithTokens returns a copy of c that authenticates with ts.
func (c *Client) WithTokens(ts TokenSource) *Client {
	cp := *c
	cp.tokens = ts
	return &cp
}

// BaseURL reports the backend the client targets.
func (c *Client) BaseURL() string { return c.baseURL }

// ------------------------------- AUTH --------------------------------------

// Login exchanges credentials for an access token.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	body, err := c.do(ctx, http.MethodPost, "/auth/login", false, credentials{username, password})
	if err != nil {
		return "", err
	}
	var res loginRes
	if err := json.Unmarshal(body, &res); err != nil {
		return "", fmt.Errorf("%w: login: %v", ErrMalformedResponse, err)
	}
	if res.AccessToken == "" {
		return "", fmt.Errorf("%w: login: no access_token", ErrMalformedResponse)
	}
	return res.AccessToken, nil
}

// Register creates an account. The returned string is the backend's
// message, if it sent one.
func (c *Client) Register(ctx context.Context, username, password string) (string, error) {
	body, err := c.do(ctx, http.MethodPost, "/auth/register", false, credentials{username, password})
	if err != nil {
		return "", err
	}
	body = bytes.TrimSpace(body)
	if len(body) == 0 || body[0] == '[' {
		return "", nil
	}
	return errorMessage(body), nil
}

// ------------------------------ GAME ---------------------------------------

// Guess submits one word. A backend refusal is not an error: it comes back
// as a GuessResponse with Rejection set.
func (c *Client) Guess(ctx context.Context, guess string) (GuessResponse, error) {
	body, err := c.do(ctx, http.MethodPost, "/game/guess", true, guessReq{Guess: guess})
	if err != nil {
		return GuessResponse{}, err
	}
	return decodeGuess(body)
}

// decodeGuess splits the guess endpoint's `string | {result, message, won}`
// shape. Bodies that are neither a JSON object nor empty are rejection text,
// quoted or not.
func decodeGuess(body []byte) (GuessResponse, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return GuessResponse{}, fmt.Errorf("%w: empty guess response", ErrMalformedResponse)
	}
	if body[0] != '{' {
		var s string
		if body[0] == '"' {
			if err := json.Unmarshal(body, &s); err != nil {
				return GuessResponse{}, fmt.Errorf("%w: guess: %v", ErrMalformedResponse, err)
			}
		} else {
			s = string(body)
		}
		return GuessResponse{Rejection: s}, nil
	}

	var res GuessResult
	if err := json.Unmarshal(body, &res); err != nil {
		return GuessResponse{}, fmt.Errorf("%w: guess: %v", ErrMalformedResponse, err)
	}
	if len(res.Result) != game.WordLength {
		return GuessResponse{}, fmt.Errorf("%w: guess result has %d cells", ErrMalformedResponse, len(res.Result))
	}
	return GuessResponse{Result: &res}, nil
}

// NextWord asks the backend to start a new round.
func (c *Client) NextWord(ctx context.Context) (NextWord, error) {
	var res NextWord
	err := c.getJSON(ctx, "/game/next", &res)
	return res, err
}

// ------------------------------ USERS --------------------------------------

// Stats fetches the logged-in user's aggregate statistics.
func (c *Client) Stats(ctx context.Context) (Stats, error) {
	var res Stats
	err := c.getJSON(ctx, "/users/me/stats", &res)
	return res, err
}

// Ranking fetches the leaderboard, best first.
func (c *Client) Ranking(ctx context.Context) ([]RankingEntry, error) {
	res := []RankingEntry{}
	err := c.getJSON(ctx, "/users/ranking", &res)
	return res, err
}

// ----------------------------- transport -----------------------------------

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	body, err := c.do(ctx, http.MethodGet, path, true, nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMalformedResponse, path, err)
	}
	return nil
}

// do performs one request and returns the body of a 2xx response.
func (c *Client) do(ctx context.Context, method, path string, auth bool, payload any) ([]byte, error) {
	var token string
	if auth {
		var ok bool
		if c.tokens != nil {
			token, ok = c.tokens.Token()
		}
		if !ok || token == "" {
			return nil, ErrUnauthenticated
		}
	}

	var rdr io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", path, err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", path, err)
	}
	reqID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", reqID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		log.Debug().Err(err).Str("method", method).Str("path", path).Str("requestId", reqID).Msg("request failed")
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Str("requestId", reqID).
		Dur("took", time.Since(start)).
		Msg("request")
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{Status: resp.StatusCode, Message: errorMessage(body)}
	}
	return body, nil
}
