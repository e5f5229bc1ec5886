package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/robalobadob/wordle/apps/go-client/internal/fakebackend"
	"github.com/robalobadob/wordle/apps/go-client/internal/game"
)

type staticToken string

func (s staticToken) Token() (string, bool) { return string(s), s != "" }

func newBackend(t *testing.T, opts ...fakebackend.Option) (*fakebackend.Server, *Client) {
	t.Helper()
	fb := fakebackend.New(opts...)
	srv := httptest.NewServer(fb)
	t.Cleanup(srv.Close)
	return fb, New(srv.URL)
}

func loggedIn(t *testing.T, c *Client) *Client {
	t.Helper()
	tok, err := c.Login(context.Background(), "alice", "secret123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	return c.WithTokens(staticToken(tok))
}

func TestLoginAndGuessSendBearer(t *testing.T) {
	var seen string
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"access_token":"tok-123"}`))
	})
	mux.HandleFunc("/game/guess", func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Get("Authorization")
		if r.Header.Get("X-Request-ID") == "" {
			t.Error("missing X-Request-ID")
		}
		_, _ = w.Write([]byte(`{"result":[3,3,3,3,3]}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := New(srv.URL)
	tok, err := c.Login(context.Background(), "alice", "secret123")
	if err != nil || tok != "tok-123" {
		t.Fatalf("login = %q, %v", tok, err)
	}
	if _, err := c.WithTokens(staticToken(tok)).Guess(context.Background(), "ABCDE"); err != nil {
		t.Fatalf("guess: %v", err)
	}
	if seen != "Bearer tok-123" {
		t.Errorf("Authorization = %q", seen)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	fb, c := newBackend(t)
	_ = fb.AddUser("alice", "secret123")

	_, err := c.Login(context.Background(), "alice", "wrong")
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}
	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.Message != "invalid credentials" {
		t.Errorf("message = %v", err)
	}
}

func TestAuthenticatedCallsWithoutTokenNeverHitNetwork(t *testing.T) {
	fb, c := newBackend(t)
	ctx := context.Background()

	if _, err := c.Guess(ctx, "ABCDE"); !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("guess err = %v", err)
	}
	if _, err := c.Stats(ctx); !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("stats err = %v", err)
	}
	if fb.TotalHits() != 0 {
		t.Errorf("backend saw %d requests", fb.TotalHits())
	}
}

func TestGuessAcceptedAndRejected(t *testing.T) {
	fb, c := newBackend(t, fakebackend.WithAnswers("crane"))
	_ = fb.AddUser("alice", "secret123")
	c = loggedIn(t, c)
	ctx := context.Background()

	res, err := c.Guess(ctx, "CRATE")
	if err != nil {
		t.Fatalf("guess: %v", err)
	}
	if res.Rejected() {
		t.Fatalf("unexpected rejection %q", res.Rejection)
	}
	want := game.Row{
		{Letter: "C", Feedback: game.Correct},
		{Letter: "R", Feedback: game.Correct},
		{Letter: "A", Feedback: game.Correct},
		{Letter: "T", Feedback: game.Absent},
		{Letter: "E", Feedback: game.Correct},
	}
	if diff := cmp.Diff(want, res.Result.Result); diff != "" {
		t.Errorf("row (-want +got):\n%s", diff)
	}

	res, err = c.Guess(ctx, "CRANE")
	if err != nil || !res.Result.Won {
		t.Fatalf("winning guess: %+v %v", res, err)
	}

	res, err = c.Guess(ctx, "SLATE")
	if err != nil {
		t.Fatalf("guess after win: %v", err)
	}
	if !res.Rejected() || res.Rejection != fakebackend.MsgRoundWon {
		t.Errorf("want rejection, got %+v", res)
	}
}

func TestDecodeGuessShapes(t *testing.T) {
	cases := []struct {
		name     string
		body     string
		rejected string
		wantErr  bool
	}{
		{"quoted string", `"Ya no tienes intentos"`, "Ya no tienes intentos", false},
		{"raw text", `no attempts left`, "no attempts left", false},
		{"bare codes", `{"result":[1,2,3,1,2],"message":"ok","won":false}`, "", false},
		{"short row", `{"result":[1,2]}`, "", true},
		{"empty", `  `, "", true},
		{"null", ` null `, "", true},
		{"broken object", `{"result":`, "", true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			res, err := decodeGuess([]byte(c.body))
			if c.wantErr {
				if !errors.Is(err, ErrMalformedResponse) {
					t.Fatalf("err = %v, want ErrMalformedResponse", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("err = %v", err)
			}
			if c.rejected != "" && res.Rejection != c.rejected {
				t.Errorf("rejection = %q", res.Rejection)
			}
			if c.rejected == "" && res.Rejected() {
				t.Errorf("unexpected rejection %q", res.Rejection)
			}
		})
	}
}

func TestDecodeGuessKeepsRowWithOddCells(t *testing.T) {
	bodies := []string{
		`{"result":[1,2,3,1,"x"]}`,
		`{"result":[1,2,3,1,1.0]}`,
		`{"result":[1,2,3,1,{"letter":"a","value":"1"}]}`,
		`{"result":[1,2,3,1,true]}`,
	}
	for _, body := range bodies {
		res, err := decodeGuess([]byte(body))
		if err != nil {
			t.Errorf("decodeGuess(%s): %v", body, err)
			continue
		}
		if res.Rejected() || res.Result == nil || len(res.Result.Result) != 5 {
			t.Errorf("decodeGuess(%s) = %+v", body, res)
			continue
		}
		if res.Result.Result[0].Feedback != game.Correct {
			t.Errorf("decodeGuess(%s): first cell = %v", body, res.Result.Result[0].Feedback)
		}
	}
}

func TestWithTimeoutLeavesCallerClientAlone(t *testing.T) {
	shared := &http.Client{Timeout: time.Minute}
	c := New("http://example.invalid", WithHTTPClient(shared), WithTimeout(3*time.Second))
	if shared.Timeout != time.Minute {
		t.Errorf("shared client timeout changed to %v", shared.Timeout)
	}
	if c.http.Timeout != 3*time.Second {
		t.Errorf("client timeout = %v", c.http.Timeout)
	}
	New("http://example.invalid", WithHTTPClient(http.DefaultClient), WithTimeout(time.Second))
	if http.DefaultClient.Timeout != 0 {
		t.Error("http.DefaultClient was modified")
	}
}

func TestErrorMessageShapes(t *testing.T) {
	cases := map[string]string{
		`{"message":"username taken"}`:          "username taken",
		`{"message":["too short","bad chars"]}`: "too short; bad chars",
		`{"error":"Invalid token"}`:             "Invalid token",
		`"plain"`:                               "plain",
		`Bad Gateway`:                           "Bad Gateway",
		``:                                      "",
	}
	for body, want := range cases {
		if got := errorMessage([]byte(body)); got != want {
			t.Errorf("errorMessage(%q) = %q, want %q", body, got, want)
		}
	}
}

func TestRegisterStatsRankingNext(t *testing.T) {
	fb, c := newBackend(t, fakebackend.WithAnswers("crane", "stone"))
	ctx := context.Background()

	if _, err := c.Register(ctx, "alice", "secret123"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := c.Register(ctx, "alice", "secret123"); err == nil {
		t.Fatal("duplicate register succeeded")
	}
	c = loggedIn(t, c)

	if _, err := c.Guess(ctx, "CRANE"); err != nil {
		t.Fatal(err)
	}
	next, err := c.NextWord(ctx)
	if err != nil || next.Message == "" {
		t.Fatalf("next = %+v, %v", next, err)
	}

	st, err := c.Stats(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if st.TotalGames != 1 || st.TotalVictories != 1 || st.CurrentStreak != 1 || st.BestStreak != 1 {
		t.Errorf("stats = %+v", st)
	}

	rank, err := c.Ranking(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]RankingEntry{{Username: "alice", Wins: 1}}, rank); diff != "" {
		t.Errorf("ranking (-want +got):\n%s", diff)
	}
	if fb.Hits(http.MethodGet, "/users/ranking") != 1 {
		t.Errorf("ranking hits = %d", fb.Hits(http.MethodGet, "/users/ranking"))
	}
}
