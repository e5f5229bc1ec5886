// internal/fakebackend/server.go
//
// In-process stand-in for the Wordle backend, used to drive the client
// end to end in tests.
// Responsibilities:
//   - Router + middleware (request IDs, panic recovery, JSON content type, hit counting).
//   - Auth endpoints: POST /auth/register, POST /auth/login.
//   - Game endpoints (require auth): POST /game/guess, GET /game/next.
//   - User endpoints (require auth): GET /users/me/stats, GET /users/ranking.
//
// Notes:
//   - State lives in memory and is guarded by one mutex.
//   - Guess refusals are answered with a bare JSON string, like the real backend.

package fakebackend

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-client/assets"
)

const (
	maxAttempts = 5
	rankingSize = 10
)

// Rejection texts sent as bare strings from POST /game/guess.
const (
	MsgBadLength = "guess must have 5 letters"
	MsgRoundWon  = "you already guessed this word, request a new one"
	MsgNoTries   = "no attempts left, request a new word"
)

// Server bundles router and in-memory state.
type Server struct {
	r        *chi.Mux
	clock    clockwork.Clock
	secret   []byte
	salt     string
	interval time.Duration
	words    []string

	mu      sync.Mutex
	users   map[string]*user // keyed by lower(username)
	answers []string         // fixed answer queue, consumed front first
	hits    map[string]int   // "METHOD /path" → count
}

type user struct {
	ID           string
	Username     string
	PasswordHash string
	Games        int
	Victories    int
	Streak       int
	BestStreak   int
	round        *round
}

type round struct {
	Answer   string
	Guesses  int
	Finished bool
	Won      bool
}

// Option customises a Server.
type Option func(*Server)

// WithAnswers fixes the answer sequence. Each new round takes the next one;
// the last answer repeats once the queue is drained.
func WithAnswers(answers ...string) Option {
	return func(s *Server) {
		for _, a := range answers {
			s.answers = append(s.answers, strings.ToLower(a))
		}
	}
}

// WithClock replaces the wall clock used for token times and word rotation.
func WithClock(c clockwork.Clock) Option {
	return func(s *Server) { s.clock = c }
}

// WithSecret sets the JWT signing secret.
func WithSecret(secret string) Option {
	return func(s *Server) { s.secret = []byte(secret) }
}

// New constructs a Server, installs middleware, and registers routes.
func New(opts ...Option) *Server {
	s := &Server{
		r:        chi.NewRouter(),
		clock:    clockwork.NewRealClock(),
		secret:   []byte("dev_secret_change_me"),
		salt:     "local_dev_salt",
		interval: 5 * time.Minute,
		users:    make(map[string]*user),
		hits:     make(map[string]int),
	}
	for _, o := range opts {
		o(s)
	}
	if w, err := assets.PracticeWords(); err == nil {
		s.words = w
	} else {
		log.Warn().Err(err).Msg("load practice words")
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.Recoverer)
	s.r.Use(s.countHits)
	s.r.Use(jsonContentType)

	s.r.Post("/auth/register", s.handleRegister)
	s.r.Post("/auth/login", s.handleLogin)

	s.r.Group(func(r chi.Router) {
		r.Use(s.requireAuth)
		r.Post("/game/guess", s.handleGuess)
		r.Get("/game/next", s.handleNext)
		r.Get("/users/me/stats", s.handleStats)
		r.Get("/users/ranking", s.handleRanking)
	})

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"not_found"}`, http.StatusNotFound)
	})
	return s
}

// ServeHTTP makes Server an http.Handler (handy with httptest.NewServer).
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { s.r.ServeHTTP(w, r) }

// Hits reports how many requests reached method+path.
func (s *Server) Hits(method, path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[method+" "+path]
}

// TotalHits reports how many requests reached the server at all.
func (s *Server) TotalHits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, v := range s.hits {
		n += v
	}
	return n
}

// AddUser registers an account directly, bypassing HTTP.
func (s *Server) AddUser(username, password string) error {
	h, err := hashPassword(password)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[strings.ToLower(username)] = &user{ID: genID(), Username: username, PasswordHash: h}
	return nil
}

// SetRecord overwrites a user's counters; used to seed rankings.
func (s *Server) SetRecord(username string, games, victories int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u := s.users[strings.ToLower(username)]; u != nil {
		u.Games, u.Victories = games, victories
	}
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

func (s *Server) countHits(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.hits[r.Method+" "+r.URL.Path]++
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

// ------------------------------- AUTH --------------------------------------

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var body credentials
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, `{"message":"invalid_json"}`, http.StatusBadRequest)
		return
	}
	body.Username = strings.TrimSpace(body.Username)
	if len(body.Username) < 3 || len(body.Password) < 3 {
		http.Error(w, `{"message":"username and password must have at least 3 characters"}`, http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	_, taken := s.users[strings.ToLower(body.Username)]
	s.mu.Unlock()
	if taken {
		http.Error(w, `{"message":"username taken"}`, http.StatusConflict)
		return
	}
	if err := s.AddUser(body.Username, body.Password); err != nil {
		http.Error(w, `{"message":"register_failed"}`, http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": "user registered"})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body credentials
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, `{"message":"invalid_json"}`, http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	u := s.users[strings.ToLower(strings.TrimSpace(body.Username))]
	s.mu.Unlock()
	if u == nil || !checkPassword(u.PasswordHash, body.Password) {
		http.Error(w, `{"message":"invalid credentials"}`, http.StatusUnauthorized)
		return
	}
	tok, err := s.signJWT(u)
	if err != nil {
		http.Error(w, `{"message":"sign_failed"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]string{"access_token": tok})
}

// ------------------------------ GAME ---------------------------------------

type guessReq struct {
	Guess string `json:"guess"`
}

type cell struct {
	Letter string `json:"letter"`
	Value  int    `json:"value"`
}

type guessRes struct {
	Result  []cell `json:"result"`
	Message string `json:"message,omitempty"`
	Won     bool   `json:"won"`
}

func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"message":"bad_json"}`, http.StatusBadRequest)
		return
	}
	guess := strings.ToLower(strings.TrimSpace(req.Guess))
	if len(guess) != 5 || !isAlpha(guess) {
		_ = json.NewEncoder(w).Encode(MsgBadLength)
		return
	}

	me := currentUser(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	g := me.round
	if g == nil {
		g = s.newRoundLocked()
		me.round = g
	}
	if g.Finished {
		msg := MsgNoTries
		if g.Won {
			msg = MsgRoundWon
		}
		_ = json.NewEncoder(w).Encode(msg)
		return
	}

	marks := scoreGuess(g.Answer, guess)
	g.Guesses++
	res := guessRes{Result: make([]cell, len(marks))}
	for i, m := range marks {
		res.Result[i] = cell{Letter: strings.ToUpper(guess[i : i+1]), Value: m}
	}

	switch {
	case allHit(marks):
		g.Finished, g.Won = true, true
		res.Won = true
		res.Message = "you guessed it!"
		bumpStats(me, true)
	case g.Guesses >= maxAttempts:
		g.Finished = true
		res.Message = "out of attempts, the word was " + strings.ToUpper(g.Answer)
		bumpStats(me, false)
	}
	_ = json.NewEncoder(w).Encode(res)
}

func (s *Server) handleNext(w http.ResponseWriter, r *http.Request) {
	me := currentUser(r)
	s.mu.Lock()
	me.round = s.newRoundLocked()
	s.mu.Unlock()
	_ = json.NewEncoder(w).Encode(map[string]string{"message": "new word ready"})
}

// newRoundLocked picks the next answer. Caller holds s.mu.
func (s *Server) newRoundLocked() *round {
	var ans string
	switch {
	case len(s.answers) > 1:
		ans, s.answers = s.answers[0], s.answers[1:]
	case len(s.answers) == 1:
		ans = s.answers[0]
	case len(s.words) > 0:
		ans = s.words[wordIndex(slotKey(s.clock.Now(), s.interval), s.salt, len(s.words))]
	default:
		ans = "crane"
	}
	return &round{Answer: ans}
}

// ------------------------------ USERS --------------------------------------

type statsRes struct {
	TotalGames     int `json:"totalGames"`
	TotalVictories int `json:"totalVictories"`
	TotalWins      int `json:"totalWins"`
	CurrentStreak  int `json:"currentStreak"`
	BestStreak     int `json:"bestStreak"`
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	me := currentUser(r)
	s.mu.Lock()
	res := statsRes{
		TotalGames:     me.Games,
		TotalVictories: me.Victories,
		TotalWins:      me.Victories,
		CurrentStreak:  me.Streak,
		BestStreak:     me.BestStreak,
	}
	s.mu.Unlock()
	_ = json.NewEncoder(w).Encode(res)
}

type rankRow struct {
	Username string `json:"username"`
	Wins     int    `json:"wins"`
}

func (s *Server) handleRanking(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	out := make([]rankRow, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, rankRow{Username: u.Username, Wins: u.Victories})
	}
	s.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Wins != out[j].Wins {
			return out[i].Wins > out[j].Wins
		}
		return out[i].Username < out[j].Username
	})
	if len(out) > rankingSize {
		out = out[:rankingSize]
	}
	_ = json.NewEncoder(w).Encode(out)
}

// bumpStats increments games played; updates victories and streaks.
func bumpStats(u *user, won bool) {
	u.Games++
	if won {
		u.Victories++
		u.Streak++
		if u.Streak > u.BestStreak {
			u.BestStreak = u.Streak
		}
	} else {
		u.Streak = 0
	}
}

// genID creates a 22-char URL-safe, crypto-random identifier (no padding).
func genID() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}
