// internal/api/types.go
//
// Wire payloads for the backend endpoints the client consumes.
//
//   POST /auth/login       credentials   → loginRes
//   POST /auth/register    credentials   → message (optional)
//   POST /game/guess       guessReq      → GuessResponse (string | GuessResult)
//   GET  /game/next                      → NextWord
//   GET  /users/me/stats                 → Stats
//   GET  /users/ranking                  → []RankingEntry

package api

import "github.com/robalobadob/wordle/apps/go-client/internal/game"

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginRes struct {
	AccessToken string `json:"access_token"`
}

type guessReq struct {
	Guess string `json:"guess"`
}

// GuessResult is the structured answer to an accepted guess.
type GuessResult struct {
	Result  game.Row `json:"result"`
	Message string   `json:"message,omitempty"`
	Won     bool     `json:"won,omitempty"`
}

// GuessResponse is the tagged union returned by POST /game/guess.
// Exactly one of Rejection or Result is meaningful: a backend that refuses
// a guess answers with a bare string instead of a GuessResult.
type GuessResponse struct {
	Rejection string
	Result    *GuessResult
}

// Rejected reports whether the backend refused the guess.
func (g GuessResponse) Rejected() bool { return g.Result == nil }

// NextWord is the answer to GET /game/next.
type NextWord struct {
	Message string `json:"message"`
}

// Stats mirrors GET /users/me/stats.
//
// TotalWins and TotalVictories are distinct fields on the wire and are
// never merged here.
type Stats struct {
	TotalGames     int `json:"totalGames"`
	TotalVictories int `json:"totalVictories"`
	TotalWins      int `json:"totalWins"`
	CurrentStreak  int `json:"currentStreak,omitempty"`
	BestStreak     int `json:"bestStreak,omitempty"`
}

// RankingEntry is one leaderboard row.
type RankingEntry struct {
	Username string `json:"username"`
	Wins     int    `json:"wins"`
}
