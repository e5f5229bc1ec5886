package fakebackend

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// ctxUserKey is the context key type for storing the authenticated *user.
type ctxUserKey struct{}

// signJWT creates an HS256 JWT with sub/username and a 14 day expiry.
func (s *Server) signJWT(u *user) (string, error) {
	now := s.clock.Now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      u.ID,
		"username": u.Username,
		"exp":      now.Add(14 * 24 * time.Hour).Unix(),
		"iat":      now.Unix(),
	})
	return t.SignedString(s.secret)
}

func hashPassword(pw string) (string, error) {
	// Test accounts only.
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.MinCost)
	return string(b), err
}

func checkPassword(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}

// bearer extracts the token from "Authorization: Bearer <token>".
func bearer(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	return ""
}

// requireAuth enforces a valid JWT and injects the user into request context.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr := bearer(r)
		if tokenStr == "" {
			http.Error(w, `{"message":"Unauthorized"}`, http.StatusUnauthorized)
			return
		}
		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			return s.secret, nil
		}, jwt.WithTimeFunc(s.clock.Now), jwt.WithValidMethods([]string{"HS256"}))
		if err != nil || !token.Valid {
			http.Error(w, `{"message":"Invalid token"}`, http.StatusUnauthorized)
			return
		}
		username, _ := claims["username"].(string)

		// Ensure user still exists
		s.mu.Lock()
		u := s.users[strings.ToLower(username)]
		s.mu.Unlock()
		if u == nil {
			http.Error(w, `{"message":"Invalid token"}`, http.StatusUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), ctxUserKey{}, u)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func currentUser(r *http.Request) *user {
	u, _ := r.Context().Value(ctxUserKey{}).(*user)
	return u
}
