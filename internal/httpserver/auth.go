// internal/httpserver/auth.go
//
// Admin authentication.
// There is a single admin identity: POST /auth/token checks a password
// against the bcrypt hash from the configuration and returns an HS256 JWT.
// requireAuth guards routes that spend real CPU, such as batch runs.

package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

const adminSubject = "admin"

// ctxSubjectKey is the context key type for the authenticated subject.
type ctxSubjectKey struct{}

// HashPassword returns a bcrypt hash suitable for ADMIN_PASSWORD_HASH.
func HashPassword(pw string) (string, error) {
	if len(pw) < 8 || len(pw) > 72 {
		return "", errors.New("password must be 8–72 chars")
	}
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	return string(b), err
}

// checkPassword is a bcrypt verifier.
func checkPassword(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}

func (s *Server) mountAuth() {
	s.r.Post("/auth/token", s.handleToken)
}

type tokenReq struct {
	Password string `json:"password"`
}

type tokenRes struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// handleToken exchanges the admin password for a bearer token.
func (s *Server) handleToken(w http.ResponseWriter, r *http.Request) {
	if s.opts.AdminPasswordHash == "" {
		writeError(w, http.StatusServiceUnavailable, "auth_disabled")
		return
	}
	var req tokenReq
	if !decode(w, r, &req) {
		return
	}
	if !checkPassword(s.opts.AdminPasswordHash, req.Password) {
		log.Warn().Str("ip", r.RemoteAddr).Msg("bad admin password")
		writeError(w, http.StatusUnauthorized, "invalid_password")
		return
	}
	tok, exp, err := s.signJWT(adminSubject)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "sign_failed")
		return
	}
	writeJSON(w, http.StatusOK, tokenRes{Token: tok, ExpiresAt: exp})
}

// signJWT creates an HS256 JWT for sub with the configured expiry.
func (s *Server) signJWT(sub string) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(s.opts.JWTExpires)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   sub,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	ss, err := t.SignedString([]byte(s.opts.JWTSecret))
	return ss, exp, err
}

// bearer extracts a bearer token from the Authorization header.
func bearer(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	return ""
}

// requireAuth enforces a valid admin JWT and puts its subject into the request context.
func (s *Server) requireAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := bearer(r)
			if tokenStr == "" {
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			var claims jwt.RegisteredClaims
			token, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
				return []byte(s.opts.JWTSecret), nil
			}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
			if err != nil || !token.Valid || claims.Subject != adminSubject {
				writeError(w, http.StatusUnauthorized, "invalid_token")
				return
			}
			ctx := context.WithValue(r.Context(), ctxSubjectKey{}, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
