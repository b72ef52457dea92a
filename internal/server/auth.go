package server

import (
	"log/slog"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// TokenVerifier checks bearer tokens against a set of bcrypt hashes. With no
// hashes configured any bearer token passes, for local development only.
type TokenVerifier struct {
	hashes [][]byte
}

// NewTokenVerifier builds a verifier from bcrypt hash strings.
func NewTokenVerifier(hashes []string) *TokenVerifier {
	v := &TokenVerifier{}
	for _, h := range hashes {
		v.hashes = append(v.hashes, []byte(h))
	}
	if len(v.hashes) == 0 {
		slog.Warn("no api tokens configured, any bearer token is accepted")
	}
	return v
}

// Verify reports whether the token matches any configured hash.
func (v *TokenVerifier) Verify(token string) bool {
	if len(v.hashes) == 0 {
		return true
	}
	for _, h := range v.hashes {
		if bcrypt.CompareHashAndPassword(h, []byte(token)) == nil {
			return true
		}
	}
	return false
}

// Authorize extracts and checks the bearer token on a request. A missing
// bearer header is always unauthorized.
func (v *TokenVerifier) Authorize(r *http.Request) bool {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok || token == "" {
		return false
	}
	return v.Verify(token)
}
