package auth

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenSource yields the bearer token for an outgoing request. An empty
// token with a nil error means the request goes out unauthenticated.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

type staticSource string

func (s staticSource) Token(context.Context) (string, error) {
	return string(s), nil
}

// Static returns a TokenSource that always yields the given token.
func Static(token string) TokenSource {
	return staticSource(token)
}

// None returns a TokenSource for anonymous access.
func None() TokenSource {
	return staticSource("")
}

// DefaultTTL is how long an opaque (non-JWT) token is cached before the
// backing file is re-read.
const DefaultTTL = 5 * time.Minute

// expirySkew is subtracted from a JWT exp claim so a token is refreshed
// shortly before the backend would reject it.
const expirySkew = 30 * time.Second

// FileSource reads a bearer token from a file and caches it. If the token
// parses as a JWT its exp claim drives cache invalidation; opaque tokens
// are cached for a fixed TTL. Safe for concurrent use.
type FileSource struct {
	path string
	ttl  time.Duration
	now  func() time.Time

	mu     sync.Mutex
	token  string
	expiry time.Time
}

// FileOption configures a FileSource.
type FileOption func(*FileSource)

// WithTTL sets the cache TTL for opaque tokens.
func WithTTL(ttl time.Duration) FileOption {
	return func(f *FileSource) {
		if ttl > 0 {
			f.ttl = ttl
		}
	}
}

// NewFileSource creates a TokenSource backed by a token file.
func NewFileSource(path string, opts ...FileOption) *FileSource {
	f := &FileSource{
		path: path,
		ttl:  DefaultTTL,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Token returns the cached token, re-reading the file once the cached
// value has expired.
func (f *FileSource) Token(ctx context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.token != "" && f.now().Before(f.expiry) {
		return f.token, nil
	}

	data, err := os.ReadFile(f.path)
	if err != nil {
		return "", fmt.Errorf("failed to read token file: %w", err)
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", fmt.Errorf("token file %s is empty", f.path)
	}

	f.token = token
	f.expiry = f.tokenExpiry(token)
	return token, nil
}

// tokenExpiry derives the cache deadline for a token.
func (f *FileSource) tokenExpiry(token string) time.Time {
	if exp, ok := jwtExpiry(token); ok {
		return exp.Add(-expirySkew)
	}
	return f.now().Add(f.ttl)
}

// jwtExpiry extracts the exp claim from a JWT without verifying its
// signature. Verification is the backend's job; the claim is only used to
// time cache refreshes.
func jwtExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
