/*
Copyright 2025 the MrHotel Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package fake

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionCookieName is the cookie set by a successful login.
const SessionCookieName = ".AspNetCore.Identity.Application"

var (
	ErrNoCredentials = errors.New("no session cookie or bearer token")
	ErrRevoked       = errors.New("session revoked")
)

type sessionClaims struct {
	Admin bool `json:"admin,omitempty"`

	jwt.RegisteredClaims
}

// Principal is the authenticated user attached to a request context.
type Principal struct {
	UserName  string
	Admin     bool
	SessionID string
}

type principalKeyType int

//nolint:gochecknoglobals
var principalKey principalKeyType

func newContextWithPrincipal(ctx context.Context, principal *Principal) context.Context {
	return context.WithValue(ctx, principalKey, principal)
}

// PrincipalFromContext returns the authenticated user, if any.
func PrincipalFromContext(ctx context.Context) (*Principal, bool) {
	principal, ok := ctx.Value(principalKey).(*Principal)

	return principal, ok
}

// sessionIssuer mints and verifies HS256 session tokens.
type sessionIssuer struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

func (s *sessionIssuer) issue(userName string, admin bool) (string, time.Time, error) {
	now := s.now()
	expires := now.Add(s.ttl)

	claims := &sessionClaims{
		Admin: admin,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userName,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign session: %w", err)
	}

	return token, expires, nil
}

func (s *sessionIssuer) parse(token string) (*Principal, error) {
	claims := &sessionClaims{}

	keyFunc := func(*jwt.Token) (any, error) {
		return s.key, nil
	}

	if _, err := jwt.ParseWithClaims(token, claims, keyFunc, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now)); err != nil {
		return nil, err
	}

	principal := &Principal{
		UserName:  claims.Subject,
		Admin:     claims.Admin,
		SessionID: claims.ID,
	}

	return principal, nil
}

// tokenFromRequest prefers an explicit bearer token over the cookie.
func tokenFromRequest(r *http.Request) (string, error) {
	if header := r.Header.Get("Authorization"); header != "" {
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			return "", fmt.Errorf("%w: malformed authorization header", ErrNoCredentials)
		}

		return token, nil
	}

	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return "", ErrNoCredentials
	}

	return cookie.Value, nil
}
