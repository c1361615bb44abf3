package client

import (
	"context"
	"strings"
	"time"

	"github.com/dmitrijs2005/cbuclub/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// TokenStore is the slice of durable storage the client needs for the
// cached bearer token. storage.Storage satisfies it.
type TokenStore interface {
	GetItem(ctx context.Context, key string) ([]byte, error)
	SetItem(ctx context.Context, key string, value []byte) error
	RemoveItems(ctx context.Context, keys ...string) error
}

// bearerToken returns the cached token, dropping it once expired. Storage
// errors only cost the header.
func (c *HTTPClient) bearerToken(ctx context.Context) string {
	if c.tokens == nil {
		return ""
	}
	b, err := c.tokens.GetItem(ctx, common.AccessTokenStorageKey)
	if err != nil {
		c.log.Warn(ctx, "reading cached token failed", "error", err)
		return ""
	}
	tok := strings.TrimSpace(string(b))
	if tok == "" {
		return ""
	}
	if tokenExpired(tok, c.now()) {
		c.log.Debug(ctx, "cached token expired")
		if err := c.tokens.RemoveItems(ctx, common.AccessTokenStorageKey); err != nil {
			c.log.Warn(ctx, "removing expired token failed", "error", err)
		}
		return ""
	}
	return tok
}

func (c *HTTPClient) rememberToken(ctx context.Context, header string) {
	tok := parseBearer(header)
	if c.tokens == nil || tok == "" {
		return
	}
	if err := c.tokens.SetItem(ctx, common.AccessTokenStorageKey, []byte(tok)); err != nil {
		c.log.Warn(ctx, "caching token failed", "error", err)
	}
}

// replaceToken is rememberToken for a new identity: without a fresh token
// the cached one belongs to someone else and is removed.
func (c *HTTPClient) replaceToken(ctx context.Context, header string) {
	if c.tokens == nil {
		return
	}
	if parseBearer(header) != "" {
		c.rememberToken(ctx, header)
		return
	}
	if err := c.tokens.RemoveItems(ctx, common.AccessTokenStorageKey); err != nil {
		c.log.Warn(ctx, "removing previous token failed", "error", err)
	}
}

func parseBearer(header string) string {
	if !strings.HasPrefix(header, bearerPrefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
}

// tokenExpired inspects the exp claim without verifying the signature; the
// backend remains the authority. Opaque (non-JWT) tokens never expire here.
func tokenExpired(tok string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tok, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return !exp.After(now)
}
