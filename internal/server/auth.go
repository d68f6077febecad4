package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/golang-jwt/jwt/v5"
	"github.com/gravitas-games/lightsout/internal/config"
	"github.com/gravitas-games/lightsout/pkg/models"
)

// Authenticator turns connection credentials into a Player. With a
// configured secret it validates HS256 tokens and checks the Redis
// blacklist; without one every connection is admitted as a guest.
type Authenticator struct {
	config   *config.Config
	redis    *redis.Client
	guestSeq atomic.Int64
}

// Claims represents the JWT token claims the server accepts
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// NewAuthenticator creates an authenticator from the server config.
func NewAuthenticator(cfg *config.Config, redisClient *redis.Client) *Authenticator {
	if cfg.JWT.Secret == "" {
		log.Println("JWT secret not configured, running in guest mode")
	}
	return &Authenticator{config: cfg, redis: redisClient}
}

// Authenticate resolves the request to a player. It returns an error
// only when a token was supplied and failed validation; a missing
// token falls back to a guest identity when guest mode is on.
func (a *Authenticator) Authenticate(ctx context.Context, r *http.Request) (*models.Player, error) {
	tokenString := extractTokenFromHeader(r)

	if tokenString == "" {
		if a.config.JWT.Secret != "" {
			return nil, fmt.Errorf("missing authentication token")
		}
		return a.newGuest(), nil
	}
	if a.config.JWT.Secret == "" {
		return nil, fmt.Errorf("token supplied but authentication is not configured")
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(a.config.JWT.Secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	if a.config.JWT.Issuer != "" && claims.Issuer != a.config.JWT.Issuer {
		return nil, fmt.Errorf("invalid issuer: expected %s, got %s", a.config.JWT.Issuer, claims.Issuer)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("token has no subject")
	}

	// Tokens revoked before expiry land on the blacklist.
	blacklistKey := a.config.Redis.BlacklistPrefix + claims.Subject
	blacklisted, err := a.redis.Exists(ctx, blacklistKey).Result()
	if err != nil {
		log.Printf("Warning: failed to check blacklist: %v", err)
		// Don't fail authentication if Redis is down
	} else if blacklisted > 0 {
		return nil, fmt.Errorf("token is blacklisted")
	}

	username := claims.Username
	if username == "" {
		username = claims.Subject
	}

	return &models.Player{
		ID:          claims.Subject,
		Username:    username,
		Connected:   true,
		ConnectedAt: time.Now(),
	}, nil
}

// newGuest mints a throwaway identity for an unauthenticated player.
func (a *Authenticator) newGuest() *models.Player {
	n := a.guestSeq.Add(1)
	return &models.Player{
		ID:          fmt.Sprintf("guest-%d-%d", time.Now().Unix(), n),
		Username:    fmt.Sprintf("guest%d", n),
		Guest:       true,
		Connected:   true,
		ConnectedAt: time.Now(),
	}
}

// extractTokenFromHeader extracts a JWT token from the request
func extractTokenFromHeader(r *http.Request) string {
	// Sec-WebSocket-Protocol: "access_token, <token>"
	if protocols := r.Header.Get("Sec-WebSocket-Protocol"); protocols != "" {
		parts := strings.Split(protocols, ",")
		if len(parts) == 2 && strings.TrimSpace(parts[0]) == "access_token" {
			return strings.TrimSpace(parts[1])
		}
	}

	if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}

	return r.URL.Query().Get("token")
}
