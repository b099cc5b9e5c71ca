package http

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/logger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const actorContextKey = "logistics.actor"

var jwtSigningMethod = jwt.SigningMethodHS256

// JWTConfig holds the shared secret of the identity provider.
type JWTConfig struct {
	Secret string
	Issuer string
	TTL    time.Duration
}

// Claims is the bearer token payload. Subject carries the caller identity; StoreID is
// absent for cross-store admins.
type Claims struct {
	Role    string  `json:"role"`
	StoreID *string `json:"store_id,omitempty"`
	jwt.RegisteredClaims
}

// MintToken signs a token for the given identity. It backs local tooling and tests;
// production tokens come from the identity provider.
func MintToken(cfg JWTConfig, now time.Time, subject string, role kernel.ActorRole, storeID *kernel.UUID) (string, error) {
	if cfg.Secret == "" {
		return "", errors.New("jwt secret is required")
	}
	if !role.IsValid() {
		return "", fmt.Errorf("invalid role %q", role)
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = time.Hour
	}

	claims := Claims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	if storeID != nil {
		s := storeID.String()
		claims.StoreID = &s
	}

	signed, err := jwt.NewWithClaims(jwtSigningMethod, claims).SignedString([]byte(cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("signing jwt: %w", err)
	}
	return signed, nil
}

// ParseToken validates signature, issuer and expiry.
func ParseToken(cfg JWTConfig, raw string) (*Claims, error) {
	if cfg.Secret == "" {
		return nil, errors.New("jwt secret is required")
	}

	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwtSigningMethod.Alg()})}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (any, error) {
		if token.Method != jwtSigningMethod {
			return nil, fmt.Errorf("unexpected signing method %s", token.Header["alg"])
		}
		return []byte(cfg.Secret), nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// Actor turns the claims into the domain identity.
func (c *Claims) Actor() (kernel.Actor, error) {
	role, err := kernel.ParseActorRole(c.Role)
	if err != nil {
		return kernel.Actor{}, err
	}
	var storeID *kernel.UUID
	if c.StoreID != nil && *c.StoreID != "" {
		id, parseErr := kernel.UUIDFromString(*c.StoreID)
		if parseErr != nil {
			return kernel.Actor{}, parseErr
		}
		storeID = &id
	}
	return kernel.NewActor(c.Subject, role, storeID)
}

// Authenticate resolves the bearer token into an actor stored on the echo context.
func Authenticate(cfg JWTConfig, logg *logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := strings.TrimSpace(c.Request().Header.Get(echo.HeaderAuthorization))
			if len(raw) > 7 && strings.EqualFold(raw[:7], "bearer ") {
				raw = strings.TrimSpace(raw[7:])
			} else {
				raw = ""
			}
			if raw == "" {
				return newError(CodeUnauthorized, "missing credentials")
			}

			claims, err := ParseToken(cfg, raw)
			if err != nil {
				return wrapError(CodeUnauthorized, err, "invalid token")
			}
			actor, err := claims.Actor()
			if err != nil {
				return wrapError(CodeUnauthorized, err, "invalid identity claims")
			}

			c.Set(actorContextKey, actor)

			if logg != nil {
				ctx := logg.WithActorRole(c.Request().Context(), string(actor.Role()))
				if storeID := actor.StoreID(); storeID != nil {
					ctx = logg.WithStoreID(ctx, storeID.String())
				}
				c.SetRequest(c.Request().WithContext(ctx))
			}
			return next(c)
		}
	}
}

func actorFrom(c echo.Context) (kernel.Actor, error) {
	actor, ok := c.Get(actorContextKey).(kernel.Actor)
	if !ok {
		return kernel.Actor{}, newError(CodeUnauthorized, "missing credentials")
	}
	return actor, nil
}

// requireCrossStore guards rail operations, which are not bound to a store.
func requireCrossStore(actor kernel.Actor) error {
	if !actor.IsCrossStore() {
		return newError(CodeForbidden, "operation requires the admin role")
	}
	return nil
}
