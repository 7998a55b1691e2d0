package middleware

import (
	"log"
	"net/http"
	"strings"

	"mybnb/internal/common"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// AuthConfig selects how bearer tokens are verified. When JWKSURL is set the
// tokens are verified against the hosted auth provider's key set; otherwise
// Secret is used as an HMAC key. With neither set, auth is disabled and every
// request passes through anonymously. That mode exists for local development
// only.
type AuthConfig struct {
	JWKSURL string
	Secret  string
}

// JWTMiddleware validates bearer tokens and stores the subject and email
// claims on the request context. The subject claim must be a UUID.
func JWTMiddleware(cfg AuthConfig) echo.MiddlewareFunc {
	var jwks *keyfunc.JWKS
	if cfg.JWKSURL != "" {
		var err error
		jwks, err = keyfunc.Get(cfg.JWKSURL, keyfunc.Options{})
		if err != nil {
			log.Fatalf("Failed to load JWKS from %s: %v", cfg.JWKSURL, err)
		}
	}

	if jwks == nil && cfg.Secret == "" {
		log.Println("Auth disabled: no JWKS URL or JWT secret configured")
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return next
		}
	}

	keyFunc := func(token *jwt.Token) (interface{}, error) {
		if jwks != nil {
			return jwks.Keyfunc(token)
		}
		return []byte(cfg.Secret), nil
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing token")
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token format")
			}

			token, err := jwt.Parse(tokenString, keyFunc)
			if err != nil || !token.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid claims")
			}

			sub, ok := claims["sub"].(string)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing subject in token")
			}
			userID, err := uuid.Parse(sub)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid subject format")
			}

			ctx := common.WithUserID(c.Request().Context(), userID)
			if email, ok := claims["email"].(string); ok {
				ctx = common.WithUserEmail(ctx, email)
			}
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}
