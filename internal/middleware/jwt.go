package middleware // middleware provides shared request processing for handlers

import (
	"net/http" // HTTP status codes for responses
	"strings"  // string utilities for prefix checking and trimming

	"github.com/golang-jwt/jwt/v5" // JWT library for parsing and validating tokens
	"github.com/labstack/echo/v4"  // Echo framework used for defining middleware and handlers
)

// JWTAuth returns an Echo middleware that validates a Bearer access token
// and injects the token's claims into the request context. The provided
// secret must match the one used when issuing tokens. Handlers behind
// this middleware read the authenticated identity via c.Get("user_id")
// (uint64), c.Get("role") (string) and c.Get("station_id") (uint64, zero
// when the user is not assigned to a station).
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// A valid header starts with "Bearer " followed by the JWT.
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			// Parse with HS256 and our secret; reject any other signing
			// method before the key is handed to the library.
			tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.ErrUnauthorized
				}
				return []byte(secret), nil
			})
			if err != nil || !tok.Valid {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}

			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid claims"})
			}

			// JWT numbers decode as float64; convert once here so every
			// handler sees typed values.
			c.Set("user_id", claimUint64(claims, "sub"))
			if role, ok := claims["role"].(string); ok {
				c.Set("role", role)
			}
			c.Set("station_id", claimUint64(claims, "station_id"))
			return next(c)
		}
	}
}

// claimUint64 reads a numeric claim, tolerating the float64 representation
// the jwt library produces. Missing or non-numeric claims yield zero.
func claimUint64(claims jwt.MapClaims, key string) uint64 {
	if v, ok := claims[key].(float64); ok && v > 0 {
		return uint64(v)
	}
	return 0
}
