package middleware // middleware provides reusable HTTP middleware functions

import (
    "net/http"
    "strings"

    "github.com/golang-jwt/jwt/v5"
    "github.com/labstack/echo/v4"

    "github.com/GROUP-E-AWAP/Filmpass/internal/service"
)

// Context keys under which verified claim values are stored. The
// booking core never parses tokens itself; it consumes the claim
// these middlewares produce.
const (
    ctxUserID = "user_id"
    ctxEmail  = "email"
    ctxRole   = "role"
)

// JWTAuth returns an Echo middleware that validates a Bearer access
// token and injects the token's subject, email and role claims into
// the request context. Requests without a valid token are rejected
// with 401.
func JWTAuth(secret string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            auth := c.Request().Header.Get("Authorization")
            if !strings.HasPrefix(auth, "Bearer ") {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
            }
            claim, ok := verify(strings.TrimPrefix(auth, "Bearer "), secret)
            if !ok {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
            }
            setClaim(c, claim)
            return next(c)
        }
    }
}

// OptionalJWTAuth is like JWTAuth but never rejects: a missing or
// invalid token is treated the same as no claim, so the request
// proceeds unauthenticated. Guest bookings rely on this.
func OptionalJWTAuth(secret string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            auth := c.Request().Header.Get("Authorization")
            if strings.HasPrefix(auth, "Bearer ") {
                if claim, ok := verify(strings.TrimPrefix(auth, "Bearer "), secret); ok {
                    setClaim(c, claim)
                }
            }
            return next(c)
        }
    }
}

type contextClaim struct {
    userID uint64
    email  string
    role   string
}

// verify parses and validates an HS256 token and extracts the claim
// values this application issues.
func verify(raw, secret string) (contextClaim, bool) {
    tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
        if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
            return nil, echo.ErrUnauthorized
        }
        return []byte(secret), nil
    })
    if err != nil || !tok.Valid {
        return contextClaim{}, false
    }
    claims, ok := tok.Claims.(jwt.MapClaims)
    if !ok {
        return contextClaim{}, false
    }
    var out contextClaim
    // The sub claim round-trips through JSON as float64.
    switch v := claims["sub"].(type) {
    case float64:
        out.userID = uint64(v)
    case uint64:
        out.userID = v
    }
    if out.userID == 0 {
        return contextClaim{}, false
    }
    out.email, _ = claims["email"].(string)
    out.role, _ = claims["role"].(string)
    return out, true
}

func setClaim(c echo.Context, claim contextClaim) {
    c.Set(ctxUserID, claim.userID)
    c.Set(ctxEmail, claim.email)
    c.Set(ctxRole, claim.role)
}

// ClaimFrom returns the verified identity stored by JWTAuth or
// OptionalJWTAuth, or nil when the request is unauthenticated.
func ClaimFrom(c echo.Context) *service.Claim {
    id, ok := c.Get(ctxUserID).(uint64)
    if !ok || id == 0 {
        return nil
    }
    email, _ := c.Get(ctxEmail).(string)
    return &service.Claim{UserID: id, Email: email}
}
