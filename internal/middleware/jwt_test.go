package middleware_test

import (
    "net/http"
    "net/http/httptest"
    "testing"

    "github.com/labstack/echo/v4"

    "github.com/GROUP-E-AWAP/Filmpass/internal/middleware"
    "github.com/GROUP-E-AWAP/Filmpass/internal/service"
    "github.com/GROUP-E-AWAP/Filmpass/internal/utils"
)

const testSecret = "test-secret"

// invokeClaim runs a request through mw and returns the claim the
// wrapped handler observed, or a non-200 status on rejection.
func invokeClaim(t *testing.T, mw echo.MiddlewareFunc, authorization string) (*service.Claim, int) {
    t.Helper()
    e := echo.New()
    req := httptest.NewRequest(http.MethodGet, "/", nil)
    if authorization != "" {
        req.Header.Set("Authorization", authorization)
    }
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)

    var claim *service.Claim
    handler := mw(func(c echo.Context) error {
        claim = middleware.ClaimFrom(c)
        return c.NoContent(http.StatusOK)
    })
    if err := handler(c); err != nil {
        t.Fatalf("handler: %v", err)
    }
    return claim, rec.Code
}

func TestJWTAuthRejects(t *testing.T) {
    cases := []struct {
        name string
        auth string
    }{
        {"no header", ""},
        {"wrong scheme", "Basic abc"},
        {"garbage token", "Bearer not.a.token"},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            claim, code := invokeClaim(t, middleware.JWTAuth(testSecret), tc.auth)
            if code != http.StatusUnauthorized {
                t.Fatalf("status = %d, want 401", code)
            }
            if claim != nil {
                t.Fatalf("claim = %+v, want nil", claim)
            }
        })
    }
}

func TestJWTAuthRejectsWrongSecret(t *testing.T) {
    tok, err := utils.NewAccessToken("other-secret", 7, "ada@example.com", "CUSTOMER", 15)
    if err != nil {
        t.Fatalf("NewAccessToken: %v", err)
    }
    _, code := invokeClaim(t, middleware.JWTAuth(testSecret), "Bearer "+tok.Token)
    if code != http.StatusUnauthorized {
        t.Fatalf("status = %d, want 401", code)
    }
}

func TestJWTAuthAcceptsValidToken(t *testing.T) {
    tok, err := utils.NewAccessToken(testSecret, 7, "ada@example.com", "CUSTOMER", 15)
    if err != nil {
        t.Fatalf("NewAccessToken: %v", err)
    }
    claim, code := invokeClaim(t, middleware.JWTAuth(testSecret), "Bearer "+tok.Token)
    if code != http.StatusOK {
        t.Fatalf("status = %d, want 200", code)
    }
    if claim == nil || claim.UserID != 7 || claim.Email != "ada@example.com" {
        t.Fatalf("claim = %+v, want user 7 with email", claim)
    }
}

func TestOptionalJWTAuth(t *testing.T) {
    t.Run("no token passes through", func(t *testing.T) {
        claim, code := invokeClaim(t, middleware.OptionalJWTAuth(testSecret), "")
        if code != http.StatusOK {
            t.Fatalf("status = %d, want 200", code)
        }
        if claim != nil {
            t.Fatalf("claim = %+v, want nil", claim)
        }
    })
    t.Run("invalid token passes through unauthenticated", func(t *testing.T) {
        claim, code := invokeClaim(t, middleware.OptionalJWTAuth(testSecret), "Bearer junk")
        if code != http.StatusOK {
            t.Fatalf("status = %d, want 200", code)
        }
        if claim != nil {
            t.Fatalf("claim = %+v, want nil", claim)
        }
    })
    t.Run("valid token yields claim", func(t *testing.T) {
        tok, err := utils.NewAccessToken(testSecret, 7, "ada@example.com", "CUSTOMER", 15)
        if err != nil {
            t.Fatalf("NewAccessToken: %v", err)
        }
        claim, code := invokeClaim(t, middleware.OptionalJWTAuth(testSecret), "Bearer "+tok.Token)
        if code != http.StatusOK {
            t.Fatalf("status = %d, want 200", code)
        }
        if claim == nil || claim.UserID != 7 {
            t.Fatalf("claim = %+v, want user 7", claim)
        }
    })
}
