package router // package router defines how HTTP routes are registered for the API

import (
    "github.com/labstack/echo/v4"

    "github.com/GROUP-E-AWAP/Filmpass/internal/handler"
    "github.com/GROUP-E-AWAP/Filmpass/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication
// on the provided Echo instance. Currently it exposes only a health
// check used by load balancers and monitoring.
func RegisterRoutes(e *echo.Echo) {
    e.GET("/healthz", handler.Health)
}

// RegisterAuth registers authentication routes and the protected
// profile endpoint. Unauthenticated operations live under /v1/auth;
// /v1/me requires a valid access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
    g := e.Group("/v1/auth")
    g.POST("/register", a.Register)
    g.POST("/login", a.Login)
    g.POST("/refresh", a.Refresh)
    g.POST("/logout", a.Logout)

    auth := e.Group("/v1")
    auth.Use(middleware.JWTAuth(jwtSecret))
    auth.Use(middleware.RequireRole("CUSTOMER", "ADMIN"))
    auth.GET("/me", a.Me)
    auth.POST("/auth/logout_all", a.LogoutAll)
}

// RegisterCatalog registers the public browse endpoints. The extra
// middlewares (typically the Redis response cache) apply to all of
// them; the catalog is read-only so caching is safe.
func RegisterCatalog(e *echo.Echo, h *handler.CatalogHandler, mw ...echo.MiddlewareFunc) {
    g := e.Group("/v1", mw...)
    g.GET("/movies", h.ListMovies)
    g.GET("/movies/:id", h.GetMovie)
    g.GET("/search/movies", h.SearchMovies)
    g.GET("/theaters", h.ListTheaters)
    g.GET("/theaters/:id/auditoriums", h.ListTheaterAuditoriums)
    g.GET("/showtimes/:id", h.GetShowtime)
    // Seat availability must reflect bookings immediately, so it is
    // registered outside the cached group.
    e.GET("/v1/showtimes/:id/seats", h.GetShowtimeSeats)
}
