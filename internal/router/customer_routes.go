package router

import (
    "github.com/labstack/echo/v4"

    "github.com/GROUP-E-AWAP/Filmpass/internal/handler"
    "github.com/GROUP-E-AWAP/Filmpass/internal/middleware"
)

// RegisterBooking wires the booking endpoints. Creation uses the
// optional JWT middleware so both authenticated customers and guests
// (identified by email in the body) can book; the rate limiter keeps
// a single client from hammering the contended seat inventory.
// Listing and retrieval expose personal data and therefore require a
// valid token.
func RegisterBooking(e *echo.Echo, h *handler.BookingHandler, jwtSecret string, limiter echo.MiddlewareFunc) {
    create := e.Group("/v1/bookings")
    create.Use(middleware.OptionalJWTAuth(jwtSecret))
    if limiter != nil {
        create.Use(limiter)
    }
    create.POST("", h.CreateBooking)

    mine := e.Group("/v1/bookings")
    mine.Use(middleware.JWTAuth(jwtSecret))
    mine.Use(middleware.RequireRole("CUSTOMER", "ADMIN"))
    mine.GET("", h.ListMyBookings)
    mine.GET("/:id", h.GetMyBooking)
}
