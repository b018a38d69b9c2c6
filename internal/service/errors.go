// Package service implements the booking core: identity resolution,
// seat availability, and the transactional booking engine. The error
// values below let handlers distinguish bad requests, missing
// entities, and lost seat races; anything else maps to an internal
// failure.
package service

import (
    "errors"
    "fmt"
    "strconv"
    "strings"
)

// ErrInvalidInput marks a malformed or incomplete request: empty
// seat list, missing showtime, no identity path. Handlers should
// translate this into an HTTP 400 response.
var ErrInvalidInput = errors.New("invalid input")

// ErrShowtimeNotFound is returned when a referenced showtime does
// not exist. Availability queries surface it as 404; the booking
// engine treats an unknown showtime as invalid input instead.
var ErrShowtimeNotFound = errors.New("showtime not found")

// ErrUserNotFound is returned by user directories when no account
// matches the given email or id.
var ErrUserNotFound = errors.New("user not found")

// ErrEmailExists signals a duplicate email on user insert. The
// identity resolver uses it to detect a lost guest-creation race.
var ErrEmailExists = errors.New("email already exists")

// ErrSeatTaken is the store-level signal that inserting booking
// seats violated the (showtime, seat) uniqueness guard. The engine
// converts it into a SeatConflictError.
var ErrSeatTaken = errors.New("seat already booked")

// SeatConflictError reports which requested seats lost the race
// against another confirmed booking. Handlers translate it into an
// HTTP 409 response listing the conflicting seat ids.
type SeatConflictError struct {
    SeatIDs []uint64
}

func (e *SeatConflictError) Error() string {
    if len(e.SeatIDs) == 0 {
        return "seats already booked"
    }
    parts := make([]string, 0, len(e.SeatIDs))
    for _, id := range e.SeatIDs {
        parts = append(parts, strconv.FormatUint(id, 10))
    }
    return fmt.Sprintf("seats already booked: %s", strings.Join(parts, ", "))
}
