package model

import "time"

// Booking status values. Bookings are created directly into
// CONFIRMED; CANCELLED is reserved for a future cancellation flow.
const (
    BookingStatusConfirmed = "CONFIRMED"
    BookingStatusCancelled = "CANCELLED"
)

// Booking records a user's confirmed reservation of one or more
// seats for a single showtime.  Bookings are written atomically
// together with their BookingSeat rows and are never partially
// persisted.  Status is CONFIRMED on creation; CANCELLED exists in
// the schema for a future cancellation flow.
//
// Fields:
//  ID               – primary key identifier.
//  UserID           – user who owns the booking.
//  ShowtimeID       – showtime being booked.
//  Status           – CONFIRMED or CANCELLED.
//  TotalAmountCents – sum of the per-seat prices in cents.
//  CreatedAt        – creation timestamp.
type Booking struct {
    ID               uint64    // bookings.id
    UserID           uint64    // bookings.user_id
    ShowtimeID       uint64    // bookings.showtime_id
    Status           string    // bookings.status
    TotalAmountCents uint32    // bookings.total_amount_cents
    CreatedAt        time.Time // bookings.created_at
}

// BookingSeat is one seat line-item of a booking.  The pair
// (showtime_id, seat_id) carries a unique index so that a seat can
// belong to at most one booking per showtime.
//
// Fields:
//  ID         – primary key identifier.
//  BookingID  – reference to the owning booking.
//  ShowtimeID – showtime the seat is booked for (denormalized to
//               enforce the uniqueness guard).
//  SeatID     – seat that has been booked.
//  TicketType – ADULT or CHILD.
//  PriceCents – price charged for this seat in cents.
type BookingSeat struct {
    ID         uint64    // booking_seats.id
    BookingID  uint64    // booking_seats.booking_id
    ShowtimeID uint64    // booking_seats.showtime_id
    SeatID     uint64    // booking_seats.seat_id
    TicketType string    // booking_seats.ticket_type
    PriceCents uint32    // booking_seats.price_cents
    CreatedAt  time.Time // booking_seats.created_at
}
