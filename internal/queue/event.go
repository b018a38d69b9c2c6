// Package queue defines message payloads exchanged over the message broker
// along with the publisher and the background consumer.
package queue

// BookingConfirmedEvent is published after a booking transaction
// commits. It carries enough for downstream consumers to log or
// notify without querying the primary database. Publication happens
// outside the transaction and is best-effort.
type BookingConfirmedEvent struct {
    BookingID        uint64   `json:"booking_id"`
    UserID           uint64   `json:"user_id"`
    ShowtimeID       uint64   `json:"showtime_id"`
    MovieTitle       string   `json:"movie_title"`
    SeatLabels       []string `json:"seats"`
    TotalAmountCents uint32   `json:"total_amount_cents"`
    ConfirmedAt      string   `json:"confirmed_at"`
}
