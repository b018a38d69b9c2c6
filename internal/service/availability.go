package service

import (
    "context"
    "sort"

    "github.com/GROUP-E-AWAP/Filmpass/internal/model"
)

// Seat statuses reported to clients. A seat is BOOKED for a showtime
// iff a confirmed booking holds it; everything else is AVAILABLE.
const (
    SeatAvailable = "AVAILABLE"
    SeatBooked    = "BOOKED"
)

// SeatAvailability is one row of the availability result.
type SeatAvailability struct {
    SeatID     uint64 `json:"seat_id"`
    RowLabel   string `json:"row_label"`
    SeatNumber uint32 `json:"seat_number"`
    Status     string `json:"status"`
}

// AvailabilityStore is the read surface the calculator needs.
// ShowtimeAuditorium returns ErrShowtimeNotFound when the showtime
// does not exist or has no assigned auditorium.
type AvailabilityStore interface {
    ShowtimeAuditorium(ctx context.Context, showtimeID uint64) (uint64, error)
    AuditoriumSeats(ctx context.Context, auditoriumID uint64) ([]model.Seat, error)
    BookedSeatIDs(ctx context.Context, showtimeID uint64) (map[uint64]struct{}, error)
}

// AvailabilityCalculator computes the booked/available status of
// every seat in a showtime's auditorium. It mutates nothing, so
// repeated calls with no intervening bookings return identical
// results.
type AvailabilityCalculator struct {
    store AvailabilityStore
}

func NewAvailabilityCalculator(store AvailabilityStore) *AvailabilityCalculator {
    if store == nil {
        panic("nil store passed to NewAvailabilityCalculator")
    }
    return &AvailabilityCalculator{store: store}
}

// SeatsForShowtime returns the status of every seat in the showtime's
// auditorium, ordered by row label (lexicographic) then seat number
// (numeric) for deterministic rendering.
func (s *AvailabilityCalculator) SeatsForShowtime(ctx context.Context, showtimeID uint64) ([]SeatAvailability, error) {
    auditoriumID, err := s.store.ShowtimeAuditorium(ctx, showtimeID)
    if err != nil {
        return nil, err
    }
    seats, err := s.store.AuditoriumSeats(ctx, auditoriumID)
    if err != nil {
        return nil, err
    }
    booked, err := s.store.BookedSeatIDs(ctx, showtimeID)
    if err != nil {
        return nil, err
    }

    out := make([]SeatAvailability, 0, len(seats))
    for _, seat := range seats {
        status := SeatAvailable
        if _, ok := booked[seat.ID]; ok {
            status = SeatBooked
        }
        out = append(out, SeatAvailability{
            SeatID:     seat.ID,
            RowLabel:   seat.RowLabel,
            SeatNumber: seat.SeatNumber,
            Status:     status,
        })
    }
    sort.Slice(out, func(i, j int) bool {
        if out[i].RowLabel != out[j].RowLabel {
            return out[i].RowLabel < out[j].RowLabel
        }
        return out[i].SeatNumber < out[j].SeatNumber
    })
    return out, nil
}
