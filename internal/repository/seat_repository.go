package repository

import (
    "context"
    "database/sql"

    "github.com/GROUP-E-AWAP/Filmpass/internal/model"
    "github.com/GROUP-E-AWAP/Filmpass/internal/service"
)

// SeatRepo provides read access to the fixed seat inventory. It
// implements service.AvailabilityStore for the availability
// calculator; nothing here mutates state.
type SeatRepo struct {
    db *sql.DB
}

// NewSeatRepo constructs a SeatRepo given a DB handle.
func NewSeatRepo(db *sql.DB) *SeatRepo { return &SeatRepo{db: db} }

// ShowtimeAuditorium returns the auditorium assigned to a showtime,
// or service.ErrShowtimeNotFound.
func (r *SeatRepo) ShowtimeAuditorium(ctx context.Context, showtimeID uint64) (uint64, error) {
    const q = `SELECT auditorium_id FROM showtimes WHERE id = ?`
    var auditoriumID uint64
    err := r.db.QueryRowContext(ctx, q, showtimeID).Scan(&auditoriumID)
    if err == sql.ErrNoRows {
        return 0, service.ErrShowtimeNotFound
    }
    if err != nil {
        return 0, err
    }
    if auditoriumID == 0 {
        return 0, service.ErrShowtimeNotFound
    }
    return auditoriumID, nil
}

// AuditoriumSeats returns every seat of an auditorium ordered by row
// label then seat number.
func (r *SeatRepo) AuditoriumSeats(ctx context.Context, auditoriumID uint64) ([]model.Seat, error) {
    const q = `SELECT id, auditorium_id, row_label, seat_number, created_at
               FROM seats
               WHERE auditorium_id = ?
               ORDER BY row_label, seat_number`
    rows, err := r.db.QueryContext(ctx, q, auditoriumID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.Seat, 0)
    for rows.Next() {
        var s model.Seat
        if err := rows.Scan(&s.ID, &s.AuditoriumID, &s.RowLabel, &s.SeatNumber, &s.CreatedAt); err != nil {
            return nil, err
        }
        out = append(out, s)
    }
    return out, rows.Err()
}

// BookedSeatIDs returns the ids of seats held by confirmed bookings
// of this showtime.
func (r *SeatRepo) BookedSeatIDs(ctx context.Context, showtimeID uint64) (map[uint64]struct{}, error) {
    const q = `SELECT bs.seat_id
               FROM booking_seats bs
               JOIN bookings b ON b.id = bs.booking_id
               WHERE bs.showtime_id = ? AND b.status = ?`
    rows, err := r.db.QueryContext(ctx, q, showtimeID, model.BookingStatusConfirmed)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    booked := make(map[uint64]struct{})
    for rows.Next() {
        var id uint64
        if err := rows.Scan(&id); err != nil {
            return nil, err
        }
        booked[id] = struct{}{}
    }
    return booked, rows.Err()
}
