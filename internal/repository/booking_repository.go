package repository

import (
    "context"
    "database/sql"
    "strings"
    "time"

    "github.com/GROUP-E-AWAP/Filmpass/internal/model"
    "github.com/GROUP-E-AWAP/Filmpass/internal/service"
)

// BookingRepo persists bookings and their seat line-items. It
// implements service.BookingStore: WithTx opens a transaction and
// carries it in the context, and the write methods pick it up from
// there, so the engine drives one atomic unit without ever touching
// *sql.Tx itself.
type BookingRepo struct {
    db *sql.DB
}

// NewBookingRepo returns a BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

type txKey struct{}

// runner is the subset of *sql.DB / *sql.Tx the queries need.
type runner interface {
    ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
    QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
    QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

func (r *BookingRepo) conn(ctx context.Context) runner {
    if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
        return tx
    }
    return r.db
}

// WithTx runs fn inside a single transaction. Nested calls reuse the
// transaction already in the context. fn returning nil commits;
// anything else rolls back, leaving zero persisted rows.
func (r *BookingRepo) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
    if _, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
        return fn(ctx)
    }
    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return err
    }
    if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
        _ = tx.Rollback()
        return err
    }
    return tx.Commit()
}

// ShowtimePricing returns the auditorium and adult price of a
// showtime, or service.ErrShowtimeNotFound.
func (r *BookingRepo) ShowtimePricing(ctx context.Context, showtimeID uint64) (service.ShowtimePricing, error) {
    const q = `SELECT auditorium_id, price_cents FROM showtimes WHERE id = ?`
    var p service.ShowtimePricing
    err := r.conn(ctx).QueryRowContext(ctx, q, showtimeID).Scan(&p.AuditoriumID, &p.PriceCents)
    if err == sql.ErrNoRows {
        return service.ShowtimePricing{}, service.ErrShowtimeNotFound
    }
    if err != nil {
        return service.ShowtimePricing{}, err
    }
    return p, nil
}

// LockSeats takes FOR UPDATE row locks on the requested seats of the
// given auditorium and returns the ids it actually found. The locks
// are held until the surrounding transaction ends, serializing
// concurrent bookings that overlap on any seat.
func (r *BookingRepo) LockSeats(ctx context.Context, auditoriumID uint64, seatIDs []uint64) ([]uint64, error) {
    if len(seatIDs) == 0 {
        return nil, nil
    }
    q := `SELECT id FROM seats WHERE auditorium_id = ? AND id IN (` +
        placeholders(len(seatIDs)) + `) ORDER BY id FOR UPDATE`
    args := make([]interface{}, 0, len(seatIDs)+1)
    args = append(args, auditoriumID)
    for _, id := range seatIDs {
        args = append(args, id)
    }
    rows, err := r.conn(ctx).QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    var locked []uint64
    for rows.Next() {
        var id uint64
        if err := rows.Scan(&id); err != nil {
            return nil, err
        }
        locked = append(locked, id)
    }
    return locked, rows.Err()
}

// BookedSeats returns which of the requested seats are already held
// by a confirmed booking for this showtime. The read locks the
// matching rows: under REPEATABLE READ a plain select would serve
// the snapshot taken before LockSeats queued on a competitor's row
// locks, hiding a booking that committed while we waited. A locking
// read always sees the latest committed rows, so both the pre-insert
// check and the re-read after a duplicate-key rejection report the
// real conflict set.
func (r *BookingRepo) BookedSeats(ctx context.Context, showtimeID uint64, seatIDs []uint64) ([]uint64, error) {
    if len(seatIDs) == 0 {
        return nil, nil
    }
    q := `SELECT bs.seat_id
          FROM booking_seats bs
          JOIN bookings b ON b.id = bs.booking_id
          WHERE bs.showtime_id = ? AND b.status = ? AND bs.seat_id IN (` +
        placeholders(len(seatIDs)) + `)
          ORDER BY bs.seat_id
          FOR UPDATE`
    args := make([]interface{}, 0, len(seatIDs)+2)
    args = append(args, showtimeID, model.BookingStatusConfirmed)
    for _, id := range seatIDs {
        args = append(args, id)
    }
    rows, err := r.conn(ctx).QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    var booked []uint64
    for rows.Next() {
        var id uint64
        if err := rows.Scan(&id); err != nil {
            return nil, err
        }
        booked = append(booked, id)
    }
    return booked, rows.Err()
}

// CreateBooking inserts one booking row and populates the generated
// id and creation timestamp on the passed record.
func (r *BookingRepo) CreateBooking(ctx context.Context, b *model.Booking) error {
    const q = `INSERT INTO bookings (user_id, showtime_id, status, total_amount_cents) VALUES (?, ?, ?, ?)`
    res, err := r.conn(ctx).ExecContext(ctx, q, b.UserID, b.ShowtimeID, b.Status, b.TotalAmountCents)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    b.ID = uint64(id)
    const sel = `SELECT created_at FROM bookings WHERE id = ?`
    return r.conn(ctx).QueryRowContext(ctx, sel, b.ID).Scan(&b.CreatedAt)
}

// CreateBookingSeats inserts all seat line-items in one statement.
// The booking_seats table carries UNIQUE (showtime_id, seat_id); a
// duplicate-key rejection is surfaced as service.ErrSeatTaken so the
// engine can report a conflict instead of an internal failure.
func (r *BookingRepo) CreateBookingSeats(ctx context.Context, seats []model.BookingSeat) error {
    if len(seats) == 0 {
        return nil
    }
    q := `INSERT INTO booking_seats (booking_id, showtime_id, seat_id, ticket_type, price_cents) VALUES `
    args := make([]interface{}, 0, len(seats)*5)
    for i, s := range seats {
        if i > 0 {
            q += ","
        }
        q += "(?, ?, ?, ?, ?)"
        args = append(args, s.BookingID, s.ShowtimeID, s.SeatID, s.TicketType, s.PriceCents)
    }
    if _, err := r.conn(ctx).ExecContext(ctx, q, args...); err != nil {
        if strings.Contains(strings.ToLower(err.Error()), "1062") {
            return service.ErrSeatTaken
        }
        return err
    }
    return nil
}

// BookingDetail is a booking with its screening context and seats,
// as returned to the owning customer.
type BookingDetail struct {
    ID               uint64              `json:"id"`
    ShowtimeID       uint64              `json:"showtime_id"`
    Status           string              `json:"status"`
    TotalAmountCents uint32              `json:"total_amount_cents"`
    MovieTitle       string              `json:"movie_title"`
    TheaterName      string              `json:"theater_name"`
    AuditoriumName   string              `json:"auditorium_name"`
    StartsAt         time.Time           `json:"starts_at"`
    CreatedAt        time.Time           `json:"created_at"`
    Seats            []BookingSeatDetail `json:"seats"`
}

// BookingSeatDetail is one seat line of a BookingDetail.
type BookingSeatDetail struct {
    SeatID     uint64 `json:"seat_id"`
    RowLabel   string `json:"row_label"`
    SeatNumber uint32 `json:"seat_number"`
    TicketType string `json:"ticket_type"`
    PriceCents uint32 `json:"price_cents"`
}

// ListByUser returns the user's bookings, newest first, with seats
// populated in a single follow-up query.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]BookingDetail, error) {
    const q = `SELECT b.id, b.showtime_id, b.status, b.total_amount_cents, b.created_at,
                      m.title, t.name, a.name, st.starts_at
               FROM bookings b
               JOIN showtimes st ON st.id = b.showtime_id
               JOIN movies m ON m.id = st.movie_id
               JOIN auditoriums a ON a.id = st.auditorium_id
               JOIN theaters t ON t.id = a.theater_id
               WHERE b.user_id = ?
               ORDER BY b.created_at DESC`
    rows, err := r.db.QueryContext(ctx, q, userID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    details := make([]BookingDetail, 0)
    index := make(map[uint64]int)
    for rows.Next() {
        var d BookingDetail
        if err := rows.Scan(
            &d.ID, &d.ShowtimeID, &d.Status, &d.TotalAmountCents, &d.CreatedAt,
            &d.MovieTitle, &d.TheaterName, &d.AuditoriumName, &d.StartsAt,
        ); err != nil {
            return nil, err
        }
        d.Seats = []BookingSeatDetail{}
        index[d.ID] = len(details)
        details = append(details, d)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    if len(details) == 0 {
        return details, nil
    }

    ids := make([]interface{}, 0, len(details))
    for _, d := range details {
        ids = append(ids, d.ID)
    }
    seatQ := `SELECT bs.booking_id, bs.seat_id, se.row_label, se.seat_number, bs.ticket_type, bs.price_cents
              FROM booking_seats bs
              JOIN seats se ON se.id = bs.seat_id
              WHERE bs.booking_id IN (` + placeholders(len(ids)) + `)
              ORDER BY bs.booking_id, se.row_label, se.seat_number`
    srows, err := r.db.QueryContext(ctx, seatQ, ids...)
    if err != nil {
        return nil, err
    }
    defer srows.Close()
    for srows.Next() {
        var bid uint64
        var s BookingSeatDetail
        if err := srows.Scan(&bid, &s.SeatID, &s.RowLabel, &s.SeatNumber, &s.TicketType, &s.PriceCents); err != nil {
            return nil, err
        }
        if idx, ok := index[bid]; ok {
            details[idx].Seats = append(details[idx].Seats, s)
        }
    }
    return details, srows.Err()
}

// GetByIDForUser returns one booking restricted to its owner;
// sql.ErrNoRows when it does not exist or belongs to someone else.
func (r *BookingRepo) GetByIDForUser(ctx context.Context, bookingID, userID uint64) (*BookingDetail, error) {
    const q = `SELECT b.id, b.showtime_id, b.status, b.total_amount_cents, b.created_at,
                      m.title, t.name, a.name, st.starts_at
               FROM bookings b
               JOIN showtimes st ON st.id = b.showtime_id
               JOIN movies m ON m.id = st.movie_id
               JOIN auditoriums a ON a.id = st.auditorium_id
               JOIN theaters t ON t.id = a.theater_id
               WHERE b.id = ? AND b.user_id = ?`
    var d BookingDetail
    err := r.db.QueryRowContext(ctx, q, bookingID, userID).Scan(
        &d.ID, &d.ShowtimeID, &d.Status, &d.TotalAmountCents, &d.CreatedAt,
        &d.MovieTitle, &d.TheaterName, &d.AuditoriumName, &d.StartsAt,
    )
    if err != nil {
        return nil, err
    }
    d.Seats = []BookingSeatDetail{}
    const seatQ = `SELECT bs.seat_id, se.row_label, se.seat_number, bs.ticket_type, bs.price_cents
                   FROM booking_seats bs
                   JOIN seats se ON se.id = bs.seat_id
                   WHERE bs.booking_id = ?
                   ORDER BY se.row_label, se.seat_number`
    rows, err := r.db.QueryContext(ctx, seatQ, d.ID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    for rows.Next() {
        var s BookingSeatDetail
        if err := rows.Scan(&s.SeatID, &s.RowLabel, &s.SeatNumber, &s.TicketType, &s.PriceCents); err != nil {
            return nil, err
        }
        d.Seats = append(d.Seats, s)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return &d, nil
}

// placeholders returns "?, ?, ..." with n markers.
func placeholders(n int) string {
    return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}
