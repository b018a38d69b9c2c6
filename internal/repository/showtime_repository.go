package repository

import (
    "context"
    "database/sql"
    "time"

    "github.com/GROUP-E-AWAP/Filmpass/internal/model"
    "github.com/GROUP-E-AWAP/Filmpass/internal/service"
)

// ShowtimeRepo provides read-only access to showtimes.
type ShowtimeRepo struct {
    db *sql.DB
}

// NewShowtimeRepo constructs a ShowtimeRepo given a DB handle.
func NewShowtimeRepo(db *sql.DB) *ShowtimeRepo { return &ShowtimeRepo{db: db} }

// GetByID returns one showtime or service.ErrShowtimeNotFound.
func (r *ShowtimeRepo) GetByID(ctx context.Context, id uint64) (model.Showtime, error) {
    const q = `SELECT id, movie_id, auditorium_id, show_date, starts_at, ends_at, price_cents, created_at
               FROM showtimes WHERE id = ?`
    var s model.Showtime
    err := r.db.QueryRowContext(ctx, q, id).Scan(&s.ID, &s.MovieID, &s.AuditoriumID,
        &s.ShowDate, &s.StartsAt, &s.EndsAt, &s.PriceCents, &s.CreatedAt)
    if err == sql.ErrNoRows {
        return model.Showtime{}, service.ErrShowtimeNotFound
    }
    if err != nil {
        return model.Showtime{}, err
    }
    return s, nil
}

// ShowtimeWithTheater is a showtime row joined with its venue, as
// shown on a movie's detail page.
type ShowtimeWithTheater struct {
    ID              uint64    `json:"id"`
    ShowDate        time.Time `json:"show_date"`
    StartsAt        time.Time `json:"starts_at"`
    EndsAt          time.Time `json:"ends_at"`
    PriceCents      uint32    `json:"price_cents"`
    TheaterID       uint64    `json:"theater_id"`
    TheaterName     string    `json:"theater_name"`
    TheaterLocation string    `json:"theater_location"`
    AuditoriumID    uint64    `json:"auditorium_id"`
    AuditoriumName  string    `json:"auditorium_name"`
}

// ListByMovie returns a movie's showtimes ordered soonest first,
// each joined with its theater and auditorium.
func (r *ShowtimeRepo) ListByMovie(ctx context.Context, movieID uint64) ([]ShowtimeWithTheater, error) {
    const q = `SELECT s.id, s.show_date, s.starts_at, s.ends_at, s.price_cents,
                      t.id, t.name, t.location, a.id, a.name
               FROM showtimes s
               JOIN auditoriums a ON a.id = s.auditorium_id
               JOIN theaters t ON t.id = a.theater_id
               WHERE s.movie_id = ?
               ORDER BY s.show_date, s.starts_at`
    rows, err := r.db.QueryContext(ctx, q, movieID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]ShowtimeWithTheater, 0)
    for rows.Next() {
        var s ShowtimeWithTheater
        if err := rows.Scan(&s.ID, &s.ShowDate, &s.StartsAt, &s.EndsAt, &s.PriceCents,
            &s.TheaterID, &s.TheaterName, &s.TheaterLocation, &s.AuditoriumID, &s.AuditoriumName); err != nil {
            return nil, err
        }
        out = append(out, s)
    }
    return out, rows.Err()
}
