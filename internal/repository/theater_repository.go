package repository

import (
    "context"
    "database/sql"

    "github.com/GROUP-E-AWAP/Filmpass/internal/model"
)

// TheaterRepo provides read-only access to theaters and their
// auditoriums. The catalog is flat; this service never mutates it.
type TheaterRepo struct {
    db *sql.DB
}

// NewTheaterRepo constructs a TheaterRepo given a DB handle.
func NewTheaterRepo(db *sql.DB) *TheaterRepo { return &TheaterRepo{db: db} }

// ListAll returns every theater ordered by name.
func (r *TheaterRepo) ListAll(ctx context.Context) ([]model.Theater, error) {
    const q = `SELECT id, name, location, created_at FROM theaters ORDER BY name`
    rows, err := r.db.QueryContext(ctx, q)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.Theater, 0)
    for rows.Next() {
        var t model.Theater
        if err := rows.Scan(&t.ID, &t.Name, &t.Location, &t.CreatedAt); err != nil {
            return nil, err
        }
        out = append(out, t)
    }
    return out, rows.Err()
}

// AuditoriumsByTheater returns the auditoriums of one theater.
func (r *TheaterRepo) AuditoriumsByTheater(ctx context.Context, theaterID uint64) ([]model.Auditorium, error) {
    const q = `SELECT id, theater_id, name, created_at FROM auditoriums WHERE theater_id = ? ORDER BY name`
    rows, err := r.db.QueryContext(ctx, q, theaterID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.Auditorium, 0)
    for rows.Next() {
        var a model.Auditorium
        if err := rows.Scan(&a.ID, &a.TheaterID, &a.Name, &a.CreatedAt); err != nil {
            return nil, err
        }
        out = append(out, a)
    }
    return out, rows.Err()
}
