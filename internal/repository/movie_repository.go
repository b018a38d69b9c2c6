package repository

import (
    "context"
    "database/sql"
    "errors"
    "strings"

    "github.com/GROUP-E-AWAP/Filmpass/internal/model"
)

// ErrMovieNotFound is returned when a movie id does not exist.
var ErrMovieNotFound = errors.New("movie not found")

// MovieRepo provides read-only access to the film catalog.
type MovieRepo struct {
    db *sql.DB
}

// NewMovieRepo constructs a MovieRepo given a DB handle.
func NewMovieRepo(db *sql.DB) *MovieRepo { return &MovieRepo{db: db} }

// ListAll returns the full catalog ordered by title.
func (r *MovieRepo) ListAll(ctx context.Context) ([]model.Movie, error) {
    const q = `SELECT id, title, description, duration_minutes, poster_url, genre, release_date, created_at
               FROM movies
               ORDER BY title`
    rows, err := r.db.QueryContext(ctx, q)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.Movie, 0)
    for rows.Next() {
        var m model.Movie
        if err := rows.Scan(&m.ID, &m.Title, &m.Description, &m.DurationMinutes,
            &m.PosterURL, &m.Genre, &m.ReleaseDate, &m.CreatedAt); err != nil {
            return nil, err
        }
        out = append(out, m)
    }
    return out, rows.Err()
}

// GetByID returns one movie or ErrMovieNotFound.
func (r *MovieRepo) GetByID(ctx context.Context, id uint64) (model.Movie, error) {
    const q = `SELECT id, title, description, duration_minutes, poster_url, genre, release_date, created_at
               FROM movies WHERE id = ?`
    var m model.Movie
    err := r.db.QueryRowContext(ctx, q, id).Scan(&m.ID, &m.Title, &m.Description,
        &m.DurationMinutes, &m.PosterURL, &m.Genre, &m.ReleaseDate, &m.CreatedAt)
    if err == sql.ErrNoRows {
        return model.Movie{}, ErrMovieNotFound
    }
    if err != nil {
        return model.Movie{}, err
    }
    return m, nil
}

// Search returns movies whose title or genre matches the query,
// case-insensitively, ordered by title.
func (r *MovieRepo) Search(ctx context.Context, query string) ([]model.Movie, error) {
    pattern := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"
    const q = `SELECT id, title, description, duration_minutes, poster_url, genre, release_date, created_at
               FROM movies
               WHERE LOWER(title) LIKE ? OR LOWER(genre) LIKE ?
               ORDER BY title`
    rows, err := r.db.QueryContext(ctx, q, pattern, pattern)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.Movie, 0)
    for rows.Next() {
        var m model.Movie
        if err := rows.Scan(&m.ID, &m.Title, &m.Description, &m.DurationMinutes,
            &m.PosterURL, &m.Genre, &m.ReleaseDate, &m.CreatedAt); err != nil {
            return nil, err
        }
        out = append(out, m)
    }
    return out, rows.Err()
}
