// Package handler exposes HTTP handlers for public catalog browsing,
// seat availability, authentication and bookings. Catalog routes
// require no authentication; responses carry only fields that are
// safe for guests.
package handler

import (
    "context"
    "errors"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/GROUP-E-AWAP/Filmpass/internal/model"
    "github.com/GROUP-E-AWAP/Filmpass/internal/repository"
    "github.com/GROUP-E-AWAP/Filmpass/internal/service"
)

// availabilityProvider is the slice of the service layer the catalog
// handler needs for per-showtime seat statuses.
type availabilityProvider interface {
    SeatsForShowtime(ctx context.Context, showtimeID uint64) ([]service.SeatAvailability, error)
}

// CatalogHandler aggregates the read-only repositories behind the
// public browsing endpoints.
type CatalogHandler struct {
    Movies       *repository.MovieRepo
    Theaters     *repository.TheaterRepo
    Showtimes    *repository.ShowtimeRepo
    Availability availabilityProvider
}

// NewCatalogHandler constructs a CatalogHandler; all dependencies must be non-nil.
func NewCatalogHandler(movies *repository.MovieRepo, theaters *repository.TheaterRepo, showtimes *repository.ShowtimeRepo, availability availabilityProvider) *CatalogHandler {
    if movies == nil || theaters == nil || showtimes == nil || availability == nil {
        panic("nil dependency passed to NewCatalogHandler")
    }
    return &CatalogHandler{Movies: movies, Theaters: theaters, Showtimes: showtimes, Availability: availability}
}

// movieItem is a movie as exposed by the public API.
type movieItem struct {
    ID              uint64 `json:"id"`
    Title           string `json:"title"`
    Description     string `json:"description"`
    DurationMinutes uint32 `json:"duration_minutes"`
    PosterURL       string `json:"poster_url"`
    Genre           string `json:"genre"`
    ReleaseDate     string `json:"release_date"`
}

func toMovieItem(m model.Movie) movieItem {
    return movieItem{
        ID:              m.ID,
        Title:           m.Title,
        Description:     m.Description,
        DurationMinutes: m.DurationMinutes,
        PosterURL:       m.PosterURL,
        Genre:           m.Genre,
        ReleaseDate:     m.ReleaseDate.Format("2006-01-02"),
    }
}

// ListMovies handles GET /v1/movies.
func (h *CatalogHandler) ListMovies(c echo.Context) error {
    movies, err := h.Movies.ListAll(c.Request().Context())
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    items := make([]movieItem, 0, len(movies))
    for _, m := range movies {
        items = append(items, toMovieItem(m))
    }
    return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetMovie handles GET /v1/movies/:id. The response pairs the movie
// with its showtimes, soonest first, so the detail page renders from
// a single request.
func (h *CatalogHandler) GetMovie(c echo.Context) error {
    id, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
    }
    ctx := c.Request().Context()
    m, err := h.Movies.GetByID(ctx, id)
    if err != nil {
        if errors.Is(err, repository.ErrMovieNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    showtimes, err := h.Showtimes.ListByMovie(ctx, id)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, echo.Map{
        "movie":     toMovieItem(m),
        "showtimes": showtimes,
    })
}

// SearchMovies handles GET /v1/search/movies?q=. An empty query
// returns the full catalog.
func (h *CatalogHandler) SearchMovies(c echo.Context) error {
    q := strings.TrimSpace(c.QueryParam("q"))
    ctx := c.Request().Context()
    var (
        movies []model.Movie
        err    error
    )
    if q == "" {
        movies, err = h.Movies.ListAll(ctx)
    } else {
        movies, err = h.Movies.Search(ctx, q)
    }
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    items := make([]movieItem, 0, len(movies))
    for _, m := range movies {
        items = append(items, toMovieItem(m))
    }
    return c.JSON(http.StatusOK, echo.Map{"items": items, "total": len(items)})
}

// ListTheaters handles GET /v1/theaters.
func (h *CatalogHandler) ListTheaters(c echo.Context) error {
    theaters, err := h.Theaters.ListAll(c.Request().Context())
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    type theaterItem struct {
        ID       uint64 `json:"id"`
        Name     string `json:"name"`
        Location string `json:"location"`
    }
    items := make([]theaterItem, 0, len(theaters))
    for _, t := range theaters {
        items = append(items, theaterItem{ID: t.ID, Name: t.Name, Location: t.Location})
    }
    return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// ListTheaterAuditoriums handles GET /v1/theaters/:id/auditoriums.
func (h *CatalogHandler) ListTheaterAuditoriums(c echo.Context) error {
    id, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid theater id"})
    }
    auditoriums, err := h.Theaters.AuditoriumsByTheater(c.Request().Context(), id)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    type auditoriumItem struct {
        ID   uint64 `json:"id"`
        Name string `json:"name"`
    }
    items := make([]auditoriumItem, 0, len(auditoriums))
    for _, a := range auditoriums {
        items = append(items, auditoriumItem{ID: a.ID, Name: a.Name})
    }
    return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetShowtime handles GET /v1/showtimes/:id.
func (h *CatalogHandler) GetShowtime(c echo.Context) error {
    id, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid showtime id"})
    }
    s, err := h.Showtimes.GetByID(c.Request().Context(), id)
    if err != nil {
        if errors.Is(err, service.ErrShowtimeNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "showtime not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, echo.Map{
        "id":            s.ID,
        "movie_id":      s.MovieID,
        "auditorium_id": s.AuditoriumID,
        "show_date":     s.ShowDate.Format("2006-01-02"),
        "starts_at":     s.StartsAt.UTC().Format(time.RFC3339),
        "ends_at":       s.EndsAt.UTC().Format(time.RFC3339),
        "price_cents":   s.PriceCents,
    })
}

// GetShowtimeSeats handles GET /v1/showtimes/:id/seats. It returns
// every seat of the showtime's auditorium with an AVAILABLE or
// BOOKED status, ordered by row then seat number.
func (h *CatalogHandler) GetShowtimeSeats(c echo.Context) error {
    id, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid showtime id"})
    }
    seats, err := h.Availability.SeatsForShowtime(c.Request().Context(), id)
    if err != nil {
        if errors.Is(err, service.ErrShowtimeNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "showtime not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, echo.Map{"items": seats})
}
