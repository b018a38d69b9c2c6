package handler

import (
    "context"
    "database/sql"
    "errors"
    "fmt"
    "log"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/GROUP-E-AWAP/Filmpass/internal/middleware"
    "github.com/GROUP-E-AWAP/Filmpass/internal/queue"
    "github.com/GROUP-E-AWAP/Filmpass/internal/repository"
    "github.com/GROUP-E-AWAP/Filmpass/internal/service"
)

// identityResolver and bookingCreator are the slices of the service
// layer this handler drives; narrow interfaces keep the handler
// testable without a database.
type identityResolver interface {
    Resolve(ctx context.Context, claim *service.Claim, email, name string) (uint64, error)
}

type bookingCreator interface {
    CreateBooking(ctx context.Context, in service.CreateBookingInput) (service.BookingResult, error)
}

type bookingReader interface {
    ListByUser(ctx context.Context, userID uint64) ([]repository.BookingDetail, error)
    GetByIDForUser(ctx context.Context, bookingID, userID uint64) (*repository.BookingDetail, error)
}

// BookingHandler serves booking creation and retrieval. Creation
// accepts both authenticated users (via the optional JWT middleware)
// and guests identified by email.
type BookingHandler struct {
    Resolver identityResolver
    Engine   bookingCreator
    Bookings bookingReader

    // Publish emits the post-commit event; swapped out in tests.
    Publish func(ctx context.Context, ev queue.BookingConfirmedEvent) error
}

// NewBookingHandler constructs a BookingHandler; dependencies must be non-nil.
func NewBookingHandler(resolver identityResolver, engine bookingCreator, bookings bookingReader) *BookingHandler {
    if resolver == nil || engine == nil || bookings == nil {
        panic("nil dependency passed to NewBookingHandler")
    }
    return &BookingHandler{
        Resolver: resolver,
        Engine:   engine,
        Bookings: bookings,
        Publish:  queue.PublishBookingConfirmed,
    }
}

// bookingReq is the validated booking request shape. Unknown
// showtimes, empty or duplicated seat lists and missing identity are
// rejected by the service layer with kind-tagged errors.
type bookingReq struct {
    ShowtimeID uint64   `json:"showtime_id"`
    Seats      []uint64 `json:"seats"`
    TicketType string   `json:"ticket_type"`
    GuestEmail string   `json:"guest_email"`
    GuestName  string   `json:"guest_name"`
}

// CreateBooking handles POST /v1/bookings. The whole seat selection
// is reserved atomically: on any failure no row is persisted, so
// clients may retry safely. A seat race yields 409 with the
// conflicting seat ids; malformed requests yield 400.
func (h *BookingHandler) CreateBooking(c echo.Context) error {
    var req bookingReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }

    // Bound the whole resolve+book sequence so a contended lock
    // fails instead of hanging; nothing is persisted on timeout.
    ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
    defer cancel()

    claim := middleware.ClaimFrom(c)
    userID, err := h.Resolver.Resolve(ctx, claim, req.GuestEmail, req.GuestName)
    if err != nil {
        if errors.Is(err, service.ErrInvalidInput) {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "identity resolution failed"})
    }

    result, err := h.Engine.CreateBooking(ctx, service.CreateBookingInput{
        ShowtimeID: req.ShowtimeID,
        SeatIDs:    req.Seats,
        TicketType: req.TicketType,
        UserID:     userID,
    })
    if err != nil {
        var conflict *service.SeatConflictError
        switch {
        case errors.As(err, &conflict):
            return c.JSON(http.StatusConflict, echo.Map{
                "error":             "some seats are already booked",
                "conflicting_seats": conflict.SeatIDs,
            })
        case errors.Is(err, service.ErrInvalidInput):
            return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "booking failed"})
    }

    h.publishConfirmed(result.BookingID, userID, req.ShowtimeID, result.TotalCents)

    return c.JSON(http.StatusCreated, echo.Map{
        "booking_id":  result.BookingID,
        "total_cents": result.TotalCents,
    })
}

// ListMyBookings handles GET /v1/bookings for the authenticated user.
func (h *BookingHandler) ListMyBookings(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    items, err := h.Bookings.ListByUser(c.Request().Context(), userID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetMyBooking handles GET /v1/bookings/:id, restricted to the owner.
func (h *BookingHandler) GetMyBooking(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
    }
    detail, err := h.Bookings.GetByIDForUser(c.Request().Context(), id, userID)
    if err != nil {
        if err == sql.ErrNoRows {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, detail)
}

// publishConfirmed emits the booking.confirmed event in the
// background. The booking already committed; a broker failure is
// logged and otherwise ignored.
func (h *BookingHandler) publishConfirmed(bookingID, userID, showtimeID uint64, totalCents uint32) {
    ev := queue.BookingConfirmedEvent{
        BookingID:        bookingID,
        UserID:           userID,
        ShowtimeID:       showtimeID,
        TotalAmountCents: totalCents,
        ConfirmedAt:      time.Now().UTC().Format(time.RFC3339),
    }
    if detail, err := h.Bookings.GetByIDForUser(context.Background(), bookingID, userID); err == nil {
        ev.MovieTitle = detail.MovieTitle
        for _, s := range detail.Seats {
            ev.SeatLabels = append(ev.SeatLabels, seatLabel(s.RowLabel, s.SeatNumber))
        }
    }
    go func() {
        ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
        defer cancel()
        if err := h.Publish(ctx, ev); err != nil {
            log.Printf("booking %d: publish confirmed event failed: %v", bookingID, err)
        }
    }()
}

func seatLabel(row string, number uint32) string {
    return fmt.Sprintf("%s%d", row, number)
}
