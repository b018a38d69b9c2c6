package service

import (
    "context"
    "errors"
    "fmt"
    "strings"

    "github.com/GROUP-E-AWAP/Filmpass/internal/model"
)

// Ticket types accepted on a booking request. Child tickets are
// priced at 70% of the showtime's adult price, rounded down on
// integer cents.
const (
    TicketAdult = "ADULT"
    TicketChild = "CHILD"
)

// ParseTicketType normalizes the wire value ("adult"/"child", any
// case). The empty string defaults to adult.
func ParseTicketType(s string) (string, error) {
    switch strings.ToUpper(strings.TrimSpace(s)) {
    case "", TicketAdult:
        return TicketAdult, nil
    case TicketChild:
        return TicketChild, nil
    }
    return "", fmt.Errorf("%w: ticket type must be adult or child", ErrInvalidInput)
}

// ShowtimePricing is what the engine needs to know about a showtime
// before writing: where its seats live and what an adult ticket
// costs.
type ShowtimePricing struct {
    AuditoriumID uint64
    PriceCents   uint32
}

// BookingStore is the transactional storage surface of the engine.
// WithTx runs fn inside a single database transaction, committing on
// nil and rolling back on error; the other methods observe that
// transaction when called from within fn. LockSeats must take row
// locks that are held until commit so that two transactions
// requesting an overlapping seat set serialize on the seat rows.
// CreateBookingSeats returns ErrSeatTaken when the (showtime, seat)
// uniqueness guard rejects an insert.
type BookingStore interface {
    WithTx(ctx context.Context, fn func(ctx context.Context) error) error
    ShowtimePricing(ctx context.Context, showtimeID uint64) (ShowtimePricing, error)
    LockSeats(ctx context.Context, auditoriumID uint64, seatIDs []uint64) ([]uint64, error)
    BookedSeats(ctx context.Context, showtimeID uint64, seatIDs []uint64) ([]uint64, error)
    CreateBooking(ctx context.Context, b *model.Booking) error
    CreateBookingSeats(ctx context.Context, seats []model.BookingSeat) error
}

// CreateBookingInput is the validated request handed to the engine.
// UserID must already be resolved (see IdentityResolver).
type CreateBookingInput struct {
    ShowtimeID uint64
    SeatIDs    []uint64
    TicketType string
    UserID     uint64
}

// BookingResult is returned on a successful commit.
type BookingResult struct {
    BookingID  uint64
    TotalCents uint32
}

// BookingEngine atomically turns a seat selection into one Booking
// plus its BookingSeat line-items. All writes become visible
// together or not at all; any failure after validation leaves zero
// persisted rows.
type BookingEngine struct {
    store BookingStore
}

func NewBookingEngine(store BookingStore) *BookingEngine {
    if store == nil {
        panic("nil store passed to NewBookingEngine")
    }
    return &BookingEngine{store: store}
}

// CreateBooking validates the request, then inside one transaction:
// loads the showtime price, locks the requested seat rows, re-checks
// them against confirmed bookings, prices the selection and inserts
// the booking with its seats. A lost race surfaces as a
// SeatConflictError naming the contested seats.
func (e *BookingEngine) CreateBooking(ctx context.Context, in CreateBookingInput) (BookingResult, error) {
    seatIDs, err := validateBookingInput(in)
    if err != nil {
        return BookingResult{}, err
    }
    ticketType, err := ParseTicketType(in.TicketType)
    if err != nil {
        return BookingResult{}, err
    }

    var result BookingResult
    err = e.store.WithTx(ctx, func(txCtx context.Context) error {
        pricing, err := e.store.ShowtimePricing(txCtx, in.ShowtimeID)
        if err != nil {
            if errors.Is(err, ErrShowtimeNotFound) {
                return fmt.Errorf("%w: unknown showtime %d", ErrInvalidInput, in.ShowtimeID)
            }
            return err
        }

        // Lock the seat rows first: concurrent bookings for an
        // overlapping selection queue here until we commit or roll
        // back. The lock also proves each seat belongs to the
        // showtime's auditorium.
        locked, err := e.store.LockSeats(txCtx, pricing.AuditoriumID, seatIDs)
        if err != nil {
            return err
        }
        if len(locked) != len(seatIDs) {
            missing := missingIDs(seatIDs, locked)
            return fmt.Errorf("%w: seats %v do not belong to this showtime", ErrInvalidInput, missing)
        }

        conflicting, err := e.store.BookedSeats(txCtx, in.ShowtimeID, seatIDs)
        if err != nil {
            return err
        }
        if len(conflicting) > 0 {
            return &SeatConflictError{SeatIDs: conflicting}
        }

        perSeat := seatPriceCents(pricing.PriceCents, ticketType)
        total := perSeat * uint32(len(seatIDs))

        booking := &model.Booking{
            UserID:           in.UserID,
            ShowtimeID:       in.ShowtimeID,
            Status:           model.BookingStatusConfirmed,
            TotalAmountCents: total,
        }
        if err := e.store.CreateBooking(txCtx, booking); err != nil {
            return err
        }

        lines := make([]model.BookingSeat, 0, len(seatIDs))
        for _, seatID := range seatIDs {
            lines = append(lines, model.BookingSeat{
                BookingID:  booking.ID,
                ShowtimeID: in.ShowtimeID,
                SeatID:     seatID,
                TicketType: ticketType,
                PriceCents: perSeat,
            })
        }
        if err := e.store.CreateBookingSeats(txCtx, lines); err != nil {
            // The uniqueness guard fired despite the row locks
            // (e.g. a booking committed between our check and
            // insert on a storage engine with weaker locking).
            // Report it as a conflict, naming the seats if we can
            // still read them.
            if errors.Is(err, ErrSeatTaken) {
                if conflicting, cerr := e.store.BookedSeats(txCtx, in.ShowtimeID, seatIDs); cerr == nil && len(conflicting) > 0 {
                    return &SeatConflictError{SeatIDs: conflicting}
                }
                return &SeatConflictError{}
            }
            return err
        }

        result = BookingResult{BookingID: booking.ID, TotalCents: total}
        return nil
    })
    if err != nil {
        return BookingResult{}, err
    }
    return result, nil
}

// validateBookingInput checks request shape, rejecting empty, zero
// and duplicated seat ids, and returns the ids in request order.
func validateBookingInput(in CreateBookingInput) ([]uint64, error) {
    if in.ShowtimeID == 0 {
        return nil, fmt.Errorf("%w: showtime id is required", ErrInvalidInput)
    }
    if in.UserID == 0 {
        return nil, fmt.Errorf("%w: booking requires a resolved user", ErrInvalidInput)
    }
    if len(in.SeatIDs) == 0 {
        return nil, fmt.Errorf("%w: at least one seat is required", ErrInvalidInput)
    }
    seen := make(map[uint64]struct{}, len(in.SeatIDs))
    unique := make([]uint64, 0, len(in.SeatIDs))
    for _, id := range in.SeatIDs {
        if id == 0 {
            return nil, fmt.Errorf("%w: seat ids must be positive", ErrInvalidInput)
        }
        if _, ok := seen[id]; ok {
            return nil, fmt.Errorf("%w: duplicate seat id %d", ErrInvalidInput, id)
        }
        seen[id] = struct{}{}
        unique = append(unique, id)
    }
    return unique, nil
}

// seatPriceCents derives the per-seat price from the adult base
// price. Child tickets cost 70% of the adult price, floored.
func seatPriceCents(adultCents uint32, ticketType string) uint32 {
    if ticketType == TicketChild {
        return adultCents * 7 / 10
    }
    return adultCents
}

func missingIDs(requested, found []uint64) []uint64 {
    have := make(map[uint64]struct{}, len(found))
    for _, id := range found {
        have[id] = struct{}{}
    }
    missing := make([]uint64, 0)
    for _, id := range requested {
        if _, ok := have[id]; !ok {
            missing = append(missing, id)
        }
    }
    return missing
}
