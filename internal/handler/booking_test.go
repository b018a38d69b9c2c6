package handler

import (
    "context"
    "database/sql"
    "encoding/json"
    "net/http"
    "net/http/httptest"
    "strings"
    "sync"
    "testing"

    "github.com/labstack/echo/v4"

    "github.com/GROUP-E-AWAP/Filmpass/internal/queue"
    "github.com/GROUP-E-AWAP/Filmpass/internal/repository"
    "github.com/GROUP-E-AWAP/Filmpass/internal/service"
)

type fakeResolver struct {
    id       uint64
    err      error
    gotEmail string
    gotName  string
    gotClaim *service.Claim
}

func (f *fakeResolver) Resolve(ctx context.Context, claim *service.Claim, email, name string) (uint64, error) {
    f.gotClaim, f.gotEmail, f.gotName = claim, email, name
    if f.err != nil {
        return 0, f.err
    }
    return f.id, nil
}

type fakeEngine struct {
    res   service.BookingResult
    err   error
    gotIn service.CreateBookingInput
}

func (f *fakeEngine) CreateBooking(ctx context.Context, in service.CreateBookingInput) (service.BookingResult, error) {
    f.gotIn = in
    if f.err != nil {
        return service.BookingResult{}, f.err
    }
    return f.res, nil
}

type fakeReader struct {
    details map[uint64]*repository.BookingDetail
    list    []repository.BookingDetail
    listErr error
}

func (f *fakeReader) ListByUser(ctx context.Context, userID uint64) ([]repository.BookingDetail, error) {
    return f.list, f.listErr
}

func (f *fakeReader) GetByIDForUser(ctx context.Context, bookingID, userID uint64) (*repository.BookingDetail, error) {
    if d, ok := f.details[bookingID]; ok {
        return d, nil
    }
    return nil, sql.ErrNoRows
}

// published collects events across the publish goroutine.
type published struct {
    mu     sync.Mutex
    events []queue.BookingConfirmedEvent
    done   chan struct{}
}

func newPublished() *published {
    return &published{done: make(chan struct{}, 8)}
}

func (p *published) publish(ctx context.Context, ev queue.BookingConfirmedEvent) error {
    p.mu.Lock()
    p.events = append(p.events, ev)
    p.mu.Unlock()
    p.done <- struct{}{}
    return nil
}

func newBookingTestHandler(resolver *fakeResolver, engine *fakeEngine, reader *fakeReader) (*BookingHandler, *published) {
    h := NewBookingHandler(resolver, engine, reader)
    pub := newPublished()
    h.Publish = pub.publish
    return h, pub
}

func postBooking(t *testing.T, h *BookingHandler, body string, claim *service.Claim) *httptest.ResponseRecorder {
    t.Helper()
    e := echo.New()
    req := httptest.NewRequest(http.MethodPost, "/v1/bookings", strings.NewReader(body))
    req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)
    if claim != nil {
        c.Set("user_id", claim.UserID)
        c.Set("email", claim.Email)
    }
    if err := h.CreateBooking(c); err != nil {
        t.Fatalf("CreateBooking: %v", err)
    }
    return rec
}

func TestCreateBookingHandlerSuccess(t *testing.T) {
    resolver := &fakeResolver{id: 7}
    engine := &fakeEngine{res: service.BookingResult{BookingID: 3, TotalCents: 3000}}
    reader := &fakeReader{details: map[uint64]*repository.BookingDetail{
        3: {
            ID:         3,
            MovieTitle: "Arrival",
            Seats: []repository.BookingSeatDetail{
                {SeatID: 1, RowLabel: "A", SeatNumber: 2},
                {SeatID: 2, RowLabel: "A", SeatNumber: 3},
            },
        },
    }}
    h, pub := newBookingTestHandler(resolver, engine, reader)

    rec := postBooking(t, h, `{"showtime_id":10,"seats":[1,2],"ticket_type":"adult","guest_email":"ada@example.com"}`, nil)
    if rec.Code != http.StatusCreated {
        t.Fatalf("status = %d, want 201; body %s", rec.Code, rec.Body)
    }
    var resp struct {
        BookingID  uint64 `json:"booking_id"`
        TotalCents uint32 `json:"total_cents"`
    }
    if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
        t.Fatalf("unmarshal: %v", err)
    }
    if resp.BookingID != 3 || resp.TotalCents != 3000 {
        t.Fatalf("resp = %+v", resp)
    }
    if resolver.gotEmail != "ada@example.com" {
        t.Fatalf("resolver email = %q", resolver.gotEmail)
    }
    if engine.gotIn.UserID != 7 || engine.gotIn.ShowtimeID != 10 || len(engine.gotIn.SeatIDs) != 2 {
        t.Fatalf("engine input = %+v", engine.gotIn)
    }

    <-pub.done
    pub.mu.Lock()
    defer pub.mu.Unlock()
    if len(pub.events) != 1 {
        t.Fatalf("published %d events, want 1", len(pub.events))
    }
    ev := pub.events[0]
    if ev.BookingID != 3 || ev.MovieTitle != "Arrival" {
        t.Fatalf("event = %+v", ev)
    }
    if len(ev.SeatLabels) != 2 || ev.SeatLabels[0] != "A2" || ev.SeatLabels[1] != "A3" {
        t.Fatalf("seat labels = %v", ev.SeatLabels)
    }
}

func TestCreateBookingHandlerAuthenticatedClaim(t *testing.T) {
    resolver := &fakeResolver{id: 42}
    engine := &fakeEngine{res: service.BookingResult{BookingID: 1, TotalCents: 1500}}
    h, pub := newBookingTestHandler(resolver, engine, &fakeReader{})

    rec := postBooking(t, h, `{"showtime_id":10,"seats":[1]}`, &service.Claim{UserID: 42, Email: "ada@example.com"})
    if rec.Code != http.StatusCreated {
        t.Fatalf("status = %d, want 201; body %s", rec.Code, rec.Body)
    }
    if resolver.gotClaim == nil || resolver.gotClaim.UserID != 42 {
        t.Fatalf("claim = %+v, want user 42", resolver.gotClaim)
    }
    <-pub.done
}

func TestCreateBookingHandlerSeatConflict(t *testing.T) {
    resolver := &fakeResolver{id: 7}
    engine := &fakeEngine{err: &service.SeatConflictError{SeatIDs: []uint64{2, 5}}}
    h, _ := newBookingTestHandler(resolver, engine, &fakeReader{})

    rec := postBooking(t, h, `{"showtime_id":10,"seats":[1,2,5],"guest_email":"ada@example.com"}`, nil)
    if rec.Code != http.StatusConflict {
        t.Fatalf("status = %d, want 409; body %s", rec.Code, rec.Body)
    }
    var resp struct {
        Error            string   `json:"error"`
        ConflictingSeats []uint64 `json:"conflicting_seats"`
    }
    if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
        t.Fatalf("unmarshal: %v", err)
    }
    if len(resp.ConflictingSeats) != 2 || resp.ConflictingSeats[0] != 2 || resp.ConflictingSeats[1] != 5 {
        t.Fatalf("conflicting seats = %v, want [2 5]", resp.ConflictingSeats)
    }
}

func TestCreateBookingHandlerBadRequest(t *testing.T) {
    t.Run("resolver rejects missing identity", func(t *testing.T) {
        resolver := &fakeResolver{err: service.ErrInvalidInput}
        h, _ := newBookingTestHandler(resolver, &fakeEngine{}, &fakeReader{})
        rec := postBooking(t, h, `{"showtime_id":10,"seats":[1]}`, nil)
        if rec.Code != http.StatusBadRequest {
            t.Fatalf("status = %d, want 400; body %s", rec.Code, rec.Body)
        }
    })
    t.Run("engine rejects invalid input", func(t *testing.T) {
        engine := &fakeEngine{err: service.ErrInvalidInput}
        h, _ := newBookingTestHandler(&fakeResolver{id: 7}, engine, &fakeReader{})
        rec := postBooking(t, h, `{"showtime_id":10,"seats":[],"guest_email":"ada@example.com"}`, nil)
        if rec.Code != http.StatusBadRequest {
            t.Fatalf("status = %d, want 400; body %s", rec.Code, rec.Body)
        }
    })
    t.Run("malformed body", func(t *testing.T) {
        h, _ := newBookingTestHandler(&fakeResolver{id: 7}, &fakeEngine{}, &fakeReader{})
        rec := postBooking(t, h, `{"seats":"front row"}`, nil)
        if rec.Code != http.StatusBadRequest {
            t.Fatalf("status = %d, want 400; body %s", rec.Code, rec.Body)
        }
    })
}

func TestGetMyBooking(t *testing.T) {
    reader := &fakeReader{details: map[uint64]*repository.BookingDetail{
        3: {ID: 3, MovieTitle: "Arrival"},
    }}
    h, _ := newBookingTestHandler(&fakeResolver{id: 7}, &fakeEngine{}, reader)
    e := echo.New()

    get := func(id string, userID uint64) *httptest.ResponseRecorder {
        req := httptest.NewRequest(http.MethodGet, "/v1/bookings/"+id, nil)
        rec := httptest.NewRecorder()
        c := e.NewContext(req, rec)
        c.SetParamNames("id")
        c.SetParamValues(id)
        c.Set("user_id", userID)
        if err := h.GetMyBooking(c); err != nil {
            t.Fatalf("GetMyBooking: %v", err)
        }
        return rec
    }

    if rec := get("3", 7); rec.Code != http.StatusOK {
        t.Fatalf("status = %d, want 200; body %s", rec.Code, rec.Body)
    }
    if rec := get("99", 7); rec.Code != http.StatusNotFound {
        t.Fatalf("status = %d, want 404; body %s", rec.Code, rec.Body)
    }
    if rec := get("abc", 7); rec.Code != http.StatusBadRequest {
        t.Fatalf("status = %d, want 400; body %s", rec.Code, rec.Body)
    }
}
