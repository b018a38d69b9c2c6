package handler

import (
    "context"
    "encoding/json"
    "net/http"
    "net/http/httptest"
    "testing"

    "github.com/labstack/echo/v4"

    "github.com/GROUP-E-AWAP/Filmpass/internal/service"
)

type fakeAvailability struct {
    seats map[uint64][]service.SeatAvailability
}

func (f *fakeAvailability) SeatsForShowtime(ctx context.Context, showtimeID uint64) ([]service.SeatAvailability, error) {
    if s, ok := f.seats[showtimeID]; ok {
        return s, nil
    }
    return nil, service.ErrShowtimeNotFound
}

func getSeats(t *testing.T, h *CatalogHandler, id string) *httptest.ResponseRecorder {
    t.Helper()
    e := echo.New()
    req := httptest.NewRequest(http.MethodGet, "/v1/showtimes/"+id+"/seats", nil)
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)
    c.SetParamNames("id")
    c.SetParamValues(id)
    if err := h.GetShowtimeSeats(c); err != nil {
        t.Fatalf("GetShowtimeSeats: %v", err)
    }
    return rec
}

func TestGetShowtimeSeats(t *testing.T) {
    h := &CatalogHandler{Availability: &fakeAvailability{
        seats: map[uint64][]service.SeatAvailability{
            10: {
                {SeatID: 1, RowLabel: "A", SeatNumber: 1, Status: service.SeatAvailable},
                {SeatID: 2, RowLabel: "A", SeatNumber: 2, Status: service.SeatBooked},
            },
        },
    }}

    rec := getSeats(t, h, "10")
    if rec.Code != http.StatusOK {
        t.Fatalf("status = %d, want 200; body %s", rec.Code, rec.Body)
    }
    var resp struct {
        Items []service.SeatAvailability `json:"items"`
    }
    if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
        t.Fatalf("unmarshal: %v", err)
    }
    if len(resp.Items) != 2 {
        t.Fatalf("items = %+v, want 2 seats", resp.Items)
    }
    if resp.Items[1].Status != service.SeatBooked {
        t.Fatalf("seat 2 status = %q, want BOOKED", resp.Items[1].Status)
    }
}

func TestGetShowtimeSeatsNotFound(t *testing.T) {
    h := &CatalogHandler{Availability: &fakeAvailability{}}
    if rec := getSeats(t, h, "99"); rec.Code != http.StatusNotFound {
        t.Fatalf("status = %d, want 404; body %s", rec.Code, rec.Body)
    }
}

func TestGetShowtimeSeatsBadID(t *testing.T) {
    h := &CatalogHandler{Availability: &fakeAvailability{}}
    if rec := getSeats(t, h, "zero"); rec.Code != http.StatusBadRequest {
        t.Fatalf("status = %d, want 400; body %s", rec.Code, rec.Body)
    }
}
