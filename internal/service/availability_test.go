package service_test

import (
    "context"
    "errors"
    "reflect"
    "testing"

    "github.com/GROUP-E-AWAP/Filmpass/internal/model"
    "github.com/GROUP-E-AWAP/Filmpass/internal/service"
)

type fakeAvailabilityStore struct {
    showtimes map[uint64]uint64 // showtime id -> auditorium id
    seats     map[uint64][]model.Seat
    booked    map[uint64]map[uint64]struct{}
}

func (f *fakeAvailabilityStore) ShowtimeAuditorium(ctx context.Context, showtimeID uint64) (uint64, error) {
    aud, ok := f.showtimes[showtimeID]
    if !ok {
        return 0, service.ErrShowtimeNotFound
    }
    return aud, nil
}

func (f *fakeAvailabilityStore) AuditoriumSeats(ctx context.Context, auditoriumID uint64) ([]model.Seat, error) {
    return f.seats[auditoriumID], nil
}

func (f *fakeAvailabilityStore) BookedSeatIDs(ctx context.Context, showtimeID uint64) (map[uint64]struct{}, error) {
    return f.booked[showtimeID], nil
}

func TestSeatsForShowtime(t *testing.T) {
    store := &fakeAvailabilityStore{
        showtimes: map[uint64]uint64{10: 1},
        seats: map[uint64][]model.Seat{
            // Deliberately unsorted input.
            1: {
                {ID: 5, AuditoriumID: 1, RowLabel: "B", SeatNumber: 1},
                {ID: 3, AuditoriumID: 1, RowLabel: "A", SeatNumber: 10},
                {ID: 1, AuditoriumID: 1, RowLabel: "A", SeatNumber: 2},
            },
        },
        booked: map[uint64]map[uint64]struct{}{
            10: {3: {}},
        },
    }
    calc := service.NewAvailabilityCalculator(store)

    got, err := calc.SeatsForShowtime(context.Background(), 10)
    if err != nil {
        t.Fatalf("SeatsForShowtime: %v", err)
    }
    want := []service.SeatAvailability{
        {SeatID: 1, RowLabel: "A", SeatNumber: 2, Status: service.SeatAvailable},
        {SeatID: 3, RowLabel: "A", SeatNumber: 10, Status: service.SeatBooked},
        {SeatID: 5, RowLabel: "B", SeatNumber: 1, Status: service.SeatAvailable},
    }
    if !reflect.DeepEqual(got, want) {
        t.Fatalf("seats = %+v, want %+v", got, want)
    }

    // Availability is a pure read: a second call returns the same view.
    again, err := calc.SeatsForShowtime(context.Background(), 10)
    if err != nil {
        t.Fatalf("second SeatsForShowtime: %v", err)
    }
    if !reflect.DeepEqual(again, want) {
        t.Fatalf("second call diverged: %+v", again)
    }
}

func TestSeatsForShowtimeNotFound(t *testing.T) {
    calc := service.NewAvailabilityCalculator(&fakeAvailabilityStore{
        showtimes: map[uint64]uint64{},
    })

    _, err := calc.SeatsForShowtime(context.Background(), 99)
    if !errors.Is(err, service.ErrShowtimeNotFound) {
        t.Fatalf("err = %v, want ErrShowtimeNotFound", err)
    }
}

func TestSeatsForShowtimeEmptyAuditorium(t *testing.T) {
    calc := service.NewAvailabilityCalculator(&fakeAvailabilityStore{
        showtimes: map[uint64]uint64{10: 1},
        seats:     map[uint64][]model.Seat{},
        booked:    map[uint64]map[uint64]struct{}{},
    })

    got, err := calc.SeatsForShowtime(context.Background(), 10)
    if err != nil {
        t.Fatalf("SeatsForShowtime: %v", err)
    }
    if len(got) != 0 {
        t.Fatalf("seats = %+v, want empty", got)
    }
}
