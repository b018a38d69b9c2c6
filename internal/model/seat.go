package model

import "time"

// Seat describes a fixed physical seat in an auditorium.  Seats are
// uniquely identified within their auditorium by the pair
// (row label, seat number) and never change after catalog load.
//
// Fields:
//  ID           – primary key identifier.
//  AuditoriumID – auditorium to which this seat belongs.
//  RowLabel     – letter or string designating the row.
//  SeatNumber   – number of the seat within the row.
type Seat struct {
    ID           uint64    // seats.id
    AuditoriumID uint64    // seats.auditorium_id
    RowLabel     string    // seats.row_label
    SeatNumber   uint32    // seats.seat_number
    CreatedAt    time.Time // seats.created_at
}
