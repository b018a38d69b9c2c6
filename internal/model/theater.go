package model

import "time"

// Theater is a physical venue.  A theater owns zero or more
// auditoriums; the catalog is flat and read-only for this service.
//
// Fields:
//  ID       – primary key identifier.
//  Name     – venue name.
//  Location – human-readable address or district.
type Theater struct {
    ID        uint64    // theaters.id
    Name      string    // theaters.name
    Location  string    // theaters.location
    CreatedAt time.Time // theaters.created_at
}

// Auditorium is a screening room inside a theater.  It owns a fixed
// set of seats.
//
// Fields:
//  ID        – primary key identifier.
//  TheaterID – theater this auditorium belongs to.
//  Name      – room label (e.g. "Screen 1").
type Auditorium struct {
    ID        uint64    // auditoriums.id
    TheaterID uint64    // auditoriums.theater_id
    Name      string    // auditoriums.name
    CreatedAt time.Time // auditoriums.created_at
}
