package model

import "time"

// Showtime is a scheduled screening of a movie in a particular
// auditorium.  It defines the temporal and spatial context in which
// seats become bookable, and carries the base adult ticket price.
//
// Fields:
//  ID           – primary key identifier.
//  MovieID      – movie being screened.
//  AuditoriumID – auditorium where the screening takes place.
//  ShowDate     – calendar date of the screening.
//  StartsAt     – when the screening begins.
//  EndsAt       – when the screening ends.
//  PriceCents   – adult ticket price in cents; child tickets are
//                 derived from it by the booking engine.
type Showtime struct {
    ID           uint64    // showtimes.id
    MovieID      uint64    // showtimes.movie_id
    AuditoriumID uint64    // showtimes.auditorium_id
    ShowDate     time.Time // showtimes.show_date
    StartsAt     time.Time // showtimes.starts_at
    EndsAt       time.Time // showtimes.ends_at
    PriceCents   uint32    // showtimes.price_cents
    CreatedAt    time.Time // showtimes.created_at
}
