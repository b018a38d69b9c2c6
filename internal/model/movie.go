package model

import "time"

// Movie represents an entry in the film catalog.  Movies are loaded
// once and treated as immutable by this service; administrative
// updates happen out of band.
//
// Fields:
//  ID              – primary key identifier.
//  Title           – display title of the film.
//  Description     – synopsis shown on the detail page.
//  DurationMinutes – running time in minutes.
//  PosterURL       – reference to the poster image.
//  Genre           – genre label.
//  ReleaseDate     – date of first release.
type Movie struct {
    ID              uint64    // movies.id
    Title           string    // movies.title
    Description     string    // movies.description
    DurationMinutes uint32    // movies.duration_minutes
    PosterURL       string    // movies.poster_url
    Genre           string    // movies.genre
    ReleaseDate     time.Time // movies.release_date
    CreatedAt       time.Time // movies.created_at
}
