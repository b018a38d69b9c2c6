package model

import "time"

// User represents an application user record as stored in the
// `users` table.  Users are created either through explicit
// registration or lazily on a first guest booking; in the latter
// case PasswordHash holds the guest marker instead of a bcrypt
// hash, since the column is non-null.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Name         – display name; defaults to the email local part
//                 for guest accounts.
//  Email        – unique, normalized email address.
//  PasswordHash – bcrypt hash, or the guest marker for accounts
//                 created without registration.
//  Role         – role name (CUSTOMER or ADMIN).
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
    ID           uint64    // users.id
    Name         string    // users.name
    Email        string    // users.email
    PasswordHash string    // users.password_hash
    Role         string    // users.role
    CreatedAt    time.Time // users.created_at
    UpdatedAt    time.Time // users.updated_at
}
