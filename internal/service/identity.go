package service

import (
    "context"
    "errors"
    "fmt"
    "strings"
)

// GuestPasswordMarker fills the non-null credential column for
// accounts created from a bare email with no registration step.
const GuestPasswordMarker = "guest"

// RoleCustomer is the role assigned to registered and guest
// customers alike.
const RoleCustomer = "CUSTOMER"

// Claim is a verified identity extracted from a trusted credential
// by the authentication middleware. The core never parses tokens
// itself; it either receives a Claim or nothing.
type Claim struct {
    UserID uint64
    Email  string
}

// UserDirectory is the storage surface the resolver needs: an email
// lookup and a guest-account insert. The MySQL implementation lives
// in the repository package.
type UserDirectory interface {
    FindIDByEmail(ctx context.Context, email string) (uint64, error)
    CreateGuest(ctx context.Context, name, email string) (uint64, error)
}

// IdentityResolver produces the user id a new booking is attributed
// to. A verified claim wins outright; otherwise the email is looked
// up and a guest account is created on first contact.
type IdentityResolver struct {
    users UserDirectory
}

func NewIdentityResolver(users UserDirectory) *IdentityResolver {
    if users == nil {
        panic("nil user directory passed to NewIdentityResolver")
    }
    return &IdentityResolver{users: users}
}

// Resolve returns the durable user id for a booking request. claim
// may be nil; email and name come from the request body and may be
// empty. A booking must always be attributable to some user, so a
// request with neither a claim nor an email fails with
// ErrInvalidInput.
func (r *IdentityResolver) Resolve(ctx context.Context, claim *Claim, email, name string) (uint64, error) {
    if claim != nil && claim.UserID != 0 {
        return claim.UserID, nil
    }
    email = strings.ToLower(strings.TrimSpace(email))
    if email == "" {
        return 0, fmt.Errorf("%w: an authenticated user or a guest email is required", ErrInvalidInput)
    }

    id, err := r.users.FindIDByEmail(ctx, email)
    if err == nil {
        return id, nil
    }
    if !errors.Is(err, ErrUserNotFound) {
        return 0, err
    }

    name = strings.TrimSpace(name)
    if name == "" {
        name = emailLocalPart(email)
    }
    id, err = r.users.CreateGuest(ctx, name, email)
    if err != nil {
        // Another request created the same guest between our lookup
        // and insert; the existing account wins.
        if errors.Is(err, ErrEmailExists) {
            return r.users.FindIDByEmail(ctx, email)
        }
        return 0, err
    }
    return id, nil
}

// emailLocalPart returns the substring before '@', or the whole
// string when no '@' is present.
func emailLocalPart(email string) string {
    if i := strings.Index(email, "@"); i > 0 {
        return email[:i]
    }
    return email
}
