package service_test

import (
    "context"
    "errors"
    "testing"

    "github.com/GROUP-E-AWAP/Filmpass/internal/service"
)

// fakeUserDirectory records lookups and guest inserts in memory.
type fakeUserDirectory struct {
    byEmail map[string]uint64
    nextID  uint64

    createErr   error // returned once by CreateGuest when set
    createdName string
    creates     int
}

func newFakeUserDirectory() *fakeUserDirectory {
    return &fakeUserDirectory{byEmail: map[string]uint64{}, nextID: 100}
}

func (f *fakeUserDirectory) FindIDByEmail(ctx context.Context, email string) (uint64, error) {
    if id, ok := f.byEmail[email]; ok {
        return id, nil
    }
    return 0, service.ErrUserNotFound
}

func (f *fakeUserDirectory) CreateGuest(ctx context.Context, name, email string) (uint64, error) {
    f.creates++
    if f.createErr != nil {
        err := f.createErr
        f.createErr = nil
        return 0, err
    }
    f.nextID++
    f.byEmail[email] = f.nextID
    f.createdName = name
    return f.nextID, nil
}

func TestResolveClaimWins(t *testing.T) {
    users := newFakeUserDirectory()
    users.byEmail["other@example.com"] = 55
    r := service.NewIdentityResolver(users)

    // A verified claim takes precedence even when the body names a
    // different account.
    id, err := r.Resolve(context.Background(), &service.Claim{UserID: 42, Email: "me@example.com"}, "other@example.com", "")
    if err != nil {
        t.Fatalf("Resolve: %v", err)
    }
    if id != 42 {
        t.Fatalf("id = %d, want 42", id)
    }
    if users.creates != 0 {
        t.Fatal("claim resolution must not create accounts")
    }
}

func TestResolveExistingEmail(t *testing.T) {
    users := newFakeUserDirectory()
    users.byEmail["ada@example.com"] = 9
    r := service.NewIdentityResolver(users)

    // Email matching is case-insensitive with surrounding whitespace ignored.
    id, err := r.Resolve(context.Background(), nil, "  Ada@Example.COM ", "")
    if err != nil {
        t.Fatalf("Resolve: %v", err)
    }
    if id != 9 {
        t.Fatalf("id = %d, want 9", id)
    }
    if users.creates != 0 {
        t.Fatal("existing account must be reused, not recreated")
    }
}

func TestResolveCreatesGuest(t *testing.T) {
    users := newFakeUserDirectory()
    r := service.NewIdentityResolver(users)

    id, err := r.Resolve(context.Background(), nil, "grace@example.com", "")
    if err != nil {
        t.Fatalf("Resolve: %v", err)
    }
    if id == 0 {
        t.Fatal("expected a user id")
    }
    if users.createdName != "grace" {
        t.Fatalf("guest name = %q, want email local part", users.createdName)
    }

    // A second booking with the same email resolves to the same account.
    again, err := r.Resolve(context.Background(), nil, "grace@example.com", "")
    if err != nil {
        t.Fatalf("Resolve again: %v", err)
    }
    if again != id {
        t.Fatalf("second resolve = %d, want %d", again, id)
    }
    if users.creates != 1 {
        t.Fatalf("creates = %d, want 1", users.creates)
    }
}

func TestResolveGuestName(t *testing.T) {
    users := newFakeUserDirectory()
    r := service.NewIdentityResolver(users)

    if _, err := r.Resolve(context.Background(), nil, "grace@example.com", "  Grace Hopper "); err != nil {
        t.Fatalf("Resolve: %v", err)
    }
    if users.createdName != "Grace Hopper" {
        t.Fatalf("guest name = %q, want explicit name", users.createdName)
    }
}

func TestResolveNoIdentity(t *testing.T) {
    r := service.NewIdentityResolver(newFakeUserDirectory())

    _, err := r.Resolve(context.Background(), nil, "   ", "")
    if !errors.Is(err, service.ErrInvalidInput) {
        t.Fatalf("err = %v, want ErrInvalidInput", err)
    }
}

func TestResolveLostCreationRace(t *testing.T) {
    // The initial lookup misses, the insert fails with a duplicate
    // email because a concurrent request won the race, and the retry
    // lookup resolves to the winner's account.
    raced := &racingDirectory{inner: newFakeUserDirectory(), winnerID: 77}
    r := service.NewIdentityResolver(raced)

    id, err := r.Resolve(context.Background(), nil, "grace@example.com", "")
    if err != nil {
        t.Fatalf("Resolve: %v", err)
    }
    if id != 77 {
        t.Fatalf("id = %d, want the concurrently created account 77", id)
    }
}

// racingDirectory misses the first lookup, rejects the insert as a
// duplicate while registering the winner's account, then serves it on
// the retry lookup.
type racingDirectory struct {
    inner    *fakeUserDirectory
    winnerID uint64
}

func (r *racingDirectory) FindIDByEmail(ctx context.Context, email string) (uint64, error) {
    return r.inner.FindIDByEmail(ctx, email)
}

func (r *racingDirectory) CreateGuest(ctx context.Context, name, email string) (uint64, error) {
    r.inner.byEmail[email] = r.winnerID
    return 0, service.ErrEmailExists
}
