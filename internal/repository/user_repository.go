package repository

import (
    "context"
    "database/sql"
    "strings"

    "github.com/GROUP-E-AWAP/Filmpass/internal/model"
    "github.com/GROUP-E-AWAP/Filmpass/internal/service"
    "github.com/GROUP-E-AWAP/Filmpass/internal/utils"
)

// UserRepo provides user persistence. It also implements
// service.UserDirectory for the identity resolver.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Create inserts a registered user with a bcrypt hash and returns its ID.
func (r *UserRepo) Create(ctx context.Context, name, email, password, role string, cost int) (uint64, error) {
    email = strings.ToLower(strings.TrimSpace(email))
    hash, err := utils.HashPassword(password, cost)
    if err != nil {
        return 0, err
    }
    res, err := r.DB.ExecContext(ctx,
        "INSERT INTO users (name, email, password_hash, role) VALUES (?,?,?,?)",
        name, email, hash, role)
    if err != nil {
        if strings.Contains(strings.ToLower(err.Error()), "1062") {
            return 0, service.ErrEmailExists
        }
        return 0, err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return 0, err
    }
    return uint64(id), nil
}

// CreateGuest inserts an account for a first-time guest booking. The
// password column is non-null, so it holds the guest marker; the
// account can later be upgraded by registration out of band.
func (r *UserRepo) CreateGuest(ctx context.Context, name, email string) (uint64, error) {
    email = strings.ToLower(strings.TrimSpace(email))
    res, err := r.DB.ExecContext(ctx,
        "INSERT INTO users (name, email, password_hash, role) VALUES (?,?,?,?)",
        name, email, service.GuestPasswordMarker, service.RoleCustomer)
    if err != nil {
        if strings.Contains(strings.ToLower(err.Error()), "1062") {
            return 0, service.ErrEmailExists
        }
        return 0, err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return 0, err
    }
    return uint64(id), nil
}

// FindIDByEmail returns the id of the user with this normalized
// email, or service.ErrUserNotFound.
func (r *UserRepo) FindIDByEmail(ctx context.Context, email string) (uint64, error) {
    email = strings.ToLower(strings.TrimSpace(email))
    var id uint64
    err := r.DB.QueryRowContext(ctx,
        "SELECT id FROM users WHERE email=? LIMIT 1", email).Scan(&id)
    if err == sql.ErrNoRows {
        return 0, service.ErrUserNotFound
    }
    if err != nil {
        return 0, err
    }
    return id, nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
    email = strings.ToLower(strings.TrimSpace(email))
    var u model.User
    err := r.DB.QueryRowContext(ctx,
        "SELECT id,name,email,password_hash,role,created_at,updated_at FROM users WHERE email=? LIMIT 1",
        email).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt)
    return u, err
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
    var u model.User
    err := r.DB.QueryRowContext(ctx,
        "SELECT id,name,email,password_hash,role,created_at,updated_at FROM users WHERE id=? LIMIT 1",
        id).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt)
    return u, err
}
