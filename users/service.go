package users

// Service layer for user accounts. Encapsulates the store operations
// (create, find-by-username, count-by-username) over the pgx pool and the
// credential-verification flow used by the authentication middleware.

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/minblog-go/apperror"
	"github.com/user/minblog-go/auth"
	"github.com/user/minblog-go/db"
)

// pgUniqueViolation is the PostgreSQL error code for unique constraint
// violations, raised by the users_username_key constraint on concurrent
// registrations that slip past the count pre-check.
const pgUniqueViolation = "23505"

// duplicateUsernameMessage is the client-facing message for a taken username.
const duplicateUsernameMessage = "username already exists"

// Service defines the user account operations. Handlers and the
// authentication middleware depend on this interface rather than the
// concrete pgx-backed implementation.
type Service interface {
	// Register persists a new user after hashing the password. Duplicate
	// usernames yield a ConflictError regardless of whether the pre-check or
	// the database constraint caught them.
	Register(ctx context.Context, nu *NewUser) (*UserResponse, error)
	// GetUserByUsername finds a user by exact username match.
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	// CountByUsername counts users with the given username. Used as the
	// best-effort pre-check before insertion.
	CountByUsername(ctx context.Context, username string) (int64, error)
	// VerifyCredentials implements auth.CredentialVerifier for the Basic
	// authentication middleware.
	VerifyCredentials(ctx context.Context, username, password string) (any, error)
}

// userService is the pgx-backed implementation of Service.
type userService struct {
	db *pgxpool.Pool
}

// NewUserService creates a new user Service on top of the given pool.
func NewUserService(pool *pgxpool.Pool) Service {
	return &userService{db: pool}
}

// Register creates a new user account.
//
// The count pre-check is a fast-path courtesy only: two concurrent
// registrations for the same username can both pass it. The UNIQUE
// constraint on users.username is the authoritative guard, and its violation
// maps to the same client-facing conflict.
func (s *userService) Register(ctx context.Context, nu *NewUser) (*UserResponse, error) {
	count, err := s.CountByUsername(ctx, nu.Username)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperror.NewConflictError(duplicateUsernameMessage, nil)
	}

	// Hashing happens strictly before persistence; the plaintext never
	// reaches the database.
	hashed, err := auth.HashPassword(nu.Password)
	if err != nil {
		return nil, apperror.NewInternalError("failed to hash password", err)
	}

	query := `INSERT INTO users (username, password, first_name, last_name)
              VALUES ($1, $2, $3, $4)
              RETURNING id`
	var id int64
	err = s.db.QueryRow(ctx, query, nu.Username, hashed, nu.FirstName, nu.LastName).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, apperror.NewConflictError(duplicateUsernameMessage, nil)
		}
		return nil, db.StoreError("failed to create user", err)
	}

	return &UserResponse{
		UserName:  nu.Username,
		FirstName: nu.FirstName,
		LastName:  nu.LastName,
	}, nil
}

// GetUserByUsername retrieves a user by exact username match.
func (s *userService) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	var user User
	query := `SELECT id, username, password, first_name, last_name, created_at
              FROM users WHERE username = $1`
	err := s.db.QueryRow(ctx, query, username).Scan(
		&user.ID,
		&user.Username,
		&user.HashedPassword,
		&user.FirstName,
		&user.LastName,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("user '%s' not found", username), nil)
		}
		return nil, db.StoreError("failed to get user by username", err)
	}
	return &user, nil
}

// CountByUsername returns how many users carry the given username.
func (s *userService) CountByUsername(ctx context.Context, username string) (int64, error) {
	var count int64
	err := s.db.QueryRow(ctx, `SELECT count(*) FROM users WHERE username = $1`, username).Scan(&count)
	if err != nil {
		return 0, db.StoreError("failed to count users by username", err)
	}
	return count, nil
}

// VerifyCredentials resolves and verifies a username/password pair for the
// authentication gate. Unknown usernames and wrong passwords both map to the
// same generic AuthError so the response cannot be used to enumerate
// accounts; backend failures pass through with their own status.
func (s *userService) VerifyCredentials(ctx context.Context, username, password string) (any, error) {
	user, err := s.GetUserByUsername(ctx, username)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewAuthError(auth.GenericCredentialsMessage, nil)
		}
		return nil, err
	}
	if !auth.VerifyPassword(password, user.HashedPassword) {
		return nil, apperror.NewAuthError(auth.GenericCredentialsMessage, nil)
	}
	return user, nil
}
