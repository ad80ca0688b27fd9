package repository

import (
	"context"
	"database/sql"
	"errors"

	authDomain "github.com/allisson/petclinic-auth/internal/auth/domain"
	"github.com/allisson/petclinic-auth/internal/database"
	apperrors "github.com/allisson/petclinic-auth/internal/errors"
)

// MySQLUserRepository implements User and Owner persistence for MySQL.
// Uses transaction support via database.GetTx().
type MySQLUserRepository struct {
	db *sql.DB
}

// Create inserts a new User and fills in the generated ID.
func (m *MySQLUserRepository) Create(ctx context.Context, user *authDomain.User) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO users (email, name, password_hash, profile_image, status, type, created_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?)`

	result, err := querier.ExecContext(
		ctx,
		query,
		user.Email,
		user.Name,
		user.PasswordHash,
		user.ProfileImage,
		user.Status,
		user.Type,
		user.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create user")
	}

	id, err := result.LastInsertId()
	if err != nil {
		return apperrors.Wrap(err, "failed to read created user id")
	}
	user.ID = id
	return nil
}

// Get retrieves a User by ID. Returns ErrUserNotFound if the user doesn't
// exist.
func (m *MySQLUserRepository) Get(ctx context.Context, userID int64) (*authDomain.User, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, email, name, password_hash, profile_image, status, type, created_at
			  FROM users WHERE id = ?`

	return scanUser(querier.QueryRowContext(ctx, query, userID))
}

// GetByEmail retrieves a User by email. Returns ErrUserNotFound if the user
// doesn't exist.
func (m *MySQLUserRepository) GetByEmail(ctx context.Context, email string) (*authDomain.User, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, email, name, password_hash, profile_image, status, type, created_at
			  FROM users WHERE email = ?`

	return scanUser(querier.QueryRowContext(ctx, query, email))
}

// CreateOwner inserts a new Owner profile and fills in the generated ID.
func (m *MySQLUserRepository) CreateOwner(ctx context.Context, owner *authDomain.Owner) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO owners (user_id, phone, address, created_at)
			  VALUES (?, ?, ?, ?)`

	result, err := querier.ExecContext(
		ctx,
		query,
		owner.UserID,
		owner.Phone,
		owner.Address,
		owner.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create owner")
	}

	id, err := result.LastInsertId()
	if err != nil {
		return apperrors.Wrap(err, "failed to read created owner id")
	}
	owner.ID = id
	return nil
}

// GetOwnerByUserID retrieves the Owner profile linked to a user. Returns
// ErrOwnerNotFound if no profile exists.
func (m *MySQLUserRepository) GetOwnerByUserID(
	ctx context.Context,
	userID int64,
) (*authDomain.Owner, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, user_id, phone, address, created_at FROM owners WHERE user_id = ?`

	var owner authDomain.Owner

	err := querier.QueryRowContext(ctx, query, userID).Scan(
		&owner.ID,
		&owner.UserID,
		&owner.Phone,
		&owner.Address,
		&owner.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, authDomain.ErrOwnerNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get owner")
	}

	return &owner, nil
}

// NewMySQLUserRepository creates a new MySQL User repository.
func NewMySQLUserRepository(db *sql.DB) *MySQLUserRepository {
	return &MySQLUserRepository{db: db}
}
