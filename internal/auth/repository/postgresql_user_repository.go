package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	authDomain "github.com/allisson/petclinic-auth/internal/auth/domain"
	"github.com/allisson/petclinic-auth/internal/database"
	apperrors "github.com/allisson/petclinic-auth/internal/errors"
)

// PostgreSQLUserRepository implements User and Owner persistence for
// PostgreSQL. Uses transaction support via database.GetTx().
type PostgreSQLUserRepository struct {
	db *sql.DB
}

// Create inserts a new User and fills in the generated ID.
func (p *PostgreSQLUserRepository) Create(ctx context.Context, user *authDomain.User) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO users (email, name, password_hash, profile_image, status, type, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id`

	err := querier.QueryRowContext(
		ctx,
		query,
		user.Email,
		user.Name,
		user.PasswordHash,
		user.ProfileImage,
		user.Status,
		user.Type,
		user.CreatedAt,
	).Scan(&user.ID)
	if err != nil {
		return apperrors.Wrap(err, "failed to create user")
	}
	return nil
}

// Get retrieves a User by ID. Returns ErrUserNotFound if the user doesn't
// exist.
func (p *PostgreSQLUserRepository) Get(ctx context.Context, userID int64) (*authDomain.User, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, email, name, password_hash, profile_image, status, type, created_at
			  FROM users WHERE id = $1`

	return scanUser(querier.QueryRowContext(ctx, query, userID))
}

// GetByEmail retrieves a User by email. Returns ErrUserNotFound if the user
// doesn't exist.
func (p *PostgreSQLUserRepository) GetByEmail(ctx context.Context, email string) (*authDomain.User, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, email, name, password_hash, profile_image, status, type, created_at
			  FROM users WHERE email = $1`

	return scanUser(querier.QueryRowContext(ctx, query, email))
}

// CreateOwner inserts a new Owner profile and fills in the generated ID.
func (p *PostgreSQLUserRepository) CreateOwner(ctx context.Context, owner *authDomain.Owner) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO owners (user_id, phone, address, created_at)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id`

	err := querier.QueryRowContext(
		ctx,
		query,
		owner.UserID,
		owner.Phone,
		owner.Address,
		owner.CreatedAt,
	).Scan(&owner.ID)
	if err != nil {
		return apperrors.Wrap(err, "failed to create owner")
	}
	return nil
}

// GetOwnerByUserID retrieves the Owner profile linked to a user. Returns
// ErrOwnerNotFound if no profile exists.
func (p *PostgreSQLUserRepository) GetOwnerByUserID(
	ctx context.Context,
	userID int64,
) (*authDomain.Owner, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, user_id, phone, address, created_at FROM owners WHERE user_id = $1`

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

// NewPostgreSQLUserRepository creates a new PostgreSQL User repository.
func NewPostgreSQLUserRepository(db *sql.DB) *PostgreSQLUserRepository {
	return &PostgreSQLUserRepository{db: db}
}

// scanUser materializes a user row, validating the account type at the
// storage boundary so unknown values never reach domain logic.
func scanUser(row *sql.Row) (*authDomain.User, error) {
	var (
		user       authDomain.User
		rawStatus  string
		rawType    string
	)

	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.PasswordHash,
		&user.ProfileImage,
		&rawStatus,
		&rawType,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, authDomain.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get user")
	}

	user.Status = authDomain.AccountStatus(rawStatus)
	accountType, ok := authDomain.ParseAccountType(rawType)
	if !ok {
		return nil, apperrors.Wrap(fmt.Errorf("unknown account type %q", rawType), "failed to get user")
	}
	user.Type = accountType

	return &user, nil
}
