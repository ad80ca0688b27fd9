package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	authDomain "github.com/allisson/petclinic-auth/internal/auth/domain"
	"github.com/allisson/petclinic-auth/internal/database"
	apperrors "github.com/allisson/petclinic-auth/internal/errors"
)

// MySQLRefreshTokenRepository implements refresh token persistence for MySQL.
// Uses transaction support via database.GetTx().
type MySQLRefreshTokenRepository struct {
	db *sql.DB
}

// Create inserts a new refresh token record. Returns an error if database
// insertion fails.
func (m *MySQLRefreshTokenRepository) Create(ctx context.Context, token *authDomain.RefreshToken) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO refresh_tokens (token, user_id, created_at, expires_at, revoked_at, replaced_by, device_info)
			  VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := querier.ExecContext(
		ctx,
		query,
		token.Token,
		token.UserID,
		token.CreatedAt,
		token.ExpiresAt,
		token.RevokedAt,
		token.ReplacedBy,
		token.DeviceInfo,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create refresh token")
	}
	return nil
}

// GetByToken retrieves a record by its token value. Returns
// ErrRefreshTokenNotFound if the record doesn't exist.
func (m *MySQLRefreshTokenRepository) GetByToken(
	ctx context.Context,
	token string,
) (*authDomain.RefreshToken, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT token, user_id, created_at, expires_at, revoked_at, replaced_by, device_info
			  FROM refresh_tokens WHERE token = ?`

	var record authDomain.RefreshToken

	err := querier.QueryRowContext(ctx, query, token).Scan(
		&record.Token,
		&record.UserID,
		&record.CreatedAt,
		&record.ExpiresAt,
		&record.RevokedAt,
		&record.ReplacedBy,
		&record.DeviceInfo,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, authDomain.ErrRefreshTokenNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get refresh token")
	}

	return &record, nil
}

// GetActiveByUser retrieves all non-revoked, unexpired records for a user,
// newest first.
func (m *MySQLRefreshTokenRepository) GetActiveByUser(
	ctx context.Context,
	userID int64,
) ([]*authDomain.RefreshToken, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT token, user_id, created_at, expires_at, revoked_at, replaced_by, device_info
			  FROM refresh_tokens
			  WHERE user_id = ? AND revoked_at IS NULL AND expires_at > NOW()
			  ORDER BY created_at DESC`

	rows, err := querier.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list active refresh tokens")
	}
	defer func() { _ = rows.Close() }()

	var records []*authDomain.RefreshToken
	for rows.Next() {
		var record authDomain.RefreshToken
		if err := rows.Scan(
			&record.Token,
			&record.UserID,
			&record.CreatedAt,
			&record.ExpiresAt,
			&record.RevokedAt,
			&record.ReplacedBy,
			&record.DeviceInfo,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan refresh token")
		}
		records = append(records, &record)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate refresh tokens")
	}

	return records, nil
}

// Revoke conditionally sets revoked_at if it is still unset. The WHERE clause
// makes the write a compare-and-set: of two concurrent rotations of the same
// token exactly one observes a row transition.
func (m *MySQLRefreshTokenRepository) Revoke(
	ctx context.Context,
	token string,
	at time.Time,
) (bool, error) {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE refresh_tokens SET revoked_at = ?
			  WHERE token = ? AND revoked_at IS NULL`

	result, err := querier.ExecContext(ctx, query, at, token)
	if err != nil {
		return false, apperrors.Wrap(err, "failed to revoke refresh token")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, apperrors.Wrap(err, "failed to read revoke result")
	}

	return affected == 1, nil
}

// RevokeAllByUser sets revoked_at on every non-revoked record belonging to
// the user. Idempotent: repeated invocations touch no further rows.
func (m *MySQLRefreshTokenRepository) RevokeAllByUser(
	ctx context.Context,
	userID int64,
	at time.Time,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE refresh_tokens SET revoked_at = ?
			  WHERE user_id = ? AND revoked_at IS NULL`

	if _, err := querier.ExecContext(ctx, query, at, userID); err != nil {
		return apperrors.Wrap(err, "failed to revoke refresh token family")
	}
	return nil
}

// SetReplacedBy links a retired record to its successor token value.
func (m *MySQLRefreshTokenRepository) SetReplacedBy(
	ctx context.Context,
	token string,
	successor string,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE refresh_tokens SET replaced_by = ? WHERE token = ?`

	if _, err := querier.ExecContext(ctx, query, successor, token); err != nil {
		return apperrors.Wrap(err, "failed to link replaced refresh token")
	}
	return nil
}

// DeleteExpiredBefore removes records whose expiry passed before the cutoff.
// Returns the number of rows removed.
func (m *MySQLRefreshTokenRepository) DeleteExpiredBefore(
	ctx context.Context,
	cutoff time.Time,
) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	query := `DELETE FROM refresh_tokens WHERE expires_at < ?`

	result, err := querier.ExecContext(ctx, query, cutoff)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete expired refresh tokens")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to read delete result")
	}
	return affected, nil
}

// CountExpiredBefore counts records DeleteExpiredBefore would remove.
func (m *MySQLRefreshTokenRepository) CountExpiredBefore(
	ctx context.Context,
	cutoff time.Time,
) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT COUNT(*) FROM refresh_tokens WHERE expires_at < ?`

	var count int64
	if err := querier.QueryRowContext(ctx, query, cutoff).Scan(&count); err != nil {
		return 0, apperrors.Wrap(err, "failed to count expired refresh tokens")
	}
	return count, nil
}

// NewMySQLRefreshTokenRepository creates a new MySQL refresh token repository.
func NewMySQLRefreshTokenRepository(db *sql.DB) *MySQLRefreshTokenRepository {
	return &MySQLRefreshTokenRepository{db: db}
}
