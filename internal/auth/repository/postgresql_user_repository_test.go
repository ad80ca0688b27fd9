package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/petclinic-auth/internal/auth/domain"
	"github.com/allisson/petclinic-auth/internal/testutil"
)

func TestNewPostgreSQLUserRepository(t *testing.T) {
	testutil.SkipIfNoPostgres(t)

	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)

	repo := NewPostgreSQLUserRepository(db)
	assert.NotNil(t, repo)
	assert.IsType(t, &PostgreSQLUserRepository{}, repo)
}

func TestPostgreSQLUserRepository_Create(t *testing.T) {
	testutil.SkipIfNoPostgres(t)

	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLUserRepository(db)
	ctx := context.Background()

	user := &authDomain.User{
		Email:        "jane@example.com",
		Name:         "Jane Doe",
		PasswordHash: "hashed-password",
		ProfileImage: "https://example.com/jane.png",
		Status:       authDomain.AccountStatusActive,
		Type:         authDomain.AccountTypeOwner,
		CreatedAt:    time.Now().UTC(),
	}

	err := repo.Create(ctx, user)
	require.NoError(t, err)
	assert.NotZero(t, user.ID)

	// Verify the user was created by retrieving it
	retrieved, err := repo.Get(ctx, user.ID)
	require.NoError(t, err)

	assert.Equal(t, user.ID, retrieved.ID)
	assert.Equal(t, user.Email, retrieved.Email)
	assert.Equal(t, user.Name, retrieved.Name)
	assert.Equal(t, user.PasswordHash, retrieved.PasswordHash)
	assert.Equal(t, user.ProfileImage, retrieved.ProfileImage)
	assert.Equal(t, authDomain.AccountStatusActive, retrieved.Status)
	assert.Equal(t, authDomain.AccountTypeOwner, retrieved.Type)
	assert.WithinDuration(t, user.CreatedAt, retrieved.CreatedAt, time.Second)
}

func TestPostgreSQLUserRepository_Get_NotFound(t *testing.T) {
	testutil.SkipIfNoPostgres(t)

	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLUserRepository(db)
	ctx := context.Background()

	user, err := repo.Get(ctx, 424242)

	assert.Error(t, err)
	assert.Nil(t, user)
	assert.ErrorIs(t, err, authDomain.ErrUserNotFound)
}

func TestPostgreSQLUserRepository_GetByEmail(t *testing.T) {
	testutil.SkipIfNoPostgres(t)

	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLUserRepository(db)
	ctx := context.Background()

	user := &authDomain.User{
		Email:        "byemail@example.com",
		Name:         "By Email",
		PasswordHash: "hashed-password",
		Status:       authDomain.AccountStatusActive,
		Type:         authDomain.AccountTypeOwner,
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, repo.Create(ctx, user))

	retrieved, err := repo.GetByEmail(ctx, user.Email)
	require.NoError(t, err)
	assert.Equal(t, user.ID, retrieved.ID)
	assert.Equal(t, user.Email, retrieved.Email)
}

func TestPostgreSQLUserRepository_GetByEmail_NotFound(t *testing.T) {
	testutil.SkipIfNoPostgres(t)

	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLUserRepository(db)
	ctx := context.Background()

	user, err := repo.GetByEmail(ctx, "missing@example.com")

	assert.Error(t, err)
	assert.Nil(t, user)
	assert.ErrorIs(t, err, authDomain.ErrUserNotFound)
}

func TestPostgreSQLUserRepository_CreateOwner(t *testing.T) {
	testutil.SkipIfNoPostgres(t)

	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLUserRepository(db)
	ctx := context.Background()

	userID := testutil.CreateTestUser(t, db, "postgres", "owner@example.com")

	owner := &authDomain.Owner{
		UserID:    userID,
		Phone:     "555-0199",
		Address:   "42 Clinic Road",
		CreatedAt: time.Now().UTC(),
	}

	err := repo.CreateOwner(ctx, owner)
	require.NoError(t, err)
	assert.NotZero(t, owner.ID)

	retrieved, err := repo.GetOwnerByUserID(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, owner.ID, retrieved.ID)
	assert.Equal(t, owner.UserID, retrieved.UserID)
	assert.Equal(t, owner.Phone, retrieved.Phone)
	assert.Equal(t, owner.Address, retrieved.Address)
}

func TestPostgreSQLUserRepository_GetOwnerByUserID_NotFound(t *testing.T) {
	testutil.SkipIfNoPostgres(t)

	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLUserRepository(db)
	ctx := context.Background()

	userID := testutil.CreateTestUser(t, db, "postgres", "noprofile@example.com")

	owner, err := repo.GetOwnerByUserID(ctx, userID)

	assert.Error(t, err)
	assert.Nil(t, owner)
	assert.ErrorIs(t, err, authDomain.ErrOwnerNotFound)
}

func TestPostgreSQLUserRepository_Create_InactiveStaff(t *testing.T) {
	testutil.SkipIfNoPostgres(t)

	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLUserRepository(db)
	ctx := context.Background()

	user := &authDomain.User{
		Email:        "staff@example.com",
		Name:         "Staff Member",
		PasswordHash: "hashed-password",
		Status:       authDomain.AccountStatusInactive,
		Type:         authDomain.AccountTypeStaff,
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, repo.Create(ctx, user))

	retrieved, err := repo.Get(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, authDomain.AccountStatusInactive, retrieved.Status)
	assert.Equal(t, authDomain.AccountTypeStaff, retrieved.Type)
	assert.False(t, retrieved.CanAuthenticate())
}
