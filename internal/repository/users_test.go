package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dbrown13/home-harmony/internal/models"
)

func TestUserRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db, zap.NewNop())

	user := &models.User{Username: "alice", Salt: "aabbcc", HashPassword: "$pbkdf2-sha256$i=29000$x$y"}
	require.NoError(t, repo.Create(user))
	assert.NotZero(t, user.ID)

	byName, err := repo.GetByUsername("alice")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byName.ID)
	assert.Equal(t, "aabbcc", byName.Salt)
	assert.Equal(t, user.HashPassword, byName.HashPassword)

	byID, err := repo.GetByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", byID.Username)
}

func TestUserRepository_DuplicateUsername(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db, zap.NewNop())

	require.NoError(t, repo.Create(&models.User{Username: "alice", Salt: "s1", HashPassword: "h1"}))

	err := repo.Create(&models.User{Username: "alice", Salt: "s2", HashPassword: "h2"})
	assert.ErrorIs(t, err, ErrDuplicate)

	// The original row is untouched.
	user, err := repo.GetByUsername("alice")
	require.NoError(t, err)
	assert.Equal(t, "s1", user.Salt)
}

func TestUserRepository_GetMissing(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db, zap.NewNop())

	_, err := repo.GetByUsername("nobody")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.GetByID(42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserRepository_Update(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db, zap.NewNop())

	user := &models.User{Username: "alice", Salt: "s1", HashPassword: "h1"}
	require.NoError(t, repo.Create(user))

	user.Username = "alice2"
	user.HashPassword = "h2"
	require.NoError(t, repo.Update(user))

	got, err := repo.GetByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice2", got.Username)
	assert.Equal(t, "h2", got.HashPassword)
	assert.Equal(t, "s1", got.Salt)
}

func TestUserRepository_UpdateToTakenUsername(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db, zap.NewNop())

	require.NoError(t, repo.Create(&models.User{Username: "alice", Salt: "s1", HashPassword: "h1"}))
	bob := &models.User{Username: "bob", Salt: "s2", HashPassword: "h2"}
	require.NoError(t, repo.Create(bob))

	bob.Username = "alice"
	assert.ErrorIs(t, repo.Update(bob), ErrDuplicate)
}

func TestUserRepository_DeleteIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db, zap.NewNop())

	user := &models.User{Username: "alice", Salt: "s1", HashPassword: "h1"}
	require.NoError(t, repo.Create(user))

	require.NoError(t, repo.Delete(user.ID))
	_, err := repo.GetByID(user.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, repo.Delete(user.ID))
}
