package service

import (
	"strings"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dbrown13/home-harmony/internal/repository"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := repository.NewSQLiteDB(":memory:", zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, repository.Migrate(db))
	return db
}

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	repo := repository.NewUserRepository(newTestDB(t), zap.NewNop())
	return NewAuthService(repo, zap.NewNop())
}

func TestAuthService_RegisterAndVerify(t *testing.T) {
	auth := newAuthService(t)

	user, err := auth.Register("alice", "hunter2")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Len(t, user.Salt, 30) // 15 random bytes, hex-encoded
	assert.True(t, strings.HasPrefix(user.HashPassword, "$pbkdf2-sha256$i=29000$"))

	got, err := auth.Verify("alice", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
}

func TestAuthService_VerifyWrongPassword(t *testing.T) {
	auth := newAuthService(t)

	_, err := auth.Register("alice", "hunter2")
	require.NoError(t, err)

	_, err = auth.Verify("alice", "hunter3")
	assert.ErrorIs(t, err, ErrWrongPassword)
}

func TestAuthService_VerifyUnknownUser(t *testing.T) {
	auth := newAuthService(t)

	_, err := auth.Verify("bob", "whatever")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAuthService_RegisterTakenUsername(t *testing.T) {
	auth := newAuthService(t)

	_, err := auth.Register("alice", "hunter2")
	require.NoError(t, err)

	_, err = auth.Register("alice", "different")
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestAuthService_SaltsAndHashesDifferPerUser(t *testing.T) {
	auth := newAuthService(t)

	a, err := auth.Register("alice", "same-password")
	require.NoError(t, err)
	b, err := auth.Register("bob", "same-password")
	require.NoError(t, err)

	assert.NotEqual(t, a.Salt, b.Salt)
	assert.NotEqual(t, a.HashPassword, b.HashPassword)
}

func TestAuthService_UpdatePasswordKeepsSalt(t *testing.T) {
	auth := newAuthService(t)

	user, err := auth.Register("alice", "hunter2")
	require.NoError(t, err)
	originalSalt := user.Salt

	updated, err := auth.Update(user.ID, "", "newpass")
	require.NoError(t, err)
	assert.Equal(t, originalSalt, updated.Salt)

	_, err = auth.Verify("alice", "hunter2")
	assert.ErrorIs(t, err, ErrWrongPassword)

	_, err = auth.Verify("alice", "newpass")
	assert.NoError(t, err)
}

func TestAuthService_UpdateUsername(t *testing.T) {
	auth := newAuthService(t)

	user, err := auth.Register("alice", "hunter2")
	require.NoError(t, err)

	_, err = auth.Update(user.ID, "alicia", "")
	require.NoError(t, err)

	_, err = auth.Verify("alice", "hunter2")
	assert.ErrorIs(t, err, ErrUserNotFound)

	got, err := auth.Verify("alicia", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
}

func TestAuthService_UpdateToTakenUsername(t *testing.T) {
	auth := newAuthService(t)

	_, err := auth.Register("alice", "pw1")
	require.NoError(t, err)
	bob, err := auth.Register("bob", "pw2")
	require.NoError(t, err)

	_, err = auth.Update(bob.ID, "alice", "")
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestAuthService_CheckPassword(t *testing.T) {
	auth := newAuthService(t)

	user, err := auth.Register("alice", "hunter2")
	require.NoError(t, err)

	assert.True(t, auth.CheckPassword(user, "hunter2"))
	assert.False(t, auth.CheckPassword(user, "hunter3"))
}

func TestAuthService_DeleteMissingUser(t *testing.T) {
	auth := newAuthService(t)

	assert.NoError(t, auth.Delete(99))
}

func TestVerifyPassword_MalformedEncoding(t *testing.T) {
	assert.False(t, verifyPassword("", "pw", "salt"))
	assert.False(t, verifyPassword("plainhash", "pw", "salt"))
	assert.False(t, verifyPassword("$bcrypt$i=10$a$b", "pw", "salt"))
	assert.False(t, verifyPassword("$pbkdf2-sha256$i=zero$a$b", "pw", "salt"))
	assert.False(t, verifyPassword("$pbkdf2-sha256$i=29000$!!$??", "pw", "salt"))
}
