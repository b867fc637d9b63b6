package service

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/pbkdf2"

	"github.com/dbrown13/home-harmony/internal/models"
	"github.com/dbrown13/home-harmony/internal/repository"
)

var (
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrUserNotFound      = errors.New("user not found")
	ErrWrongPassword     = errors.New("wrong password")
)

const (
	saltBytes     = 15
	kdfIterations = 29000
	kdfSaltBytes  = 16
	kdfKeyLen     = 32
)

// AuthService owns credential records: per-user salts, password hashing and
// verification, and account updates.
type AuthService struct {
	repo   repository.UserRepository
	logger *zap.Logger
}

func NewAuthService(repo repository.UserRepository, logger *zap.Logger) *AuthService {
	return &AuthService{repo: repo, logger: logger}
}

// Register creates a credential record with a fresh random salt. The salt is
// generated once here and never changes for the lifetime of the account.
func (s *AuthService) Register(username, password string) (*models.User, error) {
	salt, err := generateSalt()
	if err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	hash, err := hashPassword(password, salt)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Salt:         salt,
		HashPassword: hash,
	}

	if err := s.repo.Create(user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserAlreadyExists
		}
		s.logger.Error("Failed to create user", zap.Error(err))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("User registered", zap.String("username", user.Username))
	return user, nil
}

// Verify checks a username/password pair against the stored record. A missing
// user yields ErrUserNotFound, a hash mismatch ErrWrongPassword; callers that
// face end users must collapse both into one generic message.
func (s *AuthService) Verify(username, password string) (*models.User, error) {
	user, err := s.repo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("Failed to get user by username", zap.Error(err))
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}

	if !verifyPassword(user.HashPassword, password, user.Salt) {
		return nil, ErrWrongPassword
	}

	return user, nil
}

// CheckPassword verifies the password of an already-resolved account, used
// before account updates.
func (s *AuthService) CheckPassword(user *models.User, password string) bool {
	return verifyPassword(user.HashPassword, password, user.Salt)
}

func (s *AuthService) GetByID(id int64) (*models.User, error) {
	user, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}
	return user, nil
}

// Update changes the username and/or password of an account. Empty arguments
// leave the corresponding field alone. A password change keeps the user's
// original salt and only recomputes the hash.
func (s *AuthService) Update(id int64, username, password string) (*models.User, error) {
	user, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}

	if username != "" && username != user.Username {
		_, err := s.repo.GetByUsername(username)
		if err == nil {
			return nil, ErrUserAlreadyExists
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("failed to check username: %w", err)
		}
		user.Username = username
	}

	if password != "" {
		hash, err := hashPassword(password, user.Salt)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.HashPassword = hash
	}

	if err := s.repo.Update(user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserAlreadyExists
		}
		s.logger.Error("Failed to update user", zap.Int64("user_id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

// Delete removes the account. Deleting an absent account is not an error.
func (s *AuthService) Delete(id int64) error {
	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("Failed to delete user", zap.Int64("user_id", id), zap.Error(err))
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

func generateSalt() (string, error) {
	b := make([]byte, saltBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// hashPassword derives a PBKDF2-SHA256 key over password+salt and encodes it
// together with the KDF parameters, e.g.
// $pbkdf2-sha256$i=29000$BASE64_KDFSALT$BASE64_KEY
func hashPassword(password, salt string) (string, error) {
	kdfSalt := make([]byte, kdfSaltBytes)
	if _, err := rand.Read(kdfSalt); err != nil {
		return "", err
	}

	key := pbkdf2.Key([]byte(password+salt), kdfSalt, kdfIterations, kdfKeyLen, sha256.New)

	encodedSalt := base64.RawStdEncoding.EncodeToString(kdfSalt)
	encodedKey := base64.RawStdEncoding.EncodeToString(key)

	return fmt.Sprintf("$pbkdf2-sha256$i=%d$%s$%s", kdfIterations, encodedSalt, encodedKey), nil
}

// verifyPassword recomputes the hash over password+salt with the parameters
// embedded in the encoded string and compares in constant time.
func verifyPassword(encoded, password, salt string) bool {
	sections := strings.Split(strings.TrimPrefix(encoded, "$"), "$")
	// Expected: ["pbkdf2-sha256", "i=29000", kdfsalt, key]
	if len(sections) != 4 || sections[0] != "pbkdf2-sha256" {
		return false
	}

	var iterations int
	if _, err := fmt.Sscanf(sections[1], "i=%d", &iterations); err != nil || iterations <= 0 {
		return false
	}

	kdfSalt, err := base64.RawStdEncoding.DecodeString(sections[2])
	if err != nil {
		return false
	}
	key, err := base64.RawStdEncoding.DecodeString(sections[3])
	if err != nil {
		return false
	}

	candidate := pbkdf2.Key([]byte(password+salt), kdfSalt, iterations, len(key), sha256.New)
	return subtle.ConstantTimeCompare(candidate, key) == 1
}
