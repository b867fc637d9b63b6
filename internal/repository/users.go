package repository

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/dbrown13/home-harmony/internal/models"
)

type UserRepository interface {
	Create(user *models.User) error
	GetByUsername(username string) (*models.User, error)
	GetByID(id int64) (*models.User, error)
	Update(user *models.User) error
	Delete(id int64) error
}

type userRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewUserRepository(db *sqlx.DB, logger *zap.Logger) UserRepository {
	return &userRepository{db: db, logger: logger}
}

// Create inserts the user and fills in the generated ID. A username collision
// surfaces as ErrDuplicate and leaves the table untouched.
func (r *userRepository) Create(user *models.User) error {
	query := `INSERT INTO users (username, salt, hash_password) VALUES (?, ?, ?)`
	res, err := r.db.Exec(query, user.Username, user.Salt, user.HashPassword)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	user.ID = id
	return nil
}

func (r *userRepository) GetByUsername(username string) (*models.User, error) {
	var user models.User
	query := `SELECT user_id, username, salt, hash_password FROM users WHERE username = ?`
	err := r.db.Get(&user, query, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByID(id int64) (*models.User, error) {
	var user models.User
	query := `SELECT user_id, username, salt, hash_password FROM users WHERE user_id = ?`
	err := r.db.Get(&user, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Update(user *models.User) error {
	query := `UPDATE users SET username = ?, salt = ?, hash_password = ? WHERE user_id = ?`
	_, err := r.db.Exec(query, user.Username, user.Salt, user.HashPassword, user.ID)
	if err != nil && isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

// Delete is idempotent: removing an absent user is not an error.
func (r *userRepository) Delete(id int64) error {
	query := `DELETE FROM users WHERE user_id = ?`
	_, err := r.db.Exec(query, id)
	return err
}

// isUniqueViolation reports whether err is a SQLite UNIQUE constraint failure.
// The driver does not export a stable error type for this, so the message is
// the contract.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
