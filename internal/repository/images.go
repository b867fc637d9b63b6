package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/dbrown13/home-harmony/internal/models"
)

type ImageRepository interface {
	Create(image *models.Image) error
	GetByID(id int64) (*models.Image, error)
	GetByRoom(roomID int64) ([]*models.Image, error)
	GetByOwner(userID int64) ([]*models.ImageWithRoom, error)
	UpdateMeta(id int64, name, desc string) error
	Delete(id int64) error
}

type imageRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewImageRepository(db *sqlx.DB, logger *zap.Logger) ImageRepository {
	return &imageRepository{db: db, logger: logger}
}

func (r *imageRepository) Create(image *models.Image) error {
	query := `INSERT INTO images (image_name, image_desc, image_data, image_type, user_id, room_id)
		VALUES (?, ?, ?, ?, ?, ?)`
	res, err := r.db.Exec(query, image.Name, image.Desc, image.Data, image.Type, image.UserID, image.RoomID)
	if err != nil {
		return err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	image.ID = id
	return nil
}

func (r *imageRepository) GetByID(id int64) (*models.Image, error) {
	var image models.Image
	query := `SELECT image_id, image_name, image_desc, image_data, image_type, user_id, room_id
		FROM images WHERE image_id = ?`
	err := r.db.Get(&image, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &image, nil
}

// GetByRoom returns the room's images in insertion order, which the rowid
// primary key makes explicit.
func (r *imageRepository) GetByRoom(roomID int64) ([]*models.Image, error) {
	images := []*models.Image{}
	query := `SELECT image_id, image_name, image_desc, image_data, image_type, user_id, room_id
		FROM images WHERE room_id = ? ORDER BY image_id`
	if err := r.db.Select(&images, query, roomID); err != nil {
		return nil, err
	}
	return images, nil
}

// GetByOwner returns all of a user's images joined with the display name of
// their room, grouped by room.
func (r *imageRepository) GetByOwner(userID int64) ([]*models.ImageWithRoom, error) {
	images := []*models.ImageWithRoom{}
	query := `SELECT images.image_id, images.image_name, images.image_desc, images.image_data,
		images.image_type, images.user_id, images.room_id, rooms.room_name
		FROM images
		INNER JOIN rooms ON rooms.room_id = images.room_id
		WHERE images.user_id = ?
		ORDER BY images.room_id, images.image_id`
	if err := r.db.Select(&images, query, userID); err != nil {
		return nil, err
	}
	return images, nil
}

// UpdateMeta changes the display name and description. The payload and type
// columns are immutable after creation.
func (r *imageRepository) UpdateMeta(id int64, name, desc string) error {
	query := `UPDATE images SET image_name = ?, image_desc = ? WHERE image_id = ?`
	res, err := r.db.Exec(query, name, desc, id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *imageRepository) Delete(id int64) error {
	query := `DELETE FROM images WHERE image_id = ?`
	_, err := r.db.Exec(query, id)
	return err
}
