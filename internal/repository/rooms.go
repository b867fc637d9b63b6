package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/dbrown13/home-harmony/internal/models"
)

type RoomRepository interface {
	Create(room *models.Room) error
	GetByID(id int64) (*models.Room, error)
	GetByUser(userID int64) ([]*models.Room, error)
	Update(room *models.Room) error
	Delete(id int64) error
}

type roomRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewRoomRepository(db *sqlx.DB, logger *zap.Logger) RoomRepository {
	return &roomRepository{db: db, logger: logger}
}

func (r *roomRepository) Create(room *models.Room) error {
	query := `INSERT INTO rooms (room_name, room_desc, room_num_walls, room_wall_color1, room_wall_color2,
		room_ceiling_color, room_floor_color, room_trim_color, room_other_details, user_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.Exec(query, room.Name, room.Desc, room.NumWalls, room.WallColor1, room.WallColor2,
		room.CeilingColor, room.FloorColor, room.TrimColor, room.OtherDetails, room.UserID)
	if err != nil {
		return err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	room.ID = id
	return nil
}

func (r *roomRepository) GetByID(id int64) (*models.Room, error) {
	var room models.Room
	query := `SELECT room_id, room_name, room_desc, room_num_walls, room_wall_color1, room_wall_color2,
		room_ceiling_color, room_floor_color, room_trim_color, room_other_details, user_id
		FROM rooms WHERE room_id = ?`
	err := r.db.Get(&room, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &room, nil
}

func (r *roomRepository) GetByUser(userID int64) ([]*models.Room, error) {
	rooms := []*models.Room{}
	query := `SELECT room_id, room_name, room_desc, room_num_walls, room_wall_color1, room_wall_color2,
		room_ceiling_color, room_floor_color, room_trim_color, room_other_details, user_id
		FROM rooms WHERE user_id = ? ORDER BY room_id`
	if err := r.db.Select(&rooms, query, userID); err != nil {
		return nil, err
	}
	return rooms, nil
}

func (r *roomRepository) Update(room *models.Room) error {
	query := `UPDATE rooms SET room_name = ?, room_desc = ?, room_num_walls = ?, room_wall_color1 = ?,
		room_wall_color2 = ?, room_ceiling_color = ?, room_floor_color = ?, room_trim_color = ?,
		room_other_details = ? WHERE room_id = ?`
	_, err := r.db.Exec(query, room.Name, room.Desc, room.NumWalls, room.WallColor1, room.WallColor2,
		room.CeilingColor, room.FloorColor, room.TrimColor, room.OtherDetails, room.ID)
	return err
}

// Delete removes the room row only. Images referencing the room stay behind;
// referential cleanup is the service layer's decision.
func (r *roomRepository) Delete(id int64) error {
	query := `DELETE FROM rooms WHERE room_id = ?`
	_, err := r.db.Exec(query, id)
	return err
}
