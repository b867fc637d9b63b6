package models

// Room holds the descriptive attributes of one catalogued room. All fields are
// free-form except NumWalls; nothing is validated across fields.
type Room struct {
	ID           int64  `db:"room_id"`
	Name         string `db:"room_name"`
	Desc         string `db:"room_desc"`
	NumWalls     int    `db:"room_num_walls"`
	WallColor1   string `db:"room_wall_color1"`
	WallColor2   string `db:"room_wall_color2"`
	CeilingColor string `db:"room_ceiling_color"`
	FloorColor   string `db:"room_floor_color"`
	TrimColor    string `db:"room_trim_color"`
	OtherDetails string `db:"room_other_details"`
	UserID       int64  `db:"user_id"`
}
