package models

// Image is one stored reference photograph. Data holds the raw bytes exactly
// as uploaded; Type is the filename extension recorded at upload time. The
// user and room references are not enforced by the schema.
type Image struct {
	ID     int64  `db:"image_id"`
	Name   string `db:"image_name"`
	Desc   string `db:"image_desc"`
	Data   []byte `db:"image_data"`
	Type   string `db:"image_type"`
	UserID int64  `db:"user_id"`
	RoomID int64  `db:"room_id"`
}

// ImageWithRoom is an Image joined with the display name of its room.
type ImageWithRoom struct {
	Image
	RoomName string `db:"room_name"`
}
