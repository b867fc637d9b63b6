package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dbrown13/home-harmony/internal/middleware"
	"github.com/dbrown13/home-harmony/internal/models"
	"github.com/dbrown13/home-harmony/internal/repository"
	"github.com/dbrown13/home-harmony/internal/service"
)

type RoomHandler interface {
	Home(c *gin.Context)
	Rooms(c *gin.Context)
	AddRoomPage(c *gin.Context)
	AddRoom(c *gin.Context)
	EditRoomPage(c *gin.Context)
	EditRoom(c *gin.Context)
	DeleteRoom(c *gin.Context)
}

type roomHandler struct {
	rooms  repository.RoomRepository
	images *service.ImageService
	logger *zap.Logger
}

func NewRoomHandler(rooms repository.RoomRepository, images *service.ImageService, logger *zap.Logger) RoomHandler {
	return &roomHandler{rooms: rooms, images: images, logger: logger}
}

// RoomForm carries the descriptive attributes posted by the add/edit forms.
type RoomForm struct {
	Name         string `form:"room_name"`
	Desc         string `form:"room_desc"`
	NumWalls     int    `form:"room_num_walls"`
	WallColor1   string `form:"room_wall_color1"`
	WallColor2   string `form:"room_wall_color2"`
	CeilingColor string `form:"room_ceiling_color"`
	FloorColor   string `form:"room_floor_color"`
	TrimColor    string `form:"room_trim_color"`
	OtherDetails string `form:"room_other_details"`
}

func (h *roomHandler) userRooms(c *gin.Context) []*models.Room {
	principal, ok := middleware.Principal(c)
	if !ok {
		return nil
	}
	rooms, err := h.rooms.GetByUser(principal.UserID)
	if err != nil {
		h.logger.Error("Failed to load rooms", zap.Int64("user_id", principal.UserID), zap.Error(err))
		return nil
	}
	return rooms
}

func (h *roomHandler) Home(c *gin.Context) {
	_, loggedIn := middleware.Principal(c)
	c.HTML(http.StatusOK, "home.html", gin.H{"rooms": h.userRooms(c), "login": loggedIn})
}

func (h *roomHandler) Rooms(c *gin.Context) {
	_, loggedIn := middleware.Principal(c)
	c.HTML(http.StatusOK, "rooms.html", gin.H{"rooms": h.userRooms(c), "login": loggedIn})
}

func (h *roomHandler) AddRoomPage(c *gin.Context) {
	c.HTML(http.StatusOK, "add_room.html", gin.H{"login": true})
}

func (h *roomHandler) AddRoom(c *gin.Context) {
	principal, _ := middleware.Principal(c)

	var form RoomForm
	if err := c.ShouldBind(&form); err != nil {
		h.logger.Error("Failed to bind room form", zap.Error(err))
		c.HTML(http.StatusBadRequest, "add_room.html", gin.H{"login": true, "error": true})
		return
	}

	room := &models.Room{
		Name:         form.Name,
		Desc:         form.Desc,
		NumWalls:     form.NumWalls,
		WallColor1:   form.WallColor1,
		WallColor2:   form.WallColor2,
		CeilingColor: form.CeilingColor,
		FloorColor:   form.FloorColor,
		TrimColor:    form.TrimColor,
		OtherDetails: form.OtherDetails,
		UserID:       principal.UserID,
	}

	if err := h.rooms.Create(room); err != nil {
		h.logger.Error("Failed to create room", zap.Error(err))
		c.HTML(http.StatusInternalServerError, "add_room.html", gin.H{"login": true, "error": true})
		return
	}

	h.logger.Info("Room created", zap.Int64("room_id", room.ID), zap.Int64("user_id", principal.UserID))
	c.Redirect(http.StatusSeeOther, "/rooms")
}

func (h *roomHandler) EditRoomPage(c *gin.Context) {
	roomID, err := strconv.ParseInt(c.Param("room_id"), 10, 64)
	if err != nil {
		c.Redirect(http.StatusSeeOther, "/rooms")
		return
	}

	room, err := h.rooms.GetByID(roomID)
	if err != nil {
		c.Redirect(http.StatusSeeOther, "/rooms")
		return
	}

	images, err := h.images.ByRoom(roomID)
	if err != nil {
		h.logger.Error("Failed to load room images", zap.Int64("room_id", roomID), zap.Error(err))
	}

	c.HTML(http.StatusOK, "edit_room.html", gin.H{
		"room":   room,
		"images": service.DisplayAll(images),
		"login":  true,
	})
}

func (h *roomHandler) EditRoom(c *gin.Context) {
	roomID, err := strconv.ParseInt(c.Param("room_id"), 10, 64)
	if err != nil {
		c.Redirect(http.StatusSeeOther, "/rooms")
		return
	}

	var form RoomForm
	if err := c.ShouldBind(&form); err != nil {
		h.logger.Error("Failed to bind room form", zap.Error(err))
		c.Redirect(http.StatusSeeOther, "/rooms")
		return
	}

	room := &models.Room{
		ID:           roomID,
		Name:         form.Name,
		Desc:         form.Desc,
		NumWalls:     form.NumWalls,
		WallColor1:   form.WallColor1,
		WallColor2:   form.WallColor2,
		CeilingColor: form.CeilingColor,
		FloorColor:   form.FloorColor,
		TrimColor:    form.TrimColor,
		OtherDetails: form.OtherDetails,
	}

	if err := h.rooms.Update(room); err != nil {
		h.logger.Error("Failed to update room", zap.Int64("room_id", roomID), zap.Error(err))
	}

	c.Redirect(http.StatusSeeOther, "/rooms")
}

// DeleteRoom removes the room row. Its images survive; the referential
// cleanup policy is merely notified.
func (h *roomHandler) DeleteRoom(c *gin.Context) {
	roomID, err := strconv.ParseInt(c.Param("room_id"), 10, 64)
	if err != nil {
		c.Redirect(http.StatusSeeOther, "/rooms")
		return
	}

	if err := h.rooms.Delete(roomID); err != nil {
		h.logger.Error("Failed to delete room", zap.Int64("room_id", roomID), zap.Error(err))
	} else {
		h.images.RoomDeleted(roomID)
	}

	c.Redirect(http.StatusSeeOther, "/rooms")
}
