package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dbrown13/home-harmony/internal/middleware"
	"github.com/dbrown13/home-harmony/internal/repository"
	"github.com/dbrown13/home-harmony/internal/service"
)

type ImageHandler interface {
	RoomImages(c *gin.Context)
	AllImages(c *gin.Context)
	UploadForm(c *gin.Context)
	Upload(c *gin.Context)
	EditImagePage(c *gin.Context)
	EditImage(c *gin.Context)
	DeleteImage(c *gin.Context)
}

type imageHandler struct {
	images *service.ImageService
	rooms  repository.RoomRepository
	logger *zap.Logger
}

func NewImageHandler(images *service.ImageService, rooms repository.RoomRepository, logger *zap.Logger) ImageHandler {
	return &imageHandler{images: images, rooms: rooms, logger: logger}
}

// renderRoomImages shows a room's gallery with an optional status message.
func (h *imageHandler) renderRoomImages(c *gin.Context, roomID int64, imageMsg string) {
	room, err := h.rooms.GetByID(roomID)
	if err != nil {
		c.Redirect(http.StatusSeeOther, "/rooms")
		return
	}

	images, err := h.images.ByRoom(roomID)
	if err != nil {
		h.logger.Error("Failed to load room images", zap.Int64("room_id", roomID), zap.Error(err))
	}

	c.HTML(http.StatusOK, "room_images.html", gin.H{
		"room":      room,
		"images":    service.DisplayAll(images),
		"image_msg": imageMsg,
		"login":     true,
	})
}

func (h *imageHandler) RoomImages(c *gin.Context) {
	roomID, err := strconv.ParseInt(c.Param("room_id"), 10, 64)
	if err != nil {
		c.Redirect(http.StatusSeeOther, "/rooms")
		return
	}
	h.renderRoomImages(c, roomID, "")
}

func (h *imageHandler) AllImages(c *gin.Context) {
	principal, _ := middleware.Principal(c)

	images, err := h.images.ByOwner(principal.UserID)
	if err != nil {
		h.logger.Error("Failed to load user images", zap.Int64("user_id", principal.UserID), zap.Error(err))
	}

	rooms, err := h.rooms.GetByUser(principal.UserID)
	if err != nil {
		h.logger.Error("Failed to load rooms", zap.Int64("user_id", principal.UserID), zap.Error(err))
	}

	c.HTML(http.StatusOK, "all_images.html", gin.H{
		"images": service.DisplayJoined(images),
		"rooms":  rooms,
		"login":  true,
	})
}

func (h *imageHandler) UploadForm(c *gin.Context) {
	c.HTML(http.StatusOK, "upload_image.html", gin.H{"room_id": c.Param("room_id"), "login": true})
}

// Upload stages the posted file and copies its bytes into the image table.
// Size and type limits are the caller's concern; nothing is enforced here.
func (h *imageHandler) Upload(c *gin.Context) {
	principal, _ := middleware.Principal(c)

	roomID, err := strconv.ParseInt(c.Param("room_id"), 10, 64)
	if err != nil {
		c.Redirect(http.StatusSeeOther, "/rooms")
		return
	}

	name := c.PostForm("image_name")
	desc := c.PostForm("image_desc")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.renderRoomImages(c, roomID, "Image upload failed")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.logger.Error("Failed to open uploaded file", zap.Error(err))
		h.renderRoomImages(c, roomID, "Image upload failed")
		return
	}
	defer file.Close()

	if _, err := h.images.Store(roomID, principal.UserID, name, desc, file, fileHeader.Filename); err != nil {
		h.logger.Error("Failed to store image", zap.Int64("room_id", roomID), zap.Error(err))
		h.renderRoomImages(c, roomID, "Image upload failed")
		return
	}

	h.renderRoomImages(c, roomID, "Image uploaded successfully!")
}

func (h *imageHandler) EditImagePage(c *gin.Context) {
	roomID, err := strconv.ParseInt(c.Param("room_id"), 10, 64)
	if err != nil {
		c.Redirect(http.StatusSeeOther, "/rooms")
		return
	}
	imageID, err := strconv.ParseInt(c.Param("image_id"), 10, 64)
	if err != nil {
		c.Redirect(http.StatusSeeOther, "/rooms")
		return
	}

	room, err := h.rooms.GetByID(roomID)
	if err != nil {
		c.Redirect(http.StatusSeeOther, "/rooms")
		return
	}

	image, err := h.images.ByID(imageID)
	if err != nil {
		h.renderRoomImages(c, roomID, "Image not found")
		return
	}

	c.HTML(http.StatusOK, "edit_image.html", gin.H{
		"room":  room,
		"image": service.Display(image),
		"login": true,
	})
}

func (h *imageHandler) EditImage(c *gin.Context) {
	roomID := c.Param("room_id")
	imageID, err := strconv.ParseInt(c.Param("image_id"), 10, 64)
	if err != nil {
		c.Redirect(http.StatusSeeOther, "/rooms")
		return
	}

	name := c.PostForm("image_name")
	desc := c.PostForm("image_desc")

	if err := h.images.UpdateMeta(imageID, name, desc); err != nil {
		h.logger.Error("Failed to update image", zap.Int64("image_id", imageID), zap.Error(err))
	}

	c.Redirect(http.StatusSeeOther, "/room_images/"+roomID)
}

// DeleteImage removes the database row only; the staged upload file is left
// to the referential cleanup policy.
func (h *imageHandler) DeleteImage(c *gin.Context) {
	roomID, err := strconv.ParseInt(c.Param("room_id"), 10, 64)
	if err != nil {
		c.Redirect(http.StatusSeeOther, "/rooms")
		return
	}
	imageID, err := strconv.ParseInt(c.Param("image_id"), 10, 64)
	if err != nil {
		h.renderRoomImages(c, roomID, "")
		return
	}

	if err := h.images.Delete(imageID); err != nil {
		h.logger.Error("Failed to delete image", zap.Int64("image_id", imageID), zap.Error(err))
	}

	h.renderRoomImages(c, roomID, "")
}
