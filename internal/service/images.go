package service

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dbrown13/home-harmony/internal/models"
	"github.com/dbrown13/home-harmony/internal/repository"
)

var ErrImageNotFound = errors.New("image not found")

// KeyFunc derives the staging filename for an upload from the user-supplied
// filename.
type KeyFunc func(filename string) string

// PrefixedKey keeps the original filename under a fixed prefix. Two uploads
// with the same filename share a staging file and the last write wins.
func PrefixedKey(filename string) string {
	return "uploaded_" + filepath.Base(filename)
}

// RandomKey gives every upload a collision-free staging file.
func RandomKey(filename string) string {
	return "uploaded_" + uuid.NewString() + filepath.Ext(filename)
}

// ReferentialCleanup decides what happens to dependent artifacts when a record
// goes away. The default keeps everything, matching the historical behavior of
// leaving staged files and room images behind; a stricter policy can be
// swapped in here.
type ReferentialCleanup interface {
	ImageDeleted(image *models.Image)
	RoomDeleted(roomID int64)
}

// KeepOrphans is the default ReferentialCleanup: it removes nothing.
type KeepOrphans struct{}

func (KeepOrphans) ImageDeleted(*models.Image) {}
func (KeepOrphans) RoomDeleted(int64)          {}

// ImageService is the persistence gateway for uploaded photographs: it stages
// the raw bytes on disk, copies them into the blob column, and serves them
// back for display.
type ImageService struct {
	repo      repository.ImageRepository
	uploadDir string
	key       KeyFunc
	cleanup   ReferentialCleanup
	logger    *zap.Logger
}

func NewImageService(repo repository.ImageRepository, uploadDir string, key KeyFunc, cleanup ReferentialCleanup, logger *zap.Logger) *ImageService {
	if key == nil {
		key = PrefixedKey
	}
	if cleanup == nil {
		cleanup = KeepOrphans{}
	}
	return &ImageService{repo: repo, uploadDir: uploadDir, key: key, cleanup: cleanup, logger: logger}
}

// Store stages the upload on disk, reads the staged file back in full and
// inserts one image row holding the bytes. If the file write fails no row is
// created; if the insert fails the staged file stays behind.
func (s *ImageService) Store(roomID, ownerID int64, name, desc string, r io.Reader, filename string) (int64, error) {
	staged := filepath.Join(s.uploadDir, s.key(filename))

	f, err := os.Create(staged)
	if err != nil {
		return 0, fmt.Errorf("failed to stage upload: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return 0, fmt.Errorf("failed to write staged upload: %w", err)
	}
	if err := f.Close(); err != nil {
		return 0, fmt.Errorf("failed to write staged upload: %w", err)
	}

	data, err := os.ReadFile(staged)
	if err != nil {
		return 0, fmt.Errorf("failed to read staged upload: %w", err)
	}

	image := &models.Image{
		Name:   name,
		Desc:   desc,
		Data:   data,
		Type:   typeFromFilename(filename),
		UserID: ownerID,
		RoomID: roomID,
	}

	if err := s.repo.Create(image); err != nil {
		s.logger.Error("Failed to insert image", zap.String("staged", staged), zap.Error(err))
		return 0, fmt.Errorf("failed to insert image: %w", err)
	}

	s.logger.Info("Image stored",
		zap.Int64("image_id", image.ID),
		zap.Int64("room_id", roomID),
		zap.Int("bytes", len(data)))
	return image.ID, nil
}

func (s *ImageService) ByID(id int64) (*models.Image, error) {
	image, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrImageNotFound
		}
		return nil, fmt.Errorf("failed to fetch image: %w", err)
	}
	return image, nil
}

func (s *ImageService) ByRoom(roomID int64) ([]*models.Image, error) {
	images, err := s.repo.GetByRoom(roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch room images: %w", err)
	}
	return images, nil
}

func (s *ImageService) ByOwner(userID int64) ([]*models.ImageWithRoom, error) {
	images, err := s.repo.GetByOwner(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user images: %w", err)
	}
	return images, nil
}

func (s *ImageService) UpdateMeta(id int64, name, desc string) error {
	err := s.repo.UpdateMeta(id, name, desc)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrImageNotFound
	}
	return err
}

// Delete removes the image row and hands the record to the referential
// cleanup policy. The staged upload file is not touched unless the policy
// says so.
func (s *ImageService) Delete(id int64) error {
	image, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to fetch image: %w", err)
	}

	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}

	s.cleanup.ImageDeleted(image)
	return nil
}

// RoomDeleted notifies the cleanup policy that a room went away.
func (s *ImageService) RoomDeleted(roomID int64) {
	s.cleanup.RoomDeleted(roomID)
}

// DisplayImage is an image prepared for HTML rendering: the payload is
// base64-encoded text, the stored bytes stay untouched.
type DisplayImage struct {
	ID       int64
	Name     string
	Desc     string
	Type     string
	RoomID   int64
	RoomName string
	Data     string
}

// Display encodes one image for embedding in a template.
func Display(image *models.Image) DisplayImage {
	return DisplayImage{
		ID:     image.ID,
		Name:   image.Name,
		Desc:   image.Desc,
		Type:   image.Type,
		RoomID: image.RoomID,
		Data:   base64.StdEncoding.EncodeToString(image.Data),
	}
}

// DisplayAll encodes a room's images for template rendering.
func DisplayAll(images []*models.Image) []DisplayImage {
	out := make([]DisplayImage, 0, len(images))
	for _, image := range images {
		out = append(out, Display(image))
	}
	return out
}

// DisplayJoined encodes owner-scoped images that carry their room name.
func DisplayJoined(images []*models.ImageWithRoom) []DisplayImage {
	out := make([]DisplayImage, 0, len(images))
	for _, image := range images {
		d := Display(&image.Image)
		d.RoomName = image.RoomName
		out = append(out, d)
	}
	return out
}

// typeFromFilename records the media-type tag the way uploads name it: the
// part after the last dot.
func typeFromFilename(filename string) string {
	ext := filepath.Ext(filename)
	return strings.TrimPrefix(ext, ".")
}
