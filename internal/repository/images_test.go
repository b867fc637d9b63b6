package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dbrown13/home-harmony/internal/models"
)

func seedImage(t *testing.T, repo ImageRepository, name string, userID, roomID int64, data []byte) *models.Image {
	t.Helper()
	image := &models.Image{Name: name, Desc: name + " desc", Data: data, Type: "png", UserID: userID, RoomID: roomID}
	require.NoError(t, repo.Create(image))
	return image
}

func TestImageRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	repo := NewImageRepository(db, zap.NewNop())

	payload := []byte{0x89, 0x50, 0x4e, 0x47, 0x00, 0xff, 0x01}
	image := seedImage(t, repo, "wall", 1, 2, payload)
	assert.NotZero(t, image.ID)

	got, err := repo.GetByID(image.ID)
	require.NoError(t, err)
	assert.Equal(t, "wall", got.Name)
	assert.Equal(t, "png", got.Type)
	assert.Equal(t, payload, got.Data)
	assert.Equal(t, int64(2), got.RoomID)
}

func TestImageRepository_GetByRoomInsertionOrder(t *testing.T) {
	db := newTestDB(t)
	repo := NewImageRepository(db, zap.NewNop())

	seedImage(t, repo, "first", 1, 5, []byte("a"))
	seedImage(t, repo, "second", 1, 5, []byte("b"))
	seedImage(t, repo, "elsewhere", 1, 6, []byte("c"))

	images, err := repo.GetByRoom(5)
	require.NoError(t, err)
	require.Len(t, images, 2)
	assert.Equal(t, "first", images[0].Name)
	assert.Equal(t, "second", images[1].Name)
}

func TestImageRepository_GetByOwnerJoinsRoomName(t *testing.T) {
	db := newTestDB(t)
	imageRepo := NewImageRepository(db, zap.NewNop())
	roomRepo := NewRoomRepository(db, zap.NewNop())

	kitchen := &models.Room{Name: "Kitchen", UserID: 9}
	require.NoError(t, roomRepo.Create(kitchen))
	bedroom := &models.Room{Name: "Bedroom", UserID: 9}
	require.NoError(t, roomRepo.Create(bedroom))

	seedImage(t, imageRepo, "stove", 9, kitchen.ID, []byte("s"))
	seedImage(t, imageRepo, "bed", 9, bedroom.ID, []byte("b"))
	seedImage(t, imageRepo, "sink", 9, kitchen.ID, []byte("k"))

	images, err := imageRepo.GetByOwner(9)
	require.NoError(t, err)
	require.Len(t, images, 3)

	// Grouped by room, insertion order inside each room.
	assert.Equal(t, "stove", images[0].Name)
	assert.Equal(t, "Kitchen", images[0].RoomName)
	assert.Equal(t, "sink", images[1].Name)
	assert.Equal(t, "Kitchen", images[1].RoomName)
	assert.Equal(t, "bed", images[2].Name)
	assert.Equal(t, "Bedroom", images[2].RoomName)
}

// Deleting a room leaves its image rows behind. There is no foreign key
// between the tables; orphan handling belongs to the service layer.
func TestImageRepository_RoomDeleteLeavesImages(t *testing.T) {
	db := newTestDB(t)
	imageRepo := NewImageRepository(db, zap.NewNop())
	roomRepo := NewRoomRepository(db, zap.NewNop())

	room := &models.Room{Name: "Attic", UserID: 3}
	require.NoError(t, roomRepo.Create(room))
	image := seedImage(t, imageRepo, "beam", 3, room.ID, []byte("x"))

	require.NoError(t, roomRepo.Delete(room.ID))

	got, err := imageRepo.GetByID(image.ID)
	require.NoError(t, err)
	assert.Equal(t, room.ID, got.RoomID)

	// The orphan no longer shows up in the owner join.
	joined, err := imageRepo.GetByOwner(3)
	require.NoError(t, err)
	assert.Empty(t, joined)
}

func TestImageRepository_UpdateMeta(t *testing.T) {
	db := newTestDB(t)
	repo := NewImageRepository(db, zap.NewNop())

	image := seedImage(t, repo, "old", 1, 1, []byte("data"))

	require.NoError(t, repo.UpdateMeta(image.ID, "new", "new desc"))

	got, err := repo.GetByID(image.ID)
	require.NoError(t, err)
	assert.Equal(t, "new", got.Name)
	assert.Equal(t, "new desc", got.Desc)
	assert.Equal(t, []byte("data"), got.Data)

	assert.ErrorIs(t, repo.UpdateMeta(9999, "x", "y"), ErrNotFound)
}

func TestImageRepository_Delete(t *testing.T) {
	db := newTestDB(t)
	repo := NewImageRepository(db, zap.NewNop())

	image := seedImage(t, repo, "gone", 1, 1, []byte("z"))

	require.NoError(t, repo.Delete(image.ID))
	_, err := repo.GetByID(image.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
