package service_test

import (
	"bytes"
	"context"
	"microhabits_backend/internal/service"
	"microhabits_backend/internal/util"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_CreateDefaults(t *testing.T) {
	f := newFixture(t)

	user := f.createUser(t, "Ana")
	assert.True(t, user.Active)
	assert.Equal(t, 1, user.Level)
	assert.Equal(t, 0, user.StreakDays)
	assert.Equal(t, 0, user.Points)
	assert.Equal(t, "", user.Photo)

	custom, err := f.users.CreateUser(service.UserRequest{
		Name:       "Luis",
		Age:        30,
		Category:   "Docente",
		Level:      intPtr(3),
		StreakDays: intPtr(7),
		Points:     intPtr(120),
	})
	require.NoError(t, err)
	assert.Equal(t, 3, custom.Level)
	assert.Equal(t, 7, custom.StreakDays)
	assert.Equal(t, 120, custom.Points)
}

func TestUserService_DuplicateActiveName(t *testing.T) {
	f := newFixture(t)

	first := f.createUser(t, "Ana")

	_, err := f.users.CreateUser(service.UserRequest{Name: "Ana", Age: 30, Category: "Docente"})
	assert.ErrorIs(t, err, util.ErrUserNameTaken)

	// 逻辑删除后名称可以复用
	require.NoError(t, f.users.DeleteUser(first.ID))
	second, err := f.users.CreateUser(service.UserRequest{Name: "Ana", Age: 30, Category: "Docente"})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestUserService_SoftDeleteAndRestore(t *testing.T) {
	f := newFixture(t)

	ana := f.createUser(t, "Ana")
	f.createUser(t, "Luis")

	require.NoError(t, f.users.DeleteUser(ana.ID))

	active, err := f.users.GetActiveUsers()
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Luis", active[0].Name)

	deleted, err := f.users.GetDeletedUsers()
	require.NoError(t, err)
	require.Len(t, deleted, 1)
	assert.Equal(t, ana.ID, deleted[0].ID)

	// 按 ID 仍可读取已删除用户
	stored, err := f.users.GetUserByID(ana.ID)
	require.NoError(t, err)
	assert.False(t, stored.Active)

	_, err = f.users.FindActiveByName("Ana")
	assert.ErrorIs(t, err, util.ErrUserNotFound)

	restored, err := f.users.RestoreUser(ana.ID)
	require.NoError(t, err)
	assert.True(t, restored.Active)

	active, err = f.users.GetActiveUsers()
	require.NoError(t, err)
	assert.Len(t, active, 2)

	deleted, err = f.users.GetDeletedUsers()
	require.NoError(t, err)
	assert.Empty(t, deleted)
}

func TestUserService_RestoreConflict(t *testing.T) {
	f := newFixture(t)

	first := f.createUser(t, "Ana")
	require.NoError(t, f.users.DeleteUser(first.ID))
	f.createUser(t, "Ana")

	_, err := f.users.RestoreUser(first.ID)
	assert.ErrorIs(t, err, util.ErrUserNameTaken)
}

func TestUserService_UpdateUser(t *testing.T) {
	f := newFixture(t)

	ana := f.createUser(t, "Ana")
	luis := f.createUser(t, "Luis")

	_, err := f.users.UpdateUser(luis.ID, service.UserRequest{Name: "Ana", Age: 25, Category: "Docente"})
	assert.ErrorIs(t, err, util.ErrUserNameTaken)

	updated, err := f.users.UpdateUser(ana.ID, service.UserRequest{Name: "Ana", Age: 26, Category: "Docente", Points: intPtr(50)})
	require.NoError(t, err)
	assert.Equal(t, 26, updated.Age)
	assert.Equal(t, "Docente", updated.Category)
	assert.Equal(t, 50, updated.Points)

	stored, err := f.users.GetUserByID(ana.ID)
	require.NoError(t, err)
	assert.Equal(t, 26, stored.Age)

	_, err = f.users.UpdateUser(999, service.UserRequest{Name: "X", Category: "Y"})
	assert.ErrorIs(t, err, util.ErrUserNotFound)
}

func TestUserService_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.users.GetUserByID(42)
	assert.ErrorIs(t, err, util.ErrUserNotFound)
	assert.ErrorIs(t, f.users.DeleteUser(42), util.ErrUserNotFound)
	_, err = f.users.RestoreUser(42)
	assert.ErrorIs(t, err, util.ErrUserNotFound)
}

func TestUserService_UploadPhoto(t *testing.T) {
	f := newFixture(t)
	ana := f.createUser(t, "Ana")

	png := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}
	user, err := f.users.UploadPhoto(context.Background(), ana.ID, bytes.NewReader(png), int64(len(png)))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(user.Photo, "/uploads/fotos/"), user.Photo)
	assert.True(t, strings.HasSuffix(user.Photo, ".png"), user.Photo)

	stored, err := os.ReadFile(filepath.Join(f.storageDir, filepath.FromSlash(strings.TrimPrefix(user.Photo, "/uploads/"))))
	require.NoError(t, err)
	assert.Equal(t, png, stored)

	reloaded, err := f.users.GetUserByID(ana.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Photo, reloaded.Photo)

	_, err = f.users.UploadPhoto(context.Background(), ana.ID, bytes.NewReader([]byte("no soy una imagen")), 17)
	assert.ErrorIs(t, err, util.ErrInvalidFileType)

	_, err = f.users.UploadPhoto(context.Background(), 999, bytes.NewReader(png), int64(len(png)))
	assert.ErrorIs(t, err, util.ErrUserNotFound)
}

func TestUserService_UploadPhotoReplacesPrevious(t *testing.T) {
	f := newFixture(t)
	ana := f.createUser(t, "Ana")

	png := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}
	localPath := func(url string) string {
		return filepath.Join(f.storageDir, filepath.FromSlash(strings.TrimPrefix(url, "/uploads/")))
	}

	first, err := f.users.UploadPhoto(context.Background(), ana.ID, bytes.NewReader(png), int64(len(png)))
	require.NoError(t, err)
	firstPath := localPath(first.Photo)
	require.FileExists(t, firstPath)

	second, err := f.users.UploadPhoto(context.Background(), ana.ID, bytes.NewReader(png), int64(len(png)))
	require.NoError(t, err)
	assert.NotEqual(t, firstPath, localPath(second.Photo))
	assert.FileExists(t, localPath(second.Photo))
	assert.NoFileExists(t, firstPath)
}

func TestUserService_UploadPhotoKeepsForeignURL(t *testing.T) {
	f := newFixture(t)
	user, err := f.users.CreateUser(service.UserRequest{
		Name:     "Ana",
		Category: "Estudiante",
		Photo:    "https://cdn.example.org/ana.png",
	})
	require.NoError(t, err)

	png := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}
	updated, err := f.users.UploadPhoto(context.Background(), user.ID, bytes.NewReader(png), int64(len(png)))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(updated.Photo, "/uploads/fotos/"), updated.Photo)
}
