package service_test

import (
	"microhabits_backend/internal/model"
	"microhabits_backend/internal/service"
	"microhabits_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGamificationService_CreateOnePerUser(t *testing.T) {
	f := newFixture(t)
	ana := f.createUser(t, "Ana")

	_, err := f.gamification.CreateRecord(service.GamificationRequest{UserID: 999})
	assert.ErrorIs(t, err, util.ErrUserNotFound)

	record, err := f.gamification.CreateRecord(service.GamificationRequest{UserID: ana.ID, Points: 10})
	require.NoError(t, err)
	assert.Equal(t, model.DefaultBadge, record.Badge)
	assert.Equal(t, 10, record.Points)

	_, err = f.gamification.CreateRecord(service.GamificationRequest{UserID: ana.ID, Badge: "Oro"})
	assert.ErrorIs(t, err, util.ErrGamificationExists)
}

func TestGamificationService_AddPoints(t *testing.T) {
	f := newFixture(t)
	ana := f.createUser(t, "Ana")

	_, err := f.gamification.AddPoints(ana.ID, 5)
	assert.ErrorIs(t, err, util.ErrGamificationNotFound)

	_, err = f.gamification.CreateRecord(service.GamificationRequest{UserID: ana.ID, Points: 10})
	require.NoError(t, err)

	const n = 4
	var record *model.Gamification
	for i := 0; i < n; i++ {
		record, err = f.gamification.AddPoints(ana.ID, 5)
		require.NoError(t, err)
	}
	assert.Equal(t, 10+5*n, record.Points)

	// 允许负数，不做下限截断
	record, err = f.gamification.AddPoints(ana.ID, -40)
	require.NoError(t, err)
	assert.Equal(t, -10, record.Points)

	// 用户自身积分不受影响
	user, err := f.users.GetUserByID(ana.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, user.Points)

	_, err = f.gamification.AddPoints(999, 5)
	assert.ErrorIs(t, err, util.ErrUserNotFound)
}

func TestGamificationService_SetBadge(t *testing.T) {
	f := newFixture(t)
	ana := f.createUser(t, "Ana")

	_, err := f.gamification.SetBadge(ana.ID, "Oro")
	assert.ErrorIs(t, err, util.ErrGamificationNotFound)

	_, err = f.gamification.CreateRecord(service.GamificationRequest{UserID: ana.ID})
	require.NoError(t, err)

	record, err := f.gamification.SetBadge(ana.ID, "Oro")
	require.NoError(t, err)
	assert.Equal(t, "Oro", record.Badge)

	byUser, err := f.gamification.GetByUser(ana.ID)
	require.NoError(t, err)
	assert.Equal(t, "Oro", byUser.Badge)
}

func TestGamificationService_UpdateAndDelete(t *testing.T) {
	f := newFixture(t)
	ana := f.createUser(t, "Ana")
	luis := f.createUser(t, "Luis")

	anaRecord, err := f.gamification.CreateRecord(service.GamificationRequest{UserID: ana.ID})
	require.NoError(t, err)
	_, err = f.gamification.CreateRecord(service.GamificationRequest{UserID: luis.ID})
	require.NoError(t, err)

	_, err = f.gamification.UpdateRecord(anaRecord.ID, service.GamificationRequest{UserID: luis.ID})
	assert.ErrorIs(t, err, util.ErrGamificationExists)

	updated, err := f.gamification.UpdateRecord(anaRecord.ID, service.GamificationRequest{UserID: ana.ID, Badge: "Plata", Points: 70})
	require.NoError(t, err)
	assert.Equal(t, "Plata", updated.Badge)
	assert.Equal(t, 70, updated.Points)

	records, err := f.gamification.ListRecords()
	require.NoError(t, err)
	assert.Len(t, records, 2)

	require.NoError(t, f.gamification.DeleteRecord(anaRecord.ID))
	assert.ErrorIs(t, f.gamification.DeleteRecord(anaRecord.ID), util.ErrGamificationNotFound)

	_, err = f.gamification.GetByUser(ana.ID)
	assert.ErrorIs(t, err, util.ErrGamificationNotFound)
}

func TestGamificationService_NoOpUpdatesFindRecord(t *testing.T) {
	f := newFixture(t)
	ana := f.createUser(t, "Ana")

	_, err := f.gamification.CreateRecord(service.GamificationRequest{UserID: ana.ID, Badge: "Oro", Points: 10})
	require.NoError(t, err)

	// 值不变的更新仍应命中已有记录
	record, err := f.gamification.AddPoints(ana.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, 10, record.Points)

	record, err = f.gamification.SetBadge(ana.ID, "Oro")
	require.NoError(t, err)
	assert.Equal(t, "Oro", record.Badge)
}
