package service_test

import (
	"microhabits_backend/internal/config"
	"microhabits_backend/internal/model"
	"microhabits_backend/internal/repository"
	"microhabits_backend/internal/service"
	"microhabits_backend/internal/testutil"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db           *gorm.DB
	storageDir   string
	storage      *service.StorageService
	users        *service.UserService
	challenges   *service.ChallengeService
	progress     *service.ProgressService
	gamification *service.GamificationService
	communities  *service.CommunityService
	reports      *service.ReportService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := testutil.NewDB(t)
	dir := t.TempDir()

	userRepo := repository.NewUserRepository(db)
	challengeRepo := repository.NewChallengeRepository(db)
	progressRepo := repository.NewProgressRepository(db)
	gamificationRepo := repository.NewGamificationRepository(db)
	communityRepo := repository.NewCommunityRepository(db)

	storage := service.NewStorageService(&config.StorageConfig{Type: "local", LocalPath: dir})

	return &fixture{
		db:           db,
		storageDir:   dir,
		storage:      storage,
		users:        service.NewUserService(userRepo, storage),
		challenges:   service.NewChallengeService(challengeRepo),
		progress:     service.NewProgressService(progressRepo, userRepo, challengeRepo),
		gamification: service.NewGamificationService(gamificationRepo, userRepo),
		communities:  service.NewCommunityService(communityRepo, userRepo),
		reports:      service.NewReportService(gamificationRepo, userRepo, storage, "", false),
	}
}

func (f *fixture) createUser(t *testing.T, name string) *model.User {
	t.Helper()
	user, err := f.users.CreateUser(service.UserRequest{Name: name, Age: 21, Category: "Estudiante"})
	require.NoError(t, err)
	return user
}

func (f *fixture) createChallenge(t *testing.T) *model.Challenge {
	t.Helper()
	challenge, err := f.challenges.CreateChallenge(service.ChallengeRequest{
		Category:   "Python",
		Difficulty: "Baja",
		Content:    "¿Qué es una variable?",
		Answer:     "Un espacio en memoria",
	})
	require.NoError(t, err)
	return challenge
}

func (f *fixture) createCommunity(t *testing.T) *model.Community {
	t.Helper()
	community, err := f.communities.CreateCommunity(service.CommunityRequest{
		ChallengeName: "Reto de 21 días",
		Category:      "Python",
		Duration:      21,
	})
	require.NoError(t, err)
	return community
}

func intPtr(v int) *int { return &v }
