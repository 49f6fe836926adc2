package service

import (
	"errors"
	"microhabits_backend/internal/model"
	"microhabits_backend/internal/repository"
	"microhabits_backend/internal/util"
	"time"

	"gorm.io/gorm"
)

type ProgressRequest struct {
	UserID      uint       `json:"usuario_id" binding:"required"`
	ChallengeID uint       `json:"reto_id" binding:"required"`
	Completed   bool       `json:"completado"`
	Date        *time.Time `json:"fecha"`
}

type CompletionRequest struct {
	Completed *bool `json:"completado" binding:"required"`
}

type ProgressService struct {
	ProgressRepo  *repository.ProgressRepository
	UserRepo      *repository.UserRepository
	ChallengeRepo *repository.ChallengeRepository
}

func NewProgressService(
	progressRepo *repository.ProgressRepository,
	userRepo *repository.UserRepository,
	challengeRepo *repository.ChallengeRepository,
) *ProgressService {
	return &ProgressService{
		ProgressRepo:  progressRepo,
		UserRepo:      userRepo,
		ChallengeRepo: challengeRepo,
	}
}

// checkReferences 用户与挑战都必须存在
func (s *ProgressService) checkReferences(userID, challengeID uint) error {
	if _, err := s.UserRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrUserNotFound
		}
		return err
	}
	if _, err := s.ChallengeRepo.FindByID(challengeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrChallengeNotFound
		}
		return err
	}
	return nil
}

func (req *ProgressRequest) date() time.Time {
	if req.Date == nil || req.Date.IsZero() {
		return time.Now().UTC()
	}
	return req.Date.UTC()
}

func (s *ProgressService) CreateProgress(req ProgressRequest) (*model.Progress, error) {
	if err := s.checkReferences(req.UserID, req.ChallengeID); err != nil {
		return nil, err
	}

	progress := &model.Progress{
		UserID:      req.UserID,
		ChallengeID: req.ChallengeID,
		Completed:   req.Completed,
		Date:        req.date(),
	}
	if err := s.ProgressRepo.Create(progress); err != nil {
		return nil, err
	}
	return progress, nil
}

func (s *ProgressService) ListProgress(filter repository.ProgressFilter) ([]model.Progress, error) {
	return s.ProgressRepo.FindAll(filter)
}

// ListUserProgress 用户不存在时返回 ErrUserNotFound
func (s *ProgressService) ListUserProgress(userID uint) ([]model.Progress, error) {
	if _, err := s.UserRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	return s.ProgressRepo.FindAll(repository.ProgressFilter{UserID: &userID})
}

func (s *ProgressService) GetProgress(id uint) (*model.Progress, error) {
	progress, err := s.ProgressRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrProgressNotFound
		}
		return nil, err
	}
	return progress, nil
}

func (s *ProgressService) UpdateProgress(id uint, req ProgressRequest) (*model.Progress, error) {
	progress, err := s.GetProgress(id)
	if err != nil {
		return nil, err
	}
	if err := s.checkReferences(req.UserID, req.ChallengeID); err != nil {
		return nil, err
	}

	progress.UserID = req.UserID
	progress.ChallengeID = req.ChallengeID
	progress.Completed = req.Completed
	progress.Date = req.date()

	if err := s.ProgressRepo.Update(progress); err != nil {
		return nil, err
	}
	return progress, nil
}

// SetCompleted 只修改完成标记
func (s *ProgressService) SetCompleted(id uint, completed bool) (*model.Progress, error) {
	affected, err := s.ProgressRepo.SetCompleted(id, completed)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, util.ErrProgressNotFound
	}
	return s.GetProgress(id)
}

func (s *ProgressService) DeleteProgress(id uint) error {
	affected, err := s.ProgressRepo.Delete(id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return util.ErrProgressNotFound
	}
	return nil
}
