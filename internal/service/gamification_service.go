package service

import (
	"errors"
	"microhabits_backend/internal/model"
	"microhabits_backend/internal/repository"
	"microhabits_backend/internal/util"
	"microhabits_backend/pkg/monitoring"

	"gorm.io/gorm"
)

type GamificationRequest struct {
	UserID uint   `json:"usuario_id" binding:"required"`
	Badge  string `json:"badge" binding:"max=100"`
	Points int    `json:"puntos"`
}

type PointsRequest struct {
	Delta int `json:"delta"`
}

type BadgeRequest struct {
	Badge string `json:"badge" binding:"required,max=100"`
}

// GamificationService 积分与徽章，只维护 gamificacion 表，不改动 usuarios.puntos
type GamificationService struct {
	GamificationRepo *repository.GamificationRepository
	UserRepo         *repository.UserRepository
}

func NewGamificationService(gamificationRepo *repository.GamificationRepository, userRepo *repository.UserRepository) *GamificationService {
	return &GamificationService{
		GamificationRepo: gamificationRepo,
		UserRepo:         userRepo,
	}
}

func (s *GamificationService) ensureUser(userID uint) error {
	if _, err := s.UserRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrUserNotFound
		}
		return err
	}
	return nil
}

func badgeOrDefault(badge string) string {
	if badge == "" {
		return model.DefaultBadge
	}
	return badge
}

// CreateRecord 每个用户至多一条记录
func (s *GamificationService) CreateRecord(req GamificationRequest) (*model.Gamification, error) {
	if err := s.ensureUser(req.UserID); err != nil {
		return nil, err
	}

	if _, err := s.GamificationRepo.FindByUserID(req.UserID); err == nil {
		return nil, util.ErrGamificationExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	record := &model.Gamification{
		UserID: req.UserID,
		Badge:  badgeOrDefault(req.Badge),
		Points: req.Points,
	}
	if err := s.GamificationRepo.Create(record); err != nil {
		// 并发创建时由唯一索引兜底
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, util.ErrGamificationExists
		}
		return nil, err
	}
	return record, nil
}

func (s *GamificationService) ListRecords() ([]model.Gamification, error) {
	return s.GamificationRepo.FindAll()
}

func (s *GamificationService) GetRecord(id uint) (*model.Gamification, error) {
	record, err := s.GamificationRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrGamificationNotFound
		}
		return nil, err
	}
	return record, nil
}

// GetByUser 用户不存在与记录不存在分别返回不同错误
func (s *GamificationService) GetByUser(userID uint) (*model.Gamification, error) {
	if err := s.ensureUser(userID); err != nil {
		return nil, err
	}
	record, err := s.GamificationRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrGamificationNotFound
		}
		return nil, err
	}
	return record, nil
}

func (s *GamificationService) UpdateRecord(id uint, req GamificationRequest) (*model.Gamification, error) {
	record, err := s.GetRecord(id)
	if err != nil {
		return nil, err
	}
	if err := s.ensureUser(req.UserID); err != nil {
		return nil, err
	}

	if req.UserID != record.UserID {
		if _, err := s.GamificationRepo.FindByUserID(req.UserID); err == nil {
			return nil, util.ErrGamificationExists
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	record.UserID = req.UserID
	record.Badge = badgeOrDefault(req.Badge)
	record.Points = req.Points

	if err := s.GamificationRepo.Update(record); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, util.ErrGamificationExists
		}
		return nil, err
	}
	return record, nil
}

// AddPoints delta 可为负数，累加在数据库中原子完成
func (s *GamificationService) AddPoints(userID uint, delta int) (*model.Gamification, error) {
	if err := s.ensureUser(userID); err != nil {
		return nil, err
	}

	affected, err := s.GamificationRepo.AddPoints(userID, delta)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, util.ErrGamificationNotFound
	}

	monitoring.ObservePointsDelta(delta)
	return s.GetByUser(userID)
}

// SetBadge 覆盖当前徽章
func (s *GamificationService) SetBadge(userID uint, badge string) (*model.Gamification, error) {
	if err := s.ensureUser(userID); err != nil {
		return nil, err
	}

	affected, err := s.GamificationRepo.UpdateBadge(userID, badge)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, util.ErrGamificationNotFound
	}
	return s.GetByUser(userID)
}

func (s *GamificationService) DeleteRecord(id uint) error {
	affected, err := s.GamificationRepo.Delete(id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return util.ErrGamificationNotFound
	}
	return nil
}
