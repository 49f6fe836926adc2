package service

import (
	"errors"
	"microhabits_backend/internal/model"
	"microhabits_backend/internal/repository"
	"microhabits_backend/internal/util"

	"gorm.io/gorm"
)

type ChallengeRequest struct {
	Category   string `json:"categoria" binding:"required,max=100"`
	Difficulty string `json:"dificultad" binding:"required,max=50"`
	Content    string `json:"contenido" binding:"required"`
	Answer     string `json:"respuesta" binding:"required"`
}

type ChallengeService struct {
	Repo *repository.ChallengeRepository
}

func NewChallengeService(repo *repository.ChallengeRepository) *ChallengeService {
	return &ChallengeService{Repo: repo}
}

func (s *ChallengeService) CreateChallenge(req ChallengeRequest) (*model.Challenge, error) {
	challenge := &model.Challenge{
		Category:   req.Category,
		Difficulty: req.Difficulty,
		Content:    req.Content,
		Answer:     req.Answer,
	}
	if err := s.Repo.Create(challenge); err != nil {
		return nil, err
	}
	return challenge, nil
}

func (s *ChallengeService) ListChallenges(filter repository.ChallengeFilter) ([]model.Challenge, error) {
	return s.Repo.FindAll(filter)
}

func (s *ChallengeService) GetChallenge(id uint) (*model.Challenge, error) {
	challenge, err := s.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrChallengeNotFound
		}
		return nil, err
	}
	return challenge, nil
}

func (s *ChallengeService) UpdateChallenge(id uint, req ChallengeRequest) (*model.Challenge, error) {
	challenge, err := s.GetChallenge(id)
	if err != nil {
		return nil, err
	}

	challenge.Category = req.Category
	challenge.Difficulty = req.Difficulty
	challenge.Content = req.Content
	challenge.Answer = req.Answer

	if err := s.Repo.Update(challenge); err != nil {
		return nil, err
	}
	return challenge, nil
}

func (s *ChallengeService) DeleteChallenge(id uint) error {
	affected, err := s.Repo.Delete(id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return util.ErrChallengeNotFound
	}
	return nil
}
