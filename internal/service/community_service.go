package service

import (
	"errors"
	"fmt"
	"microhabits_backend/internal/model"
	"microhabits_backend/internal/repository"
	"microhabits_backend/internal/util"
	"microhabits_backend/pkg/monitoring"

	"gorm.io/gorm"
)

type CommunityRequest struct {
	ChallengeName string `json:"nombre_reto" binding:"required,max=200"`
	Category      string `json:"categoria" binding:"required,max=100"`
	Duration      int    `json:"duracion" binding:"gte=1"`
}

// CommunitySummary 社区及其当前成员数，供页面列表使用
type CommunitySummary struct {
	model.Community
	MemberCount int64 `json:"total_participantes"`
}

type CommunityService struct {
	CommunityRepo *repository.CommunityRepository
	UserRepo      *repository.UserRepository
}

func NewCommunityService(communityRepo *repository.CommunityRepository, userRepo *repository.UserRepository) *CommunityService {
	return &CommunityService{
		CommunityRepo: communityRepo,
		UserRepo:      userRepo,
	}
}

func (s *CommunityService) CreateCommunity(req CommunityRequest) (*model.Community, error) {
	community := &model.Community{
		ChallengeName: req.ChallengeName,
		Category:      req.Category,
		Duration:      req.Duration,
	}
	if err := s.CommunityRepo.Create(community); err != nil {
		return nil, err
	}
	return community, nil
}

func (s *CommunityService) ListCommunities() ([]model.Community, error) {
	return s.CommunityRepo.FindAll()
}

// ListSummaries 在列表基础上附带成员数
func (s *CommunityService) ListSummaries() ([]CommunitySummary, error) {
	communities, err := s.CommunityRepo.FindAll()
	if err != nil {
		return nil, err
	}

	summaries := make([]CommunitySummary, 0, len(communities))
	for _, community := range communities {
		count, err := s.CommunityRepo.CountMembers(community.ID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, CommunitySummary{Community: community, MemberCount: count})
	}
	return summaries, nil
}

func (s *CommunityService) GetCommunity(id uint) (*model.Community, error) {
	community, err := s.CommunityRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCommunityNotFound
		}
		return nil, err
	}
	return community, nil
}

func (s *CommunityService) UpdateCommunity(id uint, req CommunityRequest) (*model.Community, error) {
	community, err := s.GetCommunity(id)
	if err != nil {
		return nil, err
	}

	community.ChallengeName = req.ChallengeName
	community.Category = req.Category
	community.Duration = req.Duration

	if err := s.CommunityRepo.Update(community); err != nil {
		return nil, err
	}
	return community, nil
}

// DeleteCommunity 成员关系随社区一起删除
func (s *CommunityService) DeleteCommunity(id uint) error {
	affected, err := s.CommunityRepo.Delete(id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return util.ErrCommunityNotFound
	}
	return nil
}

// resolve 依次校验社区与用户是否存在
func (s *CommunityService) resolve(communityID, userID uint) (*model.Community, *model.User, error) {
	community, err := s.GetCommunity(communityID)
	if err != nil {
		return nil, nil, err
	}
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, util.ErrUserNotFound
		}
		return nil, nil, err
	}
	return community, user, nil
}

// ListMembers 社区不存在时返回 ErrCommunityNotFound
func (s *CommunityService) ListMembers(communityID uint) ([]model.User, error) {
	if _, err := s.GetCommunity(communityID); err != nil {
		return nil, err
	}
	return s.CommunityRepo.FindMembers(communityID)
}

// ListUserCommunities 返回用户加入的全部社区
func (s *CommunityService) ListUserCommunities(userID uint) ([]model.Community, error) {
	if _, err := s.UserRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	return s.CommunityRepo.FindByMember(userID)
}

// AddMember 同一用户在同一社区只能出现一次
func (s *CommunityService) AddMember(communityID, userID uint) (*model.Community, error) {
	community, user, err := s.resolve(communityID, userID)
	if err != nil {
		return nil, err
	}

	members, err := s.CommunityRepo.FindMembers(communityID)
	if err != nil {
		return nil, err
	}
	for _, member := range members {
		if member.ID == user.ID {
			return nil, fmt.Errorf("%w: %s", util.ErrAlreadyMember, user.Name)
		}
	}

	if err := s.CommunityRepo.AddMember(communityID, userID); err != nil {
		// 并发加入时由联合主键兜底
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: %s", util.ErrAlreadyMember, user.Name)
		}
		return nil, err
	}

	monitoring.MembershipChanges.WithLabelValues("add").Inc()
	return community, nil
}

// RemoveMember 用户不在社区中时返回 ErrNotMember
func (s *CommunityService) RemoveMember(communityID, userID uint) (*model.Community, error) {
	community, user, err := s.resolve(communityID, userID)
	if err != nil {
		return nil, err
	}

	affected, err := s.CommunityRepo.RemoveMember(communityID, userID)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, fmt.Errorf("%w: %s", util.ErrNotMember, user.Name)
	}

	monitoring.MembershipChanges.WithLabelValues("remove").Inc()
	return community, nil
}
