package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"microhabits_backend/internal/model"
	"microhabits_backend/internal/repository"
	"microhabits_backend/internal/util"
	"microhabits_backend/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// UserRequest 创建与整体替换(PUT)共用的请求体
type UserRequest struct {
	Name       string `json:"nombre" binding:"required,max=100"`
	Age        int    `json:"edad" binding:"gte=0,lte=150"`
	Category   string `json:"categoria" binding:"required,max=100"`
	Level      *int   `json:"nivel" binding:"omitempty,gte=1"`
	StreakDays *int   `json:"racha_dias" binding:"omitempty,gte=0"`
	Points     *int   `json:"puntos"`
	Photo      string `json:"foto" binding:"max=255"`
}

// apply 把请求写入实体，未提供的计数字段取默认值
func (req *UserRequest) apply(user *model.User) {
	user.Name = req.Name
	user.Age = req.Age
	user.Category = req.Category
	user.Level = 1
	if req.Level != nil {
		user.Level = *req.Level
	}
	user.StreakDays = 0
	if req.StreakDays != nil {
		user.StreakDays = *req.StreakDays
	}
	user.Points = 0
	if req.Points != nil {
		user.Points = *req.Points
	}
	if req.Photo != "" {
		user.Photo = req.Photo
	}
}

// UserService 处理用户相关的业务逻辑
type UserService struct {
	UserRepo *repository.UserRepository
	Storage  *StorageService
}

// NewUserService 创建一个新的用户服务实例
func NewUserService(userRepo *repository.UserRepository, storage *StorageService) *UserService {
	return &UserService{
		UserRepo: userRepo,
		Storage:  storage,
	}
}

// CreateUser 名称只需在激活用户中唯一
func (s *UserService) CreateUser(req UserRequest) (*model.User, error) {
	taken, err := s.UserRepo.ActiveNameTaken(req.Name, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, util.ErrUserNameTaken
	}

	user := &model.User{Active: true}
	req.apply(user)

	if err := s.UserRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetActiveUsers 默认列表只包含激活用户
func (s *UserService) GetActiveUsers() ([]model.User, error) {
	return s.UserRepo.FindByActive(true)
}

// GetDeletedUsers 列出已逻辑删除的用户
func (s *UserService) GetDeletedUsers() ([]model.User, error) {
	return s.UserRepo.FindByActive(false)
}

// GetUserByID 根据ID获取用户信息，不区分是否激活
func (s *UserService) GetUserByID(id uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// FindActiveByName 按名称精确查找激活用户
func (s *UserService) FindActiveByName(name string) (*model.User, error) {
	user, err := s.UserRepo.FindActiveByName(name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateUser 整体替换用户字段，foto 为空时保留原头像
func (s *UserService) UpdateUser(id uint, req UserRequest) (*model.User, error) {
	user, err := s.GetUserByID(id)
	if err != nil {
		return nil, err
	}

	if user.Active {
		taken, err := s.UserRepo.ActiveNameTaken(req.Name, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, util.ErrUserNameTaken
		}
	}

	req.apply(user)
	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser 逻辑删除：activo = false，名称随即可被复用
func (s *UserService) DeleteUser(id uint) error {
	if _, err := s.GetUserByID(id); err != nil {
		return err
	}
	return s.UserRepo.SetActive(id, false)
}

// RestoreUser 恢复逻辑删除的用户；若名称已被其他激活用户占用则冲突
func (s *UserService) RestoreUser(id uint) (*model.User, error) {
	user, err := s.GetUserByID(id)
	if err != nil {
		return nil, err
	}
	if user.Active {
		return user, nil
	}

	taken, err := s.UserRepo.ActiveNameTaken(user.Name, id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, util.ErrUserNameTaken
	}

	if err := s.UserRepo.SetActive(id, true); err != nil {
		return nil, err
	}
	user.Active = true
	return user, nil
}

// UploadPhoto 校验图片类型后写入存储，并把地址保存到 foto 字段
func (s *UserService) UploadPhoto(ctx context.Context, id uint, reader io.ReadSeeker, size int64) (*model.User, error) {
	user, err := s.GetUserByID(id)
	if err != nil {
		return nil, err
	}

	mimeType, err := util.ValidateMimeType(reader, util.AllowedPhotoTypes)
	if err != nil {
		return nil, err
	}
	if _, err := reader.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	filename := fmt.Sprintf("fotos/%d/%s%s", id, uuid.New().String(), util.ExtensionFor(mimeType))
	url, err := s.Storage.Upload(ctx, filename, reader, size, mimeType)
	if err != nil {
		return nil, fmt.Errorf("upload photo: %w", err)
	}

	if err := s.UserRepo.UpdatePhoto(id, url); err != nil {
		return nil, err
	}

	// 新头像已保存，旧对象删除失败只记录日志
	previous := user.Photo
	user.Photo = url
	if name, ok := s.Storage.ObjectName(previous); ok {
		if err := s.Storage.Delete(ctx, name); err != nil {
			logger.Log.Warn("Failed to delete previous photo",
				zap.Uint("user_id", id),
				zap.String("object", name),
				zap.Error(err),
			)
		}
	}
	return user, nil
}
