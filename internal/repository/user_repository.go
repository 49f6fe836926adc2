package repository

import (
	"microhabits_backend/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByActive 按 activo 标记列出用户
func (r *UserRepository) FindByActive(active bool) ([]model.User, error) {
	var users []model.User
	err := r.DB.Where("activo = ?", active).Order("id asc").Find(&users).Error
	return users, err
}

// FindActiveByName 按名称精确查找激活用户
func (r *UserRepository) FindActiveByName(name string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("nombre = ? AND activo = ?", name, true).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ActiveNameTaken 判断名称是否已被其他激活用户占用，excludeID 为 0 时不排除任何用户
func (r *UserRepository) ActiveNameTaken(name string, excludeID uint) (bool, error) {
	var count int64
	query := r.DB.Model(&model.User{}).Where("nombre = ? AND activo = ?", name, true)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) Update(user *model.User) error {
	return r.DB.Save(user).Error
}

// SetActive 逻辑删除 / 恢复
func (r *UserRepository) SetActive(id uint, active bool) error {
	return r.DB.Model(&model.User{}).
		Where("id = ?", id).
		Update("activo", active).
		Error
}

func (r *UserRepository) UpdatePhoto(id uint, photo string) error {
	return r.DB.Model(&model.User{}).
		Where("id = ?", id).
		Update("foto", photo).
		Error
}

// FindByIDs 批量获取用户，返回以 ID 为键的映射
func (r *UserRepository) FindByIDs(ids []uint) (map[uint]model.User, error) {
	result := make(map[uint]model.User, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	var users []model.User
	if err := r.DB.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	for _, u := range users {
		result[u.ID] = u
	}
	return result, nil
}
