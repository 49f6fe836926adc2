package repository

import (
	"microhabits_backend/internal/model"

	"gorm.io/gorm"
)

type CommunityRepository struct {
	DB *gorm.DB
}

func NewCommunityRepository(db *gorm.DB) *CommunityRepository {
	return &CommunityRepository{DB: db}
}

func (r *CommunityRepository) Create(community *model.Community) error {
	return r.DB.Omit("Participants").Create(community).Error
}

func (r *CommunityRepository) FindByID(id uint) (*model.Community, error) {
	var community model.Community
	if err := r.DB.First(&community, id).Error; err != nil {
		return nil, err
	}
	return &community, nil
}

func (r *CommunityRepository) FindAll() ([]model.Community, error) {
	var communities []model.Community
	err := r.DB.Order("id asc").Find(&communities).Error
	return communities, err
}

func (r *CommunityRepository) Update(community *model.Community) error {
	return r.DB.Omit("Participants").Save(community).Error
}

// Delete 在同一事务中删除成员关系与社区本身
func (r *CommunityRepository) Delete(id uint) (int64, error) {
	var affected int64
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("comunidad_id = ?", id).Delete(&model.CommunityMember{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&model.Community{}, id)
		affected = result.RowsAffected
		return result.Error
	})
	return affected, err
}

// FindMembers 返回社区当前成员，顺序由存储决定
func (r *CommunityRepository) FindMembers(communityID uint) ([]model.User, error) {
	var users []model.User
	err := r.DB.Joins("JOIN usuarios_comunidad ON usuarios_comunidad.usuario_id = usuarios.id").
		Where("usuarios_comunidad.comunidad_id = ?", communityID).
		Find(&users).Error
	return users, err
}

// FindByMember 返回包含指定用户的全部社区
func (r *CommunityRepository) FindByMember(userID uint) ([]model.Community, error) {
	var communities []model.Community
	err := r.DB.Joins("JOIN usuarios_comunidad ON usuarios_comunidad.comunidad_id = comunidades.id").
		Where("usuarios_comunidad.usuario_id = ?", userID).
		Find(&communities).Error
	return communities, err
}

// AddMember 插入关联行，重复插入时返回 gorm.ErrDuplicatedKey
func (r *CommunityRepository) AddMember(communityID, userID uint) error {
	return r.DB.Create(&model.CommunityMember{
		UserID:      userID,
		CommunityID: communityID,
	}).Error
}

func (r *CommunityRepository) RemoveMember(communityID, userID uint) (int64, error) {
	result := r.DB.Where("comunidad_id = ? AND usuario_id = ?", communityID, userID).
		Delete(&model.CommunityMember{})
	return result.RowsAffected, result.Error
}

// CountMembers 统计每个社区的成员数
func (r *CommunityRepository) CountMembers(communityID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.CommunityMember{}).
		Where("comunidad_id = ?", communityID).
		Count(&count).Error
	return count, err
}
