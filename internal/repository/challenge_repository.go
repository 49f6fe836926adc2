package repository

import (
	"microhabits_backend/internal/model"

	"gorm.io/gorm"
)

type ChallengeRepository struct {
	DB *gorm.DB
}

func NewChallengeRepository(db *gorm.DB) *ChallengeRepository {
	return &ChallengeRepository{DB: db}
}

// ChallengeFilter 列表筛选条件，空字符串表示不过滤
type ChallengeFilter struct {
	Category   string
	Difficulty string
}

func (r *ChallengeRepository) Create(challenge *model.Challenge) error {
	return r.DB.Create(challenge).Error
}

func (r *ChallengeRepository) FindByID(id uint) (*model.Challenge, error) {
	var challenge model.Challenge
	if err := r.DB.First(&challenge, id).Error; err != nil {
		return nil, err
	}
	return &challenge, nil
}

func (r *ChallengeRepository) FindAll(filter ChallengeFilter) ([]model.Challenge, error) {
	var challenges []model.Challenge
	query := r.DB.Model(&model.Challenge{})
	if filter.Category != "" {
		query = query.Where("categoria = ?", filter.Category)
	}
	if filter.Difficulty != "" {
		query = query.Where("dificultad = ?", filter.Difficulty)
	}
	err := query.Order("id asc").Find(&challenges).Error
	return challenges, err
}

func (r *ChallengeRepository) Update(challenge *model.Challenge) error {
	return r.DB.Save(challenge).Error
}

// Delete 物理删除，关联的进度记录在同一事务中删除（外键同样声明了级联）
func (r *ChallengeRepository) Delete(id uint) (int64, error) {
	var affected int64
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("reto_id = ?", id).Delete(&model.Progress{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&model.Challenge{}, id)
		affected = result.RowsAffected
		return result.Error
	})
	return affected, err
}
