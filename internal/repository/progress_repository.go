package repository

import (
	"microhabits_backend/internal/model"

	"gorm.io/gorm"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

// ProgressFilter 列表筛选条件，nil 表示不过滤
type ProgressFilter struct {
	UserID    *uint
	Completed *bool
}

func (r *ProgressRepository) Create(progress *model.Progress) error {
	return r.DB.Create(progress).Error
}

func (r *ProgressRepository) FindByID(id uint) (*model.Progress, error) {
	var progress model.Progress
	if err := r.DB.First(&progress, id).Error; err != nil {
		return nil, err
	}
	return &progress, nil
}

func (r *ProgressRepository) FindAll(filter ProgressFilter) ([]model.Progress, error) {
	var records []model.Progress
	query := r.DB.Model(&model.Progress{})
	if filter.UserID != nil {
		query = query.Where("usuario_id = ?", *filter.UserID)
	}
	if filter.Completed != nil {
		query = query.Where("completado = ?", *filter.Completed)
	}
	err := query.Order("id asc").Find(&records).Error
	return records, err
}

func (r *ProgressRepository) Update(progress *model.Progress) error {
	return r.DB.Save(progress).Error
}

func (r *ProgressRepository) SetCompleted(id uint, completed bool) (int64, error) {
	result := r.DB.Model(&model.Progress{}).
		Where("id = ?", id).
		Update("completado", completed)
	return result.RowsAffected, result.Error
}

func (r *ProgressRepository) Delete(id uint) (int64, error) {
	result := r.DB.Delete(&model.Progress{}, id)
	return result.RowsAffected, result.Error
}
