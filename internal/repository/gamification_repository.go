package repository

import (
	"microhabits_backend/internal/model"

	"gorm.io/gorm"
)

type GamificationRepository struct {
	DB *gorm.DB
}

func NewGamificationRepository(db *gorm.DB) *GamificationRepository {
	return &GamificationRepository{DB: db}
}

func (r *GamificationRepository) Create(g *model.Gamification) error {
	return r.DB.Create(g).Error
}

func (r *GamificationRepository) FindByID(id uint) (*model.Gamification, error) {
	var g model.Gamification
	if err := r.DB.First(&g, id).Error; err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *GamificationRepository) FindByUserID(userID uint) (*model.Gamification, error) {
	var g model.Gamification
	if err := r.DB.Where("usuario_id = ?", userID).First(&g).Error; err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *GamificationRepository) FindAll() ([]model.Gamification, error) {
	var records []model.Gamification
	err := r.DB.Order("id asc").Find(&records).Error
	return records, err
}

// FindAllOrderByPoints 按积分降序，同分按 id 升序
func (r *GamificationRepository) FindAllOrderByPoints() ([]model.Gamification, error) {
	var records []model.Gamification
	err := r.DB.Order("puntos DESC").Order("id ASC").Find(&records).Error
	return records, err
}

func (r *GamificationRepository) Update(g *model.Gamification) error {
	return r.DB.Save(g).Error
}

// AddPoints 在一条 UPDATE 中完成累加，避免读改写丢失更新
func (r *GamificationRepository) AddPoints(userID uint, delta int) (int64, error) {
	result := r.DB.Model(&model.Gamification{}).
		Where("usuario_id = ?", userID).
		Update("puntos", gorm.Expr("puntos + ?", delta))
	return result.RowsAffected, result.Error
}

func (r *GamificationRepository) UpdateBadge(userID uint, badge string) (int64, error) {
	result := r.DB.Model(&model.Gamification{}).
		Where("usuario_id = ?", userID).
		Update("badge", badge)
	return result.RowsAffected, result.Error
}

func (r *GamificationRepository) Delete(id uint) (int64, error) {
	result := r.DB.Delete(&model.Gamification{}, id)
	return result.RowsAffected, result.Error
}
