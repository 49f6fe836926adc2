package model

import (
	"time"
)

// BaseModel 不含 DeletedAt：除用户外所有实体均为物理删除，
// 用户的逻辑删除由 activo 字段表示
// swagger:model
type BaseModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// AllModels 返回需要自动建表的全部实体，顺序即迁移顺序。
// usuarios_comunidad 关联表由 Community.Participants 的 many2many 声明创建
func AllModels() []interface{} {
	return []interface{}{
		&User{},
		&Challenge{},
		&Progress{},
		&Gamification{},
		&Community{},
	}
}
