package model

// swagger:model User
type User struct {
	BaseModel
	Name       string `gorm:"column:nombre;size:100;not null;index" json:"nombre"`
	Age        int    `gorm:"column:edad" json:"edad"`
	Category   string `gorm:"column:categoria;size:100" json:"categoria"`
	Level      int    `gorm:"column:nivel;default:1" json:"nivel"`
	StreakDays int    `gorm:"column:racha_dias;default:0" json:"racha_dias"`
	Points     int    `gorm:"column:puntos;default:0" json:"puntos"` // 用户自身积分，与 Gamification.Points 相互独立
	Photo      string `gorm:"column:foto;size:255;not null;default:''" json:"foto"`
	Active     bool   `gorm:"column:activo;default:true;index" json:"activo"`
}

func (User) TableName() string {
	return "usuarios"
}
