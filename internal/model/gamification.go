package model

// DefaultBadge 新建积分记录时的默认徽章
const DefaultBadge = "Ninguno"

// Gamification 每个用户至多一条，积分与 User.Points 互不同步
// swagger:model Gamification
type Gamification struct {
	BaseModel
	UserID uint   `gorm:"column:usuario_id;uniqueIndex;not null" json:"usuario_id"`
	Badge  string `gorm:"column:badge;size:100;default:'Ninguno'" json:"badge"`
	Points int    `gorm:"column:puntos;default:0;index" json:"puntos"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}

func (Gamification) TableName() string {
	return "gamificacion"
}
