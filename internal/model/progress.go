package model

import "time"

// Progress 用户对某个微挑战的一次作答记录，同一用户可对同一挑战有多条记录
// swagger:model Progress
type Progress struct {
	BaseModel
	UserID      uint      `gorm:"column:usuario_id;index;not null" json:"usuario_id"`
	ChallengeID uint      `gorm:"column:reto_id;index;not null" json:"reto_id"`
	Completed   bool      `gorm:"column:completado;default:false" json:"completado"`
	Date        time.Time `gorm:"column:fecha" json:"fecha"`

	User      *User      `gorm:"foreignKey:UserID" json:"-"`
	Challenge *Challenge `gorm:"foreignKey:ChallengeID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Progress) TableName() string {
	return "progreso"
}
