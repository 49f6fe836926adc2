package model

// Community 小组挑战，成员关系保存在 usuarios_comunidad 关联表
// swagger:model Community
type Community struct {
	BaseModel
	ChallengeName string `gorm:"column:nombre_reto;size:200" json:"nombre_reto"`
	Category      string `gorm:"column:categoria;size:100" json:"categoria"`
	Duration      int    `gorm:"column:duracion" json:"duracion"` // 天数

	Participants []User `gorm:"many2many:usuarios_comunidad;joinForeignKey:ComunidadID;joinReferences:UsuarioID;constraint:OnDelete:CASCADE" json:"participantes,omitempty"`
}

func (Community) TableName() string {
	return "comunidades"
}

// CommunityMember 关联表行，(usuario_id, comunidad_id) 为联合主键，
// 由存储层保证同一用户不会重复加入
type CommunityMember struct {
	UserID      uint `gorm:"column:usuario_id;primaryKey;autoIncrement:false" json:"usuario_id"`
	CommunityID uint `gorm:"column:comunidad_id;primaryKey;autoIncrement:false" json:"comunidad_id"`
}

func (CommunityMember) TableName() string {
	return "usuarios_comunidad"
}
