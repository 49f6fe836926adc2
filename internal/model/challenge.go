package model

// Challenge 微挑战：一道带标准答案的学习题目
// swagger:model Challenge
type Challenge struct {
	BaseModel
	Category   string `gorm:"column:categoria;size:100;index" json:"categoria"`
	Difficulty string `gorm:"column:dificultad;size:50" json:"dificultad"`
	Content    string `gorm:"column:contenido;type:text" json:"contenido"`
	Answer     string `gorm:"column:respuesta;type:text" json:"respuesta"`
}

func (Challenge) TableName() string {
	return "microrretos"
}
