package database

import (
	"microhabits_backend/internal/model"

	"gorm.io/gorm"
)

// 默认的教学数据集
var (
	defaultUsers = []model.User{
		{Name: "Ana Torres", Age: 19, Category: "Estudiante", Level: 1, Active: true},
		{Name: "Carlos Ruiz", Age: 22, Category: "Estudiante", Level: 1, Active: true},
		{Name: "Laura Gómez", Age: 28, Category: "Docente", Level: 1, Active: true},
		{Name: "Pedro Martínez", Age: 35, Category: "Instructor", Level: 1, Active: true},
		{Name: "Sofía Herrera", Age: 20, Category: "Estudiante", Level: 1, Active: true},
	}

	defaultChallenges = []model.Challenge{
		{
			Category:   "Python",
			Difficulty: "Baja",
			Content:    "¿Qué es una variable en Python?",
			Answer:     "Es un espacio en memoria para almacenar datos",
		},
		{
			Category:   "Bases de Datos",
			Difficulty: "Media",
			Content:    "¿Qué significa CRUD?",
			Answer:     "Crear, Leer, Actualizar y Eliminar",
		},
		{
			Category:   "FastAPI",
			Difficulty: "Media",
			Content:    "¿Qué es un endpoint?",
			Answer:     "Una ruta que responde a peticiones HTTP",
		},
		{
			Category:   "Backend",
			Difficulty: "Alta",
			Content:    "¿Qué es una API REST?",
			Answer:     "Un servicio que permite consumir datos por HTTP",
		},
	}
)

// Seed 仅在对应表为空时写入默认数据，可重复执行
func Seed(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.User{}).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			users := make([]model.User, len(defaultUsers))
			copy(users, defaultUsers)
			if err := tx.Create(&users).Error; err != nil {
				return err
			}
		}

		var rCount int64
		if err := tx.Model(&model.Challenge{}).Count(&rCount).Error; err != nil {
			return err
		}
		if rCount == 0 {
			challenges := make([]model.Challenge, len(defaultChallenges))
			copy(challenges, defaultChallenges)
			if err := tx.Create(&challenges).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
