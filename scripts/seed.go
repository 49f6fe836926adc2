// 手动写入示例数据
//
// 启动时若 database.seed 为 true 会自动执行；此脚本用于关闭自动写入的环境，
// 例如在新建的 MySQL 库上初始化演示数据。已有数据的表不会被改动。
//
// 用法: go run scripts/seed.go

package main

import (
	"log"
	"microhabits_backend/internal/config"
	"microhabits_backend/pkg/database"
	"microhabits_backend/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	db, err := database.Open(&cfg.Database)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("数据库迁移失败: %v", err)
	}

	log.Println("写入示例数据...")
	if err := database.Seed(db); err != nil {
		log.Fatalf("写入失败: %v", err)
	}
	log.Println("完成！")
}
