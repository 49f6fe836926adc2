// @title Micro hábitos API
// @version 1.0
// @description Backend de la plataforma de micro hábitos de aprendizaje.

// @host localhost:8000
// @BasePath /

package main

import (
	"flag"
	"log"
	"microhabits_backend/internal/app"
	"microhabits_backend/internal/config"
	"microhabits_backend/pkg/logger"
)

func main() {
	// 命令行参数
	configDir := flag.String("config", "configs", "配置文件所在目录")
	migrateOnly := flag.Bool("migrate-only", false, "只执行数据库迁移，完成后退出")
	flag.Parse()

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	cfg.MigrateOnly = *migrateOnly

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	// 迁移完成后直接退出
	if *migrateOnly {
		log.Println("数据库迁移完成，退出程序")
		return
	}

	application.Run()
}
