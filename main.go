// @title Quiz App 后端 API
// @version 1.0
// @description 测验管理平台的后端服务器：教师出题指派，学生作答，成绩汇总。

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

package main

import (
	"flag"
	"log"

	"github.com/MuhammadUmair1152/Quiz-App-Backend/internal/app"
	"github.com/MuhammadUmair1152/Quiz-App-Backend/internal/config"
	"github.com/MuhammadUmair1152/Quiz-App-Backend/pkg/logger"
)

func main() {
	migrateOnly := flag.Bool("migrate-only", false, "只执行数据库迁移，完成后退出")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	cfg.MigrateOnly = *migrateOnly

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	if *migrateOnly {
		log.Println("数据库迁移完成，退出程序")
		return
	}

	application.Run()
}
