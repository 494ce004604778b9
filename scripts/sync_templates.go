// 手动导入内置示例问卷模板
//
// 已存在的示例模板（按 ID 判断）会被跳过，可重复执行。
// 也可以通过接口 POST /api/templates/sync-samples 触发。
//
// 用法: go run scripts/sync_templates.go

package main

import (
	"context"
	"log"
	"os"
	"questionnaire_backend/internal/config"
	"questionnaire_backend/internal/repository"
	"questionnaire_backend/internal/service"
	"questionnaire_backend/pkg/database"
	"questionnaire_backend/pkg/logger"
	"time"

	"gopkg.in/yaml.v3"
)

func main() {
	data, err := os.ReadFile("configs/config.yaml")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	var cfg config.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Fatalf("解析配置文件失败: %v", err)
	}

	logger.InitLogger(&cfg)

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode == "debug")
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("数据库迁移失败: %v", err)
	}

	templates := service.NewTemplateService(repository.NewTemplateRepository(db), nil)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	synced, err := templates.SyncSampleTemplates(ctx)
	if err != nil {
		log.Fatalf("导入示例模板失败: %v", err)
	}
	log.Printf("示例模板导入完成，新增或恢复 %d 个", synced)
}
