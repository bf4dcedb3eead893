// @title 实验课程平台后端 API
// @version 1.0
// @description 实验课程平台的后端服务器：点名册、实验解锁、打卡提交与审核。

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"flag"
	"log"

	"lab_platform_backend/internal/app"
	"lab_platform_backend/internal/config"
	"lab_platform_backend/pkg/logger"
)

func main() {
	// 命令行参数
	migrateOnly := flag.Bool("migrate-only", false, "只执行数据库迁移，完成后退出")
	migrate := flag.Bool("migrate", false, "启动时强制执行数据库迁移（即使是 release 模式）")
	importLabs := flag.String("import-labs", "", "从目录导入实验定义(*.json)，完成后退出")
	importStudents := flag.String("import-students", "", "从JSON文件导入点名册，完成后退出")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 导入流程需要完整的表结构
	cfg.ForceMigrate = *migrate || *migrateOnly || *importLabs != "" || *importStudents != ""
	cfg.MigrateOnly = *migrateOnly

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	// 迁移完成后直接退出
	if *migrateOnly {
		log.Println("数据库迁移完成，退出程序")
		return
	}

	if *importLabs != "" {
		result, err := application.ImportService().ImportLabs(*importLabs)
		if err != nil {
			log.Fatalf("实验导入失败: %v", err)
		}
		log.Printf("实验导入完成: %d 成功, %d 失败", result.Imported, len(result.Failures))
		for _, failure := range result.Failures {
			log.Printf("  失败: %s", failure)
		}
		return
	}

	if *importStudents != "" {
		result, err := application.ImportService().ImportStudents(*importStudents)
		if err != nil {
			log.Fatalf("点名册导入失败: %v", err)
		}
		log.Printf("点名册导入完成: %d 新增, %d 跳过, %d 失败", result.Imported, result.Skipped, len(result.Failures))
		for _, failure := range result.Failures {
			log.Printf("  失败: %s", failure)
		}
		return
	}

	application.Run()
}
