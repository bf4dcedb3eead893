package database

import (
	"fmt"
	"log"

	"lab_platform_backend/internal/config"
	"lab_platform_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	return db, nil
}

// Migrate 同步全部表结构；release 模式下只在显式传入迁移标志时执行
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Lab{},
		&model.Student{},
		&model.LabStatus{},
		&model.LabProgress{},
		&model.LabGrade{},
		&model.Submission{},
		&model.PartSubmission{},
	)
}
