package service

import (
	"testing"

	"lab_platform_backend/internal/model"
	"lab_platform_backend/internal/repository"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Student{},
		&model.Lab{},
		&model.LabStatus{},
		&model.LabProgress{},
		&model.LabGrade{},
		&model.Submission{},
		&model.PartSubmission{},
	))
	return db
}

type testRepos struct {
	user           *repository.UserRepository
	lab            *repository.LabRepository
	student        *repository.StudentRepository
	labStatus      *repository.LabStatusRepository
	labProgress    *repository.LabProgressRepository
	labGrade       *repository.LabGradeRepository
	submission     *repository.SubmissionRepository
	partSubmission *repository.PartSubmissionRepository
}

func newTestRepos(db *gorm.DB) *testRepos {
	return &testRepos{
		user:           repository.NewUserRepository(db),
		lab:            repository.NewLabRepository(db),
		student:        repository.NewStudentRepository(db),
		labStatus:      repository.NewLabStatusRepository(db),
		labProgress:    repository.NewLabProgressRepository(db),
		labGrade:       repository.NewLabGradeRepository(db),
		submission:     repository.NewSubmissionRepository(db),
		partSubmission: repository.NewPartSubmissionRepository(db),
	}
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func localStorage() *StorageService {
	return &StorageService{Provider: &LocalStorageProvider{}}
}

func boolPtr(b bool) *bool { return &b }
