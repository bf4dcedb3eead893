package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"lab_platform_backend/internal/model"
	"lab_platform_backend/internal/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ImportService struct {
	LabRepo      *repository.LabRepository
	StudentRepo  *repository.StudentRepository
	StatusRepo   *repository.LabStatusRepository
	GradeRepo    *repository.LabGradeRepository
	ProgressRepo *repository.LabProgressRepository
	Logger       *zap.Logger
}

func NewImportService(labRepo *repository.LabRepository, studentRepo *repository.StudentRepository,
	statusRepo *repository.LabStatusRepository, gradeRepo *repository.LabGradeRepository,
	progressRepo *repository.LabProgressRepository, logger *zap.Logger) *ImportService {
	return &ImportService{
		LabRepo:      labRepo,
		StudentRepo:  studentRepo,
		StatusRepo:   statusRepo,
		GradeRepo:    gradeRepo,
		ProgressRepo: progressRepo,
		Logger:       logger,
	}
}

// labDefinition 实验定义文件的结构
type labDefinition struct {
	LabID             string                   `json:"labId"`
	Title             string                   `json:"title"`
	Description       string                   `json:"description"`
	Content           string                   `json:"content"`
	StructuredContent *model.StructuredContent `json:"structuredContent"`
	Order             int                      `json:"order"`
	Locked            *bool                    `json:"locked"`
}

// ImportResult 导入摘要
type ImportResult struct {
	Imported int
	Skipped  int
	Failures []string
}

// ImportLabs 导入目录下全部 *.json 实验定义。已存在的实验保留原有
// locked 与创建时间；新实验按 labId != "lab0" 默认锁定。
func (s *ImportService) ImportLabs(dir string) (*ImportResult, error) {
	entries, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, err
	}
	sort.Strings(entries)

	result := &ImportResult{}
	for _, path := range entries {
		if err := s.importLabFile(path); err != nil {
			s.Logger.Error("实验导入失败", zap.String("file", path), zap.Error(err))
			result.Failures = append(result.Failures, fmt.Sprintf("%s: %v", filepath.Base(path), err))
			continue
		}
		result.Imported++
	}
	return result, nil
}

func (s *ImportService) importLabFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var def labDefinition
	if err := json.Unmarshal(data, &def); err != nil {
		return err
	}
	if def.LabID == "" {
		return fmt.Errorf("缺少 labId")
	}

	now := time.Now()
	lab := &model.Lab{
		LabID:             def.LabID,
		Title:             def.Title,
		Description:       def.Description,
		Content:           def.Content,
		StructuredContent: def.StructuredContent,
		Order:             def.Order,
		Locked:            def.Locked,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	existing, err := s.LabRepo.FindByID(def.LabID)
	switch {
	case err == nil:
		// 已存在：锁定状态与创建时间以库内为准
		lab.Locked = existing.Locked
		lab.CreatedAt = existing.CreatedAt
	case errors.Is(err, gorm.ErrRecordNotFound):
		if lab.Locked == nil {
			locked := def.LabID != model.ImportUnlockedLabID
			lab.Locked = &locked
		}
	default:
		return err
	}
	return s.LabRepo.Save(lab)
}

// rosterEntry 点名册文件的结构
type rosterEntry struct {
	Name    string `json:"name"`
	Section string `json:"section"`
}

// ImportStudents 导入点名册并为每个已知实验初始化状态、成绩与
// part1/part2 进度记录。单个学生失败只计入摘要，导入继续。
func (s *ImportService) ImportStudents(file string) (*ImportResult, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	var entries []rosterEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}

	labs, err := s.LabRepo.FindAll()
	if err != nil {
		return nil, err
	}

	result := &ImportResult{}
	for _, entry := range entries {
		if entry.Name == "" {
			result.Skipped++
			continue
		}
		if _, err := s.StudentRepo.FindByName(entry.Name); err == nil {
			result.Skipped++
			continue
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			result.Failures = append(result.Failures, fmt.Sprintf("%s: %v", entry.Name, err))
			continue
		}

		if err := s.importStudent(entry, labs); err != nil {
			s.Logger.Error("学生导入失败", zap.String("student", entry.Name), zap.Error(err))
			result.Failures = append(result.Failures, fmt.Sprintf("%s: %v", entry.Name, err))
			continue
		}
		result.Imported++
	}
	return result, nil
}

func (s *ImportService) importStudent(entry rosterEntry, labs []model.Lab) error {
	now := time.Now()
	student := &model.Student{Name: entry.Name, Section: entry.Section}
	if err := s.StudentRepo.Create(student); err != nil {
		return err
	}

	for i := range labs {
		lab := &labs[i]
		if err := s.StatusRepo.Put(&model.LabStatus{
			StudentID: entry.Name,
			LabID:     lab.LabID,
			Status:    model.LabStatusLocked,
			UpdatedAt: now,
		}); err != nil {
			return err
		}
		if err := s.GradeRepo.Put(&model.LabGrade{
			StudentID: entry.Name,
			LabID:     lab.LabID,
			UpdatedAt: now,
		}); err != nil {
			return err
		}
		for _, partID := range []string{"part1", "part2"} {
			if err := s.ProgressRepo.Put(&model.LabProgress{
				StudentID:    entry.Name,
				ProgressID:   model.ProgressKey(lab.LabID, partID),
				LabID:        lab.LabID,
				PartID:       partID,
				CheckoffType: model.CheckoffPending,
				UpdatedAt:    now,
			}); err != nil {
				return err
			}
		}
	}
	return nil
}
