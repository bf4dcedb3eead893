package service

import (
	"errors"
	"time"

	"lab_platform_backend/internal/model"
	"lab_platform_backend/internal/repository"
	"lab_platform_backend/internal/util"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type RosterService struct {
	StudentRepo    *repository.StudentRepository
	LabRepo        *repository.LabRepository
	StatusRepo     *repository.LabStatusRepository
	GradeRepo      *repository.LabGradeRepository
	ProgressRepo   *repository.LabProgressRepository
	SubmissionRepo *repository.SubmissionRepository
	Logger         *zap.Logger
}

func NewRosterService(studentRepo *repository.StudentRepository, labRepo *repository.LabRepository,
	statusRepo *repository.LabStatusRepository, gradeRepo *repository.LabGradeRepository,
	progressRepo *repository.LabProgressRepository, submissionRepo *repository.SubmissionRepository,
	logger *zap.Logger) *RosterService {
	return &RosterService{
		StudentRepo:    studentRepo,
		LabRepo:        labRepo,
		StatusRepo:     statusRepo,
		GradeRepo:      gradeRepo,
		ProgressRepo:   progressRepo,
		SubmissionRepo: submissionRepo,
		Logger:         logger,
	}
}

// ProgressSummary 花名册列表里的完成度概览
type ProgressSummary struct {
	CompletedLabs int     `json:"completedLabs"`
	TotalLabs     int     `json:"totalLabs"`
	Percentage    float64 `json:"percentage"`
}

// StudentView 花名册条目
type StudentView struct {
	Name       string          `json:"name"`
	Section    string          `json:"section"`
	HasAccount bool            `json:"hasAccount"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
	Progress   ProgressSummary `json:"progress"`
}

// LabProgressView 单个学生在单个实验上的汇总
type LabProgressView struct {
	LabID            string                 `json:"labId"`
	Title            string                 `json:"title"`
	Order            int                    `json:"order"`
	Status           string                 `json:"status"`
	Completed        bool                   `json:"completed"`
	SubmissionStatus string                 `json:"submissionStatus,omitempty"`
	Grade            *string                `json:"grade"`
	Parts            []model.LabProgress    `json:"parts"`
	Submissions      []model.Submission     `json:"submissions,omitempty"`
}

// StudentProgressView 单个学生的全量进度
type StudentProgressView struct {
	Name       string            `json:"name"`
	Section    string            `json:"section"`
	HasAccount bool              `json:"hasAccount"`
	Labs       []LabProgressView `json:"labs"`
}

// ListStudents 花名册加完成度概览
func (s *RosterService) ListStudents() ([]StudentView, error) {
	students, err := s.StudentRepo.FindAll()
	if err != nil {
		return nil, err
	}
	labs, err := s.LabRepo.FindAll()
	if err != nil {
		return nil, err
	}

	views := make([]StudentView, 0, len(students))
	for i := range students {
		st := &students[i]
		completed, err := s.StatusRepo.CountCompleted(st.Name)
		if err != nil {
			return nil, err
		}
		summary := ProgressSummary{
			CompletedLabs: int(completed),
			TotalLabs:     len(labs),
		}
		if summary.TotalLabs > 0 {
			summary.Percentage = float64(summary.CompletedLabs) / float64(summary.TotalLabs) * 100
		}
		views = append(views, StudentView{
			Name:       st.Name,
			Section:    st.Section,
			HasAccount: st.HasAccount,
			CreatedAt:  st.CreatedAt,
			UpdatedAt:  st.UpdatedAt,
			Progress:   summary,
		})
	}
	return views, nil
}

// labView 聚合单个学生在单个实验上的状态、成绩与分部进度
func (s *RosterService) labView(studentID string, lab *model.Lab, withSubmissions bool) (LabProgressView, error) {
	view := LabProgressView{
		LabID:  lab.LabID,
		Title:  lab.Title,
		Order:  lab.Order,
		Status: model.LabStatusLocked,
		Parts:  []model.LabProgress{},
	}
	if !lab.EffectiveLocked() {
		view.Status = model.LabStatusUnlocked
	}

	status, err := s.StatusRepo.Get(studentID, lab.LabID)
	if err == nil {
		view.Status = status.Status
		view.Completed = status.Completed
		view.SubmissionStatus = status.SubmissionStatus
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return view, err
	}

	grade, err := s.GradeRepo.Get(studentID, lab.LabID)
	if err == nil {
		view.Grade = grade.Grade
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return view, err
	}

	parts, err := s.ProgressRepo.FindByLabPrefix(studentID, lab.LabID)
	if err != nil {
		return view, err
	}
	view.Parts = parts

	if withSubmissions {
		submissions, err := s.SubmissionRepo.FindByStudentAndLab(studentID, lab.LabID)
		if err != nil {
			return view, err
		}
		view.Submissions = submissions
	}
	return view, nil
}

func (s *RosterService) studentProgress(student *model.Student, labs []model.Lab, withSubmissions bool) (*StudentProgressView, error) {
	view := &StudentProgressView{
		Name:       student.Name,
		Section:    student.Section,
		HasAccount: student.HasAccount,
		Labs:       make([]LabProgressView, 0, len(labs)),
	}
	for i := range labs {
		labView, err := s.labView(student.Name, &labs[i], withSubmissions)
		if err != nil {
			return nil, err
		}
		view.Labs = append(view.Labs, labView)
	}
	return view, nil
}

// GetStudent 单个学生的逐实验明细
func (s *RosterService) GetStudent(name string) (*StudentProgressView, error) {
	student, err := s.StudentRepo.FindByName(name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrStudentNotFound
		}
		return nil, err
	}
	labs, err := s.LabRepo.FindAll()
	if err != nil {
		return nil, err
	}
	return s.studentProgress(student, labs, false)
}

// CreateStudent 建档，重名冲突
func (s *RosterService) CreateStudent(name, section string) (*model.Student, error) {
	if _, err := s.StudentRepo.FindByName(name); err == nil {
		return nil, util.ErrStudentExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	student := &model.Student{Name: name, Section: section}
	if err := s.StudentRepo.Create(student); err != nil {
		return nil, err
	}
	return student, nil
}

// UpdateStudentRequest 学生编辑的字段白名单
type UpdateStudentRequest struct {
	Section    *string `json:"section"`
	HasAccount *bool   `json:"hasAccount"`
}

// UpdateStudent 只更新白名单内显式给出的字段
func (s *RosterService) UpdateStudent(name string, req *UpdateStudentRequest) (*model.Student, error) {
	if _, err := s.StudentRepo.FindByName(name); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrStudentNotFound
		}
		return nil, err
	}

	fields := map[string]interface{}{}
	if req.Section != nil {
		fields["section"] = *req.Section
	}
	if req.HasAccount != nil {
		fields["has_account"] = *req.HasAccount
	}
	return s.StudentRepo.UpdateFields(name, fields)
}

// Progress 全班逐学生逐实验汇总
func (s *RosterService) Progress() ([]*StudentProgressView, error) {
	students, err := s.StudentRepo.FindAll()
	if err != nil {
		return nil, err
	}
	labs, err := s.LabRepo.FindAll()
	if err != nil {
		return nil, err
	}
	views := make([]*StudentProgressView, 0, len(students))
	for i := range students {
		view, err := s.studentProgress(&students[i], labs, false)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

// ProgressFor 单个学生汇总，额外带整实验提交记录
func (s *RosterService) ProgressFor(name string) (*StudentProgressView, error) {
	student, err := s.StudentRepo.FindByName(name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrStudentNotFound
		}
		return nil, err
	}
	labs, err := s.LabRepo.FindAll()
	if err != nil {
		return nil, err
	}
	return s.studentProgress(student, labs, true)
}

// UpdateProgressRequest 进度修正的字段白名单
type UpdateProgressRequest struct {
	LabID        string  `json:"labId" binding:"required"`
	Status       *string `json:"status"`
	Completed    *bool   `json:"completed"`
	Grade        *string `json:"grade"`
	PartID       string  `json:"partId"`
	PartCompleted *bool  `json:"partCompleted"`
	CheckoffType *string `json:"checkoffType"`
}

// UpdateProgress 按白名单分派写入：status/completed 进状态表，grade 整条
// 替换成绩表，partId 整条替换分部进度（缺省字段沿用旧值）。返回落库清单。
func (s *RosterService) UpdateProgress(name string, req *UpdateProgressRequest) ([]string, error) {
	if _, err := s.StudentRepo.FindByName(name); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrStudentNotFound
		}
		return nil, err
	}

	now := time.Now()
	applied := []string{}

	if req.Status != nil || req.Completed != nil {
		status := &model.LabStatus{StudentID: name, LabID: req.LabID}
		if existing, err := s.StatusRepo.Get(name, req.LabID); err == nil {
			status = existing
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if req.Status != nil {
			status.Status = *req.Status
		}
		if req.Completed != nil {
			status.Completed = *req.Completed
		}
		status.UpdatedAt = now
		if err := s.StatusRepo.Put(status); err != nil {
			return nil, err
		}
		applied = append(applied, "labStatus")
	}

	if req.Grade != nil {
		grade := &model.LabGrade{
			StudentID: name,
			LabID:     req.LabID,
			Grade:     req.Grade,
			UpdatedAt: now,
		}
		if err := s.GradeRepo.Put(grade); err != nil {
			return nil, err
		}
		applied = append(applied, "labGrade")
	}

	if req.PartID != "" {
		progressID := model.ProgressKey(req.LabID, req.PartID)
		progress := &model.LabProgress{
			StudentID:    name,
			ProgressID:   progressID,
			LabID:        req.LabID,
			PartID:       req.PartID,
			CheckoffType: model.CheckoffPending,
		}
		if existing, err := s.ProgressRepo.Get(name, progressID); err == nil {
			progress = existing
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if req.PartCompleted != nil {
			progress.Completed = *req.PartCompleted
		}
		if req.CheckoffType != nil {
			progress.CheckoffType = *req.CheckoffType
		}
		progress.UpdatedAt = now
		if err := s.ProgressRepo.Put(progress); err != nil {
			return nil, err
		}
		applied = append(applied, "labProgress")
	}

	return applied, nil
}
