package service

import (
	"errors"
	"fmt"
	"time"

	"lab_platform_backend/internal/model"
	"lab_platform_backend/internal/repository"
	"lab_platform_backend/internal/util"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type LabService struct {
	LabRepo       *repository.LabRepository
	StatusRepo    *repository.LabStatusRepository
	SubmissionRepo *repository.SubmissionRepository
	Logger        *zap.Logger
}

func NewLabService(labRepo *repository.LabRepository, statusRepo *repository.LabStatusRepository,
	submissionRepo *repository.SubmissionRepository, logger *zap.Logger) *LabService {
	return &LabService{
		LabRepo:        labRepo,
		StatusRepo:     statusRepo,
		SubmissionRepo: submissionRepo,
		Logger:         logger,
	}
}

// LabView 对外返回的实验视图，locked 为解析后的有效值
type LabView struct {
	LabID             string                   `json:"labId"`
	Title             string                   `json:"title"`
	Description       string                   `json:"description"`
	Content           string                   `json:"content,omitempty"`
	StructuredContent *model.StructuredContent `json:"structuredContent,omitempty"`
	Order             int                      `json:"order"`
	Locked            bool                     `json:"locked"`
	Completed         bool                     `json:"completed"`
	CreatedAt         time.Time                `json:"createdAt"`
	UpdatedAt         time.Time                `json:"updatedAt"`
}

func toLabView(lab *model.Lab) *LabView {
	return &LabView{
		LabID:             lab.LabID,
		Title:             lab.Title,
		Description:       lab.Description,
		Content:           lab.Content,
		StructuredContent: lab.StructuredContent,
		Order:             lab.Order,
		Locked:            lab.EffectiveLocked(),
		CreatedAt:         lab.CreatedAt,
		UpdatedAt:         lab.UpdatedAt,
	}
}

// List 返回全部实验，锁定状态已解析；学生视图并入本人完成标记，
// 状态表没有记录的按未完成处理
func (s *LabService) List(claims *util.Claims) ([]*LabView, error) {
	labs, err := s.LabRepo.FindAll()
	if err != nil {
		return nil, err
	}
	views := make([]*LabView, 0, len(labs))
	for i := range labs {
		view := toLabView(&labs[i])
		if claims != nil && !claims.IsStaff() {
			status, err := s.StatusRepo.Get(claims.EffectiveStudentID(), labs[i].LabID)
			if err == nil {
				view.Completed = status.Completed
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
		}
		views = append(views, view)
	}
	return views, nil
}

// Get 取单个实验；学生访问锁定实验时拒绝，教学人员不受限
func (s *LabService) Get(labID string, staff bool) (*LabView, error) {
	lab, err := s.LabRepo.FindByID(labID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrLabNotFound
		}
		return nil, err
	}
	if !staff && lab.EffectiveLocked() {
		return nil, util.ErrLabLocked
	}
	return toLabView(lab), nil
}

// CheckAccess 只做锁定判定，HEAD 探测用
func (s *LabService) CheckAccess(labID string, staff bool) error {
	_, err := s.Get(labID, staff)
	return err
}

// UpdateContentRequest 内容更新的字段白名单
type UpdateContentRequest struct {
	Title             string                   `json:"title"`
	Description       string                   `json:"description"`
	Content           string                   `json:"content"`
	StructuredContent *model.StructuredContent `json:"structuredContent"`
	Order             *int                     `json:"order"`
}

// UpdateContent 更新实验内容，labId、创建时间、锁定状态保持不变
func (s *LabService) UpdateContent(labID string, req *UpdateContentRequest) (*LabView, error) {
	lab, err := s.LabRepo.FindByID(labID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrLabNotFound
		}
		return nil, err
	}

	lab.Title = req.Title
	lab.Description = req.Description
	lab.Content = req.Content
	lab.StructuredContent = req.StructuredContent
	if req.Order != nil {
		lab.Order = *req.Order
	}
	lab.UpdatedAt = time.Now()

	if err := s.LabRepo.Save(lab); err != nil {
		return nil, err
	}
	return toLabView(lab), nil
}

// CascadeFailure 级联同步中单个学生的失败明细
type CascadeFailure struct {
	StudentID string `json:"studentId"`
	Error     string `json:"error"`
}

// CascadeResult 锁定切换的两阶段结果：实验本身先落库，再逐学生同步状态表
type CascadeResult struct {
	LabID    string           `json:"labId"`
	Locked   bool             `json:"locked"`
	Updated  int              `json:"updated"`
	Failures []CascadeFailure `json:"failures"`
}

// SetLocked 切换实验锁定并级联更新每个学生的状态记录。
// 第一阶段更新实验，失败则整体失败；第二阶段逐条同步，单条失败
// 只记入结果，不回滚已成功的记录。
func (s *LabService) SetLocked(labID string, locked bool) (*CascadeResult, error) {
	if _, err := s.LabRepo.FindByID(labID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrLabNotFound
		}
		return nil, err
	}
	if err := s.LabRepo.SetLocked(labID, locked); err != nil {
		return nil, err
	}

	statuses, err := s.StatusRepo.FindByLab(labID)
	if err != nil {
		return nil, err
	}

	statusValue := model.LabStatusUnlocked
	if locked {
		statusValue = model.LabStatusLocked
	}

	result := &CascadeResult{LabID: labID, Locked: locked, Failures: []CascadeFailure{}}
	for i := range statuses {
		st := &statuses[i]
		_, err := s.StatusRepo.UpdateFields(st.StudentID, labID, map[string]interface{}{
			"status":     statusValue,
			"updated_at": time.Now(),
		})
		if err != nil {
			s.Logger.Warn("学生状态级联更新失败",
				zap.String("labId", labID),
				zap.String("studentId", st.StudentID),
				zap.Error(err))
			result.Failures = append(result.Failures, CascadeFailure{StudentID: st.StudentID, Error: err.Error()})
			continue
		}
		result.Updated++
	}
	return result, nil
}

// SubmitRequest 整实验提交的字段白名单
type SubmitRequest struct {
	FileKey string `json:"fileKey"`
	Notes   string `json:"notes"`
}

// Submit 整实验提交，提交号 {studentId}-{labId}-{毫秒时间戳}
func (s *LabService) Submit(labID string, claims *util.Claims, req *SubmitRequest) (*model.Submission, error) {
	lab, err := s.LabRepo.FindByID(labID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrLabNotFound
		}
		return nil, err
	}
	if !claims.IsStaff() && lab.EffectiveLocked() {
		return nil, util.ErrLabLocked
	}

	studentID := claims.EffectiveStudentID()
	now := time.Now()
	submission := &model.Submission{
		SubmissionID: fmt.Sprintf("%s-%s-%d", studentID, labID, now.UnixMilli()),
		LabID:        labID,
		StudentID:    studentID,
		UserID:       claims.Username,
		FileKey:      req.FileKey,
		Notes:        req.Notes,
		Status:       model.SubmissionPending,
		SubmittedAt:  now,
		UpdatedAt:    now,
	}
	if err := s.SubmissionRepo.Create(submission); err != nil {
		return nil, err
	}

	// 状态表整条替换，失败不影响已创建的提交
	err = s.StatusRepo.Put(&model.LabStatus{
		StudentID:        studentID,
		LabID:            labID,
		Status:           model.LabStatusUnlocked,
		Completed:        true,
		SubmissionStatus: model.SubmissionPending,
		SubmissionID:     submission.SubmissionID,
		UpdatedAt:        now,
	})
	if err != nil {
		s.Logger.Warn("提交后状态表回写失败",
			zap.String("studentId", studentID),
			zap.String("labId", labID),
			zap.Error(err))
	}
	return submission, nil
}
