package service

import (
	"context"
	"errors"
	"time"

	"lab_platform_backend/internal/model"
	"lab_platform_backend/internal/repository"
	"lab_platform_backend/internal/util"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type SubmissionService struct {
	SubmissionRepo *repository.SubmissionRepository
	StatusRepo     *repository.LabStatusRepository
	Storage        *StorageService
	Logger         *zap.Logger
}

func NewSubmissionService(submissionRepo *repository.SubmissionRepository,
	statusRepo *repository.LabStatusRepository, storage *StorageService, logger *zap.Logger) *SubmissionService {
	return &SubmissionService{
		SubmissionRepo: submissionRepo,
		StatusRepo:     statusRepo,
		Storage:        storage,
		Logger:         logger,
	}
}

// List 教学人员可组合过滤，学生只能看自己的
func (s *SubmissionService) List(filter repository.SubmissionFilter, claims *util.Claims) ([]model.Submission, error) {
	if !claims.IsStaff() {
		filter = repository.SubmissionFilter{
			LabID:     filter.LabID,
			StudentID: claims.EffectiveStudentID(),
		}
	}
	return s.SubmissionRepo.List(filter)
}

// SubmissionView 查询应答，带按需生成的播放地址
type SubmissionView struct {
	model.Submission
	FileURL string `json:"fileUrl,omitempty"`
}

// Get 取单条提交，学生只能取自己的；带文件时附短效播放地址
func (s *SubmissionService) Get(ctx context.Context, submissionID string, claims *util.Claims) (*SubmissionView, error) {
	submission, err := s.SubmissionRepo.FindByID(submissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSubmissionNotFound
		}
		return nil, err
	}
	if !claims.IsStaff() && submission.StudentID != claims.EffectiveStudentID() {
		return nil, util.ErrNotOwner
	}

	view := &SubmissionView{Submission: *submission}
	if submission.FileKey != "" {
		fileURL, err := s.Storage.PresignView(ctx, submission.FileKey)
		if err != nil {
			s.Logger.Warn("生成播放地址失败",
				zap.String("submissionId", submissionID),
				zap.Error(err))
		} else {
			view.FileURL = fileURL
		}
	}
	return view, nil
}

// Review 审核整实验提交，随后尽力更新状态表；状态表失败只记日志
func (s *SubmissionService) Review(submissionID string, req *ReviewRequest, reviewer string) (*model.Submission, error) {
	if !model.ValidReviewStatus(req.Status) {
		return nil, util.ErrInvalidStatus
	}

	submission, err := s.SubmissionRepo.FindByID(submissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSubmissionNotFound
		}
		return nil, err
	}

	now := time.Now()
	updated, err := s.SubmissionRepo.UpdateReview(submissionID, map[string]interface{}{
		"status":      req.Status,
		"feedback":    req.Feedback,
		"reviewed_by": reviewer,
		"reviewed_at": now,
		"updated_at":  now,
	})
	if err != nil {
		return nil, err
	}

	_, err = s.StatusRepo.UpdateFields(submission.StudentID, submission.LabID, map[string]interface{}{
		"submission_status": req.Status,
		"completed":         req.Status == model.SubmissionApproved,
		"updated_at":        now,
	})
	if err != nil {
		s.Logger.Warn("审核后状态表回写失败",
			zap.String("submissionId", submissionID),
			zap.String("studentId", submission.StudentID),
			zap.Error(err))
	}
	return updated, nil
}
