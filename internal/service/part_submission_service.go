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

type PartSubmissionService struct {
	PartRepo     *repository.PartSubmissionRepository
	ProgressRepo *repository.LabProgressRepository
	StudentRepo  *repository.StudentRepository
	Storage      *StorageService
	Logger       *zap.Logger
}

func NewPartSubmissionService(partRepo *repository.PartSubmissionRepository,
	progressRepo *repository.LabProgressRepository, studentRepo *repository.StudentRepository,
	storage *StorageService, logger *zap.Logger) *PartSubmissionService {
	return &PartSubmissionService{
		PartRepo:     partRepo,
		ProgressRepo: progressRepo,
		StudentRepo:  studentRepo,
		Storage:      storage,
		Logger:       logger,
	}
}

// PresignedUploadResult 上传授权应答
type PresignedUploadResult struct {
	UploadURL string `json:"uploadUrl"`
	FileKey   string `json:"fileKey"`
	ExpiresIn int    `json:"expiresIn"`
}

// PresignUpload 生成限时直传地址
func (s *PartSubmissionService) PresignUpload(ctx context.Context, labID, partID, fileName, fileType string, claims *util.Claims) (*PresignedUploadResult, error) {
	key := BuildFileKey(labID, partID, claims.EffectiveStudentID(), fileName)
	uploadURL, err := s.Storage.PresignUpload(ctx, key, fileType)
	if err != nil {
		return nil, err
	}
	return &PresignedUploadResult{
		UploadURL: uploadURL,
		FileKey:   key,
		ExpiresIn: int(util.UploadURLExpiry.Seconds()),
	}, nil
}

// CreateRequest 视频提交的字段白名单
type CreateRequest struct {
	LabID   string `json:"labId" binding:"required"`
	PartID  string `json:"partId" binding:"required"`
	FileKey string `json:"fileKey" binding:"required"`
	Notes   string `json:"notes"`
}

// Create 创建视频提交并整条替换对应的进度记录
func (s *PartSubmissionService) Create(ctx context.Context, req *CreateRequest, claims *util.Claims) (*model.PartSubmission, error) {
	studentID := claims.EffectiveStudentID()

	// 教学人员代传不校验点名册
	if !claims.IsStaff() {
		if _, err := s.StudentRepo.FindByName(studentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, util.ErrStudentNotFound
			}
			return nil, err
		}
	}

	fileURL, err := s.Storage.PresignEmbedded(ctx, req.FileKey)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	submission := &model.PartSubmission{
		LabID:       req.LabID,
		PartID:      req.PartID,
		StudentID:   studentID,
		UserID:      claims.Username,
		Username:    claims.Username,
		FileKey:     req.FileKey,
		FileURL:     fileURL,
		Notes:       req.Notes,
		Status:      model.SubmissionPending,
		SubmittedAt: now,
		UpdatedAt:   now,
	}
	if err := s.PartRepo.Create(submission); err != nil {
		return nil, err
	}

	err = s.ProgressRepo.Put(&model.LabProgress{
		StudentID:        studentID,
		ProgressID:       model.ProgressKey(req.LabID, req.PartID),
		LabID:            req.LabID,
		PartID:           req.PartID,
		SubmissionID:     submission.SubmissionID,
		CheckoffType:     model.CheckoffVideo,
		Completed:        false,
		SubmissionStatus: model.SubmissionPending,
		UpdatedAt:        now,
	})
	if err != nil {
		s.Logger.Warn("提交后进度记录回写失败",
			zap.String("studentId", studentID),
			zap.String("labId", req.LabID),
			zap.String("partId", req.PartID),
			zap.Error(err))
	}
	return submission, nil
}

// SelfCheckoffRequest 自评打卡的字段白名单
type SelfCheckoffRequest struct {
	LabID  string `json:"labId" binding:"required"`
	PartID string `json:"partId" binding:"required"`
	Notes  string `json:"notes"`
}

// SelfCheckoff 自评打卡：无文件、直接通过、审核人记 system，不写进度记录
func (s *PartSubmissionService) SelfCheckoff(req *SelfCheckoffRequest, claims *util.Claims) (*model.PartSubmission, error) {
	now := time.Now()
	submission := &model.PartSubmission{
		LabID:       req.LabID,
		PartID:      req.PartID,
		StudentID:   claims.EffectiveStudentID(),
		UserID:      claims.Username,
		Username:    claims.Username,
		Notes:       req.Notes,
		Status:      model.SubmissionApproved,
		SubmittedAt: now,
		UpdatedAt:   now,
		ReviewedBy:  model.ReviewedBySystem,
		ReviewedAt:  &now,
	}
	if err := s.PartRepo.Create(submission); err != nil {
		return nil, err
	}
	return submission, nil
}

// List 教学人员可组合过滤，学生只能看自己的
func (s *PartSubmissionService) List(filter repository.SubmissionFilter, claims *util.Claims) ([]model.PartSubmission, error) {
	if !claims.IsStaff() {
		filter = repository.SubmissionFilter{
			LabID:     filter.LabID,
			StudentID: claims.EffectiveStudentID(),
		}
	}
	return s.PartRepo.List(filter)
}

// QueueResult 待审核队列视图
type QueueResult struct {
	Submissions  []model.PartSubmission `json:"submissions"`
	PendingCount int                    `json:"pendingCount"`
	TotalCount   int64                  `json:"totalCount"`
}

// Queue 待审核提交按提交时间升序，并附全量计数
func (s *PartSubmissionService) Queue(ctx context.Context) (*QueueResult, error) {
	pending, err := s.PartRepo.FindPending()
	if err != nil {
		return nil, err
	}
	total, err := s.PartRepo.CountAll()
	if err != nil {
		return nil, err
	}
	for i := range pending {
		pending[i].QueuePosition = i + 1
		s.refreshViewURL(ctx, &pending[i])
	}
	return &QueueResult{Submissions: pending, PendingCount: len(pending), TotalCount: total}, nil
}

// refreshViewURL 为带文件的提交生成短效播放地址；失败保留入库时的长效地址
func (s *PartSubmissionService) refreshViewURL(ctx context.Context, submission *model.PartSubmission) {
	if submission.FileKey == "" {
		return
	}
	fresh, err := s.Storage.PresignView(ctx, submission.FileKey)
	if err != nil {
		s.Logger.Warn("生成播放地址失败",
			zap.String("submissionId", submission.SubmissionID),
			zap.Error(err))
		return
	}
	submission.FileURL = fresh
}

// Get 取单条提交，学生只能取自己的
func (s *PartSubmissionService) Get(ctx context.Context, submissionID string, claims *util.Claims) (*model.PartSubmission, error) {
	submission, err := s.PartRepo.FindByID(submissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSubmissionNotFound
		}
		return nil, err
	}
	if !claims.IsStaff() && submission.StudentID != claims.EffectiveStudentID() {
		return nil, util.ErrNotOwner
	}
	s.refreshViewURL(ctx, submission)
	return submission, nil
}

// ReviewRequest 审核的字段白名单
type ReviewRequest struct {
	Status   string `json:"status" binding:"required"`
	Feedback string `json:"feedback"`
}

// Review 审核提交，随后尽力更新对应进度记录；进度失败只记日志
func (s *PartSubmissionService) Review(submissionID string, req *ReviewRequest, reviewer string) (*model.PartSubmission, error) {
	if !model.ValidReviewStatus(req.Status) {
		return nil, util.ErrInvalidStatus
	}

	submission, err := s.PartRepo.FindByID(submissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSubmissionNotFound
		}
		return nil, err
	}

	now := time.Now()
	updated, err := s.PartRepo.UpdateReview(submissionID, map[string]interface{}{
		"status":      req.Status,
		"feedback":    req.Feedback,
		"reviewed_by": reviewer,
		"reviewed_at": now,
		"updated_at":  now,
	})
	if err != nil {
		return nil, err
	}

	err = s.ProgressRepo.UpdateReview(submission.StudentID,
		model.ProgressKey(submission.LabID, submission.PartID),
		map[string]interface{}{
			"submission_status": req.Status,
			"completed":         req.Status == model.SubmissionApproved,
			"feedback":          req.Feedback,
			"updated_at":        now,
		})
	if err != nil {
		s.Logger.Warn("审核后进度记录回写失败",
			zap.String("submissionId", submissionID),
			zap.String("studentId", submission.StudentID),
			zap.Error(err))
	}
	return updated, nil
}
