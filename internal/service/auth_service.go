package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"lab_platform_backend/internal/config"
	"lab_platform_backend/internal/model"
	"lab_platform_backend/internal/repository"
	"lab_platform_backend/internal/util"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	confirmCodeTTL = 24 * time.Hour
	resetCodeTTL   = time.Hour
)

type AuthService struct {
	UserRepo    *repository.UserRepository
	StudentRepo *repository.StudentRepository
	Redis       *redis.Client
	Mailer      Mailer
	Cfg         *config.Config
	Logger      *zap.Logger
}

func NewAuthService(userRepo *repository.UserRepository, studentRepo *repository.StudentRepository,
	rdb *redis.Client, mailer Mailer, cfg *config.Config, logger *zap.Logger) *AuthService {
	return &AuthService{
		UserRepo:    userRepo,
		StudentRepo: studentRepo,
		Redis:       rdb,
		Mailer:      mailer,
		Cfg:         cfg,
		Logger:      logger,
	}
}

// UserInfo 登录应答里的用户摘要
type UserInfo struct {
	Username  string         `json:"username"`
	Role      model.UserRole `json:"role"`
	StudentID string         `json:"studentId,omitempty"`
}

// TokenPair 登录与刷新的返回结构
type TokenPair struct {
	AccessToken  string   `json:"accessToken"`
	IDToken      string   `json:"idToken"`
	RefreshToken string   `json:"refreshToken"`
	ExpiresIn    int      `json:"expiresIn"`
	User         UserInfo `json:"user"`
}

func confirmCodeKey(username string) string { return "auth:confirm:" + username }
func resetCodeKey(username string) string   { return "auth:reset:" + username }
func refreshKey(token string) string        { return "auth:refresh:" + token }

// emailDomainAllowed 校验注册邮箱域名是否在白名单内
func (s *AuthService) emailDomainAllowed(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return false
	}
	domain := strings.ToLower(email[at+1:])
	for _, allowed := range s.Cfg.Auth.AllowedEmailDomains {
		if domain == strings.ToLower(allowed) {
			return true
		}
	}
	return false
}

func generateCode() (string, error) {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	n := uint32(buf[0])<<24 | uint32(buf[1])<<16 | uint32(buf[2])<<8 | uint32(buf[3])
	return fmt.Sprintf("%06d", n%1000000), nil
}

func generateRefreshToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// Register 创建未确认账号并发送确认验证码
func (s *AuthService) Register(ctx context.Context, username, email, password, studentID string, role model.UserRole) error {
	if !s.emailDomainAllowed(email) {
		return util.ErrEmailDomain
	}
	if role == "" {
		role = model.RoleStudent
	}

	if _, err := s.UserRepo.FindByUsername(username); err == nil {
		return util.ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if _, err := s.UserRepo.FindByEmail(email); err == nil {
		return util.ErrEmailRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := &model.User{
		Username:  username,
		Email:     email,
		Password:  string(hashed),
		Role:      role,
		StudentID: studentID,
	}
	if err := s.UserRepo.Create(user); err != nil {
		return err
	}

	return s.sendConfirmCode(ctx, username, email)
}

func (s *AuthService) sendConfirmCode(ctx context.Context, username, email string) error {
	code, err := generateCode()
	if err != nil {
		return err
	}
	if err := s.Redis.Set(ctx, confirmCodeKey(username), code, confirmCodeTTL).Err(); err != nil {
		return err
	}
	return s.Mailer.SendCode(email, "账号确认验证码", code)
}

// ResendConfirmation 重发确认验证码
func (s *AuthService) ResendConfirmation(ctx context.Context, username string) error {
	user, err := s.UserRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrUserNotFound
		}
		return err
	}
	if user.Confirmed {
		return util.ErrAlreadyConfirmed
	}
	return s.sendConfirmCode(ctx, username, user.Email)
}

// Confirm 校验验证码并激活账号，同时回写点名册的开户标记
func (s *AuthService) Confirm(ctx context.Context, username, code string) error {
	user, err := s.UserRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrUserNotFound
		}
		return err
	}
	if user.Confirmed {
		return util.ErrAlreadyConfirmed
	}

	stored, err := s.Redis.Get(ctx, confirmCodeKey(username)).Result()
	if err != nil || stored != code {
		return util.ErrInvalidCode
	}

	if err := s.UserRepo.MarkConfirmed(username); err != nil {
		return err
	}
	s.Redis.Del(ctx, confirmCodeKey(username))

	// 点名册回写失败不阻断确认流程
	s.reconcileRoster(user)
	return nil
}

func (s *AuthService) reconcileRoster(user *model.User) {
	name := user.StudentID
	if name == "" {
		name = user.Username
	}
	if _, err := s.StudentRepo.FindByName(name); err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.Logger.Warn("查询点名册失败", zap.String("student", name), zap.Error(err))
			return
		}
		if err := s.StudentRepo.Create(&model.Student{Name: name, HasAccount: true}); err != nil {
			s.Logger.Warn("点名册建档失败", zap.String("student", name), zap.Error(err))
		}
		return
	}
	if err := s.StudentRepo.SetHasAccount(name, true); err != nil {
		s.Logger.Warn("点名册开户标记失败", zap.String("student", name), zap.Error(err))
	}
}

// Login 密码登录，返回访问令牌与刷新令牌
func (s *AuthService) Login(ctx context.Context, username, password string) (*TokenPair, error) {
	user, err := s.UserRepo.FindByUsername(username)
	if err != nil {
		return nil, util.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, util.ErrInvalidCredentials
	}
	if !user.Confirmed {
		return nil, util.ErrUserNotConfirmed
	}

	if err := s.UserRepo.UpdateLastLogin(username); err != nil {
		s.Logger.Warn("更新最近登录时间失败", zap.String("username", username), zap.Error(err))
	}

	return s.issueTokens(ctx, user)
}

func (s *AuthService) issueTokens(ctx context.Context, user *model.User) (*TokenPair, error) {
	access, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return nil, err
	}

	refresh, err := generateRefreshToken()
	if err != nil {
		return nil, err
	}
	if err := s.Redis.Set(ctx, refreshKey(refresh), user.Username, s.Cfg.JWT.RefreshExpire).Err(); err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  access,
		IDToken:      access,
		RefreshToken: refresh,
		ExpiresIn:    int(s.Cfg.JWT.ExpireTime.Seconds()),
		User: UserInfo{
			Username:  user.Username,
			Role:      user.Role,
			StudentID: user.StudentID,
		},
	}, nil
}

// Refresh 用刷新令牌换新的访问令牌，旧刷新令牌轮换作废
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	username, err := s.Redis.Get(ctx, refreshKey(refreshToken)).Result()
	if err != nil {
		return nil, util.ErrInvalidRefresh
	}
	user, err := s.UserRepo.FindByUsername(username)
	if err != nil {
		return nil, util.ErrInvalidRefresh
	}
	s.Redis.Del(ctx, refreshKey(refreshToken))
	return s.issueTokens(ctx, user)
}

// ForgotPassword 发送重置密码验证码；账号不存在时静默成功，避免枚举
func (s *AuthService) ForgotPassword(ctx context.Context, username string) error {
	user, err := s.UserRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	code, err := generateCode()
	if err != nil {
		return err
	}
	if err := s.Redis.Set(ctx, resetCodeKey(username), code, resetCodeTTL).Err(); err != nil {
		return err
	}
	return s.Mailer.SendCode(user.Email, "重置密码验证码", code)
}

// ResetPassword 校验验证码并更新密码
func (s *AuthService) ResetPassword(ctx context.Context, username, code, newPassword string) error {
	stored, err := s.Redis.Get(ctx, resetCodeKey(username)).Result()
	if err != nil || stored != code {
		return util.ErrInvalidCode
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.UserRepo.UpdatePassword(username, string(hashed)); err != nil {
		return err
	}
	s.Redis.Del(ctx, resetCodeKey(username))
	return nil
}
