package service

import (
	"context"
	"testing"
	"time"

	"lab_platform_backend/internal/config"
	"lab_platform_backend/internal/model"
	"lab_platform_backend/internal/util"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureMailer 记录最近一次投递的验证码
type captureMailer struct {
	email string
	code  string
}

func (m *captureMailer) SendCode(email, subject, code string) error {
	m.email = email
	m.code = code
	return nil
}

func newAuthService(t *testing.T) (*AuthService, *testRepos, *captureMailer) {
	db := newTestDB(t)
	repos := newTestRepos(db)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret-0123456789-0123456789-0123456789"
	cfg.JWT.ExpireTime = time.Hour
	cfg.JWT.RefreshExpire = 24 * time.Hour
	cfg.Auth.AllowedEmailDomains = []string{"gatech.edu"}

	mailer := &captureMailer{}
	svc := NewAuthService(repos.user, repos.student, rdb, mailer, cfg, testLogger())
	return svc, repos, mailer
}

func TestRegisterRejectsForeignDomain(t *testing.T) {
	svc, repos, _ := newAuthService(t)
	ctx := context.Background()

	err := svc.Register(ctx, "alice", "alice@example.com", "hunter2hunter2", "alice", model.RoleStudent)
	assert.ErrorIs(t, err, util.ErrEmailDomain)

	// 域名不符时不落用户
	_, err = repos.user.FindByUsername("alice")
	assert.Error(t, err)
}

func TestRegisterConfirmLoginFlow(t *testing.T) {
	svc, repos, mailer := newAuthService(t)
	ctx := context.Background()

	require.NoError(t, repos.student.Create(&model.Student{Name: "alice", Section: "A"}))

	require.NoError(t, svc.Register(ctx, "alice", "alice@gatech.edu", "hunter2hunter2", "alice", model.RoleStudent))
	assert.Equal(t, "alice@gatech.edu", mailer.email)
	require.NotEmpty(t, mailer.code)

	// 未确认账号不能登录
	_, err := svc.Login(ctx, "alice", "hunter2hunter2")
	assert.ErrorIs(t, err, util.ErrUserNotConfirmed)

	assert.ErrorIs(t, svc.Confirm(ctx, "alice", "000000"), util.ErrInvalidCode)
	require.NoError(t, svc.Confirm(ctx, "alice", mailer.code))

	// 确认时回写点名册开户标记
	student, err := repos.student.FindByName("alice")
	require.NoError(t, err)
	assert.True(t, student.HasAccount)

	// 重复确认报错
	assert.ErrorIs(t, svc.Confirm(ctx, "alice", mailer.code), util.ErrAlreadyConfirmed)

	_, err = svc.Login(ctx, "alice", "wrong-password")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)

	tokens, err := svc.Login(ctx, "alice", "hunter2hunter2")
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.Equal(t, "alice", tokens.User.Username)
	assert.Equal(t, model.RoleStudent, tokens.User.Role)

	claims, err := util.ParseJWT(tokens.AccessToken, "test-secret-0123456789-0123456789-0123456789")
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "alice", claims.EffectiveStudentID())
}

func TestConfirmCreatesRosterEntryWhenMissing(t *testing.T) {
	svc, repos, mailer := newAuthService(t)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, "carol", "carol@gatech.edu", "hunter2hunter2", "carol", model.RoleStudent))
	require.NoError(t, svc.Confirm(ctx, "carol", mailer.code))

	student, err := repos.student.FindByName("carol")
	require.NoError(t, err)
	assert.True(t, student.HasAccount)
}

func TestRegisterDuplicates(t *testing.T) {
	svc, _, _ := newAuthService(t)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, "alice", "alice@gatech.edu", "hunter2hunter2", "alice", model.RoleStudent))

	err := svc.Register(ctx, "alice", "other@gatech.edu", "hunter2hunter2", "", model.RoleStudent)
	assert.ErrorIs(t, err, util.ErrUsernameTaken)

	err = svc.Register(ctx, "alice2", "alice@gatech.edu", "hunter2hunter2", "", model.RoleStudent)
	assert.ErrorIs(t, err, util.ErrEmailRegistered)
}

func TestRefreshRotation(t *testing.T) {
	svc, _, mailer := newAuthService(t)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, "alice", "alice@gatech.edu", "hunter2hunter2", "alice", model.RoleStudent))
	require.NoError(t, svc.Confirm(ctx, "alice", mailer.code))
	tokens, err := svc.Login(ctx, "alice", "hunter2hunter2")
	require.NoError(t, err)

	renewed, err := svc.Refresh(ctx, tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, renewed.AccessToken)
	assert.NotEqual(t, tokens.RefreshToken, renewed.RefreshToken)

	// 旧刷新令牌已轮换作废
	_, err = svc.Refresh(ctx, tokens.RefreshToken)
	assert.ErrorIs(t, err, util.ErrInvalidRefresh)

	_, err = svc.Refresh(ctx, "bogus")
	assert.ErrorIs(t, err, util.ErrInvalidRefresh)
}

func TestPasswordResetFlow(t *testing.T) {
	svc, _, mailer := newAuthService(t)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, "alice", "alice@gatech.edu", "hunter2hunter2", "alice", model.RoleStudent))
	require.NoError(t, svc.Confirm(ctx, "alice", mailer.code))

	// 账号不存在时静默成功
	require.NoError(t, svc.ForgotPassword(ctx, "nobody"))

	require.NoError(t, svc.ForgotPassword(ctx, "alice"))
	resetCode := mailer.code

	assert.ErrorIs(t, svc.ResetPassword(ctx, "alice", "badcode", "newpassword123"), util.ErrInvalidCode)
	require.NoError(t, svc.ResetPassword(ctx, "alice", resetCode, "newpassword123"))

	_, err := svc.Login(ctx, "alice", "hunter2hunter2")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)
	_, err = svc.Login(ctx, "alice", "newpassword123")
	require.NoError(t, err)
}

func TestResendVerification(t *testing.T) {
	svc, _, mailer := newAuthService(t)
	ctx := context.Background()

	assert.ErrorIs(t, svc.ResendConfirmation(ctx, "ghost"), util.ErrUserNotFound)

	require.NoError(t, svc.Register(ctx, "alice", "alice@gatech.edu", "hunter2hunter2", "alice", model.RoleStudent))
	require.NoError(t, svc.ResendConfirmation(ctx, "alice"))
	require.NotEmpty(t, mailer.code)

	// 新码生效
	require.NoError(t, svc.Confirm(ctx, "alice", mailer.code))
	assert.ErrorIs(t, svc.ResendConfirmation(ctx, "alice"), util.ErrAlreadyConfirmed)
}
