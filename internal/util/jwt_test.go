package util

import (
	"testing"
	"time"

	"lab_platform_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-secret-0123456789-0123456789"

func TestGenerateParseRoundTrip(t *testing.T) {
	user := &model.User{ID: 7, Username: "alice", Role: model.RoleStudent, StudentID: "alice"}
	token, err := GenerateJWT(user, testSecret, time.Hour)
	require.NoError(t, err)

	claims, err := ParseJWT(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, model.RoleStudent, claims.Role)
	assert.False(t, claims.IsStaff())
	assert.Equal(t, "alice", claims.EffectiveStudentID())
}

func TestParseRejectsWrongSecret(t *testing.T) {
	user := &model.User{ID: 1, Username: "alice"}
	token, err := GenerateJWT(user, testSecret, time.Hour)
	require.NoError(t, err)

	_, err = ParseJWT(token, "another-secret-entirely-0123456789012")
	assert.Error(t, err)
}

func TestParseRejectsExpired(t *testing.T) {
	user := &model.User{ID: 1, Username: "alice"}
	token, err := GenerateJWT(user, testSecret, -time.Minute)
	require.NoError(t, err)

	_, err = ParseJWT(token, testSecret)
	assert.Error(t, err)
}

// 没带学号的账号退回用户名作为学生标识
func TestEffectiveStudentIDFallback(t *testing.T) {
	claims := &Claims{Username: "ta1", Role: model.RoleStaff}
	assert.Equal(t, "ta1", claims.EffectiveStudentID())
	assert.True(t, claims.IsStaff())
}

// 角色缺省按学生处理
func TestEmptyRoleDefaultsToStudent(t *testing.T) {
	user := &model.User{ID: 2, Username: "bob"}
	token, err := GenerateJWT(user, testSecret, time.Hour)
	require.NoError(t, err)

	claims, err := ParseJWT(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, model.RoleStudent, claims.Role)
}
