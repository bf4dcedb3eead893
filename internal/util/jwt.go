package util

import (
	"time"

	"lab_platform_backend/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Claims 访问令牌负载：角色缺省为 student，studentId 缺省回落到用户名
type Claims struct {
	UserID    uint           `json:"user_id"`
	Username  string         `json:"username"`
	Role      model.UserRole `json:"role"`
	StudentID string         `json:"studentId,omitempty"`
	jwt.RegisteredClaims
}

// EffectiveStudentID 全系统用学生姓名作为学生标识
func (c *Claims) EffectiveStudentID() string {
	if c.StudentID != "" {
		return c.StudentID
	}
	return c.Username
}

func (c *Claims) IsStaff() bool {
	return c.Role == model.RoleStaff
}

func GenerateJWT(user *model.User, secret string, expiration time.Duration) (string, error) {
	expirationTime := time.Now().Add(expiration)

	role := user.Role
	if role == "" {
		role = model.RoleStudent
	}

	claims := &Claims{
		UserID:    user.ID,
		Username:  user.Username,
		Role:      role,
		StudentID: user.StudentID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ParseJWT(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		if claims.Role == "" {
			claims.Role = model.RoleStudent
		}
		return claims, nil
	}

	return nil, err
}

func GetUserFromContext(c *gin.Context) *Claims {
	user, exists := c.Get("user")
	if !exists {
		return nil
	}
	claims, ok := user.(*Claims)
	if !ok {
		return nil
	}
	return claims
}
