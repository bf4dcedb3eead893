package service

import "go.uber.org/zap"

// Mailer 验证码投递接口，生产环境可替换为真实邮件网关
type Mailer interface {
	SendCode(email, subject, code string) error
}

// ConsoleMailer 把验证码写进日志，开发与测试环境使用
type ConsoleMailer struct {
	Logger *zap.Logger
}

func (m *ConsoleMailer) SendCode(email, subject, code string) error {
	m.Logger.Info("发送验证码",
		zap.String("email", email),
		zap.String("subject", subject),
		zap.String("code", code))
	return nil
}
