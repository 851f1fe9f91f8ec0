package email

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"cpduel/global"
)

// SendCode 发送注册验证码邮件
func SendCode(to string, code string) error {
	cfg := global.Config.Email
	m := gomail.NewMessage()
	m.SetHeader("From", cfg.UserName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("【%s】注册验证码", global.Config.App.Name))
	m.SetBody("text/html", fmt.Sprintf(
		"<p>您的验证码为 <b>%s</b>，5分钟内有效。</p><p>如非本人操作请忽略本邮件。</p>", code))

	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.UserName, cfg.Password)
	return d.DialAndSend(m)
}
