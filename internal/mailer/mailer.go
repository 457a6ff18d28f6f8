// Package mailer 负责邮件通知：SMTP 发送、订阅者扇出投递与联系表单转发。
package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
)

// Mailer 抽象单封邮件的发送，方便测试替换实现。
type Mailer interface {
	Send(ctx context.Context, to, subject, html string) error
}

// SMTPMailer 通过 SMTP 服务发送 HTML 邮件，发件人与回复地址固定。
type SMTPMailer struct {
	host     string
	port     string
	username string
	password string
	from     string
	replyTo  string
}

// SMTPConfig 汇总 SMTPMailer 所需配置。
type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
	ReplyTo  string
}

// NewSMTPMailer 构造 SMTPMailer。
func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	replyTo := strings.TrimSpace(cfg.ReplyTo)
	if replyTo == "" {
		replyTo = cfg.From
	}
	return &SMTPMailer{
		host:     cfg.Host,
		port:     cfg.Port,
		username: cfg.Username,
		password: cfg.Password,
		from:     cfg.From,
		replyTo:  replyTo,
	}
}

// Send 发送一封 HTML 邮件。
func (m *SMTPMailer) Send(ctx context.Context, to, subject, html string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", m.from)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Reply-To: %s\r\n", m.replyTo)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(html)

	addr := m.host + ":" + m.port
	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	return smtp.SendMail(addr, auth, m.from, []string{to}, []byte(msg.String()))
}
