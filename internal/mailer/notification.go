package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/farmgate/internal/db"
)

// Notification 描述一次新内容通知，payload 由标题、摘要与 slug 参数化。
type Notification struct {
	SourceType string // db.DeliverySourceNews 或 db.DeliverySourceBlog
	SourceID   uint
	Title      string
	Excerpt    string
	Slug       string
}

var notificationTemplate = template.Must(template.New("notification").Parse(`<!DOCTYPE html>
<html>
  <body style="font-family: Arial, sans-serif; color: #1f2d1f; margin: 0; padding: 24px;">
    <h2 style="color: #2f6b2f;">{{.Title}}</h2>
    {{if .Excerpt}}<p>{{.Excerpt}}</p>{{end}}
    <p>
      <a href="{{.Link}}" style="color: #2f6b2f; font-weight: bold;">阅读全文</a>
    </p>
    <hr style="border: none; border-top: 1px solid #d8e3d8;">
    <p style="font-size: 12px; color: #7a8a7a;">您收到本邮件是因为订阅了我们的新闻通讯。</p>
  </body>
</html>`))

// Subject 返回本次通知的邮件主题。
func (n Notification) Subject() string {
	if n.SourceType == db.DeliverySourceBlog {
		return fmt.Sprintf("博客更新：%s", n.Title)
	}
	return fmt.Sprintf("新闻速递：%s", n.Title)
}

// HTML 渲染通知正文，链接由站点根地址与 slug 拼接。
func (n Notification) HTML(siteBaseURL string) (string, error) {
	section := "news"
	if n.SourceType == db.DeliverySourceBlog {
		section = "blog"
	}

	link := fmt.Sprintf("%s/%s/%s", strings.TrimRight(siteBaseURL, "/"), section, n.Slug)

	var buf bytes.Buffer
	err := notificationTemplate.Execute(&buf, struct {
		Title   string
		Excerpt string
		Link    string
	}{
		Title:   n.Title,
		Excerpt: n.Excerpt,
		Link:    link,
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
