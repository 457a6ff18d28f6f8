package mailer

import (
	"strings"
	"testing"

	"github.com/farmgate/internal/db"
)

func TestNotificationSubject(t *testing.T) {
	news := Notification{SourceType: db.DeliverySourceNews, Title: "春耕启动"}
	if got := news.Subject(); !strings.Contains(got, "春耕启动") {
		t.Fatalf("expected subject to contain title, got %q", got)
	}

	blog := Notification{SourceType: db.DeliverySourceBlog, Title: "田间日记"}
	if news.Subject() == blog.Subject() {
		t.Fatalf("expected news and blog subjects to differ")
	}
}

func TestNotificationHTML(t *testing.T) {
	n := Notification{
		SourceType: db.DeliverySourceNews,
		Title:      "春耕启动",
		Excerpt:    "今年种植面积扩大两成。",
		Slug:       "spring-planting",
	}

	html, err := n.HTML("https://www.farmgate.example/")
	if err != nil {
		t.Fatalf("failed to render notification: %v", err)
	}

	if !strings.Contains(html, "春耕启动") {
		t.Fatalf("expected title in body")
	}
	if !strings.Contains(html, "今年种植面积扩大两成。") {
		t.Fatalf("expected excerpt in body")
	}
	if !strings.Contains(html, "https://www.farmgate.example/news/spring-planting") {
		t.Fatalf("expected article link in body, got %s", html)
	}
}

func TestNotificationHTMLBlogLink(t *testing.T) {
	n := Notification{
		SourceType: db.DeliverySourceBlog,
		Title:      "田间日记",
		Slug:       "field-diary",
	}

	html, err := n.HTML("https://www.farmgate.example")
	if err != nil {
		t.Fatalf("failed to render notification: %v", err)
	}
	if !strings.Contains(html, "/blog/field-diary") {
		t.Fatalf("expected blog link in body")
	}
}

func TestNotificationHTMLEscapesMarkup(t *testing.T) {
	n := Notification{
		SourceType: db.DeliverySourceNews,
		Title:      "<script>alert(1)</script>",
		Slug:       "x",
	}

	html, err := n.HTML("https://www.farmgate.example")
	if err != nil {
		t.Fatalf("failed to render notification: %v", err)
	}
	if strings.Contains(html, "<script>") {
		t.Fatalf("expected markup to be escaped")
	}
}
