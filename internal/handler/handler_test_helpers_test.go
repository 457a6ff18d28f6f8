package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/farmgate/internal/db"
	"github.com/farmgate/internal/storage"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	testAdminEmail    = "admin@farmgate.example"
	testAdminPassword = "secret123"
)

// setupTestAPI 构造内存数据库、本地存储与路由，返回可直接请求的引擎。
func setupTestAPI(t *testing.T) (*gin.Engine, *API) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	err = gdb.AutoMigrate(
		&db.NewsArticle{},
		&db.BlogPost{},
		&db.GalleryImage{},
		&db.Leader{},
		&db.ContactMessage{},
		&db.NewsletterSubscriber{},
		&db.NewsletterDelivery{},
		&db.AdminUser{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	t.Cleanup(func() {
		sqlDB, err := gdb.DB()
		if err == nil {
			sqlDB.Close()
		}
	})

	hashed, err := bcrypt.GenerateFromPassword([]byte(testAdminPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	if err := gdb.Create(&db.AdminUser{Email: testAdminEmail, Password: string(hashed)}).Error; err != nil {
		t.Fatalf("failed to seed admin: %v", err)
	}

	store := storage.NewLocalStore(t.TempDir(), "/static/uploads")
	api := NewAPI(gdb, store, nil, nil)

	r := gin.New()
	r.Use(sessions.Sessions("farmgate_session", cookie.NewStore([]byte("test-secret"))))

	public := r.Group("/api")
	{
		public.GET("/news", api.PublicListNews)
		public.GET("/news/:slug", api.PublicGetNews)
		public.GET("/blogs", api.PublicListBlogs)
		public.GET("/blogs/:slug", api.PublicGetBlog)
		public.GET("/gallery", api.ListGalleryImages)
		public.GET("/leaders", api.ListLeaders)
		public.POST("/contact", api.SubmitContact)
		public.POST("/newsletter", api.SubscribeNewsletter)
	}

	r.POST("/admin/api/login", api.Login)
	admin := r.Group("/admin/api", AuthRequired())
	{
		admin.POST("/logout", api.Logout)
		admin.POST("/credentials", api.UpdateCredentials)
		admin.GET("/news", api.ListNews)
		admin.POST("/news", api.CreateNews)
		admin.PUT("/news/:id", api.UpdateNews)
		admin.DELETE("/news/:id", api.DeleteNews)
		admin.POST("/blogs", api.CreateBlog)
		admin.POST("/gallery", api.CreateGalleryImage)
		admin.POST("/leaders", api.CreateLeader)
		admin.GET("/messages", api.ListMessages)
		admin.PUT("/messages/:id/read", api.MarkMessageRead)
		admin.GET("/subscribers", api.ListSubscribers)
		admin.POST("/uploads", api.UploadImage)
	}

	return r, api
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
	return body
}

// loginAdmin 登录并返回会话 Cookie。
func loginAdmin(t *testing.T, r *gin.Engine) []*http.Cookie {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/admin/api/login", map[string]string{
		"email":    testAdminEmail,
		"password": testAdminPassword,
	}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("login failed with status %d: %s", w.Code, w.Body.String())
	}

	cookies := w.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatalf("expected session cookie after login")
	}
	return cookies
}

func buildMultipartImage(t *testing.T, field, filename string, data []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("failed to write form file: %v", err)
	}
	writer.Close()
	return &buf, writer.FormDataContentType()
}
