package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/farmgate/internal/db"
	"github.com/farmgate/internal/storage"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	if err := gdb.AutoMigrate(
		&db.AdminUser{},
		&db.NewsArticle{},
		&db.BlogPost{},
		&db.GalleryImage{},
		&db.Leader{},
		&db.ContactMessage{},
		&db.NewsletterSubscriber{},
		&db.NewsletterDelivery{},
	); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}

	t.Cleanup(func() {
		sqlDB, err := gdb.DB()
		if err == nil {
			sqlDB.Close()
		}
	})

	return gdb
}

// stubStore 记录删除调用并可被配置为删除失败
type stubStore struct {
	mu        sync.Mutex
	prefix    string
	removed   []string
	removeErr error
}

func newStubStore() *stubStore {
	return &stubStore{prefix: "/static/uploads/"}
}

func (s *stubStore) Save(context.Context, storage.Upload) (*storage.Result, error) {
	return nil, errors.New("not implemented")
}

func (s *stubStore) Remove(_ context.Context, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.removeErr != nil {
		return s.removeErr
	}
	s.removed = append(s.removed, url)
	return nil
}

func (s *stubStore) Owns(url string) bool {
	return len(url) >= len(s.prefix) && url[:len(s.prefix)] == s.prefix
}

func (s *stubStore) removedURLs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.removed...)
}
