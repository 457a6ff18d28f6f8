package service

import (
	"errors"
	"testing"

	"github.com/farmgate/internal/db"
)

func TestMessageCreateValidation(t *testing.T) {
	gdb := setupTestDB(t)
	svc := NewMessageService(gdb)

	if _, err := svc.Create(MessageInput{Email: "a@b.com"}); !errors.Is(err, ErrMessageInvalidInput) {
		t.Fatalf("expected ErrMessageInvalidInput, got %v", err)
	}
	if _, err := svc.Create(MessageInput{
		Name:    "访客",
		Email:   "not-an-email",
		Subject: "合作",
		Message: "想了解产品",
	}); !errors.Is(err, ErrMessageInvalidEmail) {
		t.Fatalf("expected ErrMessageInvalidEmail, got %v", err)
	}

	item, err := svc.Create(MessageInput{
		Name:    "访客",
		Email:   "visitor@example.com",
		Subject: "合作",
		Message: "想了解产品",
	})
	if err != nil {
		t.Fatalf("failed to create message: %v", err)
	}
	if item.Status != db.MessageStatusUnread {
		t.Fatalf("expected new message to be unread, got %q", item.Status)
	}
}

func TestMessageMarkReadIdempotent(t *testing.T) {
	gdb := setupTestDB(t)
	svc := NewMessageService(gdb)

	item, err := svc.Create(MessageInput{
		Name:    "访客",
		Email:   "visitor@example.com",
		Subject: "询价",
		Message: "请报价",
	})
	if err != nil {
		t.Fatalf("failed to create message: %v", err)
	}

	first, err := svc.MarkRead(item.ID)
	if err != nil {
		t.Fatalf("failed to mark read: %v", err)
	}
	if first.Status != db.MessageStatusRead {
		t.Fatalf("expected read after first mark, got %q", first.Status)
	}

	second, err := svc.MarkRead(item.ID)
	if err != nil {
		t.Fatalf("failed to mark read twice: %v", err)
	}
	if second.Status != db.MessageStatusRead {
		t.Fatalf("expected read after second mark, got %q", second.Status)
	}
}

func TestMessageListFilterAndUnreadCount(t *testing.T) {
	gdb := setupTestDB(t)
	svc := NewMessageService(gdb)

	for i := 0; i < 3; i++ {
		if _, err := svc.Create(MessageInput{
			Name:    "访客",
			Email:   "visitor@example.com",
			Subject: "主题",
			Message: "内容",
		}); err != nil {
			t.Fatalf("failed to create message: %v", err)
		}
	}

	all, err := svc.List(MessageFilter{})
	if err != nil {
		t.Fatalf("failed to list messages: %v", err)
	}
	if all.Total != 3 || all.Unread != 3 {
		t.Fatalf("unexpected counts: total=%d unread=%d", all.Total, all.Unread)
	}

	if _, err := svc.MarkRead(all.Items[0].ID); err != nil {
		t.Fatalf("failed to mark read: %v", err)
	}

	unread, err := svc.List(MessageFilter{Status: db.MessageStatusUnread})
	if err != nil {
		t.Fatalf("failed to list unread: %v", err)
	}
	if unread.Total != 2 || unread.Unread != 2 {
		t.Fatalf("unexpected unread counts: total=%d unread=%d", unread.Total, unread.Unread)
	}
}

func TestMessageDelete(t *testing.T) {
	gdb := setupTestDB(t)
	svc := NewMessageService(gdb)

	item, err := svc.Create(MessageInput{
		Name:    "访客",
		Email:   "visitor@example.com",
		Subject: "主题",
		Message: "内容",
	})
	if err != nil {
		t.Fatalf("failed to create message: %v", err)
	}

	if err := svc.Delete(item.ID); err != nil {
		t.Fatalf("failed to delete message: %v", err)
	}
	if err := svc.Delete(item.ID); !errors.Is(err, ErrMessageNotFound) {
		t.Fatalf("expected ErrMessageNotFound, got %v", err)
	}
}
