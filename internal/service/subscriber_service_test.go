package service

import (
	"errors"
	"testing"

	"github.com/farmgate/internal/db"
)

func TestSubscribeNormalizesAndRejectsDuplicates(t *testing.T) {
	gdb := setupTestDB(t)
	svc := NewSubscriberService(gdb)

	item, err := svc.Subscribe("  Reader@Example.COM ")
	if err != nil {
		t.Fatalf("failed to subscribe: %v", err)
	}
	if item.Email != "reader@example.com" {
		t.Fatalf("expected normalized email, got %q", item.Email)
	}
	if item.SubscribedAt.IsZero() {
		t.Fatalf("expected subscription time to be set")
	}

	if _, err := svc.Subscribe("reader@example.com"); !errors.Is(err, ErrAlreadySubscribed) {
		t.Fatalf("expected ErrAlreadySubscribed, got %v", err)
	}
	// 大小写不同视为同一邮箱
	if _, err := svc.Subscribe("READER@example.com"); !errors.Is(err, ErrAlreadySubscribed) {
		t.Fatalf("expected case-insensitive duplicate rejection, got %v", err)
	}

	var count int64
	if err := gdb.Model(&db.NewsletterSubscriber{}).Count(&count).Error; err != nil {
		t.Fatalf("failed to count subscribers: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected exactly 1 row, got %d", count)
	}
}

func TestSubscribeRejectsInvalidEmail(t *testing.T) {
	gdb := setupTestDB(t)
	svc := NewSubscriberService(gdb)

	for _, email := range []string{"", "plain", "@nohost", "user@"} {
		if _, err := svc.Subscribe(email); !errors.Is(err, ErrSubscriberInvalidEmail) {
			t.Fatalf("expected ErrSubscriberInvalidEmail for %q, got %v", email, err)
		}
	}
}

func TestSubscriberRemove(t *testing.T) {
	gdb := setupTestDB(t)
	svc := NewSubscriberService(gdb)

	item, err := svc.Subscribe("leaver@example.com")
	if err != nil {
		t.Fatalf("failed to subscribe: %v", err)
	}

	if err := svc.Remove(item.ID); err != nil {
		t.Fatalf("failed to remove subscriber: %v", err)
	}
	if err := svc.Remove(item.ID); !errors.Is(err, ErrSubscriberNotFound) {
		t.Fatalf("expected ErrSubscriberNotFound, got %v", err)
	}
}
