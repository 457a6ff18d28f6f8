package service

import (
	"errors"
	"net/mail"
	"strings"

	"github.com/farmgate/internal/db"
	"gorm.io/gorm"
)

var (
	ErrMessageNotFound     = errors.New("contact message not found")
	ErrMessageInvalidInput = errors.New("invalid contact message input")
	ErrMessageInvalidEmail = errors.New("invalid contact email")
)

// MessageService handles contact form messages.
type MessageService struct {
	db *gorm.DB
}

// MessageFilter describes filters for listing messages.
type MessageFilter struct {
	Status  string
	Page    int
	PerPage int
}

// MessageListResult aggregates paginated message results.
type MessageListResult struct {
	Items      []db.ContactMessage
	Total      int64
	Unread     int64
	TotalPages int
	Page       int
	PerPage    int
}

// MessageInput represents fields accepted from the public contact form.
type MessageInput struct {
	Name    string
	Email   string
	Phone   string
	Subject string
	Message string
}

// NewMessageService creates a MessageService instance.
func NewMessageService(gdb *gorm.DB) *MessageService {
	return &MessageService{db: gdb}
}

// Create stores a new contact message with status unread.
func (s *MessageService) Create(input MessageInput) (*db.ContactMessage, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(input.Email)
	subject := strings.TrimSpace(input.Subject)
	body := strings.TrimSpace(input.Message)

	if name == "" || subject == "" || body == "" {
		return nil, ErrMessageInvalidInput
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrMessageInvalidEmail
	}

	item := db.ContactMessage{
		Name:    name,
		Email:   email,
		Phone:   strings.TrimSpace(input.Phone),
		Subject: subject,
		Message: body,
		Status:  db.MessageStatusUnread,
	}

	if err := s.db.Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// List returns messages matching the filter, newest first.
func (s *MessageService) List(filter MessageFilter) (MessageListResult, error) {
	result := MessageListResult{
		Page:    normalizePage(filter.Page),
		PerPage: normalizePerPage(filter.PerPage, 20),
	}

	query := s.db.Model(&db.ContactMessage{})
	if status := strings.TrimSpace(filter.Status); status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&result.Total).Error; err != nil {
		return result, err
	}
	if err := s.db.Model(&db.ContactMessage{}).
		Where("status = ?", db.MessageStatusUnread).
		Count(&result.Unread).Error; err != nil {
		return result, err
	}

	result.TotalPages = calculateTotalPages(result.Total, result.PerPage)
	offset := (result.Page - 1) * result.PerPage

	if err := query.Order("created_at desc").
		Limit(result.PerPage).
		Offset(offset).
		Find(&result.Items).Error; err != nil {
		return result, err
	}

	return result, nil
}

// Get fetches a message by id.
func (s *MessageService) Get(id uint) (*db.ContactMessage, error) {
	var item db.ContactMessage
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, err
	}
	return &item, nil
}

// MarkRead transitions a message to read. The transition is one-way and
// idempotent: marking an already read message keeps it read.
func (s *MessageService) MarkRead(id uint) (*db.ContactMessage, error) {
	item, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if item.Status == db.MessageStatusRead {
		return item, nil
	}

	item.Status = db.MessageStatusRead
	if err := s.db.Save(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// Delete removes a message.
func (s *MessageService) Delete(id uint) error {
	item, err := s.Get(id)
	if err != nil {
		return err
	}
	return s.db.Delete(item).Error
}
