package service

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/farmgate/internal/db"
	"github.com/farmgate/internal/storage"
	"gorm.io/gorm"
)

var (
	// ErrLeaderNotFound 在指定的团队成员不存在时返回
	ErrLeaderNotFound = errors.New("leader not found")
	// ErrLeaderInvalidInput 在输入数据不完整时返回
	ErrLeaderInvalidInput = errors.New("invalid leader input")
)

// LeaderService 负责维护管理团队成员信息
// 提供排序、增删改查能力，与 handler 解耦

type LeaderService struct {
	db    *gorm.DB
	store storage.Store
}

// NewLeaderService 构造 LeaderService
func NewLeaderService(gdb *gorm.DB, store storage.Store) *LeaderService {
	return &LeaderService{db: gdb, store: store}
}

// LeaderInput 描述创建或更新团队成员时可设置的字段
// WhatsappLink 不可直接提交，由 Phone 派生
type LeaderInput struct {
	Name         string
	Position     string
	Description  string
	ImageURL     string
	Phone        string
	LinkedinLink string
	TwitterLink  string
	IsCEO        bool
	DisplayOrder int
}

// List 返回团队成员集合，CEO 优先，其余按 DisplayOrder 升序
func (s *LeaderService) List() ([]db.Leader, error) {
	var items []db.Leader
	if err := s.db.Order("is_ceo desc, display_order asc, id asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Get 根据主键获取团队成员
func (s *LeaderService) Get(id uint) (*db.Leader, error) {
	var item db.Leader
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLeaderNotFound
		}
		return nil, err
	}
	return &item, nil
}

// Create 新增团队成员
func (s *LeaderService) Create(input LeaderInput) (*db.Leader, error) {
	if err := validateLeaderInput(input); err != nil {
		return nil, err
	}

	phone := strings.TrimSpace(input.Phone)
	item := db.Leader{
		Name:         strings.TrimSpace(input.Name),
		Position:     strings.TrimSpace(input.Position),
		Description:  strings.TrimSpace(input.Description),
		ImageURL:     strings.TrimSpace(input.ImageURL),
		Phone:        phone,
		WhatsappLink: WhatsappLinkFromPhone(phone),
		LinkedinLink: strings.TrimSpace(input.LinkedinLink),
		TwitterLink:  strings.TrimSpace(input.TwitterLink),
		IsCEO:        input.IsCEO,
		DisplayOrder: input.DisplayOrder,
	}

	if err := s.db.Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// Update 更新团队成员，电话变化时同步刷新 WhatsApp 链接
func (s *LeaderService) Update(id uint, input LeaderInput) (*db.Leader, error) {
	if err := validateLeaderInput(input); err != nil {
		return nil, err
	}

	var item db.Leader
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLeaderNotFound
		}
		return nil, err
	}

	oldImage := item.ImageURL
	phone := strings.TrimSpace(input.Phone)

	item.Name = strings.TrimSpace(input.Name)
	item.Position = strings.TrimSpace(input.Position)
	item.Description = strings.TrimSpace(input.Description)
	item.ImageURL = strings.TrimSpace(input.ImageURL)
	item.Phone = phone
	item.WhatsappLink = WhatsappLinkFromPhone(phone)
	item.LinkedinLink = strings.TrimSpace(input.LinkedinLink)
	item.TwitterLink = strings.TrimSpace(input.TwitterLink)
	item.IsCEO = input.IsCEO
	item.DisplayOrder = input.DisplayOrder

	if err := s.db.Save(&item).Error; err != nil {
		return nil, err
	}

	if oldImage != "" && oldImage != item.ImageURL {
		s.cleanupObject(oldImage)
	}
	return &item, nil
}

// Delete 删除团队成员，行删除成功后尽力清理头像对象
// 清理失败仅记录日志，不影响删除结果
func (s *LeaderService) Delete(id uint) error {
	var item db.Leader
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLeaderNotFound
		}
		return err
	}

	if err := s.db.Delete(&item).Error; err != nil {
		return err
	}

	s.cleanupObject(item.ImageURL)
	return nil
}

func (s *LeaderService) cleanupObject(url string) {
	if s.store == nil || strings.TrimSpace(url) == "" || !s.store.Owns(url) {
		return
	}
	if err := s.store.Remove(context.Background(), url); err != nil {
		log.Printf("leader: best-effort cleanup of %s failed: %v", url, err)
	}
}

func validateLeaderInput(input LeaderInput) error {
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.Position) == "" {
		return ErrLeaderInvalidInput
	}
	return nil
}

// WhatsappLinkFromPhone 从电话号码派生 wa.me 链接，仅保留数字。
// 电话为空或不含数字时返回空字符串。
func WhatsappLinkFromPhone(phone string) string {
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return ""
	}
	return "https://wa.me/" + digits.String()
}
