package mailer

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/farmgate/internal/db"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

// Dispatcher 将内容发布通知扇出到全部订阅者。
// 每个订阅者对应一条 NewsletterDelivery 记录；工作协程在限速下发送，
// 失败按退避重试，重试耗尽后标记 dead，单个失败不影响其他投递。
// 启动时扫描遗留的 queued 记录补投，停机时未完成的投递留给下次启动。
type Dispatcher struct {
	db          *gorm.DB
	mailer      Mailer
	siteBaseURL string
	queue       chan queuedDelivery
	workers     int
	maxAttempts int
	backoff     time.Duration
	limiter     *rate.Limiter
	wg          sync.WaitGroup
	done        chan struct{}
	mu          sync.RWMutex
	running     bool
}

type queuedDelivery struct {
	deliveryID uint
	email      string
	subject    string
	html       string
}

// DispatcherConfig 汇总扇出行为配置。
type DispatcherConfig struct {
	Workers     int
	RatePerSec  float64
	MaxAttempts int
	Backoff     time.Duration
	SiteBaseURL string
}

// NewDispatcher 构造 Dispatcher。
func NewDispatcher(gdb *gorm.DB, m Mailer, cfg DispatcherConfig) *Dispatcher {
	if cfg.Workers <= 0 {
		cfg.Workers = 3
	}
	if cfg.RatePerSec <= 0 {
		cfg.RatePerSec = 5
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	if cfg.Backoff <= 0 {
		cfg.Backoff = 2 * time.Second
	}

	return &Dispatcher{
		db:          gdb,
		mailer:      m,
		siteBaseURL: cfg.SiteBaseURL,
		queue:       make(chan queuedDelivery, 1024),
		workers:     cfg.Workers,
		maxAttempts: cfg.MaxAttempts,
		backoff:     cfg.Backoff,
		limiter:     rate.NewLimiter(rate.Limit(cfg.RatePerSec), 1),
		done:        make(chan struct{}),
	}
}

// Start 启动工作协程并补投遗留的 queued 记录。重复调用无效果。
func (d *Dispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	if d.running {
		d.mu.Unlock()
		return
	}
	d.running = true
	d.mu.Unlock()

	// Stop 关闭 done 时同步取消 runCtx，让限速等待立即返回
	runCtx, cancel := context.WithCancel(ctx)
	go func() {
		select {
		case <-d.done:
		case <-runCtx.Done():
		}
		cancel()
	}()

	log.Printf("mailer: starting dispatcher with %d workers", d.workers)
	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker(runCtx)
	}

	// 只补投启动前已存在的记录，之后的入队由 Enqueue 负责
	var cutoff uint
	if err := d.db.Model(&db.NewsletterDelivery{}).
		Select("coalesce(max(id), 0)").Scan(&cutoff).Error; err != nil {
		log.Printf("mailer: failed to snapshot delivery backlog: %v", err)
	}
	if cutoff > 0 {
		d.wg.Add(1)
		go d.resumeQueued(runCtx, cutoff)
	}
}

// Stop 停止接收新投递并等待在途任务完成。
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if !d.running {
		d.mu.Unlock()
		return
	}
	d.running = false
	d.mu.Unlock()

	close(d.done)
	d.wg.Wait()
	log.Printf("mailer: dispatcher stopped")
}

// Enqueue 为每个订阅者写入一条 queued 投递记录并推入队列。
// 返回排队数量；没有订阅者时为 0 且不视为错误。
// 先全部落库再入队：未启动或停机时记录保持 queued，由启动补投接管。
func (d *Dispatcher) Enqueue(n Notification) (int, error) {
	html, err := n.HTML(d.siteBaseURL)
	if err != nil {
		return 0, err
	}
	subject := n.Subject()

	const batchSize = 500
	var items []queuedDelivery

	var batch []db.NewsletterSubscriber
	err = d.db.Model(&db.NewsletterSubscriber{}).
		Order("id asc").
		FindInBatches(&batch, batchSize, func(*gorm.DB, int) error {
			for _, sub := range batch {
				record := db.NewsletterDelivery{
					Email:      sub.Email,
					Subject:    subject,
					SourceType: n.SourceType,
					SourceID:   n.SourceID,
					Status:     db.DeliveryStatusQueued,
				}
				if err := d.db.Create(&record).Error; err != nil {
					return err
				}
				items = append(items, queuedDelivery{
					deliveryID: record.ID,
					email:      sub.Email,
					subject:    subject,
					html:       html,
				})
			}
			return nil
		}).Error
	if err != nil {
		return len(items), err
	}

	d.mu.RLock()
	running := d.running
	d.mu.RUnlock()
	if !running {
		return len(items), nil
	}

	for _, item := range items {
		select {
		case d.queue <- item:
		case <-d.done:
			// 停机后剩余记录保持 queued，下次启动补投
			return len(items), nil
		}
	}
	return len(items), nil
}

// resumeQueued 将遗留的 queued 投递重新入队，正文按来源记录重建。
// 来源已被删除的投递无法重建，直接标记 dead。
func (d *Dispatcher) resumeQueued(ctx context.Context, cutoff uint) {
	defer d.wg.Done()

	var rows []db.NewsletterDelivery
	if err := d.db.Where("status = ? AND id <= ?", db.DeliveryStatusQueued, cutoff).
		Order("id asc").Find(&rows).Error; err != nil {
		log.Printf("mailer: failed to load queued deliveries: %v", err)
		return
	}
	if len(rows) == 0 {
		return
	}
	log.Printf("mailer: resuming %d queued deliveries", len(rows))

	type rendered struct {
		html string
		ok   bool
	}
	cache := make(map[string]rendered)

	for _, row := range rows {
		key := fmt.Sprintf("%s:%d", row.SourceType, row.SourceID)
		body, seen := cache[key]
		if !seen {
			html, err := d.renderSource(row.SourceType, row.SourceID)
			if err != nil {
				log.Printf("mailer: cannot rebuild notification for %s %d: %v", row.SourceType, row.SourceID, err)
			}
			body = rendered{html: html, ok: err == nil}
			cache[key] = body
		}

		if !body.ok {
			if err := d.db.Model(&db.NewsletterDelivery{}).
				Where("id = ?", row.ID).
				Updates(map[string]interface{}{
					"status":     db.DeliveryStatusDead,
					"last_error": "notification source missing",
				}).Error; err != nil {
				log.Printf("mailer: failed to mark delivery %d dead: %v", row.ID, err)
			}
			continue
		}

		select {
		case d.queue <- queuedDelivery{
			deliveryID: row.ID,
			email:      row.Email,
			subject:    row.Subject,
			html:       body.html,
		}:
		case <-ctx.Done():
			return
		}
	}
}

// renderSource 按来源记录重建通知正文。
func (d *Dispatcher) renderSource(sourceType string, sourceID uint) (string, error) {
	var n Notification
	switch sourceType {
	case db.DeliverySourceBlog:
		var post db.BlogPost
		if err := d.db.First(&post, sourceID).Error; err != nil {
			return "", err
		}
		n = Notification{SourceType: sourceType, SourceID: sourceID, Title: post.Title, Excerpt: post.Excerpt, Slug: post.Slug}
	default:
		var article db.NewsArticle
		if err := d.db.First(&article, sourceID).Error; err != nil {
			return "", err
		}
		n = Notification{SourceType: sourceType, SourceID: sourceID, Title: article.Title, Excerpt: article.Excerpt, Slug: article.Slug}
	}
	return n.HTML(d.siteBaseURL)
}

func (d *Dispatcher) worker(ctx context.Context) {
	defer d.wg.Done()

	for {
		select {
		case <-d.done:
			return
		case <-ctx.Done():
			return
		case item := <-d.queue:
			d.process(ctx, item)
		}
	}
}

// process 在限速下发送一封通知，失败按固定倍增退避重试。
func (d *Dispatcher) process(ctx context.Context, item queuedDelivery) {
	var lastErr error

	for attempt := 1; attempt <= d.maxAttempts; attempt++ {
		if err := d.limiter.Wait(ctx); err != nil {
			return
		}

		err := d.mailer.Send(ctx, item.email, item.subject, item.html)
		if err == nil {
			now := time.Now()
			updates := map[string]interface{}{
				"status":     db.DeliveryStatusSent,
				"attempts":   attempt,
				"last_error": "",
				"sent_at":    &now,
			}
			if dbErr := d.db.Model(&db.NewsletterDelivery{}).
				Where("id = ?", item.deliveryID).
				Updates(updates).Error; dbErr != nil {
				log.Printf("mailer: failed to record delivery %d success: %v", item.deliveryID, dbErr)
			}
			return
		}

		lastErr = err
		if dbErr := d.db.Model(&db.NewsletterDelivery{}).
			Where("id = ?", item.deliveryID).
			Updates(map[string]interface{}{
				"attempts":   attempt,
				"last_error": truncateError(err),
			}).Error; dbErr != nil {
			log.Printf("mailer: failed to record delivery %d attempt: %v", item.deliveryID, dbErr)
		}

		if attempt < d.maxAttempts {
			wait := d.backoff * time.Duration(1<<(attempt-1))
			select {
			case <-time.After(wait):
			case <-d.done:
				return
			case <-ctx.Done():
				return
			}
		}
	}

	log.Printf("mailer: delivery %d to %s dead after %d attempts: %v",
		item.deliveryID, item.email, d.maxAttempts, lastErr)
	if dbErr := d.db.Model(&db.NewsletterDelivery{}).
		Where("id = ?", item.deliveryID).
		Update("status", db.DeliveryStatusDead).Error; dbErr != nil {
		log.Printf("mailer: failed to mark delivery %d dead: %v", item.deliveryID, dbErr)
	}
}

func truncateError(err error) string {
	msg := err.Error()
	if len(msg) > 500 {
		return msg[:500]
	}
	return msg
}
