package handler

import (
	"github.com/farmgate/internal/mailer"
	"github.com/farmgate/internal/service"
	"github.com/farmgate/internal/storage"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db          *gorm.DB
	news        *service.NewsService
	blogs       *service.BlogService
	galleries   *service.GalleryService
	leaders     *service.LeaderService
	messages    *service.MessageService
	subscribers *service.SubscriberService
	deliveries  *service.DeliveryService
	store       storage.Store
	dispatcher  *mailer.Dispatcher
	relay       *mailer.Relay
}

// NewAPI constructs a handler set with shared services.
func NewAPI(gdb *gorm.DB, store storage.Store, dispatcher *mailer.Dispatcher, relay *mailer.Relay) *API {
	return &API{
		db:          gdb,
		news:        service.NewNewsService(gdb, store),
		blogs:       service.NewBlogService(gdb, store),
		galleries:   service.NewGalleryService(gdb, store),
		leaders:     service.NewLeaderService(gdb, store),
		messages:    service.NewMessageService(gdb),
		subscribers: service.NewSubscriberService(gdb),
		deliveries:  service.NewDeliveryService(gdb),
		store:       store,
		dispatcher:  dispatcher,
		relay:       relay,
	}
}

// DB exposes the underlying gorm instance for auth paths.
func (a *API) DB() *gorm.DB {
	return a.db
}
