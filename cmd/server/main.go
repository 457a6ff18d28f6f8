package main

import (
	"context"
	"log"

	"github.com/farmgate/internal/config"
	"github.com/farmgate/internal/db"
	"github.com/farmgate/internal/handler"
	"github.com/farmgate/internal/mailer"
	"github.com/farmgate/internal/router"
	"github.com/farmgate/internal/storage"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// 读取 .env（不存在时忽略）与环境变量配置
	_ = godotenv.Load()
	cfg := config.Load()

	gin.SetMode(cfg.GinMode)

	// 初始化数据库
	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// 初始管理员账号（仅当不存在时创建）
	if err := db.EnsureAdmin(cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatalf("failed to ensure admin account: %v", err)
	}

	store := storage.NewLocalStore(cfg.UploadDir, cfg.UploadURLPath)

	smtp := mailer.NewSMTPMailer(mailer.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.MailFrom,
		ReplyTo:  cfg.MailReplyTo,
	})

	dispatcher := mailer.NewDispatcher(db.DB, smtp, mailer.DispatcherConfig{
		Workers:     cfg.FanoutWorkers,
		RatePerSec:  cfg.FanoutRatePerSec,
		MaxAttempts: cfg.FanoutMaxAttempts,
		SiteBaseURL: cfg.SiteBaseURL,
	})
	dispatcher.Start(context.Background())
	defer dispatcher.Stop()

	relay := mailer.NewRelay(cfg.RelayEndpoint, cfg.RelayServiceID, cfg.RelayTemplateID)

	api := handler.NewAPI(db.DB, store, dispatcher, relay)

	// 设置并运行 Gin 服务器
	r := router.SetupRouter(cfg, api)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("failed to run server: %v", err)
	}
}
