package main

import (
	"fmt"
	"log"

	"github.com/farmgate/internal/config"
	"github.com/farmgate/internal/db"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	cfg := config.Load()

	// 初始化数据库
	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatal("数据库初始化失败:", err)
	}

	// 检查是否已存在管理员
	var count int64
	db.DB.Model(&db.AdminUser{}).Count(&count)
	if count > 0 {
		fmt.Println("管理员已存在，无需初始化")
		return
	}

	// 创建默认管理员账号
	email := cfg.AdminEmail
	if email == "" {
		email = "admin@farmgate.example"
	}
	password := cfg.AdminPassword
	if password == "" {
		password = "admin123" // 默认密码，部署后请立即修改
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("密码加密失败:", err)
	}

	admin := db.AdminUser{
		Email:    email,
		Password: string(hashedPassword),
	}

	if err := db.DB.Create(&admin).Error; err != nil {
		log.Fatal("创建管理员失败:", err)
	}

	fmt.Printf("管理员已创建: %s\n", email)
}
