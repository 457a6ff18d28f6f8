package main

import (
	"fmt"
	"log"
	"time"

	"github.com/farmgate/internal/config"
	"github.com/farmgate/internal/db"
	"github.com/farmgate/internal/util"
	"gorm.io/datatypes"
)

// 演示数据生成器
func main() {
	// 初始化数据库
	cfg := config.Load()
	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatal("数据库初始化失败:", err)
	}

	fmt.Println("开始生成演示数据...")

	createDemoNews()
	createDemoBlogs()
	createDemoGallery()
	createDemoLeaders()

	fmt.Println("演示数据生成完成！")
}

// 创建演示新闻
func createDemoNews() {
	var count int64
	db.DB.Model(&db.NewsArticle{}).Count(&count)
	if count > 0 {
		fmt.Println("新闻已存在，跳过创建")
		return
	}

	titles := []struct {
		title   string
		excerpt string
	}{
		{"春季播种工作全面启动", "今年计划种植面积较去年扩大两成，重点推广节水灌溉。"},
		{"新建奶牛养殖基地正式投产", "基地配备自动化挤奶与恒温牛舍，日产能显著提升。"},
		{"公司通过绿色食品认证", "主要农产品全部通过本年度绿色食品复审。"},
	}

	for i, item := range titles {
		article := db.NewsArticle{
			Title:         item.title,
			Slug:          util.Slugify(fmt.Sprintf("demo-news-%d", i+1)),
			Excerpt:       item.excerpt,
			Content:       fmt.Sprintf("## %s\n\n%s\n\n更多详情请关注后续报道。", item.title, item.excerpt),
			Author:        "宣传部",
			PublishedDate: time.Now().AddDate(0, 0, -i*7),
		}
		db.DB.Create(&article)
	}

	fmt.Println("✅ 演示新闻创建完成")
}

// 创建演示博客
func createDemoBlogs() {
	var count int64
	db.DB.Model(&db.BlogPost{}).Count(&count)
	if count > 0 {
		fmt.Println("博客已存在，跳过创建")
		return
	}

	post := db.BlogPost{
		Title:         "一颗种子的旅程",
		Slug:          "demo-blog-1",
		Excerpt:       "从育苗温室到收获入仓，记录一季作物的完整周期。",
		Content:       "## 一颗种子的旅程\n\n从育苗、移栽、田间管理到收获，每一步都有专人记录。",
		Author:        "农技团队",
		PublishedDate: time.Now().AddDate(0, 0, -3),
		GalleryImages: datatypes.NewJSONSlice([]string{}),
	}
	db.DB.Create(&post)

	fmt.Println("✅ 演示博客创建完成")
}

// 创建演示相册
func createDemoGallery() {
	var count int64
	db.DB.Model(&db.GalleryImage{}).Count(&count)
	if count > 0 {
		fmt.Println("相册已存在，跳过创建")
		return
	}

	images := []db.GalleryImage{
		{Title: "牧场晨景", Description: "清晨的奶牛牧场", Category: "livestock", ImageURL: "/static/uploads/demo-livestock.jpg"},
		{Title: "加工车间", Description: "乳制品加工生产线", Category: "production", ImageURL: "/static/uploads/demo-production.jpg"},
		{Title: "万亩良田", Description: "夏季的连片麦田", Category: "landscape", ImageURL: "/static/uploads/demo-landscape.jpg"},
	}
	for i := range images {
		db.DB.Create(&images[i])
	}

	fmt.Println("✅ 演示相册创建完成")
}

// 创建演示团队成员
func createDemoLeaders() {
	var count int64
	db.DB.Model(&db.Leader{}).Count(&count)
	if count > 0 {
		fmt.Println("团队成员已存在，跳过创建")
		return
	}

	leaders := []db.Leader{
		{Name: "张建国", Position: "首席执行官", Description: "深耕农业三十年", IsCEO: true, DisplayOrder: 0},
		{Name: "李春华", Position: "生产总监", Description: "负责种植与养殖生产管理", DisplayOrder: 1},
		{Name: "王明", Position: "市场总监", Description: "负责品牌与渠道建设", DisplayOrder: 2},
	}
	for i := range leaders {
		db.DB.Create(&leaders[i])
	}

	fmt.Println("✅ 演示团队成员创建完成")
}
