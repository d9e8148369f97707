package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"alc-index-builder/internal/adapter/listing"
	"alc-index-builder/internal/adapter/renderer"
	"alc-index-builder/internal/adapter/theme"
	"alc-index-builder/internal/adapter/validator"

	"github.com/joho/godotenv"
)

// 调试入口：读本地清单，对前几个仓库完整走一遍 主题 → 渲染 → 质检
// 不连数据库、不推飞书，方便调模板和质检规则
func main() {
	_ = godotenv.Load()

	configPath := "site.yaml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	loader := listing.NewLoader(configPath)
	cfg, err := loader.Load()
	if err != nil {
		log.Fatalf("❌ 读取站点清单失败: %v", err)
	}

	markers := cfg.DomainMarkers
	if len(markers) == 0 {
		markers = validator.DefaultDomainMarkers()
	}

	detector := theme.NewDefaultDetector()
	pageValidator := validator.NewPageValidator(markers)
	pageRenderer, err := renderer.NewPageRenderer(renderer.SiteInfo{
		Name:    cfg.SiteName,
		BaseURL: cfg.BaseURL,
	})
	if err != nil {
		log.Fatalf("❌ 渲染器初始化失败: %v", err)
	}

	fmt.Println("🔍 调试模式：渲染并质检页面")

	repos, err := loader.Discover(context.Background())
	if err != nil {
		log.Fatalf("❌ 读取仓库清单失败: %v", err)
	}
	fmt.Printf("✅ 清单里共 %d 个仓库\n", len(repos))

	if len(repos) == 0 {
		fmt.Println("❌ 清单是空的，没东西可调")
		return
	}

	fmt.Printf("🧪 对前%d个仓库进行完整流水线调试:\n", min(3, len(repos)))
	for i, repo := range repos {
		if i >= 3 { // 只调前3个，够看出模板和规则的问题了
			break
		}

		fmt.Printf("  仓库 #%d: %s\n", i+1, repo.Name)

		label := detector.Detect(repo)
		fmt.Printf("    主题: %s\n", label)

		html, err := pageRenderer.Render(repo, label)
		if err != nil {
			log.Printf("    ⚠️ 渲染失败: %v", err)
			continue
		}
		fmt.Printf("    页面大小: %d 字节\n", len(html))

		verdict := pageValidator.Validate(html)
		fmt.Printf("    质检得分: %d/100 (%s)\n", verdict.Score, verdict.Verdict)
		if !verdict.Passed {
			fmt.Printf("    挂在: %v\n", verdict.FailedChecks())
		}

		// 完整结论以 JSON 打出来，方便逐项核对
		detail, _ := json.MarshalIndent(verdict.Results, "    ", "  ")
		fmt.Printf("    %s\n", detail)
		fmt.Println()
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
