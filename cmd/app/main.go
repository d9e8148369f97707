package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"alc-index-builder/internal/adapter/feishu"
	"alc-index-builder/internal/adapter/gemini"
	"alc-index-builder/internal/adapter/github"
	"alc-index-builder/internal/adapter/listing"
	"alc-index-builder/internal/adapter/probe"
	"alc-index-builder/internal/adapter/renderer"
	"alc-index-builder/internal/adapter/repository"
	"alc-index-builder/internal/adapter/theme"
	"alc-index-builder/internal/adapter/validator"
	"alc-index-builder/internal/domain"
	"alc-index-builder/internal/port"
	"alc-index-builder/internal/service"

	"github.com/joho/godotenv"
)

func main() {
	// 1. 定义命令行参数
	mode := flag.String("mode", "build", "运行模式: build (构建) / history (历史) / check (质检单个文件) / failing (不合格页面)")
	configPath := flag.String("config", "site.yaml", "站点清单文件路径")
	outDir := flag.String("out", "dist", "页面输出目录")
	githubUser := flag.String("github", "", "改用 GitHub API 拉取该用户的仓库 (默认读本地清单)")
	query := flag.String("q", "", "搜索关键词 (仅在 history 模式下有效)")
	file := flag.String("file", "", "要质检的 HTML 文件路径 (仅在 check 模式下有效)")
	interval := flag.Int("interval", 0, "定时执行间隔（分钟），0表示只执行一次")
	concurrency := flag.Int("concurrency", 3, "站点探测并发数")
	flag.Parse()

	// 本地开发时从 .env 读环境变量，没有这个文件也无所谓
	_ = godotenv.Load()

	// 2. 根据模式分流
	// check 模式不碰数据库，其它模式各自初始化
	switch *mode {
	case "build":
		store := newStore()
		if *interval > 0 {
			runScheduledBuild(store, *configPath, *outDir, *githubUser, *interval, *concurrency)
		} else {
			executeBuildCycle(store, *configPath, *outDir, *githubUser, *concurrency)
		}
	case "history":
		runHistory(newStore(), *query)
	case "check":
		if *file == "" {
			fmt.Println("⚠️ 请用 -file 指定要质检的 HTML 文件")
			fmt.Println("例如: -mode=check -file=dist/alc-kart.html")
			return
		}
		if err := runCheckFile(*file, loadMarkers(*configPath)); err != nil {
			log.Fatalf("❌ 质检失败: %v", err)
		}
	case "failing":
		runFailing(newStore())
	default:
		fmt.Println("❌ 未知模式，请使用 -mode=build / -mode=history / -mode=check / -mode=failing")
	}
}

// newStore 初始化数据库连接
func newStore() port.Repository {
	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		dsn = "host=localhost user=postgres password=123456 dbname=alc_index port=5432 sslmode=disable TimeZone=Asia/Shanghai"
	}
	store, err := repository.NewPostgresRepo(dsn)
	if err != nil {
		log.Fatalf("❌ DB 初始化失败: %v", err)
	}
	return store
}

// loadMarkers 从站点清单取品牌标记，读不到就用内置默认值
func loadMarkers(configPath string) []string {
	cfg, err := listing.NewLoader(configPath).Load()
	if err != nil || len(cfg.DomainMarkers) == 0 {
		return validator.DefaultDomainMarkers()
	}
	return cfg.DomainMarkers
}

// runScheduledBuild 定时构建，收到 Ctrl+C 优雅退出
func runScheduledBuild(store port.Repository, configPath, outDir, githubUser string, interval, concurrency int) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(time.Duration(interval) * time.Minute)
	defer ticker.Stop()

	fmt.Printf("⏰ 定时执行模式已启动，每 %d 分钟执行一次\n", interval)
	fmt.Println("按下 Ctrl+C 可以优雅停止程序")

	// 立即执行一次
	executeBuildCycle(store, configPath, outDir, githubUser, concurrency)

	for {
		select {
		case <-ticker.C:
			executeBuildCycle(store, configPath, outDir, githubUser, concurrency)
		case <-sigChan:
			fmt.Println("\n👋 收到停止信号，正在退出...")
			return
		case <-ctx.Done():
			fmt.Println("👋 定时任务已停止")
			return
		}
	}
}

// executeBuildCycle 组装依赖并执行一轮构建
func executeBuildCycle(store port.Repository, configPath, outDir, githubUser string, concurrency int) {
	// 为整个构建周期设置超时时间(5分钟)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	// 站点清单提供品牌信息；即使走 GitHub 数据源也要先读它
	loader := listing.NewLoader(configPath)
	cfg, err := loader.Load()
	if err != nil {
		log.Printf("⚠️ 读取站点清单失败: %v，使用默认站点配置", err)
		cfg = &listing.SiteConfig{SiteName: "ALC"}
	}

	var scouter port.Scouter = loader
	if githubUser != "" {
		scouter = github.NewFetcher(os.Getenv("GITHUB_TOKEN"), githubUser)
	}

	// AI 文案是可选的：没配 Key 就不补文案
	var copywriter port.Copywriter
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		cw, err := gemini.NewCopywriter(ctx, key)
		if err != nil {
			log.Printf("⚠️ AI 初始化失败: %v，跳过文案补全", err)
		} else {
			copywriter = cw
		}
	}

	markers := cfg.DomainMarkers
	if len(markers) == 0 {
		markers = validator.DefaultDomainMarkers()
	}

	pageRenderer, err := renderer.NewPageRenderer(renderer.SiteInfo{
		Name:    cfg.SiteName,
		BaseURL: cfg.BaseURL,
	})
	if err != nil {
		log.Fatalf("❌ 渲染器初始化失败: %v", err)
	}

	var notifier port.Notifier
	if webhook := os.Getenv("FEISHU_WEBHOOK"); webhook != "" {
		notifier = feishu.NewNotifier(webhook)
	}

	svc := service.NewBuildService(
		scouter,
		copywriter,
		theme.NewDefaultDetector(),
		pageRenderer,
		validator.NewPageValidator(markers),
		probe.NewSiteProber(),
		store,
		notifier,
		cfg.SiteName,
	)

	if _, err := svc.ExecuteBuildCycle(ctx, outDir, concurrency); err != nil {
		log.Printf("❌ 本轮构建失败: %v", err)
	}
}

// --- 历史模式逻辑 ---
func runHistory(store port.Repository, query string) {
	ctx := context.Background()

	if query != "" {
		fmt.Printf("🔍 按关键词查询构建历史: [%s]\n", query)
		recs, err := store.Search(ctx, query)
		if err != nil {
			log.Fatalf("读取数据库失败: %v", err)
		}
		printRecords(recs)
		return
	}

	recs, err := store.History(ctx, 20)
	if err != nil {
		log.Fatalf("读取数据库失败: %v", err)
	}
	printRecords(recs)
}

// --- 单文件质检逻辑 ---
// 读取一个渲染好的 HTML 文件，跑完整的五项检查，把结论以 JSON 打出来
func runCheckFile(path string, markers []string) error {
	html, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("读取文件失败: %w", err)
	}

	verdict := validator.NewPageValidator(markers).Validate(string(html))

	out, err := json.MarshalIndent(verdict, "", "  ")
	if err != nil {
		return fmt.Errorf("序列化结论失败: %w", err)
	}

	fmt.Printf("📄 %s\n", path)
	fmt.Println(string(out))
	if !verdict.Passed {
		fmt.Printf("❌ 挂在: %v\n", verdict.FailedChecks())
	}
	return nil
}

// --- 巡检模式逻辑 ---
func runFailing(store port.Repository) {
	recs, err := store.FindFailing(context.Background())
	if err != nil {
		log.Fatalf("读取数据库失败: %v", err)
	}

	if len(recs) == 0 {
		fmt.Println("🎉 当前没有不合格的页面")
		return
	}

	fmt.Printf("🚨 共 %d 个页面需要关注:\n", len(recs))
	printRecords(recs)
}

// printRecords 表格化打印构建记录
func printRecords(recs []*domain.PageRecord) {
	if len(recs) == 0 {
		fmt.Println("📭 数据库里还没有构建记录。请先运行 -mode=build 构建一次！")
		return
	}

	fmt.Println("\n================ [ 构建记录 ] ================")
	for _, rec := range recs {
		status := "✅"
		if rec.NeedsAttention() {
			status = "❌"
		}
		fmt.Printf("%s %-24s 主题=%-12s 质检=%3d/100 在线=%v 构建于=%s\n",
			status, rec.RepoName, rec.Theme, rec.Score, rec.SiteOnline,
			rec.BuiltAt.Format("2006-01-02 15:04"))
		if rec.FailedChecks != "" {
			fmt.Printf("   挂在: %s\n", rec.FailedChecks)
		}
	}
	fmt.Println("==============================================")
}
