package service

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"alc-index-builder/internal/domain"
	"alc-index-builder/internal/port"
)

// BuildService 处理一轮完整的站点构建
// 流程：收集元数据 → 补文案 → 挑主题 → 渲染 → 质检 → 探测 → 落库 → 推送
type BuildService struct {
	scouter    port.Scouter
	copywriter port.Copywriter
	detector   port.Detector
	renderer   port.Renderer
	validator  port.Validator
	prober     port.Prober
	store      port.Repository
	notifier   port.Notifier

	siteName string
	nowFunc  func() time.Time
}

// NewBuildService 创建构建服务
// copywriter 和 notifier 允许为 nil：没配 AI 就不补文案，没配 Webhook 就不推送
func NewBuildService(
	scouter port.Scouter,
	copywriter port.Copywriter,
	detector port.Detector,
	renderer port.Renderer,
	validator port.Validator,
	prober port.Prober,
	store port.Repository,
	notifier port.Notifier,
	siteName string,
) *BuildService {
	if siteName == "" {
		siteName = "ALC"
	}
	return &BuildService{
		scouter:    scouter,
		copywriter: copywriter,
		detector:   detector,
		renderer:   renderer,
		validator:  validator,
		prober:     prober,
		store:      store,
		notifier:   notifier,
		siteName:   siteName,
		nowFunc:    time.Now, // 便于测试注入当前时间
	}
}

// ExecuteBuildCycle 执行一轮构建
// 单个仓库的失败只会让它缺席本轮产物，不会中断整个周期
func (s *BuildService) ExecuteBuildCycle(ctx context.Context, outDir string, concurrency int) (*domain.BuildReport, error) {
	start := s.nowFunc()
	s.prober.SetMaxGoroutines(concurrency)

	fmt.Printf("🚀 [构建模式] 开始构建 %s 站点网络首页...\n", s.siteName)

	// 1. 数据源 (Scouter)
	fmt.Println("📥 正在收集仓库元数据...")
	repos, err := s.scouter.Discover(ctx)
	if err != nil {
		return nil, fmt.Errorf("收集元数据失败: %w", err)
	}
	fmt.Printf("✅ 成功收集 %d 个仓库\n", len(repos))

	// 2. 文案补全 (Copywriter)
	if s.copywriter != nil {
		for _, repo := range repos {
			polished, err := s.copywriter.Polish(ctx, repo)
			if err != nil {
				log.Printf("⚠️ 仓库 %s 补文案失败: %v，继续用原始元数据", repo.Name, err)
				continue
			}
			*repo = *polished
		}
	}

	if outDir != "" {
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return nil, fmt.Errorf("创建输出目录失败: %w", err)
		}
	}

	// 3. 主题 → 渲染 → 质检
	report := &domain.BuildReport{
		SiteName:  s.siteName,
		StartedAt: start,
	}
	records := make(map[string]*domain.PageRecord, len(repos))

	for _, repo := range repos {
		label := s.detector.Detect(repo)

		html, err := s.renderer.Render(repo, label)
		if err != nil {
			log.Printf("❌ 渲染 %s 失败: %v，跳过该仓库", repo.Name, err)
			continue
		}

		verdict := s.validator.Validate(html)

		rec := &domain.PageRecord{
			ID:           repo.Name,
			RepoName:     repo.Name,
			Theme:        label,
			Score:        verdict.Score,
			Passed:       verdict.Passed,
			FailedChecks: strings.Join(verdict.FailedChecks(), ","),
			HTMLSize:     len(html),
			SiteURL:      repo.SiteURL,
			SiteOnline:   true, // 没配站点地址时视为在线，探测阶段再修正
			BuiltAt:      s.nowFunc(),
		}
		records[repo.Name] = rec

		report.Built++
		if verdict.Passed {
			report.Passed++
			fmt.Printf("   ✅ %s → 主题 %s，质检 %d/100\n", repo.Name, label, verdict.Score)
		} else {
			report.Failed = append(report.Failed, rec)
			fmt.Printf("   ❌ %s → 主题 %s，质检 %d/100，挂在: %s\n", repo.Name, label, verdict.Score, rec.FailedChecks)
		}

		if outDir != "" {
			path := filepath.Join(outDir, repo.Name+".html")
			if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
				log.Printf("❌ 写入 %s 失败: %v", path, err)
			}
		}
	}

	// 4. 连通性探测 (Prober)
	statuses := s.prober.CheckAll(ctx, repos)
	for _, status := range statuses {
		if rec, ok := records[status.RepoName]; ok {
			rec.SiteOnline = status.Online
		}
		if !status.Online {
			report.Offline = append(report.Offline, status)
		}
	}

	// 5. 存储和推送
	fmt.Println("💾 开始存储和推送...")
	for _, rec := range records {
		// 检查context是否已超时或取消
		select {
		case <-ctx.Done():
			fmt.Println("⏰ 执行时间过长，提前结束存储阶段")
			report.Duration = s.nowFunc().Sub(start)
			return report, ctx.Err()
		default:
		}

		if err := s.store.Save(ctx, rec); err != nil {
			log.Printf("❌ 保存记录 %s 失败: %v", rec.RepoName, err)
		}
	}

	report.Duration = s.nowFunc().Sub(start)

	if s.notifier == nil {
		log.Println("⚠️ 未配置通知通道，跳过推送")
		fmt.Printf("🎉 本轮构建完成，%d/%d 合格\n", report.Passed, report.Built)
		return report, nil
	}

	if err := s.notifier.Notify(ctx, report); err != nil {
		log.Printf("❌ 推送构建报告失败: %v", err)
	} else {
		for _, rec := range report.Failed {
			if err := s.store.MarkAsNotified(ctx, rec.ID); err != nil {
				log.Printf("⚠️ 标记 %s 为已通知失败: %v", rec.ID, err)
			}
		}
	}

	fmt.Printf("🎉 本轮构建完成，%d/%d 合格\n", report.Passed, report.Built)
	return report, nil
}
