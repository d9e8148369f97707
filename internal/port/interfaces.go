package port

import (
	"context"

	"alc-index-builder/internal/domain"
)

// Scouter (情报员): 负责收集仓库元数据
// 可以是本地 YAML 站点清单，也可以是 GitHub API
type Scouter interface {
	Discover(ctx context.Context) ([]*domain.RepoMeta, error)
}

// Detector (配色师): 根据元数据关键词给仓库挑一个视觉主题
// 纯函数，对任何输入都有结果，匹配不到就返回 default
type Detector interface {
	Detect(meta *domain.RepoMeta) domain.ThemeLabel
}

// Renderer (装修队): 把元数据 + 主题拼装成完整的 HTML 首页
type Renderer interface {
	Render(meta *domain.RepoMeta, theme domain.ThemeLabel) (string, error)
}

// Validator (质检员): 对渲染好的 HTML 跑五项启发式检查
// 绝不报错：再烂的输入也只是得到一个不合格的结论
type Validator interface {
	Validate(html string) *domain.ValidationVerdict
}

// Copywriter (文案): 调用 LLM 给缺描述的仓库补一句话简介
type Copywriter interface {
	Polish(ctx context.Context, meta *domain.RepoMeta) (*domain.RepoMeta, error)
}

// Prober (巡检员): 并发探测兄弟站点的连通性
// 单个站点失败不影响其它站点，结果是数据不是异常
type Prober interface {
	SetMaxGoroutines(max int)
	CheckAll(ctx context.Context, repos []*domain.RepoMeta) []*domain.SiteStatus
}

// Notifier (信使): 把构建报告推送到通知渠道 (飞书)
type Notifier interface {
	Notify(ctx context.Context, report *domain.BuildReport) error
}

// Repository (档案员): 负责构建记录的存储和查询
type Repository interface {
	// 保存构建记录 (同仓库覆盖更新)
	Save(ctx context.Context, rec *domain.PageRecord) error

	// 判断是否已有记录
	Exists(ctx context.Context, id string) (bool, error)

	// 标记已推送，防止重复告警
	MarkAsNotified(ctx context.Context, id string) error

	// 按关键词查询历史构建
	Search(ctx context.Context, query string) ([]*domain.PageRecord, error)

	// 最近 N 条构建记录
	History(ctx context.Context, limit int) ([]*domain.PageRecord, error)

	// 当前不合格的页面
	FindFailing(ctx context.Context) ([]*domain.PageRecord, error)
}
