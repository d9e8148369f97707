package domain

import (
	"strings"
	"time"
)

// ThemeLabel 页面视觉主题标签
type ThemeLabel string

// 全部主题标签 (声明顺序即打分时的遍历顺序，平分时先声明者胜出)
const (
	ThemeMario       ThemeLabel = "mario"
	ThemeElectronics ThemeLabel = "electronics"
	ThemeTokenWallet ThemeLabel = "token-wallet"
	ThemeLabBench    ThemeLabel = "lab-bench"
	ThemeCoinMint    ThemeLabel = "coin-mint"
	ThemeArtGallery  ThemeLabel = "art-gallery"
	ThemeCommerce    ThemeLabel = "commerce"
	ThemeDashHub     ThemeLabel = "dash-hub"
	ThemePricing     ThemeLabel = "pricing"
	ThemeTerminal    ThemeLabel = "terminal"
	ThemeDefault     ThemeLabel = "default"
)

// RepoMeta 代表站点网络中一个仓库的元数据
// 除 Name 外所有字段均可缺省，缺省字段按空值参与主题匹配
type RepoMeta struct {
	Name        string    `json:"name" yaml:"name"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	Topics      []string  `json:"topics,omitempty" yaml:"topics,omitempty"`
	Keywords    []string  `json:"keywords,omitempty" yaml:"keywords,omitempty"`
	Readme      string    `json:"readme,omitempty" yaml:"readme,omitempty"`
	URL         string    `json:"url,omitempty" yaml:"url,omitempty"`
	SiteURL     string    `json:"site_url,omitempty" yaml:"site_url,omitempty"`
	Stars       int       `json:"stars,omitempty" yaml:"stars,omitempty"`
	Language    string    `json:"language,omitempty" yaml:"language,omitempty"`
	UpdatedAt   time.Time `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
}

// SearchText 拼接所有参与主题匹配的字段并转为小写
func (m *RepoMeta) SearchText() string {
	parts := []string{m.Name, m.Description}
	parts = append(parts, m.Topics...)
	parts = append(parts, m.Keywords...)
	parts = append(parts, m.Readme)
	return strings.ToLower(strings.Join(parts, " "))
}

// QualityCheckResult 单项质检结果
// Matched/Missing/Stats 按检查项各取所需，JSON 输出时省略空字段
type QualityCheckResult struct {
	Passed  bool           `json:"passed"`
	Matched []string       `json:"matched,omitempty"`
	Missing []string       `json:"missing,omitempty"`
	Stats   map[string]int `json:"stats,omitempty"`
	Message string         `json:"message"`
}

// ValidationVerdict 五项质检的汇总结论
type ValidationVerdict struct {
	Passed  bool                           `json:"passed"`
	Score   int                            `json:"score"`
	Verdict string                         `json:"verdict"`
	Results map[string]*QualityCheckResult `json:"results"`
}

// FailedChecks 返回未通过的检查名 (顺序固定，便于展示)
func (v *ValidationVerdict) FailedChecks() []string {
	order := []string{
		"noJunkyText",
		"hasRequiredElements",
		"meetsQualityThreshold",
		"hasRealContent",
		"isInteractive",
	}
	var failed []string
	for _, name := range order {
		if r, ok := v.Results[name]; ok && !r.Passed {
			failed = append(failed, name)
		}
	}
	return failed
}

// PageRecord 一次页面构建的落库记录
type PageRecord struct {
	ID           string     `json:"id" gorm:"primaryKey"` // 即仓库名，每个仓库保留最新一次构建
	RepoName     string     `json:"repo_name"`
	Theme        ThemeLabel `json:"theme"`
	Score        int        `json:"score"`
	Passed       bool       `json:"passed"`
	FailedChecks string     `json:"failed_checks"` // 逗号分隔的未通过检查名
	HTMLSize     int        `json:"html_size"`
	SiteURL      string     `json:"site_url"`
	SiteOnline   bool       `json:"site_online"`
	BuiltAt      time.Time  `json:"built_at"`

	// 是否已推送过告警，防止重复打扰
	AlreadyNotified bool `json:"already_notified"`
}

// NeedsAttention 判断该页面是否需要人工介入
func (r *PageRecord) NeedsAttention() bool {
	// 逻辑：质检不合格 OR 站点探测离线
	return !r.Passed || !r.SiteOnline
}

// SiteStatus 单个站点的连通性探测结果
// 探测失败是数据而不是异常：Online=false + Error 描述，绝不中断整批探测
type SiteStatus struct {
	RepoName   string `json:"repo_name"`
	URL        string `json:"url"`
	Online     bool   `json:"online"`
	StatusCode int    `json:"status_code,omitempty"`
	LatencyMS  int64  `json:"latency_ms,omitempty"`
	Error      string `json:"error,omitempty"`
}

// BuildReport 一轮构建的汇总，供通知渠道使用
type BuildReport struct {
	SiteName  string        `json:"site_name"`
	Built     int           `json:"built"`
	Passed    int           `json:"passed"`
	Failed    []*PageRecord `json:"failed,omitempty"`
	Offline   []*SiteStatus `json:"offline,omitempty"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
}

// AllClear 全部页面合格且全部站点在线
func (b *BuildReport) AllClear() bool {
	return len(b.Failed) == 0 && len(b.Offline) == 0
}
