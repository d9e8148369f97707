package theme

import (
	"regexp"

	"alc-index-builder/internal/domain"
)

// Rule 一个主题对应的一组关键词模式
// 模式是子串级别的正则：例如 "test" 也会命中 "testing"，这是刻意保留的行为
type Rule struct {
	Label    domain.ThemeLabel
	Patterns []*regexp.Regexp
}

// Detector 实现了 port.Detector 接口
// 规则表在构造时注入后不再变动，Detect 是纯函数，可以放心并发调用
type Detector struct {
	rules []Rule
}

// NewDetector 用指定的规则表创建检测器
// 规则表必须是有序切片：平分时先声明的主题胜出，map 的乱序会破坏这个保证
func NewDetector(rules []Rule) *Detector {
	return &Detector{rules: rules}
}

// NewDefaultDetector 使用内置规则表创建检测器
func NewDefaultDetector() *Detector {
	return NewDetector(DefaultRules())
}

// Detect 给仓库元数据挑一个主题
// 算法：拼接所有文本字段转小写，数每个主题命中的模式个数，取严格最高分
// 全部为 0 时返回 default
func (d *Detector) Detect(meta *domain.RepoMeta) domain.ThemeLabel {
	if meta == nil {
		return domain.ThemeDefault
	}

	text := meta.SearchText()

	best := domain.ThemeDefault
	bestScore := 0
	for _, rule := range d.rules {
		score := 0
		for _, p := range rule.Patterns {
			// 只判断命中与否，不数出现次数
			if p.MatchString(text) {
				score++
			}
		}
		// 严格大于：同分时保留先声明的主题
		if score > bestScore {
			bestScore = score
			best = rule.Label
		}
	}

	return best
}

// compileAll 把一组子串模式编译为大小写不敏感的正则
func compileAll(patterns ...string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		compiled = append(compiled, regexp.MustCompile("(?i)"+p))
	}
	return compiled
}

// DefaultRules 内置主题规则表
// 注意声明顺序即优先级：mario 排最前，平分时它赢
func DefaultRules() []Rule {
	return []Rule{
		{Label: domain.ThemeMario, Patterns: compileAll("mario", "kart", "game", "arcade", "racing", "platformer")},
		{Label: domain.ThemeElectronics, Patterns: compileAll("electronic", "circuit", "arduino", "sensor", "hardware", "embedded", "esp32")},
		{Label: domain.ThemeTokenWallet, Patterns: compileAll("wallet", "token", "crypto", "balance", "ledger", "web3")},
		{Label: domain.ThemeLabBench, Patterns: compileAll("lab", "experiment", "bench", "prototype", "test", "sandbox")},
		{Label: domain.ThemeCoinMint, Patterns: compileAll("coin", "mint", "currency", "exchange", "forge")},
		{Label: domain.ThemeArtGallery, Patterns: compileAll("art", "gallery", "design", "portfolio", "creative", "exhibit")},
		{Label: domain.ThemeCommerce, Patterns: compileAll("shop", "store", "commerce", "checkout", "product", "catalog")},
		{Label: domain.ThemeDashHub, Patterns: compileAll("dashboard", "admin", "panel", "hub", "monitor", "metrics")},
		{Label: domain.ThemePricing, Patterns: compileAll("pricing", "price", "plan", "subscription", "billing", "tier")},
		{Label: domain.ThemeTerminal, Patterns: compileAll("terminal", "cli", "shell", "console", "command", "tty")},
	}
}
