package validator

import (
	"fmt"
	"regexp"
	"strings"

	"alc-index-builder/internal/domain"
)

// 各项检查的名字和权重，权重合计 100
// 顺序即展示顺序
var checkWeights = []struct {
	Name   string
	Weight int
}{
	{"noJunkyText", 30},
	{"hasRequiredElements", 25},
	{"meetsQualityThreshold", 20},
	{"hasRealContent", 15},
	{"isInteractive", 10},
}

// 内容统计的最低门槛
const (
	minContentLength = 500
	minUniqueWords   = 50
	minLinkCount     = 5
	minInteractive   = 3
)

// 占位符味道的垃圾文案模式，命中任意一个即判为半成品页面
var bannedPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)lorem ipsum`),
	regexp.MustCompile(`(?i)placeholder`),
	regexp.MustCompile(`(?i)todo`),
	regexp.MustCompile(`(?i)fixme`),
	regexp.MustCompile(`(?i)\btbd\b`),
	regexp.MustCompile(`(?i)coming soon`),
	regexp.MustCompile(`(?i)under construction`),
	regexp.MustCompile(`(?i)sample text`),
	regexp.MustCompile(`(?i)your content here`),
	regexp.MustCompile(`(?i)(?:test\s+){2,}test`), // 连续重复的 test token
	regexp.MustCompile(`\.{3,}`),                  // 三个以上连续句点
	regexp.MustCompile(`(?i)xxx`),
}

// 泛用空话，出现即说明页面内容不是为这个仓库写的
var genericPhrases = []string{
	"welcome to our website",
	"this is a sample",
	"example content",
	"default page",
	"under development",
}

var (
	navRe    = regexp.MustCompile(`(?i)<nav[\s>]`)
	mainRe   = regexp.MustCompile(`(?i)<(main|article|section)[\s>]`)
	headerRe = regexp.MustCompile(`(?i)<header[\s>]`)
	titleRe  = regexp.MustCompile(`(?i)<title[^>]*>([^<]*)</title>`)
	// meta description 两种属性顺序都认
	metaDescRe  = regexp.MustCompile(`(?i)<meta[^>]*name=["']description["'][^>]*content=["']([^"']*)["']`)
	metaDescRe2 = regexp.MustCompile(`(?i)<meta[^>]*content=["']([^"']*)["'][^>]*name=["']description["']`)

	linkRe        = regexp.MustCompile(`(?i)<a[\s>]`)
	interactiveRe = regexp.MustCompile(`(?i)<(button|input|select)[\s>]|onclick=`)

	// 交互性检查比内容统计多算 form 和 script
	buttonRe  = regexp.MustCompile(`(?i)<button[\s>]`)
	inputRe   = regexp.MustCompile(`(?i)<input[\s>]`)
	onclickRe = regexp.MustCompile(`(?i)onclick=`)
	formRe    = regexp.MustCompile(`(?i)<form[\s>]`)
	scriptRe  = regexp.MustCompile(`(?i)<script[\s>]`)
)

// PageValidator 实现了 port.Validator 接口
// 五项启发式检查全部独立，彼此没有顺序依赖；Validate 是纯函数，从不报错
type PageValidator struct {
	domainMarkers []string
}

// DefaultDomainMarkers 站点网络自己的品牌标记
// 出现其中任意一个就认为页面是为本网络定制的，而不是通用模板填出来的
func DefaultDomainMarkers() []string {
	return []string{"ALC", "INDEX_BUILDER", "token", "theme"}
}

// NewPageValidator 创建质检器
// markers 传空时使用内置品牌标记；复用到别的站点时应传入自己的标记
func NewPageValidator(markers []string) *PageValidator {
	if len(markers) == 0 {
		markers = DefaultDomainMarkers()
	}
	return &PageValidator{domainMarkers: markers}
}

// Validate 对渲染好的 HTML 跑全部五项检查并汇总
// 空输入直接判全败，不会 panic 也不会返回 error
func (v *PageValidator) Validate(html string) *domain.ValidationVerdict {
	if strings.TrimSpace(html) == "" {
		return emptyInputVerdict()
	}

	results := map[string]*domain.QualityCheckResult{
		"noJunkyText":           v.checkJunkText(html),
		"hasRequiredElements":   v.checkRequiredElements(html),
		"meetsQualityThreshold": v.checkQualityThreshold(html),
		"hasRealContent":        v.checkRealContent(html),
		"isInteractive":         v.checkInteractivity(html),
	}

	score := 0
	passed := true
	for _, cw := range checkWeights {
		if results[cw.Name].Passed {
			score += cw.Weight
		} else {
			passed = false
		}
	}

	verdict := fmt.Sprintf("❌ 页面不合格 (%d/100)", score)
	if passed {
		verdict = fmt.Sprintf("✅ 页面合格 (%d/100)", score)
	}

	return &domain.ValidationVerdict{
		Passed:  passed,
		Score:   score,
		Verdict: verdict,
		Results: results,
	}
}

// emptyInputVerdict 空白输入的结论：五项全败，0 分
func emptyInputVerdict() *domain.ValidationVerdict {
	results := make(map[string]*domain.QualityCheckResult, len(checkWeights))
	for _, cw := range checkWeights {
		results[cw.Name] = &domain.QualityCheckResult{
			Passed:  false,
			Message: "输入为空，无法检查",
		}
	}
	return &domain.ValidationVerdict{
		Passed:  false,
		Score:   0,
		Verdict: "❌ 页面不合格 (0/100)",
		Results: results,
	}
}

// checkJunkText 扫描原始 HTML 里的垃圾文案
func (v *PageValidator) checkJunkText(html string) *domain.QualityCheckResult {
	var matched []string
	for _, p := range bannedPatterns {
		if p.MatchString(html) {
			matched = append(matched, p.String())
		}
	}

	if len(matched) > 0 {
		return &domain.QualityCheckResult{
			Passed:  false,
			Matched: matched,
			Message: fmt.Sprintf("发现 %d 处占位符文案", len(matched)),
		}
	}
	return &domain.QualityCheckResult{
		Passed:  true,
		Message: "没有发现占位符文案",
	}
}

// checkRequiredElements 检查页面骨架：导航/主内容/页头/标题/描述 meta
func (v *PageValidator) checkRequiredElements(html string) *domain.QualityCheckResult {
	var missing []string

	if !navRe.MatchString(html) {
		missing = append(missing, "nav")
	}
	if !mainRe.MatchString(html) {
		missing = append(missing, "main")
	}
	if !headerRe.MatchString(html) {
		missing = append(missing, "header")
	}

	// 标题不但要有，正文还不能是占位符
	if m := titleRe.FindStringSubmatch(html); m == nil || strings.Contains(strings.ToLower(m[1]), "placeholder") {
		missing = append(missing, "title")
	}

	desc, ok := findMetaDescription(html)
	if !ok || strings.Contains(strings.ToLower(desc), "placeholder") {
		missing = append(missing, "metaDescription")
	}

	if len(missing) > 0 {
		return &domain.QualityCheckResult{
			Passed:  false,
			Missing: missing,
			Message: fmt.Sprintf("缺少 %d 个必要元素: %s", len(missing), strings.Join(missing, ", ")),
		}
	}
	return &domain.QualityCheckResult{
		Passed:  true,
		Message: "页面骨架完整",
	}
}

func findMetaDescription(html string) (string, bool) {
	if m := metaDescRe.FindStringSubmatch(html); m != nil {
		return m[1], true
	}
	if m := metaDescRe2.FindStringSubmatch(html); m != nil {
		return m[1], true
	}
	return "", false
}

// checkQualityThreshold 内容统计：文本长度 / 去重词数 / 链接数 / 交互元素数
func (v *PageValidator) checkQualityThreshold(html string) *domain.QualityCheckResult {
	text := ExtractText(html)

	stats := map[string]int{
		"contentLength":    len(text),
		"uniqueWords":      countUniqueWords(text),
		"linkCount":        len(linkRe.FindAllStringIndex(html, -1)),
		"interactiveCount": len(interactiveRe.FindAllStringIndex(html, -1)),
	}

	var shortOn []string
	if stats["contentLength"] < minContentLength {
		shortOn = append(shortOn, "contentLength")
	}
	if stats["uniqueWords"] < minUniqueWords {
		shortOn = append(shortOn, "uniqueWords")
	}
	if stats["linkCount"] < minLinkCount {
		shortOn = append(shortOn, "linkCount")
	}
	if stats["interactiveCount"] < minInteractive {
		shortOn = append(shortOn, "interactiveCount")
	}

	if len(shortOn) > 0 {
		return &domain.QualityCheckResult{
			Passed:  false,
			Missing: shortOn,
			Stats:   stats,
			Message: fmt.Sprintf("%d 项指标不达标: %s", len(shortOn), strings.Join(shortOn, ", ")),
		}
	}
	return &domain.QualityCheckResult{
		Passed:  true,
		Stats:   stats,
		Message: "内容指标全部达标",
	}
}

// countUniqueWords 长度大于 2 的去重词数，区分大小写
func countUniqueWords(text string) int {
	seen := make(map[string]struct{})
	for _, w := range strings.Fields(text) {
		if len(w) > 2 {
			seen[w] = struct{}{}
		}
	}
	return len(seen)
}

// checkRealContent 正文既不能有泛用空话，又必须带至少一个品牌标记
// 两个条件互相独立，都满足才算真内容
func (v *PageValidator) checkRealContent(html string) *domain.QualityCheckResult {
	lowerText := strings.ToLower(ExtractText(html))

	var matched []string
	for _, phrase := range genericPhrases {
		if strings.Contains(lowerText, phrase) {
			matched = append(matched, phrase)
		}
	}

	hasMarker := false
	for _, marker := range v.domainMarkers {
		if strings.Contains(html, marker) {
			hasMarker = true
			break
		}
	}

	if len(matched) == 0 && hasMarker {
		return &domain.QualityCheckResult{
			Passed:  true,
			Message: "内容具有站点特异性",
		}
	}

	result := &domain.QualityCheckResult{
		Passed:  false,
		Matched: matched,
	}
	switch {
	case len(matched) > 0 && !hasMarker:
		result.Missing = []string{"domainMarker"}
		result.Message = "发现泛用空话且缺少品牌标记"
	case len(matched) > 0:
		result.Message = "发现泛用空话"
	default:
		result.Missing = []string{"domainMarker"}
		result.Message = "缺少品牌标记"
	}
	return result
}

// checkInteractivity 统计按钮/输入框/点击处理器/表单/脚本的总数
func (v *PageValidator) checkInteractivity(html string) *domain.QualityCheckResult {
	total := len(buttonRe.FindAllStringIndex(html, -1)) +
		len(inputRe.FindAllStringIndex(html, -1)) +
		len(onclickRe.FindAllStringIndex(html, -1)) +
		len(formRe.FindAllStringIndex(html, -1)) +
		len(scriptRe.FindAllStringIndex(html, -1))

	stats := map[string]int{"interactiveTotal": total}
	if total < minInteractive {
		return &domain.QualityCheckResult{
			Passed:  false,
			Stats:   stats,
			Message: fmt.Sprintf("交互元素只有 %d 个，至少需要 %d 个", total, minInteractive),
		}
	}
	return &domain.QualityCheckResult{
		Passed:  true,
		Stats:   stats,
		Message: fmt.Sprintf("交互元素 %d 个", total),
	}
}
