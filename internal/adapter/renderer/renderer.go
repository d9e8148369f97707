package renderer

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"alc-index-builder/internal/common"
	"alc-index-builder/internal/domain"

	"github.com/yuin/goldmark"
)

// SiteInfo 站点网络的公共信息，所有页面共享
type SiteInfo struct {
	Name    string
	BaseURL string
	// 品牌标记，以注释形式埋进每个页面，质检的 hasRealContent 靠它识别自家页面
	Marker string
}

// PageRenderer 实现了 port.Renderer 接口
// 同一份模板 + 主题样式表，README 用 goldmark 渲染成 HTML 片段
type PageRenderer struct {
	site SiteInfo
	tmpl *template.Template
	md   goldmark.Markdown
}

// NewPageRenderer 创建渲染器，模板在这里一次性解析好
func NewPageRenderer(site SiteInfo) (*PageRenderer, error) {
	if site.Name == "" {
		site.Name = "ALC"
	}
	if site.Marker == "" {
		site.Marker = "ALC INDEX_BUILDER"
	}
	site.BaseURL = strings.TrimRight(site.BaseURL, "/")

	tmpl, err := template.New("page").Parse(pageTemplate)
	if err != nil {
		return nil, common.WrapError(common.ErrCodeRender, "解析页面模板失败", err)
	}

	return &PageRenderer{
		site: site,
		tmpl: tmpl,
		md:   goldmark.New(),
	}, nil
}

// pageData 模板数据
type pageData struct {
	SiteName      string
	BaseURL       string
	MarkerComment template.HTML
	Name          string
	Title         string
	Description   string
	Theme         domain.ThemeLabel
	Accent        string
	Bg            string
	Emoji         string
	Tagline       string
	Topics        []string
	RepoURL       string
	SiteURL       string
	Language      string
	ReadmeHTML    template.HTML
	Year          int
}

// Render 把仓库元数据 + 主题拼装成完整页面
func (r *PageRenderer) Render(meta *domain.RepoMeta, label domain.ThemeLabel) (string, error) {
	if meta == nil || meta.Name == "" {
		return "", common.NewError(common.ErrCodeInvalidInput, "仓库元数据缺少名字")
	}

	style := styleFor(label)

	desc := strings.TrimSpace(meta.Description)
	if desc == "" {
		// 没有描述时兜底一句，注意不能写成占位符文案
		desc = fmt.Sprintf("%s is one of the projects in the %s network.", meta.Name, r.site.Name)
	}

	data := &pageData{
		SiteName:      r.site.Name,
		BaseURL:       r.site.BaseURL,
		MarkerComment: template.HTML("<!-- " + r.site.Marker + " -->"),
		Name:          meta.Name,
		Title:         fmt.Sprintf("%s | %s network", meta.Name, r.site.Name),
		Description:   desc,
		Theme:         label,
		Accent:        style.Accent,
		Bg:            style.Bg,
		Emoji:         style.Emoji,
		Tagline:       style.Tagline,
		Topics:        meta.Topics,
		RepoURL:       meta.URL,
		SiteURL:       meta.SiteURL,
		Language:      meta.Language,
		Year:          time.Now().Year(),
	}

	if readme := strings.TrimSpace(meta.Readme); readme != "" {
		var buf bytes.Buffer
		if err := r.md.Convert([]byte(readme), &buf); err != nil {
			return "", common.WrapError(common.ErrCodeRender, "渲染 README 失败", err)
		}
		// goldmark 默认吞掉 README 里的裸 HTML，这里不需要额外清洗
		data.ReadmeHTML = template.HTML(buf.String())
	}

	var out bytes.Buffer
	if err := r.tmpl.Execute(&out, data); err != nil {
		return "", common.WrapError(common.ErrCodeRender, "执行页面模板失败", err)
	}
	return out.String(), nil
}
