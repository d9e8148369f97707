package renderer

import "alc-index-builder/internal/domain"

// themeStyle 每个主题的视觉参数，填进同一份页面模板
type themeStyle struct {
	Accent  string
	Bg      string
	Emoji   string
	Tagline string
}

// 主题样式表：和 theme.DefaultRules 的标签一一对应
var themeStyles = map[domain.ThemeLabel]themeStyle{
	domain.ThemeMario:       {Accent: "#e52521", Bg: "#fbd000", Emoji: "🍄", Tagline: "Jump in and take a lap"},
	domain.ThemeElectronics: {Accent: "#00b894", Bg: "#1e272e", Emoji: "🔌", Tagline: "Solder first, simulate later"},
	domain.ThemeTokenWallet: {Accent: "#f1c40f", Bg: "#130f40", Emoji: "👛", Tagline: "Every satoshi accounted for"},
	domain.ThemeLabBench:    {Accent: "#9b59b6", Bg: "#f5f6fa", Emoji: "🧪", Tagline: "Where the experiments live"},
	domain.ThemeCoinMint:    {Accent: "#e67e22", Bg: "#2c3e50", Emoji: "🪙", Tagline: "Fresh off the press"},
	domain.ThemeArtGallery:  {Accent: "#e84393", Bg: "#ffffff", Emoji: "🖼️", Tagline: "Pixels arranged with intent"},
	domain.ThemeCommerce:    {Accent: "#0984e3", Bg: "#dfe6e9", Emoji: "🛒", Tagline: "From cart to doorstep"},
	domain.ThemeDashHub:     {Accent: "#00cec9", Bg: "#2d3436", Emoji: "📊", Tagline: "All the numbers in one place"},
	domain.ThemePricing:     {Accent: "#6c5ce7", Bg: "#ffffff", Emoji: "💳", Tagline: "Pick a plan that fits"},
	domain.ThemeTerminal:    {Accent: "#2ecc71", Bg: "#000000", Emoji: "💻", Tagline: "Everything is a pipe"},
	domain.ThemeDefault:     {Accent: "#636e72", Bg: "#ffffff", Emoji: "📦", Tagline: "Part of the network"},
}

// styleFor 查样式表，未知标签退回 default
func styleFor(label domain.ThemeLabel) themeStyle {
	if s, ok := themeStyles[label]; ok {
		return s
	}
	return themeStyles[domain.ThemeDefault]
}

// 页面模板
// 注意：模板文案绝不能含质检的违禁词 (省略号、占位符字样等)，否则自己渲染的页面自己挂
const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<meta name="description" content="{{.Description}}">
<title>{{.Title}}</title>
<style>
:root { --accent: {{.Accent}}; --bg: {{.Bg}}; }
body { font-family: system-ui, sans-serif; margin: 0; background: var(--bg); }
.wrap { max-width: 860px; margin: 0 auto; padding: 1rem; background: #fff; }
header.site { border-bottom: 4px solid var(--accent); padding: 1rem 0; }
nav.site a { margin-right: 1rem; color: var(--accent); }
.topics span { display: inline-block; border: 1px solid var(--accent); border-radius: 1rem; padding: 0 .6rem; margin: 0 .3rem .3rem 0; }
.actions button { background: var(--accent); color: #fff; border: 0; padding: .5rem 1rem; margin-right: .5rem; cursor: pointer; }
footer.site { border-top: 1px solid #ddd; margin-top: 2rem; padding: 1rem 0; font-size: .85rem; }
</style>
</head>
<body class="theme-{{.Theme}}">
{{.MarkerComment}}
<div class="wrap">
<header class="site">
<h1>{{.Emoji}} {{.Name}}</h1>
<p>{{.Tagline}}</p>
</header>
<nav class="site">
<a href="{{.BaseURL}}/">Home</a>
<a href="{{.BaseURL}}/projects">Projects</a>
<a href="{{.BaseURL}}/network">Network</a>
<a href="{{.BaseURL}}/about">About</a>
<a href="{{.BaseURL}}/contact">Contact</a>
</nav>
<main>
<p class="lede">{{.Description}}</p>
{{if .Topics}}<div class="topics">{{range .Topics}}<span>{{.}}</span>{{end}}</div>{{end}}
{{if .ReadmeHTML}}<section class="readme">{{.ReadmeHTML}}</section>{{end}}
<div class="actions">
<button type="button" data-href="{{.RepoURL}}">View Source</button>
{{if .SiteURL}}<button type="button" data-href="{{.SiteURL}}">Visit Site</button>{{end}}
<button type="button" data-href="{{.BaseURL}}/">Back to Hub</button>
</div>
{{if .RepoURL}}<p><a href="{{.RepoURL}}">Browse the repository</a>{{if .Language}} (written in {{.Language}}){{end}}</p>{{end}}
</main>
<footer class="site">
<p>{{.SiteName}} network, built {{.Year}}. Theme: {{.Theme}}.</p>
<form class="note" action="{{.BaseURL}}/guestbook" method="get">
<input type="text" name="note" aria-label="Leave a note">
<button type="submit">Send</button>
</form>
</footer>
</div>
<script>
document.querySelectorAll("[data-href]").forEach(function (el) {
  el.addEventListener("click", function () { window.location.href = el.dataset.href; });
});
</script>
</body>
</html>
`
