package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"alc-index-builder/internal/domain"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Copywriter 实现了 port.Copywriter 接口
// 用 Gemini 给缺描述的仓库补一句话简介，顺带挖几个关键词喂给主题匹配
type Copywriter struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// aiResponse 接收 AI 返回的 JSON
type aiResponse struct {
	Description string   `json:"description"`
	Keywords    []string `json:"keywords"`
}

// NewCopywriter 初始化 Gemini 客户端
func NewCopywriter(ctx context.Context, apiKey string) (*Copywriter, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	model := client.GenerativeModel("gemini-2.5-flash-lite")
	// 强制要求返回 JSON，降低解析错误的概率
	model.ResponseMIMEType = "application/json"

	return &Copywriter{
		client: client,
		model:  model,
	}, nil
}

// Polish 给缺描述的仓库补写文案
// 已有描述的仓库原样返回；AI 失败时也返回原仓库，调用方自己决定要不要管这个错
func (c *Copywriter) Polish(ctx context.Context, meta *domain.RepoMeta) (*domain.RepoMeta, error) {
	if strings.TrimSpace(meta.Description) != "" {
		return meta, nil
	}

	readme := meta.Readme
	if len(readme) > 4000 {
		// 只取开头，够 AI 理解项目是干嘛的就行
		readme = readme[:4000]
	}

	prompt := fmt.Sprintf(`
你是一个给个人项目站点写文案的编辑。下面是一个仓库的信息：

仓库名: %s
README:
%s

请严格按照 JSON 格式返回，包含以下字段：
1. description: 一句英文简介 (不超过 140 字符，不要出现 placeholder/todo 之类的占位词)。
2. keywords: 3 到 5 个描述项目领域的英文小写关键词。

请直接返回 JSON，不要包含 Markdown 格式标记。
`, meta.Name, readme)

	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return meta, fmt.Errorf("AI 调用失败: %w", err)
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return meta, fmt.Errorf("AI 返回内容为空")
	}

	part := resp.Candidates[0].Content.Parts[0]
	text, ok := part.(genai.Text)
	if !ok {
		return meta, fmt.Errorf("AI 返回格式错误")
	}

	parsed, err := parseAIResponse(string(text))
	if err != nil {
		return meta, err
	}

	meta.Description = parsed.Description
	meta.Keywords = append(meta.Keywords, parsed.Keywords...)
	return meta, nil
}

// parseAIResponse 从 AI 原文里抠出 JSON 并解析
// 即使 AI 返回 "```json { ... } ```"，也能精准截出中间的 { ... }
func parseAIResponse(raw string) (*aiResponse, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")

	if start == -1 || end == -1 || end <= start {
		return nil, fmt.Errorf("无法提取 JSON, AI 原文: %s", raw)
	}

	cleanJSON := raw[start : end+1]

	var res aiResponse
	if err := json.Unmarshal([]byte(cleanJSON), &res); err != nil {
		return nil, fmt.Errorf("JSON 解析失败: %s | 原文: %s", err, cleanJSON)
	}
	return &res, nil
}
