package feishu

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"alc-index-builder/internal/common"
	"alc-index-builder/internal/domain"
)

// Notifier 实现了 port.Notifier 接口，把构建报告推成飞书卡片
type Notifier struct {
	webhookURL string
}

func NewNotifier(webhook string) *Notifier {
	if webhook == "" {
		log.Println("⚠️ 警告: 飞书 Webhook 为空，推送功能将无法工作！")
	}
	return &Notifier{webhookURL: webhook}
}

// Notify 发送飞书卡片消息 (Schema 2.0)
// 一轮构建发一张卡片：全绿是蓝色捷报，有问题就是红色告警
func (n *Notifier) Notify(ctx context.Context, report *domain.BuildReport) error {
	if n.webhookURL == "" {
		return fmt.Errorf("Webhook URL 为空")
	}

	title := fmt.Sprintf("✅ %s 站点网络构建完成", report.SiteName)
	color := "blue"
	if !report.AllClear() {
		title = fmt.Sprintf("🚨 %s 站点网络发现问题", report.SiteName)
		color = "red"
	}

	payload := map[string]interface{}{
		"msg_type": "interactive",
		"card": map[string]interface{}{
			"schema": "2.0",
			"config": map[string]interface{}{
				"update_multi": true,
			},
			"header": map[string]interface{}{
				"title": map[string]interface{}{
					"tag":     "plain_text",
					"content": title,
				},
				"template": color,
			},
			"body": map[string]interface{}{
				"direction": "vertical",
				"elements": []map[string]interface{}{
					{
						"tag":       "markdown",
						"content":   buildMarkdown(report),
						"text_size": "normal",
					},
				},
			},
		},
	}

	// 发送请求 (带重试机制)
	body, _ := json.Marshal(payload)
	err := common.Do(ctx, func() error {
		resp, postErr := http.Post(n.webhookURL, "application/json", bytes.NewBuffer(body))
		if postErr != nil {
			return postErr
		}
		defer resp.Body.Close()

		if resp.StatusCode != 200 {
			return fmt.Errorf("飞书 API 报错: 状态码 %d", resp.StatusCode)
		}
		return nil
	},
		common.WithMaxRetries(3),
		common.WithInitialDelay(500*time.Millisecond),
	)
	if err != nil {
		return fmt.Errorf("发送请求失败: %w", err)
	}

	return nil
}

// buildMarkdown 拼卡片正文
func buildMarkdown(report *domain.BuildReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "**📄 页面:** %d 个  |  **合格:** %d 个  |  **耗时:** %s\n",
		report.Built, report.Passed, report.Duration.Round(time.Millisecond))

	if len(report.Failed) > 0 {
		b.WriteString("\n**❌ 质检不合格:**\n")
		for _, rec := range report.Failed {
			fmt.Fprintf(&b, "- %s (%d/100, 挂在: %s)\n", rec.RepoName, rec.Score, rec.FailedChecks)
		}
	}

	if len(report.Offline) > 0 {
		b.WriteString("\n**📡 站点离线:**\n")
		for _, s := range report.Offline {
			fmt.Fprintf(&b, "- %s (%s): %s\n", s.RepoName, s.URL, s.Error)
		}
	}

	if report.AllClear() {
		b.WriteString("\n全部页面合格，全部站点在线 🎉")
	}

	return b.String()
}
