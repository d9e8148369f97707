package github

import (
	"context"
	"fmt"
	"strings"
	"time"

	"alc-index-builder/internal/common"
	"alc-index-builder/internal/domain"

	"github.com/google/go-github/v53/github"
	"golang.org/x/oauth2"
)

// Fetcher 实现了 port.Scouter 接口，从 GitHub 实时拉取某个用户的仓库元数据
// 和本地清单相比多了 star 数、语言、topics 和 README 原文
type Fetcher struct {
	client *github.Client
	user   string
}

// NewFetcher 初始化 GitHub 客户端
// token 为空时走匿名访问，速率限制会很紧，够个人站点网络用了
func NewFetcher(token, user string) *Fetcher {
	var client *github.Client

	if token == "" {
		client = github.NewClient(nil)
	} else {
		ctx := context.Background()
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: token},
		)
		tc := oauth2.NewClient(ctx, ts)
		client = github.NewClient(tc)
	}

	return &Fetcher{client: client, user: user}
}

// Discover 列出用户全部公开仓库并换算成 RepoMeta
// 归档仓库和 fork 不进站点网络，直接跳过
func (f *Fetcher) Discover(ctx context.Context) ([]*domain.RepoMeta, error) {
	opts := &github.RepositoryListOptions{
		Type:        "owner",
		Sort:        "updated",
		ListOptions: github.ListOptions{PerPage: 100},
	}

	var all []*github.Repository
	err := common.Do(ctx, func() error {
		var apiErr error
		all, _, apiErr = f.client.Repositories.List(ctx, f.user, opts)
		return apiErr
	},
		common.WithMaxRetries(3),
		common.WithInitialDelay(time.Second),
	)
	if err != nil {
		return nil, common.WrapError(common.ErrCodeGitHubAPI, "拉取仓库列表失败", err)
	}

	var repos []*domain.RepoMeta
	for _, item := range all {
		if item.GetArchived() || item.GetFork() {
			continue
		}

		meta := &domain.RepoMeta{
			Name:        item.GetName(),
			Description: item.GetDescription(),
			Topics:      item.Topics,
			URL:         item.GetHTMLURL(),
			SiteURL:     item.GetHomepage(),
			Stars:       item.GetStargazersCount(),
			Language:    item.GetLanguage(),
			UpdatedAt:   item.GetUpdatedAt().Time,
		}

		// README 拉不到不算错，主题匹配少一个字段而已
		if readme, err := f.fetchReadme(ctx, item.GetName()); err == nil {
			meta.Readme = readme
		}

		repos = append(repos, meta)
	}

	return repos, nil
}

// fetchReadme 拉取并解码仓库 README
func (f *Fetcher) fetchReadme(ctx context.Context, repo string) (string, error) {
	var content *github.RepositoryContent
	err := common.Do(ctx, func() error {
		var apiErr error
		content, _, apiErr = f.client.Repositories.GetReadme(ctx, f.user, repo, nil)
		return apiErr
	},
		common.WithMaxRetries(2),
		common.WithInitialDelay(500*time.Millisecond),
	)
	if err != nil {
		return "", fmt.Errorf("拉取 README 失败: %w", err)
	}

	decoded, err := content.GetContent()
	if err != nil {
		return "", fmt.Errorf("解码 README 失败: %w", err)
	}
	return strings.TrimSpace(decoded), nil
}
