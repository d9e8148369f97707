package listing

import (
	"context"
	"os"

	"alc-index-builder/internal/common"
	"alc-index-builder/internal/domain"

	"gopkg.in/yaml.v3"
)

// SiteConfig 站点清单文件的结构
// 这里集中了站点网络的全部静态配置：品牌标记、基础地址、仓库列表
type SiteConfig struct {
	SiteName      string             `yaml:"site_name"`
	BaseURL       string             `yaml:"base_url"`
	DomainMarkers []string           `yaml:"domain_markers,omitempty"`
	Repos         []*domain.RepoMeta `yaml:"repos"`
}

// Loader 实现了 port.Scouter 接口，从本地 YAML 清单读取仓库元数据
// 这是默认的数据源；需要实时数据时换 github.Fetcher
type Loader struct {
	path string
}

// NewLoader 创建清单加载器
func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Load 读取并解析清单文件
func (l *Loader) Load() (*SiteConfig, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, common.WrapError(common.ErrCodeConfig, "读取站点清单失败", err)
	}

	var cfg SiteConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, common.WrapError(common.ErrCodeConfig, "解析站点清单失败", err)
	}

	if cfg.SiteName == "" {
		cfg.SiteName = "ALC"
	}
	return &cfg, nil
}

// Discover 返回清单中的全部仓库
// 没有名字的条目直接丢弃，主题匹配对其它缺省字段都能优雅降级
func (l *Loader) Discover(ctx context.Context) ([]*domain.RepoMeta, error) {
	cfg, err := l.Load()
	if err != nil {
		return nil, err
	}

	var repos []*domain.RepoMeta
	for _, r := range cfg.Repos {
		if r == nil || r.Name == "" {
			continue
		}
		repos = append(repos, r)
	}
	return repos, nil
}
