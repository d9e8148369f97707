package probe

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"alc-index-builder/internal/common"
	"alc-index-builder/internal/domain"
)

// SiteProber 实现了 port.Prober 接口
// 对兄弟站点做并发连通性探测，单个站点的失败只会变成一条离线记录
type SiteProber struct {
	client        *http.Client
	maxGoroutines int // 最大并发数
	perSiteWait   time.Duration
}

// NewSiteProber 创建探测器
func NewSiteProber() *SiteProber {
	return &SiteProber{
		client:        &http.Client{Timeout: 10 * time.Second},
		maxGoroutines: 3,                // 默认并发数为3
		perSiteWait:   15 * time.Second, // 单站点整体超时(含重试)
	}
}

// SetMaxGoroutines 设置最大并发数
func (p *SiteProber) SetMaxGoroutines(max int) {
	if max > 0 {
		p.maxGoroutines = max
	}
}

// CheckAll 并发探测所有带站点地址的仓库
// 没配 site_url 的仓库直接跳过，不出现在结果里
func (p *SiteProber) CheckAll(ctx context.Context, repos []*domain.RepoMeta) []*domain.SiteStatus {
	var targets []*domain.RepoMeta
	for _, r := range repos {
		if r != nil && r.SiteURL != "" {
			targets = append(targets, r)
		}
	}
	if len(targets) == 0 {
		return nil
	}

	fmt.Printf("📡 开始连通性探测，共 %d 个站点，最大并发数: %d\n", len(targets), p.maxGoroutines)

	jobs := make(chan *domain.RepoMeta, len(targets))
	results := make(chan *domain.SiteStatus, len(targets))

	var wg sync.WaitGroup
	for i := 0; i < p.maxGoroutines; i++ {
		wg.Add(1)
		go p.checkWorker(ctx, jobs, results, &wg, i+1)
	}

	for _, r := range targets {
		jobs <- r
	}
	close(jobs)

	wg.Wait()
	close(results)

	statuses := make([]*domain.SiteStatus, 0, len(targets))
	for s := range results {
		statuses = append(statuses, s)
	}
	return statuses
}

// checkWorker 工作协程，处理单个站点的探测
func (p *SiteProber) checkWorker(
	ctx context.Context,
	jobs <-chan *domain.RepoMeta,
	results chan<- *domain.SiteStatus,
	wg *sync.WaitGroup,
	workerID int,
) {
	defer wg.Done()

	for repo := range jobs {
		siteCtx, cancel := context.WithTimeout(ctx, p.perSiteWait)
		status := p.CheckOne(siteCtx, repo.Name, repo.SiteURL)
		cancel()

		if status.Online {
			fmt.Printf("   [Worker-%d] ✅ %s 在线 (%d, %dms)\n", workerID, repo.Name, status.StatusCode, status.LatencyMS)
		} else {
			fmt.Printf("   [Worker-%d] ❌ %s 离线: %s\n", workerID, repo.Name, status.Error)
		}
		results <- status
	}
}

// CheckOne 探测单个站点
// 任何传输层失败都折算成 Online=false，绝不向上抛错
func (p *SiteProber) CheckOne(ctx context.Context, name, siteURL string) *domain.SiteStatus {
	status := &domain.SiteStatus{
		RepoName: name,
		URL:      siteURL,
	}

	start := time.Now()
	err := common.Do(ctx, func() error {
		req, reqErr := http.NewRequestWithContext(ctx, http.MethodGet, siteURL, nil)
		if reqErr != nil {
			return reqErr
		}

		resp, getErr := p.client.Do(req)
		if getErr != nil {
			return getErr
		}
		defer resp.Body.Close()

		status.StatusCode = resp.StatusCode
		if resp.StatusCode >= 400 {
			return fmt.Errorf("站点返回状态码 %d", resp.StatusCode)
		}
		return nil
	},
		common.WithMaxRetries(1),
		common.WithInitialDelay(300*time.Millisecond),
		common.WithJitter(),
	)
	status.LatencyMS = time.Since(start).Milliseconds()

	if err != nil {
		status.Online = false
		status.Error = err.Error()
		return status
	}

	status.Online = true
	return status
}
