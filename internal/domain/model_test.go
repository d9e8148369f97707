package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRepoMeta_SearchText(t *testing.T) {
	meta := &RepoMeta{
		Name:        "Mario-Kart-Game",
		Description: "A fun Racing game",
		Topics:      []string{"Arcade", "fun"},
		Keywords:    []string{"Speed"},
		Readme:      "# Drive Fast",
	}

	text := meta.SearchText()
	assert.Equal(t, "mario-kart-game a fun racing game arcade fun speed # drive fast", text)

	// 缺省字段退化为空串，不报错
	empty := &RepoMeta{Name: "solo"}
	assert.Equal(t, "solo  ", empty.SearchText())
}

func TestValidationVerdict_FailedChecks(t *testing.T) {
	verdict := &ValidationVerdict{
		Passed: false,
		Score:  55,
		Results: map[string]*QualityCheckResult{
			"noJunkyText":           {Passed: true},
			"hasRequiredElements":   {Passed: false},
			"meetsQualityThreshold": {Passed: true},
			"hasRealContent":        {Passed: false},
			"isInteractive":         {Passed: true},
		},
	}

	// 顺序固定：按检查声明顺序输出
	assert.Equal(t, []string{"hasRequiredElements", "hasRealContent"}, verdict.FailedChecks())

	allPass := &ValidationVerdict{
		Passed: true,
		Results: map[string]*QualityCheckResult{
			"noJunkyText": {Passed: true},
		},
	}
	assert.Empty(t, allPass.FailedChecks())
}

func TestPageRecord_NeedsAttention(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name     string
		record   *PageRecord
		expected bool
	}{
		{
			name: "合格且在线",
			record: &PageRecord{
				ID:         "alc-wallet",
				Passed:     true,
				SiteOnline: true,
				BuiltAt:    now,
			},
			expected: false,
		},
		{
			name: "质检不合格",
			record: &PageRecord{
				ID:         "alc-lab",
				Passed:     false,
				SiteOnline: true,
				BuiltAt:    now,
			},
			expected: true,
		},
		{
			name: "站点离线",
			record: &PageRecord{
				ID:         "alc-shop",
				Passed:     true,
				SiteOnline: false,
				BuiltAt:    now,
			},
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.record.NeedsAttention())
		})
	}
}

func TestBuildReport_AllClear(t *testing.T) {
	clear := &BuildReport{SiteName: "ALC", Built: 5, Passed: 5}
	assert.True(t, clear.AllClear())

	withFailure := &BuildReport{
		SiteName: "ALC",
		Built:    5,
		Passed:   4,
		Failed:   []*PageRecord{{ID: "alc-mint", Passed: false}},
	}
	assert.False(t, withFailure.AllClear())

	withOffline := &BuildReport{
		SiteName: "ALC",
		Built:    5,
		Passed:   5,
		Offline:  []*SiteStatus{{RepoName: "alc-hub", Online: false, Error: "timeout"}},
	}
	assert.False(t, withOffline.AllClear())
}
