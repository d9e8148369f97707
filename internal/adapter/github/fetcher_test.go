package github

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/google/go-github/v53/github"
	"github.com/stretchr/testify/assert"
)

// setupMockGitHubServer 创建一个模拟的 GitHub API 服务器
func setupMockGitHubServer(t *testing.T, handler http.Handler) (*httptest.Server, *Fetcher) {
	server := httptest.NewServer(handler)

	client := github.NewClient(nil)
	baseURL, _ := url.Parse(server.URL + "/")
	client.BaseURL = baseURL

	fetcher := &Fetcher{client: client, user: "testuser"}
	return server, fetcher
}

func mockRepo(name, description, homepage, language string, topics []string, stars int, archived, fork bool) *github.Repository {
	return &github.Repository{
		Name:            github.String(name),
		FullName:        github.String("testuser/" + name),
		HTMLURL:         github.String("https://github.com/testuser/" + name),
		Description:     github.String(description),
		Homepage:        github.String(homepage),
		Language:        github.String(language),
		Topics:          topics,
		StargazersCount: github.Int(stars),
		Archived:        github.Bool(archived),
		Fork:            github.Bool(fork),
	}
}

func TestFetcher_Discover(t *testing.T) {
	repos := []*github.Repository{
		mockRepo("alc-kart", "A fun racing game", "https://kart.alc.example.com", "JavaScript", []string{"game", "arcade"}, 12, false, false),
		mockRepo("alc-circuit", "Arduino sensor project", "", "C++", nil, 3, false, false),
		mockRepo("old-archive", "retired project", "", "Go", nil, 1, true, false),
		mockRepo("someones-lib", "forked dependency", "", "Go", nil, 0, false, true),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/users/testuser/repos", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(repos)
	})
	mux.HandleFunc("/repos/testuser/alc-kart/readme", func(w http.ResponseWriter, r *http.Request) {
		content := base64.StdEncoding.EncodeToString([]byte("# Kart\nDrive fast."))
		json.NewEncoder(w).Encode(&github.RepositoryContent{
			Type:     github.String("file"),
			Encoding: github.String("base64"),
			Content:  github.String(content),
		})
	})
	// alc-circuit 没有 README，返回 404

	server, fetcher := setupMockGitHubServer(t, mux)
	defer server.Close()

	result, err := fetcher.Discover(context.Background())
	assert.NoError(t, err)

	// 归档和 fork 被跳过
	assert.Len(t, result, 2)

	assert.Equal(t, "alc-kart", result[0].Name)
	assert.Equal(t, "A fun racing game", result[0].Description)
	assert.Equal(t, "https://kart.alc.example.com", result[0].SiteURL)
	assert.Equal(t, []string{"game", "arcade"}, result[0].Topics)
	assert.Equal(t, 12, result[0].Stars)
	assert.Equal(t, "# Kart\nDrive fast.", result[0].Readme)

	// README 404 不是错误，只是字段为空
	assert.Equal(t, "alc-circuit", result[1].Name)
	assert.Equal(t, "", result[1].Readme)
}

func TestFetcher_DiscoverAPIError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/testuser/repos", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	server, fetcher := setupMockGitHubServer(t, mux)
	defer server.Close()

	_, err := fetcher.Discover(context.Background())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "GITHUB_API_ERROR")
}

func TestFetcher_EmptyRepoList(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/testuser/repos", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]*github.Repository{})
	})

	server, fetcher := setupMockGitHubServer(t, mux)
	defer server.Close()

	result, err := fetcher.Discover(context.Background())
	assert.NoError(t, err)
	assert.Empty(t, result)
}

func TestNewFetcher(t *testing.T) {
	// 无 token 和有 token 都能构造出客户端
	assert.NotNil(t, NewFetcher("", "someone").client)
	assert.NotNil(t, NewFetcher("ghp_faketoken", "someone").client)
}
