package cluster

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pressworks/newshound/internal/config"
	"github.com/pressworks/newshound/internal/types"
)

var testLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

// newFakeLLM serves a fixed model response over the chat-completion API.
func newFakeLLM(t *testing.T, content string) (*LLMClient, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			http.NotFound(w, r)
			return
		}
		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": content}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))

	cfg := config.Cluster{
		Provider: "custom",
		Model:    "test-model",
		Endpoint: srv.URL,
		APIKey:   "test-key",
	}
	return NewLLMClient(cfg, testLogger), srv
}

func testArticles(n int) []*types.ArticleRecord {
	out := make([]*types.ArticleRecord, n)
	for i := range out {
		rec := types.NewArticleRecord("Example News", "technology", "asia", "japan", "https://example.com/x")
		rec.Title = "Article " + string(rune('A'+i))
		rec.SetContent("Some content.")
		out[i] = rec
	}
	return out
}

func TestClusterParsesFencedResponse(t *testing.T) {
	response := "```json\n" + `{"themes": [{"name": "AI", "description": "AI news", "article_ids": [0, 1]}]}` + "\n```"
	llm, srv := newFakeLLM(t, response)
	defer srv.Close()

	c := NewClusterer(llm, testLogger)
	out, err := c.Cluster(context.Background(), testArticles(2))
	if err != nil {
		t.Fatalf("cluster: %v", err)
	}

	if len(out.Themes) != 1 {
		t.Fatalf("expected 1 theme, got %d", len(out.Themes))
	}
	if out.Themes[0].Name != "AI" || len(out.Themes[0].Articles) != 2 {
		t.Errorf("theme: %+v", out.Themes[0])
	}
	if out.Metadata.TotalArticles != 2 {
		t.Errorf("metadata: %+v", out.Metadata)
	}
}

func TestClusterMalformedResponseIsTotalFailure(t *testing.T) {
	llm, srv := newFakeLLM(t, "I could not produce JSON, sorry.")
	defer srv.Close()

	c := NewClusterer(llm, testLogger)
	_, err := c.Cluster(context.Background(), testArticles(2))
	var cerr *types.ClusterError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected ClusterError, got %v", err)
	}
}

func TestClusterNoThemesIsFailure(t *testing.T) {
	llm, srv := newFakeLLM(t, `{"themes": []}`)
	defer srv.Close()

	c := NewClusterer(llm, testLogger)
	_, err := c.Cluster(context.Background(), testArticles(1))
	if !errors.Is(err, types.ErrNoThemes) {
		t.Fatalf("expected ErrNoThemes, got %v", err)
	}
}

func TestClusterSkipsOutOfRangeIDsAndEmptyThemes(t *testing.T) {
	response := `{"themes": [
		{"name": "Real", "description": "d", "article_ids": [0, 99, -1]},
		{"name": "Ghost", "description": "d", "article_ids": [42]},
		{"name": "", "description": "d", "article_ids": [1]}
	]}`
	llm, srv := newFakeLLM(t, response)
	defer srv.Close()

	c := NewClusterer(llm, testLogger)
	out, err := c.Cluster(context.Background(), testArticles(2))
	if err != nil {
		t.Fatalf("cluster: %v", err)
	}

	if len(out.Themes) != 2 {
		t.Fatalf("expected 2 surviving themes, got %d", len(out.Themes))
	}
	if len(out.Themes[0].Articles) != 1 {
		t.Errorf("out-of-range IDs should be dropped: %+v", out.Themes[0])
	}
	if out.Themes[1].Name != "Unnamed Theme" {
		t.Errorf("expected the unnamed default, got %q", out.Themes[1].Name)
	}
}

func TestClusterEmptyInput(t *testing.T) {
	llm, srv := newFakeLLM(t, `{"themes": []}`)
	defer srv.Close()

	c := NewClusterer(llm, testLogger)
	if _, err := c.Cluster(context.Background(), nil); err == nil {
		t.Error("expected an error for empty input")
	}
}

func TestGenerateWithoutAPIKey(t *testing.T) {
	llm := NewLLMClient(config.Cluster{Provider: "openai"}, testLogger)
	_, err := llm.Generate(context.Background(), "", "hi")
	if !errors.Is(err, types.ErrNoAPIKey) {
		t.Errorf("expected ErrNoAPIKey, got %v", err)
	}
}

func TestStripFences(t *testing.T) {
	cases := map[string]string{
		"```json\n{\"a\":1}\n```": `{"a":1}`,
		"```\n{\"a\":1}\n```":     `{"a":1}`,
		`{"a":1}`:                 `{"a":1}`,
		"  {\"a\":1}  ":           `{"a":1}`,
	}
	for in, want := range cases {
		if got := stripFences(in); got != want {
			t.Errorf("stripFences(%q): expected %q, got %q", in, want, got)
		}
	}
}

func TestSnippetRuneSafe(t *testing.T) {
	s := strings.Repeat("日", 10)
	got := snippet(s, 5)
	if got != strings.Repeat("日", 5)+"..." {
		t.Errorf("snippet: got %q", got)
	}
	if snippet("short", 300) != "short" {
		t.Error("short strings must pass through untruncated")
	}
}

func TestLoadArticlesFromCollectionFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "articles.json")
	data, _ := json.Marshal(testArticles(3))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	articles, err := LoadArticles(path, testLogger)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(articles) != 3 {
		t.Errorf("expected 3 articles, got %d", len(articles))
	}
}

func TestLoadArticlesFromDirectorySkipsMalformed(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "articles")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}

	good, _ := json.Marshal(testArticles(1)[0])
	os.WriteFile(filepath.Join(sub, "good.json"), good, 0o644)
	os.WriteFile(filepath.Join(sub, "bad.json"), []byte("{not json"), 0o644)

	articles, err := LoadArticles(dir, testLogger)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(articles) != 1 {
		t.Errorf("expected the malformed file to be skipped, got %d articles", len(articles))
	}
}

func TestWriteJSONAndHTML(t *testing.T) {
	dir := t.TempDir()
	clustered := &Clustered{
		Themes: []Theme{
			{Name: "AI", Description: "d", Articles: testArticles(1)},
		},
		Metadata: Metadata{TotalArticles: 1, ClusteredAt: "2026-08-25T00:00:00Z"},
	}

	jsonPath := filepath.Join(dir, "themes.json")
	if err := WriteJSON(clustered, jsonPath); err != nil {
		t.Fatalf("write json: %v", err)
	}
	var back Clustered
	raw, _ := os.ReadFile(jsonPath)
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("reparse: %v", err)
	}
	if back.Metadata.TotalArticles != 1 {
		t.Errorf("metadata lost: %+v", back.Metadata)
	}

	htmlPath := filepath.Join(dir, "themes.html")
	if err := WriteHTML(clustered, htmlPath); err != nil {
		t.Fatalf("write html: %v", err)
	}
	html, _ := os.ReadFile(htmlPath)
	if !strings.Contains(string(html), "AI") || !strings.Contains(string(html), "article-card") {
		t.Error("html report missing expected content")
	}
}
