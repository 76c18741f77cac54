package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
llm:
  api_key: test-key
  model: gpt-4o
search:
  provider: tavily
  tavily:
    api_key: tvly-test
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}

	if cfg.Server.Addr != ":8080" {
		t.Errorf("Server.Addr = %q, want default :8080", cfg.Server.Addr)
	}
	if cfg.Engine.Horizon != 3 {
		t.Errorf("Engine.Horizon = %d, want default 3", cfg.Engine.Horizon)
	}
	if cfg.Engine.MaxArticles != 5 {
		t.Errorf("Engine.MaxArticles = %d, want default 5", cfg.Engine.MaxArticles)
	}
	if cfg.Concurrency.RPM != 60 || cfg.Concurrency.QPS != 1 {
		t.Errorf("Concurrency = %+v, want rpm 60 qps 1", cfg.Concurrency)
	}
	if cfg.Classifier.Model != "gpt-4o-mini" {
		t.Errorf("Classifier.Model = %q, want default gpt-4o-mini", cfg.Classifier.Model)
	}
}

func TestLoadConfig_RequiresAPIKey(t *testing.T) {
	path := writeConfig(t, `
llm:
  model: gpt-4o
`)
	if _, err := LoadConfig(path); err == nil {
		t.Error("LoadConfig() should reject a config without llm.api_key")
	}
}

func TestApplyDefaults_NormalizesHorizon(t *testing.T) {
	cases := []struct {
		in   int
		want int
	}{
		{0, 3}, {1, 3}, {3, 3}, {4, 3}, {6, 6}, {12, 3},
	}
	for _, tc := range cases {
		cfg := Config{Engine: EngineConfig{Horizon: tc.in}}
		cfg.ApplyDefaults()
		if cfg.Engine.Horizon != tc.want {
			t.Errorf("horizon %d normalized to %d, want %d", tc.in, cfg.Engine.Horizon, tc.want)
		}
	}
}

func TestApplyDefaults_CapsMaxArticles(t *testing.T) {
	cfg := Config{Engine: EngineConfig{MaxArticles: 20}}
	cfg.ApplyDefaults()
	if cfg.Engine.MaxArticles != 5 {
		t.Errorf("MaxArticles = %d, want out-of-range values reset to 5", cfg.Engine.MaxArticles)
	}
}
