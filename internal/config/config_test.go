package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  host: "127.0.0.1"
  port: 9000
embedding:
  dimensions: 1024
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Host != "127.0.0.1" || cfg.Server.Port != 9000 {
		t.Errorf("unexpected server config: %+v", cfg.Server)
	}
	if cfg.Embedding.Dimensions != 1024 {
		t.Errorf("dimensions: got %d", cfg.Embedding.Dimensions)
	}
	if cfg.Debug {
		t.Error("debug should default to false when unset")
	}
}

func TestLoad_debugTrue(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
debug: true
server:
  host: "localhost"
  port: 8080
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Debug {
		t.Error("debug should be true when set in config")
	}
}

func TestLoad_expandPathDotSlashRelativeToConfigDir(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
embedding:
  model_path: "./models/bge-m3.onnx"
dataset:
  path: "./dev/creators.csv"
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	wantModel := filepath.Join(dir, "models", "bge-m3.onnx")
	if cfg.Embedding.ModelPath != wantModel {
		t.Errorf("model_path = %s, want %s", cfg.Embedding.ModelPath, wantModel)
	}
	wantData := filepath.Join(dir, "dev", "creators.csv")
	if cfg.Dataset.Path != wantData {
		t.Errorf("dataset path = %s, want %s", cfg.Dataset.Path, wantData)
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)
	if cfg.Server.Host != "localhost" {
		t.Errorf("default host: got %s", cfg.Server.Host)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("default port: got %d", cfg.Server.Port)
	}
	if cfg.Embedding.Dimensions != 1024 {
		t.Errorf("default dimensions: got %d", cfg.Embedding.Dimensions)
	}
	if cfg.Embedding.QueryPrefix != DefaultQueryPrefix {
		t.Errorf("default query prefix: got %q", cfg.Embedding.QueryPrefix)
	}
	if cfg.Match.DefaultTopK != 10 {
		t.Errorf("default top-k: got %d", cfg.Match.DefaultTopK)
	}
	if cfg.Match.MaxTopK != 50 {
		t.Errorf("default max top-k: got %d", cfg.Match.MaxTopK)
	}
	if cfg.Server.MaxUploadBytes != 32<<20 {
		t.Errorf("default max upload bytes: got %d", cfg.Server.MaxUploadBytes)
	}
}

func TestApplyDefaults_keepsExplicitValues(t *testing.T) {
	cfg := &Config{
		Embedding: EmbeddingConfig{QueryPrefix: "query: ", Dimensions: 768},
		Match:     MatchConfig{DefaultTopK: 5},
	}
	ApplyDefaults(cfg)
	if cfg.Embedding.QueryPrefix != "query: " {
		t.Errorf("query prefix overridden: got %q", cfg.Embedding.QueryPrefix)
	}
	if cfg.Embedding.Dimensions != 768 {
		t.Errorf("dimensions overridden: got %d", cfg.Embedding.Dimensions)
	}
	if cfg.Match.DefaultTopK != 5 {
		t.Errorf("default top-k overridden: got %d", cfg.Match.DefaultTopK)
	}
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "saved.yaml")
	cfg := &Config{
		Server: ServerConfig{Host: "localhost", Port: 9090},
	}
	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Server.Port != 9090 {
		t.Errorf("loaded port: got %d", loaded.Server.Port)
	}
}
