package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Bin != "zli" {
		t.Errorf("Bin = %q, want zli", cfg.Bin)
	}
	if cfg.Workers != 4 {
		t.Errorf("Workers = %d, want 4", cfg.Workers)
	}
	if cfg.ChunkSize != 1<<30 {
		t.Errorf("ChunkSize = %d, want 1 GiB", cfg.ChunkSize)
	}
	if cfg.OutDir != "." {
		t.Errorf("OutDir = %q, want .", cfg.OutDir)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	content := `input: dataset.npy
bin: /opt/zli/bin/zli
workers: 8
chunk_size: 256MiB
out_dir: /data/out
progress: true
zstd_fallback: true
store: s3://archive-bucket
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if cfg.Input != "dataset.npy" {
		t.Errorf("Input = %q", cfg.Input)
	}
	if cfg.Bin != "/opt/zli/bin/zli" {
		t.Errorf("Bin = %q", cfg.Bin)
	}
	if cfg.Workers != 8 {
		t.Errorf("Workers = %d, want 8", cfg.Workers)
	}
	if cfg.ChunkSize != 256*1024*1024 {
		t.Errorf("ChunkSize = %d, want 256 MiB", cfg.ChunkSize)
	}
	if cfg.OutDir != "/data/out" {
		t.Errorf("OutDir = %q", cfg.OutDir)
	}
	if !cfg.Progress || !cfg.ZstdFallback {
		t.Errorf("Progress/ZstdFallback = %v/%v, want true/true", cfg.Progress, cfg.ZstdFallback)
	}
	if cfg.Store != "s3://archive-bucket" {
		t.Errorf("Store = %q", cfg.Store)
	}
}

func TestLoadFromFilePartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	if err := os.WriteFile(path, []byte("workers: 2\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if cfg.Workers != 2 {
		t.Errorf("Workers = %d, want 2", cfg.Workers)
	}
	if cfg.Bin != "zli" || cfg.ChunkSize != 1<<30 {
		t.Errorf("defaults lost: Bin=%q ChunkSize=%d", cfg.Bin, cfg.ChunkSize)
	}
}

func TestLoadFromFileInvalidChunkSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	if err := os.WriteFile(path, []byte("chunk_size: huge\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadFromFile(path); err == nil {
		t.Fatal("expected error for invalid chunk_size")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("ZLI_CHUNK_INPUT", "env.npy")
	t.Setenv("ZLI_CHUNK_WORKERS", "16")
	t.Setenv("ZLI_CHUNK_CHUNK_SIZE", "512MiB")
	t.Setenv("ZLI_CHUNK_KEEP_FAILED", "1")

	cfg := Default()
	if err := cfg.LoadFromEnv(); err != nil {
		t.Fatalf("LoadFromEnv: %v", err)
	}
	if cfg.Input != "env.npy" {
		t.Errorf("Input = %q", cfg.Input)
	}
	if cfg.Workers != 16 {
		t.Errorf("Workers = %d, want 16", cfg.Workers)
	}
	if cfg.ChunkSize != 512*1024*1024 {
		t.Errorf("ChunkSize = %d, want 512 MiB", cfg.ChunkSize)
	}
	if !cfg.KeepFailed {
		t.Error("KeepFailed should be true")
	}
}

func TestLoadFromEnvInvalidWorkers(t *testing.T) {
	t.Setenv("ZLI_CHUNK_WORKERS", "many")
	cfg := Default()
	if err := cfg.LoadFromEnv(); err == nil {
		t.Fatal("expected error for invalid workers")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"zero workers", func(c *Config) { c.Workers = 0 }, true},
		{"negative workers", func(c *Config) { c.Workers = -1 }, true},
		{"zero chunk size", func(c *Config) { c.ChunkSize = 0 }, true},
		{"empty bin", func(c *Config) { c.Bin = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestMerge(t *testing.T) {
	base := Default()
	merged := base.Merge(Config{
		Input:   "cli.npy",
		Workers: 32,
	})
	if merged.Input != "cli.npy" {
		t.Errorf("Input = %q", merged.Input)
	}
	if merged.Workers != 32 {
		t.Errorf("Workers = %d, want 32", merged.Workers)
	}
	// Untouched fields keep base values.
	if merged.Bin != "zli" || merged.ChunkSize != 1<<30 {
		t.Errorf("base values lost: Bin=%q ChunkSize=%d", merged.Bin, merged.ChunkSize)
	}
}
