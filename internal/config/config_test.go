package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "book.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantErr error
		check   func(t *testing.T, cfg *Config)
	}{
		{
			name:    "full config",
			content: "title: Deliverance Star\nsource: book.md\noutput:\n  html: out/book.html\n  meta: out/book.json\n",
			check: func(t *testing.T, cfg *Config) {
				if cfg.Title != "Deliverance Star" {
					t.Errorf("Title = %q", cfg.Title)
				}
				if cfg.Source != "book.md" {
					t.Errorf("Source = %q", cfg.Source)
				}
				if cfg.Output.HTML != "out/book.html" || cfg.Output.Meta != "out/book.json" {
					t.Errorf("Output = %+v", cfg.Output)
				}
			},
		},
		{
			name:    "omitted outputs default",
			content: "source: book.md\n",
			check: func(t *testing.T, cfg *Config) {
				if cfg.Output.HTML != DefaultHTMLPath {
					t.Errorf("Output.HTML = %q, want %q", cfg.Output.HTML, DefaultHTMLPath)
				}
				if cfg.Output.Meta != DefaultMetaPath {
					t.Errorf("Output.Meta = %q, want %q", cfg.Output.Meta, DefaultMetaPath)
				}
			},
		},
		{
			name:    "no source loads partial config",
			content: "title: Outputs Only\noutput:\n  html: out/book.html\n",
			check: func(t *testing.T, cfg *Config) {
				if cfg.Source != "" {
					t.Errorf("Source = %q, want empty", cfg.Source)
				}
				if cfg.Output.HTML != "out/book.html" {
					t.Errorf("Output.HTML = %q", cfg.Output.HTML)
				}
				if cfg.Output.Meta != DefaultMetaPath {
					t.Errorf("Output.Meta = %q, want %q", cfg.Output.Meta, DefaultMetaPath)
				}
			},
		},
		{
			name:    "unknown field rejected",
			content: "source: book.md\nbogus: value\n",
			wantErr: ErrConfigParse,
		},
		{
			name:    "malformed yaml",
			content: "source: [unclosed\n",
			wantErr: ErrConfigParse,
		},
		{
			name:    "title too long",
			content: "source: book.md\ntitle: " + strings.Repeat("x", MaxTitleLength+1) + "\n",
			wantErr: ErrFieldTooLong,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg, err := LoadConfig(writeConfig(t, tt.content))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("LoadConfig() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadConfig() error = %v", err)
			}
			tt.check(t, cfg)
		})
	}
}

func TestLoadConfig_NotFound(t *testing.T) {
	t.Parallel()

	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("LoadConfig() error = %v, want ErrConfigNotFound", err)
	}
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if cfg.Output.HTML != DefaultHTMLPath || cfg.Output.Meta != DefaultMetaPath {
		t.Errorf("DefaultConfig() output = %+v", cfg.Output)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() on default = %v, want nil", err)
	}
}
