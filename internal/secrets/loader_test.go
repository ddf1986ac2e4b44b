package secrets

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "token")
	if err := os.WriteFile(file, []byte("  from-file\n"), 0o600); err != nil {
		t.Fatalf("write token: %v", err)
	}
	empty := filepath.Join(dir, "empty")
	if err := os.WriteFile(empty, []byte("\n"), 0o600); err != nil {
		t.Fatalf("write empty: %v", err)
	}

	t.Setenv("RESUME_SCORER_TEST_TOKEN", " from-env ")

	tests := []struct {
		name    string
		src     Source
		expect  string
		wantErr string
	}{
		{name: "file wins", src: Source{Name: "token", Value: "inline", File: file}, expect: "from-file"},
		{name: "inline value", src: Source{Value: " inline "}, expect: "inline"},
		{name: "environment", src: Source{Env: "RESUME_SCORER_TEST_TOKEN"}, expect: "from-env"},
		{name: "value wins over env", src: Source{Value: "inline", Env: "RESUME_SCORER_TEST_TOKEN"}, expect: "inline"},
		{name: "empty file", src: Source{Name: "token", File: empty}, wantErr: "is empty"},
		{name: "missing file", src: Source{Name: "token", File: filepath.Join(dir, "nope")}, wantErr: "reading token"},
		{name: "nothing configured", src: Source{Name: "api key"}, wantErr: "api key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Load(tt.src)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestLoadOptional(t *testing.T) {
	got, err := LoadOptional(Source{Name: "token"})
	if err != nil || got != "" {
		t.Fatalf("expected empty secret without error, got %q, %v", got, err)
	}

	_, err = LoadOptional(Source{Name: "token", File: filepath.Join(t.TempDir(), "missing")})
	if err == nil || errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected read error, got %v", err)
	}
}
