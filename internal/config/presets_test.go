package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/clipsmith/clipsmith-go/internal/domain"
)

func TestLoadGuidanceDefaults(t *testing.T) {
	guidance, err := LoadGuidance("")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	for _, platform := range []domain.Platform{domain.PlatformTikTok, domain.PlatformReels, domain.PlatformShorts} {
		if guidance[platform] == "" {
			t.Fatalf("missing default guidance for %s", platform)
		}
	}
}

func TestLoadGuidanceOverlaysFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.yaml")
	content := "platforms:\n  TikTok: \"Custom TikTok guidance.\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	guidance, err := LoadGuidance(path)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if guidance[domain.PlatformTikTok] != "Custom TikTok guidance." {
		t.Fatalf("overlay not applied: %q", guidance[domain.PlatformTikTok])
	}
	if guidance[domain.PlatformReels] == "" {
		t.Fatalf("untouched platforms must keep their defaults")
	}
}

func TestLoadGuidanceRejectsUnknownPlatform(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.yaml")
	content := "platforms:\n  Vine: \"Long gone.\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	_, err := LoadGuidance(path)
	if err == nil || !strings.Contains(err.Error(), "unknown platform") {
		t.Fatalf("expected unknown-platform error, got %v", err)
	}
}
