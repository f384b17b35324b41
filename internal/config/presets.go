package config

import (
	"fmt"
	"os"

	"github.com/clipsmith/clipsmith-go/internal/domain"
	"gopkg.in/yaml.v3"
)

// Platform guidance is soft prompt material, not a filter: it tells the
// model what tends to perform on each target without constraining output.
var defaultGuidance = map[domain.Platform]string{
	domain.PlatformTikTok: "TikTok favors raw, fast-cut moments with an immediate hook in the first second.",
	domain.PlatformReels:  "Instagram Reels favors polished, aesthetic moments and relatable storytelling.",
	domain.PlatformShorts: "YouTube Shorts favors clear payoffs and loop-friendly endings that drive rewatches.",
}

type presetsFile struct {
	Platforms map[string]string `yaml:"platforms"`
}

// LoadGuidance returns the per-platform guidance map, overlaying entries
// from the optional YAML preset file onto the built-in defaults.
func LoadGuidance(path string) (map[domain.Platform]string, error) {
	guidance := make(map[domain.Platform]string, len(defaultGuidance))
	for platform, text := range defaultGuidance {
		guidance[platform] = text
	}

	if path == "" {
		return guidance, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read presets file %s: %w", path, err)
	}

	var parsed presetsFile
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("parse presets file %s: %w", path, err)
	}

	for name, text := range parsed.Platforms {
		platform := domain.Platform(name)
		if !platform.IsValid() {
			return nil, fmt.Errorf("presets file %s: unknown platform %q", path, name)
		}
		guidance[platform] = text
	}

	return guidance, nil
}
