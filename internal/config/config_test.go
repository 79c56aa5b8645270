package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rohmanhakim/song-finder/internal/config"
)

func TestWithDefault(t *testing.T) {
	cfg, err := config.WithDefault().Build()
	if err != nil {
		t.Fatalf("should not have any error, got %v", err)
	}

	if len(cfg.AcceptedURLPatterns()) != 4 {
		t.Errorf("expected 4 accepted URL patterns, got %d", len(cfg.AcceptedURLPatterns()))
	}
	if cfg.CachePath() != "song_cache.json" {
		t.Errorf("expected cache path song_cache.json, got %s", cfg.CachePath())
	}
	if cfg.CacheCapacity() != 100 {
		t.Errorf("expected cache capacity 100, got %d", cfg.CacheCapacity())
	}
	if cfg.MaxVideoHeight() != 720 {
		t.Errorf("expected max video height 720, got %d", cfg.MaxVideoHeight())
	}
	if cfg.ClipDuration() != 15*time.Second {
		t.Errorf("expected clip duration 15s, got %v", cfg.ClipDuration())
	}
	if cfg.AudioBitrate() != "128k" {
		t.Errorf("expected audio bitrate 128k, got %s", cfg.AudioBitrate())
	}
	if cfg.AudioSampleRate() != 44100 {
		t.Errorf("expected sample rate 44100, got %d", cfg.AudioSampleRate())
	}
	if cfg.RecognizerTimeout() != 30*time.Second {
		t.Errorf("expected recognizer timeout 30s, got %v", cfg.RecognizerTimeout())
	}
}

func TestBuilderOverrides(t *testing.T) {
	cfg, err := config.WithDefault().
		WithCachePath("/tmp/alt_cache.json").
		WithCacheCapacity(10).
		WithClipDuration(20 * time.Second).
		WithMaxVideoHeight(480).
		WithRecognizerEndpoint("https://recognizer.local/detect").
		WithRecognizerAPIKey("secret").
		Build()
	if err != nil {
		t.Fatalf("should not have any error, got %v", err)
	}

	if cfg.CachePath() != "/tmp/alt_cache.json" {
		t.Errorf("expected overridden cache path, got %s", cfg.CachePath())
	}
	if cfg.CacheCapacity() != 10 {
		t.Errorf("expected cache capacity 10, got %d", cfg.CacheCapacity())
	}
	if cfg.ClipDuration() != 20*time.Second {
		t.Errorf("expected clip duration 20s, got %v", cfg.ClipDuration())
	}
	if cfg.MaxVideoHeight() != 480 {
		t.Errorf("expected max video height 480, got %d", cfg.MaxVideoHeight())
	}
	if cfg.RecognizerEndpoint() != "https://recognizer.local/detect" {
		t.Errorf("unexpected recognizer endpoint %s", cfg.RecognizerEndpoint())
	}
	if cfg.RecognizerAPIKey() != "secret" {
		t.Errorf("unexpected recognizer API key %s", cfg.RecognizerAPIKey())
	}
}

func TestBuild_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		builder *config.Config
	}{
		{
			name:    "empty accepted patterns",
			builder: config.WithDefault().WithAcceptedURLPatterns(nil),
		},
		{
			name:    "zero cache capacity",
			builder: config.WithDefault().WithCacheCapacity(0),
		},
		{
			name:    "sub-second clip duration",
			builder: config.WithDefault().WithClipDuration(100 * time.Millisecond),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.builder.Build()
			if !errors.Is(err, config.ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestWithConfigFile(t *testing.T) {
	content := `{
		"cachePath": "from_file.json",
		"cacheCapacity": 25,
		"maxVideoHeight": 1080,
		"recognizerEndpoint": "https://recognizer.local/detect"
	}`
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.WithConfigFile(path)
	if err != nil {
		t.Fatalf("should not have any error, got %v", err)
	}

	if cfg.CachePath() != "from_file.json" {
		t.Errorf("expected cache path from file, got %s", cfg.CachePath())
	}
	if cfg.CacheCapacity() != 25 {
		t.Errorf("expected cache capacity 25, got %d", cfg.CacheCapacity())
	}
	if cfg.MaxVideoHeight() != 1080 {
		t.Errorf("expected max video height 1080, got %d", cfg.MaxVideoHeight())
	}
	// Unspecified fields keep defaults.
	if cfg.ClipDuration() != 15*time.Second {
		t.Errorf("expected default clip duration, got %v", cfg.ClipDuration())
	}
	if len(cfg.AcceptedURLPatterns()) != 4 {
		t.Errorf("expected default accepted patterns, got %v", cfg.AcceptedURLPatterns())
	}
}

func TestWithConfigFile_Missing(t *testing.T) {
	_, err := config.WithConfigFile(filepath.Join(t.TempDir(), "nope.json"))
	if !errors.Is(err, config.ErrFileDoesNotExist) {
		t.Errorf("expected ErrFileDoesNotExist, got %v", err)
	}
}

func TestWithConfigFile_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{broken"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := config.WithConfigFile(path)
	if !errors.Is(err, config.ErrConfigParsingFail) {
		t.Errorf("expected ErrConfigParsingFail, got %v", err)
	}
}
