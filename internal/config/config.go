package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type Config struct {
	//===============
	//  Input scope
	//===============
	// Accepted source-URL shapes. A request whose URL contains none of
	// these substrings is rejected before any external capability runs.
	acceptedURLPatterns []string

	//===============
	// Cache
	//===============
	// Path of the single JSON file backing the result cache.
	cachePath string
	// Maximum number of cached entries before oldest-first eviction.
	cacheCapacity int

	//===============
	// Fetch
	//===============
	// Upper bound on downloaded video height; keeps downloads fast
	// since only the audio track matters.
	maxVideoHeight int

	//===============
	// Extraction
	//===============
	// Length of the audio clip submitted for recognition.
	clipDuration time.Duration
	// MP3 bitrate of the extracted clip.
	audioBitrate string
	// Sample rate of the extracted clip in Hz.
	audioSampleRate int

	//===============
	// Recognition
	//===============
	// HTTP endpoint of the fingerprint-detection service.
	recognizerEndpoint string
	// API key sent with each detection request.
	recognizerAPIKey string
	// Maximum time of a single recognition request.
	recognizerTimeout time.Duration
}

type configDTO struct {
	AcceptedURLPatterns []string      `json:"acceptedUrlPatterns,omitempty"`
	CachePath           string        `json:"cachePath,omitempty"`
	CacheCapacity       int           `json:"cacheCapacity,omitempty"`
	MaxVideoHeight      int           `json:"maxVideoHeight,omitempty"`
	ClipDuration        time.Duration `json:"clipDuration,omitempty"`
	AudioBitrate        string        `json:"audioBitrate,omitempty"`
	AudioSampleRate     int           `json:"audioSampleRate,omitempty"`
	RecognizerEndpoint  string        `json:"recognizerEndpoint,omitempty"`
	RecognizerAPIKey    string        `json:"recognizerApiKey,omitempty"`
	RecognizerTimeout   time.Duration `json:"recognizerTimeout,omitempty"`
}

func newConfigFromDTO(dto configDTO) (Config, error) {
	// Start with default config
	cfg, err := WithDefault().Build()
	if err != nil {
		return Config{}, err
	}

	// Only override fields the file actually provides.
	if len(dto.AcceptedURLPatterns) > 0 {
		cfg.acceptedURLPatterns = dto.AcceptedURLPatterns
	}
	if dto.CachePath != "" {
		cfg.cachePath = dto.CachePath
	}
	if dto.CacheCapacity != 0 {
		cfg.cacheCapacity = dto.CacheCapacity
	}
	if dto.MaxVideoHeight != 0 {
		cfg.maxVideoHeight = dto.MaxVideoHeight
	}
	if dto.ClipDuration != 0 {
		cfg.clipDuration = dto.ClipDuration
	}
	if dto.AudioBitrate != "" {
		cfg.audioBitrate = dto.AudioBitrate
	}
	if dto.AudioSampleRate != 0 {
		cfg.audioSampleRate = dto.AudioSampleRate
	}
	if dto.RecognizerEndpoint != "" {
		cfg.recognizerEndpoint = dto.RecognizerEndpoint
	}
	if dto.RecognizerAPIKey != "" {
		cfg.recognizerAPIKey = dto.RecognizerAPIKey
	}
	if dto.RecognizerTimeout != 0 {
		cfg.recognizerTimeout = dto.RecognizerTimeout
	}

	return cfg, nil
}

func WithConfigFile(path string) (Config, error) {
	_, err := os.Stat(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrFileDoesNotExist, err.Error())
	}
	configContent, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrReadConfigFail, err.Error())
	}
	cfgDTO := configDTO{}

	err = json.Unmarshal(configContent, &cfgDTO)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrConfigParsingFail, err.Error())
	}

	cfg, err := newConfigFromDTO(cfgDTO)
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// WithDefault creates a new Config populated with default values.
func WithDefault() *Config {
	defaultConfig := Config{
		acceptedURLPatterns: []string{
			"youtube.com/shorts/",
			"youtu.be/",
			"m.youtube.com/shorts/",
			"youtube.com/watch?v=",
		},
		cachePath:          "song_cache.json",
		cacheCapacity:      100,
		maxVideoHeight:     720,
		clipDuration:       15 * time.Second,
		audioBitrate:       "128k",
		audioSampleRate:    44100,
		recognizerEndpoint: "https://shazam.p.rapidapi.com/songs/v2/detect",
		recognizerAPIKey:   "",
		recognizerTimeout:  30 * time.Second,
	}
	return &defaultConfig
}

func (c *Config) WithAcceptedURLPatterns(patterns []string) *Config {
	c.acceptedURLPatterns = patterns
	return c
}

func (c *Config) WithCachePath(path string) *Config {
	c.cachePath = path
	return c
}

func (c *Config) WithCacheCapacity(capacity int) *Config {
	c.cacheCapacity = capacity
	return c
}

func (c *Config) WithMaxVideoHeight(height int) *Config {
	c.maxVideoHeight = height
	return c
}

func (c *Config) WithClipDuration(duration time.Duration) *Config {
	c.clipDuration = duration
	return c
}

func (c *Config) WithAudioBitrate(bitrate string) *Config {
	c.audioBitrate = bitrate
	return c
}

func (c *Config) WithAudioSampleRate(sampleRate int) *Config {
	c.audioSampleRate = sampleRate
	return c
}

func (c *Config) WithRecognizerEndpoint(endpoint string) *Config {
	c.recognizerEndpoint = endpoint
	return c
}

func (c *Config) WithRecognizerAPIKey(apiKey string) *Config {
	c.recognizerAPIKey = apiKey
	return c
}

func (c *Config) WithRecognizerTimeout(timeout time.Duration) *Config {
	c.recognizerTimeout = timeout
	return c
}

func (c *Config) Build() (Config, error) {
	if len(c.acceptedURLPatterns) == 0 {
		return Config{}, fmt.Errorf("%w: acceptedUrlPatterns cannot be empty", ErrInvalidConfig)
	}
	if c.cacheCapacity < 1 {
		return Config{}, fmt.Errorf("%w: cacheCapacity must be at least 1", ErrInvalidConfig)
	}
	if c.clipDuration < time.Second {
		return Config{}, fmt.Errorf("%w: clipDuration must be at least 1s", ErrInvalidConfig)
	}
	return *c, nil
}

func (c Config) AcceptedURLPatterns() []string {
	patterns := make([]string, len(c.acceptedURLPatterns))
	copy(patterns, c.acceptedURLPatterns)
	return patterns
}

func (c Config) CachePath() string {
	return c.cachePath
}

func (c Config) CacheCapacity() int {
	return c.cacheCapacity
}

func (c Config) MaxVideoHeight() int {
	return c.maxVideoHeight
}

func (c Config) ClipDuration() time.Duration {
	return c.clipDuration
}

func (c Config) AudioBitrate() string {
	return c.audioBitrate
}

func (c Config) AudioSampleRate() int {
	return c.audioSampleRate
}

func (c Config) RecognizerEndpoint() string {
	return c.recognizerEndpoint
}

func (c Config) RecognizerAPIKey() string {
	return c.recognizerAPIKey
}

func (c Config) RecognizerTimeout() time.Duration {
	return c.recognizerTimeout
}
