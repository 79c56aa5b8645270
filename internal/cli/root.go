package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/rohmanhakim/song-finder/internal/build"
	"github.com/rohmanhakim/song-finder/internal/cache"
	"github.com/rohmanhakim/song-finder/internal/config"
	"github.com/rohmanhakim/song-finder/internal/extractor"
	"github.com/rohmanhakim/song-finder/internal/fetcher"
	"github.com/rohmanhakim/song-finder/internal/metadata"
	"github.com/rohmanhakim/song-finder/internal/pipeline"
	"github.com/rohmanhakim/song-finder/internal/recognizer"
	"github.com/rohmanhakim/song-finder/internal/song"
)

var (
	cfgFile            string
	cachePath          string
	cacheCapacity      int
	maxVideoHeight     int
	clipDuration       time.Duration
	audioBitrate       string
	audioSampleRate    int
	recognizerEndpoint string
	recognizerAPIKey   string
	recognizerTimeout  time.Duration
)

// Environment variables consulted for the recognizer API key, in
// order. A .env file in the working directory is loaded first.
var apiKeyEnvVars = []string{"SONG_FINDER_API_KEY", "RAPID_API_KEY"}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "song-finder <video-url>",
	Short: "Identify the song playing in a short video.",
	Long: `song-finder is a CLI application that identifies the song playing in a
short video. It downloads the video, extracts a short audio clip, and
submits the clip to a fingerprint recognition service.

Successful identifications are cached, so asking about the same URL
again answers instantly without re-downloading anything.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := InitConfig()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		pipe := newPipeline(cfg)
		outcome := pipe.Identify(ctx, args[0])
		renderOutcome(os.Stdout, outcome)
		if !outcome.Success {
			os.Exit(1)
		}
	},
}

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or reset the stored identification results.",
}

var cacheSizeCmd = &cobra.Command{
	Use:   "size",
	Short: "Print the number of cached identifications.",
	Run: func(cmd *cobra.Command, args []string) {
		pipe := newPipeline(InitConfig())
		fmt.Printf("%d\n", pipe.CacheSize())
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Drop every cached identification.",
	Run: func(cmd *cobra.Command, args []string) {
		pipe := newPipeline(InitConfig())
		pipe.ClearCache()
		fmt.Println("Cache cleared")
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information.",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(build.FullVersion())
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// A missing .env file is not an error; the API key can also come
	// from flags or the process environment.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config-file", "", "config file path (e.g., /home/myuser/config.json)")
	rootCmd.PersistentFlags().StringVar(&cachePath, "cache-file", "", "path of the JSON file holding cached results")
	rootCmd.PersistentFlags().IntVar(&cacheCapacity, "cache-capacity", 0, "maximum number of cached results before the oldest is dropped")
	rootCmd.PersistentFlags().IntVar(&maxVideoHeight, "max-video-height", 0, "upper bound on downloaded video height")
	rootCmd.PersistentFlags().DurationVar(&clipDuration, "clip-duration", 0, "length of the audio clip submitted for recognition")
	rootCmd.PersistentFlags().StringVar(&audioBitrate, "audio-bitrate", "", "MP3 bitrate of the extracted clip (e.g., 128k)")
	rootCmd.PersistentFlags().IntVar(&audioSampleRate, "audio-sample-rate", 0, "sample rate of the extracted clip in Hz")
	rootCmd.PersistentFlags().StringVar(&recognizerEndpoint, "recognizer-endpoint", "", "HTTP endpoint of the recognition service")
	rootCmd.PersistentFlags().StringVar(&recognizerAPIKey, "api-key", "", "recognition service API key (overrides environment)")
	rootCmd.PersistentFlags().DurationVar(&recognizerTimeout, "timeout", 0, "timeout for a single recognition request")

	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(versionCmd)
	cacheCmd.AddCommand(cacheSizeCmd)
	cacheCmd.AddCommand(cacheClearCmd)
}

// InitConfig reads in config file and ENV variables if set.
func InitConfig() config.Config {
	cfg, err := InitConfigWithError()
	if err != nil {
		fmt.Printf("Error: %s\n", err)
		os.Exit(1)
	}
	return cfg
}

// InitConfigWithError reads in config file and ENV variables if set,
// returning any errors. This makes it easier to test error cases.
func InitConfigWithError() (config.Config, error) {
	if cfgFile != "" {
		cfg, err := config.WithConfigFile(cfgFile)
		if err != nil {
			return cfg, fmt.Errorf("error initializing config from file: %w", err)
		}
		return cfg, nil
	}

	// Start with default config and apply overrides using method chaining
	configBuilder := config.WithDefault()

	if cachePath != "" {
		configBuilder = configBuilder.WithCachePath(cachePath)
	}

	if cacheCapacity > 0 {
		configBuilder = configBuilder.WithCacheCapacity(cacheCapacity)
	}

	if maxVideoHeight > 0 {
		configBuilder = configBuilder.WithMaxVideoHeight(maxVideoHeight)
	}

	if clipDuration > 0 {
		configBuilder = configBuilder.WithClipDuration(clipDuration)
	}

	if audioBitrate != "" {
		configBuilder = configBuilder.WithAudioBitrate(audioBitrate)
	}

	if audioSampleRate > 0 {
		configBuilder = configBuilder.WithAudioSampleRate(audioSampleRate)
	}

	if recognizerEndpoint != "" {
		configBuilder = configBuilder.WithRecognizerEndpoint(recognizerEndpoint)
	}

	if apiKey := resolveAPIKey(); apiKey != "" {
		configBuilder = configBuilder.WithRecognizerAPIKey(apiKey)
	}

	if recognizerTimeout > 0 {
		configBuilder = configBuilder.WithRecognizerTimeout(recognizerTimeout)
	}

	cfg, err := configBuilder.Build()
	if err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// resolveAPIKey prefers the flag over the environment.
func resolveAPIKey() string {
	if recognizerAPIKey != "" {
		return recognizerAPIKey
	}
	for _, envVar := range apiKeyEnvVars {
		if key := os.Getenv(envVar); key != "" {
			return key
		}
	}
	return ""
}

// newPipeline wires the capabilities the way production runs them.
func newPipeline(cfg config.Config) pipeline.Pipeline {
	recorder := metadata.NewRecorder(nil)
	resultCache := cache.New(cfg.CachePath(), cfg.CacheCapacity(), &recorder)
	mediaFetcher := fetcher.NewYtdlpFetcher(&recorder, cfg.MaxVideoHeight())
	audioExtractor := extractor.NewFFmpegExtractor(&recorder, cfg.AudioBitrate(), cfg.AudioSampleRate())
	songRecognizer := recognizer.NewShazamRecognizer(
		&recorder,
		cfg.RecognizerEndpoint(),
		cfg.RecognizerAPIKey(),
		cfg.RecognizerTimeout(),
	)
	return pipeline.New(cfg, resultCache, &mediaFetcher, &audioExtractor, &songRecognizer, &recorder)
}

func renderOutcome(w io.Writer, outcome song.Outcome) {
	if !outcome.Success {
		fmt.Fprintf(w, "Identification failed (%s): %s\n", outcome.Kind, outcome.Message)
		if hint := hintFor(outcome.Kind); hint != "" {
			fmt.Fprintf(w, "Hint: %s\n", hint)
		}
		return
	}

	meta := outcome.Song
	fmt.Fprintf(w, "Title:       %s\n", meta.Title)
	fmt.Fprintf(w, "Artist:      %s\n", meta.Artist)
	optional := []struct {
		label string
		value string
	}{
		{"Album", meta.Album},
		{"Released", meta.ReleaseDate},
		{"Label", meta.Label},
		{"Genre", meta.Genre},
		{"Cover Art", meta.CoverArtURL},
		{"Shazam", meta.ShazamURL},
		{"Spotify", meta.SpotifyURL},
		{"Apple Music", meta.AppleMusicURL},
	}
	for _, field := range optional {
		if field.value != "" {
			fmt.Fprintf(w, "%-12s %s\n", field.label+":", field.value)
		}
	}
}

func ResetFlags() {
	cfgFile = ""
	cachePath = ""
	cacheCapacity = 0
	maxVideoHeight = 0
	clipDuration = 0
	audioBitrate = ""
	audioSampleRate = 0
	recognizerEndpoint = ""
	recognizerAPIKey = ""
	recognizerTimeout = 0
}

// Test helper functions to set flag values from tests
func SetConfigFileForTest(path string) {
	cfgFile = path
}

func SetCachePathForTest(path string) {
	cachePath = path
}

func SetCacheCapacityForTest(capacity int) {
	cacheCapacity = capacity
}

func SetMaxVideoHeightForTest(height int) {
	maxVideoHeight = height
}

func SetClipDurationForTest(duration time.Duration) {
	clipDuration = duration
}

func SetAudioBitrateForTest(bitrate string) {
	audioBitrate = bitrate
}

func SetAudioSampleRateForTest(sampleRate int) {
	audioSampleRate = sampleRate
}

func SetRecognizerEndpointForTest(endpoint string) {
	recognizerEndpoint = endpoint
}

func SetRecognizerAPIKeyForTest(apiKey string) {
	recognizerAPIKey = apiKey
}

func SetRecognizerTimeoutForTest(timeout time.Duration) {
	recognizerTimeout = timeout
}
