package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Feed configuration
	FeedURL       string `long:"feed-url" env:"FEED_URL" default:"https://docs.google.com/spreadsheets/d/e/2PACX-1vTrJMgehUnTHiBXQxLoY-u9ur4wVbpCvYZdqgwLzYHj58tU50KXjv3-ZiR3K9c_rLxwszjlgwAedA0X/pub?output=csv" description:"URL of the published competition CSV feed"`
	FetchInterval int    `long:"fetch-interval" env:"FETCH_INTERVAL" default:"3600" description:"Feed refresh interval in seconds"`
	FetchTimeout  int    `long:"fetch-timeout" env:"FETCH_TIMEOUT" default:"30" description:"Feed fetch timeout in seconds"`

	// Database configuration
	DBPath string `long:"db-path" env:"DB_PATH" default:"./data/compscout.db" description:"Path to the SQLite database file"`

	// Application configuration
	Port          string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	BaseUrl       string `long:"base-url" env:"BASE_URL" description:"Public base URL for the service (e.g., https://compscout.example.com)"`
	WorkerCount   int    `long:"worker-count" env:"WORKER_COUNT" default:"2" description:"Number of background workers for scheduled tasks"`
	JWTSecret     string `long:"jwt-secret" env:"JWT_SECRET" default:"compscout-dev-secret" description:"HMAC secret for session tokens"`
	SeedPostsFile string `long:"seed-posts" env:"SEED_POSTS_FILE" description:"Optional YAML file with team posts to seed on first run"`

	// Gemini configuration
	GeminiAPIKey string `long:"gemini-api-key" env:"GEMINI_API_KEY" description:"Gemini API key for AI analysis and search (optional)"`
	GeminiModel  string `long:"gemini-model" env:"GEMINI_MODEL" default:"gemini-3-flash-preview" description:"Gemini model used for analysis and search"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"CompScout/1.0" description:"User agent string for HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, Asia/Taipei)"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		FeedURL:       raw.FeedURL,
		FetchInterval: raw.FetchInterval,
		FetchTimeout:  raw.FetchTimeout,
		DBPath:        raw.DBPath,
		Port:          raw.Port,
		BaseUrl:       raw.BaseUrl,
		WorkerCount:   raw.WorkerCount,
		JWTSecret:     raw.JWTSecret,
		SeedPostsFile: raw.SeedPostsFile,
		GeminiAPIKey:  raw.GeminiAPIKey,
		GeminiModel:   raw.GeminiModel,
		UserAgent:     raw.UserAgent,
		Timezone:      raw.Timezone,
		Debug:         raw.Debug,
		Version:       GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
		}
	}
	return nil
}
