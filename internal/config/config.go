package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/riskibarqy/matchdata-sync/internal/platform/logging"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

// Config stores runtime configuration for the sync job.
type Config struct {
	AppEnv         string `env:"APP_ENV" envDefault:"dev"`
	ServiceName    string `env:"APP_SERVICE_NAME" envDefault:"matchdata-sync"`
	ServiceVersion string `env:"APP_SERVICE_VERSION" envDefault:"dev"`
	RawLogLevel    string `env:"APP_LOG_LEVEL" envDefault:"info"`

	UptraceEnabled bool   `env:"UPTRACE_ENABLED" envDefault:"false"`
	UptraceDSN     string `env:"UPTRACE_DSN"`

	LiquipediaAPIKey           string        `env:"LIQUIPEDIA_API_KEY"`
	LiquipediaBaseURL          string        `env:"LIQUIPEDIA_BASE_URL" envDefault:"https://api.liquipedia.net/api/v3"`
	LiquipediaWiki             string        `env:"LIQUIPEDIA_WIKI" envDefault:"counterstrike"`
	LiquipediaPageSize         int           `env:"LIQUIPEDIA_PAGE_SIZE" envDefault:"1000"`
	LiquipediaPageDelay        time.Duration `env:"LIQUIPEDIA_PAGE_DELAY" envDefault:"1s"`
	LiquipediaTimeout          time.Duration `env:"LIQUIPEDIA_TIMEOUT" envDefault:"30s"`
	LiquipediaTrustedLinkHosts []string      `env:"LIQUIPEDIA_TRUSTED_LINK_HOSTS" envDefault:"hltv" envSeparator:","`

	DataDir       string        `env:"SYNC_DATA_DIR" envDefault:"./data"`
	CorpusFile    string        `env:"SYNC_CORPUS_FILE" envDefault:"matchdata.json"`
	BlocklistPath string        `env:"SYNC_BLOCKLIST_PATH" envDefault:"./liquipedia/blocked.json"`
	ReportFile    string        `env:"SYNC_REPORT_FILE" envDefault:"updated_events.json"`
	Lookback      time.Duration `env:"SYNC_LOOKBACK" envDefault:"8760h"`
	DryRun        bool          `env:"SYNC_DRY_RUN" envDefault:"false"`

	LogLevel logging.Level
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}

	appEnv, err := parseAppEnv(cfg.AppEnv)
	if err != nil {
		return Config{}, err
	}
	cfg.AppEnv = appEnv
	cfg.ServiceName = strings.TrimSpace(cfg.ServiceName)
	cfg.ServiceVersion = strings.TrimSpace(cfg.ServiceVersion)
	cfg.UptraceDSN = strings.TrimSpace(cfg.UptraceDSN)
	cfg.LogLevel = logging.ParseLevel(cfg.RawLogLevel)

	cfg.LiquipediaAPIKey = strings.TrimSpace(cfg.LiquipediaAPIKey)
	if cfg.LiquipediaAPIKey == "" {
		return Config{}, fmt.Errorf("LIQUIPEDIA_API_KEY is required")
	}
	cfg.LiquipediaBaseURL = strings.TrimRight(strings.TrimSpace(cfg.LiquipediaBaseURL), "/")
	if cfg.LiquipediaBaseURL == "" {
		return Config{}, fmt.Errorf("LIQUIPEDIA_BASE_URL is required")
	}
	cfg.LiquipediaWiki = strings.TrimSpace(cfg.LiquipediaWiki)
	if cfg.LiquipediaWiki == "" {
		return Config{}, fmt.Errorf("LIQUIPEDIA_WIKI is required")
	}
	if cfg.LiquipediaPageSize <= 0 {
		return Config{}, fmt.Errorf("LIQUIPEDIA_PAGE_SIZE must be > 0")
	}
	if cfg.LiquipediaPageDelay < 0 {
		return Config{}, fmt.Errorf("LIQUIPEDIA_PAGE_DELAY must be >= 0")
	}
	if cfg.LiquipediaTimeout <= 0 {
		return Config{}, fmt.Errorf("LIQUIPEDIA_TIMEOUT must be > 0")
	}
	cfg.LiquipediaTrustedLinkHosts = parseCSV(cfg.LiquipediaTrustedLinkHosts)
	if len(cfg.LiquipediaTrustedLinkHosts) == 0 {
		return Config{}, fmt.Errorf("LIQUIPEDIA_TRUSTED_LINK_HOSTS must name at least one host")
	}

	cfg.DataDir = strings.TrimSpace(cfg.DataDir)
	if cfg.DataDir == "" {
		return Config{}, fmt.Errorf("SYNC_DATA_DIR is required")
	}
	cfg.CorpusFile = strings.TrimSpace(cfg.CorpusFile)
	if cfg.CorpusFile == "" {
		return Config{}, fmt.Errorf("SYNC_CORPUS_FILE is required")
	}
	cfg.BlocklistPath = strings.TrimSpace(cfg.BlocklistPath)
	if cfg.BlocklistPath == "" {
		return Config{}, fmt.Errorf("SYNC_BLOCKLIST_PATH is required")
	}
	cfg.ReportFile = strings.TrimSpace(cfg.ReportFile)
	if cfg.ReportFile == "" {
		return Config{}, fmt.Errorf("SYNC_REPORT_FILE is required")
	}
	if cfg.Lookback <= 0 {
		return Config{}, fmt.Errorf("SYNC_LOOKBACK must be > 0")
	}

	return cfg, nil
}

// CorpusPath joins the data dir with the corpus file name.
func (c Config) CorpusPath() string {
	return filepath.Join(c.DataDir, c.CorpusFile)
}

func (c Config) ReportPath() string {
	return filepath.Join(c.DataDir, c.ReportFile)
}

func parseAppEnv(v string) (string, error) {
	appEnv := strings.ToLower(strings.TrimSpace(v))
	switch appEnv {
	case EnvDev, EnvStage, EnvProd:
		return appEnv, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: must be one of dev, stage, prod", v)
	}
}

func parseCSV(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.ToLower(strings.TrimSpace(item))
		if item == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}
