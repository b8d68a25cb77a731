package app

import (
	"fmt"

	"github.com/valyala/fasthttp"

	"github.com/riskibarqy/matchdata-sync/external/liquipedia"
	"github.com/riskibarqy/matchdata-sync/internal/config"
	"github.com/riskibarqy/matchdata-sync/internal/infrastructure/repository/file"
	"github.com/riskibarqy/matchdata-sync/internal/platform/country"
	idgen "github.com/riskibarqy/matchdata-sync/internal/platform/id"
	"github.com/riskibarqy/matchdata-sync/internal/platform/logging"
	"github.com/riskibarqy/matchdata-sync/internal/usecase"
)

// NewSyncService wires the provider client and file repositories into a
// ready-to-run sync service.
func NewSyncService(cfg config.Config, logger *logging.Logger) (*usecase.MatchDataSyncService, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.LiquipediaAPIKey == "" {
		return nil, fmt.Errorf("liquipedia api key cannot be empty")
	}

	source := liquipedia.NewClient(liquipedia.ClientConfig{
		HTTPClient: &fasthttp.Client{
			Name:         cfg.ServiceName,
			ReadTimeout:  cfg.LiquipediaTimeout,
			WriteTimeout: cfg.LiquipediaTimeout,
		},
		BaseURL:          cfg.LiquipediaBaseURL,
		APIKey:           cfg.LiquipediaAPIKey,
		Wiki:             cfg.LiquipediaWiki,
		PageSize:         cfg.LiquipediaPageSize,
		PageDelay:        cfg.LiquipediaPageDelay,
		Timeout:          cfg.LiquipediaTimeout,
		TrustedLinkHosts: cfg.LiquipediaTrustedLinkHosts,
		Countries:        country.NewResolver(),
		Logger:           logger,
	})

	return usecase.NewMatchDataSyncService(
		source,
		file.NewCorpusRepository(cfg.CorpusPath(), logger),
		file.NewBlocklistRepository(cfg.BlocklistPath, logger),
		file.NewReportWriter(cfg.ReportPath(), logger),
		idgen.NewUUIDGenerator(),
		logger,
		usecase.MatchDataSyncConfig{Lookback: cfg.Lookback},
	), nil
}
