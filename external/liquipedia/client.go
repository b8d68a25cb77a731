package liquipedia

import (
	"bytes"
	"context"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/fasthttp"

	"github.com/riskibarqy/matchdata-sync/internal/platform/country"
	"github.com/riskibarqy/matchdata-sync/internal/platform/logging"
	"github.com/riskibarqy/matchdata-sync/internal/usecase"
)

const (
	defaultBaseURL   = "https://api.liquipedia.net/api/v3"
	defaultWiki      = "counterstrike"
	defaultPageSize  = 1000
	defaultTimeout   = 30 * time.Second
	matchOrder       = "date desc"
	conditionDateFmt = "2006-01-02"
	maxBodyLogBytes  = 512

	endpointMatch      = "/match"
	endpointPlacement  = "/placement"
	endpointTournament = "/tournament"
)

const tierCondition = "([[publishertier::!]])"

var apiKeyHeaderRegex = regexp.MustCompile(`Apikey\s+\S+`)

type ClientConfig struct {
	HTTPClient       *fasthttp.Client
	BaseURL          string
	APIKey           string
	Wiki             string
	PageSize         int
	PageDelay        time.Duration
	Timeout          time.Duration
	TrustedLinkHosts []string
	Countries        *country.Resolver
	Logger           *logging.Logger
}

// Client reads the match, placement and tournament tables page by page.
type Client struct {
	httpClient   *fasthttp.Client
	baseURL      string
	apiKey       string
	wiki         string
	pageSize     int
	pageDelay    time.Duration
	timeout      time.Duration
	trustedHosts []string
	countries    *country.Resolver
	logger       *logging.Logger
}

var _ usecase.MatchDataSource = (*Client)(nil)

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &fasthttp.Client{
			Name:         "matchdata-sync",
			ReadTimeout:  timeout,
			WriteTimeout: timeout,
		}
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	wiki := strings.TrimSpace(cfg.Wiki)
	if wiki == "" {
		wiki = defaultWiki
	}
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	pageDelay := cfg.PageDelay
	if pageDelay < 0 {
		pageDelay = 0
	}
	countries := cfg.Countries
	if countries == nil {
		countries = country.NewResolver()
	}

	return &Client{
		httpClient:   httpClient,
		baseURL:      baseURL,
		apiKey:       strings.TrimSpace(cfg.APIKey),
		wiki:         wiki,
		pageSize:     pageSize,
		pageDelay:    pageDelay,
		timeout:      timeout,
		trustedHosts: cfg.TrustedLinkHosts,
		countries:    countries,
		logger:       logger.Named("liquipedia"),
	}
}

// FetchMatches pulls every tiered match inside window, keeps the ones with a
// trusted statistics link and formats them. Malformed records are skipped.
func (c *Client) FetchMatches(ctx context.Context, window usecase.FetchWindow) (usecase.MatchBatch, error) {
	params := pageParams{
		conditions: windowConditions(window),
		order:      matchOrder,
	}

	var batch usecase.MatchBatch
	skipped, err := fetchAll(ctx, c, endpointMatch, params, func(raw matchRecord) {
		if !raw.Links.Set || !HasTrustedLink(raw.Links.Data, c.trustedHosts) {
			batch.Untrusted++
			return
		}
		formatted, err := formatMatch(raw, c.countries)
		if err != nil {
			batch.Malformed++
			c.logger.WarnContext(ctx, "skip malformed match record", "page", raw.PageName, "error", err)
			return
		}
		batch.Matches = append(batch.Matches, formatted)
	})
	if err != nil {
		return usecase.MatchBatch{}, err
	}
	batch.Malformed += skipped

	c.logger.InfoContext(ctx, "matches fetched",
		"formatted", len(batch.Matches),
		"untrusted", batch.Untrusted,
		"malformed", batch.Malformed,
	)
	return batch, nil
}

func (c *Client) FetchPlacements(ctx context.Context, window usecase.FetchWindow) ([]usecase.ExternalPlacement, error) {
	params := pageParams{conditions: windowConditions(window)}

	var out []usecase.ExternalPlacement
	skipped, err := fetchAll(ctx, c, endpointPlacement, params, func(raw placementRecord) {
		out = append(out, usecase.ExternalPlacement{
			PageName:         raw.PageName,
			OpponentTemplate: raw.OpponentTemplate,
			PrizeMoney:       raw.PrizeMoney.Decimal,
			Placement:        raw.Placement.String(),
		})
	})
	if err != nil {
		return nil, err
	}

	c.logger.InfoContext(ctx, "placements fetched", "count", len(out), "malformed", skipped)
	return out, nil
}

func (c *Client) FetchTournaments(ctx context.Context) ([]usecase.ExternalTournament, error) {
	params := pageParams{conditions: tierCondition}

	var out []usecase.ExternalTournament
	skipped, err := fetchAll(ctx, c, endpointTournament, params, func(raw tournamentRecord) {
		out = append(out, usecase.ExternalTournament{
			PageName:      raw.PageName,
			EndDate:       strings.TrimSpace(raw.EndDate),
			PublisherTier: raw.PublisherTier.String(),
			PrizePool:     raw.PrizePool.Decimal,
		})
	})
	if err != nil {
		return nil, err
	}

	c.logger.InfoContext(ctx, "tournaments fetched", "count", len(out), "malformed", skipped)
	return out, nil
}

type pageParams struct {
	conditions string
	order      string
}

// fetchAll walks offsets until the provider returns an empty or short page,
// sleeping pageDelay between requests. Any failing page aborts the walk.
// Records that do not decode into T are logged, skipped and counted.
func fetchAll[T any](ctx context.Context, c *Client, endpoint string, params pageParams, handle func(T)) (int, error) {
	offset := 0
	skipped := 0
	for {
		var envelope resultEnvelope
		if err := c.doJSON(ctx, endpoint, params, offset, &envelope); err != nil {
			return skipped, err
		}

		c.logger.DebugContext(ctx, "page fetched", "endpoint", endpoint, "offset", offset, "count", len(envelope.Result))
		if len(envelope.Result) == 0 {
			return skipped, nil
		}
		for idx, raw := range envelope.Result {
			var record T
			if err := sonic.Unmarshal(raw, &record); err != nil {
				skipped++
				c.logger.WarnContext(ctx, "skip undecodable record",
					"endpoint", endpoint,
					"offset", offset+idx,
					"error", undecodable(raw, err),
				)
				continue
			}
			handle(record)
		}
		if len(envelope.Result) < c.pageSize {
			return skipped, nil
		}

		offset += c.pageSize
		if err := c.wait(ctx); err != nil {
			return skipped, usecase.SourceUnavailable(err, "liquipedia %s interrupted at offset=%d", endpoint, offset)
		}
	}
}

// undecodable wraps a record decode failure, keeping the object name when it
// can still be read.
func undecodable(raw []byte, err error) error {
	var ref struct {
		ObjectName string `json:"objectname"`
	}
	_ = sonic.Unmarshal(raw, &ref)
	return &usecase.MalformedRecordError{MatchID: strings.TrimSpace(ref.ObjectName), Reason: err.Error()}
}

func (c *Client) wait(ctx context.Context) error {
	if c.pageDelay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(c.pageDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (c *Client) doJSON(ctx context.Context, endpoint string, params pageParams, offset int, target any) error {
	if err := ctx.Err(); err != nil {
		return usecase.SourceUnavailable(err, "liquipedia %s offset=%d", endpoint, offset)
	}

	values := url.Values{}
	values.Set("wiki", c.wiki)
	values.Set("conditions", params.conditions)
	values.Set("limit", strconv.Itoa(c.pageSize))
	values.Set("offset", strconv.Itoa(offset))
	if params.order != "" {
		values.Set("order", params.order)
	}
	fullURL := c.baseURL + endpoint + "?" + values.Encode()

	raw, err := c.executeRequest(ctx, fullURL)
	if err != nil {
		c.logger.WarnContext(ctx, "liquipedia request failed", "endpoint", endpoint, "offset", offset, "error", err)
		return usecase.SourceUnavailable(err, "liquipedia %s offset=%d", endpoint, offset)
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return usecase.SourceUnavailable(err, "decode liquipedia %s offset=%d", endpoint, offset)
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(fullURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Authorization", "Apikey "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", "gzip")

	deadline := time.Now().Add(c.timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}

	if err := c.httpClient.DoDeadline(req, resp, deadline); err != nil {
		return nil, crerr.Newf("send request: %s", c.sanitize(err.Error()))
	}

	body, err := responseBody(resp)
	if err != nil {
		return nil, crerr.Wrap(err, "read response body")
	}

	status := resp.StatusCode()
	if status < 200 || status >= 300 {
		return nil, crerr.Newf("provider status=%d body=%s", status, abbreviateBody(body))
	}

	// The response is released on return.
	out := make([]byte, len(body))
	copy(out, body)
	return out, nil
}

func responseBody(resp *fasthttp.Response) ([]byte, error) {
	if bytes.EqualFold(bytes.TrimSpace(resp.Header.ContentEncoding()), []byte("gzip")) {
		return resp.BodyGunzip()
	}
	return resp.Body(), nil
}

func (c *Client) sanitize(value string) string {
	value = strings.TrimSpace(value)
	if c.apiKey != "" {
		value = strings.ReplaceAll(value, c.apiKey, "REDACTED")
	}
	return apiKeyHeaderRegex.ReplaceAllString(value, "Apikey REDACTED")
}

func windowConditions(window usecase.FetchWindow) string {
	return strings.Join([]string{
		"[[date::>" + window.After.UTC().Format(conditionDateFmt) + "]]",
		"[[date::<" + window.Before.UTC().Format(conditionDateFmt) + "]]",
		tierCondition,
	}, " AND ")
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= maxBodyLogBytes {
		return text
	}
	return text[:maxBodyLogBytes] + "..."
}
