package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"mastery-service/internal/config"
	"mastery-service/internal/constants"
	"mastery-service/internal/domain"

	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type RiotClient struct {
	apiToken    string
	platformURL string
	ddragonURL  string
	version     string
	client      *fasthttp.Client
	logger      zerolog.Logger

	rateLimitMu sync.RWMutex
	rateLimit   RateLimitInfo
}

// RateLimitInfo is the last rate limit usage Riot reported. Values keep the
// wire format, e.g. "20:1,100:120" for the limit and "3:1,41:120" for the count.
type RateLimitInfo struct {
	AppLimit    string    `json:"appLimit"`
	AppCount    string    `json:"appCount"`
	MethodLimit string    `json:"methodLimit"`
	MethodCount string    `json:"methodCount"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func NewRiotClient(cfg *config.Config, logger zerolog.Logger) *RiotClient {
	return newRiotClient(cfg, logger, &fasthttp.Client{
		MaxConnsPerHost:     constants.UpstreamMaxConnsPerHost,
		ReadTimeout:         cfg.UpstreamTimeout,
		WriteTimeout:        cfg.UpstreamTimeout,
		MaxIdleConnDuration: constants.UpstreamMaxIdleConnDuration,
	})
}

func newRiotClient(cfg *config.Config, logger zerolog.Logger, client *fasthttp.Client) *RiotClient {
	return &RiotClient{
		apiToken:    cfg.RiotAPIToken,
		platformURL: cfg.RiotPlatformURL,
		ddragonURL:  strings.TrimRight(cfg.DDragonBaseURL, "/"),
		version:     cfg.DDragonVersion,
		client:      client,
		logger:      logger,
	}
}

func (c *RiotClient) GetRateLimitInfo() RateLimitInfo {
	c.rateLimitMu.RLock()
	defer c.rateLimitMu.RUnlock()
	return c.rateLimit
}

// https://developer.riotgames.com/docs/portal#web-apis_rate-limiting
func (c *RiotClient) updateRateLimit(resp *fasthttp.Response) {
	appCount := string(resp.Header.Peek("X-App-Rate-Limit-Count"))
	methodCount := string(resp.Header.Peek("X-Method-Rate-Limit-Count"))
	if appCount == "" && methodCount == "" {
		return
	}

	c.rateLimitMu.Lock()
	c.rateLimit = RateLimitInfo{
		AppLimit:    string(resp.Header.Peek("X-App-Rate-Limit")),
		AppCount:    appCount,
		MethodLimit: string(resp.Header.Peek("X-Method-Rate-Limit")),
		MethodCount: methodCount,
		UpdatedAt:   time.Now(),
	}
	info := c.rateLimit
	c.rateLimitMu.Unlock()

	c.logger.Debug().
		Str("app_limit", info.AppLimit).
		Str("app_count", info.AppCount).
		Str("method_limit", info.MethodLimit).
		Str("method_count", info.MethodCount).
		Msg("riot rate limit usage")
}

func (c *RiotClient) platformBase(region domain.Region) string {
	return fmt.Sprintf(c.platformURL, strings.ToLower(region.String()))
}

// https://developer.riotgames.com/docs/lol#data-dragon_champions
func (c *RiotClient) GetChampions(ctx context.Context) (*ChampionsResponse, error) {
	endpoint := fmt.Sprintf("%s/cdn/%s/data/en_US/champion.json", c.ddragonURL, c.version)
	return doRequest[ChampionsResponse](ctx, c, endpoint, false)
}

// https://developer.riotgames.com/apis#summoner-v4/GET_getBySummonerName
func (c *RiotClient) GetSummonerByName(ctx context.Context, region domain.Region, name string) (*SummonerDTO, error) {
	endpoint := fmt.Sprintf("%s/lol/summoner/v4/summoners/by-name/%s", c.platformBase(region), url.PathEscape(name))
	return doRequest[SummonerDTO](ctx, c, endpoint, true)
}

// https://developer.riotgames.com/apis#champion-mastery-v4/GET_getAllChampionMasteriesByPUUID
func (c *RiotClient) GetChampionMasteries(ctx context.Context, region domain.Region, puuid string) ([]ChampionMasteryDTO, error) {
	endpoint := fmt.Sprintf("%s/lol/champion-mastery/v4/champion-masteries/by-puuid/%s", c.platformBase(region), url.PathEscape(puuid))
	masteries, err := doRequest[[]ChampionMasteryDTO](ctx, c, endpoint, true)
	if err != nil {
		return nil, err
	}
	return *masteries, nil
}

// https://developer.riotgames.com/apis#champion-mastery-v4/GET_getChampionMasteryByPUUID
func (c *RiotClient) GetChampionMastery(ctx context.Context, region domain.Region, puuid string, championID domain.ChampionID) (*ChampionMasteryDTO, error) {
	endpoint := fmt.Sprintf("%s/lol/champion-mastery/v4/champion-masteries/by-puuid/%s/by-champion/%d", c.platformBase(region), url.PathEscape(puuid), championID)
	return doRequest[ChampionMasteryDTO](ctx, c, endpoint, true)
}

func doRequest[T any](ctx context.Context, client *RiotClient, endpoint string, authenticated bool) (*T, error) {
	// fasthttp ignores ctx, so a cancelled request must not start a new call
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("request to %s not sent: %w", endpoint, err)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(endpoint)
	req.Header.SetMethod(fasthttp.MethodGet)
	if authenticated {
		req.Header.Set("X-Riot-Token", client.apiToken)
	}
	req.Header.Set("Accept-Language", "en-US,en;q=0.7")
	req.Header.Set("Accept", "application/json;charset=utf-8")
	req.Header.Set("Content-Type", "application/json;charset=utf-8")

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(constants.ExternalAPITimeout)
	}
	if err := client.client.DoDeadline(req, resp, deadline); err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", endpoint, err)
	}

	client.updateRateLimit(resp)

	if status := resp.StatusCode(); domain.IsFailureStatus(status) {
		return nil, &domain.UpstreamError{StatusCode: status, URL: endpoint}
	}

	var result T
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("%w from %s: %v", domain.ErrDecode, endpoint, err)
	}
	return &result, nil
}

// EpochMillis decodes the millisecond unix timestamps used by the Riot API.
type EpochMillis time.Time

func (m *EpochMillis) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*m = EpochMillis(time.Time{})
		return nil
	}
	ms, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return fmt.Errorf("epoch millis: %w", err)
	}
	*m = EpochMillis(time.UnixMilli(ms).UTC())
	return nil
}

func (m EpochMillis) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatInt(time.Time(m).UnixMilli(), 10)), nil
}

func (m EpochMillis) Time() time.Time { return time.Time(m) }

type ChampionsResponse struct {
	Type    string                 `json:"type"`
	Format  string                 `json:"format"`
	Version string                 `json:"version"`
	Data    map[string]ChampionDTO `json:"data"` // keyed by champion name id, e.g. "Aatrox"
}

type ChampionDTO struct {
	Version string             `json:"version"`
	ID      string             `json:"id"`
	Key     string             `json:"key"` // numeric champion id as a string
	Name    string             `json:"name"`
	Title   string             `json:"title"`
	Blurb   string             `json:"blurb"`
	Info    ChampionInfoDTO    `json:"info"`
	Image   ImageDTO           `json:"image"`
	Tags    []string           `json:"tags"`
	Partype string             `json:"partype"`
	Stats   map[string]float64 `json:"stats"`
}

type ChampionInfoDTO struct {
	Attack     int `json:"attack"`
	Defense    int `json:"defense"`
	Magic      int `json:"magic"`
	Difficulty int `json:"difficulty"`
}

type ImageDTO struct {
	Full   string `json:"full"`
	Sprite string `json:"sprite"`
	Group  string `json:"group"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	W      int    `json:"w"`
	H      int    `json:"h"`
}

type SummonerDTO struct {
	AccountID     string      `json:"accountId"`
	ProfileIconID int         `json:"profileIconId"`
	RevisionDate  EpochMillis `json:"revisionDate"`
	Name          string      `json:"name"`
	ID            string      `json:"id"`
	PUUID         string      `json:"puuid"`
	SummonerLevel int64       `json:"summonerLevel"`
}

type ChampionMasteryDTO struct {
	PUUID                        string      `json:"puuid"`
	ChampionPointsUntilNextLevel int64       `json:"championPointsUntilNextLevel"`
	ChestGranted                 bool        `json:"chestGranted"`
	ChampionID                   int64       `json:"championId"`
	LastPlayTime                 EpochMillis `json:"lastPlayTime"`
	ChampionLevel                int         `json:"championLevel"`
	SummonerID                   string      `json:"summonerId"`
	ChampionPoints               int         `json:"championPoints"`
	ChampionPointsSinceLastLevel int64       `json:"championPointsSinceLastLevel"`
	TokensEarned                 int         `json:"tokensEarned"`
}
