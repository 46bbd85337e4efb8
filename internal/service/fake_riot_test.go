package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"mastery-service/internal/api"
	"mastery-service/internal/config"
	"mastery-service/internal/domain"
	"mastery-service/internal/fanout"
	"mastery-service/internal/logger"

	"github.com/stretchr/testify/require"
)

// fakeRiot serves canned upstream data and counts calls per endpoint.
type fakeRiot struct {
	mu sync.Mutex

	champions    *api.ChampionsResponse
	championsErr error

	summoners    map[string]*api.SummonerDTO
	summonerErrs map[string]error
	masteries    map[string][]api.ChampionMasteryDTO

	calls map[string]int
}

func newFakeRiot() *fakeRiot {
	return &fakeRiot{
		champions:    testChampions(),
		summoners:    map[string]*api.SummonerDTO{},
		summonerErrs: map[string]error{},
		masteries:    map[string][]api.ChampionMasteryDTO{},
		calls:        map[string]int{},
	}
}

func (f *fakeRiot) count(endpoint string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[endpoint]++
}

func (f *fakeRiot) callCount(endpoint string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[endpoint]
}

func (f *fakeRiot) playerCalls() int {
	return f.callCount("summoner") + f.callCount("masteries") + f.callCount("mastery")
}

func (f *fakeRiot) GetChampions(ctx context.Context) (*api.ChampionsResponse, error) {
	f.count("champions")
	if f.championsErr != nil {
		return nil, f.championsErr
	}
	return f.champions, nil
}

func (f *fakeRiot) GetSummonerByName(ctx context.Context, region domain.Region, name string) (*api.SummonerDTO, error) {
	f.count("summoner")
	if err, ok := f.summonerErrs[name]; ok {
		return nil, err
	}
	s, ok := f.summoners[name]
	if !ok {
		return nil, &domain.UpstreamError{StatusCode: 404, URL: "/lol/summoner/v4/summoners/by-name/" + name}
	}
	return s, nil
}

func (f *fakeRiot) GetChampionMasteries(ctx context.Context, region domain.Region, puuid string) ([]api.ChampionMasteryDTO, error) {
	f.count("masteries")
	return f.masteries[puuid], nil
}

func (f *fakeRiot) GetChampionMastery(ctx context.Context, region domain.Region, puuid string, championID domain.ChampionID) (*api.ChampionMasteryDTO, error) {
	f.count("mastery")
	for _, m := range f.masteries[puuid] {
		if domain.ChampionID(m.ChampionID) == championID {
			return &m, nil
		}
	}
	return nil, &domain.UpstreamError{StatusCode: 404, URL: "/by-champion"}
}

func (f *fakeRiot) addSummoner(name, puuid string, masteries ...api.ChampionMasteryDTO) {
	f.summoners[name] = &api.SummonerDTO{
		Name:          name,
		PUUID:         puuid,
		SummonerLevel: 100,
		ProfileIconID: 7,
		RevisionDate:  api.EpochMillis(time.UnixMilli(1700000000000).UTC()),
	}
	f.masteries[puuid] = masteries
}

func mastery(championID int64, level, points, tokens int) api.ChampionMasteryDTO {
	return api.ChampionMasteryDTO{
		ChampionID:     championID,
		ChampionLevel:  level,
		ChampionPoints: points,
		TokensEarned:   tokens,
		LastPlayTime:   api.EpochMillis(time.UnixMilli(1690000000000).UTC()),
	}
}

// testChampions is keyed by name the way Data Dragon serves it.
func testChampions() *api.ChampionsResponse {
	return &api.ChampionsResponse{
		Version: "13.24.1",
		Data: map[string]api.ChampionDTO{
			"Ahri":  {ID: "Ahri", Key: "103", Name: "Ahri", Tags: []string{"Mage", "Assassin"}},
			"Kaisa": {ID: "Kaisa", Key: "145", Name: "Kai'Sa", Tags: []string{"Marksman"}},
			"Jinx":  {ID: "Jinx", Key: "222", Name: "Jinx", Tags: []string{"Marksman"}},
			"Garen": {ID: "Garen", Key: "86", Name: "Garen", Tags: []string{"Fighter", "Tank"}},
		},
	}
}

func testConfig() *config.Config {
	return &config.Config{
		DDragonBaseURL: "https://ddragon.leagueoflegends.com",
		DDragonVersion: "13.24.1",
		WorkerPoolSize: 8,
	}
}

func newTestMasteryService(t *testing.T, riot RiotAPI) *MasteryService {
	t.Helper()
	log := logger.Nop()
	cfg := testConfig()

	pool, err := fanout.New(cfg, log)
	require.NoError(t, err)
	t.Cleanup(pool.Release)

	return NewMasteryService(
		NewCatalogService(riot, cfg, log),
		NewSummonerService(riot, log),
		pool,
		cfg,
		log,
	)
}
