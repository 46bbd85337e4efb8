package service

import (
	"context"
	"fmt"
	"sort"

	"mastery-service/internal/config"
	"mastery-service/internal/constants"
	"mastery-service/internal/domain"
	"mastery-service/internal/fanout"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const noWinner = "N/A"

// MasteryAggregator is the operation set exposed over REST, Connect and MCP.
type MasteryAggregator interface {
	ListMasteries(ctx context.Context, region domain.Region, name string) ([]ChampionMastery, error)
	CompareChampion(ctx context.Context, req ChampionCompareRequest) (*ChampionCompareResponse, error)
	CompareChampionClass(ctx context.Context, req ChampionClassCompareRequest) (*ChampionClassCompareResponse, error)
}

type MasteryService struct {
	catalog   *CatalogService
	summoners *SummonerService
	pool      *fanout.Pool
	assets    assets
	logger    zerolog.Logger
}

var _ MasteryAggregator = (*MasteryService)(nil)

func NewMasteryService(catalog *CatalogService, summoners *SummonerService, pool *fanout.Pool, cfg *config.Config, logger zerolog.Logger) *MasteryService {
	return &MasteryService{
		catalog:   catalog,
		summoners: summoners,
		pool:      pool,
		assets:    newAssets(cfg.DDragonBaseURL),
		logger:    logger,
	}
}

// ListMasteries returns every champion mastery of a summoner joined with the
// catalog, in the order the mastery endpoint returned them.
func (s *MasteryService) ListMasteries(ctx context.Context, region domain.Region, name string) ([]ChampionMastery, error) {
	region, err := domain.ParseRegion(region.String())
	if err != nil {
		return nil, err
	}
	if err := validateSummonerName(name); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	s.logger.Info().Str("region", region.String()).Str("summoner", name).Msg("listing champion masteries")

	var (
		catalog   domain.Catalog
		masteries []domain.Mastery
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		catalog, err = s.catalog.Resolve(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		_, masteries, err = s.summoners.ResolveAllMasteries(gctx, region, name)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := make([]ChampionMastery, 0, len(masteries))
	for _, m := range masteries {
		champ, ok := catalog.Lookup(m.ChampionID)
		if !ok {
			s.logger.Error().Int64("champion_id", int64(m.ChampionID)).Str("summoner", name).Msg("mastery references unknown champion")
			return nil, fmt.Errorf("%w: champion %d is missing from catalog %s", domain.ErrDataIntegrity, m.ChampionID, catalog.Version)
		}
		result = append(result, s.assets.championMastery(catalog.Version, champ, m))
	}

	s.logger.Info().Str("summoner", name).Int("count", len(result)).Msg("champion masteries listed")
	return result, nil
}

// CompareChampion fetches every summoner's mastery of one champion
// concurrently. Any failed summoner fails the whole comparison.
func (s *MasteryService) CompareChampion(ctx context.Context, req ChampionCompareRequest) (*ChampionCompareResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	region, err := domain.ParseRegion(req.ServerRegion.String())
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	logger := s.comparisonLogger()
	logger.Info().
		Str("region", region.String()).
		Int64("champion_id", int64(req.ChampionID)).
		Int("summoners", len(req.SummonerNames)).
		Msg("comparing champion mastery")

	catalog, err := s.catalog.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	champ, ok := catalog.Lookup(req.ChampionID)
	if !ok {
		logger.Error().Int64("champion_id", int64(req.ChampionID)).Msg("champion not in catalog")
		return nil, fmt.Errorf("%w: champion %d is missing from catalog %s", domain.ErrDataIntegrity, req.ChampionID, catalog.Version)
	}

	results, err := fanout.Gather(ctx, s.pool, req.SummonerNames, func(ctx context.Context, name string) (SummonerChampionMastery, error) {
		summoner, mastery, err := s.summoners.ResolveSingleChampionMastery(ctx, region, name, champ.ID)
		if err != nil {
			return SummonerChampionMastery{}, err
		}
		return SummonerChampionMastery{
			Summoner: s.assets.summonerInfo(catalog.Version, summoner),
			Mastery:  masteryInfo(champ, mastery),
		}, nil
	})
	if err != nil {
		logger.Error().Err(err).Msg("champion comparison failed")
		return nil, err
	}

	logger.Info().Int("results", len(results)).Msg("champion comparison completed")
	return &ChampionCompareResponse{
		ChampionInfo: s.assets.championInfo(catalog.Version, champ),
		Results:      results,
	}, nil
}

// CompareChampionClass sums every summoner's mastery over the champions of a
// class and picks the summoner with the most points.
func (s *MasteryService) CompareChampionClass(ctx context.Context, req ChampionClassCompareRequest) (*ChampionClassCompareResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	region, err := domain.ParseRegion(req.ServerRegion.String())
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	logger := s.comparisonLogger()
	logger.Info().
		Str("region", region.String()).
		Str("champion_class", string(req.ChampionClass)).
		Int("summoners", len(req.SummonerNames)).
		Msg("comparing champion class mastery")

	catalog, err := s.catalog.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	allowed := catalog.ByClass(req.ChampionClass)
	if len(allowed) == 0 {
		logger.Error().Str("champion_class", string(req.ChampionClass)).Msg("no champions in class")
		return nil, fmt.Errorf("%w: no champions tagged %s in catalog %s", domain.ErrDataIntegrity, req.ChampionClass, catalog.Version)
	}

	results, err := fanout.Gather(ctx, s.pool, req.SummonerNames, func(ctx context.Context, name string) (SummonerClassMasteries, error) {
		summoner, masteries, err := s.summoners.ResolveFilteredMasteries(ctx, region, name, allowed)
		if err != nil {
			return SummonerClassMasteries{}, err
		}

		infos := make([]MasteryInfo, 0, len(masteries))
		for _, m := range masteries {
			// allowed is derived from the catalog, so the lookup cannot miss
			champ, _ := catalog.Lookup(m.ChampionID)
			infos = append(infos, masteryInfo(champ, m))
		}
		return SummonerClassMasteries{
			Summoner:  s.assets.summonerInfo(catalog.Version, summoner),
			Summary:   classSummary(domain.Summarize(masteries)),
			Masteries: infos,
		}, nil
	})
	if err != nil {
		logger.Error().Err(err).Msg("champion class comparison failed")
		return nil, err
	}

	winner := pickWinner(results)
	logger.Info().Int("results", len(results)).Str("winner", winner).Msg("champion class comparison completed")

	return &ChampionClassCompareResponse{
		ChampionClass: req.ChampionClass,
		Winner:        winner,
		Results:       results,
	}, nil
}

// pickWinner returns the name of the first entry after a stable sort by
// total points, descending. Ties keep request order.
func pickWinner(results []SummonerClassMasteries) string {
	if len(results) == 0 {
		return noWinner
	}
	ranked := make([]SummonerClassMasteries, len(results))
	copy(ranked, results)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Summary.TotalPoints > ranked[j].Summary.TotalPoints
	})
	return ranked[0].Summoner.Name
}

func (s *MasteryService) comparisonLogger() zerolog.Logger {
	id, err := gonanoid.New()
	if err != nil {
		return s.logger
	}
	return s.logger.With().Str("comparison_id", id).Logger()
}
