package service

import (
	"context"
	"fmt"

	"mastery-service/internal/api"
	"mastery-service/internal/constants"
	"mastery-service/internal/domain"

	"github.com/rs/zerolog"
)

// SummonerService resolves a summoner name to its identity and mastery
// records. The identity lookup always runs first since mastery endpoints are
// keyed by PUUID.
type SummonerService struct {
	riot   RiotAPI
	logger zerolog.Logger
}

func NewSummonerService(riot RiotAPI, logger zerolog.Logger) *SummonerService {
	return &SummonerService{riot: riot, logger: logger}
}

func (s *SummonerService) ResolveSingle(ctx context.Context, region domain.Region, name string) (domain.Summoner, error) {
	apiCtx, cancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	defer cancel()

	dto, err := s.riot.GetSummonerByName(apiCtx, region, name)
	if err != nil {
		s.logger.Error().Err(err).Str("region", region.String()).Str("summoner", name).Msg("failed to fetch summoner")
		return domain.Summoner{}, fmt.Errorf("failed to fetch summoner %s: %w", name, err)
	}
	return toSummoner(dto), nil
}

func (s *SummonerService) ResolveAllMasteries(ctx context.Context, region domain.Region, name string) (domain.Summoner, []domain.Mastery, error) {
	summoner, err := s.ResolveSingle(ctx, region, name)
	if err != nil {
		return domain.Summoner{}, nil, err
	}

	apiCtx, cancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	defer cancel()

	dtos, err := s.riot.GetChampionMasteries(apiCtx, region, summoner.PUUID)
	if err != nil {
		s.logger.Error().Err(err).Str("puuid", summoner.PUUID).Msg("failed to fetch champion masteries")
		return domain.Summoner{}, nil, fmt.Errorf("failed to fetch champion masteries for %s: %w", name, err)
	}

	masteries := make([]domain.Mastery, 0, len(dtos))
	for i := range dtos {
		masteries = append(masteries, toMastery(&dtos[i]))
	}

	s.logger.Debug().Str("puuid", summoner.PUUID).Int("count", len(masteries)).Msg("champion masteries fetched")
	return summoner, masteries, nil
}

func (s *SummonerService) ResolveSingleChampionMastery(ctx context.Context, region domain.Region, name string, championID domain.ChampionID) (domain.Summoner, domain.Mastery, error) {
	summoner, err := s.ResolveSingle(ctx, region, name)
	if err != nil {
		return domain.Summoner{}, domain.Mastery{}, err
	}

	apiCtx, cancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	defer cancel()

	dto, err := s.riot.GetChampionMastery(apiCtx, region, summoner.PUUID, championID)
	if err != nil {
		s.logger.Error().Err(err).Str("puuid", summoner.PUUID).Int64("champion_id", int64(championID)).Msg("failed to fetch champion mastery")
		return domain.Summoner{}, domain.Mastery{}, fmt.Errorf("failed to fetch champion %d mastery for %s: %w", championID, name, err)
	}
	return summoner, toMastery(dto), nil
}

// ResolveFilteredMasteries fetches every mastery of the summoner and keeps
// those whose champion id is in allowed.
func (s *SummonerService) ResolveFilteredMasteries(ctx context.Context, region domain.Region, name string, allowed map[domain.ChampionID]struct{}) (domain.Summoner, []domain.Mastery, error) {
	summoner, masteries, err := s.ResolveAllMasteries(ctx, region, name)
	if err != nil {
		return domain.Summoner{}, nil, err
	}
	return summoner, domain.FilterMasteries(masteries, allowed), nil
}

func toSummoner(dto *api.SummonerDTO) domain.Summoner {
	return domain.Summoner{
		PUUID:         dto.PUUID,
		Name:          dto.Name,
		Level:         dto.SummonerLevel,
		ProfileIconID: dto.ProfileIconID,
		RevisionDate:  dto.RevisionDate.Time(),
	}
}

func toMastery(dto *api.ChampionMasteryDTO) domain.Mastery {
	return domain.Mastery{
		ChampionID:           domain.ChampionID(dto.ChampionID),
		Level:                dto.ChampionLevel,
		Points:               dto.ChampionPoints,
		PointsSinceLastLevel: dto.ChampionPointsSinceLastLevel,
		PointsUntilNextLevel: dto.ChampionPointsUntilNextLevel,
		TokensEarned:         dto.TokensEarned,
		ChestGranted:         dto.ChestGranted,
		LastPlayTime:         dto.LastPlayTime.Time(),
	}
}
