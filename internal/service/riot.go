package service

import (
	"context"

	"mastery-service/internal/api"
	"mastery-service/internal/domain"
)

// RiotAPI is the upstream surface the services need. *api.RiotClient
// implements it.
type RiotAPI interface {
	GetChampions(ctx context.Context) (*api.ChampionsResponse, error)
	GetSummonerByName(ctx context.Context, region domain.Region, name string) (*api.SummonerDTO, error)
	GetChampionMasteries(ctx context.Context, region domain.Region, puuid string) ([]api.ChampionMasteryDTO, error)
	GetChampionMastery(ctx context.Context, region domain.Region, puuid string, championID domain.ChampionID) (*api.ChampionMasteryDTO, error)
}

var _ RiotAPI = (*api.RiotClient)(nil)
