package service

import (
	"fmt"
	"strings"
	"time"

	"mastery-service/internal/domain"
)

type ChampionCompareRequest struct {
	ServerRegion  domain.Region     `json:"serverRegion" validate:"required,region"`
	ChampionID    domain.ChampionID `json:"championId"`
	SummonerNames []string          `json:"summonerNames" validate:"dive,required,max=64"`
}

type ChampionClassCompareRequest struct {
	ServerRegion  domain.Region        `json:"serverRegion" validate:"required,region"`
	ChampionClass domain.ChampionClass `json:"championClass" validate:"required,champion_class"`
	SummonerNames []string             `json:"summonerNames" validate:"dive,required,max=64"`
}

// ChampionMastery is one entry of a summoner's full mastery listing.
type ChampionMastery struct {
	ID                   string                 `json:"id"`
	ChampionID           domain.ChampionID      `json:"championId"`
	Name                 string                 `json:"name"`
	ChampionLevel        int                    `json:"championLevel"`
	Points               int                    `json:"points"`
	PointsSinceLastLevel int64                  `json:"pointsSinceLastLevel"`
	PointsUntilNextLevel int64                  `json:"pointsUntilNextLevel"`
	TokensEarned         int                    `json:"tokensEarned"`
	TokensEarnedOutOfMax string                 `json:"tokensEarnedOutOfMax"`
	ChestGranted         bool                   `json:"chestGranted"`
	LastTimePlayed       time.Time              `json:"lastTimePlayed"`
	Tags                 []domain.ChampionClass `json:"tags"`
	ImageURL             string                 `json:"imageURL"`
	SplashImageURL       string                 `json:"splashImageURL"`
}

type ChampionInfo struct {
	ID             domain.ChampionID      `json:"id"`
	Name           string                 `json:"name"`
	Tags           []domain.ChampionClass `json:"tags"`
	ImageURL       string                 `json:"imageURL"`
	SplashImageURL string                 `json:"splashImageURL"`
}

type SummonerInfo struct {
	Name                string `json:"name"`
	SummonerLevel       int64  `json:"summonerLevel"`
	ProfileIconImageURL string `json:"profileIconImageURL"`
}

type MasteryInfo struct {
	ChampionID                   domain.ChampionID `json:"championId"`
	ChampionName                 string            `json:"championName"`
	ChampionLevel                int               `json:"championLevel"`
	ChampionPoints               int               `json:"championPoints"`
	ChampionPointsSinceLastLevel int64             `json:"championPointsSinceLastLevel"`
	ChampionPointsUntilNextLevel int64             `json:"championPointsUntilNextLevel"`
	TokensEarned                 int               `json:"tokensEarned"`
	ChestGranted                 bool              `json:"chestGranted"`
	LastPlayTime                 time.Time         `json:"lastPlayTime"`
}

type SummonerChampionMastery struct {
	Summoner SummonerInfo `json:"summoner"`
	Mastery  MasteryInfo  `json:"mastery"`
}

type ChampionCompareResponse struct {
	ChampionInfo ChampionInfo              `json:"championInfo"`
	Results      []SummonerChampionMastery `json:"results"`
}

type ClassSummary struct {
	TotalPoints               int `json:"totalPoints"`
	NumberOfChampionsAtLevel7 int `json:"numberOfChampionsAtLevel7"`
	NumberOfChampionsAtLevel6 int `json:"numberOfChampionsAtLevel6"`
	NumberOfChampionsAtLevel5 int `json:"numberOfChampionsAtLevel5"`
}

type SummonerClassMasteries struct {
	Summoner  SummonerInfo  `json:"summoner"`
	Summary   ClassSummary  `json:"summary"`
	Masteries []MasteryInfo `json:"masteries"`
}

type ChampionClassCompareResponse struct {
	ChampionClass domain.ChampionClass     `json:"championClass"`
	Winner        string                   `json:"winner"`
	Results       []SummonerClassMasteries `json:"results"`
}

// assets builds Data Dragon image URLs.
type assets struct {
	baseURL string
}

func newAssets(baseURL string) assets {
	return assets{baseURL: strings.TrimRight(baseURL, "/")}
}

func (a assets) championImageURL(version string, champ domain.Champion) string {
	return fmt.Sprintf("%s/cdn/%s/img/champion/%s.png", a.baseURL, version, domain.ImageName(champ.Name))
}

func (a assets) championSplashURL(champ domain.Champion) string {
	return fmt.Sprintf("%s/cdn/img/champion/loading/%s_0.jpg", a.baseURL, domain.ImageName(champ.Name))
}

func (a assets) profileIconURL(version string, iconID int) string {
	return fmt.Sprintf("%s/cdn/%s/img/profileicon/%d.png", a.baseURL, version, iconID)
}

func (a assets) championInfo(version string, champ domain.Champion) ChampionInfo {
	return ChampionInfo{
		ID:             champ.ID,
		Name:           champ.Name,
		Tags:           nonNilTags(champ.Tags),
		ImageURL:       a.championImageURL(version, champ),
		SplashImageURL: a.championSplashURL(champ),
	}
}

func (a assets) summonerInfo(version string, s domain.Summoner) SummonerInfo {
	return SummonerInfo{
		Name:                s.Name,
		SummonerLevel:       s.Level,
		ProfileIconImageURL: a.profileIconURL(version, s.ProfileIconID),
	}
}

func (a assets) championMastery(version string, champ domain.Champion, m domain.Mastery) ChampionMastery {
	return ChampionMastery{
		ID:                   champ.Slug,
		ChampionID:           champ.ID,
		Name:                 champ.Name,
		ChampionLevel:        m.Level,
		Points:               m.Points,
		PointsSinceLastLevel: m.PointsSinceLastLevel,
		PointsUntilNextLevel: m.PointsUntilNextLevel,
		TokensEarned:         m.TokensEarned,
		TokensEarnedOutOfMax: domain.TokensOutOfMax(m.Level, m.TokensEarned),
		ChestGranted:         m.ChestGranted,
		LastTimePlayed:       m.LastPlayTime,
		Tags:                 nonNilTags(champ.Tags),
		ImageURL:             a.championImageURL(version, champ),
		SplashImageURL:       a.championSplashURL(champ),
	}
}

func masteryInfo(champ domain.Champion, m domain.Mastery) MasteryInfo {
	return MasteryInfo{
		ChampionID:                   m.ChampionID,
		ChampionName:                 champ.Name,
		ChampionLevel:                m.Level,
		ChampionPoints:               m.Points,
		ChampionPointsSinceLastLevel: m.PointsSinceLastLevel,
		ChampionPointsUntilNextLevel: m.PointsUntilNextLevel,
		TokensEarned:                 m.TokensEarned,
		ChestGranted:                 m.ChestGranted,
		LastPlayTime:                 m.LastPlayTime,
	}
}

func classSummary(s domain.Summary) ClassSummary {
	return ClassSummary{
		TotalPoints:               s.TotalPoints,
		NumberOfChampionsAtLevel7: s.ChampionsAtLevel7,
		NumberOfChampionsAtLevel6: s.ChampionsAtLevel6,
		NumberOfChampionsAtLevel5: s.ChampionsAtLevel5,
	}
}

func nonNilTags(tags []domain.ChampionClass) []domain.ChampionClass {
	if tags == nil {
		return []domain.ChampionClass{}
	}
	return tags
}
