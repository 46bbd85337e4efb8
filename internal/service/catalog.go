package service

import (
	"context"
	"fmt"
	"strconv"

	"mastery-service/internal/config"
	"mastery-service/internal/constants"
	"mastery-service/internal/domain"

	"github.com/rs/zerolog"
)

type CatalogService struct {
	riot    RiotAPI
	version string
	logger  zerolog.Logger
}

func NewCatalogService(riot RiotAPI, cfg *config.Config, logger zerolog.Logger) *CatalogService {
	return &CatalogService{riot: riot, version: cfg.DDragonVersion, logger: logger}
}

// Resolve fetches the champion catalog and indexes it by numeric champion id.
// The wire format is keyed by the champion's name id, so every entry is
// re-keyed through its "key" field.
func (s *CatalogService) Resolve(ctx context.Context) (domain.Catalog, error) {
	apiCtx, cancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	defer cancel()

	resp, err := s.riot.GetChampions(apiCtx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to fetch champion catalog")
		return domain.Catalog{}, fmt.Errorf("failed to fetch champion catalog: %w", err)
	}

	champions := make(map[domain.ChampionID]domain.Champion, len(resp.Data))
	for slug, dto := range resp.Data {
		key, err := strconv.ParseInt(dto.Key, 10, 64)
		if err != nil {
			return domain.Catalog{}, fmt.Errorf("%w: champion %s has non-numeric key %q", domain.ErrDecode, slug, dto.Key)
		}
		id := domain.ChampionID(key)
		if prev, ok := champions[id]; ok {
			return domain.Catalog{}, fmt.Errorf("%w: champions %s and %s share id %d", domain.ErrDataIntegrity, prev.Slug, slug, id)
		}

		tags := make([]domain.ChampionClass, 0, len(dto.Tags))
		for _, tag := range dto.Tags {
			tags = append(tags, domain.ChampionClass(tag))
		}
		if dto.ID != "" {
			slug = dto.ID
		}

		champions[id] = domain.Champion{
			ID:        id,
			Slug:      slug,
			Name:      dto.Name,
			Title:     dto.Title,
			Tags:      tags,
			ImageFull: dto.Image.Full,
		}
	}

	version := resp.Version
	if version == "" {
		version = s.version
	}

	s.logger.Debug().Int("champions", len(champions)).Str("version", version).Msg("champion catalog resolved")
	return domain.Catalog{Version: version, Champions: champions}, nil
}
