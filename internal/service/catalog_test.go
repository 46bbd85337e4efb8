package service

import (
	"context"
	"errors"
	"testing"

	"mastery-service/internal/api"
	"mastery-service/internal/domain"
	"mastery-service/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogResolveRekeysByNumericID(t *testing.T) {
	riot := newFakeRiot()
	svc := NewCatalogService(riot, testConfig(), logger.Nop())

	catalog, err := svc.Resolve(context.Background())
	require.NoError(t, err)

	kaisa, ok := catalog.Lookup(145)
	require.True(t, ok)
	assert.Equal(t, "Kai'Sa", kaisa.Name)
	assert.Equal(t, "Kaisa", kaisa.Slug)
	assert.Equal(t, []domain.ChampionClass{domain.ClassMarksman}, kaisa.Tags)

	_, ok = catalog.Lookup(0)
	assert.False(t, ok)
	assert.Len(t, catalog.Champions, 4)
	assert.Equal(t, "13.24.1", catalog.Version)
}

func TestCatalogResolveRejectsNonNumericKey(t *testing.T) {
	riot := newFakeRiot()
	riot.champions = &api.ChampionsResponse{Data: map[string]api.ChampionDTO{
		"Ahri": {ID: "Ahri", Key: "Ahri", Name: "Ahri"},
	}}
	svc := NewCatalogService(riot, testConfig(), logger.Nop())

	_, err := svc.Resolve(context.Background())
	require.ErrorIs(t, err, domain.ErrDecode)
}

func TestCatalogResolveRejectsDuplicateKeys(t *testing.T) {
	riot := newFakeRiot()
	riot.champions = &api.ChampionsResponse{Data: map[string]api.ChampionDTO{
		"Ahri":  {ID: "Ahri", Key: "103", Name: "Ahri"},
		"Ahri2": {ID: "Ahri2", Key: "103", Name: "Ahri"},
	}}
	svc := NewCatalogService(riot, testConfig(), logger.Nop())

	_, err := svc.Resolve(context.Background())
	require.ErrorIs(t, err, domain.ErrDataIntegrity)
}

func TestCatalogResolveFallsBackToConfiguredVersion(t *testing.T) {
	riot := newFakeRiot()
	riot.champions.Version = ""
	svc := NewCatalogService(riot, testConfig(), logger.Nop())

	catalog, err := svc.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "13.24.1", catalog.Version)
}

func TestCatalogResolvePropagatesFetchFailure(t *testing.T) {
	riot := newFakeRiot()
	riot.championsErr = &domain.UpstreamError{StatusCode: 503}
	svc := NewCatalogService(riot, testConfig(), logger.Nop())

	_, err := svc.Resolve(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUpstream))
}
