package mcptools

import (
	"context"
	"encoding/json"
	"testing"

	"mastery-service/internal/domain"
	"mastery-service/internal/logger"
	"mastery-service/internal/service"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAggregator struct {
	class    *service.ChampionClassCompareResponse
	err      error
	classReq service.ChampionClassCompareRequest
	region   domain.Region
}

func (s *stubAggregator) ListMasteries(ctx context.Context, region domain.Region, name string) ([]service.ChampionMastery, error) {
	s.region = region
	return []service.ChampionMastery{{ID: "Ahri", Name: "Ahri"}}, s.err
}

func (s *stubAggregator) CompareChampion(ctx context.Context, req service.ChampionCompareRequest) (*service.ChampionCompareResponse, error) {
	return &service.ChampionCompareResponse{Results: []service.SummonerChampionMastery{}}, s.err
}

func (s *stubAggregator) CompareChampionClass(ctx context.Context, req service.ChampionClassCompareRequest) (*service.ChampionClassCompareResponse, error) {
	s.classReq = req
	return s.class, s.err
}

func textOf(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestCompareChampionClassTool(t *testing.T) {
	stub := &stubAggregator{class: &service.ChampionClassCompareResponse{ChampionClass: domain.ClassMage, Winner: "Faker", Results: []service.SummonerClassMasteries{}}}
	tools := New(stub, logger.Nop())

	res, _, err := tools.compareChampionClass(context.Background(), nil, CompareChampionClassArgs{
		Region:        "kr",
		ChampionClass: "Mage",
		SummonerNames: []string{"Faker"},
	})
	require.NoError(t, err)
	assert.False(t, res.IsError)

	var out service.ChampionClassCompareResponse
	require.NoError(t, json.Unmarshal([]byte(textOf(t, res)), &out))
	assert.Equal(t, "Faker", out.Winner)
	assert.Equal(t, domain.ClassMage, stub.classReq.ChampionClass)
	assert.Equal(t, domain.Region("kr"), stub.classReq.ServerRegion)
}

func TestToolReportsErrorsInResult(t *testing.T) {
	stub := &stubAggregator{err: domain.NewInvalidInputError([]domain.FieldError{{Field: "serverRegion", Message: "unknown region"}})}
	tools := New(stub, logger.Nop())

	res, _, err := tools.listMasteries(context.Background(), nil, ListMasteriesArgs{Region: "moon", SummonerName: "Faker"})
	require.NoError(t, err, "tool failures are reported in the result, not as protocol errors")
	assert.True(t, res.IsError)
	assert.Contains(t, textOf(t, res), "serverRegion: unknown region")
}

func TestToolsOverInMemoryTransport(t *testing.T) {
	ctx := context.Background()
	stub := &stubAggregator{}
	server := New(stub, logger.Nop()).Server()

	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	_, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	defer session.Close()

	tools, err := session.ListTools(ctx, nil)
	require.NoError(t, err)
	names := make([]string, 0, len(tools.Tools))
	for _, tool := range tools.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{"list_champion_masteries", "compare_champion", "compare_champion_class"}, names)

	res, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "list_champion_masteries",
		Arguments: map[string]any{"region": "euw1", "summoner_name": "Caps"},
	})
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Contains(t, textOf(t, res), `"id": "Ahri"`)
	assert.Equal(t, domain.Region("euw1"), stub.region)
}
