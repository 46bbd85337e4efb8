// Package mcptools exposes the mastery operations as MCP tools.
package mcptools

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"mastery-service/internal/domain"
	"mastery-service/internal/service"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"
)

const Path = "/mcp"

type ListMasteriesArgs struct {
	Region       string `json:"region" jsonschema:"Riot platform region, e.g. euw1, na1, kr"`
	SummonerName string `json:"summoner_name" jsonschema:"Summoner name"`
}

type CompareChampionArgs struct {
	Region        string   `json:"region" jsonschema:"Riot platform region, e.g. euw1, na1, kr"`
	ChampionID    int64    `json:"champion_id" jsonschema:"Numeric champion id, e.g. 103 for Ahri"`
	SummonerNames []string `json:"summoner_names,omitempty" jsonschema:"Summoners to compare"`
}

type CompareChampionClassArgs struct {
	Region        string   `json:"region" jsonschema:"Riot platform region, e.g. euw1, na1, kr"`
	ChampionClass string   `json:"champion_class" jsonschema:"One of Assassin, Fighter, Mage, Marksman, Support, Tank"`
	SummonerNames []string `json:"summoner_names,omitempty" jsonschema:"Summoners to compare"`
}

type Tools struct {
	svc    service.MasteryAggregator
	logger zerolog.Logger
}

func New(svc service.MasteryAggregator, logger zerolog.Logger) *Tools {
	return &Tools{svc: svc, logger: logger}
}

func (t *Tools) Server() *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: "mastery-service", Version: "1.0.0"}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_champion_masteries",
		Description: "Every champion mastery of a summoner with level, points and token progress",
	}, t.listMasteries)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "compare_champion",
		Description: "Compare several summoners' mastery of a single champion",
	}, t.compareChampion)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "compare_champion_class",
		Description: "Compare several summoners' total mastery over a champion class and name the winner",
	}, t.compareChampionClass)

	return server
}

// Handler serves the tools over streamable HTTP.
func (t *Tools) Handler() http.Handler {
	server := t.Server()
	return mcp.NewStreamableHTTPHandler(func(r *http.Request) *mcp.Server {
		return server
	}, &mcp.StreamableHTTPOptions{JSONResponse: true})
}

func (t *Tools) listMasteries(ctx context.Context, req *mcp.CallToolRequest, args ListMasteriesArgs) (*mcp.CallToolResult, any, error) {
	return t.toolJSON(t.svc.ListMasteries(ctx, domain.Region(args.Region), args.SummonerName))
}

func (t *Tools) compareChampion(ctx context.Context, req *mcp.CallToolRequest, args CompareChampionArgs) (*mcp.CallToolResult, any, error) {
	return t.toolJSON(t.svc.CompareChampion(ctx, service.ChampionCompareRequest{
		ServerRegion:  domain.Region(args.Region),
		ChampionID:    domain.ChampionID(args.ChampionID),
		SummonerNames: args.SummonerNames,
	}))
}

func (t *Tools) compareChampionClass(ctx context.Context, req *mcp.CallToolRequest, args CompareChampionClassArgs) (*mcp.CallToolResult, any, error) {
	return t.toolJSON(t.svc.CompareChampionClass(ctx, service.ChampionClassCompareRequest{
		ServerRegion:  domain.Region(args.Region),
		ChampionClass: domain.ChampionClass(args.ChampionClass),
		SummonerNames: args.SummonerNames,
	}))
}

func (t *Tools) toolJSON(res any, err error) (*mcp.CallToolResult, any, error) {
	if err != nil {
		t.logger.Warn().Err(err).Msg("tool call failed")
		return toolError(err), nil, nil
	}
	b, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return toolError(err), nil, nil
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(b)},
		},
	}, nil, nil
}

func toolError(err error) *mcp.CallToolResult {
	msg := fmt.Sprintf("error: %v", err)
	for _, fe := range domain.FieldErrors(err) {
		msg += fmt.Sprintf("\n%s: %s", fe.Field, fe.Message)
	}
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			&mcp.TextContent{Text: msg},
		},
	}
}
