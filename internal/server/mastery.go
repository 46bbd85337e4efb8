package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"mastery-service/internal/domain"
	"mastery-service/internal/service"

	"connectrpc.com/connect"
	"github.com/rs/zerolog"
)

const (
	MasteryServicePath = "/mastery.v1.MasteryService/"

	ListMasteriesProcedure        = MasteryServicePath + "ListMasteries"
	CompareChampionProcedure      = MasteryServicePath + "CompareChampion"
	CompareChampionClassProcedure = MasteryServicePath + "CompareChampionClass"
)

type ListMasteriesRequest struct {
	ServerRegion string `json:"serverRegion"`
	SummonerName string `json:"summonerName"`
}

type ListMasteriesResponse struct {
	Masteries []service.ChampionMastery `json:"masteries"`
}

type MasteryServer struct {
	svc    service.MasteryAggregator
	logger zerolog.Logger
}

func NewMasteryServer(svc service.MasteryAggregator, logger zerolog.Logger) *MasteryServer {
	return &MasteryServer{svc: svc, logger: logger}
}

// Handler returns the Connect handler serving every MasteryService procedure
// under MasteryServicePath.
func (s *MasteryServer) Handler() (string, http.Handler) {
	opts := codecOptions()

	mux := http.NewServeMux()
	mux.Handle(ListMasteriesProcedure, connect.NewUnaryHandler(ListMasteriesProcedure, s.ListMasteries, opts...))
	mux.Handle(CompareChampionProcedure, connect.NewUnaryHandler(CompareChampionProcedure, s.CompareChampion, opts...))
	mux.Handle(CompareChampionClassProcedure, connect.NewUnaryHandler(CompareChampionClassProcedure, s.CompareChampionClass, opts...))
	return MasteryServicePath, mux
}

func (s *MasteryServer) ListMasteries(ctx context.Context, req *connect.Request[ListMasteriesRequest]) (*connect.Response[ListMasteriesResponse], error) {
	defer s.timed("ListMasteries")()

	masteries, err := s.svc.ListMasteries(ctx, domain.Region(req.Msg.ServerRegion), req.Msg.SummonerName)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&ListMasteriesResponse{Masteries: masteries}), nil
}

func (s *MasteryServer) CompareChampion(ctx context.Context, req *connect.Request[service.ChampionCompareRequest]) (*connect.Response[service.ChampionCompareResponse], error) {
	defer s.timed("CompareChampion")()

	resp, err := s.svc.CompareChampion(ctx, *req.Msg)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(resp), nil
}

func (s *MasteryServer) CompareChampionClass(ctx context.Context, req *connect.Request[service.ChampionClassCompareRequest]) (*connect.Response[service.ChampionClassCompareResponse], error) {
	defer s.timed("CompareChampionClass")()

	resp, err := s.svc.CompareChampionClass(ctx, *req.Msg)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(resp), nil
}

func (s *MasteryServer) timed(procedure string) func() {
	start := time.Now()
	return func() {
		s.logger.Debug().Str("procedure", procedure).Int64("duration_ms", time.Since(start).Milliseconds()).Msg("rpc completed")
	}
}

func toConnectError(err error) error {
	if errors.Is(err, domain.ErrInvalidInput) {
		cerr := connect.NewError(connect.CodeInvalidArgument, err)
		for _, fe := range domain.FieldErrors(err) {
			cerr.Meta().Add("X-Field-Error", fe.Field+": "+fe.Message)
		}
		return cerr
	}
	return connect.NewError(connect.CodeInternal, err)
}
