package application

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"teams-api/internal/domain/model"
	"teams-api/internal/domain/repository"
	"teams-api/internal/metrics"
)

// TeamsService チームに関するビジネスロジックを提供するサービス
type TeamsService interface {
	// ListTeams 全チームを取得。0件の場合は空スライス
	ListTeams(ctx context.Context) ([]model.Team, error)

	// GetTeam IDでチームを取得
	GetTeam(ctx context.Context, id int64) (*model.Team, error)

	// CreateTeam チームを作成し、作成された行を返す
	CreateTeam(ctx context.Context, req *model.CreateTeamRequest) ([]model.Team, error)

	// HealthCheck ストアへの疎通確認
	HealthCheck(ctx context.Context) error
}

// teamsServiceImpl TeamsServiceの実装
type teamsServiceImpl struct {
	teamsRepo repository.TeamsRepository
	logger    *zap.SugaredLogger
	metrics   *metrics.Recorder
}

// NewTeamsService TeamsServiceの新しいインスタンスを作成
func NewTeamsService(teamsRepo repository.TeamsRepository, logger *zap.SugaredLogger, recorder *metrics.Recorder) TeamsService {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &teamsServiceImpl{
		teamsRepo: teamsRepo,
		logger:    logger,
		metrics:   recorder,
	}
}

func (s *teamsServiceImpl) ListTeams(ctx context.Context) ([]model.Team, error) {
	teams, err := s.teamsRepo.GetAll(ctx)
	s.metrics.RecordStoreOperation("list", err)
	if err != nil {
		s.logger.Errorw("failed to list teams", "error", err)
		return nil, err
	}

	if teams == nil {
		teams = []model.Team{}
	}
	s.logger.Debugw("listed teams", "count", len(teams))
	return teams, nil
}

func (s *teamsServiceImpl) GetTeam(ctx context.Context, id int64) (*model.Team, error) {
	team, err := s.teamsRepo.GetByID(ctx, id)
	if errors.Is(err, model.ErrTeamNotFound) {
		s.metrics.RecordStoreOperation("get", nil)
		s.logger.Debugw("team not found", "id", id)
		return nil, err
	}
	s.metrics.RecordStoreOperation("get", err)
	if err != nil {
		s.logger.Errorw("failed to get team", "id", id, "error", err)
		return nil, err
	}

	s.logger.Debugw("fetched team", "team", team)
	return team, nil
}

func (s *teamsServiceImpl) CreateTeam(ctx context.Context, req *model.CreateTeamRequest) ([]model.Team, error) {
	if req == nil {
		return nil, model.ErrNoData
	}

	created, err := s.teamsRepo.Create(ctx, req.ToNewTeam())
	s.metrics.RecordStoreOperation("create", err)
	if err != nil {
		s.logger.Errorw("failed to create team", "name", req.Name, "error", err)
		return nil, err
	}

	s.logger.Debugw("created team", "team", created)
	return created, nil
}

func (s *teamsServiceImpl) HealthCheck(ctx context.Context) error {
	err := s.teamsRepo.Ping(ctx)
	s.metrics.RecordStoreOperation("ping", err)
	return err
}
