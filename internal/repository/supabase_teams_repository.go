package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"teams-api/internal/domain/model"
	"teams-api/internal/domain/repository"
	"teams-api/internal/infrastructure/database"
)

const teamsTable = "teams"

type SupabaseTeamsRepository struct {
	client *database.SupabaseClient
}

func NewSupabaseTeamsRepository(client *database.SupabaseClient) repository.TeamsRepository {
	return &SupabaseTeamsRepository{
		client: client,
	}
}

func (r *SupabaseTeamsRepository) GetAll(ctx context.Context) ([]model.Team, error) {
	data, _, err := r.client.GetClient().From(teamsTable).Select("*", "", false).Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch teams: %w", err)
	}

	teams, err := decodeTeams(data)
	if err != nil {
		return nil, err
	}
	return teams, nil
}

func (r *SupabaseTeamsRepository) GetByID(ctx context.Context, id int64) (*model.Team, error) {
	data, _, err := r.client.GetClient().From(teamsTable).
		Select("*", "", false).
		Eq("id", strconv.FormatInt(id, 10)).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch team %d: %w", id, err)
	}

	teams, err := decodeTeams(data)
	if err != nil {
		return nil, err
	}
	if len(teams) == 0 {
		return nil, model.ErrTeamNotFound
	}

	return &teams[0], nil
}

func (r *SupabaseTeamsRepository) Create(ctx context.Context, team *model.NewTeam) ([]model.Team, error) {
	// 作成された行を受け取るためreturning=representationを指定
	data, _, err := r.client.GetClient().From(teamsTable).
		Insert(team, false, "", "representation", "").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to insert team: %w", err)
	}

	teams, err := decodeTeams(data)
	if err != nil {
		return nil, err
	}
	if len(teams) == 0 {
		return nil, model.ErrTeamNotCreated
	}

	return teams, nil
}

func (r *SupabaseTeamsRepository) Ping(ctx context.Context) error {
	if err := r.client.HealthCheck(); err != nil {
		return err
	}
	if _, _, err := r.client.GetClient().From(teamsTable).Select("id", "", false).Limit(1, "").Execute(); err != nil {
		return fmt.Errorf("failed to reach teams table: %w", err)
	}
	return nil
}

// decodeTeams PostgRESTのレスポンスをデコード。各行は受け取った列をすべて保持する。
// 空ボディやnullは空スライスとして扱う
func decodeTeams(data []byte) ([]model.Team, error) {
	teams := []model.Team{}
	if len(data) == 0 {
		return teams, nil
	}
	if err := json.Unmarshal(data, &teams); err != nil {
		return nil, fmt.Errorf("failed to decode teams response: %w", err)
	}
	if teams == nil {
		teams = []model.Team{}
	}
	return teams, nil
}
