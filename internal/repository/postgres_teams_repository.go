package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"teams-api/internal/domain/model"
	"teams-api/internal/domain/repository"
	"teams-api/internal/infrastructure/database"
)

const teamColumns = "id, name, coach, value, founded"

// PostgresTeamsRepository teamsテーブルへPostgreSQLで直接アクセスする実装
type PostgresTeamsRepository struct {
	client *database.PostgreSQLClient
}

func NewPostgresTeamsRepository(client *database.PostgreSQLClient) repository.TeamsRepository {
	return &PostgresTeamsRepository{
		client: client,
	}
}

func (r *PostgresTeamsRepository) GetAll(ctx context.Context) ([]model.Team, error) {
	rows, err := r.client.DB.QueryContext(ctx, "SELECT "+teamColumns+" FROM teams")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch teams: %w", err)
	}
	defer rows.Close()

	return scanTeams(rows)
}

func (r *PostgresTeamsRepository) GetByID(ctx context.Context, id int64) (*model.Team, error) {
	row := r.client.DB.QueryRowContext(ctx, "SELECT "+teamColumns+" FROM teams WHERE id = $1", id)

	var team model.Team
	if err := row.Scan(&team.ID, &team.Name, &team.Coach, &team.Value, &team.Founded); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to fetch team %d: %w", id, err)
	}

	return &team, nil
}

func (r *PostgresTeamsRepository) Create(ctx context.Context, team *model.NewTeam) ([]model.Team, error) {
	rows, err := r.client.DB.QueryContext(ctx,
		"INSERT INTO teams (name, coach, value, founded) VALUES ($1, $2, $3, $4) RETURNING "+teamColumns,
		team.Name, team.Coach, team.Value, team.Founded,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert team: %w", err)
	}
	defer rows.Close()

	teams, err := scanTeams(rows)
	if err != nil {
		return nil, err
	}
	if len(teams) == 0 {
		return nil, model.ErrTeamNotCreated
	}

	return teams, nil
}

func (r *PostgresTeamsRepository) Ping(ctx context.Context) error {
	return r.client.HealthCheck(ctx)
}

func scanTeams(rows *sql.Rows) ([]model.Team, error) {
	teams := []model.Team{}
	for rows.Next() {
		var team model.Team
		if err := rows.Scan(&team.ID, &team.Name, &team.Coach, &team.Value, &team.Founded); err != nil {
			return nil, fmt.Errorf("failed to scan team row: %w", err)
		}
		teams = append(teams, team)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate team rows: %w", err)
	}
	return teams, nil
}
