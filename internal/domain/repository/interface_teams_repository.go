package repository

import (
	"context"

	"teams-api/internal/domain/model"
)

// TeamsRepository teamsテーブルへのアクセスを抽象化する
type TeamsRepository interface {
	// GetAll 全チームを取得（並び順はリモートDBに委ねる）
	GetAll(ctx context.Context) ([]model.Team, error)

	// GetByID IDでチームを取得。存在しない場合はmodel.ErrTeamNotFound
	GetByID(ctx context.Context, id int64) (*model.Team, error)

	// Create チームを挿入し、作成された行を返す。行が返らない場合はmodel.ErrTeamNotCreated
	Create(ctx context.Context, team *model.NewTeam) ([]model.Team, error)

	// Ping ストアへの疎通確認
	Ping(ctx context.Context) error
}
