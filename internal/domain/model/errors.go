package model

import (
	"errors"
	"fmt"
)

var (
	// ErrNoData リクエストボディが空
	ErrNoData = errors.New("no data provided")
	// ErrInvalidTeamData リクエストボディの項目不足または型変換失敗
	ErrInvalidTeamData = errors.New("invalid team data")
	// ErrTeamNotFound 指定IDのチームが存在しない
	ErrTeamNotFound = errors.New("team not found")
	// ErrTeamNotCreated 挿入は成功したが行が返されなかった
	ErrTeamNotCreated = errors.New("failed to create team")
)

// ValidationError リクエスト項目の検証エラー
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrInvalidTeamData, e.Field, e.Reason)
}

// Is errors.Is(err, ErrInvalidTeamData) を満たす
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidTeamData
}

// Detail エラーレスポンス用の詳細メッセージ
func (e *ValidationError) Detail() string {
	return e.Field + " " + e.Reason
}
