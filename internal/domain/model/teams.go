package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
)

// Team teamsテーブルの1行。
// JSONから復元した行は元のオブジェクトを保持し、未知の列も含めてそのまま返す
type Team struct {
	ID      int64   `json:"id" db:"id"`           // リモートDBが採番する主キー
	Name    string  `json:"name" db:"name"`       // チーム名
	Coach   string  `json:"coach" db:"coach"`     // 監督名
	Value   float64 `json:"value" db:"value"`     // 評価額
	Founded int     `json:"founded" db:"founded"` // 創設年

	columns map[string]json.RawMessage
}

// UnmarshalJSON 行全体を保持しつつ既知の列を読み取る。型が合わない列はゼロ値のまま
func (t *Team) UnmarshalJSON(data []byte) error {
	var columns map[string]json.RawMessage
	if err := json.Unmarshal(data, &columns); err != nil {
		return err
	}

	*t = Team{columns: columns}
	decodeColumn(columns, "id", &t.ID)
	decodeColumn(columns, "name", &t.Name)
	decodeColumn(columns, "coach", &t.Coach)
	decodeColumn(columns, "value", &t.Value)
	decodeColumn(columns, "founded", &t.Founded)
	return nil
}

// MarshalJSON 復元元の行があればそれをそのまま出力する
func (t Team) MarshalJSON() ([]byte, error) {
	if t.columns != nil {
		return json.Marshal(t.columns)
	}
	type plainTeam Team
	return json.Marshal(plainTeam(t))
}

// Column 列の生のJSON値を取得
func (t Team) Column(name string) (json.RawMessage, bool) {
	v, ok := t.columns[name]
	return v, ok
}

func decodeColumn(columns map[string]json.RawMessage, key string, dst any) {
	if v, ok := columns[key]; ok {
		_ = json.Unmarshal(v, dst)
	}
}

// NewTeam 挿入用のチームデータ（idはリモートDBが採番）
type NewTeam struct {
	Name    string  `json:"name"`
	Coach   string  `json:"coach"`
	Value   float64 `json:"value"`
	Founded int     `json:"founded"`
}

// CreateTeamRequest POST /teams のリクエスト
type CreateTeamRequest struct {
	Name    string
	Coach   string
	Value   float64
	Founded int
}

// CreateTeamResponse POST /teams のレスポンス
type CreateTeamResponse struct {
	Message string `json:"message"`
	Team    []Team `json:"team"`
}

// ErrorResponse エラーレスポンス
type ErrorResponse struct {
	Error string `json:"error"`
}

// ToNewTeam リクエストを挿入用データに変換
func (r *CreateTeamRequest) ToNewTeam() *NewTeam {
	return &NewTeam{
		Name:    r.Name,
		Coach:   r.Coach,
		Value:   r.Value,
		Founded: r.Founded,
	}
}

// ParseCreateTeamRequest リクエストボディを解析し、数値項目を型変換する。
// 空のボディ・null・空オブジェクトなどはErrNoData、
// 項目不足や変換失敗は*ValidationErrorを返す。
func ParseCreateTeamRequest(body []byte) (*CreateTeamRequest, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, ErrNoData
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, &ValidationError{Field: "body", Reason: "is not valid JSON"}
	}
	if dec.More() {
		return nil, &ValidationError{Field: "body", Reason: "must contain a single JSON value"}
	}
	if isEmptyValue(raw) {
		return nil, ErrNoData
	}

	fields, ok := raw.(map[string]any)
	if !ok {
		return nil, &ValidationError{Field: "body", Reason: "must be a JSON object"}
	}

	name, err := stringField(fields, "name")
	if err != nil {
		return nil, err
	}
	coach, err := stringField(fields, "coach")
	if err != nil {
		return nil, err
	}
	value, err := floatField(fields, "value")
	if err != nil {
		return nil, err
	}
	founded, err := intField(fields, "founded")
	if err != nil {
		return nil, err
	}

	return &CreateTeamRequest{
		Name:    name,
		Coach:   coach,
		Value:   value,
		Founded: founded,
	}, nil
}

// isEmptyValue 「データなし」とみなすJSON値かどうか
func isEmptyValue(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case map[string]any:
		return len(t) == 0
	case []any:
		return len(t) == 0
	case string:
		return t == ""
	case bool:
		return !t
	case json.Number:
		f, err := t.Float64()
		return err == nil && f == 0
	}
	return false
}

func stringField(fields map[string]any, key string) (string, error) {
	v, ok := fields[key]
	if !ok || v == nil {
		return "", &ValidationError{Field: key, Reason: "is required"}
	}
	s, ok := v.(string)
	if !ok {
		return "", &ValidationError{Field: key, Reason: "must be a string"}
	}
	return s, nil
}

func floatField(fields map[string]any, key string) (float64, error) {
	v, ok := fields[key]
	if !ok || v == nil {
		return 0, &ValidationError{Field: key, Reason: "is required"}
	}

	var (
		f   float64
		err error
	)
	switch t := v.(type) {
	case json.Number:
		f, err = t.Float64()
	case string:
		f, err = strconv.ParseFloat(strings.TrimSpace(t), 64)
	default:
		return 0, &ValidationError{Field: key, Reason: "must be a number"}
	}
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, &ValidationError{Field: key, Reason: "must be a number"}
	}
	return f, nil
}

func intField(fields map[string]any, key string) (int, error) {
	v, ok := fields[key]
	if !ok || v == nil {
		return 0, &ValidationError{Field: key, Reason: "is required"}
	}

	var f float64
	switch t := v.(type) {
	case json.Number:
		if i, err := strconv.ParseInt(t.String(), 10, 64); err == nil {
			f = float64(i)
			break
		}
		// 小数はゼロ方向に切り捨て
		parsed, err := t.Float64()
		if err != nil {
			return 0, intFieldError(key, err)
		}
		f = math.Trunc(parsed)
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64)
		if err != nil {
			return 0, intFieldError(key, err)
		}
		f = float64(i)
	default:
		return 0, &ValidationError{Field: key, Reason: "must be an integer"}
	}

	// founded列はint4
	if math.IsNaN(f) || f < math.MinInt32 || f > math.MaxInt32 {
		return 0, &ValidationError{Field: key, Reason: "is out of range"}
	}
	return int(f), nil
}

func intFieldError(key string, err error) *ValidationError {
	if errors.Is(err, strconv.ErrRange) {
		return &ValidationError{Field: key, Reason: "is out of range"}
	}
	return &ValidationError{Field: key, Reason: "must be an integer"}
}
